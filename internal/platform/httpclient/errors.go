package httpclient

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a request exceeds the configured timeout.
var ErrTimeout = errors.New("request timed out")

// ErrAuthentication is returned for a 401 that survived the one allowed
// refresh-and-retry cycle. The session is cleared before it is returned.
var ErrAuthentication = errors.New("authentication failed")

// HTTPError carries any other non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, truncate(e.Body, 200))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
