package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/karpos/karpos/internal/platform/session"
)

const defaultTimeout = 15 * time.Second

// Client performs authenticated requests against the Karpos API. Each call
// attaches the current bearer token, runs under a bounded timeout, and on a
// 401 refreshes the session and retries exactly once. Concurrent 401 handlers
// share a single in-flight refresh instead of each racing to refresh.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	store   session.Store
	logger  zerolog.Logger
	timeout time.Duration

	refreshGroup singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracing wraps the transport with OpenTelemetry instrumentation.
func WithTracing() Option {
	return func(c *Client) {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.http.Transport = otelhttp.NewTransport(base)
	}
}

func New(baseURL string, store session.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		store:   store,
		logger:  zerolog.Nop(),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Response is the outcome of a successful (2xx) request.
type Response struct {
	StatusCode int
	Body       []byte
}

// IsJSON reports whether the body parses as JSON. The backend sometimes
// labels JSON bodies with a non-JSON content type, so the body itself is the
// authority, not the header.
func (r *Response) IsJSON() bool {
	return len(r.Body) > 0 && json.Valid(r.Body)
}

// Decode unmarshals the body into v. Non-JSON bodies produce an error; use
// Text for those.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// Text returns the raw body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Do performs one logical request. The path may be relative to the base URL
// or absolute. A non-nil body is JSON-encoded.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	return c.do(ctx, method, path, body, false)
}

func (c *Client) do(ctx context.Context, method, path string, body any, retried bool) (*Response, error) {
	pair, err := c.store.Get()
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	resp, respBody, err := c.send(ctx, method, path, body, pair.AccessToken)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if retried {
			_ = c.store.Clear()
			return nil, fmt.Errorf("%w: 401 after refresh", ErrAuthentication)
		}
		if err := c.refresh(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return c.do(ctx, method, path, body, true)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: respBody}
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, accessToken string) (*http.Response, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target, err := c.resolve(path)
	if err != nil {
		return nil, nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%w after %s: %s %s", ErrTimeout, c.timeout, method, path)
		}
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	return resp, respBody, nil
}

func (c *Client) resolve(path string) (string, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}
