package records

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/karpos/karpos/internal/platform/httpclient"
)

type Service struct {
	client *httpclient.Client
	logger zerolog.Logger
}

func NewService(client *httpclient.Client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// ListByPatient returns a patient's medical records. No data resolves to an
// empty slice, never an error.
func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]MedicalRecord, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/records/patient/%d", patientID), nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeList(resp.Body)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []MedicalRecord{}
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (MedicalRecord, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/records/%d", id), nil)
	if err != nil {
		return MedicalRecord{}, err
	}
	return decodeOne(resp.Body)
}
