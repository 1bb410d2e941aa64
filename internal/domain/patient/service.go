package patient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/karpos/karpos/internal/platform/httpclient"
	"github.com/karpos/karpos/internal/platform/session"
)

// ErrProfileNotFound is returned when no patient record matches the session's
// user-account id.
var ErrProfileNotFound = errors.New("patient profile not found for current user")

type Service struct {
	client *httpclient.Client
	store  session.Store
	logger zerolog.Logger
}

func NewService(client *httpclient.Client, store session.Store, logger zerolog.Logger) *Service {
	return &Service{client: client, store: store, logger: logger}
}

// List returns all patients. An unexpectedly empty listing triggers one
// fallback fetch of the user-shaped endpoint before resolving to empty.
func (s *Service) List(ctx context.Context) ([]Patient, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, "/patients", nil)
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

	resp, err = s.client.Do(ctx, http.MethodGet, "/users/patients", nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("fallback patient listing failed, returning empty")
		return []Patient{}, nil
	}
	list, err = decodeList(resp.Body)
	if err != nil {
		return []Patient{}, nil
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Patient, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/patients/%d", id), nil)
	if err != nil {
		return Patient{}, err
	}
	return decodeOne(resp.Body)
}

// MyProfile resolves the current user's patient record by scanning the full
// listing for a matching user-account id; see doctor.Service.MyProfile for
// the rationale.
func (s *Service) MyProfile(ctx context.Context) (Patient, error) {
	pair, err := s.store.Get()
	if err != nil {
		return Patient{}, fmt.Errorf("read session: %w", err)
	}
	id, err := session.Decode(pair.AccessToken)
	if err != nil {
		return Patient{}, err
	}

	list, err := s.List(ctx)
	if err != nil {
		return Patient{}, err
	}
	for _, p := range list {
		if p.UserID == id.SubjectID {
			return p, nil
		}
	}
	return Patient{}, ErrProfileNotFound
}
