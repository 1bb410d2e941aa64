package doctor

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/karpos/karpos/internal/platform/httpclient"
	"github.com/karpos/karpos/internal/platform/session"
)

// ErrProfileNotFound is returned when no doctor record matches the session's
// user-account id.
var ErrProfileNotFound = errors.New("doctor profile not found for current user")

type Service struct {
	client *httpclient.Client
	store  session.Store
	logger zerolog.Logger
}

func NewService(client *httpclient.Client, store session.Store, logger zerolog.Logger) *Service {
	return &Service{client: client, store: store, logger: logger}
}

// List returns all doctors. An unexpectedly empty listing triggers one
// fallback fetch of the user-shaped endpoint before resolving to empty.
func (s *Service) List(ctx context.Context) ([]Doctor, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, "/doctors", nil)
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

	resp, err = s.client.Do(ctx, http.MethodGet, "/users/doctors", nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("fallback doctor listing failed, returning empty")
		return []Doctor{}, nil
	}
	list, err = decodeList(resp.Body)
	if err != nil {
		return []Doctor{}, nil
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Doctor, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/doctors/%d", id), nil)
	if err != nil {
		return Doctor{}, err
	}
	return decodeOne(resp.Body)
}

// MyProfile resolves the current user's doctor record. No identity-keyed
// endpoint reliably exists, so the full listing is scanned for a record whose
// embedded user-account id matches the token's subject.
func (s *Service) MyProfile(ctx context.Context) (Doctor, error) {
	pair, err := s.store.Get()
	if err != nil {
		return Doctor{}, fmt.Errorf("read session: %w", err)
	}
	id, err := session.Decode(pair.AccessToken)
	if err != nil {
		return Doctor{}, err
	}

	list, err := s.List(ctx)
	if err != nil {
		return Doctor{}, err
	}
	for _, d := range list {
		if d.UserID == id.SubjectID {
			return d, nil
		}
	}
	return Doctor{}, ErrProfileNotFound
}
