package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/karpos/karpos/internal/platform/httpclient"
	"github.com/karpos/karpos/internal/platform/session"
)

// ErrNotLoggedIn means there is no session on this machine.
var ErrNotLoggedIn = errors.New("not logged in")

// ErrSessionExpired means the stored access token's exp is in the past. The
// session is cleared before this is returned.
var ErrSessionExpired = errors.New("session expired")

type Service struct {
	client *httpclient.Client
	store  session.Store
	logger zerolog.Logger
}

func NewService(client *httpclient.Client, store session.Store, logger zerolog.Logger) *Service {
	return &Service{client: client, store: store, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// Login authenticates and persists the issued token pair. The returned
// identity is decoded from the access token itself, so it reflects exactly
// what the server issued.
func (s *Service) Login(ctx context.Context, email, password string) (session.Identity, error) {
	resp, err := s.client.Do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return session.Identity{}, err
	}

	var body loginResponse
	if err := resp.Decode(&body); err != nil {
		return session.Identity{}, err
	}
	if body.AccessToken == "" {
		return session.Identity{}, fmt.Errorf("login response missing access token")
	}

	id, err := session.Decode(body.AccessToken)
	if err != nil {
		return session.Identity{}, err
	}
	if err := s.store.Save(body.AccessToken, body.RefreshToken); err != nil {
		return session.Identity{}, err
	}
	s.logger.Info().Int64("user_id", id.SubjectID).Str("role", string(id.Role)).Msg("logged in")
	return id, nil
}

// Logout notifies the backend best-effort and clears the local session
// regardless of the outcome.
func (s *Service) Logout(ctx context.Context) error {
	if _, err := s.client.Do(ctx, http.MethodPost, "/auth/logout", nil); err != nil {
		s.logger.Debug().Err(err).Msg("logout request failed, clearing session anyway")
	}
	return s.store.Clear()
}

// WhoAmI returns the current identity. A malformed or expired token forces
// the logout path: the session is cleared and the appropriate error returned.
func (s *Service) WhoAmI() (session.Identity, error) {
	pair, err := s.store.Get()
	if err != nil {
		return session.Identity{}, fmt.Errorf("read session: %w", err)
	}
	if pair.AccessToken == "" {
		return session.Identity{}, ErrNotLoggedIn
	}

	id, err := session.Decode(pair.AccessToken)
	if err != nil {
		_ = s.store.Clear()
		return session.Identity{}, err
	}
	if id.Expired() {
		_ = s.store.Clear()
		return session.Identity{}, ErrSessionExpired
	}
	return id, nil
}
