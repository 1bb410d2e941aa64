package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

const refreshPath = "/auth/refresh"

// ErrNoRefreshToken is returned when a refresh is attempted with no refresh
// token on hand. No network call is made in that case.
var ErrNoRefreshToken = errors.New("no refresh token available")

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// refresh mints a new token pair from the stored refresh token. Concurrent
// callers collapse onto one in-flight attempt and share its outcome. Any
// failure clears the store: the design fails closed rather than retrying a
// refresh token of unknown validity.
func (c *Client) refresh(ctx context.Context) error {
	_, err, shared := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.doRefresh(ctx)
	})
	if shared {
		c.logger.Debug().Msg("joined in-flight token refresh")
	}
	return err
}

func (c *Client) doRefresh(ctx context.Context) error {
	pair, err := c.store.Get()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if pair.RefreshToken == "" {
		// An access-only session cannot recover; drop it so the caller
		// lands cleanly on the login flow instead of re-failing forever.
		_ = c.store.Clear()
		return ErrNoRefreshToken
	}

	resp, body, err := c.send(ctx, http.MethodPost, refreshPath, refreshRequest{RefreshToken: pair.RefreshToken}, "")
	if err != nil {
		_ = c.store.Clear()
		return fmt.Errorf("refresh request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = c.store.Clear()
		return &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	var tokens refreshResponse
	if err := (&Response{StatusCode: resp.StatusCode, Body: body}).Decode(&tokens); err != nil {
		_ = c.store.Clear()
		return err
	}
	if tokens.AccessToken == "" {
		_ = c.store.Clear()
		return fmt.Errorf("refresh response missing access token")
	}

	if err := c.store.Save(tokens.AccessToken, tokens.RefreshToken); err != nil {
		return fmt.Errorf("persist refreshed tokens: %w", err)
	}
	c.logger.Debug().Msg("session refreshed")
	return nil
}
