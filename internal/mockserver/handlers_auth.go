package mockserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) mintAccessToken(u user) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"role":  u.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	})
	return token.SignedString(s.secret)
}

func (s *Server) handleLogin(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	u, ok := s.state.findUserByCredentials(creds.Email, creds.Password)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	access, err := s.mintAccessToken(u)
	if err != nil {
		return err
	}
	refresh := uuid.NewString()
	s.state.refreshTokens[refresh] = u.ID

	return c.JSON(http.StatusOK, map[string]any{
		"accessToken":  access,
		"refreshToken": refresh,
		"user":         map[string]any{"id": u.ID, "email": u.Email},
	})
}

func (s *Server) handleRefresh(c echo.Context) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	userID, ok := s.state.refreshTokens[body.RefreshToken]
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}
	u, ok := s.state.findUserByID(userID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}

	// Rotation: the presented token is consumed.
	delete(s.state.refreshTokens, body.RefreshToken)

	access, err := s.mintAccessToken(u)
	if err != nil {
		return err
	}
	refresh := uuid.NewString()
	s.state.refreshTokens[refresh] = u.ID

	return c.JSON(http.StatusOK, map[string]any{
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

func (s *Server) handleLogout(c echo.Context) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = c.Bind(&body)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	delete(s.state.refreshTokens, body.RefreshToken)

	return c.NoContent(http.StatusNoContent)
}

// requireAuth validates the bearer token's signature and expiry and stashes
// the caller's id and role in the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		if sub, ok := claims["sub"].(float64); ok {
			c.Set("user_id", int64(sub))
		}
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}
		return next(c)
	}
}
