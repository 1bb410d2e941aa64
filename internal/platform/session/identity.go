package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when an access token cannot be decoded.
// Callers treat it the same as an invalid session.
var ErrMalformedToken = errors.New("malformed access token")

// Role is the account role carried in the token's "role" claim.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Identity is the set of claims the client consumes from an access token.
// It is derived on demand by decoding the token, never stored.
type Identity struct {
	SubjectID int64
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the identity's expiry is in the past. There is no
// clock-skew allowance.
func (id Identity) Expired() bool {
	return id.ExpiresAt.Before(time.Now())
}

// Decode extracts the identity claims from an access token without verifying
// the signature. The backend is trusted; the token is an identity hint, not a
// client-enforced security boundary.
func Decode(accessToken string) (Identity, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var id Identity

	switch sub := claims["sub"].(type) {
	case float64:
		id.SubjectID = int64(sub)
	case string:
		// Some backends serialize the numeric id as a string.
		var n int64
		if _, err := fmt.Sscanf(sub, "%d", &n); err != nil {
			return Identity{}, fmt.Errorf("%w: non-numeric sub claim %q", ErrMalformedToken, sub)
		}
		id.SubjectID = n
	default:
		return Identity{}, fmt.Errorf("%w: missing sub claim", ErrMalformedToken)
	}

	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = Role(role)
	}
	if iat, ok := claims["iat"].(float64); ok {
		id.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := claims["exp"].(float64); ok {
		id.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return id, nil
}
