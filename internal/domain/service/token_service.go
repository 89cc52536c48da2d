package service

import (
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/errors"
)

// ErrInvalidToken is returned by SessionTokenCodec.Verify for tampered, malformed or expired tokens.
var ErrInvalidToken = errors.New("invalid session token")

// SessionTokenCodec signs session claims into an opaque bearer string and verifies it back.
type SessionTokenCodec interface {
	// Mint signs claims with an expiry of now+ttl and returns the token and that expiry.
	Mint(claims entity.SessionClaims, ttl time.Duration) (token string, expiresAt time.Time, err error)

	// Verify decodes token, returning ErrInvalidToken when it cannot be trusted.
	Verify(token string) (*entity.SessionClaims, error)

	// TTL returns the configured session lifetime.
	TTL() time.Duration
}
