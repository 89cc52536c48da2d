package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskboard/config"
	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/service"
	"taskboard/internal/errors"
)

// sessionTokenClaims is the JWT payload of a session token.
type sessionTokenClaims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Admin     bool   `json:"admin"`
	jwt.RegisteredClaims
}

// jwtSessionCodec implements service.SessionTokenCodec with HS256-signed JWTs.
// The secret and TTL are fixed at construction and never change afterwards.
type jwtSessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService builds the session codec from the process configuration.
func NewJWTService(cfg *config.Config) (service.SessionTokenCodec, error) {
	ttl := time.Duration(0)
	if cfg.Auth != nil {
		ttl = cfg.Auth.SessionTTL
	}

	return newJWTSessionCodec(cfg.SecretKey.Session, ttl, time.Now)
}

func newJWTSessionCodec(secret string, ttl time.Duration, now func() time.Time) (*jwtSessionCodec, error) {
	if secret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}

	return &jwtSessionCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}, nil
}

// TTL returns the configured session lifetime.
func (s *jwtSessionCodec) TTL() time.Duration {
	return s.ttl
}

// Mint signs claims. The expiry is carried at second precision, so the returned
// expiresAt is truncated to match what Verify will decode.
func (s *jwtSessionCodec) Mint(claims entity.SessionClaims, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(ttl).Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionTokenClaims{
		AccountID: claims.AccountID.String(),
		Email:     claims.Email,
		Name:      claims.Name,
		Admin:     claims.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.AccountID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign session token")
	}

	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry, then decodes the claims.
func (s *jwtSessionCodec) Verify(tokenString string) (*entity.SessionClaims, error) {
	var claims sessionTokenClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrapf(service.ErrInvalidToken, "parse session token: %v", err)
	}
	if !token.Valid {
		return nil, errors.Wrap(service.ErrInvalidToken, "session token rejected")
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, errors.Wrapf(service.ErrInvalidToken, "bad account id: %v", err)
	}

	return &entity.SessionClaims{
		AccountID: accountID,
		Email:     claims.Email,
		Name:      claims.Name,
		Admin:     claims.Admin,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
