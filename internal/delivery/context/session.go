package context

import (
	"context"

	"taskboard/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeySession is the key for storing verified session claims.
const KeySession ContextKey = "session"

// SetSession stores the verified claims in echo.Context for downstream handlers.
func SetSession(c echo.Context, claims *entity.SessionClaims) {
	c.Set(string(KeySession), claims)
}

// GetSession returns the claims set by the session gate.
func GetSession(c echo.Context) (*entity.SessionClaims, bool) {
	claims, ok := c.Get(string(KeySession)).(*entity.SessionClaims)

	return claims, ok && claims != nil
}

// WithSession returns a new context carrying the claims.
func WithSession(ctx context.Context, claims *entity.SessionClaims) context.Context {
	return context.WithValue(ctx, KeySession, claims)
}

// SessionFromContext extracts claims from standard context.Context.
func SessionFromContext(ctx context.Context) (*entity.SessionClaims, bool) {
	claims, ok := ctx.Value(KeySession).(*entity.SessionClaims)

	return claims, ok && claims != nil
}
