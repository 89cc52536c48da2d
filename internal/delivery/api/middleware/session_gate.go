package middleware

import (
	"log/slog"
	"net/http"

	"taskboard/config"
	deliverycontext "taskboard/internal/delivery/context"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/service"
	"taskboard/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Gate rejections are plain text, unlike the JSON error bodies.
const (
	msgNoToken      = "Unauthorized: No token provided."
	msgInvalidToken = "Unauthorized: Invalid token."
)

// SessionGateParams holds dependencies for SessionGate, injected by Fx.
type SessionGateParams struct {
	fx.In

	Tokens   service.SessionTokenCodec
	Config   *config.Config
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// SessionGate admits requests that carry a valid session cookie.
type SessionGate struct {
	tokens     service.SessionTokenCodec
	cookieName string
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// NewSessionGate is the constructor for SessionGate.
func NewSessionGate(params SessionGateParams) *SessionGate {
	return &SessionGate{
		tokens:     params.Tokens,
		cookieName: params.Config.Cookie.Name,
		recorder:   params.Recorder,
		logger:     params.Logger,
	}
}

// Authenticate checks the session cookie. On success the claims are available through
// deliverycontext.GetSession and deliverycontext.SessionFromContext.
func (g *SessionGate) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(g.cookieName)
		if err != nil || cookie.Value == "" {
			g.recorder.RecordGate(metrics.GateMissing)

			return c.String(http.StatusUnauthorized, msgNoToken)
		}

		ctx := c.Request().Context()

		claims, err := g.tokens.Verify(cookie.Value)
		if err != nil {
			g.recorder.RecordGate(metrics.GateInvalid)
			deliverycontext.GetLoggerOrDefault(ctx, g.logger).DebugContext(ctx, "Session token rejected", slog.Any("error", err))

			return c.String(http.StatusUnauthorized, msgInvalidToken)
		}

		g.recorder.RecordGate(metrics.GatePassed)
		deliverycontext.SetSession(c, claims)
		c.SetRequest(c.Request().WithContext(deliverycontext.WithSession(ctx, claims)))

		return next(c)
	}
}

// RequireAdmin must run after Authenticate.
func (g *SessionGate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := deliverycontext.GetSession(c)
		if !ok || !claims.Admin {
			return domainerrors.ErrForbidden
		}

		return next(c)
	}
}
