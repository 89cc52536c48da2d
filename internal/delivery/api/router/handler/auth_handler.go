// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"taskboard/config"
	"taskboard/internal/delivery/api/response"
	"taskboard/internal/metrics"
	"taskboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC   usecase.AuthUsecase
	Config   *config.Config
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// AuthHandler serves the credential and session endpoints.
type AuthHandler struct {
	authUC   usecase.AuthUsecase
	cookies  *sessionCookies
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC:   params.AuthUC,
		cookies:  newSessionCookies(params.Config.Cookie),
		recorder: params.Recorder,
		logger:   params.Logger,
	}
}

// Signup handles POST /signup. No session is started.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		h.recorder.RecordAuth(metrics.OpSignup, "MALFORMED_BODY")

		return response.BindingError(c)
	}
	if err := c.Validate(&input); err != nil {
		h.record(metrics.OpSignup, err)

		return errors.WithStack(err)
	}

	msg, err := h.authUC.Signup(c.Request().Context(), &input)
	h.record(metrics.OpSignup, err)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, msg)
}

// Signin handles POST /signin.
func (h *AuthHandler) Signin(c echo.Context) error {
	var input usecase.SigninInput
	if err := c.Bind(&input); err != nil {
		h.recorder.RecordAuth(metrics.OpSignin, "MALFORMED_BODY")

		return response.BindingError(c)
	}
	if err := c.Validate(&input); err != nil {
		h.record(metrics.OpSignin, err)

		return errors.WithStack(err)
	}

	output, err := h.authUC.Signin(c.Request().Context(), &input)
	h.record(metrics.OpSignin, err)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.startSession(c, output)
}

// GoogleSignin handles POST /google.
func (h *AuthHandler) GoogleSignin(c echo.Context) error {
	var input usecase.GoogleSigninInput
	if err := c.Bind(&input); err != nil {
		h.recorder.RecordAuth(metrics.OpGoogleSignin, "MALFORMED_BODY")

		return response.BindingError(c)
	}
	if err := c.Validate(&input); err != nil {
		h.record(metrics.OpGoogleSignin, err)

		return errors.WithStack(err)
	}

	output, err := h.authUC.GoogleSignin(c.Request().Context(), &input)
	h.record(metrics.OpGoogleSignin, err)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.startSession(c, output)
}

// Logout handles POST /logout. It needs no session and always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	msg := h.authUC.Logout(c.Request().Context())
	h.cookies.clear(c)
	h.recorder.RecordAuth(metrics.OpLogout, metrics.OutcomeSuccess)

	return response.Message(c, http.StatusOK, msg)
}

func (h *AuthHandler) startSession(c echo.Context, output *usecase.SessionOutput) error {
	h.cookies.issue(c, output.Token, output.ExpiresAt, output.TTL)

	return response.Success(c, http.StatusOK, output.Account)
}

func (h *AuthHandler) record(operation string, err error) {
	if err != nil {
		h.recorder.RecordAuth(operation, response.ErrorCode(err))

		return
	}
	h.recorder.RecordAuth(operation, metrics.OutcomeSuccess)
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
