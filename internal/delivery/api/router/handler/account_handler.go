package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"taskboard/internal/delivery/api/response"
	deliverycontext "taskboard/internal/delivery/context"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AccountHandler serves /api/users. Every route sits behind the session gate.
type AccountHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// DeleteAccountResponse echoes the removed account's ID.
type DeleteAccountResponse struct {
	ID uuid.UUID `json:"id"`
}

var errInvalidAccountID = domainerrors.NewBaseError(http.StatusBadRequest, domainerrors.ErrValidationFailed.ErrorCode(), "Invalid account id")

// GetMe returns the caller's own account.
func (h *AccountHandler) GetMe(c echo.Context) error {
	ctx := c.Request().Context()

	claims, ok := deliverycontext.SessionFromContext(ctx)
	if !ok {
		return errors.WithStack(domainerrors.ErrForbidden)
	}

	view, err := h.accountUC.GetAccount(ctx, claims.AccountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// GetAccount returns one account by ID.
func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.WithStack(errInvalidAccountID)
	}

	view, err := h.accountUC.GetAccount(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// LookupAccounts handles GET /api/users?ids=a,b,c.
func (h *AccountHandler) LookupAccounts(c echo.Context) error {
	var ids []uuid.UUID
	for _, raw := range strings.Split(c.QueryParam("ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return errors.WithStack(errInvalidAccountID)
		}
		ids = append(ids, id)
	}

	views, err := h.accountUC.LookupAccounts(c.Request().Context(), ids)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views)
}

// UpdateAccount handles PATCH /api/users/:id.
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	claims, ok := deliverycontext.GetSession(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrForbidden)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.WithStack(errInvalidAccountID)
	}

	var input usecase.UpdateAccountInput
	if err := (&echo.DefaultBinder{}).BindBody(c, &input); err != nil {
		return response.BindingError(c)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.accountUC.UpdateAccount(c.Request().Context(), claims, id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// ListAccounts handles GET /api/admin/users?offset=&limit=.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	var input usecase.ListAccountsInput
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &input); err != nil {
		return response.BindingError(c)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.accountUC.ListAccounts(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

// DeleteAccount handles DELETE /api/users/:id.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	claims, ok := deliverycontext.GetSession(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrForbidden)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.WithStack(errInvalidAccountID)
	}

	if err := h.accountUC.DeleteAccount(c.Request().Context(), claims, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, DeleteAccountResponse{ID: id})
}
