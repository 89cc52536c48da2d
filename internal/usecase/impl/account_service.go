package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/usecase"
	"taskboard/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	directory repository.AccountDirectory
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	Directory repository.AccountDirectory
	Logger    *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		directory: params.Directory,
		logger:    params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*usecase.AccountView, error) {
	account, err := srv.load(ctx, id)
	if err != nil {
		return nil, err
	}

	view := usecase.NewAccountView(account)

	return &view, nil
}

// LookupAccounts resolves ids in request order. Repeated ids are answered once and unknown ids are skipped.
func (srv *accountService) LookupAccounts(ctx context.Context, ids []uuid.UUID) ([]usecase.AccountView, error) {
	views := make([]usecase.AccountView, 0, len(ids))

	for _, id := range util.UniqueBy(ids, func(id uuid.UUID) uuid.UUID { return id }) {
		account, err := srv.directory.FindByID(ctx, id)
		if errors.Is(err, repository.ErrAccountNotFound) {
			continue
		}
		if err != nil {
			srv.log(ctx).Error("Failed to look up account", slog.Any("accountID", id), slog.Any("error", err))

			return nil, asInternal(err, "failed to look up accounts")
		}
		views = append(views, usecase.NewAccountView(account))
	}

	return views, nil
}

// UpdateAccount applies a partial update. Callers may edit themselves; editing others or the admin flag needs admin.
func (srv *accountService) UpdateAccount(
	ctx context.Context,
	actor *entity.SessionClaims,
	id uuid.UUID,
	input *usecase.UpdateAccountInput,
) (*usecase.AccountView, error) {
	if err := authorizeSelfOrAdmin(actor, id); err != nil {
		return nil, err
	}
	if input.Admin != nil && !actor.Admin {
		srv.log(ctx).Warn("Non-admin tried to change admin flag", slog.Any("actorID", actor.AccountID), slog.Any("accountID", id))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "admin flag requires admin")
	}

	account, err := srv.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "name must not be blank")
		}
		account.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "email must not be blank")
		}
		account.Email = email
	}
	if input.Admin != nil {
		account.Admin = *input.Admin
	}

	if err := srv.directory.Update(ctx, account); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, errors.Wrap(domainerrors.ErrEmailAlreadyExists, "update account failed")
		case errors.Is(err, repository.ErrAccountNotFound):
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "update account failed")
		}
		srv.log(ctx).Error("Failed to update account", slog.Any("accountID", id), slog.Any("error", err))

		return nil, asInternal(err, "failed to update account")
	}

	srv.log(ctx).Info("Account updated", slog.Any("accountID", id), slog.Any("actorID", actor.AccountID))

	view := usecase.NewAccountView(account)

	return &view, nil
}

// DeleteAccount removes an account. Issued tokens stay valid until they expire.
func (srv *accountService) DeleteAccount(ctx context.Context, actor *entity.SessionClaims, id uuid.UUID) error {
	if err := authorizeSelfOrAdmin(actor, id); err != nil {
		return err
	}

	if err := srv.directory.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrAccountNotFound, "delete account failed")
		}
		srv.log(ctx).Error("Failed to delete account", slog.Any("accountID", id), slog.Any("error", err))

		return asInternal(err, "failed to delete account")
	}

	srv.log(ctx).Info("Account deleted", slog.Any("accountID", id), slog.Any("actorID", actor.AccountID))

	return nil
}

// ListAccounts pages through every account. Access control is left to the caller's route.
func (srv *accountService) ListAccounts(ctx context.Context, page usecase.ListAccountsInput) (*usecase.AccountPage, error) {
	if page.Offset < 0 || page.Limit < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "negative page bounds")
	}

	limit := page.Limit
	if limit == 0 {
		limit = usecase.DefaultAccountPageSize
	}
	limit = min(limit, usecase.MaxAccountPageSize)

	accounts, err := srv.directory.List(ctx, page.Offset, limit)
	if err != nil {
		srv.log(ctx).Error("Failed to list accounts", slog.Int("offset", page.Offset), slog.Any("error", err))

		return nil, asInternal(err, "failed to list accounts")
	}

	views := make([]usecase.AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, usecase.NewAccountView(account))
	}

	return &usecase.AccountPage{Accounts: views, Offset: page.Offset, Limit: limit}, nil
}

func (srv *accountService) load(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.directory.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "load account failed")
		}
		srv.log(ctx).Error("Failed to load account", slog.Any("accountID", id), slog.Any("error", err))

		return nil, asInternal(err, "failed to load account")
	}

	return account, nil
}

func authorizeSelfOrAdmin(actor *entity.SessionClaims, id uuid.UUID) error {
	if actor == nil {
		return errors.Wrap(domainerrors.ErrForbidden, "no session")
	}
	if actor.AccountID != id && !actor.Admin {
		return errors.Wrap(domainerrors.ErrForbidden, "account belongs to someone else")
	}

	return nil
}
