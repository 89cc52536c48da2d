package usecase

import (
	"context"

	"taskboard/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateAccountInput is a partial update. Nil fields are left untouched.
type UpdateAccountInput struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Admin *bool   `json:"admin"`
}

// Page size bounds for ListAccounts.
const (
	DefaultAccountPageSize = 50
	MaxAccountPageSize     = 200
)

// ListAccountsInput selects one page of the account listing. A zero Limit means DefaultAccountPageSize.
type ListAccountsInput struct {
	Offset int `query:"offset" validate:"min=0"`
	Limit  int `query:"limit" validate:"min=0,max=200"`
}

// AccountPage is one page of the account listing.
type AccountPage struct {
	Accounts []AccountView `json:"accounts"`
	Offset   int           `json:"offset"`
	Limit    int           `json:"limit"`
}

// AccountUsecase defines profile operations on behalf of an authenticated caller.
type AccountUsecase interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*AccountView, error)
	LookupAccounts(ctx context.Context, ids []uuid.UUID) ([]AccountView, error)
	UpdateAccount(ctx context.Context, actor *entity.SessionClaims, id uuid.UUID, input *UpdateAccountInput) (*AccountView, error)
	DeleteAccount(ctx context.Context, actor *entity.SessionClaims, id uuid.UUID) error
	ListAccounts(ctx context.Context, page ListAccountsInput) (*AccountPage, error)
}
