// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"taskboard/internal/domain/entity"
	"taskboard/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when a write would break email uniqueness.
	ErrDuplicateEmail = errors.New("account email already exists")
)

// AccountDirectory is the document store holding account records.
// Implementations must enforce email uniqueness themselves and report it as ErrDuplicateEmail.
type AccountDirectory interface {
	// FindByEmail retrieves the account registered under email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// Create persists a new account and fills in its ID and timestamps.
	Create(ctx context.Context, account *entity.Account) error

	// Update overwrites the mutable fields of an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes the account with the given ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of accounts ordered by creation time, oldest first.
	List(ctx context.Context, offset, limit int) ([]*entity.Account, error)
}
