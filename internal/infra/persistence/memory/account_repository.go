// Package memory provides an in-process AccountDirectory for tests and single-node development.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountRepository keeps accounts in two maps guarded by one lock so the
// email index can never drift from the primary records.
type accountRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*entity.Account
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

// NewAccountRepository creates an empty in-memory directory.
func NewAccountRepository() repository.AccountDirectory {
	return newAccountRepository(time.Now)
}

func newAccountRepository(now func() time.Time) *accountRepository {
	return &accountRepository{
		byID:    make(map[uuid.UUID]*entity.Account),
		byEmail: make(map[string]uuid.UUID),
		now:     now,
	}
}

func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return cloneAccount(repo.byID[id]), nil
}

func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	account, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

// Create stores a copy of account and fills in its ID and timestamps.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byEmail[account.Email]; exists {
		return errors.Wrap(repository.ErrDuplicateEmail, "failed to create account")
	}

	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate account id")
		}
		account.ID = id
	}
	if _, exists := repo.byID[account.ID]; exists {
		return errors.Errorf("account id %s already in use", account.ID)
	}

	now := repo.now()
	account.CreatedAt = now
	account.UpdatedAt = now

	repo.byID[account.ID] = cloneAccount(account)
	repo.byEmail[account.Email] = account.ID

	return nil
}

func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.byID[account.ID]
	if !ok {
		return repository.ErrAccountNotFound
	}

	if account.Email != stored.Email {
		if _, taken := repo.byEmail[account.Email]; taken {
			return errors.Wrap(repository.ErrDuplicateEmail, "failed to update account")
		}
		delete(repo.byEmail, stored.Email)
		repo.byEmail[account.Email] = account.ID
	}

	account.CreatedAt = stored.CreatedAt
	account.Provider = stored.Provider
	account.UpdatedAt = repo.now()
	repo.byID[account.ID] = cloneAccount(account)

	return nil
}

func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.byID[id]
	if !ok {
		return repository.ErrAccountNotFound
	}

	delete(repo.byEmail, stored.Email)
	delete(repo.byID, id)

	return nil
}

// List orders by CreatedAt, then ID so accounts created in the same instant page stably.
func (repo *accountRepository) List(ctx context.Context, offset, limit int) ([]*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	all := make([]*entity.Account, 0, len(repo.byID))
	for _, account := range repo.byID {
		all = append(all, cloneAccount(account))
	}
	repo.mu.RUnlock()

	slices.SortFunc(all, func(a, b *entity.Account) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return slices.Compare(a.ID[:], b.ID[:])
	})

	if offset >= len(all) {
		return []*entity.Account{}, nil
	}
	end := min(offset+limit, len(all))

	return all[offset:end], nil
}

func cloneAccount(account *entity.Account) *entity.Account {
	cloned := *account

	return &cloned
}
