package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	repo := newAccountRepository(func() time.Time { return now })

	account := entity.NewAccount("John Doe", "john@example.com", "digest", entity.ProviderTypeEmail)
	require.NoError(t, repo.Create(ctx, account))
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, byte(7), byte(account.ID.Version()))
	assert.Equal(t, now, account.CreatedAt)

	byEmail, err := repo.FindByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, account, byEmail)

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account, byID)

	// Returned values are copies.
	byID.Name = "changed"
	again, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", again.Name)

	_, err = repo.FindByEmail(ctx, "JOHN@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepository(time.Now)

	require.NoError(t, repo.Create(ctx, entity.NewAccount("A", "a@example.com", "", entity.ProviderTypeGoogle)))

	err := repo.Create(ctx, entity.NewAccount("B", "a@example.com", "x", entity.ProviderTypeEmail))
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDuplicateEmail))
	assert.Len(t, repo.byID, 1)
}

func TestAccountRepository_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepository(time.Now)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Create(ctx, entity.NewAccount("Racer", "race@example.com", "", entity.ProviderTypeGoogle)); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, repo.byEmail, 1)
}

func TestAccountRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepository(time.Now)

	first := entity.NewAccount("First", "first@example.com", "", entity.ProviderTypeEmail)
	second := entity.NewAccount("Second", "second@example.com", "", entity.ProviderTypeEmail)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	update := *first
	update.Email = "second@example.com"
	err := repo.Update(ctx, &update)
	assert.True(t, errors.Is(err, repository.ErrDuplicateEmail))

	update.Email = "renamed@example.com"
	update.Admin = true
	require.NoError(t, repo.Update(ctx, &update))

	_, err = repo.FindByEmail(ctx, "first@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	got, err := repo.FindByEmail(ctx, "renamed@example.com")
	require.NoError(t, err)
	assert.True(t, got.Admin)
	assert.Equal(t, first.CreatedAt, got.CreatedAt)

	missing := entity.NewAccount("Ghost", "ghost@example.com", "", entity.ProviderTypeEmail)
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrAccountNotFound)
}

func TestAccountRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepository(time.Now)

	account := entity.NewAccount("Gone", "gone@example.com", "", entity.ProviderTypeEmail)
	require.NoError(t, repo.Create(ctx, account))

	require.NoError(t, repo.Delete(ctx, account.ID))
	assert.ErrorIs(t, repo.Delete(ctx, account.ID), repository.ErrAccountNotFound)

	// The email is free again.
	require.NoError(t, repo.Create(ctx, entity.NewAccount("Back", "gone@example.com", "", entity.ProviderTypeEmail)))
}

func TestAccountRepository_List(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	tick := 0
	repo := newAccountRepository(func() time.Time {
		tick++

		return base.Add(time.Duration(tick) * time.Minute)
	})

	var created []uuid.UUID
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		account := entity.NewAccount("N", email, "", entity.ProviderTypeGoogle)
		require.NoError(t, repo.Create(ctx, account))
		created = append(created, account.ID)
	}

	all, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, account := range all {
		assert.Equal(t, created[i], account.ID)
	}

	page, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b@example.com", page[0].Email)

	empty, err := repo.List(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	page[0].Name = "changed"
	again, err := repo.FindByID(ctx, created[1])
	require.NoError(t, err)
	assert.Equal(t, "N", again.Name)
}

func TestAccountRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := newAccountRepository(time.Now)
	_, err := repo.FindByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, context.Canceled)
}
