package postgres

import (
	"testing"
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccountMapping(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	account := &entity.Account{
		ID:           uuid.New(),
		Name:         "Jane Roe",
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$digest",
		Admin:        true,
		Provider:     entity.ProviderTypeGoogle,
		CreatedAt:    now,
		UpdatedAt:    now.Add(time.Minute),
	}

	accountM := fromAccountDomain(account)
	assert.Equal(t, "google", accountM.Provider)
	assert.Equal(t, "accounts", model.AccountModel{}.TableName())

	assert.Equal(t, account, toAccountDomain(accountM))
}
