package impl

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"taskboard/config"
	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"
	"taskboard/internal/infra/auth"
	"taskboard/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: bcrypt.MinCost,
			SessionTTL: 72 * time.Hour,
		},
	}
	cfg.SecretKey.Session = "impl_test_session_secret"

	return cfg
}

// countingDirectory records writes so tests can assert how many a flow performed.
type countingDirectory struct {
	repository.AccountDirectory

	creates atomic.Int32
}

func (d *countingDirectory) Create(ctx context.Context, account *entity.Account) error {
	d.creates.Add(1)

	return d.AccountDirectory.Create(ctx, account)
}

// failingDirectory simulates a store outage.
type failingDirectory struct {
	err error
}

func (d failingDirectory) FindByEmail(context.Context, string) (*entity.Account, error) {
	return nil, d.err
}

func (d failingDirectory) FindByID(context.Context, uuid.UUID) (*entity.Account, error) {
	return nil, d.err
}

func (d failingDirectory) Create(context.Context, *entity.Account) error { return d.err }

func (d failingDirectory) Update(context.Context, *entity.Account) error { return d.err }

func (d failingDirectory) Delete(context.Context, uuid.UUID) error { return d.err }

func (d failingDirectory) List(context.Context, int, int) ([]*entity.Account, error) {
	return nil, d.err
}

// racingDirectory reports the email as free on the first lookup, then loses the create to
// a concurrent writer that already stored the same email.
type racingDirectory struct {
	repository.AccountDirectory

	lookups atomic.Int32
}

func (d *racingDirectory) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if d.lookups.Add(1) == 1 {
		return nil, repository.ErrAccountNotFound
	}

	return d.AccountDirectory.FindByEmail(ctx, email)
}

type stubVerifier struct {
	required bool
	identity *service.FederatedIdentity
	err      error
}

func (v stubVerifier) Required() bool { return v.required }

func (v stubVerifier) Verify(context.Context, string) (*service.FederatedIdentity, error) {
	return v.identity, v.err
}

type authFixtures struct {
	directory *countingDirectory
	hasher    service.PasswordHasher
	tokens    service.SessionTokenCodec
}

func newAuthFixtures(t *testing.T) authFixtures {
	t.Helper()

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return authFixtures{
		directory: &countingDirectory{AccountDirectory: memory.NewAccountRepository()},
		hasher:    auth.NewBcryptHasher(cfg),
		tokens:    tokens,
	}
}

func (f authFixtures) service(directory repository.AccountDirectory, verifier service.IdentityVerifier) *authService {
	if directory == nil {
		directory = f.directory
	}

	return NewAuthService(AuthServiceParams{
		Directory: directory,
		Hasher:    f.hasher,
		Tokens:    f.tokens,
		Verifier:  verifier,
		Logger:    newDiscardLogger(),
	}).(*authService)
}
