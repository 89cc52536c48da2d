// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"
	"taskboard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	directory repository.AccountDirectory
	hasher    service.PasswordHasher
	tokens    service.SessionTokenCodec
	verifier  service.IdentityVerifier
	logger    *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Directory repository.AccountDirectory
	Hasher    service.PasswordHasher
	Tokens    service.SessionTokenCodec
	Verifier  service.IdentityVerifier `optional:"true"`
	Logger    *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		directory: params.Directory,
		hasher:    params.Hasher,
		tokens:    params.Tokens,
		verifier:  params.Verifier,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates a password account. It performs exactly one directory write on success and none on failure.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (string, error) {
	if isBlank(input.Name, input.Email) || input.Password == "" {
		return "", errors.Wrap(domainerrors.ErrInvalidInput, "signup requires name, email and password")
	}
	if len(input.Password) > service.MaxPasswordBytes {
		return "", errors.Wrap(domainerrors.ErrPasswordTooLong, "signup failed")
	}

	srv.log(ctx).Debug("Starting signup", slog.String("email", input.Email))

	_, err := srv.directory.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		srv.log(ctx).Info("Signup rejected, email taken", slog.String("email", input.Email))

		return "", errors.Wrap(domainerrors.ErrEmailAlreadyExists, "signup failed")
	case !errors.Is(err, repository.ErrAccountNotFound):
		return "", srv.internalFailure(ctx, err, "failed to look up account during signup")
	}

	digest, err := srv.hasher.Hash(input.Password)
	if errors.Is(err, service.ErrPasswordTooLong) {
		return "", errors.Wrap(domainerrors.ErrPasswordTooLong, err.Error())
	}
	if err != nil {
		return "", srv.internalFailure(ctx, err, "failed to hash password")
	}

	account := entity.NewAccount(input.Name, input.Email, digest, entity.ProviderTypeEmail)
	if err := srv.directory.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Info("Signup lost a create race", slog.String("email", input.Email))

			return "", errors.Wrap(domainerrors.ErrEmailAlreadyExists, "signup failed")
		}

		return "", srv.internalFailure(ctx, err, "failed to create account")
	}

	srv.log(ctx).Info("Account created", slog.Any("accountID", account.ID), slog.String("email", account.Email))

	return usecase.MessageUserCreated, nil
}

// Signin verifies the password and starts a session.
func (srv *authService) Signin(ctx context.Context, input *usecase.SigninInput) (*usecase.SessionOutput, error) {
	if isBlank(input.Email) || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidInput, "signin requires email and password")
	}

	srv.log(ctx).Debug("Starting signin", slog.String("email", input.Email))

	account, err := srv.directory.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Info("Signin failed, unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "signin failed")
		}

		return nil, srv.internalFailure(ctx, err, "failed to look up account during signin")
	}

	// Federated-only accounts have no digest and can never match a password.
	if !account.HasPassword() || !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Signin failed, bad credentials", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "signin failed")
	}

	return srv.startSession(ctx, account)
}

// GoogleSignin signs in the account registered under the federated email, provisioning it on first use.
// It never reports a conflict.
func (srv *authService) GoogleSignin(ctx context.Context, input *usecase.GoogleSigninInput) (*usecase.SessionOutput, error) {
	name, email := input.Name, input.Email

	if srv.verifier != nil && srv.verifier.Required() {
		identity, err := srv.verifier.Verify(ctx, input.Credential)
		if err != nil {
			srv.log(ctx).Warn("Federated identity rejected", slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrFederatedIdentityInvalid, err.Error())
		}
		name, email = identity.Name, identity.Email
	}

	if isBlank(email) {
		return nil, errors.Wrap(domainerrors.ErrInvalidInput, "federated signin requires an email")
	}

	account, err := srv.directory.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		account, err = srv.provisionFederatedAccount(ctx, name, email)
	}
	if err != nil {
		return nil, srv.internalFailure(ctx, err, "failed to resolve federated account")
	}

	return srv.startSession(ctx, account)
}

// provisionFederatedAccount creates a passwordless account. A concurrent create of the same
// email is resolved by reading the winner back.
func (srv *authService) provisionFederatedAccount(ctx context.Context, name, email string) (*entity.Account, error) {
	if isBlank(name) {
		name = entity.NameFromEmail(email)
	}

	account := entity.NewAccount(strings.TrimSpace(name), email, "", entity.ProviderTypeGoogle)

	err := srv.directory.Create(ctx, account)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		srv.log(ctx).Info("Federated account created concurrently, reusing it", slog.String("email", email))

		return srv.directory.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Federated account provisioned", slog.Any("accountID", account.ID), slog.String("email", email))

	return account, nil
}

// Logout has nothing to revoke server-side; the handler clears the cookie.
func (srv *authService) Logout(ctx context.Context) string {
	srv.log(ctx).Debug("Logout requested")

	return usecase.MessageLoggedOut
}

func (srv *authService) startSession(ctx context.Context, account *entity.Account) (*usecase.SessionOutput, error) {
	ttl := srv.tokens.TTL()

	token, expiresAt, err := srv.tokens.Mint(entity.ClaimsFor(account), ttl)
	if err != nil {
		return nil, srv.internalFailure(ctx, err, "failed to mint session token")
	}

	srv.log(ctx).Debug("Session started", slog.Any("accountID", account.ID), slog.Time("expiresAt", expiresAt))

	return &usecase.SessionOutput{
		Account:   usecase.NewAccountView(account),
		Token:     token,
		ExpiresAt: expiresAt,
		TTL:       ttl,
	}, nil
}

func (srv *authService) internalFailure(ctx context.Context, err error, message string) error {
	srv.log(ctx).Error(message, slog.Any("error", err))

	return asInternal(err, message)
}
