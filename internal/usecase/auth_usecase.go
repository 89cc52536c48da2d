// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"taskboard/internal/domain/entity"

	"github.com/google/uuid"
)

// Success messages rendered verbatim to clients.
const (
	MessageUserCreated = "User Created"
	MessageLoggedOut   = "User logged out successfully"
)

// --- Input DTOs ---

// SignupInput defines the data required to create an account with a password.
type SignupInput struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"max=255"`
	Password string `json:"password"`
}

// SigninInput defines the data required for password sign-in.
type SigninInput struct {
	Email    string `json:"email" validate:"max=255"`
	Password string `json:"password"`
}

// GoogleSigninInput carries the federated profile. Credential is the Google ID token and is
// only consulted when ID token verification is enabled.
type GoogleSigninInput struct {
	Name       string `json:"name" validate:"max=100"`
	Email      string `json:"email" validate:"max=255"`
	Credential string `json:"credential"`
}

// --- Output DTOs ---

// AccountView is the public projection of an account. It never carries the password digest.
type AccountView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Admin     bool      `json:"admin"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAccountView projects an account onto its public fields.
func NewAccountView(account *entity.Account) AccountView {
	return AccountView{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Admin:     account.Admin,
		Provider:  account.Provider.String(),
		CreatedAt: account.CreatedAt,
	}
}

// SessionOutput is returned by every flow that establishes a session.
type SessionOutput struct {
	Account   AccountView
	Token     string
	ExpiresAt time.Time
	TTL       time.Duration
}

// AuthUsecase defines the credential and session flows.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (string, error)
	Signin(ctx context.Context, input *SigninInput) (*SessionOutput, error)
	GoogleSignin(ctx context.Context, input *GoogleSigninInput) (*SessionOutput, error)
	Logout(ctx context.Context) string
}
