package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionClaims is the identity carried inside a session token.
// Tokens are self-contained; nothing about a session is stored server-side.
type SessionClaims struct {
	AccountID uuid.UUID
	Email     string
	Name      string
	Admin     bool
	ExpiresAt time.Time
}

// ClaimsFor projects an account into the claims minted at sign-in.
func ClaimsFor(account *Account) SessionClaims {
	return SessionClaims{
		AccountID: account.ID,
		Email:     account.Email,
		Name:      account.Name,
		Admin:     account.Admin,
	}
}
