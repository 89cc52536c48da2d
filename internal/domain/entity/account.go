// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProviderType records how an account was first provisioned.
type ProviderType string

const (
	// ProviderTypeEmail marks an account created through password signup.
	ProviderTypeEmail ProviderType = "email"
	// ProviderTypeGoogle marks an account provisioned by federated sign-in.
	ProviderTypeGoogle ProviderType = "google"
)

// String returns the string representation of the ProviderType.
func (p ProviderType) String() string {
	return string(p)
}

// Account is one registered identity. Email is unique across all accounts.
type Account struct {
	ID           uuid.UUID    // Assigned by the directory on create.
	Name         string       // Display name.
	Email        string       // Login identifier, compared as stored.
	PasswordHash string       // bcrypt digest; empty for federated-only accounts.
	Admin        bool         // The only authorization attribute the core knows about.
	Provider     ProviderType // How the account was first provisioned.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can sign in with a password.
func (a *Account) HasPassword() bool {
	return a.PasswordHash != ""
}

// NewAccount builds a non-admin account ready to be persisted.
func NewAccount(name, email, passwordHash string, provider ProviderType) *Account {
	return &Account{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Provider:     provider,
	}
}

// NameFromEmail derives a display name from the local part of an email.
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")

	return local
}
