package service

import (
	"context"

	"taskboard/internal/domain/entity"
)

// FederatedIdentity is the identity asserted by an external provider.
type FederatedIdentity struct {
	Subject       string // Provider-specific user ID (Google's 'sub' claim); empty when unverified
	Email         string
	Name          string
	EmailVerified bool
	Provider      entity.ProviderType
}

// IdentityVerifier checks a provider-issued credential and returns the identity it proves.
type IdentityVerifier interface {
	// Required reports whether federated sign-in must present a verifiable credential.
	Required() bool

	// Verify validates credential and extracts the identity.
	Verify(ctx context.Context, credential string) (*FederatedIdentity, error)
}
