package google

import (
	"context"
	"log/slog"
	"strings"

	"taskboard/config"
	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

var (
	ErrMissingCredential = errors.New("google credential is required")
	ErrEmailNotVerified  = errors.New("google account email is not verified")
)

// validateFunc matches idtoken.Validate and is swapped out in tests.
type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// IDTokenVerifier checks Google-issued ID tokens against the configured client ID.
type IDTokenVerifier struct {
	clientID string
	required bool
	validate validateFunc
	logger   *slog.Logger
}

// NewIDTokenVerifier creates the federated identity verifier for Google.
func NewIDTokenVerifier(cfg *config.Config, logger *slog.Logger) service.IdentityVerifier {
	verifier := &IDTokenVerifier{
		validate: idtoken.Validate,
		logger:   logger,
	}
	if cfg.GoogleOAuth != nil {
		verifier.clientID = cfg.GoogleOAuth.ClientID
		verifier.required = cfg.GoogleOAuth.RequireIDToken
	}

	return verifier
}

// Required reports whether /google must carry a verifiable credential.
func (v *IDTokenVerifier) Required() bool {
	return v.required
}

// Verify validates signature, audience and expiry through idtoken, then reads the profile claims.
func (v *IDTokenVerifier) Verify(ctx context.Context, credential string) (*service.FederatedIdentity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, ErrMissingCredential
	}

	payload, err := v.validate(ctx, credential, v.clientID)
	if err != nil {
		v.logger.WarnContext(ctx, "Google ID token validation failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "validate google id token")
	}

	identity := &service.FederatedIdentity{
		Subject:       payload.Subject,
		Email:         stringClaim(payload.Claims, "email"),
		Name:          stringClaim(payload.Claims, "name"),
		EmailVerified: boolClaim(payload.Claims, "email_verified"),
		Provider:      entity.ProviderTypeGoogle,
	}

	if identity.Email == "" {
		return nil, errors.New("google id token has no email claim")
	}
	if !identity.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	v.logger.DebugContext(ctx, "Google ID token verified", slog.String("subject", identity.Subject))

	return identity, nil
}

func stringClaim(claims map[string]any, key string) string {
	value, _ := claims[key].(string)

	return strings.TrimSpace(value)
}

// boolClaim accepts both JSON booleans and the "true" string some issuers send.
func boolClaim(claims map[string]any, key string) bool {
	switch value := claims[key].(type) {
	case bool:
		return value
	case string:
		return strings.EqualFold(value, "true")
	default:
		return false
	}
}
