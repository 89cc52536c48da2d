package google

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"taskboard/config"
	"taskboard/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newTestVerifier(validate validateFunc) *IDTokenVerifier {
	return &IDTokenVerifier{
		clientID: "client-123.apps.googleusercontent.com",
		required: true,
		validate: validate,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewIDTokenVerifier(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	verifier := NewIDTokenVerifier(&config.Config{}, logger)
	assert.False(t, verifier.Required())

	verifier = NewIDTokenVerifier(&config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{ClientID: "abc", RequireIDToken: true},
	}, logger)
	assert.True(t, verifier.Required())
}

func TestIDTokenVerifier_Verify(t *testing.T) {
	var gotAudience string

	verifier := newTestVerifier(func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		gotAudience = audience
		if token != "good-token" {
			return nil, errors.New("idtoken: invalid token")
		}

		return &idtoken.Payload{
			Subject: "1098",
			Claims: map[string]any{
				"email":          "jane@example.com",
				"name":           "Jane Roe",
				"email_verified": true,
			},
		}, nil
	})

	identity, err := verifier.Verify(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "client-123.apps.googleusercontent.com", gotAudience)
	assert.Equal(t, "1098", identity.Subject)
	assert.Equal(t, "jane@example.com", identity.Email)
	assert.Equal(t, "Jane Roe", identity.Name)
	assert.True(t, identity.EmailVerified)
	assert.Equal(t, entity.ProviderTypeGoogle, identity.Provider)

	_, err = verifier.Verify(context.Background(), "forged")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate google id token")
}

func TestIDTokenVerifier_VerifyRejects(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		token  string
		want   error
	}{
		{
			name:  "missing credential",
			token: "   ",
			want:  ErrMissingCredential,
		},
		{
			name:   "unverified email",
			token:  "tok",
			claims: map[string]any{"email": "jane@example.com", "email_verified": false},
			want:   ErrEmailNotVerified,
		},
		{
			name:   "verified flag as string",
			token:  "tok",
			claims: map[string]any{"email": "jane@example.com", "email_verified": "false"},
			want:   ErrEmailNotVerified,
		},
		{
			name:   "no email",
			token:  "tok",
			claims: map[string]any{"email_verified": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := newTestVerifier(func(context.Context, string, string) (*idtoken.Payload, error) {
				return &idtoken.Payload{Subject: "1", Claims: tt.claims}, nil
			})

			identity, err := verifier.Verify(context.Background(), tt.token)
			require.Error(t, err)
			assert.Nil(t, identity)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want))
			}
		})
	}
}

func TestBoolClaim(t *testing.T) {
	assert.True(t, boolClaim(map[string]any{"v": true}, "v"))
	assert.True(t, boolClaim(map[string]any{"v": "TRUE"}, "v"))
	assert.False(t, boolClaim(map[string]any{"v": 1}, "v"))
	assert.False(t, boolClaim(nil, "v"))
}
