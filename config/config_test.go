package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestApplyDefaults_MemoryDriver(t *testing.T) {
	cfg := &Config{}
	cfg.Storage.Driver = StorageDriverMemory

	require.NoError(t, cfg.applyDefaults())

	assert.Equal(t, defaultPort, cfg.HTTP.Port)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, 72*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "Token", cfg.Cookie.Name)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.GoogleOAuth.RequireIDToken)
}

func TestApplyDefaults_Rejects(t *testing.T) {
	t.Run("postgres driver without section", func(t *testing.T) {
		cfg := &Config{}

		err := cfg.applyDefaults()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres section is missing")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &Config{}
		cfg.Storage.Driver = "mongo"

		err := cfg.applyDefaults()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown storage driver")
	})

	t.Run("id token required without client id", func(t *testing.T) {
		cfg := &Config{GoogleOAuth: &GoogleOAuthConfig{RequireIDToken: true}}
		cfg.Storage.Driver = StorageDriverMemory

		err := cfg.applyDefaults()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "clientId")
	})
}

func TestCookieConfig_SameSiteMode(t *testing.T) {
	tests := []struct {
		value string
		want  http.SameSite
	}{
		{value: "strict", want: http.SameSiteStrictMode},
		{value: "None", want: http.SameSiteNoneMode},
		{value: "lax", want: http.SameSiteLaxMode},
		{value: "", want: http.SameSiteLaxMode},
		{value: "bogus", want: http.SameSiteLaxMode},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cookie := &CookieConfig{SameSite: tt.value}
			assert.Equal(t, tt.want, cookie.SameSiteMode())
		})
	}
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
storage:
  driver: memory
secretKey:
  session: from-yaml
auth:
  sessionTTL: 1h
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), content, 0o600))

	t.Chdir(dir)
	t.Setenv("SECRETKEY_SESSION", "from-env")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "from-env", cfg.SecretKey.Session)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}
