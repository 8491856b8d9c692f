package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak into a test.
// viper treats empty variables as unset.
func clearEnv(t *testing.T) {
	t.Helper()

	for key, legacy := range legacyEnv {
		t.Setenv(legacy, "")
		t.Setenv(envKey(key), "")
	}
	for _, key := range []string{
		"GPUB_EMAIL_PROVIDER",
		"GPUB_EMAIL_SENDER_NAME",
		"GPUB_EMAIL_SENDER_ADDRESS",
		"GPUB_SMTP_TLS_MODE",
		"GPUB_SMTP_TIMEOUT",
		"GPUB_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	// Run from an empty directory so no config.yaml is picked up
	t.Chdir(t.TempDir())
}

func envKey(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, "tls", cfg.SMTP.TLSMode)
	assert.Equal(t, 30*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, "smtp", cfg.Email.Provider)
	assert.Equal(t, "GPublishing Services", cfg.Email.SenderName)
	assert.Empty(t, cfg.Email.SenderAddress)
	assert.Empty(t, cfg.Email.NotifyAddress)
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("SMTP_PASS", "app-password")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "mailer@example.com", cfg.SMTP.Username)
	assert.Equal(t, "app-password", cfg.SMTP.Password)

	// Sender and operator mailbox fall back to the SMTP account
	assert.Equal(t, "mailer@example.com", cfg.Email.SenderAddress)
	assert.Equal(t, "mailer@example.com", cfg.Email.NotifyAddress)
}

func TestLoad_NotifyEmailOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("NOTIFY_EMAIL", "ops@example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mailer@example.com", cfg.Email.SenderAddress)
	assert.Equal(t, "ops@example.com", cfg.Email.NotifyAddress)
}

func TestLoad_PrefixedWinsOverLegacy(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("GPUB_SERVER_PORT", "9000")
	t.Setenv("SMTP_USER", "legacy@example.com")
	t.Setenv("GPUB_SMTP_USERNAME", "prefixed@example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "prefixed@example.com", cfg.SMTP.Username)
}

func TestLoad_PrefixedOnlyKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("GPUB_EMAIL_PROVIDER", "log")
	t.Setenv("GPUB_EMAIL_SENDER_ADDRESS", "noreply@example.com")
	t.Setenv("GPUB_SMTP_TLS_MODE", "starttls")
	t.Setenv("GPUB_SMTP_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "log", cfg.Email.Provider)
	assert.Equal(t, "noreply@example.com", cfg.Email.SenderAddress)
	assert.Equal(t, "noreply@example.com", cfg.Email.NotifyAddress)
	assert.Equal(t, "starttls", cfg.SMTP.TLSMode)
	assert.Equal(t, 5*time.Second, cfg.SMTP.Timeout)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	// godotenv never overrides variables that are already set, even to an empty value
	require.NoError(t, os.Unsetenv("SMTP_USER"))
	require.NoError(t, os.Unsetenv("NOTIFY_EMAIL"))
	t.Setenv("SMTP_PASS", "from-environment")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SMTP_USER=file@example.com\nSMTP_PASS=from-file\nNOTIFY_EMAIL=ops@example.com\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file@example.com", cfg.SMTP.Username)
	assert.Equal(t, "from-environment", cfg.SMTP.Password)
	assert.Equal(t, "ops@example.com", cfg.Email.NotifyAddress)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	yaml := "server:\n  port: 4000\nemail:\n  sender_name: Test Press\n  notify_address: desk@example.com\ncors:\n  allowed_origins:\n    - https://gpublishing.example\n"
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "Test Press", cfg.Email.SenderName)
	assert.Equal(t, "desk@example.com", cfg.Email.NotifyAddress)
	assert.Equal(t, []string{"https://gpublishing.example"}, cfg.CORS.AllowedOrigins)
}
