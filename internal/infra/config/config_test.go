package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantsy/licensegate/internal/infra/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
gate:
  server_url: https://license.example.com/apps/acme
store:
  driver: memory
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "ignore", cfg.Gate.UnhandledStatus)
	assert.Zero(t, cfg.Gate.TimeoutDuration())
	assert.False(t, cfg.Gate.SingleFlight)
	assert.Equal(t, "log", cfg.Notifications.Driver)
	assert.False(t, cfg.Notifications.Authorized)
	assert.Equal(t, time.Second, cfg.Notifications.SubmitTimeoutDuration())
	assert.Equal(t, "127.0.0.1", cfg.Admin.Host)
	assert.Equal(t, 8787, cfg.Admin.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("LICENSEGATE_TEST_URL", "https://license.example.com/env")
	path := writeConfig(t, `
gate:
  server_url: ${LICENSEGATE_TEST_URL}
  timeout: 3s
store:
  driver: memory
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://license.example.com/env", cfg.Gate.ServerURL)
	assert.Equal(t, 3*time.Second, cfg.Gate.TimeoutDuration())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "gate: [")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse yaml")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing server url",
			body: "store:\n  driver: memory\n",
			want: "gate.server_url",
		},
		{
			name: "bad unhandled policy",
			body: "gate:\n  server_url: https://a.example\n  unhandled_status: panic\nstore:\n  driver: memory\n",
			want: "gate.unhandled_status",
		},
		{
			name: "bad timeout",
			body: "gate:\n  server_url: https://a.example\n  timeout: later\nstore:\n  driver: memory\n",
			want: "gate.timeout",
		},
		{
			name: "negative timeout",
			body: "gate:\n  server_url: https://a.example\n  timeout: -5s\nstore:\n  driver: memory\n",
			want: "gate.timeout: timeout must be a positive duration",
		},
		{
			name: "zero submit timeout",
			body: "gate:\n  server_url: https://a.example\nstore:\n  driver: memory\nnotifications:\n  submit_timeout: 0s\n",
			want: "notifications.submit_timeout",
		},
		{
			name: "sqlite without dsn",
			body: "gate:\n  server_url: https://a.example\nstore:\n  driver: sqlite\n",
			want: "store.dsn",
		},
		{
			name: "admin without api key",
			body: "gate:\n  server_url: https://a.example\nstore:\n  driver: memory\nadmin:\n  enable: true\n",
			want: "admin.api_key",
		},
		{
			name: "webhook driver without url",
			body: "gate:\n  server_url: https://a.example\nstore:\n  driver: memory\nnotifications:\n  driver: webhook\n",
			want: "notifications.webhook.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_LogValueRedactsSecrets(t *testing.T) {
	cfg := config.Config{
		Gate:  config.GateConfig{ServerURL: "https://license.example.com/apps/acme"},
		Store: config.StoreConfig{Driver: "postgres", DSN: "postgres://app:hunter2@db:5432/app"},
		Notifications: config.NotificationsConfig{
			Driver:  "webhook",
			Webhook: config.WebhookConfig{URL: "https://hooks.example.com", Secret: "whsec_topsecret"},
		},
		Admin: config.AdminConfig{Enable: true, APIKey: "admin-key-123"},
	}

	var buf bytes.Buffer
	slog.New(slog.NewJSONHandler(&buf, nil)).Info("starting", "config", cfg)

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "whsec_topsecret")
	assert.NotContains(t, out, "admin-key-123")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, "https://license.example.com/apps/acme")
	assert.Contains(t, out, "postgres://app:xxxxx@db:5432/app")

	assert.Equal(t, "admin-key-123", cfg.Admin.APIKey, "original config is untouched")
}
