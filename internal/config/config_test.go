package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `
server:
  host: "0.0.0.0"
  port: 8080
firebase:
  project_id: "ispdesk-test"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
admin:
  email: "admin@ispdesk.in"
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validConfig))
	assert.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "30", cfg.Billing.DefaultCommissionPercent)
	assert.Equal(t, "BSNL", cfg.Billing.DefaultProviderTag)
	assert.Equal(t, 3, cfg.Billing.RenewalReminderDays)
	assert.Equal(t, 480, cfg.JWT.AccessTokenExpiry)
	assert.NotEmpty(t, cfg.Scheduler.SendRenewalReminders)
	assert.NotEmpty(t, cfg.Scheduler.MarkExpiredCustomers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsShortJWTSecret(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
server:
  port: 8080
firebase:
  project_id: "ispdesk-test"
jwt:
  secret: "tooshort"
admin:
  email: "admin@ispdesk.in"
  password_hash: "hash"
`))
	assert.Error(t, err)
}

func TestLoad_RejectsMissingProject(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
server:
  port: 8080
jwt:
  secret: "0123456789abcdef0123456789abcdef"
admin:
  email: "admin@ispdesk.in"
  password_hash: "hash"
`))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "ispdesk-prod")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load(writeConfigFile(t, validConfig))
	assert.NoError(t, err)
	assert.Equal(t, "ispdesk-prod", cfg.Firebase.ProjectID)
	assert.Equal(t, 9090, cfg.Server.Port)
}
