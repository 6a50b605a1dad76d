package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
repository:
  dsn: ${DUOBOT_TEST_DSN}
finance_bot:
  telegram:
    token: ${DUOBOT_TEST_FINANCE_TOKEN}
  exchange_rates:
    token: rates-key
game_bot:
  telegram:
    token: game-token
    run_mode: webhook
    webhook_secret: s3cret
  unsplash:
    token: unsplash-key
    timeout: 5s
  dadata:
    token: dadata-key
http_server:
  port: 8080
`)
	envPath := writeFile(t, dir, ".env", "DUOBOT_TEST_FINANCE_TOKEN=finance-token\n")
	t.Setenv("DUOBOT_TEST_DSN", "file:test.db")
	t.Cleanup(func() { _ = os.Unsetenv("DUOBOT_TEST_FINANCE_TOKEN") })

	cfg, err := LoadConfigFromFile(path, envPath)
	require.NoError(t, err)

	assert.Equal(t, "file:test.db", cfg.Repository.Dsn)
	assert.Equal(t, "finance-token", cfg.FinanceBot.Telegram.Token)
	assert.Equal(t, "USD", cfg.FinanceBot.BaseCurrency)
	assert.Equal(t, []string{"USD", "EUR"}, cfg.FinanceBot.Currencies)
	assert.Len(t, cfg.FinanceBot.Tips, 3)
	assert.True(t, cfg.GameBot.Telegram.Webhook())
	assert.Equal(t, "car", cfg.GameBot.Query)
	assert.Equal(t, 5*time.Second, cfg.GameBot.Unsplash.Timeout)
	assert.Equal(t, 8080, cfg.HttpServer.Port)
}

func TestLoadConfigFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "no bots",
			content: "repository:\n  dsn: file:test.db\n",
		},
		{
			name:    "missing repository",
			content: "finance_bot:\n  telegram:\n    token: t\n  exchange_rates:\n    token: k\n",
		},
		{
			name: "bad run mode",
			content: `
repository:
  dsn: file:test.db
finance_bot:
  telegram:
    token: t
    run_mode: push
  exchange_rates:
    token: k
`,
		},
		{
			name: "webhook without server",
			content: `
repository:
  dsn: file:test.db
finance_bot:
  telegram:
    token: t
    run_mode: webhook
  exchange_rates:
    token: k
`,
			wantErr: ErrWebhookWithoutServer,
		},
		{
			name:    "empty",
			content: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yaml", tt.content)
			_, err := LoadConfigFromFile(path, "")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromFileMissing(t *testing.T) {
	_, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
