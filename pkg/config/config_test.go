package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "CAMPAIGN_DEFAULT_CURRENCY", "CAMPAIGN_EXPIRING_SOON_DAYS", "CAMPAIGN_STATS_CACHE_TTL", "REDIS_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "EUR", cfg.Campaign.DefaultCurrency)
	assert.Equal(t, 7, cfg.Campaign.ExpiringSoonDays)
	assert.Equal(t, 7*24*time.Hour, cfg.Campaign.MomentumWindow)
	assert.Equal(t, 5*time.Minute, cfg.Campaign.StatsCacheTTL)
	assert.Equal(t, "", cfg.Redis.URL)

	err := cfg.ValidateCore()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fundraise")
	t.Setenv("REDIS_URL", "redis://cache:6379")
	t.Setenv("CAMPAIGN_DEFAULT_CURRENCY", "usd")
	t.Setenv("CAMPAIGN_STATS_CACHE_TTL", "30s")
	t.Setenv("CAMPAIGN_EXPIRING_SOON_DAYS", "not-a-number")

	cfg := Load()
	assert.Equal(t, "cache:6379", cfg.Redis.URL)
	assert.Equal(t, "USD", cfg.Campaign.DefaultCurrency)
	assert.Equal(t, 30*time.Second, cfg.Campaign.StatsCacheTTL)
	assert.Equal(t, 7, cfg.Campaign.ExpiringSoonDays)
	assert.NoError(t, cfg.ValidateCore())
}

func TestValidateCoreRejectsBadCampaignSettings(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{URL: "postgres://x"},
		Campaign: CampaignConfig{DefaultCurrency: "EURO", ExpiringSoonDays: -1, MomentumWindow: time.Hour},
	}
	err := cfg.ValidateCore()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CAMPAIGN_DEFAULT_CURRENCY")
	assert.Contains(t, err.Error(), "CAMPAIGN_EXPIRING_SOON_DAYS")
	assert.Contains(t, err.Error(), "CAMPAIGN_MOMENTUM_WINDOW")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FUNDRAISE_DOTENV_PROBE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FUNDRAISE_DOTENV_PROBE") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("FUNDRAISE_DOTENV_PROBE"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestLoadMailConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fundraise")
	t.Setenv("SMTP_HOST", "smtp.example.org")
	t.Setenv("SMTP_USE_TLS", "true")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("MILESTONE_NOTIFY_EMAIL", "")

	cfg := Load()
	assert.True(t, cfg.Mail.UseTLS)
	assert.Equal(t, 465, cfg.Mail.Port)

	err := cfg.ValidateCore()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MILESTONE_NOTIFY_EMAIL")

	t.Setenv("MILESTONE_NOTIFY_EMAIL", "team@example.org")
	assert.NoError(t, Load().ValidateCore())
}
