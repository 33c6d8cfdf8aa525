package config

import (
	"testing"
	"time"

	"github.com/kevin07696/securepay-periodic/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setEnv(t, map[string]string{
		"MERCHANT_ID":       "ABC0001",
		"MERCHANT_PASSWORD": "abc123",
	})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 70*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 1, cfg.Gateway.RateBurst)
	assert.Zero(t, cfg.Gateway.RateLimit)
	assert.Equal(t, "env", cfg.Secrets.Manager)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, domain.AUD, cfg.Currency())

	merchant := cfg.EnvMerchant()
	assert.Equal(t, "ABC0001", merchant.ID())
	assert.Equal(t, "abc123", merchant.Password())
	assert.Equal(t, domain.SandboxPeriodicURL, merchant.BaseURL())
	assert.Equal(t, 600, merchant.ZoneOffsetMinutes())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"ENVIRONMENT":                    "production",
		"SECUREPAY_TIMEOUT":              "30",
		"SECUREPAY_RATE_LIMIT":           "2.5",
		"SECUREPAY_RATE_BURST":           "3",
		"SECUREPAY_CURRENCY":             "NZD",
		"SECUREPAY_CURRENCY_MINOR_UNITS": "2",
		"MERCHANT_ID":                    "ABC0001",
		"MERCHANT_ZONE_OFFSET_MINUTES":   "-300",
		"SECRET_MANAGER":                 "vault",
		"VAULT_ADDR":                     "https://vault.internal:8200",
		"VAULT_TOKEN":                    "s.token",
		"DATABASE_URL":                   "postgres://localhost/securepay",
		"AUDIT_ENABLED":                  "true",
		"LOG_LEVEL":                      "DEBUG",
		"BATCH_WORKERS":                  "16",
	})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, domain.ProductionPeriodicURL, cfg.GatewayURL())
	assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 2.5, cfg.Gateway.RateLimit)
	assert.Equal(t, domain.Currency{Code: "NZD", MinorUnits: 2}, cfg.Currency())
	assert.Equal(t, -300, cfg.Merchant.ZoneOffsetMinutes)
	assert.Equal(t, "securepay/merchants/ABC0001", cfg.MerchantSecretPath())
	assert.True(t, cfg.Database.AuditEnabled)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 16, cfg.Batch.Workers)
}

func TestLoadFromEnv_ExplicitURLWins(t *testing.T) {
	setEnv(t, map[string]string{
		"ENVIRONMENT":       "production",
		"SECUREPAY_URL":     "https://gw.example.test/periodic",
		"MERCHANT_ID":       "ABC0001",
		"MERCHANT_PASSWORD": "abc123",
	})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://gw.example.test/periodic", cfg.GatewayURL())
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	base := map[string]string{"MERCHANT_ID": "ABC0001", "MERCHANT_PASSWORD": "abc123"}

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"env manager without password", map[string]string{"MERCHANT_PASSWORD": ""}, "MERCHANT_PASSWORD"},
		{"unknown secret manager", map[string]string{"SECRET_MANAGER": "gcp"}, "Manager"},
		{"aws without region", map[string]string{"SECRET_MANAGER": "aws"}, "AWSRegion"},
		{"vault without token", map[string]string{"SECRET_MANAGER": "vault", "VAULT_ADDR": "http://v:8200"}, "VaultToken"},
		{"audit without database", map[string]string{"AUDIT_ENABLED": "true"}, "Database.URL"},
		{"zero workers", map[string]string{"BATCH_WORKERS": "0"}, "Batch.Workers"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "Logger.Level"},
		{"bad environment", map[string]string{"ENVIRONMENT": "prod"}, "Environment"},
		{"bad currency", map[string]string{"SECUREPAY_CURRENCY": "dollars"}, "Gateway.Currency"},
		{"zone offset out of range", map[string]string{"MERCHANT_ZONE_OFFSET_MINUTES": "900"}, "ZoneOffsetMinutes"},
		{"bad url", map[string]string{"SECUREPAY_URL": "not a url"}, "Gateway.URL"},
		{"secret path missing", map[string]string{"SECRET_MANAGER": "local", "MERCHANT_ID": ""}, "MERCHANT_SECRET_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, base)
			setEnv(t, tt.env)

			_, err := LoadFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
