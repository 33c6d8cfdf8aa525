package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kevin07696/securepay-periodic/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Environment string `validate:"oneof=development staging production"`
	Gateway     GatewayConfig
	Merchant    MerchantConfig
	Secrets     SecretsConfig
	Database    DatabaseConfig
	Metrics     MetricsConfig
	Logger      LoggerConfig
	Batch       BatchConfig
}

// GatewayConfig holds SecurePay Periodic client configuration
type GatewayConfig struct {
	URL                string        `validate:"omitempty,url"` // empty: derived from Environment
	Timeout            time.Duration `validate:"gt=0"`
	InsecureSkipVerify bool
	RateLimit          float64 `validate:"gte=0"` // requests per second, 0 disables
	RateBurst          int     `validate:"gte=1"`
	Currency           string  `validate:"len=3,uppercase"`
	CurrencyMinorUnits int32   `validate:"gte=0,lte=4"`
}

// MerchantConfig is used directly when Secrets.Manager is "env"
type MerchantConfig struct {
	ID                string
	Password          string
	ZoneOffsetMinutes int    `validate:"gte=-720,lte=840"`
	SecretPath        string // path read by the other secret managers
}

// SecretsConfig selects where merchant credentials come from
type SecretsConfig struct {
	Manager        string `validate:"oneof=env local aws vault"`
	LocalPath      string `validate:"required_if=Manager local"`
	AWSRegion      string `validate:"required_if=Manager aws"`
	AWSEndpoint    string `validate:"omitempty,url"`
	VaultAddr      string `validate:"required_if=Manager vault"`
	VaultToken     string `validate:"required_if=Manager vault"`
	VaultMountPath string
}

// DatabaseConfig holds the exchange audit store
type DatabaseConfig struct {
	URL          string `validate:"required_if=AuditEnabled true"`
	AuditEnabled bool
	MaxConns     int32 `validate:"gte=1"`
}

// MetricsConfig holds the /metrics and /health listener
type MetricsConfig struct {
	Enabled bool
	Port    int `validate:"min=1,max=65535"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// BatchConfig bounds concurrent debits
type BatchConfig struct {
	Workers int `validate:"min=1,max=256"`
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Gateway: GatewayConfig{
			URL:                getEnv("SECUREPAY_URL", ""),
			Timeout:            time.Duration(getEnvAsInt("SECUREPAY_TIMEOUT", 70)) * time.Second,
			InsecureSkipVerify: getEnvAsBool("SECUREPAY_INSECURE_SKIP_VERIFY", false),
			RateLimit:          getEnvAsFloat("SECUREPAY_RATE_LIMIT", 0),
			RateBurst:          getEnvAsInt("SECUREPAY_RATE_BURST", 1),
			Currency:           getEnv("SECUREPAY_CURRENCY", domain.AUD.Code),
			CurrencyMinorUnits: int32(getEnvAsInt("SECUREPAY_CURRENCY_MINOR_UNITS", int(domain.AUD.MinorUnits))),
		},
		Merchant: MerchantConfig{
			ID:                getEnv("MERCHANT_ID", ""),
			Password:          getEnv("MERCHANT_PASSWORD", ""),
			ZoneOffsetMinutes: getEnvAsInt("MERCHANT_ZONE_OFFSET_MINUTES", 600),
			SecretPath:        getEnv("MERCHANT_SECRET_PATH", ""),
		},
		Secrets: SecretsConfig{
			Manager:        getEnv("SECRET_MANAGER", "env"),
			LocalPath:      getEnv("LOCAL_SECRETS_PATH", "./secrets"),
			AWSRegion:      getEnv("AWS_REGION", ""),
			AWSEndpoint:    getEnv("AWS_SECRETS_ENDPOINT", ""),
			VaultAddr:      getEnv("VAULT_ADDR", ""),
			VaultToken:     getEnv("VAULT_TOKEN", ""),
			VaultMountPath: getEnv("VAULT_MOUNT_PATH", "secret"),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			AuditEnabled: getEnvAsBool("AUDIT_ENABLED", false),
			MaxConns:     int32(getEnvAsInt("DB_MAX_CONNS", 5)),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", false),
			Port:    getEnvAsInt("METRICS_PORT", 9090),
		},
		Logger: LoggerConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
		Batch: BatchConfig{
			Workers: getEnvAsInt("BATCH_WORKERS", 4),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and the rules that span sections
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Secrets.Manager == "env" {
		if c.Merchant.ID == "" {
			return fmt.Errorf("MERCHANT_ID is required when SECRET_MANAGER=env")
		}
		if c.Merchant.Password == "" {
			return fmt.Errorf("MERCHANT_PASSWORD is required when SECRET_MANAGER=env")
		}
	} else if c.MerchantSecretPath() == "" {
		return fmt.Errorf("MERCHANT_SECRET_PATH or MERCHANT_ID is required when SECRET_MANAGER=%s", c.Secrets.Manager)
	}

	return nil
}

// GatewayURL is SECUREPAY_URL, or the Periodic endpoint for the environment
func (c *Config) GatewayURL() string {
	if c.Gateway.URL != "" {
		return c.Gateway.URL
	}
	if c.Environment == "production" {
		return domain.EnvironmentProduction.PeriodicURL()
	}
	return domain.EnvironmentSandbox.PeriodicURL()
}

// Currency returns the settlement currency debits are expressed in
func (c *Config) Currency() domain.Currency {
	currency := domain.Currency{
		Code:       c.Gateway.Currency,
		MinorUnits: c.Gateway.CurrencyMinorUnits,
	}
	if currency.Code == domain.AUD.Code {
		currency.Symbol = domain.AUD.Symbol
	}
	return currency
}

// EnvMerchant builds merchant credentials from MERCHANT_* variables
func (c *Config) EnvMerchant() domain.MerchantCredentials {
	return domain.MerchantCredentials{
		MerchantID:    c.Merchant.ID,
		Secret:        c.Merchant.Password,
		Endpoint:      c.GatewayURL(),
		OffsetMinutes: c.Merchant.ZoneOffsetMinutes,
	}
}

// MerchantSecretPath is MERCHANT_SECRET_PATH, or the conventional path for MERCHANT_ID
func (c *Config) MerchantSecretPath() string {
	if c.Merchant.SecretPath != "" {
		return c.Merchant.SecretPath
	}
	if c.Merchant.ID != "" {
		return "securepay/merchants/" + c.Merchant.ID
	}
	return ""
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
