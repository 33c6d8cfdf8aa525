package main

import (
	"context"
	"fmt"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"github.com/kevin07696/securepay-periodic/internal/adapters/secrets"
	"github.com/kevin07696/securepay-periodic/internal/config"
	"github.com/kevin07696/securepay-periodic/internal/domain"
	"go.uber.org/zap"
)

// loadMerchant resolves merchant credentials from the configured source.
//
// SECRET_MANAGER:
//   - env:   MERCHANT_ID, MERCHANT_PASSWORD, MERCHANT_ZONE_OFFSET_MINUTES, SECUREPAY_URL
//   - local: JSON document under LOCAL_SECRETS_PATH (development only)
//   - aws:   AWS Secrets Manager in AWS_REGION
//   - vault: HashiCorp Vault KV at VAULT_ADDR
func loadMerchant(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.MerchantCredentials, error) {
	if cfg.Secrets.Manager == "env" {
		merchant := cfg.EnvMerchant()
		if err := domain.ValidateMerchant(merchant); err != nil {
			return domain.MerchantCredentials{}, err
		}
		return merchant, nil
	}

	sm, err := initSecretManager(ctx, cfg, logger)
	if err != nil {
		return domain.MerchantCredentials{}, err
	}

	return secrets.NewMerchantProvider(sm, logger).Load(ctx, cfg.MerchantSecretPath())
}

func initSecretManager(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	switch cfg.Secrets.Manager {
	case "local":
		logger.Warn("Using local secret manager - NOT for production use!",
			zap.String("path", cfg.Secrets.LocalPath),
		)
		return secrets.NewLocalSecretManager(cfg.Secrets.LocalPath, logger), nil

	case "aws":
		awsCfg := secrets.DefaultAWSSecretsManagerConfig(cfg.Secrets.AWSRegion)
		awsCfg.Endpoint = cfg.Secrets.AWSEndpoint
		return secrets.NewAWSSecretsManagerAdapter(ctx, awsCfg, logger)

	case "vault":
		vaultCfg := secrets.DefaultVaultConfig(cfg.Secrets.VaultAddr)
		vaultCfg.Token = cfg.Secrets.VaultToken
		if cfg.Secrets.VaultMountPath != "" {
			vaultCfg.MountPath = cfg.Secrets.VaultMountPath
		}
		return secrets.NewVaultAdapter(ctx, vaultCfg, logger)

	default:
		return nil, fmt.Errorf("unsupported SECRET_MANAGER: %s", cfg.Secrets.Manager)
	}
}
