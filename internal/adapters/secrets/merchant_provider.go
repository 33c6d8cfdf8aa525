package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"github.com/kevin07696/securepay-periodic/internal/domain"
	"go.uber.org/zap"
)

// MerchantSecretPath returns the conventional secret path for a merchant
func MerchantSecretPath(merchantID string) string {
	return "securepay/merchants/" + merchantID
}

// merchantDocument is the JSON layout of a stored merchant secret
type merchantDocument struct {
	domain.MerchantCredentials
	// Environment picks the Periodic endpoint when base_url is empty
	Environment domain.Environment `json:"environment"`
}

// MerchantProvider resolves merchant credentials from a secret backend
type MerchantProvider struct {
	secrets ports.SecretManagerAdapter
	logger  *zap.Logger
}

// NewMerchantProvider creates a provider reading from secrets
func NewMerchantProvider(secrets ports.SecretManagerAdapter, logger *zap.Logger) *MerchantProvider {
	return &MerchantProvider{
		secrets: secrets,
		logger:  logger,
	}
}

// Load reads and validates the merchant stored at path
func (p *MerchantProvider) Load(ctx context.Context, path string) (domain.MerchantCredentials, error) {
	secret, err := p.secrets.GetSecret(ctx, path)
	if err != nil {
		return domain.MerchantCredentials{}, fmt.Errorf("failed to load merchant secret: %w", err)
	}
	return p.decode(path, secret)
}

// LoadVersion reads a pinned version of the merchant secret, used while a
// password rotation is in flight
func (p *MerchantProvider) LoadVersion(ctx context.Context, path, version string) (domain.MerchantCredentials, error) {
	secret, err := p.secrets.GetSecretVersion(ctx, path, version)
	if err != nil {
		return domain.MerchantCredentials{}, fmt.Errorf("failed to load merchant secret version %s: %w", version, err)
	}
	return p.decode(path, secret)
}

func (p *MerchantProvider) decode(path string, secret *ports.Secret) (domain.MerchantCredentials, error) {
	var doc merchantDocument
	if err := json.Unmarshal([]byte(secret.Value), &doc); err != nil {
		return domain.MerchantCredentials{}, domain.WrapError(domain.ErrorCodeMerchantInvalid, "merchant secret is not valid JSON", err).
			WithDetail("path", path)
	}

	merchant := doc.MerchantCredentials
	if strings.TrimSpace(merchant.Endpoint) == "" {
		merchant.Endpoint = doc.Environment.PeriodicURL()
	}

	if err := domain.ValidateMerchant(merchant); err != nil {
		return domain.MerchantCredentials{}, err
	}

	p.logger.Info("Merchant credentials loaded",
		zap.String("path", path),
		zap.String("merchant_id", merchant.MerchantID),
		zap.String("version", secret.Version),
		zap.String("base_url", merchant.Endpoint),
	)

	return merchant, nil
}
