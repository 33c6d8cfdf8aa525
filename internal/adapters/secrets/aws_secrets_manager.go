package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"go.uber.org/zap"
)

// AWSSecretsManagerConfig contains configuration for AWS Secrets Manager adapter
type AWSSecretsManagerConfig struct {
	// AWS Region (e.g., "ap-southeast-2")
	Region string

	// Optional: AWS profile name (for local development)
	Profile string

	// Optional: Custom endpoint (for LocalStack testing)
	Endpoint string

	CacheTTL    time.Duration
	EnableCache bool
}

// DefaultAWSSecretsManagerConfig returns default configuration
func DefaultAWSSecretsManagerConfig(region string) *AWSSecretsManagerConfig {
	return &AWSSecretsManagerConfig{
		Region:      region,
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// secretValueGetter is the slice of the Secrets Manager client this adapter uses
type secretValueGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// awsSecretsManagerAdapter implements the SecretManagerAdapter port for AWS Secrets Manager
type awsSecretsManagerAdapter struct {
	client secretValueGetter
	logger *zap.Logger
	cache  *secretCache
}

// NewAWSSecretsManagerAdapter creates a new AWS Secrets Manager adapter
func NewAWSSecretsManagerAdapter(ctx context.Context, cfg *AWSSecretsManagerConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	loadOptions := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		loadOptions = append(loadOptions, config.WithSharedConfigProfile(cfg.Profile))
	}

	// Default credentials chain (IAM role in production)
	awsConfig, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var clientOptions []func(*secretsmanager.Options)
	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, func(o *secretsmanager.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	logger.Info("AWS Secrets Manager adapter initialized",
		zap.String("region", cfg.Region),
		zap.Bool("cache_enabled", cfg.EnableCache),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)

	return newAWSSecretsManagerAdapter(secretsmanager.NewFromConfig(awsConfig, clientOptions...), cfg, logger), nil
}

func newAWSSecretsManagerAdapter(client secretValueGetter, cfg *AWSSecretsManagerConfig, logger *zap.Logger) *awsSecretsManagerAdapter {
	return &awsSecretsManagerAdapter{
		client: client,
		logger: logger,
		cache:  newSecretCache(cfg.EnableCache, cfg.CacheTTL),
	}
}

// GetSecret retrieves a secret by its path
// Path format: "securepay/merchants/{merchant_id}" or full ARN
func (a *awsSecretsManagerAdapter) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := a.cache.get(path); cached != nil {
		a.logger.Debug("Secret retrieved from cache", zap.String("path", path))
		return cached, nil
	}

	a.logger.Info("Retrieving secret from AWS Secrets Manager", zap.String("path", path))

	startTime := time.Now()
	result, err := a.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(path),
	})
	if err != nil {
		a.logger.Error("Failed to retrieve secret",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get secret %s: %w", path, err)
	}

	a.logger.Info("Secret retrieved successfully",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	secret := secretFromOutput(result)
	a.cache.set(path, secret)

	return secret, nil
}

// GetSecretVersion retrieves a specific version of a secret
func (a *awsSecretsManagerAdapter) GetSecretVersion(ctx context.Context, path string, version string) (*ports.Secret, error) {
	a.logger.Info("Retrieving secret version from AWS Secrets Manager",
		zap.String("path", path),
		zap.String("version", version),
	)

	result, err := a.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:  aws.String(path),
		VersionId: aws.String(version),
	})
	if err != nil {
		a.logger.Error("Failed to retrieve secret version",
			zap.String("path", path),
			zap.String("version", version),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get secret version %s: %w", version, err)
	}

	return secretFromOutput(result), nil
}

func secretFromOutput(result *secretsmanager.GetSecretValueOutput) *ports.Secret {
	secret := &ports.Secret{
		Value:    aws.ToString(result.SecretString),
		Version:  aws.ToString(result.VersionId),
		Metadata: make(map[string]string),
	}
	if result.CreatedDate != nil {
		secret.CreatedAt = result.CreatedDate.Format(time.RFC3339)
	}
	if result.ARN != nil {
		secret.Metadata["arn"] = *result.ARN
	}
	if result.Name != nil {
		secret.Metadata["name"] = *result.Name
	}
	return secret
}
