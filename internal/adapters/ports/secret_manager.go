package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (e.g., merchant credential JSON)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManagerAdapter defines the port for reading secrets from a secret management service
// Supports multiple backends: local filesystem (development), AWS Secrets Manager, HashiCorp Vault
// Implementation is responsible for:
//   - Authentication with the secret manager service
//   - Caching secrets appropriately (with TTL)
type SecretManagerAdapter interface {
	// GetSecret retrieves a secret by its path/name
	// Path format depends on implementation:
	//   - Local: relative file path under the base directory
	//   - AWS: "securepay/merchants/{merchant_id}" or full ARN
	//   - Vault: "securepay/merchants/{merchant_id}" (mount path is prepended)
	// Returns error if:
	//   - Secret does not exist
	//   - Insufficient permissions
	//   - Network communication fails
	GetSecret(ctx context.Context, path string) (*Secret, error)

	// GetSecretVersion retrieves a specific version of a secret
	// Useful while merchant passwords are being rotated
	GetSecretVersion(ctx context.Context, path string, version string) (*Secret, error)
}
