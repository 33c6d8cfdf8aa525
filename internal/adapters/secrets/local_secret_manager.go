package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"go.uber.org/zap"
)

// localSecretManager implements SecretManagerAdapter using local filesystem
// WARNING: This is for development only. Use AWS Secrets Manager or Vault in production.
type localSecretManager struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalSecretManager creates a new local filesystem secret manager
func NewLocalSecretManager(basePath string, logger *zap.Logger) ports.SecretManagerAdapter {
	return &localSecretManager{
		basePath: basePath,
		logger:   logger,
	}
}

// GetSecret reads basePath/secretPath.
// A file holding {"value": "..."} yields that value; anything else is returned verbatim.
func (m *localSecretManager) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	filePath, err := m.resolve(secretPath)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Reading secret from filesystem",
		zap.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("secret not found: %s", secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	var wrapped struct {
		Value     string            `json:"value"`
		Tags      map[string]string `json:"tags"`
		CreatedAt string            `json:"created_at"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Value != "" {
		return &ports.Secret{
			Value:     wrapped.Value,
			Version:   "v1",
			Metadata:  wrapped.Tags,
			CreatedAt: wrapped.CreatedAt,
		}, nil
	}

	return &ports.Secret{
		Value:   strings.TrimSpace(string(data)),
		Version: "v1",
	}, nil
}

// GetSecretVersion ignores version; the filesystem only holds the latest value
func (m *localSecretManager) GetSecretVersion(ctx context.Context, path string, version string) (*ports.Secret, error) {
	return m.GetSecret(ctx, path)
}

// resolve joins secretPath under basePath and refuses paths that escape it
func (m *localSecretManager) resolve(secretPath string) (string, error) {
	filePath := filepath.Join(m.basePath, secretPath)
	rel, err := filepath.Rel(m.basePath, filePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("secret path escapes base directory: %s", secretPath)
	}
	return filePath, nil
}
