package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
)

// MockSecretManager is an in-memory SecretManagerAdapter
type MockSecretManager struct {
	mu       sync.Mutex
	secrets  map[string]*ports.Secret
	versions map[string]*ports.Secret // keyed by path + "@" + version

	Err   error
	Calls []string
}

// NewMockSecretManager creates a new mock secret manager
func NewMockSecretManager() *MockSecretManager {
	return &MockSecretManager{
		secrets:  make(map[string]*ports.Secret),
		versions: make(map[string]*ports.Secret),
	}
}

// SetSecret stores value as the latest version at path
func (m *MockSecretManager) SetSecret(path, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[path] = &ports.Secret{Value: value, Version: "latest"}
}

// SetSecretVersion stores value under a specific version
func (m *MockSecretManager) SetSecretVersion(path, version, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[path+"@"+version] = &ports.Secret{Value: value, Version: version}
}

// GetSecret implements SecretManagerAdapter.GetSecret
func (m *MockSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, path)

	if m.Err != nil {
		return nil, m.Err
	}
	secret, ok := m.secrets[path]
	if !ok {
		return nil, fmt.Errorf("secret not found: %s", path)
	}
	return secret, nil
}

// GetSecretVersion implements SecretManagerAdapter.GetSecretVersion
func (m *MockSecretManager) GetSecretVersion(ctx context.Context, path string, version string) (*ports.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, path+"@"+version)

	if m.Err != nil {
		return nil, m.Err
	}
	secret, ok := m.versions[path+"@"+version]
	if !ok {
		return nil, fmt.Errorf("secret version not found: %s v%s", path, version)
	}
	return secret, nil
}
