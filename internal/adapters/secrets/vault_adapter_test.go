package secrets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeVault serves KV v2 reads for a fixed set of paths
func fakeVault(t *testing.T, secrets map[string]map[string]interface{}) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var requests []*http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r)
		data, ok := secrets[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[]}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"data": data,
				"metadata": map[string]interface{}{
					"version":      3,
					"created_time": "2025-01-02T03:04:05Z",
				},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func newTestVault(t *testing.T, server *httptest.Server) *vaultAdapter {
	t.Helper()
	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "dev-token"
	adapter, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	return adapter.(*vaultAdapter)
}

func TestVaultAdapter_GetSecret(t *testing.T) {
	server, requests := fakeVault(t, map[string]map[string]interface{}{
		"/v1/secret/data/securepay/merchants/ABC0001": {
			"merchant_id":         "ABC0001",
			"password":            "abc123",
			"zone_offset_minutes": 600,
		},
		"/v1/secret/data/plain": {"value": "abc123", "owner": "billing"},
	})
	adapter := newTestVault(t, server)
	ctx := context.Background()

	t.Run("fields become a JSON document", func(t *testing.T) {
		secret, err := adapter.GetSecret(ctx, "securepay/merchants/ABC0001")
		require.NoError(t, err)
		assert.JSONEq(t, `{"merchant_id":"ABC0001","password":"abc123","zone_offset_minutes":600}`, secret.Value)
		assert.Equal(t, "3", secret.Version)
		assert.Equal(t, "2025-01-02T03:04:05Z", secret.CreatedAt)
	})

	t.Run("value key is returned as-is", func(t *testing.T) {
		secret, err := adapter.GetSecret(ctx, "plain")
		require.NoError(t, err)
		assert.Equal(t, "abc123", secret.Value)
		assert.Equal(t, "billing", secret.Metadata["owner"])
	})

	t.Run("cached", func(t *testing.T) {
		before := len(*requests)
		_, err := adapter.GetSecret(ctx, "plain")
		require.NoError(t, err)
		assert.Len(t, *requests, before)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := adapter.GetSecret(ctx, "missing")
		require.Error(t, err)
	})

	t.Run("token is sent", func(t *testing.T) {
		assert.Equal(t, "dev-token", (*requests)[0].Header.Get("X-Vault-Token"))
	})
}

func TestVaultAdapter_GetSecretVersion(t *testing.T) {
	server, requests := fakeVault(t, map[string]map[string]interface{}{
		"/v1/secret/data/plain": {"value": "old"},
	})
	adapter := newTestVault(t, server)

	secret, err := adapter.GetSecretVersion(context.Background(), "plain", "2")
	require.NoError(t, err)
	assert.Equal(t, "old", secret.Value)
	assert.Equal(t, "2", (*requests)[0].URL.Query().Get("version"))
}

func TestVaultAdapter_Auth(t *testing.T) {
	cfg := DefaultVaultConfig("http://127.0.0.1:1")
	_, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "token is required")

	cfg.AuthMethod = "kubernetes"
	_, err = NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported auth method")
}
