package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/kevin07696/securepay-periodic/internal/domain"
	"github.com/kevin07696/securepay-periodic/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMerchantProvider_Load(t *testing.T) {
	path := MerchantSecretPath("ABC0001")
	assert.Equal(t, "securepay/merchants/ABC0001", path)

	tests := []struct {
		name     string
		doc      string
		expected domain.MerchantCredentials
	}{
		{
			name: "explicit base url",
			doc:  `{"merchant_id":"ABC0001","password":"abc123","base_url":"https://gw.example.test/periodic","zone_offset_minutes":600}`,
			expected: domain.MerchantCredentials{
				MerchantID: "ABC0001", Secret: "abc123", Endpoint: "https://gw.example.test/periodic", OffsetMinutes: 600,
			},
		},
		{
			name: "production environment",
			doc:  `{"merchant_id":"ABC0001","password":"abc123","environment":"production","zone_offset_minutes":-300}`,
			expected: domain.MerchantCredentials{
				MerchantID: "ABC0001", Secret: "abc123", Endpoint: domain.ProductionPeriodicURL, OffsetMinutes: -300,
			},
		},
		{
			name: "sandbox by default",
			doc:  `{"merchant_id":"ABC0001","password":"abc123"}`,
			expected: domain.MerchantCredentials{
				MerchantID: "ABC0001", Secret: "abc123", Endpoint: domain.SandboxPeriodicURL,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secrets := mocks.NewMockSecretManager()
			secrets.SetSecret(path, tt.doc)

			merchant, err := NewMerchantProvider(secrets, zap.NewNop()).Load(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, merchant)
		})
	}
}

func TestMerchantProvider_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "abc123"},
		{"missing password", `{"merchant_id":"ABC0001"}`},
		{"missing id", `{"password":"abc123"}`},
		{"relative base url", `{"merchant_id":"ABC0001","password":"abc123","base_url":"/xmlapi/periodic"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secrets := mocks.NewMockSecretManager()
			secrets.SetSecret("m", tt.doc)

			_, err := NewMerchantProvider(secrets, zap.NewNop()).Load(context.Background(), "m")
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrorCodeMerchantInvalid))
		})
	}
}

func TestMerchantProvider_BackendError(t *testing.T) {
	secrets := mocks.NewMockSecretManager()
	secrets.Err = errors.New("vault sealed")

	_, err := NewMerchantProvider(secrets, zap.NewNop()).Load(context.Background(), "m")
	assert.ErrorIs(t, err, secrets.Err)
}

func TestMerchantProvider_LoadVersion(t *testing.T) {
	secrets := mocks.NewMockSecretManager()
	secrets.SetSecretVersion("m", "2", `{"merchant_id":"ABC0001","password":"previous"}`)

	merchant, err := NewMerchantProvider(secrets, zap.NewNop()).LoadVersion(context.Background(), "m", "2")
	require.NoError(t, err)
	assert.Equal(t, "previous", merchant.Password())
	assert.Equal(t, []string{"m@2"}, secrets.Calls)
}
