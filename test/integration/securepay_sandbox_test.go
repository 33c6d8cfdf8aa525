//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/kevin07696/securepay-periodic/internal/adapters/securepay"
	"github.com/kevin07696/securepay-periodic/internal/domain"
	"github.com/kevin07696/securepay-periodic/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Runs against the SecurePay test environment:
//
//	SECUREPAY_SANDBOX_MERCHANT_ID=ABC0001 SECUREPAY_SANDBOX_PASSWORD=abc123 \
//	  go test -tags=integration ./test/integration/...
func sandboxMerchant(t *testing.T) domain.MerchantCredentials {
	t.Helper()
	id := os.Getenv("SECUREPAY_SANDBOX_MERCHANT_ID")
	password := os.Getenv("SECUREPAY_SANDBOX_PASSWORD")
	if id == "" || password == "" {
		t.Skip("SECUREPAY_SANDBOX_MERCHANT_ID / SECUREPAY_SANDBOX_PASSWORD not set")
	}
	return domain.MerchantCredentials{
		MerchantID:    id,
		Secret:        password,
		Endpoint:      domain.SandboxPeriodicURL,
		OffsetMinutes: 600,
	}
}

func TestSandbox_StoreUpdateDebit(t *testing.T) {
	merchant := sandboxMerchant(t)
	exchanges := mocks.NewMockExchangeLogger()
	gateway := securepay.NewPeriodicAdapter(merchant, nil, zap.NewNop(), securepay.WithExchangeLogger(exchanges))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	clientID := fmt.Sprintf("it-%d", time.Now().UnixNano())
	expiry := time.Now().AddDate(2, 0, 0).Format("0106")

	t.Run("store", func(t *testing.T) {
		resp, err := gateway.StoreCard(ctx, domain.Card{ClientID: clientID, Number: "4444333322221111", Expiry: expiry})
		require.NoError(t, err)
		assert.True(t, resp.Successful, "%d %s", resp.ResponseCode, resp.ResponseText)
	})

	t.Run("update", func(t *testing.T) {
		resp, err := gateway.UpdateStoredCard(ctx, domain.Card{ClientID: clientID, Number: "5555555555554444", Expiry: expiry})
		require.NoError(t, err)
		assert.True(t, resp.Successful, "%d %s", resp.ResponseCode, resp.ResponseText)
	})

	t.Run("debit", func(t *testing.T) {
		// cents ending 00 approve in the test environment
		resp, err := gateway.DebitStoredCard(ctx, clientID, "it-"+clientID, domain.MustMoney("1.00", domain.AUD))
		require.NoError(t, err)
		assert.True(t, resp.Successful, "%d %s", resp.ResponseCode, resp.ResponseText)
		assert.NotEmpty(t, resp.TransactionID)
	})

	assert.Len(t, exchanges.Exchanges, 3)
}

func TestSandbox_BadPassword(t *testing.T) {
	merchant := sandboxMerchant(t)
	merchant.Secret = "definitely-wrong"
	gateway := securepay.NewPeriodicAdapter(merchant, nil, zap.NewNop())

	_, err := gateway.StoreCard(context.Background(), domain.Card{ClientID: "it-bad", Number: "4444333322221111", Expiry: "0830"})

	var gatewayErr *securepay.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.NotZero(t, gatewayErr.StatusCode)
}
