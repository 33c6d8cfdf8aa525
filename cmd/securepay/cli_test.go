package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"github.com/kevin07696/securepay-periodic/internal/domain"
	"github.com/kevin07696/securepay-periodic/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCLI(gateway ports.PeriodicGatewayAdapter) (*CLI, *bytes.Buffer) {
	var out bytes.Buffer
	return &CLI{
		ctx:      context.Background(),
		merchant: domain.MerchantCredentials{MerchantID: "ABC0001", Secret: "abc123", Endpoint: domain.SandboxPeriodicURL},
		currency: domain.AUD,
		workers:  2,
		gateway:  gateway,
		logger:   zap.NewNop(),
		stdout:   &out,
	}, &out
}

func TestCLI_StoreCard(t *testing.T) {
	gateway := mocks.NewMockPeriodicGateway()
	gateway.SetStoreResponse(&ports.PeriodicResponse{
		Action: ports.PeriodicActionAdd, Successful: true, ResponseText: "Approved", MessageID: "m1",
	}, nil)
	cli, out := newTestCLI(gateway)

	code, err := cli.storeCard("customer-42", "4111111111111111", "0828")
	require.NoError(t, err)
	assert.Equal(t, exitApproved, code)
	assert.Equal(t, "customer-42", gateway.LastStoreCard.ClientID)
	assert.Equal(t, "APPROVED add 411111******1111: 0 Approved [message m1]\n", out.String())
}

func TestCLI_UpdateCardDeclined(t *testing.T) {
	gateway := mocks.NewMockPeriodicGateway()
	gateway.SetUpdateResponse(&ports.PeriodicResponse{Action: ports.PeriodicActionEdit, ResponseCode: 5, ResponseText: "Do Not Honour"}, nil)
	cli, out := newTestCLI(gateway)

	code, err := cli.updateCard("customer-42", "5555555555554444", "1230")
	require.NoError(t, err)
	assert.Equal(t, exitDeclined, code)
	assert.True(t, strings.HasPrefix(out.String(), "DECLINED edit"))
}

func TestCLI_Debit(t *testing.T) {
	gateway := mocks.NewMockPeriodicGateway()
	cli, out := newTestCLI(gateway)

	code, err := cli.debit("customer-42", "INV-1", "1234.5")
	require.NoError(t, err)
	assert.Equal(t, exitApproved, code)
	require.Len(t, gateway.DebitCalls, 1)
	assert.Equal(t, "1234.5", gateway.DebitCalls[0].Amount.Amount.String())
	assert.Contains(t, out.String(), "$1,234.50")
	assert.Contains(t, out.String(), "(txn txn-INV-1)")

	_, err = cli.debit("customer-42", "INV-2", "lots")
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeValidationAmountInvalid))
}

func TestCLI_DebitError(t *testing.T) {
	gateway := mocks.NewMockPeriodicGateway()
	gateway.DebitFunc = func(clientID, reference string, amount domain.Money) (*ports.PeriodicResponse, error) {
		return nil, errors.New("securepay gateway: status 504: timeout")
	}
	cli, _ := newTestCLI(gateway)

	code, err := cli.debit("customer-42", "INV-1", "1")
	assert.Error(t, err)
	assert.Equal(t, exitError, code)
}

func TestCLI_Batch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "debits.csv")
	out := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(in, []byte("client_id,reference,amount\nc1,r1,10\nc2,r2,2.5\n"), 0o600))

	gateway := mocks.NewMockPeriodicGateway()
	cli, _ := newTestCLI(gateway)

	code, err := cli.batch(in, out)
	require.NoError(t, err)
	assert.Equal(t, exitApproved, code)
	assert.Equal(t, 2, gateway.DebitCallCount())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "c1,r1,10.00 AUD,approved")
	assert.Contains(t, lines[2], "c2,r2,2.50 AUD,approved")
}

func TestCLI_BatchRequiresFile(t *testing.T) {
	cli, _ := newTestCLI(mocks.NewMockPeriodicGateway())
	_, err := cli.batch("", "")
	assert.Error(t, err)
}

type fakeHistory struct {
	exchanges []*ports.GatewayExchange
	gotLimit  int
}

func (f *fakeHistory) ListByClient(ctx context.Context, merchantID, clientID string, limit int) ([]*ports.GatewayExchange, error) {
	f.gotLimit = limit
	return f.exchanges, nil
}

func TestCLI_History(t *testing.T) {
	code := 8
	history := &fakeHistory{exchanges: []*ports.GatewayExchange{{
		MessageID:     "m1",
		Action:        ports.PeriodicActionTrigger,
		Reference:     "INV-1",
		Outcome:       "approved",
		ResponseCode:  &code,
		TransactionID: "024259",
		CreatedAt:     time.Date(2025, 3, 7, 14, 5, 9, 0, time.UTC),
	}}}
	cli, out := newTestCLI(nil)
	cli.history = history

	exit, err := cli.showHistory("customer-42", 5)
	require.NoError(t, err)
	assert.Equal(t, exitApproved, exit)
	assert.Equal(t, 5, history.gotLimit)
	assert.Contains(t, out.String(), "2025-03-07T14:05:09Z")
	assert.Contains(t, out.String(), "024259")

	_, err = cli.showHistory("", 5)
	assert.Error(t, err)
}
