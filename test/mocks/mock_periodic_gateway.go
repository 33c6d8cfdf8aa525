package mocks

import (
	"context"
	"sync"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"github.com/kevin07696/securepay-periodic/internal/domain"
)

// DebitCall is one captured DebitStoredCard invocation
type DebitCall struct {
	ClientID  string
	Reference string
	Amount    domain.Money
}

// MockPeriodicGateway is a mock implementation of PeriodicGatewayAdapter for testing
type MockPeriodicGateway struct {
	mu sync.Mutex

	// Responses to return
	storeResponse  *ports.PeriodicResponse
	storeError     error
	updateResponse *ports.PeriodicResponse
	updateError    error

	// DebitFunc decides each debit; when nil an approval is returned
	DebitFunc func(clientID, reference string, amount domain.Money) (*ports.PeriodicResponse, error)

	// Call tracking
	StoreCalls  int
	UpdateCalls int
	DebitCalls  []DebitCall

	// Last request received
	LastStoreCard  domain.Card
	LastUpdateCard domain.Card
}

// NewMockPeriodicGateway creates a new mock Periodic gateway
func NewMockPeriodicGateway() *MockPeriodicGateway {
	return &MockPeriodicGateway{}
}

// SetStoreResponse sets the response to return from StoreCard
func (m *MockPeriodicGateway) SetStoreResponse(resp *ports.PeriodicResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeResponse = resp
	m.storeError = err
}

// SetUpdateResponse sets the response to return from UpdateStoredCard
func (m *MockPeriodicGateway) SetUpdateResponse(resp *ports.PeriodicResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateResponse = resp
	m.updateError = err
}

// StoreCard implements PeriodicGatewayAdapter.StoreCard
func (m *MockPeriodicGateway) StoreCard(ctx context.Context, card domain.Card) (*ports.PeriodicResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreCalls++
	m.LastStoreCard = card
	return m.storeResponse, m.storeError
}

// UpdateStoredCard implements PeriodicGatewayAdapter.UpdateStoredCard
func (m *MockPeriodicGateway) UpdateStoredCard(ctx context.Context, card domain.Card) (*ports.PeriodicResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	m.LastUpdateCard = card
	return m.updateResponse, m.updateError
}

// DebitStoredCard implements PeriodicGatewayAdapter.DebitStoredCard
func (m *MockPeriodicGateway) DebitStoredCard(ctx context.Context, clientID, transactionReference string, amount domain.Money) (*ports.PeriodicResponse, error) {
	m.mu.Lock()
	m.DebitCalls = append(m.DebitCalls, DebitCall{ClientID: clientID, Reference: transactionReference, Amount: amount})
	fn := m.DebitFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(clientID, transactionReference, amount)
	}
	return &ports.PeriodicResponse{
		Action:        ports.PeriodicActionTrigger,
		ResponseText:  "Approved",
		TransactionID: "txn-" + transactionReference,
		Successful:    true,
	}, nil
}

// DebitCallCount returns the number of debits received
func (m *MockPeriodicGateway) DebitCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.DebitCalls)
}
