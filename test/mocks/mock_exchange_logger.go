package mocks

import (
	"context"
	"sync"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
)

// MockExchangeLogger captures recorded gateway exchanges
type MockExchangeLogger struct {
	mu        sync.Mutex
	Exchanges []*ports.GatewayExchange
	Err       error // returned from every Record call
}

// NewMockExchangeLogger creates a new mock exchange logger
func NewMockExchangeLogger() *MockExchangeLogger {
	return &MockExchangeLogger{}
}

// Record implements ExchangeLogger.Record
func (m *MockExchangeLogger) Record(ctx context.Context, exchange *ports.GatewayExchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Exchanges = append(m.Exchanges, exchange)
	return m.Err
}

// Last returns the most recent exchange, or nil
func (m *MockExchangeLogger) Last() *ports.GatewayExchange {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Exchanges) == 0 {
		return nil
	}
	return m.Exchanges[len(m.Exchanges)-1]
}
