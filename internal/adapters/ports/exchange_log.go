package ports

import (
	"context"
	"time"
)

// GatewayExchange is one completed request/response with the gateway.
// It never carries the PAN or the merchant password.
type GatewayExchange struct {
	MessageID     string
	MerchantID    string
	Action        PeriodicAction
	ClientID      string
	Reference     string // transactionReference, trigger only
	AmountMinor   *int64 // trigger only
	Outcome       string // approved, declined, gateway_error, parse_error, transport_error
	StatusCode    *int
	ResponseCode  *int
	TransactionID string
	ErrorMessage  string
	RawResponse   string
	Elapsed       time.Duration
	CreatedAt     time.Time
}

// ExchangeLogger records gateway exchanges for audit and reconciliation
// Implementations must not block the payment path for long; callers log and
// ignore failures from Record.
type ExchangeLogger interface {
	Record(ctx context.Context, exchange *GatewayExchange) error
}
