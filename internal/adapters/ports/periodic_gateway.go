package ports

import (
	"context"

	"github.com/kevin07696/securepay-periodic/internal/domain"
)

// PeriodicAction is the actionType sent in a Periodic request
type PeriodicAction string

const (
	PeriodicActionAdd     PeriodicAction = "add"
	PeriodicActionEdit    PeriodicAction = "edit"
	PeriodicActionTrigger PeriodicAction = "trigger"
)

// PeriodicResponse is the parsed result of one Periodic exchange
type PeriodicResponse struct {
	// Request identification
	Action    PeriodicAction
	MessageID string // messageID sent in MessageInfo

	// Envelope status (0 = accepted for processing)
	StatusCode        int
	StatusDescription string

	// Business outcome; success codes depend on the action
	ResponseCode int
	ResponseText string

	// Gateway transaction ID, set only for a successful trigger
	TransactionID string

	// Derived from ResponseCode
	Successful bool

	// Raw response for audit logging
	RawXML string
}

// PeriodicGatewayAdapter defines the port for SecurePay Periodic (card-on-file) operations
//
// Every operation builds one XML message, posts it once and parses the reply.
// Nothing is retried; the caller owns retry policy.
//
// Error model:
//   - *securepay.TransportError: endpoint malformed or request could not be delivered
//   - *securepay.ParseError: an expected response field is missing or not numeric
//   - *securepay.GatewayError: envelope statusCode != 0 (business fields are not read)
//   - domain validation error: input rejected before any I/O
//
// A business decline is NOT an error: the response is returned with Successful=false.
type PeriodicGatewayAdapter interface {
	// StoreCard registers a card under card.ClientID
	// Sends actionType=add with a placeholder amount of 1; successful iff responseCode == 0
	StoreCard(ctx context.Context, card domain.Card) (*PeriodicResponse, error)

	// UpdateStoredCard replaces the card details held under card.ClientID
	// Sends actionType=edit; successful iff responseCode == 0
	UpdateStoredCard(ctx context.Context, card domain.Card) (*PeriodicResponse, error)

	// DebitStoredCard charges the card stored under clientID
	// Sends actionType=trigger; successful iff responseCode is 0 (approved) or 8 (accepted)
	// On success TransactionID carries the gateway's txnID
	DebitStoredCard(ctx context.Context, clientID, transactionReference string, amount domain.Money) (*PeriodicResponse, error)
}
