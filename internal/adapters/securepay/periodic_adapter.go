package securepay

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"github.com/kevin07696/securepay-periodic/internal/domain"
	pkghttp "github.com/kevin07696/securepay-periodic/pkg/http"
	"github.com/kevin07696/securepay-periodic/pkg/observability"
	"github.com/kevin07696/securepay-periodic/pkg/timeutil"
	"go.uber.org/zap"
)

// responseCode 8 on a trigger is "honour with identification", an approval.
const responseCodeAcceptedVariant = 8

const exchangeRecordTimeout = 5 * time.Second

// Option configures optional collaborators of the Periodic adapter
type Option func(*periodicAdapter)

// WithHTTPClient replaces the pooled client built from PeriodicConfig
func WithHTTPClient(client ports.HTTPClient) Option {
	return func(a *periodicAdapter) {
		a.httpClient = client
	}
}

// WithExchangeLogger records every completed exchange for audit
func WithExchangeLogger(exchanges ports.ExchangeLogger) Option {
	return func(a *periodicAdapter) {
		a.exchanges = exchanges
	}
}

// periodicAdapter implements the PeriodicGatewayAdapter port
type periodicAdapter struct {
	merchant   domain.Merchant
	config     *PeriodicConfig
	builder    *messageBuilder
	httpClient ports.HTTPClient
	transport  *httpTransport
	exchanges  ports.ExchangeLogger
	logger     *zap.Logger
}

// NewPeriodicAdapter creates a SecurePay Periodic adapter for one merchant.
// merchant must be non-nil; its BaseURL is checked on every send.
func NewPeriodicAdapter(merchant domain.Merchant, config *PeriodicConfig, logger *zap.Logger, opts ...Option) ports.PeriodicGatewayAdapter {
	return newPeriodicAdapter(merchant, config, logger, opts...)
}

func newPeriodicAdapter(merchant domain.Merchant, config *PeriodicConfig, logger *zap.Logger, opts ...Option) *periodicAdapter {
	if config == nil {
		config = DefaultPeriodicConfig()
	}

	a := &periodicAdapter{
		merchant: merchant,
		config:   config,
		builder:  newMessageBuilder(merchant),
		logger:   logger.With(zap.String("merchant_id", merchant.ID())),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.httpClient == nil {
		clientConfig := pkghttp.SecurePayClientConfig()
		clientConfig.InsecureSkipVerify = config.InsecureSkipVerify
		a.httpClient = pkghttp.NewHTTPClient(clientConfig, config.Timeout)
	}
	a.transport = newHTTPTransport(a.httpClient, config, a.logger)

	return a
}

// StoreCard registers a card under card.ClientID (actionType=add)
func (a *periodicAdapter) StoreCard(ctx context.Context, card domain.Card) (*ports.PeriodicResponse, error) {
	return a.sendCard(ctx, ports.PeriodicActionAdd, card)
}

// UpdateStoredCard replaces the card held under card.ClientID (actionType=edit)
func (a *periodicAdapter) UpdateStoredCard(ctx context.Context, card domain.Card) (*ports.PeriodicResponse, error) {
	return a.sendCard(ctx, ports.PeriodicActionEdit, card)
}

func (a *periodicAdapter) sendCard(ctx context.Context, action ports.PeriodicAction, card domain.Card) (*ports.PeriodicResponse, error) {
	if err := card.Validate(); err != nil {
		observability.RecordRejectedRequest(string(action))
		return nil, err
	}

	a.logger.Info("Sending card to SecurePay",
		zap.String("action", string(action)),
		zap.String("client_id", card.ClientID),
		zap.String("card", card.Masked()),
	)

	var msg *outboundMessage
	var err error
	if action == ports.PeriodicActionAdd {
		msg, err = a.builder.buildAdd(card)
	} else {
		msg, err = a.builder.buildEdit(card)
	}
	if err != nil {
		return nil, err
	}

	resp, err := a.execute(ctx, msg, &ports.GatewayExchange{ClientID: card.ClientID})
	if err != nil {
		return nil, err
	}

	issuer := ""
	if i, ok := card.Issuer(); ok {
		issuer = i.Name()
	}
	observability.RecordStoredCard(a.merchant.ID(), string(action), issuer, outcomeOf(resp, nil))

	return resp, nil
}

// DebitStoredCard charges the card stored under clientID (actionType=trigger)
func (a *periodicAdapter) DebitStoredCard(ctx context.Context, clientID, transactionReference string, amount domain.Money) (*ports.PeriodicResponse, error) {
	action := ports.PeriodicActionTrigger

	if strings.TrimSpace(clientID) == "" {
		observability.RecordRejectedRequest(string(action))
		return nil, domain.NewDomainError(domain.ErrorCodeCardClientIDMissing, "client_id is required")
	}
	if strings.TrimSpace(transactionReference) == "" {
		observability.RecordRejectedRequest(string(action))
		return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField, "transaction reference is required")
	}
	minor, err := amount.MinorUnits()
	if err != nil {
		observability.RecordRejectedRequest(string(action))
		return nil, err
	}
	amountMinor := minor.IntPart()

	a.logger.Info("Debiting stored card",
		zap.String("client_id", clientID),
		zap.String("reference", transactionReference),
		zap.String("amount", amount.String()),
	)

	msg, err := a.builder.buildTrigger(clientID, transactionReference, amount)
	if err != nil {
		return nil, err
	}

	resp, err := a.execute(ctx, msg, &ports.GatewayExchange{
		ClientID:    clientID,
		Reference:   transactionReference,
		AmountMinor: &amountMinor,
	})
	if err != nil {
		return nil, err
	}

	observability.RecordDebit(a.merchant.ID(), amount.Currency.Code, outcomeOf(resp, nil), amountMinor)

	return resp, nil
}

// execute sends msg, interprets the reply and records the exchange
func (a *periodicAdapter) execute(ctx context.Context, msg *outboundMessage, exchange *ports.GatewayExchange) (*ports.PeriodicResponse, error) {
	done := observability.GatewayRequestStarted(string(msg.Action))
	start := time.Now()

	body, err := a.transport.send(ctx, a.merchant.BaseURL(), msg.XML)

	var resp *ports.PeriodicResponse
	if err == nil {
		resp, err = interpret(body, msg)
	}

	outcome := outcomeOf(resp, err)
	done(outcome)

	fields := []zap.Field{
		zap.String("action", string(msg.Action)),
		zap.String("message_id", msg.ID),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		a.logger.Error("SecurePay request failed", append(fields, zap.Error(err))...)
	} else {
		a.logger.Info("SecurePay request completed", append(fields,
			zap.Int("response_code", resp.ResponseCode),
			zap.String("response_text", resp.ResponseText),
			zap.String("txn_id", resp.TransactionID),
		)...)
	}

	exchange.MessageID = msg.ID
	exchange.Action = msg.Action
	exchange.Outcome = outcome
	exchange.RawResponse = body
	exchange.Elapsed = time.Since(start)
	fillExchangeResult(exchange, resp, err)
	a.record(ctx, exchange)

	return resp, err
}

// interpret applies the two-tier status model to a raw reply.
// The envelope statusCode is checked first; business fields are read only
// when the envelope was accepted.
func interpret(body string, msg *outboundMessage) (*ports.PeriodicResponse, error) {
	statusCode, err := nodeInt(body, fieldStatusCode)
	if err != nil {
		return nil, err
	}
	if statusCode != 0 {
		description, err := nodeValue(body, fieldStatusDescription)
		if err != nil {
			return nil, err
		}
		return nil, &GatewayError{StatusCode: statusCode, Description: description}
	}

	responseCode, err := nodeInt(body, fieldResponseCode)
	if err != nil {
		return nil, err
	}
	responseText, err := nodeValue(body, fieldResponseText)
	if err != nil {
		return nil, err
	}

	// statusDescription is informational once the envelope is accepted
	statusDescription, _ := nodeValue(body, fieldStatusDescription)

	resp := &ports.PeriodicResponse{
		Action:            msg.Action,
		MessageID:         msg.ID,
		StatusCode:        statusCode,
		StatusDescription: statusDescription,
		ResponseCode:      responseCode,
		ResponseText:      responseText,
		Successful:        isSuccessful(msg.Action, responseCode),
		RawXML:            body,
	}

	if resp.Successful && msg.Action == ports.PeriodicActionTrigger {
		txnID, err := nodeValue(body, fieldTxnID)
		if err != nil {
			return nil, err
		}
		resp.TransactionID = strings.TrimSpace(txnID)
	}

	return resp, nil
}

// isSuccessful reports whether responseCode approves the action
func isSuccessful(action ports.PeriodicAction, responseCode int) bool {
	if responseCode == 0 {
		return true
	}
	return action == ports.PeriodicActionTrigger && responseCode == responseCodeAcceptedVariant
}

func outcomeOf(resp *ports.PeriodicResponse, err error) string {
	var gatewayErr *GatewayError
	var parseErr *ParseError

	switch {
	case errors.As(err, &gatewayErr):
		return observability.OutcomeGatewayError
	case errors.As(err, &parseErr):
		return observability.OutcomeParseError
	case err != nil:
		return observability.OutcomeTransportError
	case resp.Successful:
		return observability.OutcomeApproved
	default:
		return observability.OutcomeDeclined
	}
}

func fillExchangeResult(exchange *ports.GatewayExchange, resp *ports.PeriodicResponse, err error) {
	if resp != nil {
		exchange.StatusCode = &resp.StatusCode
		exchange.ResponseCode = &resp.ResponseCode
		exchange.TransactionID = resp.TransactionID
		return
	}

	exchange.ErrorMessage = err.Error()
	var gatewayErr *GatewayError
	if errors.As(err, &gatewayErr) {
		code := gatewayErr.StatusCode
		exchange.StatusCode = &code
	}
}

// record hands the exchange to the audit log. Failures are logged, never returned.
func (a *periodicAdapter) record(ctx context.Context, exchange *ports.GatewayExchange) {
	if a.exchanges == nil {
		return
	}

	exchange.MerchantID = a.merchant.ID()
	exchange.CreatedAt = timeutil.Now()

	// recorded even when ctx is already cancelled
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), exchangeRecordTimeout)
	defer cancel()

	if err := a.exchanges.Record(recordCtx, exchange); err != nil {
		a.logger.Warn("Failed to record SecurePay exchange",
			zap.String("message_id", exchange.MessageID),
			zap.Error(err),
		)
	}
}
