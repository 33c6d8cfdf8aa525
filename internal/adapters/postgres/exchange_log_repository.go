package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
)

const insertExchangeSQL = `
INSERT INTO gateway_exchanges (
    message_id, merchant_id, action, client_id, transaction_reference, amount_minor,
    outcome, status_code, response_code, txn_id, error_message, raw_response,
    elapsed_ms, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (message_id) DO NOTHING`

const listExchangesByClientSQL = `
SELECT message_id, merchant_id, action, client_id, transaction_reference, amount_minor,
       outcome, status_code, response_code, txn_id, error_message, raw_response,
       elapsed_ms, created_at
FROM gateway_exchanges
WHERE merchant_id = $1 AND client_id = $2
ORDER BY created_at DESC, id DESC
LIMIT $3`

// ExchangeLogRepository stores gateway exchanges in PostgreSQL
type ExchangeLogRepository struct {
	db DBTX
}

// NewExchangeLogRepository creates a new exchange log repository
func NewExchangeLogRepository(db DBTX) *ExchangeLogRepository {
	return &ExchangeLogRepository{db: db}
}

var _ ports.ExchangeLogger = (*ExchangeLogRepository)(nil)

// Record inserts one exchange. A replayed message_id is ignored.
func (r *ExchangeLogRepository) Record(ctx context.Context, exchange *ports.GatewayExchange) error {
	if exchange == nil {
		return errors.New("exchange is required")
	}

	createdAt := exchange.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx, insertExchangeSQL,
		exchange.MessageID,
		exchange.MerchantID,
		string(exchange.Action),
		exchange.ClientID,
		nullText(exchange.Reference),
		nullInt8(exchange.AmountMinor),
		exchange.Outcome,
		nullInt4(exchange.StatusCode),
		nullInt4(exchange.ResponseCode),
		nullText(exchange.TransactionID),
		nullText(exchange.ErrorMessage),
		nullText(exchange.RawResponse),
		exchange.Elapsed.Milliseconds(),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert gateway exchange: %w", err)
	}

	return nil
}

// ListByClient returns the newest exchanges for one stored card, newest first
func (r *ExchangeLogRepository) ListByClient(ctx context.Context, merchantID, clientID string, limit int) ([]*ports.GatewayExchange, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, listExchangesByClientSQL, merchantID, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list gateway exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []*ports.GatewayExchange
	for rows.Next() {
		var (
			ex                       ports.GatewayExchange
			action                   string
			reference, txnID         pgtype.Text
			errorMessage, rawResp    pgtype.Text
			amountMinor              pgtype.Int8
			statusCode, responseCode pgtype.Int4
			elapsedMs                int64
		)
		if err := rows.Scan(
			&ex.MessageID, &ex.MerchantID, &action, &ex.ClientID, &reference, &amountMinor,
			&ex.Outcome, &statusCode, &responseCode, &txnID, &errorMessage, &rawResp,
			&elapsedMs, &ex.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan gateway exchange: %w", err)
		}

		ex.Action = ports.PeriodicAction(action)
		ex.Reference = reference.String
		ex.AmountMinor = int64Ptr(amountMinor)
		ex.StatusCode = intPtr(statusCode)
		ex.ResponseCode = intPtr(responseCode)
		ex.TransactionID = txnID.String
		ex.ErrorMessage = errorMessage.String
		ex.RawResponse = rawResp.String
		ex.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		exchanges = append(exchanges, &ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gateway exchanges: %w", err)
	}

	return exchanges, nil
}
