package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Debits against stored cards
	debitAmountMinorTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securepay_debit_amount_minor_total",
		Help: "Total debited amount in currency minor units (cents)",
	}, []string{
		"merchant_id",
		"currency",
		"status", // approved, declined
	})

	storedCardsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securepay_stored_cards_total",
		Help: "Cards stored or updated with the gateway",
	}, []string{
		"merchant_id",
		"action", // add, edit
		"issuer", // VISA, MASTER, ... or unknown
		"status", // approved, declined
	})

	batchDebitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securepay_batch_debits_total",
		Help: "Debits processed through the batch runner",
	}, []string{
		"status", // approved, declined, failed
	})
)

// RecordDebit records the amount of a completed trigger
func RecordDebit(merchantID, currency, status string, amountMinor int64) {
	debitAmountMinorTotal.WithLabelValues(merchantID, currency, status).Add(float64(amountMinor))
}

// RecordStoredCard records a completed add or edit
func RecordStoredCard(merchantID, action, issuer, status string) {
	if issuer == "" {
		issuer = "unknown"
	}
	storedCardsTotal.WithLabelValues(merchantID, action, issuer, status).Inc()
}

// RecordBatchDebit records one row of a batch run
func RecordBatchDebit(status string) {
	batchDebitsTotal.WithLabelValues(status).Inc()
}
