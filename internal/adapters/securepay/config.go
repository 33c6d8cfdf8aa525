package securepay

import (
	"time"
)

// PeriodicConfig contains configuration for the SecurePay Periodic adapter.
// The endpoint itself comes from the merchant (Merchant.BaseURL).
type PeriodicConfig struct {
	// HTTP client timeout for the whole exchange
	Timeout time.Duration

	// TLS configuration
	InsecureSkipVerify bool

	// Outbound rate limit; zero disables limiting
	RequestsPerSecond float64
	Burst             int

	// Cap on the response body read into memory
	MaxResponseBytes int64
}

// DefaultPeriodicConfig returns default configuration for the Periodic adapter
func DefaultPeriodicConfig() *PeriodicConfig {
	return &PeriodicConfig{
		// timeoutValue sent to the gateway is 60s
		Timeout:            70 * time.Second,
		InsecureSkipVerify: false,
		RequestsPerSecond:  0,
		Burst:              1,
		MaxResponseBytes:   1 << 20,
	}
}
