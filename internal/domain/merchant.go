package domain

import (
	"net/url"
	"strings"
)

// Environment represents the SecurePay environment
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// Periodic API endpoints
const (
	SandboxPeriodicURL    = "https://test.securepay.com.au/xmlapi/periodic"
	ProductionPeriodicURL = "https://api.securepay.com.au/xmlapi/periodic"
)

// PeriodicURL returns the Periodic endpoint for the environment
func (e Environment) PeriodicURL() string {
	if e == EnvironmentProduction {
		return ProductionPeriodicURL
	}
	return SandboxPeriodicURL
}

// Merchant is the credential set a gateway client signs requests with.
// Implementations must be immutable for the lifetime of a client.
type Merchant interface {
	ID() string
	Password() string
	// BaseURL is the full Periodic endpoint requests are posted to
	BaseURL() string
	// ZoneOffsetMinutes is the merchant's local offset from UTC
	ZoneOffsetMinutes() int
}

// MerchantCredentials is the value implementation of Merchant.
type MerchantCredentials struct {
	MerchantID    string `json:"merchant_id"`
	Secret        string `json:"password"`
	Endpoint      string `json:"base_url"`
	OffsetMinutes int    `json:"zone_offset_minutes"`
}

func (m MerchantCredentials) ID() string             { return m.MerchantID }
func (m MerchantCredentials) Password() string       { return m.Secret }
func (m MerchantCredentials) BaseURL() string        { return m.Endpoint }
func (m MerchantCredentials) ZoneOffsetMinutes() int { return m.OffsetMinutes }

// ValidateMerchant checks that a merchant can sign and address a request.
func ValidateMerchant(m Merchant) error {
	if m == nil {
		return NewDomainError(ErrorCodeMerchantInvalid, "merchant is required")
	}
	if strings.TrimSpace(m.ID()) == "" {
		return NewDomainError(ErrorCodeMerchantInvalid, "merchant id is required")
	}
	if m.Password() == "" {
		return NewDomainError(ErrorCodeMerchantInvalid, "merchant password is required").
			WithDetail("merchant_id", m.ID())
	}
	u, err := url.Parse(m.BaseURL())
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return NewDomainError(ErrorCodeMerchantInvalid, "merchant base url must be an absolute http(s) url").
			WithDetail("merchant_id", m.ID()).
			WithDetail("base_url", m.BaseURL())
	}
	return nil
}
