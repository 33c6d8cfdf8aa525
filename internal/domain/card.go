package domain

import (
	"fmt"
	"strings"
)

// Card is a card on file, keyed by a merchant-chosen client ID.
// It lives only for the duration of a store or update call and is never persisted.
type Card struct {
	// ClientID is the token key the gateway stores the card under
	ClientID string `json:"client_id"`

	// Number is the PAN as entered; spaces and dashes are allowed
	Number string `json:"-"`

	// Expiry in MMYY form, e.g. "0828"
	Expiry string `json:"expiry"`
}

// Digits returns the PAN with every non-digit character removed.
func (c Card) Digits() string {
	var sb strings.Builder
	sb.Grow(len(c.Number))
	for _, r := range c.Number {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// LastFour returns the last four digits of the PAN
func (c Card) LastFour() string {
	digits := c.Digits()
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// Issuer classifies the card by its PAN.
func (c Card) Issuer() (CardIssuer, bool) {
	return GleanIssuer(c.Digits())
}

// Masked renders the PAN keeping the first six and last four digits.
func (c Card) Masked() string {
	digits := c.Digits()
	if len(digits) <= 10 {
		return strings.Repeat("*", len(digits))
	}
	return digits[:6] + strings.Repeat("*", len(digits)-10) + digits[len(digits)-4:]
}

// String never includes the full PAN, so a Card is safe to log.
func (c Card) String() string {
	return fmt.Sprintf("Card{client_id=%s number=%s expiry=%s}", c.ClientID, c.Masked(), c.Expiry)
}

// Validate checks the fields the gateway requires to store a card.
func (c Card) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return NewDomainError(ErrorCodeCardClientIDMissing, "client_id is required")
	}
	if c.Digits() == "" {
		return NewDomainError(ErrorCodeCardNumberMissing, "card number is required")
	}
	if !validExpiry(c.Expiry) {
		return NewDomainError(ErrorCodeCardExpiryInvalid, "expiry must be MMYY").
			WithDetail("expiry", c.Expiry)
	}
	return nil
}

// validExpiry accepts four digits with a month of 01-12.
func validExpiry(expiry string) bool {
	if len(expiry) != 4 {
		return false
	}
	for _, r := range expiry {
		if r < '0' || r > '9' {
			return false
		}
	}
	month := (expiry[0]-'0')*10 + (expiry[1] - '0')
	return month >= 1 && month <= 12
}
