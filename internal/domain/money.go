package domain

import (
	"fmt"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Currency describes how an amount is expressed on the wire.
type Currency struct {
	Code       string
	Symbol     string
	MinorUnits int32
}

// AUD is the gateway's settlement currency.
var AUD = Currency{Code: "AUD", Symbol: "$", MinorUnits: 2}

// Money is a decimal amount in an explicit currency.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewMoney parses a decimal string such as "12.50".
func NewMoney(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, WrapError(ErrorCodeValidationAmountInvalid, "amount is not a decimal number", err).
			WithDetail("amount", amount)
	}
	return Money{Amount: d, Currency: currency}, nil
}

// MoneyFromMinorUnits is the inverse of MinorUnits, e.g. 1250 AUD cents -> 12.50.
func MoneyFromMinorUnits(units int64, currency Currency) Money {
	return Money{Amount: decimal.New(units, -currency.MinorUnits), Currency: currency}
}

// MustMoney is NewMoney for constants and tests.
func MustMoney(amount string, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// MinorUnits converts the amount to an integer count of the currency's minor unit.
// Amounts that are negative or carry more precision than the currency allows are rejected.
func (m Money) MinorUnits() (decimal.Decimal, error) {
	if m.Amount.IsNegative() {
		return decimal.Zero, NewDomainError(ErrorCodeValidationAmountInvalid, "amount must not be negative").
			WithDetail("amount", m.Amount.String())
	}
	shifted := m.Amount.Shift(m.Currency.MinorUnits)
	if !shifted.Equal(shifted.Truncate(0)) {
		return decimal.Zero, NewDomainError(ErrorCodeValidationAmountInvalid,
			fmt.Sprintf("amount has more than %d decimal places", m.Currency.MinorUnits)).
			WithDetail("amount", m.Amount.String()).
			WithDetail("currency", m.Currency.Code)
	}
	return shifted.Truncate(0), nil
}

// MinorUnitString renders the amount as a plain digit string, e.g. 12.50 AUD -> "1250".
func (m Money) MinorUnitString() (string, error) {
	units, err := m.MinorUnits()
	if err != nil {
		return "", err
	}
	return units.StringFixed(0), nil
}

// Display formats the amount for people, e.g. "$1,234.50".
func (m Money) Display() string {
	ac := accounting.DefaultAccounting(m.Currency.Symbol, int(m.Currency.MinorUnits))
	return ac.FormatMoneyBigRat(m.Amount.Rat())
}

func (m Money) String() string {
	return m.Amount.StringFixed(m.Currency.MinorUnits) + " " + m.Currency.Code
}
