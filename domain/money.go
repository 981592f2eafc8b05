package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	// ErrCurrencyMismatch is returned when arithmetic mixes two currencies.
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
	// ErrInvalidCurrency is returned when a currency code is not a valid ISO 4217 unit.
	ErrInvalidCurrency = errors.New("money: invalid currency code")
)

// Money is a decimal amount tagged with an ISO 4217 currency code. Arithmetic
// across differing currencies fails rather than coercing.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney builds a Money value, validating the currency code.
func NewMoney(amount decimal.Decimal, code string) (Money, error) {
	normalized, err := NormalizeCurrency(code)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: amount, Currency: normalized}, nil
}

// Zero returns a zero amount in the given currency without validating it.
func Zero(code string) Money {
	return Money{Amount: decimal.Zero, Currency: strings.ToUpper(strings.TrimSpace(code))}
}

// NormalizeCurrency trims, uppercases, and validates an ISO 4217 code.
func NormalizeCurrency(code string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCurrency)
	}
	unit, err := currency.ParseISO(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return unit.String(), nil
}

func (m Money) sameCurrency(o Money) error {
	if m.Currency != o.Currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return nil
}

// Add returns m + o, failing on mismatched currencies.
func (m Money) Add(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}, nil
}

// Sub returns m - o, failing on mismatched currencies. The result may be
// negative; callers clamp with NonNegative where the rules require it.
func (m Money) Sub(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Sub(o.Amount), Currency: m.Currency}, nil
}

// Mul scales the amount by a dimensionless factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Cmp compares two amounts, failing on mismatched currencies.
func (m Money) Cmp(o Money) (int, error) {
	if err := m.sameCurrency(o); err != nil {
		return 0, err
	}
	return m.Amount.Cmp(o.Amount), nil
}

// Round rounds to 2 decimal places, half away from zero.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(2), Currency: m.Currency}
}

// NonNegative clamps negative amounts to zero.
func (m Money) NonNegative() Money {
	if m.Amount.IsNegative() {
		return Money{Amount: decimal.Zero, Currency: m.Currency}
	}
	return m
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// String renders the rounded amount with its currency code.
func (m Money) String() string {
	return m.Amount.Round(2).StringFixed(2) + " " + m.Currency
}
