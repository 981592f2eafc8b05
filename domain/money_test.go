package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMoney_ValidatesCurrency(t *testing.T) {
	money, err := NewMoney(decimal.NewFromInt(10), " usd ")
	if err != nil {
		t.Fatalf("NewMoney returned error: %v", err)
	}
	if money.Currency != "USD" {
		t.Fatalf("expected normalized currency USD got %s", money.Currency)
	}

	if _, err := NewMoney(decimal.NewFromInt(10), "NOPE"); !errors.Is(err, ErrInvalidCurrency) {
		t.Fatalf("expected ErrInvalidCurrency got %v", err)
	}
	if _, err := NewMoney(decimal.NewFromInt(10), ""); !errors.Is(err, ErrInvalidCurrency) {
		t.Fatalf("expected ErrInvalidCurrency for empty code got %v", err)
	}
}

func TestMoney_CrossCurrencyArithmeticFails(t *testing.T) {
	usd := Money{Amount: decimal.NewFromInt(10), Currency: "USD"}
	eur := Money{Amount: decimal.NewFromInt(10), Currency: "EUR"}

	if _, err := usd.Add(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("Add: expected ErrCurrencyMismatch got %v", err)
	}
	if _, err := usd.Sub(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("Sub: expected ErrCurrencyMismatch got %v", err)
	}
	if _, err := usd.Cmp(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("Cmp: expected ErrCurrencyMismatch got %v", err)
	}
}

func TestMoney_RoundHalfAwayFromZero(t *testing.T) {
	up := Money{Amount: decimal.RequireFromString("2.345"), Currency: "USD"}
	if got := up.Round().Amount.String(); got != "2.35" {
		t.Fatalf("expected 2.345 to round to 2.35, got %s", got)
	}

	down := Money{Amount: decimal.RequireFromString("-2.345"), Currency: "USD"}
	if got := down.Round().Amount.String(); got != "-2.35" {
		t.Fatalf("expected -2.345 to round to -2.35, got %s", got)
	}
}

func TestMoney_NonNegativeClampsBelowZero(t *testing.T) {
	negative := Money{Amount: decimal.NewFromInt(-4), Currency: "USD"}
	clamped := negative.NonNegative()
	if !clamped.IsZero() {
		t.Fatalf("expected clamp to zero, got %s", clamped.Amount)
	}
	if clamped.Currency != "USD" {
		t.Fatalf("clamp must preserve currency, got %q", clamped.Currency)
	}

	positive := Money{Amount: decimal.NewFromInt(4), Currency: "USD"}
	if got := positive.NonNegative(); !got.Amount.Equal(positive.Amount) {
		t.Fatalf("positive amounts must pass through, got %s", got.Amount)
	}
}

func TestOrderLine_UnitPrice(t *testing.T) {
	line := OrderLine{
		Quantity:   4,
		LineAmount: Money{Amount: decimal.NewFromInt(10), Currency: "USD"},
	}
	if got := line.UnitPrice().Amount.String(); got != "2.5" {
		t.Fatalf("expected unit price 2.5 got %s", got)
	}

	single := OrderLine{Quantity: 0, LineAmount: Money{Amount: decimal.NewFromInt(10), Currency: "USD"}}
	if got := single.UnitPrice().Amount.String(); got != "10" {
		t.Fatalf("zero quantity lines are one unit, got %s", got)
	}
}
