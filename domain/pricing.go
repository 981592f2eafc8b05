package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote captures the aggregated monetary results of pricing an order context
// against a configuration snapshot.
type Quote struct {
	ID       string
	Currency string

	Subtotal Money
	Discount Money
	Tax      Money
	Shipping Money
	Total    Money

	ShippingOptions  []ShippingOption
	SelectedShipping *ShippingOption
	Discounts        []DiscountBreakdown
	Taxes            []TaxBreakdown
	PaymentOptions   []PaymentOption

	GeneratedAt time.Time
	Metadata    map[string]any
}

// ShippingOption is one costed zone/method/rate combination offered to the
// order.
type ShippingOption struct {
	RateID           string
	MethodID         string
	MethodName       string
	Cost             Money
	EstimateDaysMin  *int
	EstimateDaysMax  *int
	FreeShipping     bool
}

// DiscountBreakdown lists one applied discount and its computed amount.
type DiscountBreakdown struct {
	DiscountID  string
	Code        string
	Type        DiscountType
	Description string
	Amount      Money
}

// TaxBreakdown captures one tax rate's contribution to the quote.
type TaxBreakdown struct {
	RateID   string
	Name     string
	Rate     decimal.Decimal
	Compound bool
	Amount   Money
}

// PaymentOption is one available payment method with its processing fee.
type PaymentOption struct {
	MethodID string
	Name     string
	Fee      Money
}
