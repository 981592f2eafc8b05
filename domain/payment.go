package domain

import "github.com/shopspring/decimal"

// FeeType enumerates how a payment method's processing fee is derived.
type FeeType string

const (
	FeeNone               FeeType = "none"
	FeeFlat               FeeType = "flat_fee"
	FeePercentage         FeeType = "percentage"
	FeeFlatPlusPercentage FeeType = "flat_plus_percentage"
)

// PaymentMethodConfig describes a payment method's fee formula and the
// restrictions deciding whether it may be offered for an order.
type PaymentMethodConfig struct {
	ID   string
	Name string

	FeeType       FeeType
	FlatFee       decimal.Decimal
	PercentageFee decimal.Decimal
	MaxFee        *decimal.Decimal

	AllowedCountries      []string
	ExcludedCountries     []string
	AllowedCurrencies     []string
	AllowedCustomerGroups []string

	MinOrderAmount *decimal.Decimal
	MaxOrderAmount *decimal.Decimal

	IsActive bool
}
