package engine

import (
	domain "github.com/checkout-core/pricing/domain"
)

// Type aliases expose domain models to the engine package without reversing
// dependency direction.
type (
	Address             = domain.Address
	Money               = domain.Money
	OrderContext        = domain.OrderContext
	OrderLine           = domain.OrderLine
	ZoneRules           = domain.ZoneRules
	ShippingZone        = domain.ShippingZone
	ShippingMethod      = domain.ShippingMethod
	ShippingRate        = domain.ShippingRate
	TaxZone             = domain.TaxZone
	TaxCategory         = domain.TaxCategory
	TaxRate             = domain.TaxRate
	Discount            = domain.Discount
	PaymentMethodConfig = domain.PaymentMethodConfig
	Snapshot            = domain.Snapshot
	Quote               = domain.Quote
	ShippingOption      = domain.ShippingOption
	DiscountBreakdown   = domain.DiscountBreakdown
	TaxBreakdown        = domain.TaxBreakdown
	PaymentOption       = domain.PaymentOption
)
