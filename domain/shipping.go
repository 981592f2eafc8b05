package domain

import "github.com/shopspring/decimal"

// CalculationType enumerates how a shipping method derives its cost.
type CalculationType string

const (
	// CalculationFlatRate charges the configured base rate.
	CalculationFlatRate CalculationType = "flat_rate"
	// CalculationFreeShipping always costs zero.
	CalculationFreeShipping CalculationType = "free_shipping"
	// CalculationWeightBased charges base rate plus a per-weight-unit rate.
	CalculationWeightBased CalculationType = "weight_based"
	// CalculationPriceBased charges a percentage of the order total, clamped
	// into the method's minimum/maximum cost bounds.
	CalculationPriceBased CalculationType = "price_based"
	// CalculationPerItem charges base rate plus a per-item rate.
	CalculationPerItem CalculationType = "per_item"
	// CalculationCarrierCalculated stands in for real-time carrier quotes,
	// which live outside this engine; it charges the base rate.
	CalculationCarrierCalculated CalculationType = "carrier_calculated"
)

// ZoneRules holds the geographic inclusion/exclusion criteria shared by
// shipping and tax zones. State keys are formatted "{COUNTRY}-{STATE}".
type ZoneRules struct {
	Countries           []string
	States              []string
	PostalCodePatterns  []string
	Cities              []string
	ExcludedCountries   []string
	ExcludedStates      []string
	ExcludedPostalCodes []string
	IsDefault           bool
}

// HasInclusionCriteria reports whether any inclusion list is non-empty.
// A zone with no inclusion criteria matches only when it is the default.
func (z ZoneRules) HasInclusionCriteria() bool {
	return len(z.Countries) > 0 || len(z.States) > 0 || len(z.PostalCodePatterns) > 0 || len(z.Cities) > 0
}

// ShippingZone is an administrator-authored geographic region shipping rates
// are bound to.
type ShippingZone struct {
	ID   string
	Name string
	ZoneRules
}

// ShippingMethod describes one way of shipping an order, with zone-independent
// default parameters that rates may override.
type ShippingMethod struct {
	ID              string
	Name            string
	CalculationType CalculationType

	BaseRate          *decimal.Decimal
	WeightPerUnitRate *decimal.Decimal
	PricePercentage   *decimal.Decimal
	MinimumCost       *decimal.Decimal
	MaximumCost       *decimal.Decimal
	PerItemRate       *decimal.Decimal
	HandlingFee       *decimal.Decimal

	DeliveryEstimateMinDays *int
	DeliveryEstimateMaxDays *int
	IsActive                bool
}

// ShippingRate links one zone to one method. Any nil parameter falls back to
// the method's default, then to zero.
type ShippingRate struct {
	ID       string
	ZoneID   string
	MethodID string

	BaseRate          *decimal.Decimal
	WeightPerUnitRate *decimal.Decimal
	PricePercentage   *decimal.Decimal
	PerItemRate       *decimal.Decimal
	HandlingFee       *decimal.Decimal

	MinWeight      *decimal.Decimal
	MaxWeight      *decimal.Decimal
	MinOrderAmount *decimal.Decimal
	MaxOrderAmount *decimal.Decimal

	FreeShippingThreshold *decimal.Decimal
}
