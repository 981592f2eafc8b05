package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRateType enumerates how a tax rate derives its amount.
type TaxRateType string

const (
	// TaxRatePercentage multiplies the taxable base by Rate/100.
	TaxRatePercentage TaxRateType = "percentage"
	// TaxRateFlat charges FlatAmount regardless of the base.
	TaxRateFlat TaxRateType = "flat_rate"
	// TaxRatePerUnit charges FlatAmount for each taxed unit.
	TaxRatePerUnit TaxRateType = "per_unit"
)

// TaxZone is a geographic region tax rates are bound to.
type TaxZone struct {
	ID   string
	Name string
	ZoneRules
}

// TaxCategory groups products under a common tax treatment.
type TaxCategory struct {
	ID   string
	Name string
}

// TaxRate binds a zone and a category to a rate definition. Priority orders
// evaluation when several rates apply; compound rates tax the base plus the
// tax already accumulated by earlier rates.
type TaxRate struct {
	ID         string
	Name       string
	ZoneID     string
	CategoryID string

	RateType   TaxRateType
	Rate       decimal.Decimal
	FlatAmount decimal.Decimal
	IsCompound bool
	Priority   int

	MinimumAmount *decimal.Decimal
	MaximumAmount *decimal.Decimal
	MaximumTax    *decimal.Decimal

	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	IsActive      bool
}

// EffectiveAt reports whether the rate's effective-date window contains now.
// Both bounds are optional and inclusive.
func (r TaxRate) EffectiveAt(now time.Time) bool {
	if r.EffectiveFrom != nil && now.Before(*r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && now.After(*r.EffectiveTo) {
		return false
	}
	return true
}
