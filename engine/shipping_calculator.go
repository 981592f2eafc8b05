package engine

import (
	"github.com/shopspring/decimal"

	domain "github.com/checkout-core/pricing/domain"
)

// costParams bundles the resolved inputs a cost strategy works from.
type costParams struct {
	method      ShippingMethod
	rate        ShippingRate
	orderTotal  decimal.Decimal
	orderWeight decimal.Decimal
	itemCount   int64
}

type costStrategy func(costParams) decimal.Decimal

// costStrategies is the closed dispatch table over calculation types. An
// unregistered type falls back to the base rate, the same placeholder
// behavior CarrierCalculated uses, so cost resolution stays total.
var costStrategies = map[domain.CalculationType]costStrategy{
	domain.CalculationFlatRate:          baseRateCost,
	domain.CalculationFreeShipping:      func(costParams) decimal.Decimal { return decimal.Zero },
	domain.CalculationWeightBased:       weightBasedCost,
	domain.CalculationPriceBased:        priceBasedCost,
	domain.CalculationPerItem:           perItemCost,
	domain.CalculationCarrierCalculated: baseRateCost,
}

// MeetsRequirements reports whether an order's total and weight fall inside
// the rate's configured bounds. Each bound is optional; absence imposes no
// constraint.
func MeetsRequirements(rate ShippingRate, orderTotal Money, orderWeight decimal.Decimal) bool {
	if rate.MinWeight != nil && orderWeight.LessThan(*rate.MinWeight) {
		return false
	}
	if rate.MaxWeight != nil && orderWeight.GreaterThan(*rate.MaxWeight) {
		return false
	}
	if rate.MinOrderAmount != nil && orderTotal.Amount.LessThan(*rate.MinOrderAmount) {
		return false
	}
	if rate.MaxOrderAmount != nil && orderTotal.Amount.GreaterThan(*rate.MaxOrderAmount) {
		return false
	}
	return true
}

// CalculateCost computes the shipping cost for one zone/method/rate
// combination. The rate's free-shipping threshold short-circuits before the
// calculation type is consulted; the handling fee is added afterwards and the
// final cost never goes negative.
func CalculateCost(method ShippingMethod, rate ShippingRate, orderTotal Money, orderWeight decimal.Decimal, itemCount int) Money {
	if rate.FreeShippingThreshold != nil && orderTotal.Amount.GreaterThanOrEqual(*rate.FreeShippingThreshold) {
		return domain.Zero(orderTotal.Currency)
	}

	params := costParams{
		method:      method,
		rate:        rate,
		orderTotal:  orderTotal.Amount,
		orderWeight: orderWeight,
		itemCount:   int64(itemCount),
	}

	strategy, ok := costStrategies[method.CalculationType]
	if !ok {
		strategy = baseRateCost
	}
	cost := strategy(params)

	cost = cost.Add(resolveOverride(rate.HandlingFee, method.HandlingFee))

	result := Money{Amount: cost, Currency: orderTotal.Currency}
	return result.Round().NonNegative()
}

func baseRateCost(p costParams) decimal.Decimal {
	return resolveOverride(p.rate.BaseRate, p.method.BaseRate)
}

func weightBasedCost(p costParams) decimal.Decimal {
	perUnit := resolveOverride(p.rate.WeightPerUnitRate, p.method.WeightPerUnitRate)
	return baseRateCost(p).Add(p.orderWeight.Mul(perUnit))
}

func priceBasedCost(p costParams) decimal.Decimal {
	percentage := resolveOverride(p.rate.PricePercentage, p.method.PricePercentage)
	cost := p.orderTotal.Mul(percentage).Div(percentDivisor)
	// Bounds clamp the cost rather than rejecting the rate.
	if p.method.MinimumCost != nil && cost.LessThan(*p.method.MinimumCost) {
		cost = *p.method.MinimumCost
	}
	if p.method.MaximumCost != nil && cost.GreaterThan(*p.method.MaximumCost) {
		cost = *p.method.MaximumCost
	}
	return cost
}

func perItemCost(p costParams) decimal.Decimal {
	perItem := resolveOverride(p.rate.PerItemRate, p.method.PerItemRate)
	return baseRateCost(p).Add(perItem.Mul(decimal.NewFromInt(p.itemCount)))
}

// resolveOverride implements the three-level parameter resolution every
// numeric shipping field follows: rate override, then method default, then
// zero. Unset parameters are a configuration gap, not an error.
func resolveOverride(override, methodDefault *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	if methodDefault != nil {
		return *methodDefault
	}
	return decimal.Zero
}
