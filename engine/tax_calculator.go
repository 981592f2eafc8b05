package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/checkout-core/pricing/domain"
)

var percentDivisor = decimal.NewFromInt(100)

// TaxInput carries the taxable amount and the unit count per-unit rates
// multiply by.
type TaxInput struct {
	Amount    Money
	UnitCount int
}

// RateTax computes one tax rate's contribution. An inactive rate, a rate
// outside its effective window, or a taxable amount below the rate's minimum
// contributes zero; the minimum is an all-or-nothing floor, not a deduction.
// previousTax is the tax already accumulated by earlier rates and only feeds
// compound rates.
func RateTax(rate TaxRate, input TaxInput, previousTax Money, now time.Time) (Money, error) {
	zero := domain.Zero(input.Amount.Currency)

	if !rate.IsActive || !rate.EffectiveAt(now) {
		return zero, nil
	}

	amount := input.Amount.Amount
	if rate.MinimumAmount != nil && amount.LessThan(*rate.MinimumAmount) {
		return zero, nil
	}
	if rate.MaximumAmount != nil && amount.GreaterThan(*rate.MaximumAmount) {
		// Excess above the cap is not taxed.
		amount = *rate.MaximumAmount
	}

	base := amount
	if rate.IsCompound {
		if previousTax.Currency != input.Amount.Currency {
			return Money{}, fmt.Errorf("%w: compound base %s vs %s", domain.ErrCurrencyMismatch, previousTax.Currency, input.Amount.Currency)
		}
		base = base.Add(previousTax.Amount)
	}

	var tax decimal.Decimal
	switch rate.RateType {
	case domain.TaxRatePercentage:
		tax = base.Mul(rate.Rate).Div(percentDivisor)
	case domain.TaxRateFlat:
		tax = rate.FlatAmount
	case domain.TaxRatePerUnit:
		units := input.UnitCount
		if units < 1 {
			units = 1
		}
		tax = rate.FlatAmount.Mul(decimal.NewFromInt(int64(units)))
	default:
		return zero, nil
	}

	if rate.MaximumTax != nil && tax.GreaterThan(*rate.MaximumTax) {
		tax = *rate.MaximumTax
	}

	result := Money{Amount: tax, Currency: input.Amount.Currency}
	return result.Round().NonNegative(), nil
}

// CalculateTaxes evaluates a set of tax rates against one taxable amount,
// ordering them by priority and feeding the cumulative tax of earlier rates
// forward so compound rates tax an already-taxed base. Zero contributions are
// omitted from the breakdown.
func CalculateTaxes(rates []TaxRate, input TaxInput, now time.Time) (Money, []TaxBreakdown, error) {
	total := domain.Zero(input.Amount.Currency)
	if len(rates) == 0 {
		return total, nil, nil
	}

	ordered := make([]TaxRate, len(rates))
	copy(ordered, rates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	var breakdown []TaxBreakdown
	for _, rate := range ordered {
		contribution, err := RateTax(rate, input, total, now)
		if err != nil {
			return Money{}, nil, err
		}
		if contribution.IsZero() {
			continue
		}
		total, err = total.Add(contribution)
		if err != nil {
			return Money{}, nil, err
		}
		breakdown = append(breakdown, TaxBreakdown{
			RateID:   rate.ID,
			Name:     rate.Name,
			Rate:     rate.Rate,
			Compound: rate.IsCompound,
			Amount:   contribution,
		})
	}

	return total, breakdown, nil
}
