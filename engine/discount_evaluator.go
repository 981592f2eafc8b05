package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/checkout-core/pricing/domain"
)

// DiscountEligible layers the context-dependent checks on top of
// Discount.ValidAt: order thresholds, product/category restrictions, customer
// restrictions, and the per-customer usage limit. All checks are AND'd.
func DiscountEligible(d Discount, order OrderContext) bool {
	if d.MinimumOrderAmount != nil && order.Subtotal.Amount.LessThan(*d.MinimumOrderAmount) {
		return false
	}
	if d.MinimumQuantity != nil && order.TotalQuantity() < *d.MinimumQuantity {
		return false
	}
	if d.HasApplicableRestriction() && len(order.Lines) > 0 && len(eligibleLines(d, order)) == 0 {
		return false
	}
	if len(d.EligibleCustomerIDs) > 0 && !containsFold(d.EligibleCustomerIDs, order.CustomerID) {
		return false
	}
	if len(d.EligibleCustomerTiers) > 0 && !containsFold(d.EligibleCustomerTiers, order.CustomerTier) {
		return false
	}
	if d.FirstTimeCustomerOnly && order.PriorOrderCount > 0 {
		return false
	}
	if d.PerCustomerLimit != nil && order.UsageFor(d.ID) >= *d.PerCustomerLimit {
		return false
	}
	return true
}

// DiscountAmount computes the monetary value of a discount against an order.
// FreeShipping discounts report zero here; the caller zeroes the shipping
// total instead. Callers check validity and eligibility first.
func DiscountAmount(d Discount, order OrderContext) (Money, error) {
	zero := domain.Zero(order.Currency)

	base, lines, err := discountableBase(d, order)
	if err != nil {
		return Money{}, err
	}

	switch d.Type {
	case domain.DiscountPercentage:
		amount := base.Mul(d.Value.Div(percentDivisor))
		if d.MaxDiscountAmount != nil && amount.Amount.GreaterThan(*d.MaxDiscountAmount) {
			amount.Amount = *d.MaxDiscountAmount
		}
		return amount.Round().NonNegative(), nil

	case domain.DiscountFixedAmount:
		amount := d.Value
		if amount.GreaterThan(base.Amount) {
			amount = base.Amount
		}
		result := Money{Amount: amount, Currency: base.Currency}
		return result.Round().NonNegative(), nil

	case domain.DiscountFreeShipping:
		return zero, nil

	case domain.DiscountBuyXGetY:
		return buyXGetYAmount(d, lines, order.Currency)

	default:
		return zero, nil
	}
}

// ResolveDiscounts selects the discounts to apply: the whole valid-and-
// eligible set when every member allows combining, otherwise only the single
// highest-priority discount.
func ResolveDiscounts(discounts []Discount, order OrderContext, now time.Time) []Discount {
	var applicable []Discount
	for _, d := range discounts {
		if d.ValidAt(now) && DiscountEligible(d, order) {
			applicable = append(applicable, d)
		}
	}
	if len(applicable) <= 1 {
		return applicable
	}

	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Priority > applicable[j].Priority
	})

	for _, d := range applicable {
		if !d.CanCombine {
			return applicable[:1]
		}
	}
	return applicable
}

// eligibleLines filters the order lines a discount may touch: excluded
// products/categories and (when configured) sale items are removed, then the
// applicable sets restrict what remains.
func eligibleLines(d Discount, order OrderContext) []OrderLine {
	var lines []OrderLine
	for _, line := range order.Lines {
		if d.ExcludeSaleItems && line.OnSale {
			continue
		}
		if containsFold(d.ExcludedProductIDs, line.ProductID) {
			continue
		}
		if anyCategoryIn(line.CategoryIDs, d.ExcludedCategoryIDs) {
			continue
		}
		if d.HasApplicableRestriction() {
			if !containsFold(d.ApplicableProductIDs, line.ProductID) && !anyCategoryIn(line.CategoryIDs, d.ApplicableCategoryIDs) {
				continue
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// discountableBase sums the eligible line amounts. Orders supplied without
// line detail fall back to the subtotal, but only for unrestricted discounts.
func discountableBase(d Discount, order OrderContext) (Money, []OrderLine, error) {
	if len(order.Lines) == 0 {
		if d.HasApplicableRestriction() {
			return domain.Zero(order.Currency), nil, nil
		}
		return order.Subtotal, nil, nil
	}

	lines := eligibleLines(d, order)
	base := domain.Zero(order.Currency)
	for _, line := range lines {
		sum, err := base.Add(line.LineAmount)
		if err != nil {
			return Money{}, nil, err
		}
		base = sum
	}
	return base, lines, nil
}

// buyXGetYAmount implements the discrete bundle arithmetic: every completed
// BuyQuantity units among the eligible lines earn GetQuantity discounted
// units; remainders below a full bundle earn nothing. Discounted units are
// valued cheapest-first from the "get" pool and reduced to GetDiscountPercent
// of their unit price (zero percent configured means fully free).
func buyXGetYAmount(d Discount, lines []OrderLine, currencyCode string) (Money, error) {
	zero := domain.Zero(currencyCode)
	if d.BuyQuantity <= 0 || d.GetQuantity <= 0 {
		return zero, nil
	}

	units := 0
	for _, line := range lines {
		if line.Quantity > 0 {
			units += line.Quantity
		}
	}
	bundles := units / d.BuyQuantity
	if bundles == 0 {
		return zero, nil
	}
	freeUnits := bundles * d.GetQuantity

	pool := lines
	if len(d.GetProductIDs) > 0 {
		pool = nil
		for _, line := range lines {
			if containsFold(d.GetProductIDs, line.ProductID) {
				pool = append(pool, line)
			}
		}
	}
	if len(pool) == 0 {
		return zero, nil
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].UnitPrice().Amount.LessThan(pool[j].UnitPrice().Amount)
	})

	proportion := d.GetDiscountPercent
	if proportion.IsZero() {
		proportion = percentDivisor
	}

	discount := decimal.Zero
	remaining := freeUnits
	for _, line := range pool {
		if remaining == 0 {
			break
		}
		take := line.Quantity
		if take > remaining {
			take = remaining
		}
		unit := line.UnitPrice().Amount
		discount = discount.Add(unit.Mul(decimal.NewFromInt(int64(take))))
		remaining -= take
	}
	discount = discount.Mul(proportion).Div(percentDivisor)

	if d.MaxDiscountAmount != nil && discount.GreaterThan(*d.MaxDiscountAmount) {
		discount = *d.MaxDiscountAmount
	}
	result := Money{Amount: discount, Currency: currencyCode}
	return result.Round().NonNegative(), nil
}

func anyCategoryIn(categories, set []string) bool {
	if len(set) == 0 {
		return false
	}
	for _, category := range categories {
		if containsFold(set, category) {
			return true
		}
	}
	return false
}
