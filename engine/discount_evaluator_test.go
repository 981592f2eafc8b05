package engine

import (
	"testing"
	"time"

	domain "github.com/checkout-core/pricing/domain"
)

func activePercentDiscount(id, value string) Discount {
	return Discount{
		ID:       id,
		Code:     id,
		Name:     id,
		Type:     domain.DiscountPercentage,
		Scope:    domain.ScopeOrder,
		Value:    dec(value),
		IsActive: true,
	}
}

func TestDiscountValidAt_Checks(t *testing.T) {
	now := fixedNow()

	inactive := activePercentDiscount("d1", "10")
	inactive.IsActive = false
	if inactive.ValidAt(now) {
		t.Fatalf("inactive discount must be invalid")
	}

	notStarted := activePercentDiscount("d2", "10")
	notStarted.StartDate = timePtr(now.Add(time.Hour))
	if notStarted.ValidAt(now) {
		t.Fatalf("discount before its start date must be invalid")
	}

	ended := activePercentDiscount("d3", "10")
	ended.EndDate = timePtr(now.Add(-time.Hour))
	if ended.ValidAt(now) {
		t.Fatalf("discount past its end date must be invalid")
	}

	exhausted := activePercentDiscount("d4", "10")
	exhausted.TotalUsageLimit = intPtr(100)
	exhausted.UsageCount = 100
	if exhausted.ValidAt(now) {
		t.Fatalf("discount at its usage limit must be invalid")
	}

	open := activePercentDiscount("d5", "10")
	open.StartDate = timePtr(now)
	open.EndDate = timePtr(now)
	open.TotalUsageLimit = intPtr(100)
	open.UsageCount = 99
	if !open.ValidAt(now) {
		t.Fatalf("discount inside every constraint must be valid")
	}
}

func TestDiscountEligible_OrderThresholds(t *testing.T) {
	d := activePercentDiscount("d1", "10")
	d.MinimumOrderAmount = decPtr("50")
	d.MinimumQuantity = intPtr(3)

	small := orderWithLines("40", line("p1", 3, "40"))
	if DiscountEligible(d, small) {
		t.Fatalf("order under the minimum amount must be ineligible")
	}

	few := orderWithLines("60", line("p1", 2, "60"))
	if DiscountEligible(d, few) {
		t.Fatalf("order under the minimum quantity must be ineligible")
	}

	ok := orderWithLines("60", line("p1", 3, "60"))
	if !DiscountEligible(d, ok) {
		t.Fatalf("order meeting both thresholds must be eligible")
	}
}

func TestDiscountEligible_CustomerChecks(t *testing.T) {
	d := activePercentDiscount("d1", "10")
	d.FirstTimeCustomerOnly = true

	returning := orderWithLines("50", line("p1", 1, "50"))
	returning.PriorOrderCount = 2
	if DiscountEligible(d, returning) {
		t.Fatalf("returning customer must be ineligible for a first-time discount")
	}

	fresh := orderWithLines("50", line("p1", 1, "50"))
	if !DiscountEligible(d, fresh) {
		t.Fatalf("first-time customer must be eligible")
	}

	capped := activePercentDiscount("d2", "10")
	capped.PerCustomerLimit = intPtr(1)
	used := orderWithLines("50", line("p1", 1, "50"))
	used.DiscountUsage = map[string]int{"d2": 1}
	if DiscountEligible(capped, used) {
		t.Fatalf("customer at the per-customer limit must be ineligible")
	}

	tiered := activePercentDiscount("d3", "10")
	tiered.EligibleCustomerTiers = []string{"gold"}
	silver := orderWithLines("50", line("p1", 1, "50"))
	silver.CustomerTier = "silver"
	if DiscountEligible(tiered, silver) {
		t.Fatalf("customer outside the eligible tiers must be ineligible")
	}
	gold := orderWithLines("50", line("p1", 1, "50"))
	gold.CustomerTier = "Gold"
	if !DiscountEligible(tiered, gold) {
		t.Fatalf("tier matching must be case-insensitive")
	}
}

func TestDiscountEligible_ApplicableSetsRequireAMatchingLine(t *testing.T) {
	d := activePercentDiscount("d1", "10")
	d.ApplicableProductIDs = []string{"p9"}

	miss := orderWithLines("50", line("p1", 1, "50"))
	if DiscountEligible(d, miss) {
		t.Fatalf("no line in the applicable set means the discount does not apply")
	}

	hit := orderWithLines("80", line("p1", 1, "50"), line("p9", 1, "30"))
	if !DiscountEligible(d, hit) {
		t.Fatalf("one matching line is enough")
	}
}

func TestDiscountAmount_PercentageWithCap(t *testing.T) {
	d := activePercentDiscount("d1", "20")
	d.MaxDiscountAmount = decPtr("15")

	amount, err := DiscountAmount(d, orderWithLines("100", line("p1", 1, "100")))
	if err != nil {
		t.Fatalf("DiscountAmount returned error: %v", err)
	}
	if !amount.Amount.Equal(dec("15")) {
		t.Fatalf("expected cap at 15, got %s", amount.Amount)
	}
}

func TestDiscountAmount_ExcludedLinesLeaveTheBase(t *testing.T) {
	d := activePercentDiscount("d1", "10")
	d.ExcludedProductIDs = []string{"p2"}
	d.ExcludeSaleItems = true

	sale := line("p3", 1, "40")
	sale.OnSale = true
	order := orderWithLines("100", line("p1", 1, "30"), line("p2", 1, "30"), sale)

	amount, err := DiscountAmount(d, order)
	if err != nil {
		t.Fatalf("DiscountAmount returned error: %v", err)
	}
	// Only p1's 30 remains discountable.
	if !amount.Amount.Equal(dec("3")) {
		t.Fatalf("expected 3, got %s", amount.Amount)
	}
}

func TestDiscountAmount_FixedAmountCappedAtBase(t *testing.T) {
	d := Discount{
		ID:       "d1",
		Type:     domain.DiscountFixedAmount,
		Scope:    domain.ScopeOrder,
		Value:    dec("25"),
		IsActive: true,
	}

	amount, err := DiscountAmount(d, orderWithLines("10", line("p1", 1, "10")))
	if err != nil {
		t.Fatalf("DiscountAmount returned error: %v", err)
	}
	if !amount.Amount.Equal(dec("10")) {
		t.Fatalf("fixed discount never exceeds the eligible base, got %s", amount.Amount)
	}
}

func TestDiscountAmount_FreeShippingReportsZero(t *testing.T) {
	d := Discount{ID: "d1", Type: domain.DiscountFreeShipping, Scope: domain.ScopeShipping, IsActive: true}

	amount, err := DiscountAmount(d, orderWithLines("50", line("p1", 1, "50")))
	if err != nil {
		t.Fatalf("DiscountAmount returned error: %v", err)
	}
	if !amount.IsZero() {
		t.Fatalf("free shipping is applied by the caller, amount must be zero, got %s", amount.Amount)
	}
}

func TestDiscountAmount_BuyXGetYWholeBundlesOnly(t *testing.T) {
	d := Discount{
		ID:          "bogo",
		Type:        domain.DiscountBuyXGetY,
		Scope:       domain.ScopeProduct,
		BuyQuantity: 2,
		GetQuantity: 1,
		IsActive:    true,
	}

	// 5 units at 8 each: two complete buy-2 bundles earn two free units.
	order := orderWithLines("40", line("p1", 5, "40"))
	amount, err := DiscountAmount(d, order)
	if err != nil {
		t.Fatalf("DiscountAmount returned error: %v", err)
	}
	if !amount.Amount.Equal(dec("16")) {
		t.Fatalf("expected 2 free units at 8 = 16, got %s", amount.Amount)
	}

	// A single unit short of a bundle earns nothing.
	partial := orderWithLines("8", line("p1", 1, "8"))
	amount, err = DiscountAmount(d, partial)
	if err != nil {
		t.Fatalf("DiscountAmount returned error: %v", err)
	}
	if !amount.IsZero() {
		t.Fatalf("partial bundles earn no discount, got %s", amount.Amount)
	}
}

func TestDiscountAmount_BuyXGetYValuesCheapestGetUnits(t *testing.T) {
	d := Discount{
		ID:            "bxgy",
		Type:          domain.DiscountBuyXGetY,
		Scope:         domain.ScopeProduct,
		BuyQuantity:   3,
		GetQuantity:   1,
		GetProductIDs: []string{"cheap", "mid"},
		IsActive:      true,
	}

	order := orderWithLines("70",
		line("cheap", 1, "5"),
		line("mid", 1, "15"),
		line("dear", 2, "50"),
	)
	amount, err := DiscountAmount(d, order)
	if err != nil {
		t.Fatalf("DiscountAmount returned error: %v", err)
	}
	// 4 units = one bundle; the single free unit is the cheapest get item.
	if !amount.Amount.Equal(dec("5")) {
		t.Fatalf("expected cheapest get unit 5, got %s", amount.Amount)
	}
}

func TestDiscountAmount_BuyXGetYProportionalGet(t *testing.T) {
	d := Discount{
		ID:                 "half",
		Type:               domain.DiscountBuyXGetY,
		Scope:              domain.ScopeProduct,
		BuyQuantity:        2,
		GetQuantity:        1,
		GetDiscountPercent: dec("50"),
		IsActive:           true,
	}

	order := orderWithLines("30", line("p1", 3, "30"))
	amount, err := DiscountAmount(d, order)
	if err != nil {
		t.Fatalf("DiscountAmount returned error: %v", err)
	}
	// One free unit at 10, discounted to 50%.
	if !amount.Amount.Equal(dec("5")) {
		t.Fatalf("expected 5, got %s", amount.Amount)
	}
}

func TestResolveDiscounts_CombinationRules(t *testing.T) {
	now := fixedNow()
	order := orderWithLines("100", line("p1", 2, "100"))

	combinableA := activePercentDiscount("a", "10")
	combinableA.CanCombine = true
	combinableA.Priority = 1
	combinableB := activePercentDiscount("b", "5")
	combinableB.CanCombine = true
	combinableB.Priority = 2

	both := ResolveDiscounts([]Discount{combinableA, combinableB}, order, now)
	if len(both) != 2 {
		t.Fatalf("all-combinable discounts apply together, got %d", len(both))
	}

	exclusive := activePercentDiscount("c", "30")
	exclusive.Priority = 10

	only := ResolveDiscounts([]Discount{combinableA, combinableB, exclusive}, order, now)
	if len(only) != 1 || only[0].ID != "c" {
		t.Fatalf("a non-combinable discount forces the highest priority winner, got %+v", only)
	}

	expired := activePercentDiscount("d", "50")
	expired.EndDate = timePtr(now.Add(-time.Minute))
	none := ResolveDiscounts([]Discount{expired}, order, now)
	if len(none) != 0 {
		t.Fatalf("invalid discounts never apply, got %+v", none)
	}
}
