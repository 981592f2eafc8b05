package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType enumerates the supported discount strategies.
type DiscountType string

const (
	// DiscountPercentage applies Value percent to the eligible base.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixedAmount subtracts Value, capped at the eligible base.
	DiscountFixedAmount DiscountType = "fixed_amount"
	// DiscountFreeShipping zeroes the shipping total; the evaluator reports
	// eligibility only and the caller applies it to shipping.
	DiscountFreeShipping DiscountType = "free_shipping"
	// DiscountBuyXGetY discounts whole "get" units per completed "buy" bundle.
	DiscountBuyXGetY DiscountType = "buy_x_get_y"
)

// DiscountScope names the part of the order a discount targets.
type DiscountScope string

const (
	ScopeOrder    DiscountScope = "order"
	ScopeProduct  DiscountScope = "product"
	ScopeCategory DiscountScope = "category"
	ScopeShipping DiscountScope = "shipping"
)

// Discount is an administrator-authored promotion definition. UsageCount is
// the one field the surrounding order-placement transaction mutates; the
// engine only reads it.
type Discount struct {
	ID    string
	Code  string
	Name  string
	Type  DiscountType
	Scope DiscountScope

	Value             decimal.Decimal
	MaxDiscountAmount *decimal.Decimal

	MinimumOrderAmount    *decimal.Decimal
	MinimumQuantity       *int
	ApplicableProductIDs  []string
	ApplicableCategoryIDs []string
	ExcludedProductIDs    []string
	ExcludedCategoryIDs   []string
	EligibleCustomerIDs   []string
	EligibleCustomerTiers []string
	FirstTimeCustomerOnly bool
	ExcludeSaleItems      bool

	// BuyXGetY parameters. GetProductIDs empty means the free units come from
	// the lines that formed the bundle. GetDiscountPercent zero means 100.
	BuyQuantity        int
	GetQuantity        int
	GetProductIDs      []string
	GetDiscountPercent decimal.Decimal

	TotalUsageLimit  *int
	PerCustomerLimit *int
	UsageCount       int

	StartDate *time.Time
	EndDate   *time.Time
	IsActive  bool

	Priority   int
	CanCombine bool
}

// ValidAt reports whether the discount is currently redeemable: active,
// inside its date window, and under its total usage limit. Eligibility
// against a specific order is a separate, layered check.
func (d Discount) ValidAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	if d.TotalUsageLimit != nil && d.UsageCount >= *d.TotalUsageLimit {
		return false
	}
	return true
}

// HasApplicableRestriction reports whether the discount limits itself to
// specific products or categories.
func (d Discount) HasApplicableRestriction() bool {
	return len(d.ApplicableProductIDs) > 0 || len(d.ApplicableCategoryIDs) > 0
}
