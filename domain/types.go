package domain

import (
	"github.com/shopspring/decimal"
)

// Address represents the postal address an order ships to. Every field is
// optional; zone matching treats empty fields as absent criteria.
type Address struct {
	Country    string
	State      string
	PostalCode string
	City       string
}

// OrderLine is a single product entry within an order snapshot.
type OrderLine struct {
	ProductID   string
	CategoryIDs []string
	Quantity    int
	LineAmount  Money
	OnSale      bool
}

// UnitPrice returns the per-unit amount for the line. Lines with a
// non-positive quantity are treated as a single unit.
func (l OrderLine) UnitPrice() Money {
	if l.Quantity <= 1 {
		return l.LineAmount
	}
	return Money{
		Amount:   l.LineAmount.Amount.Div(decimal.NewFromInt(int64(l.Quantity))),
		Currency: l.LineAmount.Currency,
	}
}

// OrderContext is the read-only order snapshot the engine prices against.
// The caller assembles it; the engine never mutates it.
type OrderContext struct {
	Currency        string
	Subtotal        Money
	Weight          decimal.Decimal
	ItemCount       int
	ShippingAddress *Address
	CustomerID      string
	CustomerGroup   string
	CustomerTier    string
	PriorOrderCount int
	TaxCategoryID   string
	// DiscountUsage maps discount id to this customer's prior redemptions.
	// Reads are advisory; the caller re-validates inside the transaction
	// that increments usage.
	DiscountUsage map[string]int
	Lines         []OrderLine
}

// TotalQuantity sums line quantities, falling back to ItemCount when no
// lines were supplied.
func (o OrderContext) TotalQuantity() int {
	if len(o.Lines) == 0 {
		return o.ItemCount
	}
	total := 0
	for _, line := range o.Lines {
		if line.Quantity > 0 {
			total += line.Quantity
		}
	}
	return total
}

// UsageFor returns this customer's recorded redemptions of a discount.
func (o OrderContext) UsageFor(discountID string) int {
	if o.DiscountUsage == nil {
		return 0
	}
	return o.DiscountUsage[discountID]
}
