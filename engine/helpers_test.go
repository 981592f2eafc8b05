package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func intPtr(value int) *int {
	return &value
}

func timePtr(value time.Time) *time.Time {
	return &value
}

func usd(value string) Money {
	return Money{Amount: dec(value), Currency: "USD"}
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func orderWithLines(subtotal string, lines ...OrderLine) OrderContext {
	quantity := 0
	for _, line := range lines {
		quantity += line.Quantity
	}
	return OrderContext{
		Currency:  "USD",
		Subtotal:  usd(subtotal),
		ItemCount: quantity,
		Lines:     lines,
	}
}

func line(productID string, quantity int, amount string, categories ...string) OrderLine {
	return OrderLine{
		ProductID:   productID,
		CategoryIDs: categories,
		Quantity:    quantity,
		LineAmount:  usd(amount),
	}
}
