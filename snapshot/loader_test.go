package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domain "github.com/checkout-core/pricing/domain"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

const validDocument = `
currency: usd

shipping_zones:
  - id: zone-us
    name: United States
    countries: [US]
    excluded_states: [US-AK, US-HI]
  - id: zone-rest
    name: Rest of world
    default: true

shipping_methods:
  - id: standard
    name: Standard
    calculation_type: flat_rate
    base_rate: "5.99"
    handling_fee: "1.00"
    delivery_estimate_min_days: 3
    delivery_estimate_max_days: 7
    active: true
  - id: bulky
    name: Bulky goods
    calculation_type: weight_based
    base_rate: "4.00"
    weight_per_unit_rate: "0.75"
    active: true

shipping_rates:
  - id: rate-us-standard
    zone: zone-us
    method: standard
    free_shipping_threshold: "75"
  - id: rate-us-bulky
    zone: zone-us
    method: bulky
    min_weight: "5"
    max_weight: "50"

tax_zones:
  - id: tax-us
    name: US sales tax
    countries: [US]

tax_categories:
  - id: general
    name: General goods

tax_rates:
  - id: rate-sales
    name: Sales tax
    zone: tax-us
    category: general
    rate_type: percentage
    rate: "8.25"
    effective_from: "2024-01-01T00:00:00Z"
    active: true

discounts:
  - id: save10
    code: SAVE10
    name: 10% off
    type: percentage
    scope: order
    value: "10"
    max_discount_amount: "15"
    start_date: "2024-06-01T00:00:00Z"
    end_date: "2026-06-01T00:00:00Z"
    active: true
    can_combine: true
  - id: bogo
    code: BOGO
    name: Buy two get one
    type: buy_x_get_y
    scope: product
    buy_quantity: 2
    get_quantity: 1
    active: true

payment_methods:
  - id: card
    name: Card
    fee_type: flat_plus_percentage
    flat_fee: "0.30"
    percentage_fee: "2.9"
    max_fee: "10"
    allowed_currencies: [USD]
    active: true
`

func TestLoad_ValidDocument(t *testing.T) {
	snap, err := Load(strings.NewReader(validDocument))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if snap.Currency != "USD" {
		t.Fatalf("currency = %s, want normalized USD", snap.Currency)
	}
	if len(snap.ShippingZones) != 2 || !snap.ShippingZones[1].IsDefault {
		t.Fatalf("shipping zones = %+v", snap.ShippingZones)
	}
	if len(snap.ShippingMethods) != 2 || len(snap.ShippingRates) != 2 {
		t.Fatalf("methods = %d rates = %d", len(snap.ShippingMethods), len(snap.ShippingRates))
	}

	standard, ok := snap.MethodByID("standard")
	if !ok {
		t.Fatalf("method standard not found")
	}
	if standard.CalculationType != domain.CalculationFlatRate || standard.BaseRate == nil || !standard.BaseRate.Equal(dec("5.99")) {
		t.Fatalf("method standard = %+v", standard)
	}
	if standard.DeliveryEstimateMinDays == nil || *standard.DeliveryEstimateMinDays != 3 {
		t.Fatalf("estimate min = %v", standard.DeliveryEstimateMinDays)
	}

	rates := snap.RatesForZone("zone-us")
	if len(rates) != 2 {
		t.Fatalf("zone-us rates = %d", len(rates))
	}
	if rates[0].FreeShippingThreshold == nil || !rates[0].FreeShippingThreshold.Equal(dec("75")) {
		t.Fatalf("threshold = %v", rates[0].FreeShippingThreshold)
	}

	taxRates := snap.TaxRatesFor("tax-us", "general")
	if len(taxRates) != 1 {
		t.Fatalf("tax rates = %d", len(taxRates))
	}
	if taxRates[0].EffectiveFrom == nil || taxRates[0].EffectiveFrom.Year() != 2024 {
		t.Fatalf("effective from = %v", taxRates[0].EffectiveFrom)
	}

	if len(snap.Discounts) != 2 {
		t.Fatalf("discounts = %d", len(snap.Discounts))
	}
	save10 := snap.Discounts[0]
	if save10.Type != domain.DiscountPercentage || save10.MaxDiscountAmount == nil || !save10.MaxDiscountAmount.Equal(dec("15")) {
		t.Fatalf("save10 = %+v", save10)
	}

	if len(snap.PaymentMethods) != 1 || snap.PaymentMethods[0].FeeType != domain.FeeFlatPlusPercentage {
		t.Fatalf("payment methods = %+v", snap.PaymentMethods)
	}
}

func TestLoad_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"bad currency",
			`currency: dollars`,
		},
		{
			"unknown field",
			"currency: USD\nstore_name: test",
		},
		{
			"empty id",
			"currency: USD\nshipping_zones:\n  - name: nameless",
		},
		{
			"duplicate zone id",
			"currency: USD\nshipping_zones:\n  - id: z1\n  - id: z1",
		},
		{
			"rate references unknown zone",
			"currency: USD\n" +
				"shipping_methods:\n  - {id: m1, calculation_type: flat_rate}\n" +
				"shipping_rates:\n  - {id: r1, zone: nowhere, method: m1}",
		},
		{
			"rate references unknown method",
			"currency: USD\n" +
				"shipping_zones:\n  - {id: z1, default: true}\n" +
				"shipping_rates:\n  - {id: r1, zone: z1, method: nothing}",
		},
		{
			"unknown calculation type",
			"currency: USD\nshipping_methods:\n  - {id: m1, calculation_type: teleport}",
		},
		{
			"malformed decimal",
			"currency: USD\nshipping_methods:\n  - {id: m1, calculation_type: flat_rate, base_rate: cheap}",
		},
		{
			"negative decimal",
			"currency: USD\nshipping_methods:\n  - {id: m1, calculation_type: flat_rate, base_rate: \"-1\"}",
		},
		{
			"inverted cost bounds",
			"currency: USD\nshipping_methods:\n  - {id: m1, calculation_type: price_based, minimum_cost: \"10\", maximum_cost: \"5\"}",
		},
		{
			"tax rate unknown category",
			"currency: USD\n" +
				"tax_zones:\n  - {id: t1, default: true}\n" +
				"tax_rates:\n  - {id: r1, zone: t1, category: ghost, rate_type: percentage, rate: \"5\"}",
		},
		{
			"malformed timestamp",
			"currency: USD\n" +
				"tax_zones:\n  - {id: t1, default: true}\n" +
				"tax_rates:\n  - {id: r1, zone: t1, rate_type: percentage, rate: \"5\", effective_from: someday}",
		},
		{
			"unknown discount type",
			"currency: USD\ndiscounts:\n  - {id: d1, type: raffle, scope: order}",
		},
		{
			"buy_x_get_y without quantities",
			"currency: USD\ndiscounts:\n  - {id: d1, type: buy_x_get_y, scope: product}",
		},
		{
			"discount window inverted",
			"currency: USD\ndiscounts:\n  - {id: d1, type: percentage, scope: order, start_date: \"2025-06-01T00:00:00Z\", end_date: \"2025-01-01T00:00:00Z\"}",
		},
		{
			"unknown fee type",
			"currency: USD\npayment_methods:\n  - {id: p1, fee_type: tribute}",
		},
		{
			"bad allowed currency",
			"currency: USD\npayment_methods:\n  - {id: p1, allowed_currencies: [coins]}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.doc))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad_EmptyFeeTypeDefaultsToNone(t *testing.T) {
	doc := "currency: USD\npayment_methods:\n  - {id: cash, name: Cash, active: true}"
	snap, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if snap.PaymentMethods[0].FeeType != domain.FeeNone {
		t.Fatalf("fee type = %s, want none", snap.PaymentMethods[0].FeeType)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := os.WriteFile(path, []byte(validDocument), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	snap, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if snap.Currency != "USD" {
		t.Fatalf("currency = %s", snap.Currency)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file must error")
	}
}
