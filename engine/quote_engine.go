package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	domain "github.com/checkout-core/pricing/domain"
)

var (
	// ErrQuoteInvalidInput indicates the caller supplied an unusable order
	// context, such as a missing currency.
	ErrQuoteInvalidInput = errors.New("quote: invalid input")
)

// QuoteEngineDeps wires the dependencies for a QuoteEngine. Every field is
// optional; zero values fall back to real clocks, ULID ids, a no-op logger,
// and a no-op tracer.
type QuoteEngineDeps struct {
	Clock  func() time.Time
	Logger func(ctx context.Context, event string, fields map[string]any)
	Tracer trace.Tracer
	IDGen  func() string
}

// QuoteEngine combines the five pricing components into a full checkout
// quote. It holds no mutable state and is safe for concurrent use.
type QuoteEngine struct {
	now    func() time.Time
	logger func(ctx context.Context, event string, fields map[string]any)
	tracer trace.Tracer
	idGen  func() string
}

// NewQuoteEngine constructs a QuoteEngine, defaulting any missing dependency.
func NewQuoteEngine(deps QuoteEngineDeps) *QuoteEngine {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	idGen := deps.IDGen
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}

	return &QuoteEngine{
		now: func() time.Time {
			return clock().UTC()
		},
		logger: logger,
		tracer: tracer,
		idGen:  idGen,
	}
}

// Quote prices an order context against a configuration snapshot: shipping
// zone resolution, shipping options, discounts, tax, and payment fees. The
// snapshot is treated as immutable; the one hard failure is a currency
// mismatch anywhere in the inputs.
func (e *QuoteEngine) Quote(ctx context.Context, snap *Snapshot, order OrderContext) (Quote, error) {
	ctx, span := e.tracer.Start(ctx, "engine.Quote")
	defer span.End()

	if snap == nil {
		return Quote{}, fmt.Errorf("%w: snapshot is required", ErrQuoteInvalidInput)
	}
	currencyCode, err := domain.NormalizeCurrency(order.Currency)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: order currency", ErrQuoteInvalidInput)
	}
	if order.Subtotal.Currency != currencyCode {
		return Quote{}, fmt.Errorf("%w: subtotal %s vs order %s", domain.ErrCurrencyMismatch, order.Subtotal.Currency, currencyCode)
	}
	if snap.Currency != "" && snap.Currency != currencyCode {
		return Quote{}, fmt.Errorf("%w: snapshot %s vs order %s", domain.ErrCurrencyMismatch, snap.Currency, currencyCode)
	}

	span.SetAttributes(
		attribute.String("order.currency", currencyCode),
		attribute.Int("order.item_count", order.ItemCount),
	)

	now := e.now()

	options := e.shippingOptions(snap, order)
	var selected *ShippingOption
	if len(options) > 0 {
		selected = &options[0]
	}

	discountTotal, discountBreakdowns, freeShipping, err := e.applyDiscounts(ctx, snap, order, now)
	if err != nil {
		return Quote{}, err
	}

	shipping := domain.Zero(currencyCode)
	if selected != nil {
		shipping = selected.Cost
		if freeShipping {
			shipping = domain.Zero(currencyCode)
			selected.FreeShipping = true
		}
	}

	taxable, err := order.Subtotal.Sub(discountTotal)
	if err != nil {
		return Quote{}, err
	}
	taxable = taxable.NonNegative()

	taxTotal, taxBreakdowns, err := e.calculateTax(snap, order, taxable, now)
	if err != nil {
		return Quote{}, err
	}

	total := taxable
	if total, err = total.Add(taxTotal); err != nil {
		return Quote{}, err
	}
	if total, err = total.Add(shipping); err != nil {
		return Quote{}, err
	}
	total = total.Round().NonNegative()

	paymentOptions := e.paymentOptions(snap, order, total)

	quote := Quote{
		ID:               e.idGen(),
		Currency:         currencyCode,
		Subtotal:         order.Subtotal.Round(),
		Discount:         discountTotal.Round(),
		Tax:              taxTotal,
		Shipping:         shipping,
		Total:            total,
		ShippingOptions:  options,
		SelectedShipping: selected,
		Discounts:        discountBreakdowns,
		Taxes:            taxBreakdowns,
		PaymentOptions:   paymentOptions,
		GeneratedAt:      now,
	}

	e.logger(ctx, "quote_generated", map[string]any{
		"quoteId":         quote.ID,
		"currency":        quote.Currency,
		"subtotal":        quote.Subtotal.Amount.String(),
		"discount":        quote.Discount.Amount.String(),
		"tax":             quote.Tax.Amount.String(),
		"shipping":        quote.Shipping.Amount.String(),
		"total":           quote.Total.Amount.String(),
		"shippingOptions": len(options),
		"paymentOptions":  len(paymentOptions),
	})

	return quote, nil
}

// shippingOptions resolves the shipping zone for the order address and costs
// every active method rate in it that meets the order's thresholds, cheapest
// first.
func (e *QuoteEngine) shippingOptions(snap *Snapshot, order OrderContext) []ShippingOption {
	zone, ok := resolveShippingZone(snap.ShippingZones, order.ShippingAddress)
	if !ok {
		return nil
	}

	var options []ShippingOption
	for _, rate := range snap.RatesForZone(zone.ID) {
		method, found := snap.MethodByID(rate.MethodID)
		if !found || !method.IsActive {
			continue
		}
		if !MeetsRequirements(rate, order.Subtotal, order.Weight) {
			continue
		}
		cost := CalculateCost(method, rate, order.Subtotal, order.Weight, order.ItemCount)
		options = append(options, ShippingOption{
			RateID:          rate.ID,
			MethodID:        method.ID,
			MethodName:      method.Name,
			Cost:            cost,
			EstimateDaysMin: method.DeliveryEstimateMinDays,
			EstimateDaysMax: method.DeliveryEstimateMaxDays,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Cost.Amount.LessThan(options[j].Cost.Amount)
	})
	return options
}

// resolveShippingZone returns the first zone matching the address in
// configured order; the default zone catches addresses nothing else matches.
func resolveShippingZone(zones []ShippingZone, addr *Address) (ShippingZone, bool) {
	for _, zone := range zones {
		if ZoneMatches(zone.ZoneRules, addr) {
			return zone, true
		}
	}
	return ShippingZone{}, false
}

func (e *QuoteEngine) applyDiscounts(ctx context.Context, snap *Snapshot, order OrderContext, now time.Time) (Money, []DiscountBreakdown, bool, error) {
	total := domain.Zero(order.Subtotal.Currency)
	applied := ResolveDiscounts(snap.Discounts, order, now)
	if len(applied) == 0 {
		return total, nil, false, nil
	}

	var breakdowns []DiscountBreakdown
	freeShipping := false
	for _, d := range applied {
		amount, err := DiscountAmount(d, order)
		if err != nil {
			return Money{}, nil, false, err
		}
		if d.Type == domain.DiscountFreeShipping {
			freeShipping = true
		}
		if amount.IsZero() && d.Type != domain.DiscountFreeShipping {
			continue
		}
		if total, err = total.Add(amount); err != nil {
			return Money{}, nil, false, err
		}
		breakdowns = append(breakdowns, DiscountBreakdown{
			DiscountID:  d.ID,
			Code:        d.Code,
			Type:        d.Type,
			Description: d.Name,
			Amount:      amount,
		})
	}

	// The combined discount never exceeds the order subtotal.
	if total.Amount.GreaterThan(order.Subtotal.Amount) {
		e.logger(ctx, "quote_discount_clamped", map[string]any{
			"subtotal": order.Subtotal.Amount.String(),
			"discount": total.Amount.String(),
		})
		total = order.Subtotal
	}

	return total, breakdowns, freeShipping, nil
}

func (e *QuoteEngine) calculateTax(snap *Snapshot, order OrderContext, taxable Money, now time.Time) (Money, []TaxBreakdown, error) {
	zoneID := ""
	for _, zone := range snap.TaxZones {
		if ZoneMatches(zone.ZoneRules, order.ShippingAddress) {
			zoneID = zone.ID
			break
		}
	}
	if zoneID == "" {
		return domain.Zero(taxable.Currency), nil, nil
	}

	rates := snap.TaxRatesFor(zoneID, order.TaxCategoryID)
	input := TaxInput{Amount: taxable, UnitCount: order.TotalQuantity()}
	return CalculateTaxes(rates, input, now)
}

func (e *QuoteEngine) paymentOptions(snap *Snapshot, order OrderContext, orderTotal Money) []PaymentOption {
	var options []PaymentOption
	for _, method := range snap.PaymentMethods {
		if !PaymentAvailable(method, order) {
			continue
		}
		options = append(options, PaymentOption{
			MethodID: method.ID,
			Name:     method.Name,
			Fee:      PaymentFee(method, orderTotal),
		})
	}
	return options
}
