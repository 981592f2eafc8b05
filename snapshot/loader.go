// Package snapshot loads administrator-authored pricing configuration from
// YAML documents into the immutable record set the engine prices against.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	domain "github.com/checkout-core/pricing/domain"
)

// ErrInvalid wraps every validation failure reported by the loader.
var ErrInvalid = errors.New("snapshot: invalid configuration")

type document struct {
	Currency string `yaml:"currency"`

	ShippingZones   []zoneDoc          `yaml:"shipping_zones"`
	ShippingMethods []methodDoc        `yaml:"shipping_methods"`
	ShippingRates   []rateDoc          `yaml:"shipping_rates"`
	TaxZones        []zoneDoc          `yaml:"tax_zones"`
	TaxCategories   []taxCategoryDoc   `yaml:"tax_categories"`
	TaxRates        []taxRateDoc       `yaml:"tax_rates"`
	Discounts       []discountDoc      `yaml:"discounts"`
	PaymentMethods  []paymentMethodDoc `yaml:"payment_methods"`
}

type zoneDoc struct {
	ID                  string   `yaml:"id"`
	Name                string   `yaml:"name"`
	Countries           []string `yaml:"countries"`
	States              []string `yaml:"states"`
	PostalCodePatterns  []string `yaml:"postal_code_patterns"`
	Cities              []string `yaml:"cities"`
	ExcludedCountries   []string `yaml:"excluded_countries"`
	ExcludedStates      []string `yaml:"excluded_states"`
	ExcludedPostalCodes []string `yaml:"excluded_postal_codes"`
	Default             bool     `yaml:"default"`
}

type methodDoc struct {
	ID                string  `yaml:"id"`
	Name              string  `yaml:"name"`
	CalculationType   string  `yaml:"calculation_type"`
	BaseRate          *string `yaml:"base_rate"`
	WeightPerUnitRate *string `yaml:"weight_per_unit_rate"`
	PricePercentage   *string `yaml:"price_percentage"`
	MinimumCost       *string `yaml:"minimum_cost"`
	MaximumCost       *string `yaml:"maximum_cost"`
	PerItemRate       *string `yaml:"per_item_rate"`
	HandlingFee       *string `yaml:"handling_fee"`
	EstimateMinDays   *int    `yaml:"delivery_estimate_min_days"`
	EstimateMaxDays   *int    `yaml:"delivery_estimate_max_days"`
	Active            bool    `yaml:"active"`
}

type rateDoc struct {
	ID                    string  `yaml:"id"`
	Zone                  string  `yaml:"zone"`
	Method                string  `yaml:"method"`
	BaseRate              *string `yaml:"base_rate"`
	WeightPerUnitRate     *string `yaml:"weight_per_unit_rate"`
	PricePercentage       *string `yaml:"price_percentage"`
	PerItemRate           *string `yaml:"per_item_rate"`
	HandlingFee           *string `yaml:"handling_fee"`
	MinWeight             *string `yaml:"min_weight"`
	MaxWeight             *string `yaml:"max_weight"`
	MinOrderAmount        *string `yaml:"min_order_amount"`
	MaxOrderAmount        *string `yaml:"max_order_amount"`
	FreeShippingThreshold *string `yaml:"free_shipping_threshold"`
}

type taxCategoryDoc struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type taxRateDoc struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Zone          string  `yaml:"zone"`
	Category      string  `yaml:"category"`
	RateType      string  `yaml:"rate_type"`
	Rate          *string `yaml:"rate"`
	FlatAmount    *string `yaml:"flat_amount"`
	Compound      bool    `yaml:"compound"`
	Priority      int     `yaml:"priority"`
	MinimumAmount *string `yaml:"minimum_amount"`
	MaximumAmount *string `yaml:"maximum_amount"`
	MaximumTax    *string `yaml:"maximum_tax"`
	EffectiveFrom *string `yaml:"effective_from"`
	EffectiveTo   *string `yaml:"effective_to"`
	Active        bool    `yaml:"active"`
}

type discountDoc struct {
	ID                    string   `yaml:"id"`
	Code                  string   `yaml:"code"`
	Name                  string   `yaml:"name"`
	Type                  string   `yaml:"type"`
	Scope                 string   `yaml:"scope"`
	Value                 *string  `yaml:"value"`
	MaxDiscountAmount     *string  `yaml:"max_discount_amount"`
	MinimumOrderAmount    *string  `yaml:"minimum_order_amount"`
	MinimumQuantity       *int     `yaml:"minimum_quantity"`
	ApplicableProductIDs  []string `yaml:"applicable_product_ids"`
	ApplicableCategoryIDs []string `yaml:"applicable_category_ids"`
	ExcludedProductIDs    []string `yaml:"excluded_product_ids"`
	ExcludedCategoryIDs   []string `yaml:"excluded_category_ids"`
	EligibleCustomerIDs   []string `yaml:"eligible_customer_ids"`
	EligibleCustomerTiers []string `yaml:"eligible_customer_tiers"`
	FirstTimeCustomerOnly bool     `yaml:"first_time_customer_only"`
	ExcludeSaleItems      bool     `yaml:"exclude_sale_items"`
	BuyQuantity           int      `yaml:"buy_quantity"`
	GetQuantity           int      `yaml:"get_quantity"`
	GetProductIDs         []string `yaml:"get_product_ids"`
	GetDiscountPercent    *string  `yaml:"get_discount_percent"`
	TotalUsageLimit       *int     `yaml:"total_usage_limit"`
	PerCustomerLimit      *int     `yaml:"per_customer_limit"`
	UsageCount            int      `yaml:"usage_count"`
	StartDate             *string  `yaml:"start_date"`
	EndDate               *string  `yaml:"end_date"`
	Active                bool     `yaml:"active"`
	Priority              int      `yaml:"priority"`
	CanCombine            bool     `yaml:"can_combine"`
}

type paymentMethodDoc struct {
	ID                    string   `yaml:"id"`
	Name                  string   `yaml:"name"`
	FeeType               string   `yaml:"fee_type"`
	FlatFee               *string  `yaml:"flat_fee"`
	PercentageFee         *string  `yaml:"percentage_fee"`
	MaxFee                *string  `yaml:"max_fee"`
	AllowedCountries      []string `yaml:"allowed_countries"`
	ExcludedCountries     []string `yaml:"excluded_countries"`
	AllowedCurrencies     []string `yaml:"allowed_currencies"`
	AllowedCustomerGroups []string `yaml:"allowed_customer_groups"`
	MinOrderAmount        *string  `yaml:"min_order_amount"`
	MaxOrderAmount        *string  `yaml:"max_order_amount"`
	Active                bool     `yaml:"active"`
}

// Load decodes and validates a YAML configuration snapshot.
func Load(r io.Reader) (*domain.Snapshot, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return buildSnapshot(doc)
}

// LoadFile reads and decodes a YAML configuration snapshot from disk.
func LoadFile(path string) (*domain.Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: unable to read %s: %w", path, err)
	}
	defer file.Close()
	return Load(file)
}

func buildSnapshot(doc document) (*domain.Snapshot, error) {
	currency, err := domain.NormalizeCurrency(doc.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: currency: %v", ErrInvalid, err)
	}

	snap := &domain.Snapshot{Currency: currency}

	seenZones := map[string]bool{}
	for _, z := range doc.ShippingZones {
		if err := checkID("shipping zone", z.ID, seenZones); err != nil {
			return nil, err
		}
		snap.ShippingZones = append(snap.ShippingZones, domain.ShippingZone{
			ID:        z.ID,
			Name:      z.Name,
			ZoneRules: buildZoneRules(z),
		})
	}

	seenMethods := map[string]bool{}
	for _, m := range doc.ShippingMethods {
		method, err := buildMethod(m, seenMethods)
		if err != nil {
			return nil, err
		}
		snap.ShippingMethods = append(snap.ShippingMethods, method)
	}

	seenRates := map[string]bool{}
	for _, r := range doc.ShippingRates {
		rate, err := buildRate(r, seenRates, seenZones, seenMethods)
		if err != nil {
			return nil, err
		}
		snap.ShippingRates = append(snap.ShippingRates, rate)
	}

	seenTaxZones := map[string]bool{}
	for _, z := range doc.TaxZones {
		if err := checkID("tax zone", z.ID, seenTaxZones); err != nil {
			return nil, err
		}
		snap.TaxZones = append(snap.TaxZones, domain.TaxZone{
			ID:        z.ID,
			Name:      z.Name,
			ZoneRules: buildZoneRules(z),
		})
	}

	seenCategories := map[string]bool{}
	for _, c := range doc.TaxCategories {
		if err := checkID("tax category", c.ID, seenCategories); err != nil {
			return nil, err
		}
		snap.TaxCategories = append(snap.TaxCategories, domain.TaxCategory{ID: c.ID, Name: c.Name})
	}

	seenTaxRates := map[string]bool{}
	for _, r := range doc.TaxRates {
		rate, err := buildTaxRate(r, seenTaxRates, seenTaxZones, seenCategories)
		if err != nil {
			return nil, err
		}
		snap.TaxRates = append(snap.TaxRates, rate)
	}

	seenDiscounts := map[string]bool{}
	for _, d := range doc.Discounts {
		discount, err := buildDiscount(d, seenDiscounts)
		if err != nil {
			return nil, err
		}
		snap.Discounts = append(snap.Discounts, discount)
	}

	seenPayments := map[string]bool{}
	for _, p := range doc.PaymentMethods {
		method, err := buildPaymentMethod(p, seenPayments)
		if err != nil {
			return nil, err
		}
		snap.PaymentMethods = append(snap.PaymentMethods, method)
	}

	return snap, nil
}

func buildZoneRules(z zoneDoc) domain.ZoneRules {
	return domain.ZoneRules{
		Countries:           z.Countries,
		States:              z.States,
		PostalCodePatterns:  z.PostalCodePatterns,
		Cities:              z.Cities,
		ExcludedCountries:   z.ExcludedCountries,
		ExcludedStates:      z.ExcludedStates,
		ExcludedPostalCodes: z.ExcludedPostalCodes,
		IsDefault:           z.Default,
	}
}

var calculationTypes = map[string]domain.CalculationType{
	string(domain.CalculationFlatRate):          domain.CalculationFlatRate,
	string(domain.CalculationFreeShipping):      domain.CalculationFreeShipping,
	string(domain.CalculationWeightBased):       domain.CalculationWeightBased,
	string(domain.CalculationPriceBased):        domain.CalculationPriceBased,
	string(domain.CalculationPerItem):           domain.CalculationPerItem,
	string(domain.CalculationCarrierCalculated): domain.CalculationCarrierCalculated,
}

func buildMethod(m methodDoc, seen map[string]bool) (domain.ShippingMethod, error) {
	var method domain.ShippingMethod
	if err := checkID("shipping method", m.ID, seen); err != nil {
		return method, err
	}
	calcType, ok := calculationTypes[m.CalculationType]
	if !ok {
		return method, fmt.Errorf("%w: shipping method %q: unknown calculation type %q", ErrInvalid, m.ID, m.CalculationType)
	}

	fields := map[string]*string{
		"base_rate":            m.BaseRate,
		"weight_per_unit_rate": m.WeightPerUnitRate,
		"price_percentage":     m.PricePercentage,
		"minimum_cost":         m.MinimumCost,
		"maximum_cost":         m.MaximumCost,
		"per_item_rate":        m.PerItemRate,
		"handling_fee":         m.HandlingFee,
	}
	parsed, err := parseDecimalFields("shipping method", m.ID, fields)
	if err != nil {
		return method, err
	}

	method = domain.ShippingMethod{
		ID:                      m.ID,
		Name:                    m.Name,
		CalculationType:         calcType,
		BaseRate:                parsed["base_rate"],
		WeightPerUnitRate:       parsed["weight_per_unit_rate"],
		PricePercentage:         parsed["price_percentage"],
		MinimumCost:             parsed["minimum_cost"],
		MaximumCost:             parsed["maximum_cost"],
		PerItemRate:             parsed["per_item_rate"],
		HandlingFee:             parsed["handling_fee"],
		DeliveryEstimateMinDays: m.EstimateMinDays,
		DeliveryEstimateMaxDays: m.EstimateMaxDays,
		IsActive:                m.Active,
	}
	if err := checkOrderedPair("shipping method", m.ID, "minimum_cost", method.MinimumCost, "maximum_cost", method.MaximumCost); err != nil {
		return domain.ShippingMethod{}, err
	}
	return method, nil
}

func buildRate(r rateDoc, seen, zones, methods map[string]bool) (domain.ShippingRate, error) {
	var rate domain.ShippingRate
	if err := checkID("shipping rate", r.ID, seen); err != nil {
		return rate, err
	}
	if !zones[r.Zone] {
		return rate, fmt.Errorf("%w: shipping rate %q references unknown zone %q", ErrInvalid, r.ID, r.Zone)
	}
	if !methods[r.Method] {
		return rate, fmt.Errorf("%w: shipping rate %q references unknown method %q", ErrInvalid, r.ID, r.Method)
	}

	fields := map[string]*string{
		"base_rate":               r.BaseRate,
		"weight_per_unit_rate":    r.WeightPerUnitRate,
		"price_percentage":        r.PricePercentage,
		"per_item_rate":           r.PerItemRate,
		"handling_fee":            r.HandlingFee,
		"min_weight":              r.MinWeight,
		"max_weight":              r.MaxWeight,
		"min_order_amount":        r.MinOrderAmount,
		"max_order_amount":        r.MaxOrderAmount,
		"free_shipping_threshold": r.FreeShippingThreshold,
	}
	parsed, err := parseDecimalFields("shipping rate", r.ID, fields)
	if err != nil {
		return rate, err
	}

	rate = domain.ShippingRate{
		ID:                    r.ID,
		ZoneID:                r.Zone,
		MethodID:              r.Method,
		BaseRate:              parsed["base_rate"],
		WeightPerUnitRate:     parsed["weight_per_unit_rate"],
		PricePercentage:       parsed["price_percentage"],
		PerItemRate:           parsed["per_item_rate"],
		HandlingFee:           parsed["handling_fee"],
		MinWeight:             parsed["min_weight"],
		MaxWeight:             parsed["max_weight"],
		MinOrderAmount:        parsed["min_order_amount"],
		MaxOrderAmount:        parsed["max_order_amount"],
		FreeShippingThreshold: parsed["free_shipping_threshold"],
	}
	if err := checkOrderedPair("shipping rate", r.ID, "min_weight", rate.MinWeight, "max_weight", rate.MaxWeight); err != nil {
		return domain.ShippingRate{}, err
	}
	if err := checkOrderedPair("shipping rate", r.ID, "min_order_amount", rate.MinOrderAmount, "max_order_amount", rate.MaxOrderAmount); err != nil {
		return domain.ShippingRate{}, err
	}
	return rate, nil
}

var taxRateTypes = map[string]domain.TaxRateType{
	string(domain.TaxRatePercentage): domain.TaxRatePercentage,
	string(domain.TaxRateFlat):       domain.TaxRateFlat,
	string(domain.TaxRatePerUnit):    domain.TaxRatePerUnit,
}

func buildTaxRate(r taxRateDoc, seen, zones, categories map[string]bool) (domain.TaxRate, error) {
	var rate domain.TaxRate
	if err := checkID("tax rate", r.ID, seen); err != nil {
		return rate, err
	}
	if !zones[r.Zone] {
		return rate, fmt.Errorf("%w: tax rate %q references unknown zone %q", ErrInvalid, r.ID, r.Zone)
	}
	if r.Category != "" && !categories[r.Category] {
		return rate, fmt.Errorf("%w: tax rate %q references unknown category %q", ErrInvalid, r.ID, r.Category)
	}
	rateType, ok := taxRateTypes[r.RateType]
	if !ok {
		return rate, fmt.Errorf("%w: tax rate %q: unknown rate type %q", ErrInvalid, r.ID, r.RateType)
	}

	fields := map[string]*string{
		"rate":           r.Rate,
		"flat_amount":    r.FlatAmount,
		"minimum_amount": r.MinimumAmount,
		"maximum_amount": r.MaximumAmount,
		"maximum_tax":    r.MaximumTax,
	}
	parsed, err := parseDecimalFields("tax rate", r.ID, fields)
	if err != nil {
		return rate, err
	}

	from, err := parseTime("tax rate", r.ID, "effective_from", r.EffectiveFrom)
	if err != nil {
		return rate, err
	}
	to, err := parseTime("tax rate", r.ID, "effective_to", r.EffectiveTo)
	if err != nil {
		return rate, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return rate, fmt.Errorf("%w: tax rate %q: effective_to precedes effective_from", ErrInvalid, r.ID)
	}

	rate = domain.TaxRate{
		ID:            r.ID,
		Name:          r.Name,
		ZoneID:        r.Zone,
		CategoryID:    r.Category,
		RateType:      rateType,
		Rate:          valueOrZero(parsed["rate"]),
		FlatAmount:    valueOrZero(parsed["flat_amount"]),
		IsCompound:    r.Compound,
		Priority:      r.Priority,
		MinimumAmount: parsed["minimum_amount"],
		MaximumAmount: parsed["maximum_amount"],
		MaximumTax:    parsed["maximum_tax"],
		EffectiveFrom: from,
		EffectiveTo:   to,
		IsActive:      r.Active,
	}
	if err := checkOrderedPair("tax rate", r.ID, "minimum_amount", rate.MinimumAmount, "maximum_amount", rate.MaximumAmount); err != nil {
		return domain.TaxRate{}, err
	}
	return rate, nil
}

var discountTypes = map[string]domain.DiscountType{
	string(domain.DiscountPercentage):   domain.DiscountPercentage,
	string(domain.DiscountFixedAmount):  domain.DiscountFixedAmount,
	string(domain.DiscountFreeShipping): domain.DiscountFreeShipping,
	string(domain.DiscountBuyXGetY):     domain.DiscountBuyXGetY,
}

var discountScopes = map[string]domain.DiscountScope{
	string(domain.ScopeOrder):    domain.ScopeOrder,
	string(domain.ScopeProduct):  domain.ScopeProduct,
	string(domain.ScopeCategory): domain.ScopeCategory,
	string(domain.ScopeShipping): domain.ScopeShipping,
}

func buildDiscount(d discountDoc, seen map[string]bool) (domain.Discount, error) {
	var discount domain.Discount
	if err := checkID("discount", d.ID, seen); err != nil {
		return discount, err
	}
	discountType, ok := discountTypes[d.Type]
	if !ok {
		return discount, fmt.Errorf("%w: discount %q: unknown type %q", ErrInvalid, d.ID, d.Type)
	}
	scope, ok := discountScopes[d.Scope]
	if !ok {
		return discount, fmt.Errorf("%w: discount %q: unknown scope %q", ErrInvalid, d.ID, d.Scope)
	}
	if discountType == domain.DiscountBuyXGetY && (d.BuyQuantity <= 0 || d.GetQuantity <= 0) {
		return discount, fmt.Errorf("%w: discount %q: buy_quantity and get_quantity must be positive", ErrInvalid, d.ID)
	}

	fields := map[string]*string{
		"value":                d.Value,
		"max_discount_amount":  d.MaxDiscountAmount,
		"minimum_order_amount": d.MinimumOrderAmount,
		"get_discount_percent": d.GetDiscountPercent,
	}
	parsed, err := parseDecimalFields("discount", d.ID, fields)
	if err != nil {
		return discount, err
	}

	start, err := parseTime("discount", d.ID, "start_date", d.StartDate)
	if err != nil {
		return discount, err
	}
	end, err := parseTime("discount", d.ID, "end_date", d.EndDate)
	if err != nil {
		return discount, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return discount, fmt.Errorf("%w: discount %q: end_date precedes start_date", ErrInvalid, d.ID)
	}

	return domain.Discount{
		ID:                    d.ID,
		Code:                  d.Code,
		Name:                  d.Name,
		Type:                  discountType,
		Scope:                 scope,
		Value:                 valueOrZero(parsed["value"]),
		MaxDiscountAmount:     parsed["max_discount_amount"],
		MinimumOrderAmount:    parsed["minimum_order_amount"],
		MinimumQuantity:       d.MinimumQuantity,
		ApplicableProductIDs:  d.ApplicableProductIDs,
		ApplicableCategoryIDs: d.ApplicableCategoryIDs,
		ExcludedProductIDs:    d.ExcludedProductIDs,
		ExcludedCategoryIDs:   d.ExcludedCategoryIDs,
		EligibleCustomerIDs:   d.EligibleCustomerIDs,
		EligibleCustomerTiers: d.EligibleCustomerTiers,
		FirstTimeCustomerOnly: d.FirstTimeCustomerOnly,
		ExcludeSaleItems:      d.ExcludeSaleItems,
		BuyQuantity:           d.BuyQuantity,
		GetQuantity:           d.GetQuantity,
		GetProductIDs:         d.GetProductIDs,
		GetDiscountPercent:    valueOrZero(parsed["get_discount_percent"]),
		TotalUsageLimit:       d.TotalUsageLimit,
		PerCustomerLimit:      d.PerCustomerLimit,
		UsageCount:            d.UsageCount,
		StartDate:             start,
		EndDate:               end,
		IsActive:              d.Active,
		Priority:              d.Priority,
		CanCombine:            d.CanCombine,
	}, nil
}

var feeTypes = map[string]domain.FeeType{
	string(domain.FeeNone):               domain.FeeNone,
	string(domain.FeeFlat):               domain.FeeFlat,
	string(domain.FeePercentage):         domain.FeePercentage,
	string(domain.FeeFlatPlusPercentage): domain.FeeFlatPlusPercentage,
}

func buildPaymentMethod(p paymentMethodDoc, seen map[string]bool) (domain.PaymentMethodConfig, error) {
	var method domain.PaymentMethodConfig
	if err := checkID("payment method", p.ID, seen); err != nil {
		return method, err
	}
	feeType := domain.FeeNone
	if p.FeeType != "" {
		var ok bool
		feeType, ok = feeTypes[p.FeeType]
		if !ok {
			return method, fmt.Errorf("%w: payment method %q: unknown fee type %q", ErrInvalid, p.ID, p.FeeType)
		}
	}

	fields := map[string]*string{
		"flat_fee":         p.FlatFee,
		"percentage_fee":   p.PercentageFee,
		"max_fee":          p.MaxFee,
		"min_order_amount": p.MinOrderAmount,
		"max_order_amount": p.MaxOrderAmount,
	}
	parsed, err := parseDecimalFields("payment method", p.ID, fields)
	if err != nil {
		return method, err
	}

	for _, code := range p.AllowedCurrencies {
		if _, err := domain.NormalizeCurrency(code); err != nil {
			return method, fmt.Errorf("%w: payment method %q: allowed currency %q", ErrInvalid, p.ID, code)
		}
	}

	method = domain.PaymentMethodConfig{
		ID:                    p.ID,
		Name:                  p.Name,
		FeeType:               feeType,
		FlatFee:               valueOrZero(parsed["flat_fee"]),
		PercentageFee:         valueOrZero(parsed["percentage_fee"]),
		MaxFee:                parsed["max_fee"],
		AllowedCountries:      p.AllowedCountries,
		ExcludedCountries:     p.ExcludedCountries,
		AllowedCurrencies:     p.AllowedCurrencies,
		AllowedCustomerGroups: p.AllowedCustomerGroups,
		MinOrderAmount:        parsed["min_order_amount"],
		MaxOrderAmount:        parsed["max_order_amount"],
		IsActive:              p.Active,
	}
	if err := checkOrderedPair("payment method", p.ID, "min_order_amount", method.MinOrderAmount, "max_order_amount", method.MaxOrderAmount); err != nil {
		return domain.PaymentMethodConfig{}, err
	}
	return method, nil
}

func checkID(kind, id string, seen map[string]bool) error {
	if id == "" {
		return fmt.Errorf("%w: %s with empty id", ErrInvalid, kind)
	}
	if seen[id] {
		return fmt.Errorf("%w: duplicate %s id %q", ErrInvalid, kind, id)
	}
	seen[id] = true
	return nil
}

// parseDecimalFields parses every supplied optional field, rejecting values
// that are not valid non-negative decimals.
func parseDecimalFields(kind, id string, fields map[string]*string) (map[string]*decimal.Decimal, error) {
	parsed := make(map[string]*decimal.Decimal, len(fields))
	for name, raw := range fields {
		if raw == nil {
			continue
		}
		value, err := decimal.NewFromString(*raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: %s is not a decimal: %q", ErrInvalid, kind, id, name, *raw)
		}
		if value.IsNegative() {
			return nil, fmt.Errorf("%w: %s %q: %s must not be negative", ErrInvalid, kind, id, name)
		}
		parsed[name] = &value
	}
	return parsed, nil
}

// valueOrZero dereferences an optional parsed decimal, defaulting to zero.
func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func parseTime(kind, id, name string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %s is not RFC 3339: %q", ErrInvalid, kind, id, name, *raw)
	}
	utc := parsed.UTC()
	return &utc, nil
}

func checkOrderedPair(kind, id, minName string, minValue *decimal.Decimal, maxName string, maxValue *decimal.Decimal) error {
	if minValue != nil && maxValue != nil && maxValue.LessThan(*minValue) {
		return fmt.Errorf("%w: %s %q: %s precedes %s", ErrInvalid, kind, id, maxName, minName)
	}
	return nil
}
