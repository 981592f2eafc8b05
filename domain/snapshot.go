package domain

// Snapshot is the immutable set of administrator-authored configuration
// records the engine prices against. Callers load it from persistence (or the
// snapshot package's YAML loader) and treat it as read-only per invocation.
type Snapshot struct {
	// Currency is the store currency every monetary parameter in the
	// snapshot is denominated in.
	Currency string

	ShippingZones   []ShippingZone
	ShippingMethods []ShippingMethod
	ShippingRates   []ShippingRate

	TaxZones      []TaxZone
	TaxCategories []TaxCategory
	TaxRates      []TaxRate

	Discounts      []Discount
	PaymentMethods []PaymentMethodConfig
}

// MethodByID looks up a shipping method.
func (s *Snapshot) MethodByID(id string) (ShippingMethod, bool) {
	for _, method := range s.ShippingMethods {
		if method.ID == id {
			return method, true
		}
	}
	return ShippingMethod{}, false
}

// RatesForZone returns the shipping rates bound to a zone, preserving
// configured order.
func (s *Snapshot) RatesForZone(zoneID string) []ShippingRate {
	var rates []ShippingRate
	for _, rate := range s.ShippingRates {
		if rate.ZoneID == zoneID {
			rates = append(rates, rate)
		}
	}
	return rates
}

// TaxRatesFor returns the tax rates bound to a zone and category, preserving
// configured order. Rates without a category apply to every category.
func (s *Snapshot) TaxRatesFor(zoneID, categoryID string) []TaxRate {
	var rates []TaxRate
	for _, rate := range s.TaxRates {
		if rate.ZoneID != zoneID {
			continue
		}
		if rate.CategoryID != "" && rate.CategoryID != categoryID {
			continue
		}
		rates = append(rates, rate)
	}
	return rates
}
