package engine

import (
	"strings"

	domain "github.com/checkout-core/pricing/domain"
)

// PaymentFee computes the processing fee a payment method charges on an
// order amount, capped at MaxFee and rounded to 2 decimal places.
func PaymentFee(method PaymentMethodConfig, orderAmount Money) Money {
	fee := domain.Zero(orderAmount.Currency)

	switch method.FeeType {
	case domain.FeeFlat:
		fee.Amount = method.FlatFee
	case domain.FeePercentage:
		fee.Amount = orderAmount.Amount.Mul(method.PercentageFee).Div(percentDivisor)
	case domain.FeeFlatPlusPercentage:
		fee.Amount = method.FlatFee.Add(orderAmount.Amount.Mul(method.PercentageFee).Div(percentDivisor))
	case domain.FeeNone:
		// No fee configured.
	}

	if method.MaxFee != nil && fee.Amount.GreaterThan(*method.MaxFee) {
		fee.Amount = *method.MaxFee
	}
	return fee.Round().NonNegative()
}

// PaymentAvailable decides whether a payment method may be offered for an
// order context. The exclusion list always wins over the allow list; the
// customer-group restriction only applies when the context supplies a group.
// All checks are AND'd.
func PaymentAvailable(method PaymentMethodConfig, order OrderContext) bool {
	if !method.IsActive {
		return false
	}
	if method.MinOrderAmount != nil && order.Subtotal.Amount.LessThan(*method.MinOrderAmount) {
		return false
	}
	if method.MaxOrderAmount != nil && order.Subtotal.Amount.GreaterThan(*method.MaxOrderAmount) {
		return false
	}

	country := ""
	if order.ShippingAddress != nil {
		country = strings.TrimSpace(order.ShippingAddress.Country)
	}
	if country != "" && containsFold(method.ExcludedCountries, country) {
		return false
	}
	if len(method.AllowedCountries) > 0 && !containsFold(method.AllowedCountries, country) {
		return false
	}

	if len(method.AllowedCurrencies) > 0 && !containsFold(method.AllowedCurrencies, order.Currency) {
		return false
	}

	if len(method.AllowedCustomerGroups) > 0 && order.CustomerGroup != "" &&
		!containsFold(method.AllowedCustomerGroups, order.CustomerGroup) {
		return false
	}

	return true
}
