// Package pricing computes checkout amounts: subtotal, shipping, tax and total.
package pricing

import (
	"shopfront/internal/model"

	"github.com/shopspring/decimal"
)

// ShippingUnavailableWarning is attached to a checkout when no delivery path exists.
const ShippingUnavailableWarning = "Delivery is not supported to this country. You may need to arrange pickup."

// Subtotal sums current price times quantity over all lines.
func Subtotal(lines []model.CartLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	return subtotal
}

// Shipping returns the cheapest fee among the active methods.
// ok is false when there is no active method, i.e. no delivery path.
func Shipping(methods []model.ShippingMethod, subtotal decimal.Decimal) (fee decimal.Decimal, ok bool) {
	for _, m := range methods {
		if !m.Active {
			continue
		}
		f := methodFee(m, subtotal)
		if !ok || f.LessThan(fee) {
			fee = f
			ok = true
		}
	}
	if !ok {
		return decimal.Zero, false
	}
	return fee.Round(2), true
}

func methodFee(m model.ShippingMethod, subtotal decimal.Decimal) decimal.Decimal {
	if m.FreeOver.Valid && subtotal.GreaterThanOrEqual(m.FreeOver.Decimal) {
		return decimal.Zero
	}
	return m.BaseRate
}

// Tax applies rate to subtotal. A nil rate means no tax is configured.
func Tax(subtotal decimal.Decimal, rate *model.TaxRate) decimal.Decimal {
	if rate == nil {
		return decimal.Zero
	}
	return subtotal.Mul(rate.Rate).Round(2)
}

// Total is subtotal + shipping + tax - discount, never below zero.
func Total(subtotal, shipping, tax, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(shipping).Add(tax).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
