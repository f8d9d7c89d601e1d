package cart

import (
	"shopease/internal/model"

	"github.com/shopspring/decimal"
)

// Subtotal returns the sum of price * quantity over all lines, in the
// catalogue's base currency.
func Subtotal(items []model.CartLineItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(lineTotal(item))
	}
	return total.InexactFloat64()
}

// LineTotal returns price * quantity for a single line.
func LineTotal(item model.CartLineItem) float64 {
	return lineTotal(item).InexactFloat64()
}

// ItemCount returns the number of distinct lines, not the summed quantity.
func ItemCount(items []model.CartLineItem) int {
	return len(items)
}

func lineTotal(item model.CartLineItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
}
