// Package currency converts base-currency amounts into whole display units.
// The rate is a fixed presentation multiplier, not an exchange rate.
package currency

import (
	"github.com/shopspring/decimal"
)

// Converter turns base-currency amounts into display amounts.
type Converter struct {
	rate   decimal.Decimal
	symbol string
}

// NewConverter creates a converter multiplying by rate and labelling with symbol.
func NewConverter(rate float64, symbol string) Converter {
	return Converter{
		rate:   decimal.NewFromFloat(rate),
		symbol: symbol,
	}
}

// Display returns amount * rate rounded half away from zero to a whole unit.
func (c Converter) Display(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(c.rate).Round(0).IntPart()
}

// Symbol returns the display currency symbol.
func (c Converter) Symbol() string {
	return c.symbol
}

// Format renders amount as "<symbol> <whole units>".
func (c Converter) Format(amount float64) string {
	return c.symbol + " " + decimal.NewFromInt(c.Display(amount)).String()
}
