// Package format renders payments and rates with fixed two-decimal precision.
package format

import (
	"github.com/iwvelando/annuity-calc/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var hundred = decimal.NewFromFloat(constants.PercentageMultiplier)

// Fixed2 returns amount rounded half away from zero to two decimals (e.g., "8884.88").
func Fixed2(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(constants.DisplayDecimals)
}

// Round2 rounds amount the same way Fixed2 does and returns the number.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(constants.DisplayDecimals).InexactFloat64()
}

// Percent renders an annual rate fraction as a two-decimal percentage without the sign (0.12 -> "12.00").
func Percent(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(hundred).StringFixed(constants.DisplayDecimals)
}

// PercentValue is the number Percent renders.
func PercentValue(rate float64) float64 {
	return decimal.NewFromFloat(rate).Mul(hundred).Round(constants.DisplayDecimals).InexactFloat64()
}

// Currency returns a currency string with thousands separators and no symbol (e.g., "-1,234.56").
func Currency(amount float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%.2f", Round2(amount))
}
