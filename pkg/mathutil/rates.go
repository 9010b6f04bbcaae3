// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/annuity-calc/pkg/constants"
)

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// IsFinitePositive reports whether val is finite and strictly greater than zero.
func IsFinitePositive(val float64) bool {
	return IsFinite(val) && val > 0
}

// FromPercentage converts a percentage (12) to a fraction (0.12).
func FromPercentage(percentage float64) float64 {
	return percentage / constants.PercentageMultiplier
}

// MonthlyRate converts an annual rate fraction to its monthly compounding rate.
func MonthlyRate(annualRate float64) float64 {
	return annualRate / constants.MonthsPerYear
}
