// Package constants provides shared constants for the annuity-calc application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DisplayDecimals is the number of decimals shown for payments and rates
	DisplayDecimals = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Rate solver defaults
const (
	// DefaultSolverTolerance is the accepted absolute difference between the
	// computed and the target monthly payment, in payment currency units.
	DefaultSolverTolerance = 0.0001

	// DefaultSolverMaxIterations is the bisection iteration budget.
	DefaultSolverMaxIterations = 1000

	// RateSearchLow and RateSearchHigh bound the annual rate search (0% to 100%).
	RateSearchLow  = 0.0
	RateSearchHigh = 1.0
)

// Calculation modes
const (
	// ModePayment computes the monthly payment from a rate.
	ModePayment = "payment"

	// ModeRate computes the annual rate from a monthly payment.
	ModeRate = "rate"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum calculation request body (16 KB)
	DefaultMaxRequestSizeBytes int64 = 16 * 1024
)
