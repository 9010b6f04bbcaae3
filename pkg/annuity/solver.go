package annuity

import (
	"fmt"
	"math"

	"github.com/iwvelando/annuity-calc/pkg/constants"
	"github.com/iwvelando/annuity-calc/pkg/mathutil"
)

// SolverConfig tunes the rate search. Zero values select the defaults.
type SolverConfig struct {
	// Tolerance is the accepted absolute payment difference, in currency units.
	Tolerance float64 `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	// MaxIterations caps the number of bisection steps.
	MaxIterations int `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// DefaultSolverConfig returns the default tolerance and iteration budget.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Tolerance:     constants.DefaultSolverTolerance,
		MaxIterations: constants.DefaultSolverMaxIterations,
	}
}

// Normalize applies defaults to unset fields.
func (c *SolverConfig) Normalize() {
	if c == nil {
		return
	}
	if c.Tolerance <= 0 || math.IsNaN(c.Tolerance) {
		c.Tolerance = constants.DefaultSolverTolerance
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = constants.DefaultSolverMaxIterations
	}
}

// Validate returns an error when the configuration cannot drive a search.
func (c *SolverConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("solver configuration cannot be nil")
	}
	c.Normalize()
	if math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("solver tolerance must be finite")
	}
	return nil
}

// Solution is the outcome of a rate search.
type Solution struct {
	// Rate is the annual rate fraction. When Converged is false it is the
	// last midpoint of the search, a best-effort approximation.
	Rate float64 `json:"rate"`
	// Payment is the monthly payment produced by Rate.
	Payment float64 `json:"payment"`
	// Iterations is the number of payment evaluations performed.
	Iterations int `json:"iterations"`
	// Converged reports whether Payment is within tolerance of the target.
	Converged bool `json:"converged"`
}

// Err returns ErrNotConverged for a best-effort solution and nil otherwise.
func (s Solution) Err() error {
	if s.Converged {
		return nil
	}
	return fmt.Errorf("%w after %d iterations (rate %.6f, payment %.4f)",
		ErrNotConverged, s.Iterations, s.Rate, s.Payment)
}

// SolveAnnualRate finds the annual rate in [0, 1] whose monthly payment for
// principal over termMonths matches monthlyPayment within cfg.Tolerance.
//
// The search is a bisection starting at 0.5. Payment is continuous and
// strictly increasing in the rate over the bracket, including at the zero-rate
// branch of MonthlyPayment, so the bracket always keeps the root when one
// exists. A target outside [payment(0), payment(1)] drives the search to the
// nearest bound and is reported as not converged. A search that exhausts its
// budget, or whose bracket collapses to floating-point resolution, returns the
// last midpoint with Converged false instead of failing.
func SolveAnnualRate(principal, monthlyPayment float64, termMonths int, cfg SolverConfig) (Solution, error) {
	if !mathutil.IsFinitePositive(principal) {
		return Solution{}, fmt.Errorf("%w: principal must be positive and finite, got %v", ErrInvalidInput, principal)
	}
	if !mathutil.IsFinitePositive(monthlyPayment) {
		return Solution{}, fmt.Errorf("%w: monthly payment must be positive and finite, got %v", ErrInvalidInput, monthlyPayment)
	}
	if termMonths <= 0 {
		return Solution{}, fmt.Errorf("%w: term must be a positive number of months, got %d", ErrInvalidInput, termMonths)
	}
	if err := cfg.Validate(); err != nil {
		return Solution{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	low := constants.RateSearchLow
	high := constants.RateSearchHigh
	rate := low + (high-low)/2

	var solution Solution
	for solution.Iterations < cfg.MaxIterations {
		calculated := annuityPayment(principal, rate, termMonths)
		solution.Iterations++
		solution.Rate = rate
		solution.Payment = calculated

		if !mathutil.IsFinite(calculated) {
			return solution, fmt.Errorf("%w: payment at rate %v is not finite", ErrComputation, rate)
		}
		if math.Abs(calculated-monthlyPayment) < cfg.Tolerance {
			solution.Converged = true
			return solution, nil
		}

		if calculated > monthlyPayment {
			high = rate
		} else {
			low = rate
		}
		next := low + (high-low)/2
		if next == rate {
			break
		}
		rate = next
	}

	return solution, nil
}
