package annuity

import (
	"testing"

	"github.com/iwvelando/annuity-calc/pkg/constants"
	"pgregory.net/rapid"
)

func drawLoan(t *rapid.T) (float64, int) {
	principal := rapid.Float64Range(1_000, 10_000_000).Draw(t, "principal")
	termMonths := rapid.IntRange(1, 20_000).Draw(t, "termMonths")
	return principal, termMonths
}

func TestPaymentExceedsPrincipalShareProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal, termMonths := drawLoan(t)
		rate := rapid.Float64Range(0.001, 0.99).Draw(t, "rate")

		payment, err := MonthlyPayment(principal, rate, termMonths)
		if err != nil {
			t.Fatalf("MonthlyPayment() error = %v", err)
		}
		if payment <= 0 {
			t.Fatalf("payment %v is not positive", payment)
		}
		if payment*float64(termMonths) <= principal {
			t.Fatalf("total paid %v does not exceed principal %v", payment*float64(termMonths), principal)
		}
	})
}

func TestZeroRatePaymentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal, termMonths := drawLoan(t)

		payment, err := MonthlyPayment(principal, 0, termMonths)
		if err != nil {
			t.Fatalf("MonthlyPayment() error = %v", err)
		}
		if payment != principal/float64(termMonths) {
			t.Fatalf("payment %v, expected %v", payment, principal/float64(termMonths))
		}
	})
}

func TestPaymentMonotonicInRateProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal, termMonths := drawLoan(t)
		lower := rapid.Float64Range(0, 0.98).Draw(t, "lower")
		step := rapid.Float64Range(0.0001, 0.01).Draw(t, "step")

		low, err := MonthlyPayment(principal, lower, termMonths)
		if err != nil {
			t.Fatalf("MonthlyPayment() error = %v", err)
		}
		high, err := MonthlyPayment(principal, lower+step, termMonths)
		if err != nil {
			t.Fatalf("MonthlyPayment() error = %v", err)
		}
		if !(high > low) {
			t.Fatalf("payment at %v (%v) is not above payment at %v (%v)", lower+step, high, lower, low)
		}
	})
}

func TestSolveAnnualRateRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal, termMonths := drawLoan(t)
		rate := rapid.Float64Range(0, 0.99).Draw(t, "rate")

		payment, err := MonthlyPayment(principal, rate, termMonths)
		if err != nil {
			t.Fatalf("MonthlyPayment() error = %v", err)
		}
		solution, err := SolveAnnualRate(principal, payment, termMonths, SolverConfig{})
		if err != nil {
			t.Fatalf("SolveAnnualRate() error = %v", err)
		}
		if diff := solution.Rate - rate; diff > 0.001 || diff < -0.001 {
			t.Fatalf("solved rate %v, expected %v (iterations %d, converged %v)",
				solution.Rate, rate, solution.Iterations, solution.Converged)
		}
	})
}

func TestSolveAnnualRateTerminatesProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal, termMonths := drawLoan(t)
		payment := rapid.Float64Range(0.01, 20_000_000).Draw(t, "payment")
		maxIterations := rapid.IntRange(1, constants.DefaultSolverMaxIterations).Draw(t, "maxIterations")

		solution, err := SolveAnnualRate(principal, payment, termMonths, SolverConfig{MaxIterations: maxIterations})
		if err != nil {
			t.Fatalf("SolveAnnualRate() error = %v", err)
		}
		if solution.Iterations < 1 || solution.Iterations > maxIterations {
			t.Fatalf("iterations %d outside [1, %d]", solution.Iterations, maxIterations)
		}
		if solution.Rate < constants.RateSearchLow || solution.Rate > constants.RateSearchHigh {
			t.Fatalf("rate %v escaped the search bracket", solution.Rate)
		}
	})
}
