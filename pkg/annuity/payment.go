package annuity

import (
	"fmt"
	"math"

	"github.com/iwvelando/annuity-calc/pkg/mathutil"
)

// MonthlyPayment calculates the fixed monthly payment of a loan using the
// standard annuity formula P*r / (1 - (1+r)^-n) with r = annualRate/12.
//
// A zero rate yields principal/termMonths, where the closed form is 0/0.
func MonthlyPayment(principal, annualRate float64, termMonths int) (float64, error) {
	if !mathutil.IsFinitePositive(principal) {
		return 0, fmt.Errorf("%w: principal must be positive and finite, got %v", ErrInvalidInput, principal)
	}
	if termMonths <= 0 {
		return 0, fmt.Errorf("%w: term must be a positive number of months, got %d", ErrInvalidInput, termMonths)
	}
	if !mathutil.IsFinite(annualRate) || annualRate < 0 {
		return 0, fmt.Errorf("%w: annual rate must be non-negative and finite, got %v", ErrInvalidInput, annualRate)
	}

	payment := annuityPayment(principal, annualRate, termMonths)
	if !mathutil.IsFinite(payment) {
		return 0, fmt.Errorf("%w: payment for principal %v at rate %v over %d months is not finite",
			ErrComputation, principal, annualRate, termMonths)
	}
	return payment, nil
}

// annuityPayment is MonthlyPayment without argument checks. It is the inner
// loop of the rate search.
func annuityPayment(principal, annualRate float64, termMonths int) float64 {
	periodicInterestRate := mathutil.MonthlyRate(annualRate)
	if periodicInterestRate == 0 {
		return principal / float64(termMonths)
	}

	// discountFactor is 1-(1+r)^-n, which stays in (0,1] for any term and
	// avoids cancellation for tiny r, so the payment tends continuously to
	// principal/termMonths as r approaches 0.
	discountFactor := -math.Expm1(-float64(termMonths) * math.Log1p(periodicInterestRate))
	if discountFactor == 0 {
		return principal / float64(termMonths)
	}
	return principal * periodicInterestRate / discountFactor
}
