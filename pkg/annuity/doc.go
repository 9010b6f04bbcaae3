// Package annuity implements the numeric engine of the calculator: the
// closed-form payment of a fully-amortizing annuity loan and the bisection
// search that inverts it to recover an annual rate from a monthly payment.
//
// Rates are fractions (0.12 for 12%). Every function is pure and safe for
// concurrent use.
package annuity
