package annuity

import "errors"

var (
	// ErrInvalidInput reports a non-positive, non-finite or otherwise unusable argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrComputation reports an arithmetic failure such as an overflowing payment.
	ErrComputation = errors.New("computation error")

	// ErrNotConverged reports a rate search that exhausted its budget outside tolerance.
	ErrNotConverged = errors.New("rate search did not converge")
)
