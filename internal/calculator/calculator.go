// Package calculator is the single computation entry point used by the CLI
// and the HTTP API. It turns a snapshot of form inputs into a tagged Result.
package calculator

import (
	"errors"
	"fmt"

	"github.com/iwvelando/annuity-calc/pkg/annuity"
	"github.com/iwvelando/annuity-calc/pkg/format"
	"go.uber.org/zap"
)

// ErrComputation wraps every failure raised while computing a result.
var ErrComputation = annuity.ErrComputation

// ErrorDisplay is the generic message shown for a failed calculation.
const ErrorDisplay = "Input error"

// Kind tags the variant held by a Result.
type Kind int

const (
	KindPayment Kind = iota
	KindRate
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindPayment:
		return "payment"
	case KindRate:
		return "rate"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Result is either a monthly payment, an annual rate fraction, or an error.
type Result struct {
	Kind  Kind
	Value float64

	// Iterations and Converged describe the rate search for KindRate.
	Iterations int
	Converged  bool

	// Err is set for KindError and wraps ErrComputation.
	Err error
}

// Display renders the result the way the calculator screen shows it.
func (r Result) Display() string {
	switch r.Kind {
	case KindPayment:
		return "Monthly payment: " + format.Fixed2(r.Value)
	case KindRate:
		return "Annual interest rate: " + format.Percent(r.Value) + "%"
	default:
		return ErrorDisplay
	}
}

// Warning describes a best-effort rate that missed the solver tolerance.
func (r Result) Warning() string {
	if r.Kind != KindRate || r.Converged {
		return ""
	}
	return fmt.Sprintf("rate search stopped after %d iterations without reaching the payment tolerance; the rate is approximate",
		r.Iterations)
}

// Calculator evaluates Inputs against the annuity engine.
type Calculator struct {
	logger *zap.Logger
	solver annuity.SolverConfig
}

// New creates a Calculator. A zero solver configuration uses the defaults.
func New(logger *zap.Logger, solver annuity.SolverConfig) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	solver.Normalize()
	return &Calculator{logger: logger, solver: solver}
}

// Solver returns the normalized solver configuration.
func (c *Calculator) Solver() annuity.SolverConfig {
	return c.solver
}

// Calculate computes the payment or the rate for in. It never fails: any
// error is returned as a KindError result.
func (c *Calculator) Calculate(in Inputs) Result {
	switch in.Mode {
	case ModePayment:
		payment, err := annuity.MonthlyPayment(in.Principal, in.AnnualRate, in.TermMonths)
		if err != nil {
			return c.failed(in, err)
		}
		c.logger.Debug("computed monthly payment",
			zap.String("op", "calculator.Calculate"),
			zap.Float64("principal", in.Principal),
			zap.Float64("annualRate", in.AnnualRate),
			zap.Int("termMonths", in.TermMonths),
			zap.Float64("payment", payment),
		)
		return Result{Kind: KindPayment, Value: payment}

	case ModeRate:
		solution, err := annuity.SolveAnnualRate(in.Principal, in.MonthlyPayment, in.TermMonths, c.solver)
		if err != nil {
			return c.failed(in, err)
		}
		if !solution.Converged {
			c.logger.Warn("rate search did not converge, returning best-effort rate",
				zap.String("op", "calculator.Calculate"),
				zap.Float64("principal", in.Principal),
				zap.Float64("monthlyPayment", in.MonthlyPayment),
				zap.Int("termMonths", in.TermMonths),
				zap.Float64("rate", solution.Rate),
				zap.Float64("solvedPayment", solution.Payment),
				zap.Int("iterations", solution.Iterations),
				zap.Float64("tolerance", c.solver.Tolerance),
			)
		} else {
			c.logger.Debug("computed annual rate",
				zap.String("op", "calculator.Calculate"),
				zap.Float64("rate", solution.Rate),
				zap.Int("iterations", solution.Iterations),
			)
		}
		return Result{
			Kind:       KindRate,
			Value:      solution.Rate,
			Iterations: solution.Iterations,
			Converged:  solution.Converged,
		}

	default:
		return c.failed(in, fmt.Errorf("%w: unsupported mode %s", ErrInvalidInput, in.Mode))
	}
}

// Recalculate parses raw and calculates. The boolean is false when the
// inputs are incomplete or unparseable, in which case the caller keeps its
// previous display.
func (c *Calculator) Recalculate(raw RawInputs) (Result, bool) {
	in, err := ParseInputs(raw)
	if err != nil {
		c.logger.Debug("skipping recalculation",
			zap.String("op", "calculator.Recalculate"),
			zap.Error(err),
		)
		return Result{}, false
	}
	return c.Calculate(in), true
}

func (c *Calculator) failed(in Inputs, err error) Result {
	if !errors.Is(err, ErrComputation) {
		err = fmt.Errorf("%w: %w", ErrComputation, err)
	}
	c.logger.Debug("calculation failed",
		zap.String("op", "calculator.Calculate"),
		zap.String("mode", in.Mode.String()),
		zap.Error(err),
	)
	return Result{Kind: KindError, Err: err}
}
