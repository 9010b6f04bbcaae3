package calculator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/annuity-calc/pkg/annuity"
	"github.com/iwvelando/annuity-calc/pkg/constants"
	"github.com/iwvelando/annuity-calc/pkg/mathutil"
)

// ErrInvalidInput is returned for missing or unparseable fields. Callers skip
// the recalculation and keep whatever they displayed before.
var ErrInvalidInput = annuity.ErrInvalidInput

// Mode selects which side of the annuity formula is computed.
type Mode int

const (
	// ModePayment computes the monthly payment from an annual rate.
	ModePayment Mode = iota
	// ModeRate computes the annual rate from a monthly payment.
	ModeRate
)

func (m Mode) String() string {
	switch m {
	case ModePayment:
		return constants.ModePayment
	case ModeRate:
		return constants.ModeRate
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts a mode name or its selector position ("0" payment, "1" rate).
// An empty value selects ModePayment.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", constants.ModePayment, "0":
		return ModePayment, nil
	case constants.ModeRate, "1":
		return ModeRate, nil
	default:
		return ModePayment, fmt.Errorf("%w: unknown mode %q, expected %s or %s",
			ErrInvalidInput, value, constants.ModePayment, constants.ModeRate)
	}
}

// TermChoices are the loan terms offered by the term selector, in months.
var TermChoices = []int{6, 12, 24, 36, 60}

// TermForChoice maps a term selector position to a number of months.
func TermForChoice(index int) (int, error) {
	if index < 0 || index >= len(TermChoices) {
		return 0, fmt.Errorf("%w: term choice %d out of range [0, %d]", ErrInvalidInput, index, len(TermChoices)-1)
	}
	return TermChoices[index], nil
}

// RawInputs is a snapshot of the text fields of a calculation form.
type RawInputs struct {
	Mode      string `json:"mode"`
	Principal string `json:"principal"`
	// TermChoice is a selector position into TermChoices. It takes precedence
	// over TermMonths when set.
	TermChoice     string `json:"termChoice,omitempty"`
	TermMonths     string `json:"termMonths,omitempty"`
	RatePercent    string `json:"ratePercent,omitempty"`
	MonthlyPayment string `json:"monthlyPayment,omitempty"`
}

// Inputs are parsed calculation inputs. AnnualRate is a fraction and is only
// used in ModePayment; MonthlyPayment is only used in ModeRate.
type Inputs struct {
	Mode           Mode
	Principal      float64
	TermMonths     int
	AnnualRate     float64
	MonthlyPayment float64
}

// ParseInputs parses the fields relevant to the selected mode. Range checks
// are left to Calculate so that a parsed but unusable value is reported to
// the user rather than silently ignored.
func ParseInputs(raw RawInputs) (Inputs, error) {
	mode, err := ParseMode(raw.Mode)
	if err != nil {
		return Inputs{}, err
	}

	principal, err := parseNumber("principal", raw.Principal)
	if err != nil {
		return Inputs{}, err
	}

	termMonths, err := parseTerm(raw)
	if err != nil {
		return Inputs{}, err
	}

	in := Inputs{Mode: mode, Principal: principal, TermMonths: termMonths}
	switch mode {
	case ModePayment:
		ratePercent, err := parseNumber("rate", raw.RatePercent)
		if err != nil {
			return Inputs{}, err
		}
		in.AnnualRate = mathutil.FromPercentage(ratePercent)
	case ModeRate:
		in.MonthlyPayment, err = parseNumber("monthly payment", raw.MonthlyPayment)
		if err != nil {
			return Inputs{}, err
		}
	}
	return in, nil
}

func parseTerm(raw RawInputs) (int, error) {
	if choice := strings.TrimSpace(raw.TermChoice); choice != "" {
		index, err := strconv.Atoi(choice)
		if err != nil {
			return 0, fmt.Errorf("%w: term choice %q is not an integer", ErrInvalidInput, raw.TermChoice)
		}
		return TermForChoice(index)
	}

	months := strings.TrimSpace(raw.TermMonths)
	if months == "" {
		return 0, fmt.Errorf("%w: term is required", ErrInvalidInput)
	}
	termMonths, err := strconv.Atoi(months)
	if err != nil {
		return 0, fmt.Errorf("%w: term %q is not a whole number of months", ErrInvalidInput, raw.TermMonths)
	}
	return termMonths, nil
}

func parseNumber(field, value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidInput, field, value)
	}
	return parsed, nil
}
