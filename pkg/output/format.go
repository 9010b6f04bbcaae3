// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/annuity-calc/internal/calculator"
	"github.com/iwvelando/annuity-calc/pkg/format"
)

// Report is the machine-readable form of a calculation.
type Report struct {
	Mode           string   `json:"mode"`
	Principal      float64  `json:"principal"`
	TermMonths     int      `json:"termMonths"`
	RatePercent    *float64 `json:"ratePercent,omitempty"`
	MonthlyPayment *float64 `json:"monthlyPayment,omitempty"`

	Kind       calculator.Kind `json:"kind"`
	Value      *float64        `json:"value,omitempty"`
	Display    string          `json:"display"`
	Iterations int             `json:"iterations,omitempty"`
	Converged  *bool           `json:"converged,omitempty"`
	Warning    string          `json:"warning,omitempty"`
}

// NewReport builds a Report. Values are rounded to two decimals exactly as
// Display renders them; rates are reported as percentages. Error details are not included.
func NewReport(in calculator.Inputs, result calculator.Result) Report {
	report := Report{
		Mode:       in.Mode.String(),
		Principal:  in.Principal,
		TermMonths: in.TermMonths,
		Kind:       result.Kind,
		Display:    result.Display(),
		Warning:    result.Warning(),
	}

	switch in.Mode {
	case calculator.ModePayment:
		ratePercent := format.PercentValue(in.AnnualRate)
		report.RatePercent = &ratePercent
	case calculator.ModeRate:
		payment := in.MonthlyPayment
		report.MonthlyPayment = &payment
	}

	switch result.Kind {
	case calculator.KindPayment:
		value := format.Round2(result.Value)
		report.Value = &value
	case calculator.KindRate:
		value := format.PercentValue(result.Value)
		converged := result.Converged
		report.Value = &value
		report.Converged = &converged
		report.Iterations = result.Iterations
	}
	return report
}

// PrettyFormat writes a human-readable summary of a calculation.
func PrettyFormat(w io.Writer, in calculator.Inputs, result calculator.Result) error {
	lines := []string{
		"Principal      | " + format.Currency(in.Principal),
		fmt.Sprintf("Term           | %d months", in.TermMonths),
	}
	switch in.Mode {
	case calculator.ModePayment:
		lines = append(lines, "Annual rate    | "+format.Percent(in.AnnualRate)+"%")
	case calculator.ModeRate:
		lines = append(lines, "Target payment | "+format.Currency(in.MonthlyPayment))
	}
	lines = append(lines, result.Display())
	if warning := result.Warning(); warning != "" {
		lines = append(lines, "Warning: "+warning)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormat writes the Report of a calculation as indented JSON.
func JSONFormat(w io.Writer, in calculator.Inputs, result calculator.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewReport(in, result))
}
