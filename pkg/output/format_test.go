package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/annuity-calc/internal/calculator"
	"github.com/iwvelando/annuity-calc/pkg/annuity"
	"go.uber.org/zap"
)

func TestPrettyFormatPayment(t *testing.T) {
	in := calculator.Inputs{Mode: calculator.ModePayment, Principal: 100000, TermMonths: 12, AnnualRate: 0.12}
	result := calculator.New(zap.NewNop(), annuity.SolverConfig{}).Calculate(in)

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, in, result); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Principal      | 100,000.00",
		"Term           | 12 months",
		"Annual rate    | 12.00%",
		"Monthly payment: 8884.88",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Warning") {
		t.Errorf("unexpected warning in output:\n%s", output)
	}
}

func TestPrettyFormatRateWarning(t *testing.T) {
	in := calculator.Inputs{Mode: calculator.ModeRate, Principal: 100000, TermMonths: 12, MonthlyPayment: 8884.88}
	result := calculator.New(zap.NewNop(), annuity.SolverConfig{MaxIterations: 3}).Calculate(in)

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, in, result); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Target payment | 8,884.88") {
		t.Errorf("output missing target payment:\n%s", output)
	}
	if !strings.Contains(output, "Warning: rate search stopped after 3 iterations") {
		t.Errorf("output missing convergence warning:\n%s", output)
	}
}

func TestJSONFormatRate(t *testing.T) {
	in := calculator.Inputs{Mode: calculator.ModeRate, Principal: 100000, TermMonths: 12, MonthlyPayment: 8884.88}
	result := calculator.New(zap.NewNop(), annuity.SolverConfig{}).Calculate(in)

	var buf bytes.Buffer
	if err := JSONFormat(&buf, in, result); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if decoded["kind"] != "rate" {
		t.Errorf("kind = %v, want rate", decoded["kind"])
	}
	if decoded["value"] != 12.0 {
		t.Errorf("value = %v, want 12", decoded["value"])
	}
	if decoded["converged"] != true {
		t.Errorf("converged = %v, want true", decoded["converged"])
	}
	if decoded["display"] != "Annual interest rate: 12.00%" {
		t.Errorf("display = %v", decoded["display"])
	}
	if _, ok := decoded["ratePercent"]; ok {
		t.Error("ratePercent should be omitted in rate mode")
	}
}

func TestNewReportError(t *testing.T) {
	in := calculator.Inputs{Mode: calculator.ModePayment, Principal: -1, TermMonths: 12, AnnualRate: 0.12}
	result := calculator.New(nil, annuity.SolverConfig{}).Calculate(in)

	report := NewReport(in, result)
	if report.Kind != calculator.KindError {
		t.Fatalf("Kind = %v, want error", report.Kind)
	}
	if report.Value != nil {
		t.Errorf("Value = %v, want nil", *report.Value)
	}
	if report.Display != calculator.ErrorDisplay {
		t.Errorf("Display = %q, want %q", report.Display, calculator.ErrorDisplay)
	}
}

func TestNewReportValueMatchesDisplay(t *testing.T) {
	in := calculator.Inputs{Mode: calculator.ModePayment, Principal: 100000, TermMonths: 12, AnnualRate: 0.12}
	result := calculator.Result{Kind: calculator.KindPayment, Value: 1234.125}

	report := NewReport(in, result)
	if report.Value == nil || *report.Value != 1234.13 {
		t.Fatalf("Value = %v, want 1234.13", report.Value)
	}
	if report.Display != "Monthly payment: 1234.13" {
		t.Errorf("Display = %q", report.Display)
	}
}
