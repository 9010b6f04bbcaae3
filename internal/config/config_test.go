package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/annuity-calc/pkg/constants"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	path := writeConfig(t, `solver:
  tolerance: 0.001
  maxIterations: 200
logging:
  level: debug
  format: console
  outputFile: /tmp/annuity.log
output:
  format: json
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Solver.Tolerance != 0.001 {
		t.Errorf("Solver.Tolerance = %v, want 0.001", conf.Solver.Tolerance)
	}
	if conf.Solver.MaxIterations != 200 {
		t.Errorf("Solver.MaxIterations = %d, want 200", conf.Solver.MaxIterations)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" || conf.Logging.OutputFile != "/tmp/annuity.log" {
		t.Errorf("Logging = %+v", conf.Logging)
	}
	if conf.Output.Format != constants.OutputFormatJSON {
		t.Errorf("Output.Format = %q, want json", conf.Output.Format)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, "logging:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Solver.Tolerance != constants.DefaultSolverTolerance {
		t.Errorf("Solver.Tolerance = %v, want default", conf.Solver.Tolerance)
	}
	if conf.Solver.MaxIterations != constants.DefaultSolverMaxIterations {
		t.Errorf("Solver.MaxIterations = %d, want default", conf.Solver.MaxIterations)
	}
	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Output.Format = %q, want pretty", conf.Output.Format)
	}
	if conf.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", conf.Logging.Format)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Fatal("LoadConfiguration() expected error but got none")
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	conf, err := Load(nil, filepath.Join(t.TempDir(), "nonexistent.yaml"), true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if conf.Solver.MaxIterations != constants.DefaultSolverMaxIterations {
		t.Errorf("Solver.MaxIterations = %d, want default", conf.Solver.MaxIterations)
	}
}

func TestLoadConfigurationEnvironmentOverride(t *testing.T) {
	t.Setenv("ANNUITY_SOLVER_MAXITERATIONS", "75")
	t.Setenv("ANNUITY_OUTPUT_FORMAT", "json")

	conf, err := LoadConfiguration(writeConfig(t, "solver:\n  maxIterations: 10\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Solver.MaxIterations != 75 {
		t.Errorf("Solver.MaxIterations = %d, want 75 from environment", conf.Solver.MaxIterations)
	}
	if conf.Output.Format != constants.OutputFormatJSON {
		t.Errorf("Output.Format = %q, want json from environment", conf.Output.Format)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantError bool
	}{
		{name: "valid", yaml: "solver:\n  tolerance: 0.0005\n"},
		{name: "empty document", yaml: ""},
		{name: "bad output format", yaml: "output:\n  format: csv\n", wantError: true},
		{name: "bad log level", yaml: "logging:\n  level: trace\n", wantError: true},
		{name: "bad log format", yaml: "logging:\n  format: logfmt\n", wantError: true},
		{name: "malformed yaml", yaml: "solver: [\n", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfigurationFromReader(strings.NewReader(tt.yaml))
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfigurationFromReader() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}
			if conf == nil {
				t.Fatal("LoadConfigurationFromReader() returned nil config")
			}
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := &Configuration{}
	conf.Normalize()
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings for defaults, got %v", warnings)
	}

	conf.Solver.Tolerance = 0.5
	conf.Solver.MaxIterations = 10
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "tolerance") || !strings.Contains(warnings[1], "maxIterations") {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}
