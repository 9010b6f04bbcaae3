// Package config defines the configuration of annuity-calc and loads it
// from YAML files, readers and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/iwvelando/annuity-calc/pkg/annuity"
	"github.com/iwvelando/annuity-calc/pkg/constants"
	"github.com/iwvelando/annuity-calc/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ANNUITY_SOLVER_TOLERANCE.
const EnvPrefix = "ANNUITY"

// Configuration holds all configuration for annuity-calc.
type Configuration struct {
	Solver  annuity.SolverConfig `yaml:"solver,omitempty" mapstructure:"solver"`
	Logging LoggingConfig        `yaml:"logging,omitempty" mapstructure:"logging"`
	Output  OutputConfig         `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, json
}

// NewViper returns a viper instance with the defaults and environment
// bindings used by every loader in this package.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("solver.tolerance", constants.DefaultSolverTolerance)
	v.SetDefault("solver.maxIterations", constants.DefaultSolverMaxIterations)
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	return Load(NewViper(), configPath, false)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := NewViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// Load reads configPath into v and decodes the result. When optional is set a
// missing file is not an error and v's defaults, environment and bound flags
// are used on their own.
func Load(v *viper.Viper, configPath string, optional bool) (*Configuration, error) {
	if v == nil {
		v = NewViper()
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if !optional || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.Normalize()
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Normalize fills defaults left empty by the source.
func (c *Configuration) Normalize() {
	c.Solver.Normalize()
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
}

// Validate returns an error for settings that cannot be used.
func (c *Configuration) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("invalid solver configuration: %w", err)
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return validation.ValidateLogFormat(c.Logging.Format)
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if c.Solver.Tolerance > constants.CurrencyTolerance/2 {
		warnings = append(warnings, fmt.Sprintf(
			"solver tolerance %g is coarser than half a cent; solved rates may not reproduce the displayed payment",
			c.Solver.Tolerance))
	}
	if c.Solver.MaxIterations < minUsefulIterations {
		warnings = append(warnings, fmt.Sprintf(
			"solver maxIterations %d is below %d; rate searches may stop before reaching the tolerance",
			c.Solver.MaxIterations, minUsefulIterations))
	}
	return warnings
}

// minUsefulIterations is enough halvings of the [0, 1] bracket to reach
// float64 resolution.
const minUsefulIterations = 53
