package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/iwvelando/annuity-calc/internal/calculator"
	"github.com/iwvelando/annuity-calc/internal/config"
	"github.com/iwvelando/annuity-calc/internal/server"
	"github.com/iwvelando/annuity-calc/pkg/constants"
	"github.com/iwvelando/annuity-calc/pkg/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// errCalculationFailed is returned after the generic error display was written.
var errCalculationFailed = errors.New("calculation failed")

// app carries what PersistentPreRunE prepared for the subcommands.
type app struct {
	v         *viper.Viper
	conf      *config.Configuration
	logger    *zap.Logger
	calc      *calculator.Calculator
	newLogger func(config.LoggingConfig) (*zap.Logger, error)
}

func newApp() *app {
	return &app{v: config.NewViper(), newLogger: initializeLogger}
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

// execute runs cmd and flushes the logger afterwards. Cobra skips post-run
// hooks when a command returns an error, so the flush cannot live there.
func (a *app) execute(cmd *cobra.Command) error {
	defer a.syncLogger()
	return cmd.Execute()
}

func (a *app) syncLogger() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "annuity-calc",
		Short:         "Annuity loan payment and implied rate calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The default config file is optional; an explicit one is not.
			optional := !cmd.Flags().Changed("config")
			conf, err := config.Load(a.v, configPath, optional)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configPath, err)
			}

			logger, err := a.newLogger(conf.Logging)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			for _, warning := range conf.ValidateConfiguration() {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main"),
				)
			}

			a.conf = conf
			a.logger = logger
			a.calc = calculator.New(logger, conf.Solver)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.String("output-format", "", "type of output override: pretty, json")
	flags.String("log-level", "", "log level override (debug, info, warn, error)")
	flags.Float64("tolerance", 0, "rate search payment tolerance override")
	flags.Int("max-iterations", 0, "rate search iteration budget override")

	_ = a.v.BindPFlag("output.format", flags.Lookup("output-format"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("solver.tolerance", flags.Lookup("tolerance"))
	_ = a.v.BindPFlag("solver.maxIterations", flags.Lookup("max-iterations"))

	cmd.AddCommand(paymentCmd(a), rateCmd(a), termsCmd(), serveCmd(a))
	return cmd
}

func paymentCmd(a *app) *cobra.Command {
	var raw calculator.RawInputs

	c := &cobra.Command{
		Use:   "payment",
		Short: "Compute the monthly payment for a rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw.Mode = constants.ModePayment
			return a.run(cmd, raw)
		},
	}

	addLoanFlags(c, &raw)
	c.Flags().StringVarP(&raw.RatePercent, "rate-percent", "r", "", "annual interest rate in percent (required)")
	_ = c.MarkFlagRequired("rate-percent")
	return c
}

func rateCmd(a *app) *cobra.Command {
	var raw calculator.RawInputs

	c := &cobra.Command{
		Use:   "rate",
		Short: "Compute the annual rate implied by a monthly payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw.Mode = constants.ModeRate
			return a.run(cmd, raw)
		},
	}

	addLoanFlags(c, &raw)
	c.Flags().StringVarP(&raw.MonthlyPayment, "payment", "m", "", "desired monthly payment (required)")
	_ = c.MarkFlagRequired("payment")
	return c
}

func addLoanFlags(c *cobra.Command, raw *calculator.RawInputs) {
	c.Flags().StringVarP(&raw.Principal, "principal", "p", "", "loan principal (required)")
	c.Flags().StringVarP(&raw.TermMonths, "term", "t", "", "loan term in months")
	c.Flags().StringVar(&raw.TermChoice, "term-choice", "", "index into the standard terms (see the terms command)")
	_ = c.MarkFlagRequired("principal")
	c.MarkFlagsMutuallyExclusive("term", "term-choice")
}

func (a *app) run(cmd *cobra.Command, raw calculator.RawInputs) error {
	if raw.TermMonths == "" && raw.TermChoice == "" {
		return fmt.Errorf("one of --term or --term-choice is required")
	}

	in, err := calculator.ParseInputs(raw)
	if err != nil {
		return err
	}

	result := a.calc.Calculate(in)

	out := cmd.OutOrStdout()
	switch a.conf.Output.Format {
	case constants.OutputFormatJSON:
		err = output.JSONFormat(out, in, result)
	default:
		err = output.PrettyFormat(out, in, result)
	}
	if err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if result.Kind == calculator.KindError {
		return errCalculationFailed
	}
	return nil
}

func termsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "terms",
		Short: "List the standard loan terms and their choice index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, months := range calculator.TermChoices {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d | %s months\n", i, strconv.Itoa(months)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	var serverConfigPath string
	var address string
	var maxRequestSize string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serverConf, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				serverConf.Address = address
			}
			if maxRequestSize != "" {
				size, err := server.ParseSize(maxRequestSize)
				if err != nil {
					return err
				}
				serverConf.SetRequestSizeBytes(size)
			}

			logger := a.logger
			if serverConf.Logging != (config.LoggingConfig{}) {
				if logger, err = a.newLogger(serverConf.Logging); err != nil {
					return fmt.Errorf("failed to initialize server logger: %w", err)
				}
				defer func() {
					_ = logger.Sync()
				}()
			}

			listener, err := net.Listen("tcp", serverConf.Address)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", serverConf.Address, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := server.NewHandler(logger, serverConf.RequestSizeBytes(), version,
				calculator.New(logger, a.conf.Solver))
			return server.Serve(ctx, serverConf, listener, handler, logger)
		},
	}

	c.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	c.Flags().StringVar(&address, "address", "", "listen address override")
	c.Flags().StringVar(&maxRequestSize, "max-request-size", "", "request body limit override (e.g. 16K, 1M)")
	return c
}
