package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xrate/internal/config"
	"xrate/internal/provider"
	"xrate/internal/service"
)

type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "xrate",
		Short:         "Daily exchange rates from a dated XML rate source",
		Version:       "v1.0.0",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to config file (default: search ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log lookups to stderr")

	rootCmd.AddCommand(newServeCmd(opts), newRateCmd(opts), newCrossCmd(opts))
	return rootCmd
}

// load reads the configuration and builds the logger. Serving always logs;
// one-shot commands stay quiet unless --verbose is set.
func (o *rootOptions) load(serving bool) (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.LoadConfig(o.configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if !serving && !o.verbose {
		return cfg, zap.NewNop().Sugar(), nil
	}

	var zapLogger *zap.Logger
	if cfg.Log.Development {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, zapLogger.Sugar(), nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			logger.Infow("Starting xrate service", "port", cfg.Server.Port, "source", cfg.Source.BaseURL)

			app, err := NewApp(cfg, logger)
			if err != nil {
				logger.Errorw("Failed to initialize app", "error", err)
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := app.Run(ctx); err != nil {
				logger.Errorw("Application error", "error", err)
				return err
			}
			return nil
		},
	}
}

func newRateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rate CODE YYYY-MM-DD",
		Short:   "Print the rate of a currency against the source's base currency",
		Example: "  xrate rate USD 2010-06-25",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := provider.ParseDateKey(args[1])
			if err != nil {
				return err
			}
			cfg, logger, err := opts.load(false)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svc, err := newRateService(cfg, logger)
			if err != nil {
				return err
			}
			res, err := svc.GetRate(commandContext(cmd), args[0], date)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
}

func newCrossCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "cross FROM TO YYYY-MM-DD",
		Short:   "Print the rate of FROM expressed in units of TO",
		Example: "  xrate cross USD GBP 2010-06-25",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := provider.ParseDateKey(args[2])
			if err != nil {
				return err
			}
			cfg, logger, err := opts.load(false)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svc, err := newRateService(cfg, logger)
			if err != nil {
				return err
			}
			res, err := svc.GetCrossRate(commandContext(cmd), args[0], args[1], date)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// printResult writes "DATE PAIR RATE", e.g. "2010-06-25 USD/GBP 1.5".
func printResult(w io.Writer, res *service.RateResult) error {
	_, err := fmt.Fprintf(w, "%s %s %s\n", res.Date, res.Pair(), service.FormatRate(res.Rate))
	return err
}
