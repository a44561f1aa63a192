// Command hypotheek runs the mortgage planner from a YAML configuration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hypotheekplanner/mortgage-planner/internal/calculation"
	"github.com/hypotheekplanner/mortgage-planner/internal/config"
	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/hypotheekplanner/mortgage-planner/internal/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	logger *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "hypotheek",
		Short:         "Dutch multi-part mortgage planner",
		Long:          "Simulates multi-part mortgages month by month under Dutch tax rules (hypotheekrenteaftrek, eigenwoningforfait, Wet Hillen) and compares fixed-rate periods.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Config{Level: opts.logLevel, Encoding: opts.logFormat})
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "hypotheek.yaml", "configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log encoding (console or json)")

	root.AddCommand(
		newScheduleCommand(opts),
		newCompareCommand(opts),
		newBreakEvenCommand(opts),
		newShareCommand(opts),
		newSaveCommand(opts),
		newLoadCommand(opts),
		newExampleCommand(),
	)
	return root
}

// loadConfig reads and validates the configuration file.
func (o *rootOptions) loadConfig() (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	o.logger.Debug("configuration loaded", zap.String("path", o.configPath), zap.Int("loans", len(cfg.Loans)))
	return cfg, nil
}

// engine builds a calculation engine for the configuration's tax rules.
func (o *rootOptions) engine(cfg *domain.Configuration) *calculation.Engine {
	e := calculation.NewEngineWithRules(cfg.TaxRules)
	e.SetLogger(logging.Engine(o.logger))
	return e
}
