package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hypotheekplanner/mortgage-planner/internal/calculation"
	"github.com/hypotheekplanner/mortgage-planner/internal/config"
	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/hypotheekplanner/mortgage-planner/internal/logging"
	"github.com/hypotheekplanner/mortgage-planner/internal/output"
	"github.com/hypotheekplanner/mortgage-planner/internal/share"
	"github.com/hypotheekplanner/mortgage-planner/internal/store"
	redisstore "github.com/hypotheekplanner/mortgage-planner/internal/store/redis"
	"github.com/hypotheekplanner/mortgage-planner/internal/store/sqlite"
	"github.com/hypotheekplanner/mortgage-planner/pkg/dateutil"
)

func newScheduleCommand(opts *rootOptions) *cobra.Command {
	var format, outDir, asOf string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute the combined monthly schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			state := cfg.State()
			if asOf != "" {
				ym, err := dateutil.ParseYearMonth(asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
				state.Settings.AsOf = ym
			}

			result, err := opts.engine(cfg).RunPortfolio(cmd.Context(), state)
			if err != nil {
				return err
			}

			if outDir != "" {
				paths, err := output.GenerateReport(result, format, outDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: %q (available: %v)", output.ErrUnsupportedFormat, format, output.AvailableFormatterNames())
			}
			data, err := f.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, csv, breakdown-csv, stacked-csv, json, all)")
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "write timestamped report files to this directory instead of stdout")
	cmd.Flags().StringVar(&asOf, "as-of", "", "reference month YYYY-MM (default: current month)")
	return cmd
}

func newCompareCommand(opts *rootOptions) *cobra.Command {
	var format string
	var propose int
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare fixed-rate periods for a new loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Comparison == nil {
				return errors.New("configuration has no comparison section")
			}
			engine := opts.engine(cfg)
			cmp, err := engine.Compare(cmd.Context(), *cfg.Comparison)
			if err != nil {
				return err
			}
			data, err := output.FormatComparison(cmp, format)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}

			if propose == 0 {
				return nil
			}
			var offer *domain.RateOffer
			for i := range cfg.Comparison.Offers {
				if cfg.Comparison.Offers[i].FixedYears == propose {
					offer = &cfg.Comparison.Offers[i]
				}
			}
			if offer == nil {
				return fmt.Errorf("no offer for %d years fixed", propose)
			}
			result, candidate, err := engine.ProposeLoan(cmd.Context(), cfg.State(), *cfg.Comparison, *offer)
			if err != nil {
				return err
			}
			opts.logger.Info("proposed loan added", zap.String("id", candidate.ID), zap.Int("fixed_years", propose))
			fmt.Fprintln(cmd.OutOrStdout())
			summary, err := output.ConsoleFormatter{}.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(summary)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, csv, json)")
	cmd.Flags().IntVar(&propose, "propose", 0, "add the offer with this many fixed years to the portfolio and show the result")
	return cmd
}

func newBreakEvenCommand(opts *rootOptions) *cobra.Command {
	var principal, rate, benchmarkRate string
	var years, benchmarkYears, horizon int
	var typ string
	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Solve the future rate at which a short fixed period costs as much as a long one",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(principal)
			if err != nil {
				return fmt.Errorf("invalid --principal: %w", err)
			}
			short, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid --rate: %w", err)
			}
			long, err := decimal.NewFromString(benchmarkRate)
			if err != nil {
				return fmt.Errorf("invalid --benchmark-rate: %w", err)
			}
			regime, err := domain.ParseRepaymentType(typ)
			if err != nil {
				return err
			}

			benchmark := calculation.TotalCost(domain.ScenarioInput{
				Principal: amount, InitialRate: long, FixedYears: benchmarkYears, FutureRate: long, Type: regime, HorizonYears: horizon,
			})
			in := domain.ScenarioInput{Principal: amount, InitialRate: short, FixedYears: years, FutureRate: short, Type: regime, HorizonYears: horizon}

			engine := calculation.NewEngine()
			engine.SetLogger(logging.Engine(opts.logger))
			be := engine.BreakEven(benchmark.Total, in)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Referentie %d jaar vast tegen %s: totaal %s\n", benchmarkYears, output.FormatPercentage(long), output.FormatCurrency(benchmark.Total))
			if be.GreaterThan(calculation.RealisticRateLimit) {
				fmt.Fprintf(w, "Break-even rente na %d jaar: >%s\n", years, output.FormatPercentage(calculation.RealisticRateLimit))
				return nil
			}
			fmt.Fprintf(w, "Break-even rente na %d jaar: %s\n", years, output.FormatPercentage(be))
			return nil
		},
	}
	cmd.Flags().StringVar(&principal, "principal", "200000", "loan amount")
	cmd.Flags().StringVar(&rate, "rate", "3.5", "rate for the short fixed period (percent)")
	cmd.Flags().IntVar(&years, "years", 5, "short fixed period in years")
	cmd.Flags().StringVar(&benchmarkRate, "benchmark-rate", "4.0", "rate for the long fixed period (percent)")
	cmd.Flags().IntVar(&benchmarkYears, "benchmark-years", 20, "long fixed period in years")
	cmd.Flags().IntVar(&horizon, "horizon", calculation.DefaultHorizonYears, "comparison horizon in years")
	cmd.Flags().StringVar(&typ, "type", "annuity", "repayment type (annuity or linear)")
	return cmd
}

func newShareCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Encode or decode a portfolio as a URL-safe string",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "encode",
		Short: "Print the configuration's loans and settings as a share string",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			encoded, err := share.Encode(cfg.State())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	})
	var outFile string
	decode := &cobra.Command{
		Use:   "decode <payload>",
		Short: "Decode a share string into YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := share.Decode(args[0])
			if err != nil {
				return err
			}
			return writeState(cmd, state, outFile)
		},
	}
	decode.Flags().StringVarP(&outFile, "output", "o", "", "write YAML configuration to this file")
	cmd.AddCommand(decode)
	return cmd
}

type storeFlags struct {
	dbPath    string
	redisAddr string
	key       string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dbPath, "db", "hypotheek.db", "SQLite database path")
	cmd.Flags().StringVar(&f.redisAddr, "redis", "", "Redis address (host:port); overrides --db")
	cmd.Flags().StringVar(&f.key, "key", store.DefaultKey, "storage key")
}

func (f *storeFlags) open() (store.Store, error) {
	if f.redisAddr != "" {
		return redisstore.New(f.redisAddr), nil
	}
	s, err := sqlite.New(f.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}

func newSaveCommand(opts *rootOptions) *cobra.Command {
	flags := &storeFlags{}
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Persist the configuration's loans and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			s, err := flags.open()
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Save(cmd.Context(), flags.key, cfg.State()); err != nil {
				return err
			}
			opts.logger.Info("state saved", zap.String("key", flags.key), zap.Int("loans", len(cfg.Loans)))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newLoadCommand(opts *rootOptions) *cobra.Command {
	flags := &storeFlags{}
	var outFile string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load persisted loans and settings as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.open()
			if err != nil {
				return err
			}
			defer s.Close()
			state, err := s.Load(cmd.Context(), flags.key)
			if err != nil {
				return err
			}
			return writeState(cmd, state, outFile)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write YAML configuration to this file")
	return cmd
}

func newExampleCommand() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(cfg, outFile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "hypotheek.yaml", "file to write")
	return cmd
}

// writeState prints state as a YAML configuration, or saves it to file.
func writeState(cmd *cobra.Command, state domain.PortfolioState, file string) error {
	cfg := &domain.Configuration{Settings: state.Settings, Loans: state.Loans}
	if file != "" {
		return output.SaveConfiguration(cfg, file)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
