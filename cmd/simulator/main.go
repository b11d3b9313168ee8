package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rpgo/withdrawal-simulator/internal/calculation"
	"github.com/rpgo/withdrawal-simulator/internal/config"
	"github.com/rpgo/withdrawal-simulator/internal/domain"
	"github.com/rpgo/withdrawal-simulator/internal/mrd"
	"github.com/rpgo/withdrawal-simulator/internal/output"
	"github.com/rpgo/withdrawal-simulator/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "simulator",
	Short: "Deterministic 401k withdrawal simulator",
	Long: `Projects the year-by-year balances of a tax-deferred account and a taxable
spillover account under fixed return and inflation assumptions, applying a target
withdrawal rate and the minimum required distribution floor.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve projections over HTTP",
	Long: `Starts the HTTP service:
  POST /balances   assumptions JSON in, projection JSON out
  GET  /heartbeat  liveness message

Settings come from SIMULATOR_* environment variables, optionally loaded from .env.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run one projection from an assumptions file",
	Example: `  simulator project --config assumptions.yaml
  simulator project --config assumptions.json --format csv --output nominal`,
	Args: cobra.NoArgs,
	RunE: runProject,
}

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write an example assumptions file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "assumptions.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		example := config.NewInputParser().CreateExampleAssumptions()
		if err := config.SaveAssumptions(example, path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example assumptions written to %s\n", path)
		return nil
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List output formats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
		fmt.Fprintf(cmd.OutOrStdout(), "Aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
		fmt.Fprintf(cmd.OutOrStdout(), "MRD tables: %s\n", strings.Join(mrd.Names(), ", "))
	},
}

var (
	configFile string
	format     string
	outputMode string
	strict     bool
	mrdTable   string
	outDir     string
	dotenvFile string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	projectCmd.Flags().StringVarP(&configFile, "config", "c", "", "Assumptions file (YAML or JSON)")
	projectCmd.Flags().StringVarP(&format, "format", "f", "console", "Output format")
	projectCmd.Flags().StringVar(&outputMode, "output", "", "Override output mode (real|nominal)")
	projectCmd.Flags().BoolVar(&strict, "strict", false, "Reject ill-formed assumptions")
	projectCmd.Flags().StringVar(&mrdTable, "mrd-table", "", "MRD divisor table")
	projectCmd.Flags().StringVar(&outDir, "out-dir", "", "Write the report to a timestamped file in this directory")
	_ = projectCmd.MarkFlagRequired("config")

	serveCmd.Flags().StringVar(&dotenvFile, "env-file", ".env", "Dotenv file loaded before parsing the environment")

	rootCmd.AddCommand(serveCmd, projectCmd, initCmd, formatsCmd)
}

func runProject(cmd *cobra.Command, args []string) error {
	parser := &config.InputParser{Strict: strict}
	assumptions, err := parser.LoadFromFile(configFile)
	if err != nil {
		return err
	}
	if outputMode != "" {
		assumptions.Output = domain.OutputMode(outputMode)
		if err := parser.ValidateAssumptions(assumptions); err != nil {
			return err
		}
	}

	table, err := mrd.Lookup(mrdTable)
	if err != nil {
		return err
	}
	engine := calculation.NewCalculationEngine(
		calculation.WithSchedule(table),
		calculation.WithLogger(calculation.NewZapLogger(logger)),
	)
	result := engine.Project(*assumptions)
	logger.Debug("projection complete", zap.Int("years", result.Len()), zap.String("mrd_table", table.Name()))

	if outDir != "" {
		name, err := output.WriteFormatted(outDir, result, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
		return nil
	}
	return output.Render(cmd.OutOrStdout(), result, format)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServerConfig(dotenvFile)
	if err != nil {
		return err
	}
	table, err := mrd.Lookup(cfg.MRDTable)
	if err != nil {
		return err
	}

	engine := calculation.NewCalculationEngine(
		calculation.WithSchedule(table),
		calculation.WithLogger(calculation.NewZapLogger(logger)),
	)
	srv := server.New(server.Options{
		Addr:             cfg.Addr,
		AllowedOrigin:    cfg.AllowedOrigin,
		StrictValidation: cfg.StrictValidation,
		ShutdownTimeout:  cfg.ShutdownTimeout,
		WriteTimeout:     cfg.WriteTimeout,
		MaxYears:         cfg.MaxYears,
	}, engine, logger.Named("http"))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
