// Horizon projects the future value of a multi-asset portfolio with a
// correlated Monte Carlo simulation.
//
// Command line entrypoint using the cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aristath/horizon/internal/config"
	"github.com/aristath/horizon/internal/modules/projection"
	"github.com/aristath/horizon/internal/modules/universe"
	"github.com/aristath/horizon/pkg/logger"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root command has loaded
// configuration.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	engine *projection.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "horizon",
		Short: "Monte Carlo projections for multi-asset portfolios",
		Long: `Horizon simulates thousands of correlated monthly return paths for a
target allocation and reports percentile bands of portfolio value per year,
plus the closed-form expected return and volatility of the allocation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.LogLevel = level
			}
			if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
				cfg.SimulationWorkers = workers
			}

			a.cfg = cfg
			a.log = logger.New(logger.Config{
				Level:  cfg.LogLevel,
				Pretty: true,
				Out:    cmd.ErrOrStderr(),
			})
			a.engine = projection.NewEngine(universe.Default(), projection.Options{
				Workers:          cfg.SimulationWorkers,
				MaxSimulations:   cfg.MaxSimulations,
				MetricsCacheSize: cfg.MetricsCacheSize,
				MetricsCacheTTL:  cfg.MetricsCacheTTL,
			}, a.log)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.engine != nil {
				a.engine.Close()
			}
		},
	}

	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().Int("workers", 0, "path workers per run (default: SIMULATION_WORKERS or CPU count)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newSimulateCmd(a))
	root.AddCommand(newMetricsCmd(a))
	root.AddCommand(newAssetsCmd(a))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip config loading for version output.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "horizon %s (%s)\n", version, commit)
		},
	}
}
