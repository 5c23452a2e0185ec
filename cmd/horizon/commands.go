package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aristath/horizon/internal/modules/projection"
	"github.com/aristath/horizon/internal/modules/universe"
)

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a Monte Carlo projection",
		Example: `  horizon simulate --alloc us_large_cap=60,investment_grade_bonds=40 \
    --initial 100000 --monthly 1000 --years 30 --simulations 5000 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetStringToString("alloc")
			alloc, err := parseAllocation(raw)
			if err != nil {
				return err
			}

			initial, _ := cmd.Flags().GetFloat64("initial")
			monthly, _ := cmd.Flags().GetFloat64("monthly")
			years, _ := cmd.Flags().GetInt("years")
			simulations, _ := cmd.Flags().GetInt("simulations")
			if !cmd.Flags().Changed("simulations") {
				simulations = a.cfg.DefaultSimulations
			}

			params := projection.Parameters{
				Allocation:          alloc,
				InitialInvestment:   initial,
				MonthlyContribution: monthly,
				Years:               years,
				Simulations:         simulations,
			}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetUint64("seed")
				params.Seed = &seed
			}

			result, err := a.engine.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd, result)
			}
			return renderProjection(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringToString("alloc", nil, "allocation as asset=percent pairs, e.g. us_large_cap=60,cash=40")
	cmd.Flags().Float64("initial", 0, "initial investment")
	cmd.Flags().Float64("monthly", 0, "monthly contribution, added at the end of each month")
	cmd.Flags().Int("years", 30, "projection horizon in years")
	cmd.Flags().Int("simulations", 0, "number of simulated paths (default: DEFAULT_SIMULATIONS)")
	cmd.Flags().Uint64("seed", 0, "seed for a reproducible run")
	cmd.Flags().Bool("json", false, "print the projection as JSON")
	_ = cmd.MarkFlagRequired("alloc")
	return cmd
}

func newMetricsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show expected return and volatility of an allocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetStringToString("alloc")
			alloc, err := parseAllocation(raw)
			if err != nil {
				return err
			}

			metrics, err := a.engine.Metrics(alloc)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd, metrics)
			}
			return renderMetrics(cmd.OutOrStdout(), metrics)
		},
	}

	cmd.Flags().StringToString("alloc", nil, "allocation as asset=percent pairs")
	cmd.Flags().Bool("json", false, "print the metrics as JSON")
	_ = cmd.MarkFlagRequired("alloc")
	return cmd
}

func newAssetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List asset classes and their assumptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assets := a.engine.Universe().Assets()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd, assets)
			}
			return renderAssets(cmd.OutOrStdout(), assets)
		},
	}

	cmd.Flags().Bool("json", false, "print the asset list as JSON")
	return cmd
}

// parseAllocation turns asset=percent flag pairs into an Allocation. Negative
// weights and repeated spellings of one asset class are rejected.
func parseAllocation(raw map[string]string) (projection.Allocation, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	alloc := make(projection.Allocation, len(raw))
	for _, key := range keys {
		asset, err := universe.ParseAssetClass(key)
		if err != nil {
			return nil, err
		}
		pct, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(raw[key]), "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q for %s: %w", raw[key], key, err)
		}
		if pct < 0 {
			return nil, &projection.ValidationError{
				Field:  "allocation",
				Reason: fmt.Sprintf("weight for %s must not be negative (got %v)", key, pct),
			}
		}
		if _, dup := alloc[asset]; dup {
			return nil, &projection.ValidationError{
				Field:  "allocation",
				Reason: fmt.Sprintf("asset class %s is listed more than once", asset),
			}
		}
		alloc[asset] = pct
	}
	return alloc, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
