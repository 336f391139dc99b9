package main

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/tiny86/benchmarks"
	"github.com/sarchlab/tiny86/timing/latency"
)

func newBenchCmd() *cobra.Command {
	var csvOutput, jsonOutput, textOutput, cache, quick bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the timing microbenchmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := benchmarks.DefaultConfig()
			config.Output = cmd.OutOrStdout()
			config.EnableCache = cache

			if configPath != "" {
				timing, err := latency.LoadConfig(configPath)
				if err != nil {
					return err
				}
				config.Timing = timing
			}

			harness := benchmarks.NewHarness(config)
			if quick {
				harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
			} else {
				harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
			}

			results := harness.RunAll()

			switch {
			case csvOutput:
				harness.PrintCSV(results)
			case jsonOutput:
				return harness.PrintJSON(results)
			case textOutput:
				harness.PrintResults(results)
			default:
				harness.PrintTable(results)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&csvOutput, "csv", false, "Output results in CSV format")
	flags.BoolVar(&jsonOutput, "json", false, "Output results as a JSON report")
	flags.BoolVar(&textOutput, "text", false, "Output detailed per-benchmark results")
	flags.BoolVar(&cache, "cache", false, "Enable the bus cache model")
	flags.BoolVar(&quick, "quick", false, "Run only the core benchmarks")
	flags.StringVar(&configPath, "config", "", "Timing configuration JSON file")
	cmd.MarkFlagsMutuallyExclusive("csv", "json", "text")

	return cmd
}
