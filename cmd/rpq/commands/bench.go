package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"rpq/internal/bench"
	"rpq/internal/config"
	"rpq/internal/logger"
)

// NewBenchCmd создаёт команду bench.
func NewBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare algorithms on random instances",
		Long: `Run the selected algorithms on --runs random instances per job count,
report Cmax, deviation from the exhaustive optimum (when n <= --max-jobs)
and timings, and save the summary as CSV.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := Settings(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Bench.Validate(); err != nil {
				return err
			}
			return runBench(cmd, cfg)
		},
	}

	cmd.Flags().IntSlice("jobs", []int{6, 8, 9}, "job counts (comma separated)")
	cmd.Flags().StringSlice("algos", nil, "algorithms to compare (comma separated)")
	cmd.Flags().Int("runs", 10, "instances per job count")
	cmd.Flags().Int64("instance-seed", 777, "base seed for instance generation")
	cmd.Flags().Duration("per-run-timeout", 0, "timeout of a single run; 0 = none")
	cmd.Flags().StringP("out", "o", "artifacts/results.csv", "output CSV file")
	cmd.Flags().IntP("workers", "w", 0, "goroutines for exhaustive search (0 = number of CPUs)")
	cmd.Flags().Int("max-jobs", config.DefaultMaxJobs, "largest n for which the optimum is computed")
	return cmd
}

func runBench(cmd *cobra.Command, cfg *config.Config) error {
	algos, err := algorithms(cfg.Bench.Algorithms, cfg)
	if err != nil {
		return err
	}

	cases := make([]bench.Case, 0, len(cfg.Bench.Jobs))
	for i, n := range cfg.Bench.Jobs {
		cases = append(cases, bench.Case{
			Jobs:         n,
			InstanceSeed: cfg.Bench.InstanceSeed + int64(i)*10_000 + int64(n)*100,
		})
	}

	runner := bench.Runner{
		Runs:          cfg.Bench.Runs,
		PerRunTimeout: cfg.Bench.PerRunTimeout,
		ExactLimit:    cfg.MaxJobs,
		Workers:       cfg.Workers,
		Logger:        logger.Logger.Named("bench"),
	}

	records, err := runner.Run(cmd.Context(), cases, algos)
	if err != nil {
		return err
	}

	if err := bench.Render(cmd.OutOrStdout(), records); err != nil {
		return err
	}
	if err := bench.WriteCSV(cfg.Bench.Out, records); err != nil {
		return errors.Wrap(err, "write csv")
	}
	logger.Logger.Infow("results saved", "path", cfg.Bench.Out, "records", len(records))
	return nil
}
