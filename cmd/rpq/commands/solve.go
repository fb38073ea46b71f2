package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"rpq/internal/config"
	"rpq/internal/logger"
	"rpq/internal/opt"
	"rpq/internal/rpq"
)

// NewSolveCmd создаёт команду solve.
func NewSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve one instance with a single algorithm",
		Long: `Load an instance (n, then n lines "r p q") and run exactly one algorithm:

  schrage         Schrage greedy, linear scan of ready jobs
  schrage-heap    Schrage greedy, heap-based selection
  exact           exhaustive search over all n! orders, single goroutine
  exact-parallel  exhaustive search split between --workers goroutines
  groups          sort by --group-key, then reorder ties locally
  heuristic       sort by (r+q, p)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := Settings(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Input = args[0]
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			printOrder, _ := cmd.Flags().GetBool("print-order")

			return solve(cmd, cfg, printOrder)
		},
	}

	cmd.Flags().StringP("input", "i", "", "instance file")
	cmd.Flags().StringP("algo", "a", config.DefaultAlgo, "algorithm to run")
	cmd.Flags().IntP("workers", "w", 0, "goroutines for exact-parallel (0 = number of CPUs)")
	cmd.Flags().Int("max-jobs", config.DefaultMaxJobs, "largest instance accepted by exhaustive search")
	cmd.Flags().String("group-key", "release", "tie group key for groups: release | delivery")
	cmd.Flags().Bool("descending", false, "sort descending before tie group optimization")
	cmd.Flags().BoolP("print-order", "p", false, "print the resulting job order")
	return cmd
}

func solve(cmd *cobra.Command, cfg *config.Config, printOrder bool) error {
	// Экземпляр загружается до создания солвера: при ошибке ни один
	// алгоритм не запускается.
	inst, err := rpq.Load(cfg.Input)
	if err != nil {
		return err
	}
	logger.Logger.Infow("instance loaded", "path", cfg.Input, "jobs", inst.Len())

	solver, err := NewOptimizer(cfg.Algorithm, cfg)
	if err != nil {
		return err
	}

	res, err := solver.Solve(cmd.Context(), inst)
	if err != nil {
		return errors.Wrapf(err, "%s", cfg.Algorithm)
	}

	cmax := rpq.Cmax(res.Order)
	if cmax != res.Makespan {
		return errors.AssertionFailedf("%s reported cmax %d, order evaluates to %d", cfg.Algorithm, res.Makespan, cmax)
	}
	logger.Logger.Debugw("solve finished",
		"algo", cfg.Algorithm,
		"cmax", cmax,
		"evaluations", res.Evaluations,
		"duration", res.Duration,
		"meta", res.Meta,
	)

	return report(cmd.OutOrStdout(), cfg.Algorithm, res, printOrder)
}

func report(out io.Writer, algo string, res opt.Result, printOrder bool) error {
	fmt.Fprintf(out, "%s %s\n", pterm.Bold.Sprint("Algorithm:"), algo)
	fmt.Fprintf(out, "%s %.6f seconds\n", pterm.Bold.Sprint("Time taken:"), res.Duration.Seconds())
	fmt.Fprintf(out, "%s %s\n", pterm.Bold.Sprint("Cmax:"), pterm.Green(strconv.Itoa(res.Makespan)))

	if !printOrder {
		return nil
	}

	data := pterm.TableData{{"#", "Task", "rj", "pj", "qj"}}
	for i, j := range res.Order {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(j.ID),
			strconv.Itoa(j.Release),
			strconv.Itoa(j.Processing),
			strconv.Itoa(j.Delivery),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render order")
	}
	_, err = fmt.Fprintln(out, table)
	return err
}
