package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"rpq/cmd/rpq/commands"
	"rpq/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "rpq",
	Short: "Single machine scheduling with release and delivery times (1|rj,qj|Cmax)",
	Long: `rpq orders jobs on one machine to minimize Cmax = max(Cj + qj).

Available commands:
  solve  - run one algorithm on an instance file
  bench  - compare algorithms on random instances
  gen    - write a random instance file

Examples:
  rpq solve data/example.dat --algo schrage
  rpq solve data/example.dat --algo exact-parallel --workers 8 -p
  rpq bench --jobs 6,8 --algos schrage,heuristic,groups
  rpq gen -n 9 --seed 42 -o data/random9.dat`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default ./rpq.toml)")
	rootCmd.PersistentFlags().Bool("log-json", false, "JSON log output")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug | info | warn | error")

	rootCmd.AddCommand(commands.NewSolveCmd())
	rootCmd.AddCommand(commands.NewBenchCmd())
	rootCmd.AddCommand(commands.NewGenCmd())
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintln(os.Stderr, "Hint:", strings.ReplaceAll(hints, "\n", "\n      "))
		}
		os.Exit(1)
	}
}
