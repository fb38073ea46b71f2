package commands

import (
	"io"
	"math/rand"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"rpq/internal/logger"
	"rpq/internal/rpq"
)

// NewGenCmd создаёт команду gen.
func NewGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random instance file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := Settings(cmd); err != nil {
				return err
			}
			size, _ := cmd.Flags().GetInt("size")
			seed, _ := cmd.Flags().GetInt64("seed")
			path, _ := cmd.Flags().GetString("output")
			maxP, _ := cmd.Flags().GetInt("max-processing")

			if size <= 0 {
				return errors.Newf("size must be > 0 (got %d)", size)
			}
			b := rpq.DefaultBounds(size)
			b.MaxProcessing = maxP
			if err := b.Validate(); err != nil {
				return err
			}

			inst := rpq.RandomInstance(size, b, rand.New(rand.NewSource(seed)))
			return writeInstance(cmd.OutOrStdout(), path, inst)
		},
	}

	cmd.Flags().IntP("size", "n", 8, "number of jobs")
	cmd.Flags().Int64("seed", 1, "random seed")
	cmd.Flags().Int("max-processing", 30, "upper bound of processing time")
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	return cmd
}

func writeInstance(stdout io.Writer, path string, inst *rpq.Instance) error {
	if path == "" {
		return rpq.Write(stdout, inst)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := rpq.Write(f, inst); err != nil {
		return err
	}
	logger.Logger.Infow("instance written", "path", path, "jobs", inst.Len())
	return f.Close()
}
