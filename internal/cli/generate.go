package cli

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagstats/pkg/dag"
	"github.com/matzehuels/dagstats/pkg/errors"
	pkgio "github.com/matzehuels/dagstats/pkg/io"
)

type generateFlags struct {
	count  int
	seed   uint64
	output string
}

func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random valid database",
		Long: `Generate writes a database of N random transactions. Each transaction
references the root or earlier transactions only, so the output always loads.
The same seed always produces the same database.`,
		Example: `  dagstats generate -n 1000 --seed 42 -o db.txt
  dagstats generate -n 50 | dagstats inspect /dev/stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.count < 0 || flags.count >= errors.MaxRecords {
				return errors.New(errors.ErrCodeInvalidInput, "count %d outside [0, %d]", flags.count, errors.MaxRecords-1)
			}
			seed := flags.seed
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			records := dag.RandomRecords(flags.count, seed)
			logger.Debug("generated records", "count", len(records), "seed", seed)

			if flags.output != "" {
				if err := pkgio.ExportDatabase(flags.output, records); err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Generated %d records", len(records)))
				printSuccess(cmd.ErrOrStderr(), "Wrote database")
				printFile(cmd.ErrOrStderr(), flags.output)
				return nil
			}

			var buf bytes.Buffer
			if err := pkgio.WriteDatabase(&buf, records); err != nil {
				return err
			}
			_, err := buf.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().IntVarP(&flags.count, "count", "n", 10, "number of transactions")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "random seed (default: current time)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	return cmd
}
