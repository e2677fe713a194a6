package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagstats/pkg/render/nodelink"
)

type dotFlags struct {
	output   string
	svg      bool
	detailed bool
}

func (c *CLI) dotCommand() *cobra.Command {
	var flags dotFlags

	cmd := &cobra.Command{
		Use:   "dot <database>",
		Short: "Export the transaction graph as Graphviz DOT or SVG",
		Long: `Dot builds the transaction graph and writes it in Graphviz DOT format, with
nodes grouped by depth. With --svg the diagram is rendered in-process.`,
		Example: `  dagstats dot db.txt | dot -Tpng > db.png
  dagstats dot db.txt --svg -o db.svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			res, err := c.newRunner().Run(ctx, args[0], c.Config.PipelineOptions())
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			out := []byte(nodelink.ToDOT(res.Graph, res.Depths, nodelink.Options{Detailed: flags.detailed}))
			if flags.svg {
				if out, err = nodelink.RenderSVG(ctx, string(out)); err != nil {
					return err
				}
				prog.done("Rendered SVG")
			}

			if flags.output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(flags.output, out, 0o644); err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "Wrote diagram")
			printFile(cmd.ErrOrStderr(), flags.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&flags.svg, "svg", false, "render SVG instead of DOT")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "label nodes with depth, timestamp and indegree")
	return cmd
}
