package cli

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dagstats/pkg/dag"
	"github.com/matzehuels/dagstats/pkg/pipeline"
	"github.com/matzehuels/dagstats/pkg/stats"
)

// histogramWidth is the bar length of the largest histogram bucket.
const histogramWidth = 40

type inspectFlags struct {
	limit int
}

func (c *CLI) inspectCommand() *cobra.Command {
	var flags inspectFlags

	cmd := &cobra.Command{
		Use:   "inspect <database>",
		Short: "Show per-transaction details and the timestamp histogram",
		Long: `Inspect runs the statistics pipeline and prints a summary, the number of
transactions per depth, a table of every transaction (references, timestamp,
depth, indegree) and a histogram of timestamps.`,
		Example: `  dagstats inspect db.txt
  dagstats inspect db.txt --limit 20 --bucket-width 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.PipelineOptions()
			opts.Format = pipeline.FormatText
			res, err := c.newRunner().Run(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			writeInspect(&buf, res, opts.Precision, flags.limit)
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().IntVar(&flags.limit, "limit", 0, "show at most this many transactions (0 = all)")
	return cmd
}

func writeInspect(buf *bytes.Buffer, res *pipeline.Result, precision, limit int) {
	s := res.Stats

	printTitle(buf, "Summary")
	printKeyValue(buf, "source", res.Source)
	printKeyValue(buf, "nodes", strconv.Itoa(s.Nodes))
	printKeyValue(buf, "edges", strconv.Itoa(s.Edges))
	printKeyValue(buf, "max depth", strconv.Itoa(s.MaxDepth))
	printKeyValue(buf, "reachable", strconv.Itoa(s.Reachable))
	for _, l := range s.Lines(precision) {
		printKeyValue(buf, strings.ToLower(l.Label), l.Value)
	}
	if unreachable := res.Graph.RecordCount() - s.Reachable; unreachable > 0 {
		printWarning(buf, "%d transactions unreachable from the root", unreachable)
	}

	printTitle(buf, "Transactions per depth")
	for depth, n := range res.Depths.Levels() {
		printKeyValue(buf, fmt.Sprintf("depth %d", depth), strconv.Itoa(n))
	}

	printTitle(buf, "Transactions")
	fmt.Fprintln(buf, nodeTable(res.Graph, res.Depths, limit))
	if limit > 0 && res.Graph.NodeCount() > limit {
		printInfo(buf, "%d more not shown", res.Graph.NodeCount()-limit)
	}

	printTitle(buf, "Timestamps")
	if len(s.TimestampBuckets) == 0 {
		printInfo(buf, "no stored transactions")
		return
	}
	writeHistogram(buf, s.TimestampBuckets, s.BucketWidth)
}

// nodeTable renders one row per node, root first.
func nodeTable(g *dag.Graph, d dag.Depths, limit int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleDim).
		Headers("ID", "LEFT", "RIGHT", "TIMESTAMP", "DEPTH", "INDEGREE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})

	n := g.NodeCount()
	if limit > 0 {
		n = min(n, limit)
	}
	for id := dag.RootID; id <= n; id++ {
		depth := "-"
		if v, ok := d.Of(id); ok {
			depth = strconv.Itoa(v)
		}
		left, right, ts := "-", "-", "-"
		if r, ok := g.Record(id); ok {
			left, right = strconv.Itoa(r.Left), strconv.Itoa(r.Right)
			ts = strconv.FormatInt(r.Timestamp, 10)
		}
		t.Row(strconv.Itoa(id), left, right, ts, depth, strconv.Itoa(g.InDegree(id)))
	}
	return t.Render()
}

// writeHistogram draws one bar per bucket scaled to the fullest bucket.
func writeHistogram(buf *bytes.Buffer, buckets []stats.Bucket, width int64) {
	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}
	label := lipgloss.NewStyle().Foreground(colorGray).Width(24)
	for _, b := range buckets {
		bar := max(1, b.Count*histogramWidth/peak)
		end := b.Start + width
		if end < b.Start {
			end = math.MaxInt64
		}
		fmt.Fprintf(buf, "%s %s %s\n",
			label.Render(fmt.Sprintf("[%d, %d)", b.Start, end)),
			styleNumber.Render(strings.Repeat(iconBar, bar)),
			styleValue.Render(strconv.Itoa(b.Count)))
	}
}
