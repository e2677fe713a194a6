package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dagstats/pkg/dag"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes depth, timestamp and indegree in node labels.
	// When false, only the node ID is shown.
	Detailed bool
}

// ToDOT converts a transaction graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Nodes sharing a depth are placed on the same rank. The root is drawn bold;
// unreachable nodes are dashed and grey.
func ToDOT(g *dag.Graph, d dag.Depths, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for id := dag.RootID; id <= g.NodeCount(); id++ {
		label := fmtLabel(g, d, id, opts.Detailed)
		attrs := fmtAttrs(d, id, label)
		fmt.Fprintf(&buf, "  %d [%s];\n", id, strings.Join(attrs, ", "))
	}

	ranks := byDepth(d)
	if len(ranks) > 0 {
		buf.WriteString("\n")
	}
	for _, ids := range ranks {
		if len(ids) < 2 {
			continue
		}
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(id)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(parts, "; "))
	}

	buf.WriteString("\n")
	for _, r := range g.Records() {
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %d -> %d [label=\"L\"];\n", r.ID, r.Left)
			fmt.Fprintf(&buf, "  %d -> %d [label=\"R\"];\n", r.ID, r.Right)
			continue
		}
		fmt.Fprintf(&buf, "  %d -> %d;\n", r.ID, r.Left)
		fmt.Fprintf(&buf, "  %d -> %d;\n", r.ID, r.Right)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// byDepth groups reachable ids by depth, in id order.
func byDepth(d dag.Depths) [][]int {
	levels := d.Levels()
	ranks := make([][]int, len(levels))
	for i, v := range d {
		if v != dag.Unreachable {
			ranks[v] = append(ranks[v], i+1)
		}
	}
	return ranks
}

func fmtLabel(g *dag.Graph, d dag.Depths, id int, detailed bool) string {
	name := strconv.Itoa(id)
	if !detailed {
		return name
	}

	depth := "-"
	if v, ok := d.Of(id); ok {
		depth = strconv.Itoa(v)
	}
	parts := []string{
		"depth: " + depth,
		fmt.Sprintf("indegree: %d", g.InDegree(id)),
	}
	if id != dag.RootID {
		parts = append(parts, fmt.Sprintf("t: %d", g.Timestamp(id)))
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(d dag.Depths, id int, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if id == dag.RootID {
		attrs = append(attrs, "style=\"rounded,filled,bold\"", "fillcolor=lightblue")
	} else if _, ok := d.Of(id); !ok {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing scales from the
// origin with its natural pixel size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
