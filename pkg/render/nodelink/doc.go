// Package nodelink renders transaction graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// transactions appear as boxes with one arrow per parent reference. The root
// sits at the top and every other node is placed on the rank of its BFS depth.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	depths := dag.ComputeDepths(g)
//	dot := nodelink.ToDOT(g, depths, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include depth, timestamp and indegree,
//     and edges are labeled with the reference side (L or R).
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//
// Edges point from a transaction to the node it references. The layout uses
// rankdir=BT so that references point upwards towards the root. Nodes that
// are unreachable from the root are drawn dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
