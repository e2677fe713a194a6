// Package pkg provides the core libraries for dagstats.
//
// # Overview
//
// dagstats reads a transaction database, builds the reference DAG rooted at
// the origin transaction, and reports depth and reference statistics. The pkg
// directory is organized as follows:
//
//  1. [io] - Database text format (read and write)
//  2. [dag] - Graph structure, validation and BFS depths
//  3. [stats] - Statistics aggregation and report encodings
//  4. [pipeline] - Orchestration (load → build → depth → aggregate)
//  5. [render/nodelink] - Graphviz diagrams of the graph
//
// # Architecture
//
// The data flow through dagstats:
//
//	Database file / HTTP body
//	         ↓
//	    [io] package (parse records)
//	         ↓
//	    [dag] package (validate references, compute depths)
//	         ↓
//	    [stats] package (aggregate, format)
//	         ↓
//	    text/JSON/YAML report
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil)
//	res, err := runner.Run(ctx, "db.txt", pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	stats.WriteText(os.Stdout, res.Stats, stats.DefaultPrecision)
//
// # Supporting Packages
//
// [errors] - Structured errors with codes (IO_ERROR, PARSE_ERROR,
// VALIDATION_ERROR, INVALID_INPUT) and the offending input line.
//
// [observability] - Pipeline stage hooks, implemented with Prometheus by the
// serve command.
//
// [buildinfo] - Version information injected via ldflags.
//
// [io]: https://pkg.go.dev/github.com/matzehuels/dagstats/pkg/io
// [dag]: https://pkg.go.dev/github.com/matzehuels/dagstats/pkg/dag
// [stats]: https://pkg.go.dev/github.com/matzehuels/dagstats/pkg/stats
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/dagstats/pkg/pipeline
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/dagstats/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/dagstats/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/dagstats/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/dagstats/pkg/buildinfo
package pkg
