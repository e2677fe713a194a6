// Package dag provides the transaction graph that dagstats computes
// statistics over.
//
// # Overview
//
// A database is a flat list of transaction records. Every record cites two
// parents (left and right) that are either the synthetic root or an earlier
// record, plus a timestamp. The graph therefore has the node set
// {1} ∪ {2..N+1}, with id 1 being the root, and exactly two reference edges
// per stored record.
//
// Because every reference points strictly backwards, the graph is acyclic by
// construction and [Build] never has to search for cycles. It only checks
// that ids are dense and that each reference lies in [1, id-1].
//
// # Basic Usage
//
//	g, err := dag.Build([]dag.Record{
//	    {ID: 2, Left: 1, Right: 1},
//	    {ID: 3, Left: 2, Right: 1},
//	})
//	if err != nil {
//	    return err
//	}
//	depths := dag.ComputeDepths(g)
//
// # Storage
//
// Ids are contiguous integers known at load time, so indegree, reverse
// adjacency and depth are stored in slices indexed by id-1 instead of maps.
//
// # Depth
//
// [ComputeDepths] runs a breadth-first search from the root along the
// parent→child direction (the inverse of the stored references). The first
// visit of a node fixes its depth, which BFS level order guarantees to be the
// shortest path length.
//
// # Concurrency
//
// A Graph is immutable after [Build] returns and may be read from multiple
// goroutines.
package dag
