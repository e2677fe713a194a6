// Package stats aggregates summary statistics over a transaction graph.
//
// # Statistics
//
// [Compute] derives, from a built [dag.Graph] and its [dag.Depths]:
//
//   - AvgDepth: mean depth of the non-root nodes reachable from the root
//   - AvgTxsPerDepth: mean node count over depth levels 1..max (the root
//     level is excluded)
//   - AvgRef: mean indegree over all nodes, root included. The indegree sum
//     is always 2N, so this equals 2N/(N+1)
//   - MostReferenced: node with the highest indegree, smallest id on ties
//   - LastTransaction: record with the greatest timestamp, smallest id on ties
//   - TimestampBuckets: record count per timestamp window of BucketWidth
//
// A root-only graph (N = 0) reports 0 for every average instead of dividing
// by zero, the root as most referenced node and the root as last transaction.
//
// # Reporting
//
// [Stats.Lines] and [WriteText] produce the fixed console report:
//
//	> AVG DAG DEPTH: 1.5
//	> AVG TXS PER DEPTH: 2.0
//	> AVG REF: 1.6
//	> MOST REFERENCED TX: 1
//	> LAST TX: 5
//
// Values use a fixed precision with trailing zeros trimmed (see [Format]).
// [NewReport] builds the same data as a JSON/YAML document.
package stats
