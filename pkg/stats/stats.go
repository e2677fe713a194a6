package stats

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/dagstats/pkg/dag"
)

// DefaultBucketWidth is the timestamp window used by the histogram.
const DefaultBucketWidth int64 = 10

// Options configures aggregation.
type Options struct {
	// BucketWidth is the timestamp histogram window. Values <= 0 fall back
	// to DefaultBucketWidth.
	BucketWidth int64
}

// Bucket counts the records whose timestamp falls in [Start, Start+Width).
// The window containing math.MinInt64 reports Start as math.MinInt64.
type Bucket struct {
	Start int64 `json:"start" yaml:"start"`
	Count int   `json:"count" yaml:"count"`
}

// Stats holds the aggregated statistics of one graph.
type Stats struct {
	AvgDepth       float64
	AvgTxsPerDepth float64
	AvgRef         float64

	MostReferenced      int // node id, ties broken by smallest id
	MostReferencedCount int // indegree of MostReferenced
	LastTransaction     int // record id, ties broken by smallest id

	MaxDepth  int
	Reachable int // non-root nodes reachable from the root
	Nodes     int // root included
	Edges     int

	BucketWidth      int64
	TimestampBuckets []Bucket // ascending by Start, empty windows omitted
}

// Compute aggregates statistics over g using the depths d computed for it.
// Compute is a pure function of its inputs.
func Compute(g *dag.Graph, d dag.Depths, opts Options) Stats {
	width := opts.BucketWidth
	if width <= 0 {
		width = DefaultBucketWidth
	}

	s := Stats{
		MaxDepth:    d.Max(),
		Reachable:   d.Reachable(),
		Nodes:       g.NodeCount(),
		Edges:       g.EdgeCount(),
		BucketWidth: width,
	}
	s.AvgDepth = avgDepth(d)
	s.AvgTxsPerDepth = avgTxsPerDepth(d)
	s.AvgRef = avgRef(g)
	s.MostReferenced, s.MostReferencedCount = mostReferenced(g)
	s.LastTransaction = lastTransaction(g)
	s.TimestampBuckets = timestampBuckets(g, width)
	return s
}

func avgDepth(d dag.Depths) float64 {
	sum, count := 0, 0
	for i, v := range d {
		if i == dag.RootID-1 || v == dag.Unreachable {
			continue
		}
		sum += v
		count++
	}
	return ratio(sum, count)
}

// avgTxsPerDepth averages the level sizes over depths 1..max. BFS leaves no
// gaps, so this is the reachable count over the max depth.
func avgTxsPerDepth(d dag.Depths) float64 {
	levels := d.Levels()
	if len(levels) <= 1 {
		return 0
	}
	sum := 0
	for _, n := range levels[1:] {
		sum += n
	}
	return ratio(sum, len(levels)-1)
}

func avgRef(g *dag.Graph) float64 {
	sum := 0
	for id := dag.RootID; id <= g.NodeCount(); id++ {
		sum += g.InDegree(id)
	}
	return ratio(sum, g.NodeCount())
}

func mostReferenced(g *dag.Graph) (id, count int) {
	id, count = dag.RootID, g.InDegree(dag.RootID)
	for n := dag.RootID + 1; n <= g.NodeCount(); n++ {
		if c := g.InDegree(n); c > count {
			id, count = n, c
		}
	}
	return id, count
}

func lastTransaction(g *dag.Graph) int {
	last := dag.RootID
	var latest int64
	for _, r := range g.Records() {
		if last == dag.RootID || r.Timestamp > latest {
			last, latest = r.ID, r.Timestamp
		}
	}
	return last
}

// timestampBuckets counts stored records per timestamp window. The root has
// no timestamp of its own and is not counted, so a root-only graph has no
// buckets.
func timestampBuckets(g *dag.Graph, width int64) []Bucket {
	counts := make(map[int64]int)
	for _, r := range g.Records() {
		counts[bucketStart(r.Timestamp, width)]++
	}
	buckets := make([]Bucket, 0, len(counts))
	for start, c := range counts {
		buckets = append(buckets, Bucket{Start: start, Count: c})
	}
	slices.SortFunc(buckets, func(a, b Bucket) int { return cmp.Compare(a.Start, b.Start) })
	return buckets
}

// bucketStart returns the largest multiple of width not above ts. The window
// holding math.MinInt64 may start below the int64 range; its start is
// clamped to math.MinInt64.
func bucketStart(ts, width int64) int64 {
	m := ts % width
	if m < 0 {
		m += width
	}
	if ts < math.MinInt64+m {
		return math.MinInt64
	}
	return ts - m
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
