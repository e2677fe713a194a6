package dag

import (
	"fmt"
	"slices"

	"github.com/matzehuels/dagstats/pkg/errors"
)

// RootID is the id of the synthetic origin node. It has no stored record.
const RootID = 1

// FirstRecordID is the id assigned to the first stored record (file line 2).
const FirstRecordID = 2

// Record is one stored transaction. Left and Right are the ids of the two
// parents it references; they may be equal.
type Record struct {
	ID        int
	Left      int
	Right     int
	Timestamp int64
}

// String renders the record the way the inspect command lists it.
func (r Record) String() string {
	return fmt.Sprintf("%d(left=%d right=%d t=%d)", r.ID, r.Left, r.Right, r.Timestamp)
}

// Graph is the transaction DAG. Node ids run densely from 1 (root) to N+1.
//
// The zero value is not usable - use [Build] to create a valid instance.
type Graph struct {
	records  []Record // records[i].ID == i+FirstRecordID
	indegree []int    // indegree[id-1]
	children [][]int  // children[id-1]: ids referencing id, in record order
}

// Build validates records and constructs the graph.
//
// Records must carry dense ids starting at [FirstRecordID] in slice order,
// and each Left/Right reference must lie in [1, ID-1]. Violations return a
// VALIDATION_ERROR naming the offending id and reference; no partial graph is
// returned.
//
// The records slice is copied, so callers may reuse it afterwards.
func Build(records []Record) (*Graph, error) {
	n := len(records) + 1
	g := &Graph{
		records:  slices.Clone(records),
		indegree: make([]int, n),
		children: make([][]int, n),
	}

	for i, r := range g.records {
		if want := i + FirstRecordID; r.ID != want {
			return nil, errors.Validation(0, "record %d has id %d, want %d", i, r.ID, want)
		}
		if err := errors.ValidateReference(r.ID, "left", r.Left); err != nil {
			return nil, err
		}
		if err := errors.ValidateReference(r.ID, "right", r.Right); err != nil {
			return nil, err
		}
		g.addReference(r.ID, r.Left)
		g.addReference(r.ID, r.Right)
	}
	return g, nil
}

func (g *Graph) addReference(child, parent int) {
	g.indegree[parent-1]++
	g.children[parent-1] = append(g.children[parent-1], child)
}

// NodeCount returns the number of nodes including the root (N+1).
func (g *Graph) NodeCount() int { return len(g.indegree) }

// RecordCount returns the number of stored records (N).
func (g *Graph) RecordCount() int { return len(g.records) }

// EdgeCount returns the number of reference edges, always 2N.
func (g *Graph) EdgeCount() int { return 2 * len(g.records) }

// Has reports whether id names a node of the graph.
func (g *Graph) Has(id int) bool { return id >= RootID && id <= len(g.indegree) }

// Record returns the stored record for id. The root has no record.
func (g *Graph) Record(id int) (Record, bool) {
	if id < FirstRecordID || !g.Has(id) {
		return Record{}, false
	}
	return g.records[id-FirstRecordID], true
}

// Records returns a copy of all stored records in id order.
func (g *Graph) Records() []Record { return slices.Clone(g.records) }

// Parents returns the [left, right] references of id.
// Returns nil for the root and for unknown ids.
func (g *Graph) Parents(id int) []int {
	r, ok := g.Record(id)
	if !ok {
		return nil
	}
	return []int{r.Left, r.Right}
}

// Children returns the ids of records referencing id, in record order. A
// record referencing id on both sides appears twice. The returned slice
// should not be modified.
func (g *Graph) Children(id int) []int {
	if !g.Has(id) {
		return nil
	}
	return g.children[id-1]
}

// InDegree returns the number of reference edges terminating at id.
// Returns 0 for unknown ids.
func (g *Graph) InDegree(id int) int {
	if !g.Has(id) {
		return 0
	}
	return g.indegree[id-1]
}

// Timestamp returns the timestamp of id, 0 for the root.
func (g *Graph) Timestamp(id int) int64 {
	r, _ := g.Record(id)
	return r.Timestamp
}
