package dag

// Unreachable marks nodes that no path from the root reaches.
const Unreachable = -1

// Depths holds the shortest-path distance from the root for every node,
// indexed by id-1. Unreachable nodes hold [Unreachable].
type Depths []int

// ComputeDepths computes the depth of every node by breadth-first search from
// the root along parent→child edges.
//
// # Algorithm
//
//  1. Seed the queue with the root at depth 0
//  2. Dequeue a node; every child not yet visited gets depth+1 and is enqueued
//  3. Repeat until the queue is empty
//
// A node is marked on first encounter, and BFS level order makes that first
// depth minimal regardless of sibling order.
//
// Time and space complexity are O(V + E).
func ComputeDepths(g *Graph) Depths {
	d := make(Depths, g.NodeCount())
	for i := range d {
		d[i] = Unreachable
	}
	if len(d) == 0 {
		return d
	}

	d[RootID-1] = 0
	queue := make([]int, 0, len(d))
	queue = append(queue, RootID)

	for head := 0; head < len(queue); head++ {
		curr := queue[head]
		for _, child := range g.Children(curr) {
			if d[child-1] != Unreachable {
				continue
			}
			d[child-1] = d[curr-1] + 1
			queue = append(queue, child)
		}
	}
	return d
}

// Of returns the depth of id and whether it is reachable from the root.
func (d Depths) Of(id int) (int, bool) {
	if id < RootID || id > len(d) || d[id-1] == Unreachable {
		return 0, false
	}
	return d[id-1], true
}

// Max returns the greatest depth of any reachable node, 0 for a root-only graph.
func (d Depths) Max() int {
	m := 0
	for _, v := range d {
		m = max(m, v)
	}
	return m
}

// Levels returns the number of reachable nodes at each depth. Index 0 is the
// root bucket.
func (d Depths) Levels() []int {
	if len(d) == 0 {
		return nil
	}
	levels := make([]int, d.Max()+1)
	for _, v := range d {
		if v != Unreachable {
			levels[v]++
		}
	}
	return levels
}

// Reachable returns the number of non-root nodes reachable from the root.
func (d Depths) Reachable() int {
	n := 0
	for i, v := range d {
		if i != RootID-1 && v != Unreachable {
			n++
		}
	}
	return n
}
