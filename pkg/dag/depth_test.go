package dag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeDepthsScenario(t *testing.T) {
	// 2 and 3 hang off the root, 4 off 2, 5 off 3.
	g, err := Build([]Record{
		{ID: 2, Left: 1, Right: 1, Timestamp: 0},
		{ID: 3, Left: 1, Right: 1, Timestamp: 0},
		{ID: 4, Left: 2, Right: 2, Timestamp: 1},
		{ID: 5, Left: 3, Right: 3, Timestamp: 2},
	})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	d := ComputeDepths(g)
	want := Depths{0, 1, 1, 2, 2}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("depths mismatch (-want +got):\n%s", diff)
	}
	if d.Max() != 2 {
		t.Errorf("Max() = %d, want 2", d.Max())
	}
	if diff := cmp.Diff([]int{1, 2, 2}, d.Levels()); diff != "" {
		t.Errorf("Levels() mismatch (-want +got):\n%s", diff)
	}
	if d.Reachable() != 4 {
		t.Errorf("Reachable() = %d, want 4", d.Reachable())
	}
}

func TestComputeDepthsRootOnly(t *testing.T) {
	g, _ := Build(nil)
	d := ComputeDepths(g)

	if depth, ok := d.Of(RootID); !ok || depth != 0 {
		t.Errorf("Of(root) = %d, %v, want 0, true", depth, ok)
	}
	if d.Max() != 0 {
		t.Errorf("Max() = %d, want 0", d.Max())
	}
	if d.Reachable() != 0 {
		t.Errorf("Reachable() = %d, want 0", d.Reachable())
	}
	if diff := cmp.Diff([]int{1}, d.Levels()); diff != "" {
		t.Errorf("Levels() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeDepthsShortestPath(t *testing.T) {
	// A long chain with a late shortcut back to the root.
	g, _ := Build([]Record{
		{ID: 2, Left: 1, Right: 1},
		{ID: 3, Left: 2, Right: 2},
		{ID: 4, Left: 3, Right: 3},
		{ID: 5, Left: 4, Right: 1},
		{ID: 6, Left: 4, Right: 5},
	})
	d := ComputeDepths(g)

	want := map[int]int{1: 0, 2: 1, 3: 2, 4: 3, 5: 1, 6: 2}
	for id, w := range want {
		if got, _ := d.Of(id); got != w {
			t.Errorf("depth[%d] = %d, want %d", id, got, w)
		}
	}
}

func TestComputeDepthsProperties(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 42, 1234} {
		g, err := Build(RandomRecords(500, seed))
		if err != nil {
			t.Fatalf("seed %d: Build error: %v", seed, err)
		}
		d := ComputeDepths(g)

		if depth, ok := d.Of(RootID); !ok || depth != 0 {
			t.Fatalf("seed %d: depth[root] = %d, want 0", seed, depth)
		}
		for _, r := range g.Records() {
			depth, ok := d.Of(r.ID)
			if !ok {
				t.Fatalf("seed %d: node %d unreachable", seed, r.ID)
			}
			if depth < 0 {
				t.Fatalf("seed %d: depth[%d] = %d is negative", seed, r.ID, depth)
			}
			left, _ := d.Of(r.Left)
			right, _ := d.Of(r.Right)
			if depth > left+1 || depth > right+1 {
				t.Errorf("seed %d: depth[%d] = %d exceeds a parent depth + 1 (%d, %d)", seed, r.ID, depth, left, right)
			}
			if depth != min(left, right)+1 {
				t.Errorf("seed %d: depth[%d] = %d, want %d", seed, r.ID, depth, min(left, right)+1)
			}
		}
	}
}

func TestDepthsOfOutOfRange(t *testing.T) {
	d := Depths{0, 1, Unreachable}
	for _, id := range []int{0, 3, 4} {
		if _, ok := d.Of(id); ok {
			t.Errorf("Of(%d) ok = true, want false", id)
		}
	}
	if d.Reachable() != 1 {
		t.Errorf("Reachable() = %d, want 1", d.Reachable())
	}
	if diff := cmp.Diff([]int{1, 1}, d.Levels()); diff != "" {
		t.Errorf("Levels() mismatch (-want +got):\n%s", diff)
	}
}
