package spatial

import (
	"math"
	"math/rand"
	"testing"
)

func TestInsertAndSize(t *testing.T) {
	o := New(Point{0, 0, 0}, 100, 6)
	points := []Point{{1, 1, 1}, {-1, -1, -1}, {50, 50, 50}, {-50, 20, -30}}
	for _, p := range points {
		if !o.Insert(p) {
			t.Fatalf("expected %v to be inserted", p)
		}
	}
	if o.Size() != len(points) {
		t.Errorf("Size() = %d, want %d", o.Size(), len(points))
	}
}

func TestInsertRejectsOutOfBounds(t *testing.T) {
	o := New(Point{0, 0, 0}, 10, 4)
	if o.Insert(Point{50, 0, 0}) {
		t.Error("expected out-of-bounds point to be rejected")
	}
	if o.Size() != 0 {
		t.Errorf("Size() = %d, want 0 after rejected insert", o.Size())
	}
}

func TestQueryFindsInsertedPoints(t *testing.T) {
	o := New(Point{0, 0, 0}, 100, 8)
	target := Point{10, 10, 10}
	o.Insert(target)
	o.Insert(Point{-90, -90, -90})

	results := o.Query(target, 1e-6)
	found := false
	for _, p := range results {
		if p.equal(target) {
			found = true
		}
	}
	if !found {
		t.Error("Query did not return the inserted point within a small radius of itself")
	}
}

func TestQueryNeverReturnsOutsideBoundingBox(t *testing.T) {
	o := New(Point{0, 0, 0}, 50, 6)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		p := Point{rng.Float64()*100 - 50, rng.Float64()*100 - 50, rng.Float64()*100 - 50}
		o.Insert(p)
	}

	queryPoint := Point{0, 0, 0}
	radius := 1.0
	for _, p := range o.Query(queryPoint, radius) {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < -50-radius || p[axis] > 50+radius {
				t.Fatalf("query returned point outside [center-(R+eps), center+(R+eps)]: %v", p)
			}
		}
	}
}

func TestQueryMatchesBruteForce(t *testing.T) {
	o := New(Point{0, 0, 0}, 100, 5)
	rng := rand.New(rand.NewSource(7))

	var all []Point
	for i := 0; i < 10000; i++ {
		p := Point{rng.Float64()*200 - 100, rng.Float64()*200 - 100, rng.Float64()*200 - 100}
		all = append(all, p)
		o.Insert(p)
	}

	query := Point{0, 0, 0}
	radius := 1.0

	var brute []Point
	for _, p := range all {
		if p.euclidean(query) <= radius {
			brute = append(brute, p)
		}
	}

	got := o.Query(query, radius)
	if len(got) != len(brute) {
		t.Fatalf("octree query returned %d points, brute force found %d", len(got), len(brute))
	}
}

func TestRemoveAndSize(t *testing.T) {
	o := New(Point{0, 0, 0}, 100, 6)
	p := Point{5, 5, 5}
	o.Insert(p)
	o.Insert(Point{-5, -5, -5})

	if !o.Remove(p) {
		t.Fatal("expected Remove to find the exact match")
	}
	if o.Size() != 1 {
		t.Errorf("Size() = %d, want 1 after removing one of two points", o.Size())
	}
	if o.Remove(p) {
		t.Error("expected a second Remove of the same point to report not-found")
	}
}

func TestRemoveCollapsesEmptySiblings(t *testing.T) {
	o := New(Point{0, 0, 0}, 8, 2)
	p := Point{1, 1, 1}
	o.Insert(p)

	capBefore := o.Capacity()
	if capBefore == 0 {
		t.Fatal("expected non-zero capacity after insert")
	}

	o.Remove(p)
	capAfter := o.Capacity()
	if capAfter >= capBefore {
		t.Errorf("expected capacity to shrink after removing the only point in a subtree, before=%d after=%d", capBefore, capAfter)
	}
}

func TestOctantTieBreakIsConsistent(t *testing.T) {
	o := New(Point{0, 0, 0}, 10, 1)
	onPlane := Point{0, 0, 0}
	if !o.Insert(onPlane) {
		t.Fatal("expected on-plane point to be accepted")
	}
	first := o.root.octant(onPlane)
	second := o.root.octant(onPlane)
	if first != second {
		t.Error("octant assignment for the same on-plane point must be consistent")
	}
}

func TestPruneSkipsDistantSubtrees(t *testing.T) {
	o := New(Point{0, 0, 0}, 100, 6)
	o.Insert(Point{99, 99, 99})

	results := o.Query(Point{-99, -99, -99}, 1)
	if len(results) != 0 {
		t.Errorf("expected no results near the opposite corner, got %v", results)
	}
}

func TestCapacityTracksMaterializedLeaves(t *testing.T) {
	o := New(Point{0, 0, 0}, 100, 4)
	if o.Capacity() != 1 {
		t.Errorf("a fresh tree should report capacity 1 (the unsplit root), got %d", o.Capacity())
	}
	o.Insert(Point{10, 10, 10})
	if o.Capacity() <= 1 {
		t.Error("capacity should grow after a subdividing insert")
	}
}

func TestEuclideanHelper(t *testing.T) {
	a := Point{0, 0, 0}
	b := Point{3, 4, 0}
	if math.Abs(a.euclidean(b)-5) > 1e-9 {
		t.Errorf("euclidean distance = %v, want 5", a.euclidean(b))
	}
}
