// Package spatial implements the octree spatial index (component C2):
// a bounded 3-D index used by the universe driver to reject system
// placements that land too close to an already-placed system. Ported
// from original_source/NpgsCore/Sources/Engine/Base/Octree.h/.cpp,
// re-architected as a static (non-rebalancing) index with lazily
// materialized children rather than the source's eager
// materialize-every-visited-node behavior, since spec §4.2 only
// requires the four operations (insert, query, size/capacity, remove)
// to behave correctly, not the source's incidental over-allocation.
package spatial

import "math"

// Point is a 3-D coordinate, in parsecs within this module's intended
// use (the universe driver's placement index), though the type itself
// is unit-agnostic.
type Point [3]float64

func (p Point) sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

func (p Point) infNorm() float64 {
	return math.Max(math.Abs(p[0]), math.Max(math.Abs(p[1]), math.Abs(p[2])))
}

func (p Point) euclidean(q Point) float64 {
	dx, dy, dz := p[0]-q[0], p[1]-q[1], p[2]-q[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (p Point) equal(q Point) bool {
	return p[0] == q[0] && p[1] == q[1] && p[2] == q[2]
}

// node is one cube in the subdivision. Non-leaf nodes carry no points;
// leaf nodes (depth == tree.maxDepth, or any node never subdivided
// further) carry the points that landed in them.
type node struct {
	center   Point
	radius   float64
	children [8]*node
	points   []Point
}

func (n *node) contains(p Point) bool {
	for axis := 0; axis < 3; axis++ {
		if math.Abs(p[axis]-n.center[axis]) > n.radius {
			return false
		}
	}
	return true
}

// octant returns the child index for p, using a strict less-than test
// per axis: a coordinate exactly on the dividing plane does not satisfy
// "< center" and so is assigned to the positive side, giving a
// consistent tie-break for points exactly on an octree boundary plane
// (spec §4.2 edge case).
func (n *node) octant(p Point) int {
	idx := 0
	if p[0]-n.center[0] >= 0 {
		idx |= 4
	}
	if p[1]-n.center[1] >= 0 {
		idx |= 2
	}
	if p[2]-n.center[2] >= 0 {
		idx |= 1
	}
	return idx
}

func (n *node) materializeChildren() {
	if n.children[0] != nil {
		return
	}
	half := n.radius * 0.5
	for i := 0; i < 8; i++ {
		offset := Point{
			signOf(i&4) * half,
			signOf(i&2) * half,
			signOf(i&1) * half,
		}
		n.children[i] = &node{
			center: Point{n.center[0] + offset[0], n.center[1] + offset[1], n.center[2] + offset[2]},
			radius: half,
		}
	}
}

func signOf(bit int) float64 {
	if bit != 0 {
		return 1
	}
	return -1
}

func (n *node) isLeaf() bool {
	return n.children[0] == nil
}

// intersectsSphere applies the infinity-norm prune from spec §4.2:
// skip this cube when |center - point|∞ - halfwidth > radius.
func (n *node) intersectsSphere(p Point, radius float64) bool {
	return n.center.sub(p).infNorm()-n.radius <= radius
}

// Octree is a bounded cubical spatial index centered at a fixed point
// with a fixed half-width (Radius) and maximum subdivision depth.
type Octree struct {
	root     *node
	maxDepth int
}

// New constructs an Octree rooted at center with the given half-width
// radius and maximum subdivision depth. depth <= 0 is treated as 1 (a
// single subdivision of the root into eight leaves).
func New(center Point, radius float64, maxDepth int) *Octree {
	if maxDepth <= 0 {
		maxDepth = 1
	}
	return &Octree{
		root:     &node{center: center, radius: radius},
		maxDepth: maxDepth,
	}
}

// Insert descends to the depth-maxDepth leaf containing point and
// stores it there. Points outside the root cube are rejected without
// error (spec §4.2 edge case) — the return value signals rejection for
// callers that want to know (the universe driver does not: it only
// inserts points it already validated against the octree's own Query).
func (o *Octree) Insert(point Point) bool {
	if !o.root.contains(point) {
		return false
	}

	n := o.root
	for depth := 0; depth < o.maxDepth; depth++ {
		n.materializeChildren()
		n = n.children[n.octant(point)]
	}
	n.points = append(n.points, point)
	return true
}

// Query collects every stored point within Euclidean distance radius of
// point, including any stored point equal to point itself; nothing is
// filtered out by equality with the query point.
func (o *Octree) Query(point Point, radius float64) []Point {
	var results []Point
	o.queryNode(o.root, point, radius, &results)
	return results
}

func (o *Octree) queryNode(n *node, point Point, radius float64, results *[]Point) {
	if n == nil {
		return
	}
	if !n.intersectsSphere(point, radius) {
		return
	}

	if n.isLeaf() {
		for _, p := range n.points {
			if p.euclidean(point) <= radius {
				*results = append(*results, p)
			}
		}
		return
	}

	for _, child := range n.children {
		o.queryNode(child, point, radius, results)
	}
}

// Size returns the total count of stored points, O(n) in the number of
// leaves.
func (o *Octree) Size() int {
	return sizeOf(o.root)
}

func sizeOf(n *node) int {
	if n == nil {
		return 0
	}
	if n.isLeaf() {
		return len(n.points)
	}
	total := 0
	for _, child := range n.children {
		total += sizeOf(child)
	}
	return total
}

// Capacity returns the count of materialized leaf nodes — the tree's
// current structural footprint, independent of how many points each
// leaf happens to hold.
func (o *Octree) Capacity() int {
	return capacityOf(o.root)
}

func capacityOf(n *node) int {
	if n == nil {
		return 0
	}
	if n.isLeaf() {
		return 1
	}
	total := 0
	for _, child := range n.children {
		total += capacityOf(child)
	}
	return total
}

// Remove deletes the exact-match point from its leaf. If that leaf
// becomes empty, its seven siblings are checked: only when all eight are
// empty are the siblings freed, collapsing the parent back into a leaf
// (spec §4.2: "frees siblings only when all eight siblings also empty").
// Returns whether a point was actually removed.
func (o *Octree) Remove(point Point) bool {
	if !o.root.contains(point) {
		return false
	}
	removed, _ := removeFrom(o.root, point, o.maxDepth, 0)
	return removed
}

// removeFrom returns (removed, thisNodeNowEmptyLeaf).
func removeFrom(n *node, point Point, maxDepth, depth int) (bool, bool) {
	if n.isLeaf() {
		for i, p := range n.points {
			if p.equal(point) {
				n.points = append(n.points[:i], n.points[i+1:]...)
				return true, len(n.points) == 0
			}
		}
		return false, len(n.points) == 0
	}

	idx := n.octant(point)
	removed, childEmpty := removeFrom(n.children[idx], point, maxDepth, depth+1)
	if !removed {
		return false, false
	}

	if childEmpty {
		allEmpty := true
		for _, child := range n.children {
			if !child.isLeaf() || len(child.points) != 0 {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			for i := range n.children {
				n.children[i] = nil
			}
		}
	}
	return true, n.isLeaf()
}
