package delaunay

import (
	"math"

	"github.com/halfmesh/triangulate/geomkernel"
	"github.com/halfmesh/triangulate/types"
)

// hullList is the doubly-linked convex hull maintained during sweep-hull
// construction, plus the pseudo-angle hash table used to find a hull edge
// visible from a new point in O(1) amortized time. Vertex ids index every
// slice directly; a vertex becomes "interior" (removed from the hull) by
// pointing hullNext[v] back at itself.
type hullList struct {
	center types.Point

	hullPrev []int
	hullNext []int
	hullTri  []int // halfedge id of one triangle corner incident to this hull vertex

	hashSize int
	hash     []int // hullHash[bucket] = hull vertex id, or -1
}

func newHullList(n int, center types.Point) *hullList {
	size := int(math.Ceil(math.Sqrt(float64(n))))
	if size < 1 {
		size = 1
	}
	h := &hullList{
		center:   center,
		hullPrev: make([]int, n),
		hullNext: make([]int, n),
		hullTri:  make([]int, n),
		hashSize: size,
		hash:     make([]int, size),
	}
	for i := range h.hash {
		h.hash[i] = -1
	}
	return h
}

func (h *hullList) hashKey(p types.Point) int {
	angle := geomkernel.PseudoAngle(p.X-h.center.X, p.Y-h.center.Y)
	return int(angle*float64(h.hashSize)) % h.hashSize
}

// insertSeed initializes the 3-vertex hull from the seed triangle.
func (h *hullList) insertSeed(i0, i1, i2 int, positions []types.Point) {
	h.hullNext[i0], h.hullPrev[i0] = i1, i2
	h.hullNext[i1], h.hullPrev[i1] = i2, i0
	h.hullNext[i2], h.hullPrev[i2] = i0, i1

	h.hash[h.hashKey(positions[i0])] = i0
	h.hash[h.hashKey(positions[i1])] = i1
	h.hash[h.hashKey(positions[i2])] = i2
}

// updateHash records v as the hull vertex for its pseudo-angle bucket.
func (h *hullList) updateHash(v int, positions []types.Point) {
	h.hash[h.hashKey(positions[v])] = v
}

// findVisibleEdge locates a hull vertex e such that the edge (e, hullNext[e])
// is visible from p, by probing the hash table near p's bucket for a live
// (non-interior) hull vertex and then scanning forward along the hull until
// an edge visible from p is found. Adapted from the Delaunator hull-hash
// probe: the bucket is only a starting point, since collisions and removed
// hull vertices mean the true answer may be a few buckets away.
func (h *hullList) findVisibleEdge(p types.Point, positions []types.Point) int {
	start := -1
	key := h.hashKey(p)
	for i := 0; i < h.hashSize && start == -1; i++ {
		if e := h.hash[(key+i)%h.hashSize]; e != -1 && h.hullNext[e] != e {
			start = e
		}
	}
	// Fallback: hash table is empty or every bucket missed; start from any
	// live vertex.
	for v := 0; start == -1 && v < len(h.hullNext); v++ {
		if h.hullNext[v] != v {
			start = v
		}
	}
	if start == -1 {
		return 0
	}
	k := geomkernel.Float64Kernel{}
	e := start
	for k.Orient2D(p, positions[e], positions[h.hullNext[e]]) >= 0 {
		e = h.hullNext[e]
		if e == start {
			break
		}
	}
	return e
}

// retargetHullTri repairs hullTri[e] after a flip moves the triangle corner
// that used to be referenced by half-edge `old` to half-edge `new`. Only hit
// when a flip occurs on the far side of the hull.
func (h *hullList) retargetHullTri(old, new_ int) {
	for v := range h.hullTri {
		if h.hullTri[v] == old {
			h.hullTri[v] = new_
			return
		}
	}
}
