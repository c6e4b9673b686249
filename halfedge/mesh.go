// Package halfedge implements the packed, array-based half-edge mesh shared
// by every triangulation stage: DelaunayBuilder writes it, ConstraintApplier
// and Refiner mutate it in place, SeedPlanter prunes it. The representation
// and the 3t+s indexing convention are adapted from cdt.TriSoup, generalized
// from a per-triangle neighbor-id model to flat parallel arrays so stages can
// patch the mesh and their own work queues with a single remap operation.
package halfedge

import (
	"github.com/halfmesh/triangulate/geomkernel"
	"github.com/halfmesh/triangulate/types"
)

// NilHalfedge marks a half-edge with no opposite (a mesh boundary edge).
const NilHalfedge = -1

// Mesh is the packed half-edge triangulation store. Half-edge id
// h = 3*t + s addresses corner s (0, 1 or 2) of triangle t.
type Mesh struct {
	Positions []types.Point

	Triangles            []int               // vertex id at the tail of half-edge h
	Halfedges            []int               // opposite half-edge id, or NilHalfedge
	ConstrainedHalfedges []bool              // h lies on an enforced constraint edge
	IgnoredForPlanting   []bool              // h was constrained from a non-barrier input edge
	Circles              []geomkernel.Circle // circumcircle of triangle t

	// InitialPointsCount is the number of vertices present before any
	// Steiner point insertion; vertices at or above this id were inserted
	// by refinement and are eligible for removal as orphans.
	InitialPointsCount int

	Kernel geomkernel.Kernel
}

// New creates an empty mesh over the given point set. Positions may grow
// as Steiner points are appended during refinement.
func New(positions []types.Point, kernel geomkernel.Kernel) *Mesh {
	return &Mesh{
		Positions:          positions,
		InitialPointsCount: len(positions),
		Kernel:             kernel,
	}
}

// TriangleCount returns the number of live triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// TriangleOf returns the triangle id owning half-edge h.
func TriangleOf(h int) int {
	return h / 3
}

// NextHalfedge returns the next half-edge around triangle TriangleOf(h),
// i.e. (h%3==2) ? h-2 : h+1.
func NextHalfedge(h int) int {
	if h%3 == 2 {
		return h - 2
	}
	return h + 1
}

// PrevHalfedge returns the previous half-edge around the same triangle.
func PrevHalfedge(h int) int {
	if h%3 == 0 {
		return h + 2
	}
	return h - 1
}

// Corner0 returns the first half-edge of triangle t, i.e. 3*t.
func Corner0(t int) int {
	return 3 * t
}

// Link sets halfedges[h] = g and halfedges[g] = h when g is not nil,
// maintaining the I3 twin-symmetry invariant.
func (m *Mesh) Link(h, g int) {
	m.Halfedges[h] = g
	if g != NilHalfedge {
		m.Halfedges[g] = h
	}
}

// Point returns the position of the vertex at the tail of half-edge h.
func (m *Mesh) Point(h int) types.Point {
	return m.Positions[m.Triangles[h]]
}

// AddTriangle appends a new triangle (v0,v1,v2) with opposite half-edges
// (opp0,opp1,opp2) — any of which may be NilHalfedge — and returns its
// triangle id. The new triangle's circumcircle is computed immediately via
// the mesh's Kernel-independent geomkernel.Circumcircle (exact orientation
// is the Kernel's job; circumcenter arithmetic is always float64, matching
// the Float64Kernel/LatticeKernel split documented in SPEC_FULL.md).
func (m *Mesh) AddTriangle(v0, v1, v2, opp0, opp1, opp2 int) int {
	t := m.TriangleCount()
	h := len(m.Triangles)

	m.Triangles = append(m.Triangles, v0, v1, v2)
	m.Halfedges = append(m.Halfedges, NilHalfedge, NilHalfedge, NilHalfedge)
	m.ConstrainedHalfedges = append(m.ConstrainedHalfedges, false, false, false)
	m.IgnoredForPlanting = append(m.IgnoredForPlanting, false, false, false)

	m.Link(h, opp0)
	m.Link(h+1, opp1)
	m.Link(h+2, opp2)

	circle := geomkernel.Circumcircle(m.Positions[v0], m.Positions[v1], m.Positions[v2])
	m.Circles = append(m.Circles, circle)

	return t
}

// RecomputeCircle recomputes circles[t] from the triangle's current
// vertices. Callers invoke this after any in-place vertex rewrite (such as
// a diagonal flip) that changes which points define the triangle.
func (m *Mesh) RecomputeCircle(t int) {
	h := Corner0(t)
	a := m.Point(h)
	b := m.Point(NextHalfedge(h))
	c := m.Point(PrevHalfedge(h))
	m.Circles[t] = geomkernel.Circumcircle(a, b, c)
}

// PatchFunc rewrites a caller-owned work queue of half-edge or triangle ids
// after RemoveTriangle has shifted every higher index down by 3 (half-edge
// ids) or 1 (triangle ids). Passing a half-edge id that pointed into the
// removed triangle is a caller error; PatchFunc never needs to handle it
// because callers are required to drop or resolve references to the
// triangle being removed before calling RemoveTriangle.
type PatchFunc func(halfedgeIDs []int, triangleIDs []int)

// RemoveTriangle deletes triangle t from the packed arrays by shifting every
// triangle with a higher id down by one slot (three half-edge entries),
// rewriting every remaining Halfedges opposite-reference that pointed past
// the removed triangle's block, and returns a PatchFunc the caller applies
// to its own outstanding work queues (half-edge-id queues and triangle-id
// queues alike) so that those queues stay valid under the same shift. This
// centralizes the remap that ConstraintApplier and Refiner both need when
// deleting triangles mid-algorithm, the single choke point named in
// SPEC_FULL.md to avoid bugs from partial patching.
func (m *Mesh) RemoveTriangle(t int) PatchFunc {
	h0 := Corner0(t)

	shift := func(h int) int {
		if h == NilHalfedge {
			return NilHalfedge
		}
		if h >= h0+3 {
			return h - 3
		}
		return h
	}

	m.Triangles = append(m.Triangles[:h0], m.Triangles[h0+3:]...)
	m.ConstrainedHalfedges = append(m.ConstrainedHalfedges[:h0], m.ConstrainedHalfedges[h0+3:]...)
	m.IgnoredForPlanting = append(m.IgnoredForPlanting[:h0], m.IgnoredForPlanting[h0+3:]...)
	m.Circles = append(m.Circles[:t], m.Circles[t+1:]...)

	oldHalfedges := m.Halfedges
	newHalfedges := append(oldHalfedges[:h0:h0], oldHalfedges[h0+3:]...)
	for i, opp := range newHalfedges {
		newHalfedges[i] = shift(opp)
	}
	m.Halfedges = newHalfedges

	return func(halfedgeIDs []int, triangleIDs []int) {
		for i, h := range halfedgeIDs {
			halfedgeIDs[i] = shift(h)
		}
		for i, tid := range triangleIDs {
			if tid > t {
				triangleIDs[i] = tid - 1
			}
		}
	}
}

// EdgeVertices returns the two vertex ids of half-edge h's edge, in
// half-edge order: (tail of h, tail of next(h)).
func (m *Mesh) EdgeVertices(h int) (int, int) {
	return m.Triangles[h], m.Triangles[NextHalfedge(h)]
}
