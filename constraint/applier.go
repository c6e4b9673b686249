// Package constraint implements Sloan's algorithm for enforcing constrained
// edges on an existing Delaunay triangulation: tunnel through the triangles
// crossing each constraint, resolve the intersections with a bounded series
// of diagonal flips, and propagate the constrained/ignored flags onto the
// surviving half-edge. Adapted from cdt's InsertConstraintEdge/LegalizeAround
// pair, generalized to the packed halfedge.Mesh representation.
package constraint

import (
	"github.com/halfmesh/triangulate/geomkernel"
	"github.com/halfmesh/triangulate/halfedge"
	"github.com/halfmesh/triangulate/status"
	"github.com/halfmesh/triangulate/types"
)

// DefaultSloanMaxIters bounds the number of diagonal-flip resolution passes
// per constraint edge before giving up with ErrSloanItersExceeded.
const DefaultSloanMaxIters = 1_000_000

// Applier enforces a set of constraint edges onto a mesh built by
// delaunay.Builder.
type Applier struct {
	kernel       geomkernel.Kernel
	sloanMaxIters int
}

// NewApplier returns an Applier. sloanMaxIters <= 0 selects DefaultSloanMaxIters.
func NewApplier(kernel geomkernel.Kernel, sloanMaxIters int) *Applier {
	if sloanMaxIters <= 0 {
		sloanMaxIters = DefaultSloanMaxIters
	}
	return &Applier{kernel: kernel, sloanMaxIters: sloanMaxIters}
}

// Constraint names an enforced edge by vertex id pair and whether it should
// be ignored by SeedPlanter's region-boundary flood fill.
type Constraint struct {
	U, V   int
	Ignore bool
}

// Apply enforces every constraint on m, marking the half-edge (and its
// twin, if any) between each pair's endpoints as constrained.
func (a *Applier) Apply(m *halfedge.Mesh, constraints []Constraint) status.Status {
	pointToHalfedge := buildPointToHalfedge(m)

	for _, c := range constraints {
		if hasEdge(m, pointToHalfedge, c.U, c.V) {
			markConstrained(m, pointToHalfedge, c.U, c.V, c.Ignore)
			continue
		}

		pending := a.collectCrossings(m, pointToHalfedge, c.U, c.V)

		resolved := false
		for pass := 0; pass < a.sloanMaxIters; pass++ {
			if len(pending) == 0 {
				resolved = true
				break
			}

			next := pending[:0]
			progressed := false

			for _, h := range pending {
				if !isConvexQuad(a.kernel, m, h) {
					next = append(next, h)
					continue
				}

				flipped := flipDiagonal(m, h)
				progressed = true

				u0, v0 := m.EdgeVertices(flipped)
				if isConstraintEdge(u0, v0, c.U, c.V) {
					markHalfedgeConstrained(m, flipped, c.Ignore)
					continue
				}

				if crossesConstraint(a.kernel, m, flipped, c.U, c.V) {
					next = append(next, flipped)
				}
			}

			pending = next
			if !progressed && len(pending) > 0 {
				// No quad in the pending set is convex yet; keep retrying
				// up to sloanMaxIters since later flips elsewhere in the
				// mesh can restore convexity on a deferred quad.
			}
		}

		if !resolved && !hasEdge(m, pointToHalfedge, c.U, c.V) {
			return status.OK.Set(status.ErrSloanItersExceeded)
		}

		pointToHalfedge = buildPointToHalfedge(m)
	}

	return status.OK
}

func buildPointToHalfedge(m *halfedge.Mesh) []int {
	out := make([]int, len(m.Positions))
	for i := range out {
		out[i] = -1
	}
	for h, v := range m.Triangles {
		out[v] = h
	}
	return out
}

func hasEdge(m *halfedge.Mesh, p2h []int, u, v int) bool {
	start := p2h[u]
	if start == -1 {
		return false
	}
	h := start
	for {
		if m.Triangles[halfedge.NextHalfedge(h)] == v {
			return true
		}
		opp := m.Halfedges[halfedge.PrevHalfedge(h)]
		if opp == halfedge.NilHalfedge {
			break
		}
		h = opp
		if h == start {
			break
		}
	}
	return false
}

func markConstrained(m *halfedge.Mesh, p2h []int, u, v int, ignore bool) {
	start := p2h[u]
	h := start
	for {
		if m.Triangles[halfedge.NextHalfedge(h)] == v {
			markHalfedgeConstrained(m, h, ignore)
			return
		}
		opp := m.Halfedges[halfedge.PrevHalfedge(h)]
		if opp == halfedge.NilHalfedge {
			return
		}
		h = opp
		if h == start {
			return
		}
	}
}

func markHalfedgeConstrained(m *halfedge.Mesh, h int, ignore bool) {
	m.ConstrainedHalfedges[h] = true
	m.IgnoredForPlanting[h] = ignore
	if opp := m.Halfedges[h]; opp != halfedge.NilHalfedge {
		m.ConstrainedHalfedges[opp] = true
		m.IgnoredForPlanting[opp] = ignore
	}
}

func isConstraintEdge(u0, v0, u, v int) bool {
	return (u0 == u && v0 == v) || (u0 == v && v0 == u)
}

// collectCrossings walks the fan of half-edges around u to find the first
// half-edge whose opposite edge crosses (u,v), then tunnels through
// neighboring triangles collecting every crossed diagonal. u sits on the
// mesh boundary for roughly half of all constraint edges that touch the
// hull, and p2h[u] records whichever half-edge AddTriangle last happened to
// leave there — so the fan in one rotational direction may be only half of
// u's actual link. If that first walk runs off a boundary half-edge without
// finding a crossing, the mirror-side walk (same search, opposite rotational
// direction around u) is tried before giving up.
func (a *Applier) collectCrossings(m *halfedge.Mesh, p2h []int, u, v int) []int {
	pu := m.Positions[u]
	pv := m.Positions[v]

	entry := a.findCrossing(m, p2h, u, pu, pv, func(h int) int {
		return m.Halfedges[halfedge.PrevHalfedge(h)]
	})
	if entry == -1 {
		entry = a.findCrossing(m, p2h, u, pu, pv, func(h int) int {
			opp := m.Halfedges[h]
			if opp == halfedge.NilHalfedge {
				return halfedge.NilHalfedge
			}
			return halfedge.NextHalfedge(opp)
		})
	}

	if entry == -1 {
		return nil
	}

	pending := []int{entry}
	a.tunnel(m, entry, pu, pv, v, &pending)
	return pending
}

// findCrossing walks the fan of half-edges around u, in the rotational
// direction step advances, looking for the first opposite edge that
// properly crosses segment (pu,pv). Returns -1 if the fan is exhausted
// (a boundary half-edge with no opposite triangle) or closes on itself
// without finding one.
func (a *Applier) findCrossing(m *halfedge.Mesh, p2h []int, u int, pu, pv types.Point, step func(int) int) int {
	start := p2h[u]
	if start == -1 {
		return -1
	}

	h := start
	for {
		opposite := halfedge.NextHalfedge(h)
		va, vb := m.Triangles[opposite], m.Triangles[halfedge.NextHalfedge(opposite)]
		if geomkernel.SegmentsProperlyIntersect(a.kernel, pu, pv, m.Positions[va], m.Positions[vb]) {
			return opposite
		}
		next := step(h)
		if next == halfedge.NilHalfedge {
			return -1
		}
		h = next
		if h == start {
			return -1
		}
	}
}

// tunnel follows the chain of crossed diagonals starting from the triangle
// opposite crossing, appending every crossing to *pending, stopping once v's
// incident triangle is reached or a boundary (no opposite triangle) is hit.
// At each step at most one of the new triangle's two non-incoming edges
// crosses (pu,pv), per SPEC_FULL.md §4.4.
func (a *Applier) tunnel(m *halfedge.Mesh, crossing int, pu, pv types.Point, v int, pending *[]int) {
	for i := 0; i < len(m.Triangles); i++ { // bounded by mesh size; avoids infinite loop on malformed input
		opp := m.Halfedges[crossing]
		if opp == halfedge.NilHalfedge {
			return
		}

		far1 := halfedge.NextHalfedge(opp)
		far2 := halfedge.PrevHalfedge(opp)

		for _, cand := range [2]int{far1, far2} {
			ua, ub := m.EdgeVertices(cand)
			if ua == v || ub == v {
				return
			}
			va, vb := m.Positions[ua], m.Positions[ub]
			if geomkernel.SegmentsProperlyIntersect(a.kernel, pu, pv, va, vb) {
				*pending = append(*pending, cand)
				crossing = cand
				goto next
			}
		}
		return
	next:
	}
}

func isConvexQuad(k geomkernel.Kernel, m *halfedge.Mesh, h int) bool {
	opp := m.Halfedges[h]
	if opp == halfedge.NilHalfedge {
		return false
	}
	p0 := m.Point(halfedge.PrevHalfedge(h))
	p1 := m.Point(h)
	p2 := m.Point(halfedge.NextHalfedge(h))
	p3 := m.Point(halfedge.PrevHalfedge(opp))
	return geomkernel.IsConvexQuadrilateral(k, p0, p1, p3, p2)
}

// flipDiagonal rewrites the two triangles sharing half-edge h so that the
// shared diagonal connects the two opposite corners instead, and returns
// the half-edge id of the new diagonal. Constrained/ignored flags are
// propagated from the displaced edges per SPEC_FULL.md §4.4.
func flipDiagonal(m *halfedge.Mesh, h int) int {
	opp := m.Halfedges[h]

	ar := halfedge.PrevHalfedge(h)
	bl := halfedge.PrevHalfedge(opp)

	p0 := m.Triangles[ar]
	p1 := m.Triangles[bl]

	m.Triangles[h] = p1
	m.Triangles[opp] = p0

	hbl := m.Halfedges[bl]
	har := m.Halfedges[ar]

	cbl := m.ConstrainedHalfedges[bl]
	ibl := m.IgnoredForPlanting[bl]
	car := m.ConstrainedHalfedges[ar]
	iar := m.IgnoredForPlanting[ar]

	m.Link(h, hbl)
	m.Link(opp, har)
	m.Link(ar, bl)

	m.ConstrainedHalfedges[h] = cbl
	m.IgnoredForPlanting[h] = ibl
	m.ConstrainedHalfedges[opp] = car
	m.IgnoredForPlanting[opp] = iar

	m.RecomputeCircle(halfedge.TriangleOf(h))
	m.RecomputeCircle(halfedge.TriangleOf(opp))

	return ar
}

func crossesConstraint(k geomkernel.Kernel, m *halfedge.Mesh, h, u, v int) bool {
	ua, va := m.EdgeVertices(h)
	if isConstraintEdge(ua, va, u, v) {
		return false
	}
	return geomkernel.SegmentsProperlyIntersect(k, m.Positions[u], m.Positions[v], m.Positions[ua], m.Positions[va])
}
