// Package delaunay builds an unconstrained Delaunay triangulation of a
// point set via the sweep-hull algorithm (the "Delaunator" family): pick a
// well-centered seed triangle, sort the remaining points by distance to its
// circumcenter, and add each point to a radially-growing convex hull while
// legalizing new edges against the empty-circumcircle property with an
// explicit stack. Adapted from cdt's incremental-insertion builder, but
// restructured around a halfedge.Mesh instead of a neighbor-indexed TriSoup,
// and switched from arbitrary insertion order to the sweep-hull's
// circumcenter-distance order for hull-growth efficiency.
package delaunay

import (
	"math"
	"sort"

	"github.com/halfmesh/triangulate/geomkernel"
	"github.com/halfmesh/triangulate/halfedge"
	"github.com/halfmesh/triangulate/status"
	"github.com/halfmesh/triangulate/types"
)

// Builder runs the sweep-hull Delaunay construction over a fixed point set.
type Builder struct {
	kernel geomkernel.Kernel
}

// NewBuilder returns a Builder that evaluates orientation and in-circle
// predicates with kernel.
func NewBuilder(kernel geomkernel.Kernel) *Builder {
	return &Builder{kernel: kernel}
}

// Build triangulates positions, returning the resulting mesh and a status
// that carries ErrDelaunayDuplicatesOrCollinear when no valid seed triangle
// can be formed.
func (b *Builder) Build(positions []types.Point) (*halfedge.Mesh, status.Status) {
	n := len(positions)
	m := halfedge.New(positions, b.kernel)

	if n < 3 {
		return m, status.OK.Set(status.ErrDelaunayDuplicatesOrCollinear)
	}

	cx, cy := boundingBoxCentroid(positions)
	i0 := nearestTo(positions, types.Point{X: cx, Y: cy}, -1)

	p0 := positions[i0]
	i1 := nearestTo(positions, p0, i0)
	if i1 < 0 {
		return m, status.OK.Set(status.ErrDelaunayDuplicatesOrCollinear)
	}
	p1 := positions[i1]

	i2 := minCircumradiusThird(positions, i0, i1, p0, p1)
	if i2 < 0 {
		return m, status.OK.Set(status.ErrDelaunayDuplicatesOrCollinear)
	}
	p2 := positions[i2]

	if b.kernel.Orient2D(p0, p1, p2) < 0 {
		i1, i2 = i2, i1
		p1, p2 = p2, p1
	}

	center := geomkernel.Circumcenter(p0, p1, p2)

	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i == i0 || i == i1 || i == i2 {
			continue
		}
		order = append(order, i)
	}
	sort.Slice(order, func(a, bIdx int) bool {
		da := geomkernel.SquaredDistance(positions[order[a]], center)
		db := geomkernel.SquaredDistance(positions[order[bIdx]], center)
		return da < db
	})

	hull := newHullList(n, center)
	hull.insertSeed(i0, i1, i2, positions)

	// Seed triangle, oriented to match (i0,i1,i2) CCW order established above.
	t0 := m.AddTriangle(i0, i1, i2, halfedge.NilHalfedge, halfedge.NilHalfedge, halfedge.NilHalfedge)
	hull.hullTri[i0] = 3*t0 + 0
	hull.hullTri[i1] = 3*t0 + 1
	hull.hullTri[i2] = 3*t0 + 2

	stack := make([]int, 0, 32)

	for _, i := range order {
		p := positions[i]

		e := hull.findVisibleEdge(p, positions)

		// Walk forward (toward hullNext) adding triangles while still visible.
		e0 := e
		walk := e0
		for {
			next := hull.hullNext[walk]
			if next == e0 || b.kernel.Orient2D(p, positions[walk], positions[next]) >= 0 {
				break
			}
			t := m.AddTriangle(walk, next, i, hull.hullTri[next], halfedge.NilHalfedge, hull.hullTri[walk])
			hull.hullTri[walk] = 3*t + 2
			stack = b.legalize(m, 3*t+0, hull, stack)
			hull.hullNext[walk] = walk // now interior
			walk = next
		}

		// Walk backward (toward hullPrev) adding triangles while still visible.
		walkBack := hull.hullPrev[e0]
		for {
			prev := hull.hullPrev[walkBack]
			if walkBack == e0 || b.kernel.Orient2D(p, positions[prev], positions[walkBack]) >= 0 {
				break
			}
			t := m.AddTriangle(prev, walkBack, i, hull.hullTri[walkBack], halfedge.NilHalfedge, hull.hullTri[prev])
			hull.hullTri[walkBack] = 3*t + 2
			stack = b.legalize(m, 3*t+0, hull, stack)
			hull.hullPrev[walkBack] = walkBack // now interior
			walkBack = prev
		}

		// Splice i into the hull between walkBack and walk.
		hull.hullNext[walkBack] = i
		hull.hullPrev[i] = walkBack
		hull.hullNext[i] = walk
		hull.hullPrev[walk] = i
		hull.hullTri[i] = hull.hullTri[walk]

		hull.updateHash(walkBack, positions)
		hull.updateHash(i, positions)
	}

	return m, status.OK
}

// legalize flips newly created edge h outward against the empty-circumcircle
// property, using an explicit stack in place of recursion. Adapted from the
// sweep-hull legalize loop; the stack argument is reused across calls to
// avoid per-point allocation.
func (b *Builder) legalize(m *halfedge.Mesh, h int, hull *hullList, stack []int) []int {
	stack = stack[:0]
	a := h

	for {
		opp := m.Halfedges[a]
		if opp == halfedge.NilHalfedge {
			if len(stack) == 0 {
				return stack
			}
			a = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		ar := halfedge.PrevHalfedge(a)
		al := halfedge.NextHalfedge(a)
		bl := halfedge.PrevHalfedge(opp)

		p0 := m.Triangles[ar]
		pr := m.Triangles[a]
		pl := m.Triangles[al]
		p1 := m.Triangles[bl]

		illegal := b.kernel.InCircle(m.Positions[p0], m.Positions[pr], m.Positions[pl], m.Positions[p1]) > 0
		if !illegal {
			if len(stack) == 0 {
				return stack
			}
			a = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		m.Triangles[a] = p1
		m.Triangles[opp] = p0

		hbl := m.Halfedges[bl]
		har := m.Halfedges[ar]

		// A flip on the far side of the hull is rare but requires fixing
		// the hullTri reference that used to point at bl.
		if hbl == halfedge.NilHalfedge {
			hull.retargetHullTri(bl, a)
		}

		m.Link(a, hbl)
		m.Link(opp, har)
		m.Link(ar, bl)

		br := halfedge.NextHalfedge(opp)

		m.RecomputeCircle(halfedge.TriangleOf(a))
		m.RecomputeCircle(halfedge.TriangleOf(opp))

		stack = append(stack, br)
		// continue legalizing from `a`, unchanged, per the Delaunator loop.
	}
}

func boundingBoxCentroid(positions []types.Point) (float64, float64) {
	minX, maxX := positions[0].X, positions[0].X
	minY, maxY := positions[0].Y, positions[0].Y
	for _, p := range positions[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return (minX + maxX) / 2, (minY + maxY) / 2
}

func nearestTo(positions []types.Point, p types.Point, exclude int) int {
	best := -1
	bestD := math.Inf(1)
	for i, q := range positions {
		if i == exclude {
			continue
		}
		d := geomkernel.SquaredDistance(p, q)
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

// minCircumradiusThird returns the index minimizing the circumradius of
// (p0, p1, positions[i]) over all i not equal to i0 or i1, skipping
// collinear candidates. Per spec this replaces picking the third-nearest
// point, which can produce a needle-thin seed triangle.
func minCircumradiusThird(positions []types.Point, i0, i1 int, p0, p1 types.Point) int {
	best := -1
	bestR := math.Inf(1)
	for i, p2 := range positions {
		if i == i0 || i == i1 {
			continue
		}
		r := circumradius(p0, p1, p2)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		if r < bestR {
			bestR = r
			best = i
		}
	}
	return best
}

func circumradius(a, b, c types.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ex := c.X - a.X
	ey := c.Y - a.Y

	bl := dx*dx + dy*dy
	cl := ex*ex + ey*ey
	d := dx*ey - dy*ex

	if d == 0 {
		return math.Inf(1)
	}

	x := (ey*bl - dy*cl) * 0.5 / d
	y := (dx*cl - ex*bl) * 0.5 / d

	return x*x + y*y
}
