// Package refine implements Ruppert's algorithm: split encroached
// constrained edges and bad-quality triangles until every constrained edge
// is unencroached and every triangle meets the configured area and angle
// thresholds. Steiner points on constrained edges use Shewchuk's
// concentric-shells rule to guarantee termination; interior/boundary
// Steiner points are inserted via circumcircle-containment cavity
// retriangulation. Adapted from cdt's legalize/insert-point machinery,
// generalized to the packed halfedge.Mesh representation.
package refine

import (
	"math"

	"github.com/halfmesh/triangulate/geomkernel"
	"github.com/halfmesh/triangulate/halfedge"
	"github.com/halfmesh/triangulate/status"
	"github.com/halfmesh/triangulate/types"
)

// Settings configures Ruppert refinement.
type Settings struct {
	Area2Threshold           float64 // 2*area upper bound for an acceptable triangle
	AngleThreshold           float64 // radians; smallest inner angle lower bound
	ConcentricShellsParameter float64 // D in the concentric-shells splitting rule
	ConstrainBoundary        bool    // treat every boundary half-edge as constrained
}

// Refiner runs Ruppert refinement over a constrained Delaunay mesh.
type Refiner struct {
	kernel geomkernel.Kernel
	settings Settings
}

// NewRefiner returns a Refiner. kernel.SupportsSteinerPoints() must be true;
// callers should check this before calling Refine and surface
// ErrRefinementUnsupported otherwise (Refine also re-checks defensively).
func NewRefiner(kernel geomkernel.Kernel, settings Settings) *Refiner {
	return &Refiner{kernel: kernel, settings: settings}
}

// Refine splits the mesh in place until it satisfies the configured area and
// angle thresholds, or returns ErrRefinementUnsupported if the kernel cannot
// represent arbitrary Steiner points.
func (r *Refiner) Refine(m *halfedge.Mesh) status.Status {
	if !r.kernel.SupportsSteinerPoints() {
		return status.OK.Set(status.ErrRefinementUnsupported)
	}

	if r.settings.ConstrainBoundary {
		for h, opp := range m.Halfedges {
			if opp == halfedge.NilHalfedge {
				m.ConstrainedHalfedges[h] = true
			}
		}
	}

	var edgeQueue []int
	for h := range m.Triangles {
		if m.ConstrainedHalfedges[h] && r.isEncroached(m, h) {
			edgeQueue = append(edgeQueue, h)
		}
	}

	r.drainEdgeQueue(m, &edgeQueue)

	var triQueue []int
	for t := 0; t < m.TriangleCount(); t++ {
		if r.isBad(m, t) {
			triQueue = append(triQueue, t)
		}
	}

	for len(triQueue) > 0 {
		t := triQueue[0]
		triQueue = triQueue[1:]
		if t >= m.TriangleCount() {
			continue
		}

		center := m.Circles[t].Center
		encroaching := r.encroachedByPoint(m, center)
		if len(encroaching) > 0 {
			edgeQueue = append(edgeQueue, encroaching...)
			r.drainEdgeQueue(m, &edgeQueue)
			if r.isBad(m, t) {
				triQueue = append(triQueue, t)
			}
			continue
		}

		patch := r.insertStarPolygon(m, t, center)
		patch(nil, triQueue)

		for nt := 0; nt < m.TriangleCount(); nt++ {
			if r.isBad(m, nt) {
				triQueue = append(triQueue, nt)
			}
		}
	}

	return status.OK
}

func (r *Refiner) drainEdgeQueue(m *halfedge.Mesh, queue *[]int) {
	for len(*queue) > 0 {
		h := (*queue)[0]
		*queue = (*queue)[1:]
		if h >= len(m.Triangles) || !m.ConstrainedHalfedges[h] {
			continue
		}
		if !r.isEncroached(m, h) {
			continue
		}
		newEdges := r.splitConstrainedEdge(m, h)
		*queue = append(*queue, newEdges...)
	}
}

// isEncroached reports whether h's diametral disk contains the opposite
// vertex of either incident triangle: (p0-p2)·(p1-p2) <= 0.
func (r *Refiner) isEncroached(m *halfedge.Mesh, h int) bool {
	u, v := m.EdgeVertices(h)
	p0 := m.Positions[u]
	p1 := m.Positions[v]

	check := func(opp int) bool {
		if opp == halfedge.NilHalfedge {
			return false
		}
		p2 := m.Point(halfedge.PrevHalfedge(opp))
		dot := (p0.X-p2.X)*(p1.X-p2.X) + (p0.Y-p2.Y)*(p1.Y-p2.Y)
		return dot <= 0
	}

	return check(h) || check(m.Halfedges[h])
}

// isBad reports whether triangle t's area exceeds Area2Threshold or its
// smallest inner angle is below AngleThreshold.
func (r *Refiner) isBad(m *halfedge.Mesh, t int) bool {
	h := halfedge.Corner0(t)
	a := m.Point(h)
	b := m.Point(halfedge.NextHalfedge(h))
	c := m.Point(halfedge.PrevHalfedge(h))

	area2 := math.Abs((b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X))
	if r.settings.Area2Threshold > 0 && area2 > r.settings.Area2Threshold {
		return true
	}

	if r.settings.AngleThreshold <= 0 {
		return false
	}
	return smallestAngle(a, b, c) < r.settings.AngleThreshold
}

func smallestAngle(a, b, c types.Point) float64 {
	angle := func(p, q, s types.Point) float64 {
		ux, uy := q.X-p.X, q.Y-p.Y
		vx, vy := s.X-p.X, s.Y-p.Y
		dot := ux*vx + uy*vy
		cross := ux*vy - uy*vx
		return math.Abs(math.Atan2(cross, dot))
	}
	aa := angle(a, b, c)
	ab := angle(b, c, a)
	ac := angle(c, a, b)
	return math.Min(aa, math.Min(ab, ac))
}

// encroachedByPoint returns every constrained half-edge whose diametral
// disk would contain p, used to defer a circumcenter insertion that would
// otherwise encroach a constraint.
func (r *Refiner) encroachedByPoint(m *halfedge.Mesh, p types.Point) []int {
	var out []int
	for h := range m.Triangles {
		if !m.ConstrainedHalfedges[h] {
			continue
		}
		u, v := m.EdgeVertices(h)
		p0, p1 := m.Positions[u], m.Positions[v]
		dot := (p0.X-p.X)*(p1.X-p.X) + (p0.Y-p.Y)*(p1.Y-p.Y)
		if dot <= 0 {
			out = append(out, h)
		}
	}
	return out
}

// splitConstrainedEdge inserts a Steiner point on half-edge h (midpoint if
// both endpoints share input/Steiner status, otherwise a concentric-shell
// point per Shewchuk's termination argument) and returns the two new
// subsegment half-edges for re-encroachment checking.
func (r *Refiner) splitConstrainedEdge(m *halfedge.Mesh, h int) []int {
	u, v := m.EdgeVertices(h)
	a, b := m.Positions[u], m.Positions[v]

	uIsInput := u < m.InitialPointsCount
	vIsInput := v < m.InitialPointsCount

	var split types.Point
	if uIsInput == vIsInput {
		split = geomkernel.Midpoint(a, b)
	} else {
		d := math.Hypot(b.X-a.X, b.Y-a.Y)
		dShell := r.settings.ConcentricShellsParameter
		if dShell <= 0 {
			dShell = d / 8
		}
		k := math.Round(math.Log2(d / (2 * dShell)))
		alpha := dShell / d * math.Pow(2, k)
		if alpha > 1 {
			alpha = 0.5
		}
		if uIsInput {
			split = types.Point{X: a.X + alpha*(b.X-a.X), Y: a.Y + alpha*(b.Y-a.Y)}
		} else {
			split = types.Point{X: b.X + alpha*(a.X-b.X), Y: b.Y + alpha*(a.Y-b.Y)}
		}
	}

	wasIgnored := m.IgnoredForPlanting[h]
	t1 := halfedge.TriangleOf(h)
	opp := m.Halfedges[h]
	t2 := -1
	oppCorner := -1
	if opp != halfedge.NilHalfedge {
		t2 = halfedge.TriangleOf(opp)
		oppCorner = opp % 3
	}

	newID := len(m.Positions)
	m.Positions = append(m.Positions, split)

	h1, h2, patch1 := r.splitTriangleAtEdge(m, t1, h, newID)
	m.ConstrainedHalfedges[h1] = true
	m.ConstrainedHalfedges[h2] = true
	m.IgnoredForPlanting[h1] = wasIgnored
	m.IgnoredForPlanting[h2] = wasIgnored

	result := []int{h1, h2}

	if t2 != -1 {
		// t1's removal inside splitTriangleAtEdge shifts every triangle id
		// above it down by one; t2 must be remapped through the same patch
		// before it's used to index the mesh again.
		tids := []int{t2}
		patch1(nil, tids)
		t2 = tids[0]

		oppH := 3*t2 + oppCorner
		g1, g2, patch2 := r.splitTriangleAtEdge(m, t2, oppH, newID)

		// The second RemoveTriangle (inside this splitTriangleAtEdge call)
		// shifts triangle ids again, which can invalidate h1/h2 from the
		// first split the same way t2/oppH were invalidated above.
		patch2(result, nil)
		h1, h2 = result[0], result[1]

		m.Link(h1, g2)
		m.Link(h2, g1)
	}

	return result
}

// splitTriangleAtEdge replaces triangle t (whose edge h is being split at
// newVertex) with two triangles sharing newVertex, returning the two new
// half-edges that lie along the original edge's line, in (toward-u,
// toward-v) order, plus the PatchFunc from removing t so the caller can
// remap any other triangle/half-edge ids it is still holding.
func (r *Refiner) splitTriangleAtEdge(m *halfedge.Mesh, t, h, newVertex int) (int, int, halfedge.PatchFunc) {
	u, v := m.EdgeVertices(h)
	apex := m.Triangles[halfedge.PrevHalfedge(h)]
	apexFromU := m.Halfedges[halfedge.NextHalfedge(h)]
	apexFromV := m.Halfedges[halfedge.PrevHalfedge(h)]

	tA := m.AddTriangle(u, newVertex, apex, halfedge.NilHalfedge, halfedge.NilHalfedge, apexFromV)
	tB := m.AddTriangle(newVertex, v, apex, halfedge.NilHalfedge, apexFromU, halfedge.NilHalfedge)
	m.Link(3*tA+1, 3*tB+2)

	h1, h2 := 3*tA, 3*tB
	patch := m.RemoveTriangle(t)
	ids := []int{h1, h2}
	patch(ids, nil)

	return ids[0], ids[1], patch
}

// insertStarPolygon retriangulates the cavity of triangles whose
// circumcircle contains p (found by BFS from seed t, crossing only
// non-constrained edges), connecting every boundary vertex of the cavity to
// p. Returns a PatchFunc for the caller's outstanding work queues.
func (r *Refiner) insertStarPolygon(m *halfedge.Mesh, seed int, p types.Point) halfedge.PatchFunc {
	visited := map[int]bool{seed: true}
	queue := []int{seed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for s := 0; s < 3; s++ {
			h := halfedge.Corner0(cur) + s
			if m.ConstrainedHalfedges[h] {
				continue
			}
			opp := m.Halfedges[h]
			if opp == halfedge.NilHalfedge {
				continue
			}
			nt := halfedge.TriangleOf(opp)
			if visited[nt] {
				continue
			}
			c := m.Circles[nt]
			if geomkernel.SquaredDistance(p, c.Center) >= c.Radius2 {
				continue
			}
			visited[nt] = true
			queue = append(queue, nt)
		}
	}

	type boundaryEdge struct{ u, v, opp int }
	var boundary []boundaryEdge
	for t := range visited {
		for s := 0; s < 3; s++ {
			h := halfedge.Corner0(t) + s
			opp := m.Halfedges[h]
			if opp != halfedge.NilHalfedge && visited[halfedge.TriangleOf(opp)] {
				continue
			}
			u, v := m.EdgeVertices(h)
			boundary = append(boundary, boundaryEdge{u, v, opp})
		}
	}

	removeList := make([]int, 0, len(visited))
	for t := range visited {
		removeList = append(removeList, t)
	}

	newVertex := len(m.Positions)
	m.Positions = append(m.Positions, p)

	var patch halfedge.PatchFunc
	for {
		// Remove highest-indexed triangle first so lower indices in
		// removeList/boundary stay valid until their own turn.
		hi := -1
		for i, t := range removeList {
			if t > hi {
				hi = t
			}
			_ = i
		}
		if hi == -1 {
			break
		}
		p := m.RemoveTriangle(hi)
		for i := range removeList {
			if removeList[i] == hi {
				removeList[i] = -1
			} else if removeList[i] > hi {
				removeList[i]--
			}
		}
		for i := range boundary {
			if boundary[i].opp >= 0 {
				boundary[i].opp = shiftHalfedge(boundary[i].opp, hi)
			}
		}
		patch = chainPatch(patch, p)

		allGone := true
		for _, t := range removeList {
			if t != -1 {
				allGone = false
				break
			}
		}
		if allGone {
			break
		}
	}

	// Order the boundary edges into a chain, each edge's v being the next
	// edge's u, so consecutive fan triangles share an edge at newVertex.
	for i := 0; i+1 < len(boundary); i++ {
		for j := i + 1; j < len(boundary); j++ {
			if boundary[j].u == boundary[i].v {
				boundary[i+1], boundary[j] = boundary[j], boundary[i+1]
				break
			}
		}
	}

	for _, be := range boundary {
		t := m.AddTriangle(be.u, be.v, newVertex, be.opp, halfedge.NilHalfedge, halfedge.NilHalfedge)
		_ = t
	}

	// Link the newly created fan triangles to each other around newVertex.
	fanStart := len(m.Triangles)/3 - len(boundary)
	for i := range boundary {
		cur := fanStart + i
		next := fanStart + (i+1)%len(boundary)
		m.Link(3*cur+1, 3*next+2)
	}

	if patch == nil {
		patch = func(halfedgeIDs []int, triangleIDs []int) {}
	}
	return patch
}

func shiftHalfedge(h, removedTriangle int) int {
	if h == halfedge.NilHalfedge {
		return halfedge.NilHalfedge
	}
	if halfedge.TriangleOf(h) > removedTriangle {
		return h - 3
	}
	return h
}

func chainPatch(a, b halfedge.PatchFunc) halfedge.PatchFunc {
	if a == nil {
		return b
	}
	return func(halfedgeIDs []int, triangleIDs []int) {
		a(halfedgeIDs, triangleIDs)
		b(halfedgeIDs, triangleIDs)
	}
}
