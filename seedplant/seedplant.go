// Package seedplant removes triangles belonging to "planted" regions — holes
// seeded by an interior point, or the exterior of an unconstrained boundary —
// via BFS flood fill across non-constrained, non-boundary half-edges, then
// compacts orphaned Steiner vertices. Adapted from cdt's PruneByFloodFill and
// RemoveCover, generalized to the packed halfedge.Mesh representation and to
// the spec's three combinable seeding modes.
package seedplant

import (
	"github.com/halfmesh/triangulate/geomkernel"
	"github.com/halfmesh/triangulate/halfedge"
	"github.com/halfmesh/triangulate/types"
)

// Mode selects which seeding strategies run; modes combine freely.
type Mode struct {
	HoleSeeds       []types.Point // each locates its containing triangle
	RestoreBoundary bool          // every unconstrained (or ignored) boundary edge seeds
	AutoHolesAndBoundary bool     // derive outer boundary + flood first-level constrained islands
}

// Planter removes seeded regions from a mesh.
type Planter struct {
	kernel geomkernel.Kernel
}

// NewPlanter returns a Planter evaluating containment with kernel.
func NewPlanter(kernel geomkernel.Kernel) *Planter {
	return &Planter{kernel: kernel}
}

// Plant removes every triangle reachable from a seed under the configured
// Mode, then compacts orphan Steiner vertices (id >= InitialPointsCount no
// longer referenced by any surviving triangle).
func (p *Planter) Plant(m *halfedge.Mesh, mode Mode) {
	visited := make([]bool, m.TriangleCount())

	for _, seed := range mode.HoleSeeds {
		if t := p.locateTriangle(m, seed); t >= 0 {
			p.floodFill(m, t, visited)
		}
	}

	if mode.RestoreBoundary || mode.AutoHolesAndBoundary {
		for h, opp := range m.Halfedges {
			if opp != halfedge.NilHalfedge {
				continue
			}
			if m.ConstrainedHalfedges[h] && !m.IgnoredForPlanting[h] {
				continue
			}
			t := halfedge.TriangleOf(h)
			if !visited[t] {
				p.floodFill(m, t, visited)
			}
		}
	}

	if mode.AutoHolesAndBoundary {
		p.floodFirstLevelIslands(m, visited)
	}

	p.remove(m, visited)
	p.compactOrphans(m)
}

// locateTriangle performs a linear scan for the triangle containing seed,
// per SPEC_FULL.md §4.5's "linear scan via point_in_triangle".
func (p *Planter) locateTriangle(m *halfedge.Mesh, seed types.Point) int {
	for t := 0; t < m.TriangleCount(); t++ {
		h := halfedge.Corner0(t)
		a := m.Point(h)
		b := m.Point(halfedge.NextHalfedge(h))
		c := m.Point(halfedge.PrevHalfedge(h))
		if geomkernel.PointInTriangle(p.kernel, seed, a, b, c) {
			return t
		}
	}
	return -1
}

// floodFill marks every triangle reachable from t by crossing a half-edge
// that is neither constrained (unless ignored) nor a mesh boundary.
func (p *Planter) floodFill(m *halfedge.Mesh, t int, visited []bool) {
	if visited[t] {
		return
	}
	queue := []int{t}
	visited[t] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for s := 0; s < 3; s++ {
			h := halfedge.Corner0(cur) + s
			if m.ConstrainedHalfedges[h] && !m.IgnoredForPlanting[h] {
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
			visited[nt] = true
			queue = append(queue, nt)
		}
	}
}

// floodFirstLevelIslands seeds a flood from the unvisited side of any
// constrained edge whose opposite side has already been removed by the
// exterior flood above: a hole loop drawn directly against already-removed
// territory is itself removed, without requiring an explicit hole seed
// point. Nested holes-within-holes (second-level islands and beyond) are
// out of scope for this automatic pass and still need an explicit seed.
func (p *Planter) floodFirstLevelIslands(m *halfedge.Mesh, visited []bool) {
	for h := range m.Triangles {
		if !m.ConstrainedHalfedges[h] || m.IgnoredForPlanting[h] {
			continue
		}
		opp := m.Halfedges[h]
		if opp == halfedge.NilHalfedge {
			continue
		}
		t := halfedge.TriangleOf(h)
		ot := halfedge.TriangleOf(opp)
		if visited[ot] && !visited[t] {
			p.floodFill(m, t, visited)
		}
	}
}

// remove deletes every triangle marked visited (bad), remapping triangle ids
// via a prefix sum over the survivors and patching Halfedges/Constrained
// references and boundary edges left dangling by a removed neighbor.
func (p *Planter) remove(m *halfedge.Mesh, bad []bool) {
	n := len(bad)
	newIndex := make([]int, n)
	kept := 0
	for t := 0; t < n; t++ {
		if bad[t] {
			newIndex[t] = -1
			continue
		}
		newIndex[t] = kept
		kept++
	}

	newTriangles := make([]int, 0, kept*3)
	newHalfedges := make([]int, 0, kept*3)
	newConstrained := make([]bool, 0, kept*3)
	newIgnored := make([]bool, 0, kept*3)
	newCircles := make([]geomkernel.Circle, 0, kept)

	for t := 0; t < n; t++ {
		if bad[t] {
			continue
		}
		for s := 0; s < 3; s++ {
			h := halfedge.Corner0(t) + s
			newTriangles = append(newTriangles, m.Triangles[h])
			newConstrained = append(newConstrained, m.ConstrainedHalfedges[h])
			newIgnored = append(newIgnored, m.IgnoredForPlanting[h])

			opp := m.Halfedges[h]
			if opp == halfedge.NilHalfedge {
				newHalfedges = append(newHalfedges, halfedge.NilHalfedge)
				continue
			}
			oppTri := halfedge.TriangleOf(opp)
			if bad[oppTri] {
				newHalfedges = append(newHalfedges, halfedge.NilHalfedge)
				continue
			}
			oppCorner := opp % 3
			newHalfedges = append(newHalfedges, 3*newIndex[oppTri]+oppCorner)
		}
		newCircles = append(newCircles, m.Circles[t])
	}

	m.Triangles = newTriangles
	m.Halfedges = newHalfedges
	m.ConstrainedHalfedges = newConstrained
	m.IgnoredForPlanting = newIgnored
	m.Circles = newCircles
}

// compactOrphans deletes Steiner vertices (id >= InitialPointsCount) that no
// surviving triangle references, renumbering all remaining vertex references
// by prefix sum.
func (p *Planter) compactOrphans(m *halfedge.Mesh) {
	referenced := make([]bool, len(m.Positions))
	for _, v := range m.Triangles {
		referenced[v] = true
	}

	remap := make([]int, len(m.Positions))
	newPositions := make([]types.Point, 0, len(m.Positions))
	for v := range m.Positions {
		if v >= m.InitialPointsCount && !referenced[v] {
			remap[v] = -1
			continue
		}
		remap[v] = len(newPositions)
		newPositions = append(newPositions, m.Positions[v])
	}

	for h, v := range m.Triangles {
		m.Triangles[h] = remap[v]
	}
	m.Positions = newPositions
}
