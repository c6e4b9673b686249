package refine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/triangulate/geomkernel"
	"github.com/halfmesh/triangulate/halfedge"
	"github.com/halfmesh/triangulate/types"
)

// assertMeshConsistent checks the two structural invariants splitting must
// preserve: every linked half-edge pair points back at each other, and a
// linked pair shares the same edge in opposite directions.
func assertMeshConsistent(t *testing.T, m *halfedge.Mesh) {
	t.Helper()
	for h, opp := range m.Halfedges {
		if opp == halfedge.NilHalfedge {
			continue
		}
		require.Equal(t, h, m.Halfedges[opp], "halfedge %d and its twin %d don't point back at each other", h, opp)
		u, v := m.EdgeVertices(h)
		v2, u2 := m.EdgeVertices(opp)
		require.Equal(t, u, u2, "halfedge %d/%d should share an edge", h, opp)
		require.Equal(t, v, v2, "halfedge %d/%d should share an edge", h, opp)
	}
}

// TestSplitConstrainedEdgeRemapsFarTriangle builds two triangles sharing a
// constrained diagonal where the far triangle's id is greater than the near
// triangle's id, so the first internal RemoveTriangle shifts it. This is the
// interior-constrained-edge split case: splitConstrainedEdge must remap that
// id (and the near triangle's own new half-edges, which shift again when the
// far triangle is removed) before using them.
func TestSplitConstrainedEdgeRemapsFarTriangle(t *testing.T) {
	positions := []types.Point{
		{X: 0, Y: 0}, // A
		{X: 2, Y: 0}, // B
		{X: 2, Y: 2}, // C
		{X: 0, Y: 2}, // D
	}
	m := halfedge.New(positions, geomkernel.Float64Kernel{})

	m.AddTriangle(0, 1, 2, halfedge.NilHalfedge, halfedge.NilHalfedge, halfedge.NilHalfedge) // t0: A,B,C
	m.AddTriangle(0, 2, 3, halfedge.NilHalfedge, halfedge.NilHalfedge, halfedge.NilHalfedge) // t1: A,C,D
	m.Link(2, 3)                                                                             // shared diagonal A-C
	m.ConstrainedHalfedges[2] = true
	m.ConstrainedHalfedges[3] = true

	r := NewRefiner(geomkernel.Float64Kernel{}, Settings{})
	newEdges := r.splitConstrainedEdge(m, 2)

	require.Len(t, newEdges, 2)
	require.Equal(t, 4, m.TriangleCount())
	require.Len(t, m.Positions, 5)
	require.Equal(t, types.Point{X: 1, Y: 1}, m.Positions[4])

	for _, h := range newEdges {
		require.True(t, m.ConstrainedHalfedges[h])
		u, v := m.EdgeVertices(h)
		require.True(t, u == 4 || v == 4, "split half-edge %d should touch the new Steiner vertex", h)
	}

	assertMeshConsistent(t, m)
}

// TestSplitConstrainedEdgeBoundaryEdge covers the opp == NilHalfedge branch:
// splitting a constrained edge that has no far triangle.
func TestSplitConstrainedEdgeBoundaryEdge(t *testing.T) {
	positions := []types.Point{
		{X: 0, Y: 0},
		{X: 2, Y: 0},
		{X: 1, Y: 2},
	}
	m := halfedge.New(positions, geomkernel.Float64Kernel{})
	m.AddTriangle(0, 1, 2, halfedge.NilHalfedge, halfedge.NilHalfedge, halfedge.NilHalfedge)
	m.ConstrainedHalfedges[0] = true

	r := NewRefiner(geomkernel.Float64Kernel{}, Settings{})
	newEdges := r.splitConstrainedEdge(m, 0)

	require.Len(t, newEdges, 2)
	require.Equal(t, 2, m.TriangleCount())
	assertMeshConsistent(t, m)
}
