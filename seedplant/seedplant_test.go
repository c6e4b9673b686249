package seedplant

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/triangulate/geomkernel"
	"github.com/halfmesh/triangulate/halfedge"
	"github.com/halfmesh/triangulate/types"
)

// buildIslandMesh constructs a deliberately non-geometric mesh: T0-T1-T2 form
// a chain reachable from an unconstrained boundary edge (the exterior), with
// T1-T2 joined by a constrained, non-ignored edge (an interior constrained
// loop wall). T3 is a disconnected triangle fully walled off by a constrained
// boundary, standing in for a legitimately kept region. Positions are
// arbitrary; only the half-edge topology and flags are under test.
func buildIslandMesh() *halfedge.Mesh {
	positions := make([]types.Point, 8)
	for i := range positions {
		positions[i] = types.Point{X: float64(i), Y: float64(i)}
	}
	m := halfedge.New(positions, geomkernel.Float64Kernel{})

	m.AddTriangle(0, 1, 3, halfedge.NilHalfedge, halfedge.NilHalfedge, halfedge.NilHalfedge) // T0
	m.AddTriangle(3, 1, 4, halfedge.NilHalfedge, halfedge.NilHalfedge, halfedge.NilHalfedge) // T1
	m.AddTriangle(4, 1, 2, halfedge.NilHalfedge, halfedge.NilHalfedge, halfedge.NilHalfedge) // T2
	m.AddTriangle(5, 6, 7, halfedge.NilHalfedge, halfedge.NilHalfedge, halfedge.NilHalfedge) // T3, isolated

	m.Link(1, 3) // T0.h1 (1->3) <-> T1.h0 (3->1): unconstrained, flood travels

	m.Link(4, 6) // T1.h1 (1->4) <-> T2.h0 (4->1): constrained island wall
	m.ConstrainedHalfedges[4] = true
	m.ConstrainedHalfedges[6] = true

	// T2's remaining boundary edges are constrained so RestoreBoundary never
	// seeds directly from them.
	m.ConstrainedHalfedges[7] = true
	m.ConstrainedHalfedges[8] = true

	// T3 is fully walled off by a constrained boundary on every side, so it
	// survives RestoreBoundary untouched.
	m.ConstrainedHalfedges[9] = true
	m.ConstrainedHalfedges[10] = true
	m.ConstrainedHalfedges[11] = true

	return m
}

func TestPlantAutoHolesAndBoundaryFloodsFirstLevelIsland(t *testing.T) {
	m := buildIslandMesh()

	p := NewPlanter(geomkernel.Float64Kernel{})
	p.Plant(m, Mode{RestoreBoundary: true, AutoHolesAndBoundary: true})

	require.Equal(t, 1, m.TriangleCount(), "only the walled-off T3 should survive")
	require.Equal(t, []int{5, 6, 7}, m.Triangles)
}

// TestPlantRestoreBoundaryAloneLeavesIslandInPlace confirms the island is
// only removed when AutoHolesAndBoundary is set: RestoreBoundary alone
// removes the exterior chain (T0, T1) but has no mechanism to reach the
// interior constrained island (T2), since T2 exposes no unconstrained
// boundary half-edge of its own.
func TestPlantRestoreBoundaryAloneLeavesIslandInPlace(t *testing.T) {
	m := buildIslandMesh()

	p := NewPlanter(geomkernel.Float64Kernel{})
	p.Plant(m, Mode{RestoreBoundary: true})

	require.Equal(t, 2, m.TriangleCount(), "T2 (island) and T3 (walled off) should both survive")
}

func TestPlantHoleSeedRemovesContainingTriangle(t *testing.T) {
	positions := []types.Point{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 4},
		{X: 0, Y: 4},
	}
	m := halfedge.New(positions, geomkernel.Float64Kernel{})
	m.AddTriangle(0, 1, 2, halfedge.NilHalfedge, halfedge.NilHalfedge, halfedge.NilHalfedge)
	m.AddTriangle(0, 2, 3, halfedge.NilHalfedge, halfedge.NilHalfedge, halfedge.NilHalfedge)
	m.Link(2, 3)
	m.ConstrainedHalfedges[2] = true
	m.ConstrainedHalfedges[3] = true

	p := NewPlanter(geomkernel.Float64Kernel{})
	p.Plant(m, Mode{HoleSeeds: []types.Point{{X: 2, Y: 1}}})

	require.Equal(t, 1, m.TriangleCount())
}
