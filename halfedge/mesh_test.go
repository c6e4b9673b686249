package halfedge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/triangulate/geomkernel"
	"github.com/halfmesh/triangulate/types"
)

func newTestMesh() *Mesh {
	positions := []types.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: 1, Y: 1},
	}
	return New(positions, geomkernel.Float64Kernel{})
}

func TestNextPrevHalfedge(t *testing.T) {
	require.Equal(t, 1, NextHalfedge(0))
	require.Equal(t, 2, NextHalfedge(1))
	require.Equal(t, 0, NextHalfedge(2))

	require.Equal(t, 2, PrevHalfedge(0))
	require.Equal(t, 0, PrevHalfedge(1))
	require.Equal(t, 1, PrevHalfedge(2))
}

func TestAddTriangleComputesCircumcircle(t *testing.T) {
	m := newTestMesh()
	tri := m.AddTriangle(0, 1, 2, NilHalfedge, NilHalfedge, NilHalfedge)

	require.Equal(t, 1, m.TriangleCount())
	require.Equal(t, tri, 0)
	require.NotZero(t, m.Circles[tri].Radius2)
}

func TestLinkSetsBothDirections(t *testing.T) {
	m := newTestMesh()
	t1 := m.AddTriangle(0, 1, 2, NilHalfedge, NilHalfedge, NilHalfedge)
	t2 := m.AddTriangle(1, 3, 2, NilHalfedge, NilHalfedge, NilHalfedge)

	m.Link(Corner0(t1)+1, Corner0(t2)+2)

	require.Equal(t, Corner0(t2)+2, m.Halfedges[Corner0(t1)+1])
	require.Equal(t, Corner0(t1)+1, m.Halfedges[Corner0(t2)+2])
}

func TestRemoveTrianglePatchesQueues(t *testing.T) {
	m := newTestMesh()
	m.AddTriangle(0, 1, 2, NilHalfedge, NilHalfedge, NilHalfedge)
	m.AddTriangle(1, 3, 2, NilHalfedge, NilHalfedge, NilHalfedge)
	m.AddTriangle(0, 3, 1, NilHalfedge, NilHalfedge, NilHalfedge)

	queueHalfedges := []int{Corner0(2), Corner0(2) + 1}
	queueTriangles := []int{0, 2}

	patch := m.RemoveTriangle(1)
	patch(queueHalfedges, queueTriangles)

	require.Equal(t, 2, m.TriangleCount())
	require.Equal(t, Corner0(1), queueHalfedges[0])
	require.Equal(t, []int{0, 1}, queueTriangles)
}
