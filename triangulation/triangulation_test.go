package triangulation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/triangulate/types"
)

func square() []types.Point {
	return []types.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}
}

func TestRunPlainDelaunay(t *testing.T) {
	result := Run(square(), nil, nil, nil, Settings{ValidateInput: true})

	require.False(t, result.Status.IsError())
	require.Len(t, result.Triangles, 6)
}

func TestRunRejectsTooFewPoints(t *testing.T) {
	result := Run([]types.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, nil, nil, nil, Settings{ValidateInput: true})

	require.True(t, result.Status.IsError())
}

func TestRunWithConstraints(t *testing.T) {
	pts := square()
	constraints := []int{0, 2} // a diagonal

	result := Run(pts, constraints, nil, nil, Settings{ValidateInput: true})

	require.False(t, result.Status.IsError())

	found := false
	for h, v := range result.Triangles {
		next := h - h%3
		if h%3 == 2 {
			next = h - 2
		} else {
			next = h + 1
		}
		u2 := result.Triangles[next]
		if (v == 0 && u2 == 2) || (v == 2 && u2 == 0) {
			if result.ConstrainedHalfedges[h] {
				found = true
			}
		}
	}
	require.True(t, found, "expected the diagonal constraint to be present and marked")
}

func TestGetDiagnostics(t *testing.T) {
	result := Run(square(), nil, nil, nil, Settings{ValidateInput: true})
	diag := GetDiagnostics(result)

	require.Equal(t, 4, diag.NumVertices)
	require.Equal(t, 2, diag.NumTriangles)
}
