// Package preprocess implements the optional coordinate-conditioning step
// named in SPEC_FULL.md's expanded Settings: centering input points on their
// center of mass, or rotating them onto their principal axes, before they
// reach DelaunayBuilder. Conditioning the input this way keeps the
// magnitudes that Float64Kernel's adaptive filters see small and centered,
// which the predicate's epsilon scales with (see geomkernel.Float64Kernel).
// Grounded on gonum.org/v1/gonum/mat and gonum.org/v1/gonum/stat, following
// the numerical-linear-algebra idiom viamrobotics-rdk uses gonum for.
package preprocess

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/halfmesh/triangulate/types"
)

// Mode selects a conditioning strategy.
type Mode int

const (
	// None leaves positions untouched.
	None Mode = iota
	// COM translates positions so their center of mass is the origin.
	COM
	// PCA translates to the center of mass and rotates onto the principal
	// axes of the point covariance, so the first axis carries maximal spread.
	PCA
)

// Result carries the transform applied, so callers can map Steiner points
// or query results back into the caller's original coordinate frame.
type Result struct {
	Positions []types.Point
	Center    types.Point
	Rotation  [2][2]float64 // identity for COM/None
}

// Apply conditions positions per mode, returning the transformed copy and
// the inverse-mapping data in Result.
func Apply(mode Mode, positions []types.Point) Result {
	cx, cy := centerOfMass(positions)
	center := types.Point{X: cx, Y: cy}

	switch mode {
	case None:
		return Result{Positions: positions, Center: types.Point{}, Rotation: identity()}

	case COM:
		out := make([]types.Point, len(positions))
		for i, p := range positions {
			out[i] = types.Point{X: p.X - cx, Y: p.Y - cy}
		}
		return Result{Positions: out, Center: center, Rotation: identity()}

	case PCA:
		rot := principalRotation(positions, cx, cy)
		out := make([]types.Point, len(positions))
		for i, p := range positions {
			dx, dy := p.X-cx, p.Y-cy
			out[i] = types.Point{
				X: rot[0][0]*dx + rot[0][1]*dy,
				Y: rot[1][0]*dx + rot[1][1]*dy,
			}
		}
		return Result{Positions: out, Center: center, Rotation: rot}

	default:
		return Result{Positions: positions, Center: types.Point{}, Rotation: identity()}
	}
}

// Invert maps a point from the conditioned frame back to the original
// input frame, the inverse of the transform Apply produced in r.
func (r Result) Invert(p types.Point) types.Point {
	// rotation matrices here are orthonormal, so the inverse is the transpose.
	x := r.Rotation[0][0]*p.X + r.Rotation[1][0]*p.Y
	y := r.Rotation[0][1]*p.X + r.Rotation[1][1]*p.Y
	return types.Point{X: x + r.Center.X, Y: y + r.Center.Y}
}

func identity() [2][2]float64 {
	return [2][2]float64{{1, 0}, {0, 1}}
}

func centerOfMass(positions []types.Point) (float64, float64) {
	xs := make([]float64, len(positions))
	ys := make([]float64, len(positions))
	for i, p := range positions {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return stat.Mean(xs, nil), stat.Mean(ys, nil)
}

// principalRotation returns the 2x2 rotation whose rows are the unit
// eigenvectors of the centered point covariance, sorted by descending
// eigenvalue so the first row carries maximal variance.
func principalRotation(positions []types.Point, cx, cy float64) [2][2]float64 {
	n := len(positions)
	data := make([]float64, n*2)
	for i, p := range positions {
		data[2*i] = p.X - cx
		data[2*i+1] = p.Y - cy
	}
	points := mat.NewDense(n, 2, data)

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, points, nil)

	var eig mat.EigenSym
	ok := eig.Factorize(&cov, true)
	if !ok {
		return identity()
	}

	var vectors mat.Dense
	eig.VectorsTo(&vectors)
	values := eig.Values(nil)

	// EigenSym returns ascending eigenvalues; we want the largest-variance
	// axis first.
	i0, i1 := 0, 1
	if values[0] < values[1] {
		i0, i1 = 1, 0
	}

	return [2][2]float64{
		{vectors.At(0, i0), vectors.At(1, i0)},
		{vectors.At(0, i1), vectors.At(1, i1)},
	}
}
