// Package geomkernel supplies the exactness-selectable geometric predicates
// shared by the delaunay, constraint, seedplant and refine packages: point
// orientation, in-circle tests, circumcenters and segment intersection.
//
// Two concrete Kernel implementations are provided. Float64Kernel evaluates
// predicates in double precision with an adaptive arbitrary-precision
// fallback, in the style of algorithm/robust. LatticeKernel evaluates the
// same predicates exactly over int64-quantized coordinates using widened
// 128-bit integer arithmetic, trading working-coordinate range for
// byte-for-byte deterministic results across platforms.
package geomkernel

import (
	"math"
	"math/big"

	"github.com/halfmesh/triangulate/types"
)

// Kernel evaluates the geometric predicates a triangulation pipeline needs,
// decoupling the core algorithms from any one notion of numeric exactness.
type Kernel interface {
	// Orient2D returns +1, -1 or 0 for CCW, CW or collinear (a,b,c).
	Orient2D(a, b, c types.Point) int

	// InCircle returns +1 when d is strictly inside the circumcircle of
	// (a,b,c) (assuming a,b,c are CCW), -1 when outside, 0 when cocircular.
	InCircle(a, b, c, d types.Point) int

	// SupportsSteinerPoints reports whether this kernel can place arbitrary
	// new points (midpoints, circumcenters) on its coordinate domain.
	// LatticeKernel returns false: refinement is unsupported on it.
	SupportsSteinerPoints() bool
}

const (
	orientFilter = 1e-15
)

// Float64Kernel evaluates predicates in float64 with an adaptive big.Float
// fallback, adapted from algorithm/robust.Orient2D/InCircle.
type Float64Kernel struct{}

var _ Kernel = Float64Kernel{}

func (Float64Kernel) SupportsSteinerPoints() bool { return true }

func (Float64Kernel) Orient2D(a, b, c types.Point) int {
	ax := b.X - a.X
	ay := b.Y - a.Y
	bx := c.X - a.X
	by := c.Y - a.Y
	det := ax*by - ay*bx

	maxMag := maxAbs(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	eps := maxMag * maxMag * orientFilter
	if eps < orientFilter {
		eps = orientFilter
	}

	switch {
	case det > eps:
		return 1
	case det < -eps:
		return -1
	default:
		return orient2DExact(a, b, c)
	}
}

func orient2DExact(a, b, c types.Point) int {
	ax := bigFloat(b.X)
	ax.Sub(ax, bigFloat(a.X))
	ay := bigFloat(b.Y)
	ay.Sub(ay, bigFloat(a.Y))

	bx := bigFloat(c.X)
	bx.Sub(bx, bigFloat(a.X))
	by := bigFloat(c.Y)
	by.Sub(by, bigFloat(a.Y))

	term1 := bigFloat(0)
	term1.Mul(ax, by)

	term2 := bigFloat(0)
	term2.Mul(ay, bx)

	det := bigFloat(0)
	det.Sub(term1, term2)
	return det.Sign()
}

func (Float64Kernel) InCircle(a, b, c, d types.Point) int {
	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	ad2 := adx*adx + ady*ady
	bd2 := bdx*bdx + bdy*bdy
	cd2 := cdx*cdx + cdy*cdy

	det := ad2*(bdx*cdy-bdy*cdx) -
		bd2*(adx*cdy-ady*cdx) +
		cd2*(adx*bdy-ady*bdx)

	maxMag := maxAbs(adx, ady, bdx, bdy, cdx, cdy)
	eps := math.Pow(maxMag, 3) * orientFilter
	if eps < orientFilter {
		eps = orientFilter
	}

	switch {
	case det > eps:
		return 1
	case det < -eps:
		return -1
	default:
		return inCircleExact(a, b, c, d)
	}
}

func inCircleExact(a, b, c, d types.Point) int {
	ax := bigFloat(a.X - d.X)
	ay := bigFloat(a.Y - d.Y)
	bx := bigFloat(b.X - d.X)
	by := bigFloat(b.Y - d.Y)
	cx := bigFloat(c.X - d.X)
	cy := bigFloat(c.Y - d.Y)

	ad2 := bigFloat(0)
	ad2.Mul(ax, ax)
	tmp := bigFloat(0)
	tmp.Mul(ay, ay)
	ad2.Add(ad2, tmp)

	bd2 := bigFloat(0)
	bd2.Mul(bx, bx)
	tmp.Mul(by, by)
	bd2.Add(bd2, tmp)

	cd2 := bigFloat(0)
	cd2.Mul(cx, cx)
	tmp.Mul(cy, cy)
	cd2.Add(cd2, tmp)

	term1 := bigFloat(0)
	term1.Mul(ad2, det2(bx, by, cx, cy))

	term2 := bigFloat(0)
	term2.Mul(bd2, det2(ax, ay, cx, cy))

	term3 := bigFloat(0)
	term3.Mul(cd2, det2(ax, ay, bx, by))

	det := bigFloat(0)
	det.Add(term1, term3)
	det.Sub(det, term2)
	return det.Sign()
}

func det2(ax, ay, bx, by *big.Float) *big.Float {
	out := bigFloat(0)
	tmp := bigFloat(0)
	out.Mul(ax, by)
	tmp.Mul(ay, bx)
	out.Sub(out, tmp)
	return out
}

func maxAbs(values ...float64) float64 {
	m := 0.0
	for _, v := range values {
		if abs := math.Abs(v); abs > m {
			m = abs
		}
	}
	return m
}

func bigFloat(v float64) *big.Float {
	return new(big.Float).SetPrec(256).SetFloat64(v)
}
