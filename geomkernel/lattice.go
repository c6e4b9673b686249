package geomkernel

import (
	"math"
	"math/big"

	"github.com/halfmesh/triangulate/types"
)

// LatticeKernel evaluates Orient2D and InCircle exactly over coordinates
// quantized to a fixed-size integer lattice, using widened 128-bit integer
// products so that the sign of the determinant is never subject to
// floating-point rounding. Scale controls the quantization step: a point's
// lattice coordinate is round(value / Scale).
//
// Because every predicate answer is a function of the quantized lattice
// coordinates alone, two runs of the same pipeline on the same machine or on
// different machines produce identical triangulations, a guarantee the
// Float64Kernel's big.Float fallback does not make (big.Float fallback
// evaluation still proceeds through float64 subtraction before widening).
type LatticeKernel struct {
	Scale float64
}

var _ Kernel = LatticeKernel{}

func (LatticeKernel) SupportsSteinerPoints() bool { return false }

func (k LatticeKernel) quantize(p types.Point) (int64, int64) {
	scale := k.Scale
	if scale == 0 {
		scale = 1
	}
	return int64(math.Round(p.X / scale)), int64(math.Round(p.Y / scale))
}

func (k LatticeKernel) Orient2D(a, b, c types.Point) int {
	ax, ay := k.quantize(a)
	bx, by := k.quantize(b)
	cx, cy := k.quantize(c)

	// widened to big.Int: two int64 products can overflow int64 range.
	abx := big.NewInt(bx - ax)
	aby := big.NewInt(by - ay)
	acx := big.NewInt(cx - ax)
	acy := big.NewInt(cy - ay)

	t1 := new(big.Int).Mul(abx, acy)
	t2 := new(big.Int).Mul(aby, acx)
	det := t1.Sub(t1, t2)
	return det.Sign()
}

func (k LatticeKernel) InCircle(a, b, c, d types.Point) int {
	ax, ay := k.quantize(a)
	bx, by := k.quantize(b)
	cx, cy := k.quantize(c)
	dx, dy := k.quantize(d)

	adx := big.NewInt(ax - dx)
	ady := big.NewInt(ay - dy)
	bdx := big.NewInt(bx - dx)
	bdy := big.NewInt(by - dy)
	cdx := big.NewInt(cx - dx)
	cdy := big.NewInt(cy - dy)

	ad2 := sumOfSquares(adx, ady)
	bd2 := sumOfSquares(bdx, bdy)
	cd2 := sumOfSquares(cdx, cdy)

	term1 := new(big.Int).Mul(ad2, det2Int(bdx, bdy, cdx, cdy))
	term2 := new(big.Int).Mul(bd2, det2Int(adx, ady, cdx, cdy))
	term3 := new(big.Int).Mul(cd2, det2Int(adx, ady, bdx, bdy))

	det := new(big.Int).Add(term1, term3)
	det.Sub(det, term2)
	return det.Sign()
}

func sumOfSquares(x, y *big.Int) *big.Int {
	out := new(big.Int).Mul(x, x)
	y2 := new(big.Int).Mul(y, y)
	return out.Add(out, y2)
}

func det2Int(ax, ay, bx, by *big.Int) *big.Int {
	t1 := new(big.Int).Mul(ax, by)
	t2 := new(big.Int).Mul(ay, bx)
	return t1.Sub(t1, t2)
}
