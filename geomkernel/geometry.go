package geomkernel

import (
	"math"

	"github.com/halfmesh/triangulate/types"
)

const bboxTol = 1e-12

// Circle is a circumcircle: a center and the square of its radius, kept
// squared since every consumer (InCircle-style containment tests) only
// ever needs the squared distance.
type Circle struct {
	Center  types.Point
	Radius2 float64
}

// Circumcenter returns the center of the circle through a, b and c. The
// caller is responsible for ensuring the three points are not collinear;
// on collinear input the result is meaningless (division by ~0).
func Circumcenter(a, b, c types.Point) types.Point {
	ax, ay := a.X, a.Y
	bx, by := b.X, b.Y
	cx, cy := c.X, c.Y

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))

	ux := ((ax*ax+ay*ay)*(by-cy) + (bx*bx+by*by)*(cy-ay) + (cx*cx+cy*cy)*(ay-by)) / d
	uy := ((ax*ax+ay*ay)*(cx-bx) + (bx*bx+by*by)*(ax-cx) + (cx*cx+cy*cy)*(bx-ax)) / d

	return types.Point{X: ux, Y: uy}
}

// Circumcircle returns the circumcenter and squared circumradius of (a,b,c).
func Circumcircle(a, b, c types.Point) Circle {
	center := Circumcenter(a, b, c)
	dx := a.X - center.X
	dy := a.Y - center.Y
	return Circle{Center: center, Radius2: dx*dx + dy*dy}
}

// PointInTriangle reports whether p lies within or on the boundary of
// triangle (a,b,c), regardless of winding.
func PointInTriangle(k Kernel, p, a, b, c types.Point) bool {
	o1 := k.Orient2D(a, b, p)
	o2 := k.Orient2D(b, c, p)
	o3 := k.Orient2D(c, a, p)

	hasNeg := o1 < 0 || o2 < 0 || o3 < 0
	hasPos := o1 > 0 || o2 > 0 || o3 > 0
	return !(hasNeg && hasPos)
}

// PointOnSegment reports whether p lies on the closed segment [a,b],
// adapted from algorithm/geometry.PointOnSegment.
func PointOnSegment(k Kernel, p, a, b types.Point) bool {
	if k.Orient2D(a, b, p) != 0 {
		return false
	}

	minX := math.Min(a.X, b.X) - bboxTol
	maxX := math.Max(a.X, b.X) + bboxTol
	minY := math.Min(a.Y, b.Y) - bboxTol
	maxY := math.Max(a.Y, b.Y) + bboxTol

	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// SegmentsProperlyIntersect reports whether open segments (p,q) and (r,s)
// cross at a single interior point, excluding shared endpoints and
// collinear overlap — the test ConstraintApplier's tunnel walk uses to
// decide whether a halfedge blocks a constraint edge.
func SegmentsProperlyIntersect(k Kernel, p, q, r, s types.Point) bool {
	o1 := k.Orient2D(p, q, r)
	o2 := k.Orient2D(p, q, s)
	o3 := k.Orient2D(r, s, p)
	o4 := k.Orient2D(r, s, q)

	return o1*o2 < 0 && o3*o4 < 0
}

// PseudoAngle returns a monotonic-in-true-angle, cheap-to-compute proxy for
// atan2(dy, dx) in [0,1), used by DelaunayBuilder to order hull candidates
// around the initial seed without trigonometric calls.
func PseudoAngle(dx, dy float64) float64 {
	p := dx / (math.Abs(dx) + math.Abs(dy))
	if dy > 0 {
		p = (3 - p) / 4
	} else {
		p = (1 + p) / 4
	}
	return p
}

// IsConvexQuadrilateral reports whether the quadrilateral a,b,c,d (in order
// around the boundary) is strictly convex, the precondition ConstraintApplier
// requires before flipping a shared diagonal.
func IsConvexQuadrilateral(k Kernel, a, b, c, d types.Point) bool {
	s1 := k.Orient2D(a, b, c)
	s2 := k.Orient2D(b, c, d)
	s3 := k.Orient2D(c, d, a)
	s4 := k.Orient2D(d, a, b)

	allPos := s1 > 0 && s2 > 0 && s3 > 0 && s4 > 0
	allNeg := s1 < 0 && s2 < 0 && s3 < 0 && s4 < 0
	return allPos || allNeg
}

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b types.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b types.Point) types.Point {
	return types.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
