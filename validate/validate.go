// Package validate runs the input-validation pass every Triangulation run
// performs before DelaunayBuilder sees the point set: coordinate finiteness,
// duplicate detection, constraint index bounds, self-loops, collinear
// violations and segment intersections. Each failure sets the matching
// status.Err* bit. Grounded on spatial.HashGrid for proximity queries (the
// same structure mesh/vertex_ops.go uses for vertex merging) and on
// algorithm/robust for the underlying geometric tests.
package validate

import (
	"math"

	"github.com/halfmesh/triangulate/algorithm/robust"
	"github.com/halfmesh/triangulate/spatial"
	"github.com/halfmesh/triangulate/status"
	"github.com/halfmesh/triangulate/types"
)

// Input mirrors the external triangulation input surface that needs
// validating prior to any stage running.
type Input struct {
	Positions                   []types.Point
	ConstraintEdges             []int // even length, pairs of indices into Positions
	HoleSeeds                   []types.Point
	IgnoreConstraintForPlanting []bool // one entry per constraint pair, or nil
}

// DuplicateMergeDistance is the proximity threshold for flagging two input
// positions as duplicates.
const DuplicateMergeDistance = 1e-9

// Run validates input, returning the accumulated status. Unlike compute
// stages, validation is additive: every violated check sets its bit, so
// callers see the full set of problems rather than only the first. The one
// exception: once a constraint index is out of range, the remaining
// constraint, hole-seed and ignore-flag checks are skipped and the bits set
// so far are returned.
func Run(in Input) status.Status {
	s := status.OK

	if len(in.Positions) < 3 {
		s = s.Set(status.ErrInputPositionsLength)
	}

	for _, p := range in.Positions {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			s = s.Set(status.ErrInputPositionsUndefinedValue)
			break
		}
	}

	if hasDuplicates(in.Positions) {
		s = s.Set(status.ErrInputPositionsDuplicates)
	}

	if len(in.ConstraintEdges)%2 != 0 {
		s = s.Set(status.ErrInputConstraintsLength)
	}

	n := len(in.Positions)
	pairs := pairUp(in.ConstraintEdges)

	for _, pr := range pairs {
		if pr[0] < 0 || pr[0] >= n || pr[1] < 0 || pr[1] >= n {
			s = s.Set(status.ErrInputConstraintsOutOfRange)
			continue
		}
		if pr[0] == pr[1] {
			s = s.Set(status.ErrInputConstraintsSelfLoop)
		}
	}

	if s.Has(status.ErrInputConstraintsOutOfRange) {
		// Remaining geometric checks assume in-range indices.
		return s
	}

	if collinearViolation(in.Positions, pairs) {
		s = s.Set(status.ErrInputConstraintsCollinear)
	}

	if duplicatePair(pairs) {
		s = s.Set(status.ErrInputConstraintsDuplicates)
	}

	if intersectingConstraints(in.Positions, pairs) {
		s = s.Set(status.ErrInputConstraintsIntersecting)
	}

	for _, p := range in.HoleSeeds {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			s = s.Set(status.ErrInputHolesUndefinedValue)
			break
		}
	}

	if in.IgnoreConstraintForPlanting != nil && len(in.IgnoreConstraintForPlanting) != len(pairs) {
		s = s.Set(status.ErrInputIgnoredConstraintsLength)
	}

	return s
}

func pairUp(flat []int) [][2]int {
	out := make([][2]int, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		out = append(out, [2]int{flat[i], flat[i+1]})
	}
	return out
}

func hasDuplicates(positions []types.Point) bool {
	grid := spatial.NewHashGrid(DuplicateMergeDistance * 4)
	for i, p := range positions {
		for _, other := range grid.FindVerticesNear(p, DuplicateMergeDistance) {
			q := positions[other]
			dx, dy := p.X-q.X, p.Y-q.Y
			if dx*dx+dy*dy <= DuplicateMergeDistance*DuplicateMergeDistance {
				return true
			}
		}
		grid.AddVertex(types.VertexID(i), p)
	}
	return false
}

func collinearViolation(positions []types.Point, pairs [][2]int) bool {
	for _, pr := range pairs {
		a, b := positions[pr[0]], positions[pr[1]]
		for i, p := range positions {
			if i == pr[0] || i == pr[1] {
				continue
			}
			if robust.Orient2D(a, b, p) == 0 && strictlyBetween(a, b, p) {
				return true
			}
		}
	}
	return false
}

func strictlyBetween(a, b, p types.Point) bool {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return p.X > minX && p.X < maxX || (minX == maxX && p.Y > minY && p.Y < maxY)
}

func duplicatePair(pairs [][2]int) bool {
	seen := make(map[[2]int]bool, len(pairs))
	for _, pr := range pairs {
		key := pr
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			return true
		}
		seen[key] = true
	}
	return false
}

func intersectingConstraints(positions []types.Point, pairs [][2]int) bool {
	for i := 0; i < len(pairs); i++ {
		a1, a2 := positions[pairs[i][0]], positions[pairs[i][1]]
		for j := i + 1; j < len(pairs); j++ {
			if sharesEndpoint(pairs[i], pairs[j]) {
				continue
			}
			b1, b2 := positions[pairs[j][0]], positions[pairs[j][1]]
			ok, _, _ := robust.SegmentIntersect(a1, a2, b1, b2)
			if ok {
				return true
			}
		}
	}
	return false
}

func sharesEndpoint(a, b [2]int) bool {
	return a[0] == b[0] || a[0] == b[1] || a[1] == b[0] || a[1] == b[1]
}
