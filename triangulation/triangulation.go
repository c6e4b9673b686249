// Package triangulation is the top-level entry point: it validates input,
// runs the optional preprocessor, then sequences DelaunayBuilder,
// ConstraintApplier, SeedPlanter and Refiner according to Settings,
// producing a flat half-edge mesh plus a result status. Sequencing,
// cooperative cancellation, verbose logging and the functional-options
// configuration style are adapted from cdt.Build and mesh/options.go.
package triangulation

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/halfmesh/triangulate/constraint"
	"github.com/halfmesh/triangulate/delaunay"
	"github.com/halfmesh/triangulate/geomkernel"
	"github.com/halfmesh/triangulate/halfedge"
	"github.com/halfmesh/triangulate/preprocess"
	"github.com/halfmesh/triangulate/refine"
	"github.com/halfmesh/triangulate/seedplant"
	"github.com/halfmesh/triangulate/status"
	"github.com/halfmesh/triangulate/types"
	"github.com/halfmesh/triangulate/validate"
)

// Settings configures one triangulation run. The zero value runs a plain
// Delaunay triangulation with input validation off and every optional stage
// off.
type Settings struct {
	Preprocessor preprocess.Mode

	ValidateInput bool

	AutoHolesAndBoundary bool
	RestoreBoundary      bool
	RefineMesh           bool

	SloanMaxIters int

	ConcentricShellsParameter float64
	RefinementThresholdArea   float64
	RefinementThresholdAngle  float64

	// Kernel selects the exactness/predicate strategy; nil selects
	// geomkernel.Float64Kernel.
	Kernel geomkernel.Kernel

	// Logger receives one line per error when non-nil (verbose mode);
	// defaults to a no-op logger, matching mesh.Option's "off by default"
	// library convention.
	Logger *zap.SugaredLogger

	// Context allows cooperative cancellation, checked before each stage
	// starts; a stage that is already running is not interrupted. A nil
	// Context behaves like context.Background().
	Context context.Context
}

// Result is the output of a triangulation run.
type Result struct {
	Positions            []types.Point
	Triangles            []int
	Halfedges            []int
	ConstrainedHalfedges []bool
	IgnoredForPlanting   []bool
	Status               status.Status
}

// Diagnostics mirrors cdt.Diagnostics for introspecting a finished run.
type Diagnostics struct {
	NumVertices  int
	NumTriangles int
}

// Run executes the full pipeline for positions, constraintEdges (flat
// pairs), holeSeeds and settings.
func Run(positions []types.Point, constraintEdges []int, holeSeeds []types.Point, ignoreForPlanting []bool, settings Settings) Result {
	logger := settings.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ctx := settings.Context
	if ctx == nil {
		ctx = context.Background()
	}

	if s := validateSettings(settings); s.IsError() {
		logger.Errorw("settings validation failed", "status", s.String())
		return Result{Status: s}
	}

	if settings.ValidateInput {
		s := validate.Run(validate.Input{
			Positions:                   positions,
			ConstraintEdges:             constraintEdges,
			HoleSeeds:                   holeSeeds,
			IgnoreConstraintForPlanting: ignoreForPlanting,
		})
		if s.IsError() {
			logger.Errorw("input validation failed", "status", s.String())
			return Result{Status: s}
		}
	}

	kernel := settings.Kernel
	if kernel == nil {
		kernel = geomkernel.Float64Kernel{}
	}

	working := positions
	var cond preprocess.Result
	if settings.Preprocessor != preprocess.None {
		cond = preprocess.Apply(settings.Preprocessor, positions)
		working = cond.Positions
	}

	if ctx.Err() != nil {
		return Result{Status: status.Cancelled}
	}

	builder := delaunay.NewBuilder(kernel)
	m, s := builder.Build(working)
	if s.IsError() {
		logger.Errorw("delaunay construction failed", "status", s.String())
		return toResult(m, s)
	}

	if len(constraintEdges) > 0 {
		if ctx.Err() != nil {
			return Result{Status: status.Cancelled}
		}
		applier := constraint.NewApplier(kernel, settings.SloanMaxIters)
		constraints := make([]constraint.Constraint, 0, len(constraintEdges)/2)
		for i := 0; i+1 < len(constraintEdges); i += 2 {
			ignore := false
			if ignoreForPlanting != nil {
				ignore = ignoreForPlanting[i/2]
			}
			constraints = append(constraints, constraint.Constraint{
				U: constraintEdges[i], V: constraintEdges[i+1], Ignore: ignore,
			})
		}
		s = applier.Apply(m, constraints)
		if s.IsError() {
			logger.Errorw("constraint application failed", "status", s.String())
			return toResult(m, s)
		}
	}

	if settings.AutoHolesAndBoundary || settings.RestoreBoundary || len(holeSeeds) > 0 {
		if ctx.Err() != nil {
			return Result{Status: status.Cancelled}
		}
		planter := seedplant.NewPlanter(kernel)
		planter.Plant(m, seedplant.Mode{
			HoleSeeds:            holeSeeds,
			RestoreBoundary:      settings.RestoreBoundary,
			AutoHolesAndBoundary: settings.AutoHolesAndBoundary,
		})
	}

	if settings.RefineMesh {
		if ctx.Err() != nil {
			return Result{Status: status.Cancelled}
		}
		refiner := refine.NewRefiner(kernel, refine.Settings{
			Area2Threshold:            settings.RefinementThresholdArea,
			AngleThreshold:            settings.RefinementThresholdAngle,
			ConcentricShellsParameter: settings.ConcentricShellsParameter,
		})
		s = refiner.Refine(m)
		if s.IsError() {
			logger.Errorw("refinement failed", "status", s.String())
			return toResult(m, s)
		}
	}

	result := toResult(m, status.OK)
	if settings.Preprocessor != preprocess.None {
		for i, p := range result.Positions {
			result.Positions[i] = cond.Invert(p)
		}
	}
	return result
}

// validateSettings rejects out-of-range Settings values (ERR_ARGS_INVALID)
// before any geometric work starts. §4.6 requires a refinement angle
// threshold above pi/4 to be rejected here, since Ruppert's algorithm is
// not guaranteed to terminate above that bound.
func validateSettings(s Settings) status.Status {
	out := status.OK
	if s.RefinementThresholdAngle > math.Pi/4 {
		out = out.Set(status.ErrArgsInvalid)
	}
	if s.RefinementThresholdAngle < 0 || s.RefinementThresholdArea < 0 ||
		s.ConcentricShellsParameter < 0 || s.SloanMaxIters < 0 {
		out = out.Set(status.ErrArgsInvalid)
	}
	return out
}

func toResult(m *halfedge.Mesh, s status.Status) Result {
	if m == nil {
		return Result{Status: s}
	}
	return Result{
		Positions:            m.Positions,
		Triangles:            m.Triangles,
		Halfedges:            m.Halfedges,
		ConstrainedHalfedges: m.ConstrainedHalfedges,
		IgnoredForPlanting:   m.IgnoredForPlanting,
		Status:               s,
	}
}

// GetDiagnostics summarizes a finished run, mirroring cdt.GetDiagnostics.
func GetDiagnostics(r Result) Diagnostics {
	return Diagnostics{
		NumVertices:  len(r.Positions),
		NumTriangles: len(r.Triangles) / 3,
	}
}
