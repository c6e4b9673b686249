// Command cdt_example loads a mesh JSON file, triangulates its perimeter and
// holes through the full pipeline (constraints, seed planting, optional
// refinement) and rasterizes the result to a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/halfmesh/triangulate/mesh"
	"github.com/halfmesh/triangulate/rasterize"
	"github.com/halfmesh/triangulate/triangulation"
	"github.com/halfmesh/triangulate/types"
)

func main() {
	var (
		loadFile = flag.String("load", "", "Path to mesh JSON file to load")
		output   = flag.String("output", "cdt_output.png", "Output PNG file path")
		width    = flag.Int("width", 1024, "Output image width")
		height   = flag.Int("height", 1024, "Output image height")
		refine   = flag.Bool("refine", false, "Run Ruppert refinement")
		maxArea  = flag.Float64("max-area", 0, "Refinement max triangle area (2*area)")
		minAngle = flag.Float64("min-angle", 0, "Refinement min inner angle, radians")
	)

	flag.Parse()

	if *loadFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --load flag is required")
		fmt.Fprintln(os.Stderr, "\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*loadFile, *output, *width, *height, *refine, *maxArea, *minAngle); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(loadFile, outputFile string, width, height int, refine bool, maxArea, minAngle float64) error {
	fmt.Printf("Loading mesh from %s...\n", loadFile)
	src, err := mesh.Load(loadFile)
	if err != nil {
		return fmt.Errorf("failed to load mesh: %w", err)
	}

	fmt.Printf("Loaded mesh with %d vertices, %d perimeters, %d holes\n",
		src.NumVertices(), len(src.GetPerimeters()), len(src.GetHoles()))

	perimeters := src.GetPerimeters()
	if len(perimeters) == 0 {
		return fmt.Errorf("mesh has no perimeters - cannot build CDT")
	}

	positions, constraintEdges, holeSeeds := flattenPSLG(src, perimeters[0], src.GetHoles())

	fmt.Println("Building constrained Delaunay triangulation...")
	result := triangulation.Run(positions, constraintEdges, holeSeeds, nil, triangulation.Settings{
		ValidateInput:            true,
		RestoreBoundary:          true,
		RefineMesh:               refine,
		RefinementThresholdArea:  maxArea,
		RefinementThresholdAngle: minAngle,
	})
	if result.Status.IsError() {
		return fmt.Errorf("triangulation failed: %s", result.Status.String())
	}

	diag := triangulation.GetDiagnostics(result)
	fmt.Printf("CDT built successfully: %d vertices, %d triangles\n", diag.NumVertices, diag.NumTriangles)

	out, err := result.ToMesh()
	if err != nil {
		return fmt.Errorf("failed to export mesh: %w", err)
	}

	fmt.Printf("Rasterizing to %dx%d image...\n", width, height)
	img, err := rasterize.Rasterize(out,
		rasterize.WithDimensions(width, height),
		rasterize.WithFillTriangles(true),
		rasterize.WithDrawEdges(true),
		rasterize.WithDrawVertices(true),
	)
	if err != nil {
		return fmt.Errorf("failed to rasterize mesh: %w", err)
	}

	fmt.Printf("Saving to %s...\n", outputFile)
	outFile, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if err := png.Encode(outFile, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	fmt.Printf("Success! CDT written to %s\n", outputFile)
	return nil
}

// flattenPSLG converts a mesh's vertex-id perimeter/hole loops into the flat
// positions + constraint-edge-index + hole-seed-point arrays the
// triangulation package expects.
func flattenPSLG(src *mesh.Mesh, outer types.PolygonLoop, holes []types.PolygonLoop) ([]types.Point, []int, []types.Point) {
	positions := make([]types.Point, src.NumVertices())
	for i := range positions {
		positions[i] = src.GetVertex(types.VertexID(i))
	}

	var constraints []int
	appendLoop := func(loop types.PolygonLoop) {
		for i := 0; i < len(loop); i++ {
			a := loop[i]
			b := loop[(i+1)%len(loop)]
			constraints = append(constraints, int(a), int(b))
		}
	}
	appendLoop(outer)
	for _, h := range holes {
		appendLoop(h)
	}

	holeSeeds := make([]types.Point, 0, len(holes))
	for _, h := range holes {
		holeSeeds = append(holeSeeds, holeCentroid(src, h))
	}

	return positions, constraints, holeSeeds
}

func holeCentroid(src *mesh.Mesh, loop types.PolygonLoop) types.Point {
	var sx, sy float64
	for _, vid := range loop {
		p := src.GetVertex(vid)
		sx += p.X
		sy += p.Y
	}
	n := float64(len(loop))
	return types.Point{X: sx / n, Y: sy / n}
}
