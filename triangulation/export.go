package triangulation

import (
	"fmt"

	"github.com/halfmesh/triangulate/mesh"
	"github.com/halfmesh/triangulate/types"
)

// ToMesh exports a Result into a mesh.Mesh, the representation the
// rasterize and formatting packages consume. mesh.Mesh's edge-crossing and
// vertex-inside validations default to off, which is what this export
// wants: the half-edge pipeline already guarantees a consistent,
// non-overlapping triangulation, so re-validating it under mesh's
// edge-set/triangle-set model would only duplicate work.
func (r Result) ToMesh(opts ...mesh.Option) (*mesh.Mesh, error) {
	m := mesh.NewMesh(opts...)

	ids := make([]types.VertexID, len(r.Positions))
	for i, p := range r.Positions {
		id, err := m.AddVertex(p)
		if err != nil {
			return nil, fmt.Errorf("export vertex %d: %w", i, err)
		}
		ids[i] = id
	}

	for t := 0; t+2 < len(r.Triangles); t += 3 {
		v1 := ids[r.Triangles[t]]
		v2 := ids[r.Triangles[t+1]]
		v3 := ids[r.Triangles[t+2]]
		if err := m.AddTriangle(v1, v2, v3); err != nil {
			return nil, fmt.Errorf("export triangle %d: %w", t/3, err)
		}
	}

	return m, nil
}
