package mesh

import (
	"errors"
	"fmt"

	"github.com/chazu/burl/pkg/geom"
)

// ErrEmptyMesh is returned when a mesh is constructed from zero triangles.
var ErrEmptyMesh = errors.New("mesh: empty triangle list")

// DegenerateTriangleError reports a triangle with no usable area:
// duplicate vertices or collinear vertices.
type DegenerateTriangleError struct {
	Index  int
	Reason string
}

func (e *DegenerateTriangleError) Error() string {
	return fmt.Sprintf("mesh: triangle %d is degenerate: %s", e.Index, e.Reason)
}

// NonManifoldError reports an edge that would be incident to more than
// two triangles. It is raised at the moment the third triangle attempts
// to register on the edge.
type NonManifoldError struct {
	Edge geom.Edge
}

func (e *NonManifoldError) Error() string {
	return fmt.Sprintf("mesh: non-manifold edge (%g %g %g)-(%g %g %g): more than two incident triangles",
		e.Edge.A.X, e.Edge.A.Y, e.Edge.A.Z,
		e.Edge.B.X, e.Edge.B.Y, e.Edge.B.Z)
}
