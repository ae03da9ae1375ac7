// Package orient propagates a winding convention across a mesh.
// Starting from a seed triangle taken as correctly oriented, it finds
// which other triangles in the seed's connected component must be
// reversed so that both triangles incident to an interior edge traverse
// it in opposite directions.
package orient

import (
	"io"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/mesh"
	"github.com/chazu/burl/pkg/stl"
)

// consistent reports whether t1 and t2 traverse the shared canonical
// edge e in opposite directions. Exactly one of the two triangles may
// contain e.A->e.B as a directed edge; if both or neither do, their
// windings disagree across e.
func consistent(t1, t2 geom.Triangle, e geom.Edge) bool {
	return t1.HasDirectedEdge(e.A, e.B) != t2.HasDirectedEdge(e.A, e.B)
}

// Propagate walks the edge-adjacency graph breadth-first from the seed
// triangle and returns reversed copies of the triangles whose stored
// winding disagrees with the neighbor that discovered them, in
// discovery order. The seed is never included, triangles outside the
// seed's connected component are never touched, and an out-of-range
// seed yields an empty list rather than an error. The mesh itself is
// never modified.
//
// The consistency check always compares the stored geometry of both
// triangles; a reversal recorded for the current triangle earlier in
// the walk does not influence later comparisons.
func Propagate(m *mesh.Mesh, seed int) []geom.Triangle {
	triangles := m.Triangles()
	if seed < 0 || seed >= len(triangles) {
		return nil
	}

	connectivity := m.EdgeConnectivity()
	visited := make([]bool, len(triangles))
	var flipped []geom.Triangle
	queue := make([]mesh.TriangleIndex, 0, len(triangles))

	visited[seed] = true
	queue = append(queue, mesh.TriangleIndex(seed))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		triangle := triangles[current]

		for _, edge := range triangle.Edges() {
			slots, ok := connectivity[edge]
			if !ok {
				continue
			}
			if slots[1] == mesh.Boundary {
				continue // nothing to propagate across a boundary edge
			}
			neighbor := slots[0]
			if neighbor == current {
				neighbor = slots[1]
			}
			if visited[neighbor] {
				continue
			}

			if !consistent(triangle, triangles[neighbor], edge) {
				flipped = append(flipped, triangles[neighbor].Reversed())
			}
			visited[neighbor] = true
			queue = append(queue, neighbor)
		}
	}
	return flipped
}

// Export writes the triangles Propagate reverses for the given seed to
// w as ASCII STL under the solid name "reoriented_triangles".
func Export(m *mesh.Mesh, seed int, w io.Writer) error {
	return stl.Write(w, "reoriented_triangles", Propagate(m, seed))
}
