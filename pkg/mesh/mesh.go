// Package mesh builds an immutable triangle mesh with edge-to-triangle
// connectivity from a triangle soup. Construction validates geometric
// and topological invariants: no degenerate triangles, and no edge
// shared by more than two triangles. Everything downstream (orientation
// propagation, component discovery, void detection) walks the
// connectivity map built here and never mutates the mesh.
package mesh

import (
	"fmt"
	"os"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/stl"
)

// TriangleIndex indexes a triangle in the mesh arena.
type TriangleIndex int32

// Boundary marks the unused second slot of an edge with a single
// incident triangle.
const Boundary TriangleIndex = -1

// Tolerance bounds the squared cross-product magnitude below which a
// triangle is treated as zero-area.
const Tolerance = 1e-16

// Mesh is an ordered, indexable triangle collection plus a map from
// canonical edge to the (at most two) incident triangle indices.
// A Mesh is immutable after construction; indices are stable for its
// lifetime.
type Mesh struct {
	triangles []geom.Triangle
	edges     map[geom.Edge][2]TriangleIndex
}

// New validates the triangle list and builds the edge connectivity map.
// Construction is all-or-nothing: an empty list, a degenerate triangle,
// or a non-manifold edge aborts with an error and no partially built
// mesh is observable.
func New(triangles []geom.Triangle) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	for i, t := range triangles {
		if err := checkDegenerate(i, t); err != nil {
			return nil, err
		}
	}

	m := &Mesh{
		triangles: append([]geom.Triangle(nil), triangles...),
		edges:     make(map[geom.Edge][2]TriangleIndex, len(triangles)*3/2),
	}
	for i := range m.triangles {
		for _, e := range m.triangles[i].Edges() {
			if err := m.register(e, TriangleIndex(i)); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Load opens the ASCII STL file at path, parses it, and builds a mesh.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	triangles, err := stl.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("mesh: parse %s: %w", path, err)
	}
	return New(triangles)
}

// register records triangle ti as incident to edge e. The manifold
// check is incremental: the third registration on an edge fails
// immediately.
func (m *Mesh) register(e geom.Edge, ti TriangleIndex) error {
	slots, ok := m.edges[e]
	if !ok {
		m.edges[e] = [2]TriangleIndex{ti, Boundary}
		return nil
	}
	if slots[1] != Boundary {
		return &NonManifoldError{Edge: e}
	}
	slots[1] = ti
	m.edges[e] = slots
	return nil
}

func checkDegenerate(i int, t geom.Triangle) error {
	if t.A == t.B || t.B == t.C || t.C == t.A {
		return &DegenerateTriangleError{Index: i, Reason: "duplicate vertices"}
	}
	if t.Normal().Norm2() < Tolerance {
		return &DegenerateTriangleError{Index: i, Reason: "zero area"}
	}
	return nil
}

// Triangles returns the mesh's triangle list. Callers must not modify
// it.
func (m *Mesh) Triangles() []geom.Triangle {
	return m.triangles
}

// Len returns the number of triangles in the mesh.
func (m *Mesh) Len() int {
	return len(m.triangles)
}

// Triangle returns the triangle at index i.
func (m *Mesh) Triangle(i TriangleIndex) geom.Triangle {
	return m.triangles[i]
}

// EdgeConnectivity returns the canonical-edge to incident-triangle map.
// The second slot is Boundary for edges with a single incident
// triangle. Callers must not modify the map.
func (m *Mesh) EdgeConnectivity() map[geom.Edge][2]TriangleIndex {
	return m.edges
}

// Degree returns the number of triangles incident to edge e, or 0 if
// the edge is not part of the mesh.
func (m *Mesh) Degree(e geom.Edge) int {
	slots, ok := m.edges[e]
	if !ok {
		return 0
	}
	if slots[1] == Boundary {
		return 1
	}
	return 2
}
