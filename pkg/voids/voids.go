package voids

import (
	"io"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/mesh"
	"github.com/chazu/burl/pkg/stl"
)

// Identify returns the closed components whose padded bounding box is
// contained in the padded bounding box of any other closed component.
// Self-comparison is excluded, and fewer than two candidates yields an
// empty list. The check is quadratic in the number of closed
// components, which is small relative to the triangle count.
func Identify(m *mesh.Mesh, closed []Component) ([]Component, error) {
	if len(closed) < 2 {
		return nil, nil
	}

	boxes := make([]Box, len(closed))
	for i, component := range closed {
		box, err := ComponentBox(m, component, Padding)
		if err != nil {
			return nil, err
		}
		boxes[i] = box
	}

	var voids []Component
	for i := range closed {
		for j := range closed {
			if i == j {
				continue
			}
			if boxes[j].Contains(boxes[i], Padding) {
				voids = append(voids, closed[i])
				break
			}
		}
	}
	return voids, nil
}

// Export runs the full pipeline — component discovery, closedness
// classification, void identification — and writes the void triangles
// to w as ASCII STL under the solid name "voids", flattened in
// component-then-index order.
func Export(m *mesh.Mesh, w io.Writer) error {
	components := FindComponents(m)
	closed := Closed(m, components)

	found, err := Identify(m, closed)
	if err != nil {
		return err
	}

	var triangles []geom.Triangle
	for _, component := range found {
		for _, index := range component {
			triangles = append(triangles, m.Triangle(index))
		}
	}
	return stl.Write(w, "voids", triangles)
}
