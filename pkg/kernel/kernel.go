// Package kernel defines the abstract geometry kernel interface used to
// build solid test fixtures. Implementations provide primitives and
// boolean operations behind this interface, so fixture generation does
// not depend on any particular modeling backend.
package kernel

import "github.com/chazu/burl/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Box places its minimum corner at the origin; Sphere
	// and Cylinder are centered on the origin.
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid

	// Triangle output. cells is the surface sampling resolution along
	// the longest bounding box axis.
	ToTriangles(s Solid, cells int) ([]geom.Triangle, error)
}
