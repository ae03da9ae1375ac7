package voids

import (
	"fmt"
	"math"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/mesh"
)

// Padding is added to every face of a component's bounding box to
// absorb floating-point noise in the containment test.
const Padding = 1e-9

// InvalidBoundsError reports a box constructed with min > max on some
// axis. Valid geometry never produces one; it guards against
// programming errors.
type InvalidBoundsError struct {
	Min, Max geom.Point
}

func (e *InvalidBoundsError) Error() string {
	return fmt.Sprintf("voids: invalid bounds: min (%g %g %g) exceeds max (%g %g %g)",
		e.Min.X, e.Min.Y, e.Min.Z, e.Max.X, e.Max.Y, e.Max.Z)
}

// Box is an axis-aligned bounding box with Min <= Max on every axis.
type Box struct {
	Min, Max geom.Point
}

// NewBox builds a box, enforcing Min <= Max on every axis.
func NewBox(min, max geom.Point) (Box, error) {
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return Box{}, &InvalidBoundsError{Min: min, Max: max}
	}
	return Box{Min: min, Max: max}, nil
}

// Pad returns the box grown by pad on all six faces.
func (b Box) Pad(pad float64) Box {
	return Box{
		Min: geom.Point{X: b.Min.X - pad, Y: b.Min.Y - pad, Z: b.Min.Z - pad},
		Max: geom.Point{X: b.Max.X + pad, Y: b.Max.Y + pad, Z: b.Max.Z + pad},
	}
}

// Contains reports whether the box contains inner on every axis, with
// tolerance tol pulling inner's bounds inward before the comparison.
func (b Box) Contains(inner Box, tol float64) bool {
	return b.Min.X <= inner.Min.X-tol && inner.Max.X+tol <= b.Max.X &&
		b.Min.Y <= inner.Min.Y-tol && inner.Max.Y+tol <= b.Max.Y &&
		b.Min.Z <= inner.Min.Z-tol && inner.Max.Z+tol <= b.Max.Z
}

// ComponentBox computes the bounding box over every vertex of every
// triangle in the component, grown by pad on all faces.
func ComponentBox(m *mesh.Mesh, component Component, pad float64) (Box, error) {
	min := geom.Point{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := geom.Point{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}

	for _, index := range component {
		t := m.Triangle(index)
		for _, p := range [3]geom.Point{t.A, t.B, t.C} {
			min = min.Min(p)
			max = max.Max(p)
		}
	}

	box, err := NewBox(min, max)
	if err != nil {
		return Box{}, err
	}
	return box.Pad(pad), nil
}
