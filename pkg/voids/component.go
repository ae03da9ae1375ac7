// Package voids decomposes a mesh into connected components, classifies
// which components are closed surfaces, and identifies voids: closed
// components whose bounding box is nested inside another closed
// component's bounding box.
package voids

import "github.com/chazu/burl/pkg/mesh"

// Component is a maximal set of triangles reachable from one another
// via shared interior edges, listed in BFS discovery order. Components
// are disjoint and together cover the whole mesh.
type Component []mesh.TriangleIndex

// FindComponents decomposes the mesh into connected components. Each
// outer pass seeds a breadth-first walk at the lowest-indexed triangle
// not yet assigned to a component, so components are returned in
// ascending order of their seed index.
func FindComponents(m *mesh.Mesh) []Component {
	triangles := m.Triangles()
	connectivity := m.EdgeConnectivity()
	visited := make([]bool, len(triangles))

	var components []Component
	for seed := range triangles {
		if visited[seed] {
			continue
		}

		var component Component
		queue := []mesh.TriangleIndex{mesh.TriangleIndex(seed)}
		visited[seed] = true

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component = append(component, current)

			for _, edge := range triangles[current].Edges() {
				slots, ok := connectivity[edge]
				if !ok {
					continue
				}
				if slots[1] == mesh.Boundary {
					continue // boundary edge, no neighbor to visit
				}
				neighbor := slots[0]
				if neighbor == current {
					neighbor = slots[1]
				}
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}

		components = append(components, component)
	}
	return components
}

// IsClosed reports whether every edge of every triangle in the
// component has exactly two incident triangles. A connectivity entry
// that is missing entirely (which valid meshes never produce) counts
// as open.
func IsClosed(m *mesh.Mesh, component Component) bool {
	connectivity := m.EdgeConnectivity()
	for _, index := range component {
		for _, edge := range m.Triangle(index).Edges() {
			slots, ok := connectivity[edge]
			if !ok {
				return false
			}
			if slots[1] == mesh.Boundary {
				return false
			}
		}
	}
	return true
}

// Closed filters components down to the closed ones, preserving order.
func Closed(m *mesh.Mesh, components []Component) []Component {
	closed := make([]Component, 0, len(components))
	for _, component := range components {
		if IsClosed(m, component) {
			closed = append(closed, component)
		}
	}
	return closed
}
