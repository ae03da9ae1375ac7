// Package polyline compresses segment soups describing a single
// connected polyline or polygon into an ordered vertex walk. It is
// independent of the mesh engine: its graph is one-dimensional (vertex
// degree at most two) and its connectivity is positional, not
// geometric.
package polyline

import "fmt"

// VertexIndex indexes a vertex in the caller's vertex table.
type VertexIndex int32

// unconnected marks an unused neighbor slot.
const unconnected VertexIndex = -1

// Representation selects how the data passed to New is encoded.
type Representation int

const (
	// VerboseSegments is a flat buffer of index pairs, one pair per
	// segment, in arbitrary order and direction.
	VerboseSegments Representation = iota
	// CompressedOrdering is an already-compressed vertex walk, stored
	// as-is.
	CompressedOrdering
)

// Kind distinguishes open polylines from closed polygons.
type Kind int

const (
	Open Kind = iota
	Closed
)

// Polyline is a single connected chain of segments stored as a
// compressed vertex ordering. A closed polyline's ordering starts and
// ends with the same vertex.
type Polyline struct {
	ordering []VertexIndex
	kind     Kind
}

// New builds a polyline from segment data in the given representation.
// Verbose buffers are validated up front: they must be non-empty and of
// even length, every vertex may participate in at most two segments,
// and the number of degree-1 endpoints must be zero (polygon) or two
// (open polyline). The compression walk assumes validated input.
func New(representation Representation, data []VertexIndex) (*Polyline, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("polyline: segment buffer cannot be empty")
	}

	p := &Polyline{}
	switch representation {
	case VerboseSegments:
		if len(data)%2 != 0 {
			return nil, fmt.Errorf("polyline: segment buffer must contain an even number of entries")
		}
		if err := validate(data); err != nil {
			return nil, err
		}
		p.ordering = compress(data)

	case CompressedOrdering:
		p.ordering = append([]VertexIndex(nil), data...)

	default:
		return nil, fmt.Errorf("polyline: unsupported representation %d", representation)
	}

	if p.isPolygon() {
		p.kind = Closed
	}
	return p, nil
}

// Ordering returns the compressed vertex ordering. Callers must not
// modify it.
func (p *Polyline) Ordering() []VertexIndex {
	return p.ordering
}

// Kind reports whether the polyline is open or closed.
func (p *Polyline) Kind() Kind {
	return p.kind
}

// isPolygon reports whether the compressed ordering loops back to its
// starting vertex.
func (p *Polyline) isPolygon() bool {
	return len(p.ordering) >= 2 && p.ordering[0] == p.ordering[len(p.ordering)-1]
}

// validate checks the single-connected-chain assumptions on a verbose
// segment buffer: per-vertex degree at most 2, and exactly 0 or 2
// degree-1 endpoints. Vertices that appear in no segment are ignored.
func validate(segments []VertexIndex) error {
	maxVertex := VertexIndex(0)
	for _, v := range segments {
		if v > maxVertex {
			maxVertex = v
		}
	}

	degree := make([]uint8, maxVertex+1)
	for i := 0; i < len(segments); i += 2 {
		degree[segments[i]]++
		degree[segments[i+1]]++
	}

	endpoints := 0
	for v, d := range degree {
		if d > 2 {
			return fmt.Errorf("polyline: vertex %d has degree %d; expected at most 2 for a single connected chain", v, d)
		}
		if d == 1 {
			endpoints++
		}
	}
	if endpoints != 0 && endpoints != 2 {
		return fmt.Errorf("polyline: expected 0 or 2 degree-1 endpoints, found %d", endpoints)
	}
	return nil
}

// compress walks the chain described by the segment buffer and returns
// the vertex ordering. Polygons start at the smallest participating
// vertex so the result is deterministic; open polylines start at the
// smaller of the two endpoints.
func compress(segments []VertexIndex) []VertexIndex {
	maxVertex := VertexIndex(0)
	for _, v := range segments {
		if v > maxVertex {
			maxVertex = v
		}
	}
	numVertices := maxVertex + 1

	// Each vertex connects to at most two neighbors.
	type slot struct {
		first, second VertexIndex
	}
	connectivity := make([]slot, numVertices)
	for i := range connectivity {
		connectivity[i] = slot{first: unconnected, second: unconnected}
	}
	assign := func(vertex, neighbor VertexIndex) {
		if connectivity[vertex].first == unconnected {
			connectivity[vertex].first = neighbor
			return
		}
		connectivity[vertex].second = neighbor
	}
	for i := 0; i < len(segments); i += 2 {
		assign(segments[i], segments[i+1])
		assign(segments[i+1], segments[i])
	}

	// Degree-1 endpoints: only the first slot is filled.
	var endpoints []VertexIndex
	for v := VertexIndex(0); v < numVertices; v++ {
		if connectivity[v].first != unconnected && connectivity[v].second == unconnected {
			endpoints = append(endpoints, v)
		}
	}

	closed := len(endpoints) == 0
	start := VertexIndex(0)
	if closed {
		for v := VertexIndex(0); v < numVertices; v++ {
			if connectivity[v].first != unconnected {
				start = v
				break
			}
		}
	} else {
		start = endpoints[0]
		if endpoints[1] < start {
			start = endpoints[1]
		}
	}

	// next returns the neighbor of vertex that is not previous, or
	// unconnected at the far end of an open chain.
	next := func(vertex, previous VertexIndex) VertexIndex {
		s := connectivity[vertex]
		if s.first != unconnected && s.first != previous {
			return s.first
		}
		if s.second != unconnected && s.second != previous {
			return s.second
		}
		return unconnected
	}

	ordering := make([]VertexIndex, 0, numVertices+1)
	ordering = append(ordering, start)

	previous := start
	current := connectivity[start].first
	ordering = append(ordering, current)

	for {
		n := next(current, previous)
		if n == unconnected {
			break // reached the far endpoint of an open chain
		}
		ordering = append(ordering, n)
		if closed && n == start {
			break // completed the loop
		}
		previous = current
		current = n
	}
	return ordering
}
