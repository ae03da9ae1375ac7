// Package geom defines the geometric primitives of the burl topology
// engine: exact-valued 3D points, canonical undirected edges, and
// oriented triangles. All types are comparable structs and can be used
// directly as map keys.
package geom

import "math"

// hashMix is the boost-style hash combining constant.
const hashMix = 0x9e3779b97f4a7c15

// combine folds hash k into h.
func combine(h, k uint64) uint64 {
	return h ^ (k + hashMix + (h << 6) + (h >> 2))
}

// Point is a 3D point in Cartesian coordinates. Points compare by exact
// value equality; there is no tolerance at this level.
type Point struct {
	X, Y, Z float64
}

// Less reports whether p orders lexicographically before q, comparing
// X, then Y, then Z.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.Z < q.Z
}

// Hash returns a combined hash of the three coordinate bit patterns.
// Equal points hash equal.
func (p Point) Hash() uint64 {
	h := math.Float64bits(p.X)
	h = combine(h, math.Float64bits(p.Y))
	h = combine(h, math.Float64bits(p.Z))
	return h
}

// Sub returns the vector p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Dot returns the dot product of p and q treated as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product of p and q treated as vectors.
func (p Point) Cross(q Point) Point {
	return Point{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Norm2 returns the squared magnitude of p treated as a vector.
func (p Point) Norm2() float64 {
	return p.X*p.X + p.Y*p.Y + p.Z*p.Z
}

// Min returns the componentwise minimum of p and q.
func (p Point) Min(q Point) Point {
	return Point{
		X: math.Min(p.X, q.X),
		Y: math.Min(p.Y, q.Y),
		Z: math.Min(p.Z, q.Z),
	}
}

// Max returns the componentwise maximum of p and q.
func (p Point) Max(q Point) Point {
	return Point{
		X: math.Max(p.X, q.X),
		Y: math.Max(p.Y, q.Y),
		Z: math.Max(p.Z, q.Z),
	}
}

// Edge is an undirected mesh edge in canonical form: A is the
// lexicographically smaller endpoint. Build edges with NewEdge so the
// same geometric edge, whichever triangle or direction referenced it,
// compares and hashes identically.
type Edge struct {
	A, B Point
}

// NewEdge returns the canonical edge between p and q.
// NewEdge(p, q) == NewEdge(q, p) for all p, q.
func NewEdge(p, q Point) Edge {
	if q.Less(p) {
		return Edge{A: q, B: p}
	}
	return Edge{A: p, B: q}
}

// Hash combines the endpoint hashes.
func (e Edge) Hash() uint64 {
	return combine(e.A.Hash(), e.B.Hash())
}

// Triangle is an ordered vertex triple. The vertex order encodes
// orientation: the triangle's directed edges are A->B, B->C, C->A.
// Each triangle owns its own three point values.
type Triangle struct {
	A, B, C Point
}

// Reversed returns a copy of the triangle with the opposite winding
// (second and third vertices swapped). Reversing twice restores the
// original vertex order.
func (t Triangle) Reversed() Triangle {
	return Triangle{A: t.A, B: t.C, C: t.B}
}

// Edges returns the triangle's three edges in canonical form, in the
// order A-B, B-C, C-A.
func (t Triangle) Edges() [3]Edge {
	return [3]Edge{
		NewEdge(t.A, t.B),
		NewEdge(t.B, t.C),
		NewEdge(t.C, t.A),
	}
}

// HasDirectedEdge reports whether the triangle traverses from -> to as
// one of its directed edges.
func (t Triangle) HasDirectedEdge(from, to Point) bool {
	return (t.A == from && t.B == to) ||
		(t.B == from && t.C == to) ||
		(t.C == from && t.A == to)
}

// Normal returns the unnormalized face normal (B-A) x (C-A). Its
// squared magnitude doubles as the triangle's area test, avoiding a
// square root.
func (t Triangle) Normal() Point {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}
