package geom

import "testing"

func TestNewEdgeCanonicalOrder(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
	}{
		{"ordered on x", Point{X: 0, Y: 5, Z: 5}, Point{X: 1, Y: 0, Z: 0}},
		{"ordered on y", Point{X: 1, Y: 0, Z: 5}, Point{X: 1, Y: 2, Z: 0}},
		{"ordered on z", Point{X: 1, Y: 1, Z: 0}, Point{X: 1, Y: 1, Z: 3}},
		{"negative coordinates", Point{X: -2, Y: 0, Z: 0}, Point{X: -1, Y: 0, Z: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward := NewEdge(tt.p, tt.q)
			backward := NewEdge(tt.q, tt.p)
			if forward != backward {
				t.Errorf("NewEdge(p,q) = %v, NewEdge(q,p) = %v, want equal", forward, backward)
			}
			if !forward.A.Less(forward.B) {
				t.Errorf("edge %v not in canonical order", forward)
			}
		})
	}
}

func TestEdgeHashOrderIndependent(t *testing.T) {
	p := Point{X: 1.5, Y: -2.25, Z: 3}
	q := Point{X: -4, Y: 0.125, Z: 9}
	if NewEdge(p, q).Hash() != NewEdge(q, p).Hash() {
		t.Error("edge hash differs depending on endpoint supply order")
	}
}

func TestPointHashEqualValues(t *testing.T) {
	a := Point{X: 0.1, Y: 0.2, Z: 0.3}
	b := Point{X: 0.1, Y: 0.2, Z: 0.3}
	if a != b {
		t.Fatal("equal-valued points compare unequal")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal-valued points hash differently")
	}
}

func TestPointHashDistinguishesAxes(t *testing.T) {
	// Permuting the same coordinate values across axes should not
	// collide for typical inputs.
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 3, Y: 2, Z: 1}
	if a.Hash() == b.Hash() {
		t.Error("axis-permuted points hash identically")
	}
}

func TestTriangleReversedIdempotence(t *testing.T) {
	tri := Triangle{
		A: Point{X: 0, Y: 0, Z: 0},
		B: Point{X: 1, Y: 0, Z: 0},
		C: Point{X: 0, Y: 1, Z: 0},
	}
	rev := tri.Reversed()
	if rev.A != tri.A || rev.B != tri.C || rev.C != tri.B {
		t.Errorf("Reversed() = %v, want second and third vertices swapped", rev)
	}
	if rev.Reversed() != tri {
		t.Error("reversing twice did not restore the original triangle")
	}
}

func TestTriangleEdgesInvariantUnderReversal(t *testing.T) {
	tri := Triangle{
		A: Point{X: 0, Y: 0, Z: 0},
		B: Point{X: 2, Y: 0, Z: 0},
		C: Point{X: 0, Y: 2, Z: 0},
	}
	original := tri.Edges()
	reversed := tri.Reversed().Edges()

	seen := map[Edge]bool{}
	for _, e := range original {
		seen[e] = true
	}
	for _, e := range reversed {
		if !seen[e] {
			t.Errorf("reversed triangle produced edge %v not present in the original", e)
		}
	}
}

func TestHasDirectedEdge(t *testing.T) {
	a := Point{X: 0, Y: 0, Z: 0}
	b := Point{X: 1, Y: 0, Z: 0}
	c := Point{X: 0, Y: 1, Z: 0}
	tri := Triangle{A: a, B: b, C: c}

	tests := []struct {
		name     string
		from, to Point
		want     bool
	}{
		{"a to b", a, b, true},
		{"b to c", b, c, true},
		{"c to a", c, a, true},
		{"b to a reversed", b, a, false},
		{"a to c reversed", a, c, false},
		{"unrelated point", a, Point{X: 9, Y: 9, Z: 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tri.HasDirectedEdge(tt.from, tt.to); got != tt.want {
				t.Errorf("HasDirectedEdge(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestNormal(t *testing.T) {
	// Unit right triangle in the XY plane: normal is +Z with magnitude 1.
	tri := Triangle{
		A: Point{X: 0, Y: 0, Z: 0},
		B: Point{X: 1, Y: 0, Z: 0},
		C: Point{X: 0, Y: 1, Z: 0},
	}
	n := tri.Normal()
	if n != (Point{X: 0, Y: 0, Z: 1}) {
		t.Errorf("Normal() = %v, want (0 0 1)", n)
	}
	// Reversing the winding negates the normal.
	rn := tri.Reversed().Normal()
	if rn != (Point{X: 0, Y: 0, Z: -1}) {
		t.Errorf("reversed Normal() = %v, want (0 0 -1)", rn)
	}
}
