package engine

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/stl"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "kebab-case identifier",
			input:  `(load-stl "part.stl")`,
			expect: `(load_stl "part.stl")`,
		},
		{
			name:   "multiple kebab identifiers",
			input:  `(void-count (load-stl "a.stl"))`,
			expect: `(void_count (load_stl "a.stl"))`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "hyphen in string preserved",
			input:  `"nested-cubes.stl"`,
			expect: `"nested-cubes.stl"`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; count the triangles`,
			expect: `// count the triangles`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "kebab in comment converted verbatim",
			input:  `; load-stl does the work`,
			expect: `// load-stl does the work`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Mesh builtin tests
// ---------------------------------------------------------------------------

// cubeTriangles returns the 12 triangles of a closed axis-aligned cube
// with the given minimum corner and edge length.
func cubeTriangles(min geom.Point, s float64) []geom.Triangle {
	p := func(dx, dy, dz float64) geom.Point {
		return geom.Point{X: min.X + dx*s, Y: min.Y + dy*s, Z: min.Z + dz*s}
	}
	c000, c100, c010, c110 := p(0, 0, 0), p(1, 0, 0), p(0, 1, 0), p(1, 1, 0)
	c001, c101, c011, c111 := p(0, 0, 1), p(1, 0, 1), p(0, 1, 1), p(1, 1, 1)

	return []geom.Triangle{
		{A: c000, B: c110, C: c100},
		{A: c000, B: c010, C: c110},
		{A: c001, B: c101, C: c111},
		{A: c001, B: c111, C: c011},
		{A: c000, B: c100, C: c101},
		{A: c000, B: c101, C: c001},
		{A: c010, B: c111, C: c110},
		{A: c010, B: c011, C: c111},
		{A: c000, B: c001, C: c011},
		{A: c000, B: c011, C: c010},
		{A: c100, B: c110, C: c111},
		{A: c100, B: c111, C: c101},
	}
}

// writeSTL writes triangles to a fresh file under the test temp dir and
// returns its path.
func writeSTL(t *testing.T, name string, triangles []geom.Triangle) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := stl.Write(f, "fixture", triangles); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// run evaluates source and fails the test on any error.
func run(t *testing.T, source string) string {
	t.Helper()
	eng := NewEngine()
	output, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return output
}

func TestLoadSTLCounts(t *testing.T) {
	path := writeSTL(t, "cube.stl", cubeTriangles(geom.Point{}, 1))

	t.Run("triangle-count", func(t *testing.T) {
		output := run(t, fmt.Sprintf(`(triangle-count (load-stl %q))`, path))
		if output != "12" {
			t.Errorf("output = %q, want 12", output)
		}
	})

	t.Run("edge-count", func(t *testing.T) {
		output := run(t, fmt.Sprintf(`(edge-count (load-stl %q))`, path))
		if output != "18" {
			t.Errorf("output = %q, want 18", output)
		}
	})

	t.Run("component-count", func(t *testing.T) {
		output := run(t, fmt.Sprintf(`(component-count (load-stl %q))`, path))
		if output != "1" {
			t.Errorf("output = %q, want 1", output)
		}
	})
}

func TestVoidPipeline(t *testing.T) {
	nested := append(
		cubeTriangles(geom.Point{}, 2),
		cubeTriangles(geom.Point{X: 0.5, Y: 0.5, Z: 0.5}, 1)...,
	)
	path := writeSTL(t, "nested.stl", nested)

	if got := run(t, fmt.Sprintf(`(component-count (load-stl %q))`, path)); got != "2" {
		t.Errorf("component-count = %q, want 2", got)
	}
	if got := run(t, fmt.Sprintf(`(closed-count (load-stl %q))`, path)); got != "2" {
		t.Errorf("closed-count = %q, want 2", got)
	}
	if got := run(t, fmt.Sprintf(`(void-count (load-stl %q))`, path)); got != "1" {
		t.Errorf("void-count = %q, want 1", got)
	}
}

func TestBuiltinsCompose(t *testing.T) {
	path := writeSTL(t, "cube.stl", cubeTriangles(geom.Point{}, 1))

	source := fmt.Sprintf(`
(def m (load-stl %q))
(+ (triangle-count m) (edge-count m))
`, path)
	if got := run(t, source); got != "30" {
		t.Errorf("output = %q, want 30", got)
	}
}

func TestReorientBuiltin(t *testing.T) {
	a := geom.Point{X: 0, Y: 0, Z: 0}
	b := geom.Point{X: 1, Y: 0, Z: 0}
	c := geom.Point{X: 0.5, Y: 1, Z: 0}
	d := geom.Point{X: 0.5, Y: -1, Z: 0}
	// Both triangles traverse the shared edge a->b, so the pair is
	// inconsistently oriented.
	triangles := []geom.Triangle{
		{A: a, B: b, C: c},
		{A: a, B: b, C: d},
	}
	path := writeSTL(t, "pair.stl", triangles)
	out := filepath.Join(t.TempDir(), "reoriented.stl")

	output := run(t, fmt.Sprintf(`(reorient (load-stl %q) 0 %q)`, path, out))
	if output != "1" {
		t.Errorf("flip count = %q, want 1", output)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	parsed, err := stl.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(parsed) != 1 {
		t.Errorf("output has %d flipped triangles, want 1", len(parsed))
	}
	// The flipped copy of the second triangle traverses b->a.
	want := geom.Triangle{A: a, B: d, C: b}
	if parsed[0] != want {
		t.Errorf("flipped triangle = %v, want %v", parsed[0], want)
	}
}

func TestExportVoidsBuiltin(t *testing.T) {
	nested := append(
		cubeTriangles(geom.Point{}, 2),
		cubeTriangles(geom.Point{X: 0.5, Y: 0.5, Z: 0.5}, 1)...,
	)
	path := writeSTL(t, "nested.stl", nested)
	out := filepath.Join(t.TempDir(), "voids.stl")

	run(t, fmt.Sprintf(`(export-voids (load-stl %q) %q)`, path, out))

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	parsed, err := stl.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(parsed) != 12 {
		t.Errorf("void export has %d triangles, want 12", len(parsed))
	}
}

func TestConvertBinaryBuiltin(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "part.stl")
	out := filepath.Join(dir, "part-ascii.stl")

	// One binary triangle.
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1})
	binary.Write(&buf, binary.LittleEndian, [9]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	binary.Write(&buf, binary.LittleEndian, uint16(0))
	if err := os.WriteFile(in, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write binary fixture: %v", err)
	}

	run(t, fmt.Sprintf(`(convert-binary %q %q)`, in, out))

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	parsed, err := stl.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(parsed) != 1 {
		t.Errorf("converted %d triangles, want 1", len(parsed))
	}
}

func TestLoadSTLMissingFile(t *testing.T) {
	eng := NewEngine()
	_, evalErrs, err := eng.Evaluate(`(load-stl "/nonexistent/missing.stl")`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for a missing file")
	}
	if !strings.Contains(evalErrs[0].Message, "load") {
		t.Errorf("error %q does not mention the failing builtin", evalErrs[0].Message)
	}
}
