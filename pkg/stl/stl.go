// Package stl reads and writes the ASCII STL boundary format and
// converts the fixed-layout binary container to ASCII. The parser is
// deliberately loose: it only cares about vertex statements and ignores
// every other token, which lets it accept files from sloppy exporters.
package stl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/chazu/burl/pkg/geom"
)

// Parse scans r for vertex statements: every three numeric triples that
// follow "vertex" tokens form one triangle. All other tokens (solid,
// facet, normals, loop keywords) are skipped. An incomplete trailing
// vertex group is dropped, and a malformed number ends the parse with
// the triangles built so far. The only error returned is a read error
// from the underlying stream.
func Parse(r io.Reader) ([]geom.Triangle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	var (
		triangles []geom.Triangle
		verts     [3]geom.Point
		nverts    int
		coords    [3]float64
		ncoords   int
		inVertex  bool // the next tokens are vertex coordinates
	)

	for scanner.Scan() {
		tok := scanner.Text()

		if inVertex {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				// Malformed number: stop parsing.
				return triangles, nil
			}
			coords[ncoords] = v
			ncoords++
			if ncoords == 3 {
				verts[nverts] = geom.Point{X: coords[0], Y: coords[1], Z: coords[2]}
				nverts++
				ncoords = 0
				inVertex = false
				if nverts == 3 {
					triangles = append(triangles, geom.Triangle{A: verts[0], B: verts[1], C: verts[2]})
					nverts = 0
				}
			}
			continue
		}

		if tok == "vertex" {
			inVertex = true
			ncoords = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stl: read: %w", err)
	}
	return triangles, nil
}

// Write emits the triangles as ASCII STL bracketed by solid/endsolid
// lines, one facet block per triangle. The facet normal is the
// unnormalized cross product of the triangle's edge vectors. Output is
// a pure function of the input: writing the same list twice produces
// byte-identical bytes.
func Write(w io.Writer, name string, triangles []geom.Triangle) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range triangles {
		writeTriangle(bw, t)
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl: write: %w", err)
	}
	return nil
}

func writeTriangle(w io.Writer, t geom.Triangle) {
	n := t.Normal()
	fmt.Fprintf(w, "  facet normal %g %g %g\n", n.X, n.Y, n.Z)
	fmt.Fprintf(w, "    outer loop\n")
	fmt.Fprintf(w, "      vertex %g %g %g\n", t.A.X, t.A.Y, t.A.Z)
	fmt.Fprintf(w, "      vertex %g %g %g\n", t.B.X, t.B.Y, t.B.Z)
	fmt.Fprintf(w, "      vertex %g %g %g\n", t.C.X, t.C.Y, t.C.Z)
	fmt.Fprintf(w, "    endloop\n")
	fmt.Fprintf(w, "  endfacet\n")
}
