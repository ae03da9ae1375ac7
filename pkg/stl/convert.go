package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// binaryTriangle mirrors the 50-byte packed record of the binary STL
// container: a normal, nine vertex coordinates, and an attribute byte
// count.
type binaryTriangle struct {
	Normal [3]float32
	Verts  [9]float32
	Attr   uint16
}

// ConvertBinaryToASCII reads the binary container at binPath (80-byte
// header, little-endian uint32 triangle count, tightly packed records)
// and re-emits it as ASCII STL at asciiPath under the solid name
// "converted". The stored normals are discarded; each facet is written
// with a zero normal.
func ConvertBinaryToASCII(binPath, asciiPath string) error {
	in, err := os.Open(binPath)
	if err != nil {
		return fmt.Errorf("stl: open binary %s: %w", binPath, err)
	}
	defer in.Close()

	out, err := os.Create(asciiPath)
	if err != nil {
		return fmt.Errorf("stl: create %s: %w", asciiPath, err)
	}
	defer out.Close()

	r := bufio.NewReader(in)
	var header [80]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return fmt.Errorf("stl: read header: %w", err)
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("stl: read triangle count: %w", err)
	}

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "solid converted\n")
	for i := uint32(0); i < count; i++ {
		var rec binaryTriangle
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("stl: read triangle %d: %w", i, err)
		}
		fmt.Fprintf(w, "  facet normal 0 0 0\n")
		fmt.Fprintf(w, "    outer loop\n")
		for j := 0; j < 3; j++ {
			fmt.Fprintf(w, "      vertex %g %g %g\n", rec.Verts[j*3], rec.Verts[j*3+1], rec.Verts[j*3+2])
		}
		fmt.Fprintf(w, "    endloop\n")
		fmt.Fprintf(w, "  endfacet\n")
	}
	fmt.Fprintf(w, "endsolid converted\n")
	if err := w.Flush(); err != nil {
		return fmt.Errorf("stl: write %s: %w", asciiPath, err)
	}
	return nil
}
