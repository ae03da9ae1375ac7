package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chazu/burl/pkg/mesh"
	"github.com/chazu/burl/pkg/orient"
	"github.com/chazu/burl/pkg/stl"
	"github.com/chazu/burl/pkg/voids"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Kebab-case to underscore: load-stl -> load_stl
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
//  2. ; line comments become // comments, which is what zygomys expects.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMesh wraps a loaded mesh so it can be passed between builtins.
type sexpMesh struct {
	mesh *mesh.Mesh
	path string
}

func (m *sexpMesh) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mesh %q %d triangles)", filepath.Base(m.path), m.mesh.Len())
}
func (m *sexpMesh) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if i, ok := s.(*zygo.SexpInt); ok {
		return int(i.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toMesh extracts a mesh from a sexpMesh.
func toMesh(s zygo.Sexp) (*mesh.Mesh, error) {
	if m, ok := s.(*sexpMesh); ok {
		return m.mesh, nil
	}
	return nil, fmt.Errorf("expected mesh, got %T (%s)", s, s.SexpString(nil))
}

// meshArg validates the single-mesh calling convention shared by the
// counting builtins.
func meshArg(name string, args []zygo.Sexp) (*mesh.Mesh, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s requires exactly 1 argument, got %d", name, len(args))
	}
	m, err := toMesh(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the mesh analysis builtins into a zygomys
// environment. Builtins are registered under underscore names; the
// preprocessor converts the kebab-case forms scripts use.
func registerBuiltins(env *zygo.Zlisp) {

	// -----------------------------------------------------------------------
	// (load-stl "part.stl") -> mesh
	// -----------------------------------------------------------------------
	env.AddFunction("load_stl", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("load-stl requires exactly 1 argument, got %d", len(args))
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("load-stl: path: %w", err)
		}
		m, err := mesh.Load(path)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("load-stl: %w", err)
		}
		return &sexpMesh{mesh: m, path: path}, nil
	})

	// -----------------------------------------------------------------------
	// (triangle-count mesh) -> int
	// -----------------------------------------------------------------------
	env.AddFunction("triangle_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, err := meshArg("triangle-count", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpInt{Val: int64(m.Len())}, nil
	})

	// -----------------------------------------------------------------------
	// (edge-count mesh) -> int
	// -----------------------------------------------------------------------
	env.AddFunction("edge_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, err := meshArg("edge-count", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpInt{Val: int64(len(m.EdgeConnectivity()))}, nil
	})

	// -----------------------------------------------------------------------
	// (component-count mesh) -> int
	// -----------------------------------------------------------------------
	env.AddFunction("component_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, err := meshArg("component-count", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpInt{Val: int64(len(voids.FindComponents(m)))}, nil
	})

	// -----------------------------------------------------------------------
	// (closed-count mesh) -> int
	// -----------------------------------------------------------------------
	env.AddFunction("closed_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, err := meshArg("closed-count", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		closed := voids.Closed(m, voids.FindComponents(m))
		return &zygo.SexpInt{Val: int64(len(closed))}, nil
	})

	// -----------------------------------------------------------------------
	// (void-count mesh) -> int
	// -----------------------------------------------------------------------
	env.AddFunction("void_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, err := meshArg("void-count", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		closed := voids.Closed(m, voids.FindComponents(m))
		found, err := voids.Identify(m, closed)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("void-count: %w", err)
		}
		return &zygo.SexpInt{Val: int64(len(found))}, nil
	})

	// -----------------------------------------------------------------------
	// (reorient mesh seed "out.stl") -> number of flipped triangles
	// -----------------------------------------------------------------------
	env.AddFunction("reorient", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("reorient requires mesh, seed and output path, got %d arguments", len(args))
		}
		m, err := toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reorient: %w", err)
		}
		seed, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reorient: seed: %w", err)
		}
		path, err := toString(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reorient: path: %w", err)
		}

		flipped := orient.Propagate(m, seed)

		f, err := os.Create(path)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reorient: %w", err)
		}
		defer f.Close()
		if err := stl.Write(f, "reoriented_triangles", flipped); err != nil {
			return zygo.SexpNull, fmt.Errorf("reorient: %w", err)
		}
		return &zygo.SexpInt{Val: int64(len(flipped))}, nil
	})

	// -----------------------------------------------------------------------
	// (export-voids mesh "voids.stl")
	// -----------------------------------------------------------------------
	env.AddFunction("export_voids", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("export-voids requires mesh and output path, got %d arguments", len(args))
		}
		m, err := toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("export-voids: %w", err)
		}
		path, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("export-voids: path: %w", err)
		}

		f, err := os.Create(path)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("export-voids: %w", err)
		}
		defer f.Close()
		if err := voids.Export(m, f); err != nil {
			return zygo.SexpNull, fmt.Errorf("export-voids: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (convert-binary "in.stl" "out.stl")
	// -----------------------------------------------------------------------
	env.AddFunction("convert_binary", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("convert-binary requires input and output paths, got %d arguments", len(args))
		}
		in, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("convert-binary: input: %w", err)
		}
		out, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("convert-binary: output: %w", err)
		}
		if err := stl.ConvertBinaryToASCII(in, out); err != nil {
			return zygo.SexpNull, fmt.Errorf("convert-binary: %w", err)
		}
		return zygo.SexpNull, nil
	})
}
