// Command burl inspects and repairs triangle meshes stored as STL.
//
// Usage:
//
//	burl info <mesh.stl>
//	burl reorient [-seed N] [-o out.stl] <mesh.stl>
//	burl voids [-o out.stl] <mesh.stl>
//	burl convert <binary.stl> <ascii.stl>
//	burl gen [-shape box|sphere|hollow-box] [-cells N] [-o out.stl]
//	burl script <program.lisp>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/burl/pkg/config"
	"github.com/chazu/burl/pkg/engine"
	"github.com/chazu/burl/pkg/kernel"
	"github.com/chazu/burl/pkg/kernel/sdfx"
	"github.com/chazu/burl/pkg/mesh"
	"github.com/chazu/burl/pkg/orient"
	"github.com/chazu/burl/pkg/stl"
	"github.com/chazu/burl/pkg/voids"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "info":
		runInfo(os.Args[2:])
	case "reorient":
		runReorient(os.Args[2:])
	case "voids":
		runVoids(os.Args[2:])
	case "convert":
		runConvert(os.Args[2:])
	case "gen":
		runGen(os.Args[2:])
	case "script":
		runScript(os.Args[2:])
	default:
		log.Printf("unknown command %q", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: burl <command> [arguments]

commands:
  info      print topology statistics for a mesh
  reorient  propagate a consistent orientation and write the result
  voids     export enclosed components to a new STL file
  convert   convert binary STL to ASCII STL
  gen       generate a test solid as ASCII STL
  script    run a Lisp analysis script`)
}

// loadConfig reads the config file when one is given, otherwise returns
// the defaults.
func loadConfig(path string) config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func loadMesh(path string) *mesh.Mesh {
	m, err := mesh.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	return m
}

func runInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("info: expected exactly one mesh file")
	}

	m := loadMesh(fs.Arg(0))
	components := voids.FindComponents(m)
	closed := voids.Closed(m, components)
	found, err := voids.Identify(m, closed)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("triangles:  %d\n", m.Len())
	fmt.Printf("edges:      %d\n", len(m.EdgeConnectivity()))
	fmt.Printf("components: %d\n", len(components))
	fmt.Printf("closed:     %d\n", len(closed))
	fmt.Printf("voids:      %d\n", len(found))
}

func runReorient(args []string) {
	fs := flag.NewFlagSet("reorient", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config file")
	seed := fs.Int("seed", -1, "triangle index to start propagation from")
	out := fs.String("o", "reoriented.stl", "output file")
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("reorient: expected exactly one mesh file")
	}

	cfg := loadConfig(*configPath)
	start := cfg.Seed
	if *seed >= 0 {
		start = *seed
	}

	m := loadMesh(fs.Arg(0))
	flipped := orient.Propagate(m, start)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := stl.Write(f, "reoriented_triangles", flipped); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%d flipped triangles)\n", *out, len(flipped))
}

func runVoids(args []string) {
	fs := flag.NewFlagSet("voids", flag.ExitOnError)
	out := fs.String("o", "voids.stl", "output file")
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("voids: expected exactly one mesh file")
	}

	m := loadMesh(fs.Arg(0))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := voids.Export(m, f); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", *out)
}

func runConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		log.Fatal("convert: expected input and output files")
	}

	if err := stl.ConvertBinaryToASCII(fs.Arg(0), fs.Arg(1)); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", fs.Arg(1))
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config file")
	shape := fs.String("shape", "box", "shape to generate: box, sphere or hollow-box")
	cells := fs.Int("cells", 0, "marching cubes resolution")
	out := fs.String("o", "generated.stl", "output file")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	resolution := cfg.MeshCells
	if *cells > 0 {
		resolution = *cells
	}

	k := sdfx.New()
	var solid kernel.Solid
	switch *shape {
	case "box":
		solid = k.Box(2, 2, 2)
	case "sphere":
		solid = k.Sphere(1)
	case "hollow-box":
		solid = k.Difference(
			k.Box(2, 2, 2),
			k.Translate(k.Box(1, 1, 1), 0.5, 0.5, 0.5),
		)
	default:
		log.Fatalf("gen: unknown shape %q", *shape)
	}

	triangles, err := k.ToTriangles(solid, resolution)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := stl.Write(f, cfg.SolidName, triangles); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%d triangles)\n", *out, len(triangles))
}

func runScript(args []string) {
	fs := flag.NewFlagSet("script", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("script: expected exactly one script file")
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	eng := engine.NewEngine()
	output, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		log.Fatal(err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Printf("error: %s", e.Error())
		}
		os.Exit(1)
	}
	if output != "" {
		fmt.Println(output)
	}
}
