// daetool is a CLI utility for inspecting COLLADA (.dae) models.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/Faultbox/daeloader/internal/assets"
	"github.com/Faultbox/daeloader/internal/config"
	"github.com/Faultbox/daeloader/internal/logger"
	"github.com/Faultbox/daeloader/pkg/collada"
	"github.com/Faultbox/daeloader/pkg/mesh"
)

func main() {
	config.ParseFlags()
	os.Exit(run(config.Args()))
}

// run executes one command and returns the process exit code. Logs are
// flushed before it returns.
func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		return cmdInfo(cfg, args)
	case "nodes":
		return cmdNodes(args)
	case "materials", "mat":
		return cmdMaterials(args)
	case "textures", "tex":
		return cmdTextures(args)
	case "diagnostics", "diag":
		return cmdDiagnostics(args)
	case "report":
		return cmdReport(cfg, args)
	case "dump":
		return cmdDump(args)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println(`daetool - COLLADA model utility

Usage:
  daetool [flags] <command> <file.dae>

Commands:
  info <file.dae>         Show model summary
  nodes <file.dae>        List geometry nodes
  materials <file.dae>    List resolved materials
  textures [-decode] [-I dir]... <file.dae>
                          Check texture files referenced by materials
  diagnostics <file.dae>  List problems found while loading
  report <file.dae>       Write a YAML report
  dump [-depth N] <file>  Dump the loaded model

Flags:
  -config <path>          Config file (default ./daetool.yaml)
  -debug                  Enable debug logging
  -log-file <path>        Write logs to a rotating file
  -keep-axis              Do not convert the model to +Y up
  -flip-v                 Flip texture V coordinates
  -flat-normals           Use face normals
  -color-group <name>     Vertex color channel to use
  -format text|yaml       Output format for info

Examples:
  daetool info house.dae
  daetool -format yaml info house.dae
  daetool textures -decode -I ./shared-textures house.dae
  daetool dump -depth 3 house.dae`)
}

// loadModel loads the document named by the single positional argument.
// It reports the failure itself; callers return exit code 1 when ok is false.
func loadModel(usage string, args []string) (path string, model *collada.Model, ok bool) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: daetool "+usage)
		return "", nil, false
	}
	path = args[0]

	model, err := collada.LoadFile(path, collada.Options{Logger: logger.Named("collada")})
	if err != nil {
		logger.Error("load failed", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return path, nil, false
	}
	logger.Info("loaded model",
		zap.String("path", path),
		zap.Int("nodes", len(model.Nodes)),
		zap.Int("diagnostics", len(model.Diagnostics)),
	)
	return path, model, true
}

func buildOptions(cfg *config.Config) mesh.BuildOptions {
	return mesh.BuildOptions{
		ConvertToYUp: cfg.Mesh.YUp,
		FlipV:        cfg.Mesh.FlipV,
		FlatNormals:  cfg.Mesh.FlatNormals,
		ColorGroup:   cfg.Mesh.ColorGroup,
	}
}

func cmdInfo(cfg *config.Config, args []string) int {
	path, model, ok := loadModel("info <file.dae>", args)
	if !ok {
		return 1
	}
	built := mesh.Build(model, buildOptions(cfg))

	if cfg.Output.Format == config.FormatYAML {
		if err := writeReport(os.Stdout, newReport(path, model, built)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Printf("File:        %s\n", path)
	fmt.Printf("Up axis:     %s\n", model.UpAxis)
	fmt.Printf("Nodes:       %d\n", len(model.Nodes))
	fmt.Printf("Materials:   %d\n", len(model.Materials))
	fmt.Printf("Triangles:   %d\n", model.TriangleCount())
	fmt.Printf("Vertices:    %d\n", model.VertexCount())
	fmt.Printf("Diagnostics: %d\n", len(model.Diagnostics))

	if built == nil {
		fmt.Println()
		fmt.Println("Mesh: (empty)")
		return 0
	}
	size := built.Bounds.Size()
	fmt.Println()
	fmt.Printf("Mesh vertices: %d\n", len(built.Vertices))
	fmt.Printf("Mesh groups:   %d\n", len(built.Groups))
	fmt.Printf("Bounds min:    %.3f %.3f %.3f\n", built.Bounds.Min[0], built.Bounds.Min[1], built.Bounds.Min[2])
	fmt.Printf("Bounds max:    %.3f %.3f %.3f\n", built.Bounds.Max[0], built.Bounds.Max[1], built.Bounds.Max[2])
	fmt.Printf("Size:          %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
	return 0
}

func cmdNodes(args []string) int {
	_, model, ok := loadModel("nodes <file.dae>", args)
	if !ok {
		return 1
	}

	fmt.Printf("%-4s %-24s %-16s %-16s %6s %6s %6s %6s  %s\n",
		"#", "Geometry", "Symbol", "Material", "Tris", "Verts", "Norms", "UVs", "Colors")
	for i, n := range model.Nodes {
		matName := "-"
		if n.Material != nil {
			matName = n.Material.Name
		}
		colors := strings.Join(n.ColorGroups(), ",")
		if colors == "" {
			colors = "-"
		}
		fmt.Printf("%-4d %-24s %-16s %-16s %6d %6d %6d %6d  %s\n",
			i, n.Geometry, orDash(n.Symbol), matName,
			len(n.Triangles), len(n.Vertices), len(n.Normals), len(n.TexCoords), colors)
	}
	return 0
}

func cmdMaterials(args []string) int {
	_, model, ok := loadModel("materials <file.dae>", args)
	if !ok {
		return 1
	}

	for _, m := range model.Materials {
		fmt.Printf("%s\n", m.Name)
		fmt.Printf("  shading:      %s\n", orDash(m.Shading))
		fmt.Printf("  color:        #%08X\n", m.Color)
		fmt.Printf("  transparency: %.3f\n", m.Transparency)
		fmt.Printf("  texture:      %s\n", orDash(m.Texture))
	}
	return 0
}

func cmdTextures(args []string) int {
	fs := flag.NewFlagSet("textures", flag.ContinueOnError)
	decode := fs.Bool("decode", false, "Decode every texture fully instead of reading headers")
	var dirs searchDirs
	fs.Var(&dirs, "I", "Extra texture search directory (repeatable, later wins)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	path, model, ok := loadModel("textures [-decode] [-I dir]... <file.dae>", fs.Args())
	if !ok {
		return 1
	}
	manager := assets.NewManager(filepath.Dir(path))
	for _, dir := range dirs {
		manager.AddSearchDir(dir)
	}

	summary := checkTextures(os.Stdout, model, manager, *decode)

	hits, misses := manager.Cache().Stats()
	logger.Sugar.Debugf("texture cache: %d hits, %d misses", hits, misses)
	if summary.Missing > 0 || summary.Failed > 0 {
		return 2
	}
	return 0
}

func cmdDiagnostics(args []string) int {
	_, model, ok := loadModel("diagnostics <file.dae>", args)
	if !ok {
		return 1
	}

	for _, d := range model.Diagnostics {
		fmt.Println(d)
	}
	if len(model.Diagnostics) == 0 {
		fmt.Println("No diagnostics")
	}
	return 0
}

func cmdReport(cfg *config.Config, args []string) int {
	path, model, ok := loadModel("report <file.dae>", args)
	if !ok {
		return 1
	}
	built := mesh.Build(model, buildOptions(cfg))

	if err := writeReport(os.Stdout, newReport(path, model, built)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func cmdDump(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	depth := fs.Int("depth", 0, "Maximum nesting depth (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	_, model, ok := loadModel("dump [-depth N] <file.dae>", fs.Args())
	if !ok {
		return 1
	}

	dumper := spew.ConfigState{
		Indent:                  "  ",
		MaxDepth:                *depth,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	dumper.Dump(model)
	return 0
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
