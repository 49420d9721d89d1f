package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/config"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/debugexport"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/fixture"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/kernel"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/kernel/sdfx"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/raster"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/stability"
)

// App wires config loading, the support analyzer and optional debug mesh
// export into a single entry point, one struct wiring together the
// config loader, solid-modeling kernel, and analyzer behind two methods.
type App struct {
	loader *config.Loader
	kernel kernel.Kernel
}

// NewApp creates a new App with a config loader and the sdfx kernel.
func NewApp() *App {
	return &App{
		loader: config.NewLoader(),
		kernel: sdfx.New(),
	}
}

// AnalyzeResult bundles everything a run produced for a caller that wants
// more than just the analyzer's own structured output.
type AnalyzeResult struct {
	Issues     stability.Issues
	ConfigErrs []config.LoadError
}

// Analyze reads a sliced object from objectJSON and a Params-configuration
// script from configSource (configSource may be empty, in which case
// stability.Defaults() is used), and runs the full local-then-global
// analysis.
//
// A non-fatal config problem is reported via ConfigErrs with Defaults()
// still applied, while a fatal failure reading or decoding the object
// returns an error.
func (a *App) Analyze(objectJSON io.Reader, configSource string) (AnalyzeResult, error) {
	params, configErrs, err := a.loader.Load(configSource)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("config: %w", err)
	}

	obj, err := fixture.Decode(objectJSON)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("object: %w", err)
	}

	issues := stability.FullSearch(obj, params)
	return AnalyzeResult{Issues: issues, ConfigErrs: configErrs}, nil
}

// WriteDebugMesh runs the analysis a second time (CheckExtrusionsAndBuildGraph
// is cheap relative to a real slicing pipeline and callers that want meshes
// are already in a debug workflow) to get at the island graph, then renders
// support markers and island footprints as a single OBJ file.
func (a *App) WriteDebugMesh(objectJSON io.Reader, configSource string, w io.Writer) error {
	params, _, err := a.loader.Load(configSource)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	obj, err := fixture.Decode(objectJSON)
	if err != nil {
		return fmt.Errorf("object: %w", err)
	}

	localIssues, graph := stability.CheckExtrusionsAndBuildGraph(obj, params)
	presence := raster.NewVoxelSet(geometry.Vec3{}, params.MinDistanceBetweenSupportPoints)
	globalIssues := stability.CheckGlobalStability(presence, graph, params)
	globalIssues.SupportPoints = append(globalIssues.SupportPoints, localIssues.SupportPoints...)

	meshes := debugexport.SupportPointMeshes(a.kernel, globalIssues.SupportPoints, float64(params.SupportPointsInterfaceRadius))
	meshes = append(meshes, debugexport.IslandFootprintMeshes(a.kernel, graph, 0.1)...)

	return debugexport.WriteOBJ(w, meshes)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		log.Fatal("usage: prusaslicer-boss <object.json> [config.zy] [debug.obj]")
	}

	objectFile, err := os.Open(args[0])
	if err != nil {
		log.Fatalf("open object file: %v", err)
	}
	defer objectFile.Close()

	var configSource string
	if len(args) > 1 {
		b, err := os.ReadFile(args[1])
		if err != nil {
			log.Fatalf("read config file: %v", err)
		}
		configSource = string(b)
	}

	app := NewApp()
	result, err := app.Analyze(objectFile, configSource)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}
	for _, e := range result.ConfigErrs {
		log.Printf("config: %v", e)
	}

	for _, sp := range result.Issues.SupportPoints {
		fmt.Printf("support point %.3f %.3f %.3f force=%.3f\n", sp.Position.X, sp.Position.Y, sp.Position.Z, sp.Force)
	}

	if len(args) > 2 {
		if _, err := objectFile.Seek(0, io.SeekStart); err != nil {
			log.Fatalf("rewind object file: %v", err)
		}
		debugFile, err := os.Create(args[2])
		if err != nil {
			log.Fatalf("create debug mesh file: %v", err)
		}
		defer debugFile.Close()
		if err := app.WriteDebugMesh(objectFile, configSource, debugFile); err != nil {
			log.Fatalf("write debug mesh: %v", err)
		}
	}
}
