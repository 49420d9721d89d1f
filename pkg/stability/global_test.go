package stability

import (
	"testing"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/raster"
)

func TestConnectionStrengthEstimateNarrowerIsWeaker(t *testing.T) {
	wide := IslandConnection{
		Area:                    1,
		CentroidAccumulator:     geometry.Vec3{Z: 0},
		SecondMomentAccumulator: geometry.Vec2{X: 100, Y: 100},
	}
	narrow := IslandConnection{
		Area:                    1,
		CentroidAccumulator:     geometry.Vec3{Z: 0},
		SecondMomentAccumulator: geometry.Vec2{X: 1, Y: 1},
	}

	if connectionStrengthEstimate(narrow, 1.0) >= connectionStrengthEstimate(wide, 1.0) {
		t.Fatalf("narrow connection should score weaker than wide connection")
	}
}

func TestCheckGlobalStabilityIslandWithoutExternalLinesGetsNoSupport(t *testing.T) {
	isl := newIsland()
	isl.Volume = 1
	isl.StickingArea = 1

	graph := []LayerIslands{
		{LayerZ: 0.2, Islands: []*Island{isl}},
	}
	presence := raster.NewVoxelSet(geometry.Vec3{}, 0.2)

	issues := CheckGlobalStability(presence, graph, Defaults())
	if len(issues.SupportPoints) != 0 {
		t.Fatalf("island with no external lines should not generate support points, got %d", len(issues.SupportPoints))
	}
}

func TestCheckGlobalStabilityPlacesSupportOnUnsupportedIsland(t *testing.T) {
	isl := newIsland()
	isl.Volume = 1
	isl.VolumeCentroidAccumulator = geometry.Vec3{Z: 0.2}
	isl.ExternalLines = []geometry.ExtrusionLine{
		geometry.NewLine(geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 5, Y: 0}, 1, geometry.RoleExternalPerimeter),
	}

	graph := []LayerIslands{
		{LayerZ: 0.2, Islands: []*Island{isl}},
	}
	presence := raster.NewVoxelSet(geometry.Vec3{}, 0.2)

	issues := CheckGlobalStability(presence, graph, Defaults())
	if len(issues.SupportPoints) == 0 {
		t.Fatal("expected a support point for an island with no sticking area and a long external line")
	}
}
