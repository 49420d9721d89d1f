package stability

import (
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/raster"
)

// collectRawLines appends entity's consecutive-point segments to out
// without any stability bookkeeping — used for the base layer (which
// never runs the local analyzer, since there's nothing below it to
// bridge over) and for fill entities whose role isn't bridge/gap fill
// (only those two fill roles are bridging-checked; plain infill and
// solid infill just contribute raw geometry to the raster).
func collectRawLines(entity ExtrusionEntity, ids *entityIDs, out *[]geometry.ExtrusionLine) {
	if entity.IsCollection() {
		for _, child := range entity.Entities() {
			collectRawLines(child, ids, out)
		}
		return
	}
	origin := ids.idFor(entity)
	points := entity.CollectPoints()
	for i := 0; i < len(points)-1; i++ {
		*out = append(*out, geometry.NewLineWithVolume(points[i], points[i+1], origin, entity.Role(), entity.MinMM3PerMM()))
	}
	if entity.IsLoop() && len(points) > 1 {
		*out = append(*out, geometry.NewLineWithVolume(points[len(points)-1], points[0], origin, entity.Role(), entity.MinMM3PerMM()))
	}
}

func isBridgingRole(role geometry.Role) bool {
	return role == geometry.RoleGapFill || role == geometry.RoleBridgeInfill
}

// CheckExtrusionsAndBuildGraph walks every layer of obj, running the
// local bridging/malformation analyzer on every layer but the first
// (which only contributes its raw geometry to the island raster), and
// returns both the local support points that analyzer found and the
// per-layer island graph the global pass needs.
func CheckExtrusionsAndBuildGraph(obj PrintObject, params Params) (Issues, []LayerIslands) {
	layers := obj.Layers()
	if len(layers) == 0 {
		return Issues{}, nil
	}

	if params.RasterResolution <= 0 {
		lastRegions := layers[len(layers)-1].Regions()
		if len(lastRegions) > 0 {
			params.RasterResolution = flowWidthForRole(lastRegions[0], geometry.RoleExternalPerimeter)
		}
		if params.RasterResolution <= 0 {
			params.RasterResolution = 0.4
		}
	}

	min, max := obj.Size()
	margin := geometry.Vec2{X: params.RasterResolution, Y: params.RasterResolution}
	prevLayerGrid := raster.NewPixelGrid(min.Sub(margin), max.Add(margin), params.RasterResolution)

	var issues Issues
	var islandsGraph []LayerIslands

	ids := newEntityIDs()

	// First layer: raw geometry only, no bridging/malformation check
	// (nothing below it to bridge over).
	firstLayer := layers[0]
	var firstLayerLines []geometry.ExtrusionLine
	for _, region := range firstLayer.Regions() {
		for _, perimeter := range region.Perimeters() {
			collectRawLines(perimeter, ids, &firstLayerLines)
		}
		for _, fill := range region.Fills() {
			collectRawLines(fill, ids, &firstLayerLines)
		}
	}

	var firstRegion LayerRegion
	if regions := firstLayer.Regions(); len(regions) > 0 {
		firstRegion = regions[0]
	}
	layerIslands, layerGrid := reckonIslands(firstLayer.SliceZ(), true, prevLayerGrid, firstLayerLines, firstRegion)
	islandsGraph = append(islandsGraph, layerIslands)

	externalLines := geometry.NewLinesDistancer(firstLayerLines)
	prevLayerGrid = layerGrid

	for layerIdx := 1; layerIdx < len(layers); layerIdx++ {
		layer := layers[layerIdx]
		layerZ := layer.SliceZ()
		var layerLines []geometry.ExtrusionLine

		regions := layer.Regions()
		for _, region := range regions {
			for _, perimeter := range region.Perimeters() {
				checkEntityStability(perimeter, layerZ, region, externalLines, params, &issues, &layerLines, ids)
			}
			for _, fill := range region.Fills() {
				if isBridgingRole(fill.Role()) {
					checkEntityStability(fill, layerZ, region, externalLines, params, &issues, &layerLines, ids)
				} else {
					collectRawLines(fill, ids, &layerLines)
				}
			}
		}

		var region LayerRegion
		if len(regions) > 0 {
			region = regions[0]
		}
		layerIslands, layerGrid := reckonIslands(layerZ, false, prevLayerGrid, layerLines, region)
		islandsGraph = append(islandsGraph, layerIslands)

		externalLines = geometry.NewLinesDistancer(layerLines)
		prevLayerGrid = layerGrid
	}

	return issues, islandsGraph
}

// QuickSearch is a placeholder for a cheap pre-filter that narrows down
// which layers are worth a FullSearch. The original's equivalent never
// got past a stub either; nothing downstream depends on a particular
// result here yet.
func QuickSearch(obj PrintObject, params Params) []int {
	return nil
}

// FullSearch runs the complete local-then-global analysis and merges
// both sets of support points into one Issues value, local points last:
// global supports are structural and are reported before the purely
// local bridging catches.
func FullSearch(obj PrintObject, params Params) Issues {
	localIssues, graph := CheckExtrusionsAndBuildGraph(obj, params)

	presence := raster.NewVoxelSet(geometry.Vec3{}, params.MinDistanceBetweenSupportPoints)
	globalIssues := CheckGlobalStability(presence, graph, params)

	globalIssues.SupportPoints = append(globalIssues.SupportPoints, localIssues.SupportPoints...)
	return globalIssues
}
