package stability

import (
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/raster"
)

// extrusionRun is a [start,end) range into a layer's checked lines, all
// sampled from the same origin entity.
type extrusionRun struct {
	start, end int
}

// groupExtrusionRuns partitions layerLines into maximal runs sharing the
// same Origin, in line-index order. A polyline resampled by
// checkEntityStability always emits its lines contiguously, so this is a
// single linear pass.
func groupExtrusionRuns(layerLines []geometry.ExtrusionLine) []extrusionRun {
	var runs []extrusionRun
	var current geometry.EntityID
	haveCurrent := false
	for i, line := range layerLines {
		if haveCurrent && line.Origin == current {
			runs[len(runs)-1].end = i + 1
		} else {
			runs = append(runs, extrusionRun{start: i, end: i + 1})
			current = line.Origin
			haveCurrent = true
		}
	}
	return runs
}

// reckonIslands groups one layer's resampled lines into islands and
// rasterizes their overlap against the previous layer's grid.
// prevLayerGrid is read-only here; the returned grid is what becomes
// next layer's "previous" grid.
func reckonIslands(
	layerZ float32,
	firstLayer bool,
	prevLayerGrid *raster.PixelGrid,
	layerLines []geometry.ExtrusionLine,
	region LayerRegion,
) (LayerIslands, *raster.PixelGrid) {
	runs := groupExtrusionRuns(layerLines)

	var islandDistancers []*geometry.LinesDistancer
	var islandExtrusions [][]int

	// Seed one island candidate per external-perimeter run. Interior
	// runs (holes, infill) may later turn out to belong to one of these,
	// or may get merged away as a nested hole.
	for runIdx, run := range runs {
		if layerLines[run.start].IsExternalPerimeter() {
			copyLines := append([]geometry.ExtrusionLine(nil), layerLines[run.start:run.end]...)
			islandDistancers = append(islandDistancers, geometry.NewLinesDistancer(copyLines))
			islandExtrusions = append(islandExtrusions, []int{runIdx})
		}
	}

	// Backup: external perimeters can themselves be pure overhang
	// perimeters indistinguishable from interior ones, so no external
	// run may have been found. Fall back to the first run as a single
	// island rather than producing nothing.
	if len(islandDistancers) == 0 && len(runs) > 0 {
		run := runs[0]
		copyLines := append([]geometry.ExtrusionLine(nil), layerLines[run.start:run.end]...)
		islandDistancers = append(islandDistancers, geometry.NewLinesDistancer(copyLines))
		islandExtrusions = append(islandExtrusions, []int{0})
	}

	// Assign non-external runs to whichever island they sit inside.
	for runIdx, run := range runs {
		if layerLines[run.start].IsExternalPerimeter() {
			continue
		}
		assigned := false
		for i, dist := range islandDistancers {
			d, _, _ := dist.SignedDistance(layerLines[run.start].A)
			if d < 0 {
				islandExtrusions[i] = append(islandExtrusions[i], runIdx)
				assigned = true
				break
			}
		}
		if !assigned && len(islandExtrusions) > 0 {
			islandExtrusions[0] = append(islandExtrusions[0], runIdx)
		}
	}

	// Merge islands nested inside each other (typically holes whose
	// external perimeter sits inside another island's boundary).
	for i := range islandDistancers {
		if islandDistancers[i].Empty() {
			continue
		}
		for j := range islandDistancers {
			if i == j || islandDistancers[j].Empty() {
				continue
			}
			d, _, _ := islandDistancers[i].SignedDistance(islandDistancers[j].Line(0).A)
			if d < 0 {
				islandExtrusions[i] = append(islandExtrusions[i], islandExtrusions[j]...)
				islandExtrusions[j] = nil
			}
		}
	}

	flowWidth := flowWidthForRole(region, geometry.RoleExternalPerimeter)

	result := LayerIslands{LayerZ: layerZ}
	lineToIsland := make([]uint64, len(layerLines))
	for i := range lineToIsland {
		lineToIsland[i] = raster.NullIsland
	}

	for _, runIdxs := range islandExtrusions {
		if len(runIdxs) == 0 {
			continue
		}
		isl := newIsland()
		firstRun := runs[runIdxs[0]]
		isl.ExternalLines = append(isl.ExternalLines, layerLines[firstRun.start:firstRun.end]...)

		islandIdx := uint64(len(result.Islands))
		for _, runIdx := range runIdxs {
			run := runs[runIdx]
			for lidx := run.start; lidx < run.end; lidx++ {
				lineToIsland[lidx] = islandIdx
				line := &layerLines[lidx]
				volume := line.Len * line.MinMM3PerMM
				isl.Volume += volume
				mid := line.Mid()
				isl.VolumeCentroidAccumulator = isl.VolumeCentroidAccumulator.Add(geometry.To3(mid, layerZ).Scale(volume))

				if firstLayer {
					stickingArea := line.Len * flowWidth
					isl.StickingArea += stickingArea
					isl.StickingCentroidAccumulator = isl.StickingCentroidAccumulator.Add(geometry.To3(mid, layerZ).Scale(stickingArea))
					isl.StickingSecondMomentAccumulator = isl.StickingSecondMomentAccumulator.Add(mid.Mul(mid).Scale(stickingArea))
				} else if line.SupportPointGenerated {
					stickingArea := line.Len * flowWidth
					isl.StickingArea += stickingArea
					isl.StickingCentroidAccumulator = isl.StickingCentroidAccumulator.Add(geometry.To3(line.B, layerZ).Scale(stickingArea))
					isl.StickingSecondMomentAccumulator = isl.StickingSecondMomentAccumulator.Add(line.B.Mul(line.B).Scale(stickingArea))
				}
			}
		}
		result.Islands = append(result.Islands, isl)
	}

	currentGrid := prevLayerGrid.Clone()
	for i, line := range layerLines {
		currentGrid.DistributeEdge(line.A, line.B, lineToIsland[i])
	}

	for x := 0; x < currentGrid.CountX(); x++ {
		for y := 0; y < currentGrid.CountY(); y++ {
			curIsland := currentGrid.GetPixel(x, y)
			prevIsland := prevLayerGrid.GetPixel(x, y)
			if curIsland == raster.NullIsland || prevIsland == raster.NullIsland {
				continue
			}
			center := currentGrid.GetPixelCenter(x, y)
			area := currentGrid.PixelArea()
			result.Islands[curIsland].addConnection(int(prevIsland), area, geometry.To3(center, layerZ).Scale(area), center.Mul(center).Scale(area))
		}
	}

	return result, currentGrid
}
