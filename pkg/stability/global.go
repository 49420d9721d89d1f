package stability

import (
	"log"
	"math"
	"sort"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/raster"
)

// zeroAreaConnection is the neutral connection a freshly emerging island
// (one with no overlap to the previous layer) is seeded with: area 1 so
// IsStableWhileExtruding's epsilon guard never trips on it, infinite
// variance so it never reads as a weak link worth replacing.
var zeroAreaConnection = IslandConnection{
	Area:                    1.0,
	SecondMomentAccumulator: geometry.Vec2{X: float32(math.Inf(1)), Y: float32(math.Inf(1))},
}

// connectionStrengthEstimate scores a connection by its narrowest
// footprint dimension divided by how far below the current layer its
// centroid sits — a short, wide, close connection is judged strong; a
// thin or distant one is judged weak — the "weakest connection" between
// a layer and the one below it.
func connectionStrengthEstimate(conn IslandConnection, layerZ float32) float32 {
	centroid := conn.CentroidAccumulator.DivScalar(conn.Area)
	variance := conn.SecondMomentAccumulator.DivScalar(conn.Area).Sub(centroid.XY().Mul(centroid.XY()))
	minVariance := variance.X
	if variance.Y < minVariance {
		minVariance = variance.Y
	}
	armLenEstimate := layerZ - centroid.Z
	if armLenEstimate < 1.1 {
		armLenEstimate = 1.1
	}
	return minVariance / armLenEstimate
}

// DumpGraph logs the island graph's shape for debugging: island counts,
// sticking areas and connection fan-out per layer, gated by
// Params.Verbose.
func DumpGraph(graph []LayerIslands) {
	log.Println("stability: built island graph")
	for layerIdx, layer := range graph {
		log.Printf("stability: layer %d at z=%.3f has %d islands", layerIdx, layer.LayerZ, len(layer.Islands))
		for islandIdx, isl := range layer.Islands {
			log.Printf("stability:   island %d volume=%.4f sticking_area=%.4f connections=%d lines=%d",
				islandIdx, isl.Volume, isl.StickingArea, len(isl.ConnectedIslands), len(isl.ExternalLines))
		}
	}
	log.Println("stability: end of island graph")
}

// CheckGlobalStability walks the island graph layer by layer, tracking
// which islands belong to the same rigid part (merging on overlap),
// carrying forward each island's weakest connection, and — once a
// layer's part assignments are settled — testing every part against the
// torque-balance formula along its external perimeter, placing support
// points wherever the test fails.
func CheckGlobalStability(supportsPresence *raster.VoxelSet, graph []LayerIslands, params Params) Issues {
	if params.Verbose {
		DumpGraph(graph)
	}

	var issues Issues
	parts := newActiveObjectParts()

	prevPartOf := make(map[int]int)
	nextPartOf := make(map[int]int)
	prevWeakest := make(map[int]IslandConnection)
	nextWeakest := make(map[int]IslandConnection)

	for layerIdx, layer := range graph {
		layerZ := layer.LayerZ

		for islandIdx, isl := range layer.Islands {
			if len(isl.ConnectedIslands) == 0 {
				partID := parts.Insert(isl)
				nextPartOf[islandIdx] = partID
				nextWeakest[islandIdx] = zeroAreaConnection
				continue
			}

			prevIslandIdxs := make([]int, 0, len(isl.ConnectedIslands))
			for prevIslandIdx := range isl.ConnectedIslands {
				prevIslandIdxs = append(prevIslandIdxs, prevIslandIdx)
			}
			sort.Ints(prevIslandIdxs)

			seenParts := make(map[int]struct{})
			var transferredWeakest, newWeakest IslandConnection
			var finalPartID int
			first := true
			for _, prevIslandIdx := range prevIslandIdxs {
				conn := isl.ConnectedIslands[prevIslandIdx]
				partID := parts.GetFlatID(prevPartOf[prevIslandIdx])
				if _, ok := seenParts[partID]; !ok {
					seenParts[partID] = struct{}{}
					if first {
						finalPartID = partID
						first = false
					} else if partID != finalPartID {
						parts.Merge(partID, finalPartID)
					}
				}
				transferredWeakest.Add(prevWeakest[prevIslandIdx])
				newWeakest.Add(*conn)
			}

			if connectionStrengthEstimate(transferredWeakest, layerZ) < connectionStrengthEstimate(newWeakest, layerZ) {
				newWeakest = transferredWeakest
			}
			nextWeakest[islandIdx] = newWeakest
			nextPartOf[islandIdx] = finalPartID
			parts.Access(finalPartID).addIsland(isl)
		}

		prevPartOf, nextPartOf = nextPartOf, make(map[int]int)
		prevWeakest, nextWeakest = nextWeakest, make(map[int]IslandConnection)

		// Part assignments for this layer are final; test every island's
		// external perimeter against the torque balance and place
		// supports where it fails.
		for islandIdx, isl := range layer.Islands {
			part := parts.Access(prevPartOf[islandIdx])
			weakestConn := prevWeakest[islandIdx]

			var islandLinesDist *geometry.LinesDistancer
			uncheckedDist := params.MinDistanceBetweenSupportPoints + 1.0

			for _, line := range isl.ExternalLines {
				skip := (uncheckedDist+line.Len < params.MinDistanceBetweenSupportPoints && line.Malformation < 0.3) || line.Len == 0
				if skip {
					uncheckedDist += line.Len
					continue
				}
				uncheckedDist = line.Len

				force := part.IsStableWhileExtruding(weakestConn, line, layerZ, params)
				if force <= 0 {
					continue
				}

				if islandLinesDist == nil {
					islandLinesDist = geometry.NewLinesDistancer(isl.ExternalLines)
				}
				pivotSearch := line.B.Add(line.B.Sub(line.A).Normalized().Scale(300.0))
				_, _, targetPoint := islandLinesDist.SignedDistance(pivotSearch)
				supportPoint := geometry.To3(targetPoint, layerZ)

				if supportsPresence.Taken(supportPoint) {
					continue
				}
				area := params.SupportPointsInterfaceRadius * params.SupportPointsInterfaceRadius * math.Pi

				part.AddSupportPoint(supportPoint, area)
				issues.SupportPoints = append(issues.SupportPoints, SupportPoint{
					Position:  supportPoint,
					Force:     force,
					Direction: geometry.To3(line.B.Sub(line.A).Normalized(), 0),
				})
				supportsPresence.Take(supportPoint)

				weakestConn.Area += area
				weakestConn.CentroidAccumulator = weakestConn.CentroidAccumulator.Add(supportPoint.Scale(area))
				xy := supportPoint.XY()
				weakestConn.SecondMomentAccumulator = weakestConn.SecondMomentAccumulator.Add(xy.Mul(xy).Scale(area))
			}
			prevWeakest[islandIdx] = weakestConn
		}

		if params.Verbose {
			log.Printf("stability: finished global pass for layer %d z=%.3f", layerIdx, layerZ)
		}
	}

	return issues
}
