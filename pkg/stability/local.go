package stability

import (
	"math"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
)

// entityIDs hands out stable EntityID handles for ExtrusionEntity values
// within a single layer, so lines resampled from the same original path
// compare equal the way the original's origin_entity pointer comparison
// does. Entities are typically backed by pointers, so interface equality
// is cheap and exact; scoping one allocator per layer keeps IDs small
// without requiring global identity.
type entityIDs struct {
	ids  map[ExtrusionEntity]geometry.EntityID
	next geometry.EntityID
}

func newEntityIDs() *entityIDs {
	return &entityIDs{ids: make(map[ExtrusionEntity]geometry.EntityID)}
}

func (e *entityIDs) idFor(entity ExtrusionEntity) geometry.EntityID {
	if id, ok := e.ids[entity]; ok {
		return id
	}
	e.next++
	e.ids[entity] = e.next
	return e.next
}

// Malformation constants, carried over verbatim from the original.
const (
	malformationInheritFactor   = 0.9
	malformationOverhangFactor  = 0.3
	malformationBaseIncrement   = 0.15
	malformationBaseWeight      = 0.8
	malformationCurvatureWeight = 0.2
)

// propertiesAccumulator tracks an unsupported run's length and the
// largest absolute accumulated turning angle seen over that run
// over that run. It drives both the bridging and malformation checks.
type propertiesAccumulator struct {
	distance     float32
	curvature    float32
	maxCurvature float32
}

func (a *propertiesAccumulator) addDistance(dist float32) {
	a.distance += dist
}

func (a *propertiesAccumulator) addAngle(ccwAngle float32) {
	a.curvature += ccwAngle
	if abs := float32(math.Abs(float64(a.curvature))); abs > a.maxCurvature {
		a.maxCurvature = abs
	}
}

func (a *propertiesAccumulator) reset() {
	a.distance = 0
	a.curvature = 0
	a.maxCurvature = 0
}

// resampleEntity walks a single (non-collection) entity's polyline,
// splitting each original segment into sub-segments no longer than
// params.BridgeDistance. The original's leading zero-length line (a
// self-loop at the first point) is preserved so
// checkEntityStability's i+1 angle lookahead never runs out of bounds
// one line early.
func resampleEntity(points []geometry.Vec2, origin geometry.EntityID, role geometry.Role, minMM3PerMM, bridgeDistance float32) []geometry.ExtrusionLine {
	if len(points) == 0 {
		return nil
	}
	lines := make([]geometry.ExtrusionLine, 0, int(float32(len(points))*1.5))
	lines = append(lines, geometry.NewLineWithVolume(points[0], points[0], origin, role, minMM3PerMM))

	for i := 0; i < len(points)-1; i++ {
		start, next := points[i], points[i+1]
		v := next.Sub(start)
		distToNext := v.Norm()
		dir := v.Normalized()

		linesCount := int(math.Ceil(float64(distToNext / bridgeDistance)))
		if linesCount < 1 {
			linesCount = 1
		}
		stepSize := distToNext / float32(linesCount)
		for i := 0; i < linesCount; i++ {
			a := start.Add(dir.Scale(float32(i) * stepSize))
			b := start.Add(dir.Scale(float32(i+1) * stepSize))
			lines = append(lines, geometry.NewLineWithVolume(a, b, origin, role, minMM3PerMM))
		}
	}
	return lines
}

// checkEntityStability recursively walks entity (descending into
// collections), resamples each leaf path, and for each resulting segment
// checks it against the previous layer's line set for unsupported
// bridging and accumulating malformation. Segments that get a support
// point placed on them have SupportPointGenerated set; malformation is
// carried forward from the nearest previous-layer line, propagating
// along a run the same way the original does.
func checkEntityStability(
	entity ExtrusionEntity,
	layerZ float32,
	region LayerRegion,
	prevLayerLines *geometry.LinesDistancer,
	params Params,
	issues *Issues,
	checkedLinesOut *[]geometry.ExtrusionLine,
	ids *entityIDs,
) {
	if entity.IsCollection() {
		for _, child := range entity.Entities() {
			checkEntityStability(child, layerZ, region, prevLayerLines, params, issues, checkedLinesOut, ids)
		}
		return
	}

	points := entity.CollectPoints()
	if len(points) == 0 {
		return
	}
	role := entity.Role()
	lines := resampleEntity(points, ids.idFor(entity), role, entity.MinMM3PerMM(), params.BridgeDistance)

	var bridgingAcc, malformationAcc propertiesAccumulator
	// Initialize unsupported distance larger than tolerable so a
	// perimeter that starts or loops with a short run never extrudes
	// into thin air undetected.
	bridgingAcc.addDistance(params.BridgeDistance + 1.0)

	flowWidth := flowWidthForRole(region, role)

	for idx := range lines {
		current := &lines[idx]
		var currAngle float32
		if idx+1 < len(lines) {
			v1 := current.Direction()
			v2 := lines[idx+1].Direction()
			currAngle = geometry.Angle(v1, v2)
		}
		bridgingAcc.addAngle(currAngle)
		malformationAcc.addAngle(float32(math.Max(0, float64(currAngle))))

		var distFromPrevLayer float32
		var nearestIdx int
		var nearestPoint geometry.Vec2
		if prevLayerLines != nil && !prevLayerLines.Empty() {
			distFromPrevLayer, nearestIdx, nearestPoint = prevLayerLines.SignedDistance(current.B)
		} else {
			distFromPrevLayer = params.BridgeDistance + flowWidth + 1.0
		}
		_ = nearestPoint

		if float32(math.Abs(float64(distFromPrevLayer))) < flowWidth {
			bridgingAcc.reset()
		} else {
			bridgingAcc.addDistance(current.Len)
			threshold := params.BridgeDistance / (1.0 + bridgingAcc.maxCurvature*params.BridgeDistanceDecreaseByCurvatureFactor/math.Pi)
			if bridgingAcc.distance > threshold {
				issues.SupportPoints = append(issues.SupportPoints, SupportPoint{
					Position:  geometry.To3(current.B, layerZ),
					Force:     0,
					Direction: geometry.Vec3{Z: -1},
				})
				current.SupportPointGenerated = true
				bridgingAcc.reset()
			}
		}

		if float32(math.Abs(float64(distFromPrevLayer))) < flowWidth*2.0 && prevLayerLines != nil && !prevLayerLines.Empty() {
			nearestLine := prevLayerLines.Line(nearestIdx)
			current.Malformation += malformationInheritFactor * nearestLine.Malformation
		}
		if distFromPrevLayer > flowWidth*malformationOverhangFactor {
			malformationAcc.addDistance(current.Len)
			current.Malformation += malformationBaseIncrement * (malformationBaseWeight + malformationCurvatureWeight*malformationAcc.maxCurvature/(1.0+0.5*malformationAcc.distance))
		} else {
			malformationAcc.reset()
		}
	}

	*checkedLinesOut = append(*checkedLinesOut, lines...)
}
