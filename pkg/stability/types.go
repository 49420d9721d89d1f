package stability

import "github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"

// IslandConnection bundles an overlap area and its accumulated first and
// second moments between two layers' islands. It forms an additive
// monoid: Add is associative and commutative up to floating-point
// error.
type IslandConnection struct {
	Area                     float32
	CentroidAccumulator      geometry.Vec3
	SecondMomentAccumulator  geometry.Vec2
}

// Add merges other into this connection in place.
func (c *IslandConnection) Add(other IslandConnection) {
	c.Area += other.Area
	c.CentroidAccumulator = c.CentroidAccumulator.Add(other.CentroidAccumulator)
	c.SecondMomentAccumulator = c.SecondMomentAccumulator.Add(other.SecondMomentAccumulator)
}

// Centroid returns CentroidAccumulator/Area. Callers must have already
// checked Area > epsilon.
func (c IslandConnection) Centroid() geometry.Vec3 {
	return c.CentroidAccumulator.DivScalar(c.Area)
}

// Variance returns the xy variance of the connection's footprint:
// SecondMomentAccumulator/Area - centroid.xy ⊙ centroid.xy.
func (c IslandConnection) Variance() geometry.Vec2 {
	centroid := c.Centroid()
	cxy := centroid.XY()
	return c.SecondMomentAccumulator.DivScalar(c.Area).Sub(cxy.Mul(cxy))
}

// Island is a layer's maximal connected set of extrusions sharing an
// external perimeter or containment relationship. It exists only as
// long as its LayerIslands.
type Island struct {
	Volume                      float32
	VolumeCentroidAccumulator   geometry.Vec3

	StickingArea                     float32
	StickingCentroidAccumulator      geometry.Vec3
	StickingSecondMomentAccumulator  geometry.Vec2

	// ConnectedIslands maps previous-layer island index -> the overlap
	// connection to it, accumulated from the raster.
	ConnectedIslands map[int]*IslandConnection

	// ExternalLines are this island's external-perimeter segments, walked
	// by the global pass when placing supports.
	ExternalLines []geometry.ExtrusionLine
}

func newIsland() *Island {
	return &Island{ConnectedIslands: make(map[int]*IslandConnection)}
}

// addConnection accumulates pixel-overlap area/moments into the
// connection from this island to previous-layer island prevIdx.
func (isl *Island) addConnection(prevIdx int, area float32, centroid3 geometry.Vec3, secondMoment geometry.Vec2) {
	conn := isl.ConnectedIslands[prevIdx]
	if conn == nil {
		conn = &IslandConnection{}
		isl.ConnectedIslands[prevIdx] = conn
	}
	conn.Area += area
	conn.CentroidAccumulator = conn.CentroidAccumulator.Add(centroid3)
	conn.SecondMomentAccumulator = conn.SecondMomentAccumulator.Add(secondMoment)
}

// LayerIslands is one layer's islands plus that layer's z.
type LayerIslands struct {
	Islands []*Island
	LayerZ  float32
}

// ObjectPart is the moment bundle tracked per connected component of
// islands across layers — a rigid body built up from the islands that
// merge into it as the graph is walked layer by layer. It is the same
// accumulators as Island, without the connection graph.
type ObjectPart struct {
	Volume                    float32
	VolumeCentroidAccumulator geometry.Vec3

	StickingArea                    float32
	StickingCentroidAccumulator     geometry.Vec3
	StickingSecondMomentAccumulator geometry.Vec2
}

// newObjectPartFromIsland copies an island's accumulators into a fresh
// part (the original's ObjectPart(const Island&) constructor).
func newObjectPartFromIsland(isl *Island) *ObjectPart {
	return &ObjectPart{
		Volume:                          isl.Volume,
		VolumeCentroidAccumulator:       isl.VolumeCentroidAccumulator,
		StickingArea:                    isl.StickingArea,
		StickingCentroidAccumulator:     isl.StickingCentroidAccumulator,
		StickingSecondMomentAccumulator: isl.StickingSecondMomentAccumulator,
	}
}

// Add merges other's accumulators into this part in place.
func (p *ObjectPart) Add(other *ObjectPart) {
	p.Volume += other.Volume
	p.VolumeCentroidAccumulator = p.VolumeCentroidAccumulator.Add(other.VolumeCentroidAccumulator)
	p.StickingArea += other.StickingArea
	p.StickingCentroidAccumulator = p.StickingCentroidAccumulator.Add(other.StickingCentroidAccumulator)
	p.StickingSecondMomentAccumulator = p.StickingSecondMomentAccumulator.Add(other.StickingSecondMomentAccumulator)
}

// addIsland folds an island's accumulators into this part, once the part
// assignment for an island is fixed.
func (p *ObjectPart) addIsland(isl *Island) {
	p.Add(newObjectPartFromIsland(isl))
}

// AddSupportPoint injects a point-sized circular footprint of the given
// area into the part's sticking moments.
func (p *ObjectPart) AddSupportPoint(position geometry.Vec3, area float32) {
	p.StickingArea += area
	p.StickingCentroidAccumulator = p.StickingCentroidAccumulator.Add(position.Scale(area))
	xy := position.XY()
	p.StickingSecondMomentAccumulator = p.StickingSecondMomentAccumulator.Add(xy.Mul(xy).Scale(area))
}

const momentEpsilon = 1e-6

// sectionModulus is a crude area-weighted bending-resistance proxy:
// project the footprint's xy variance onto the push direction, take its
// extreme-fiber distance, and scale area by the variance sum over that
// distance.
func sectionModulus(centroidAccum geometry.Vec3, secondMomentAccum geometry.Vec2, area float32, lineDir geometry.Vec2) float32 {
	if area < momentEpsilon {
		return 0
	}
	centroid := centroidAccum.DivScalar(area)
	cxy := centroid.XY()
	variance := secondMomentAccum.DivScalar(area).Sub(cxy.Mul(cxy))
	variance = variance.Mul(lineDir.Abs())
	fiber := variance.Sqrt().Norm()
	if fiber < momentEpsilon {
		return 0
	}
	return area * (variance.X + variance.Y) / fiber
}
