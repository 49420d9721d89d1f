package geometry

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// lineEntry is the rtreego.Spatial wrapper around one line's bounding box,
// indexed by position in LinesDistancer.lines.
type lineEntry struct {
	idx  int
	rect rtreego.Rect
}

func (e *lineEntry) Bounds() rtreego.Rect { return e.rect }

// neighborFanout is how many rtreego nearest-neighbor candidates are
// pulled before resolving the exact point-to-segment distance among them.
// rtreego's NearestNeighbors ranks by point-to-bounding-box distance,
// which is only a lower bound on point-to-segment distance, so more than
// one candidate is needed to guarantee the true nearest segment is among
// them for lines whose bounding boxes overlap.
const neighborFanout = 8

// LinesDistancer bundles a set of extrusion segments with an R-tree
// acceleration structure over their bounding boxes, and answers signed
// nearest-segment distance queries.
type LinesDistancer struct {
	lines []ExtrusionLine
	tree  *rtreego.Rtree
}

// NewLinesDistancer builds the acceleration structure over lines. An
// empty slice is valid; SignedDistance then always reports +Inf ("no
// hit").
func NewLinesDistancer(lines []ExtrusionLine) *LinesDistancer {
	ld := &LinesDistancer{lines: lines}
	if len(lines) == 0 {
		return ld
	}
	ld.tree = rtreego.NewTree(2, 4, 16)
	for i, l := range lines {
		minX, maxX := minF32(l.A.X, l.B.X), maxF32(l.A.X, l.B.X)
		minY, maxY := minF32(l.A.Y, l.B.Y), maxF32(l.A.Y, l.B.Y)
		// rtreego requires strictly positive side lengths; pad degenerate
		// (zero-length or axis-aligned) boxes by a hair.
		const pad = 1e-4
		lengths := []float64{float64(maxX-minX) + pad, float64(maxY-minY) + pad}
		rect, err := rtreego.NewRect(rtreego.Point{float64(minX) - pad/2, float64(minY) - pad/2}, lengths)
		if err != nil {
			continue
		}
		ld.tree.Insert(&lineEntry{idx: i, rect: rect})
	}
	return ld
}

// Lines returns the underlying line slice.
func (ld *LinesDistancer) Lines() []ExtrusionLine {
	return ld.lines
}

// Line returns the line at the given index.
func (ld *LinesDistancer) Line(idx int) ExtrusionLine {
	return ld.lines[idx]
}

// Empty reports whether the distancer holds no lines.
func (ld *LinesDistancer) Empty() bool {
	return len(ld.lines) == 0
}

// SignedDistance returns the Euclidean distance from point to the nearest
// segment, negated iff point lies to the left of that segment's
// direction (sign taken from the z-component of (b-a)x(point-a)). If the
// distancer holds no lines, it returns +Inf and nearestIdx -1.
func (ld *LinesDistancer) SignedDistance(point Vec2) (dist float32, nearestIdx int, nearestPoint Vec2) {
	if ld.tree == nil || len(ld.lines) == 0 {
		return float32(math.Inf(1)), -1, Vec2{}
	}

	k := neighborFanout
	if k > len(ld.lines) {
		k = len(ld.lines)
	}
	candidates := ld.tree.NearestNeighbors(k, rtreego.Point{float64(point.X), float64(point.Y)})

	best := float32(math.Inf(1))
	bestIdx := -1
	var bestPoint Vec2
	for _, c := range candidates {
		if c == nil {
			continue
		}
		idx := c.(*lineEntry).idx
		d, proj := distancePointToSegment(point, ld.lines[idx].A, ld.lines[idx].B)
		if d < best {
			best = d
			bestIdx = idx
			bestPoint = proj
		}
	}
	if bestIdx < 0 {
		return float32(math.Inf(1)), -1, Vec2{}
	}

	line := ld.lines[bestIdx]
	v1 := line.B.Sub(line.A)
	v2 := point.Sub(line.A)
	if v1.Cross(v2) > 0 {
		best = -best
	}
	return best, bestIdx, bestPoint
}

// distancePointToSegment returns the distance from p to the closest point
// on segment [a,b], and that closest point.
func distancePointToSegment(p, a, b Vec2) (float32, Vec2) {
	ab := b.Sub(a)
	abLenSq := ab.Dot(ab)
	if abLenSq < 1e-12 {
		return p.Sub(a).Norm(), a
	}
	t := p.Sub(a).Dot(ab) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := a.Add(ab.Scale(t))
	return p.Sub(proj).Norm(), proj
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
