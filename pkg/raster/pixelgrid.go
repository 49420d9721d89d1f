// Package raster provides the dense 2-D island raster (PixelGrid) and the
// sparse 3-D support-placement dedup grid (VoxelSet). Neither needs
// anything beyond the standard library: both are flat integer buffers
// with simple coordinate math, and no example repo carries a
// grid/raster library suited to this.
package raster

import (
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
)

// NullIsland is the reserved value denoting an empty PixelGrid cell.
const NullIsland = ^uint64(0)

// PixelGrid is a dense 2-D raster, one cell per square pixel, each cell
// holding an island id or NullIsland.
type PixelGrid struct {
	origin    geometry.Vec2
	pixelSize float32
	countX    int
	countY    int
	pixels    []uint64
}

// NewPixelGrid allocates a grid covering [min,max] (the object's xy
// bounding box plus a one-pixel margin) at the given square pixel size.
func NewPixelGrid(min, max geometry.Vec2, pixelSize float32) *PixelGrid {
	size := max.Sub(min)
	countX := int(size.X/pixelSize) + 1
	countY := int(size.Y/pixelSize) + 1
	if countX < 1 {
		countX = 1
	}
	if countY < 1 {
		countY = 1
	}
	g := &PixelGrid{
		origin:    min,
		pixelSize: pixelSize,
		countX:    countX,
		countY:    countY,
		pixels:    make([]uint64, countX*countY),
	}
	g.Clear()
	return g
}

// Clear resets every cell to NullIsland in place, reusing the existing
// allocation. The reckoner does not call it between layers: it takes a
// freshly allocated grid from Clone for every layer.
func (g *PixelGrid) Clear() {
	for i := range g.pixels {
		g.pixels[i] = NullIsland
	}
}

// Clone returns a grid with the same extent and pixel size, filled with
// NullIsland. Used by the reckoner to roll prev/cur grids without
// aliasing.
func (g *PixelGrid) Clone() *PixelGrid {
	clone := &PixelGrid{
		origin:    g.origin,
		pixelSize: g.pixelSize,
		countX:    g.countX,
		countY:    g.countY,
		pixels:    make([]uint64, len(g.pixels)),
	}
	clone.Clear()
	return clone
}

// PixelArea returns the area of one pixel.
func (g *PixelGrid) PixelArea() float32 {
	return g.pixelSize * g.pixelSize
}

// CountX and CountY return the grid's pixel extent.
func (g *PixelGrid) CountX() int { return g.countX }
func (g *PixelGrid) CountY() int { return g.countY }

func (g *PixelGrid) toPixelCoords(p geometry.Vec2) (int, int) {
	rel := p.Sub(g.origin)
	return int(rel.X / g.pixelSize), int(rel.Y / g.pixelSize)
}

func (g *PixelGrid) toIndex(x, y int) int {
	return y*g.countX + x
}

func (g *PixelGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.countX && y >= 0 && y < g.countY
}

// GetPixel returns the island id stored at (x,y). Coordinates outside the
// grid are a programmer error: the grid is sized to the object bounding
// box plus margin, so an out-of-range query means the caller computed
// geometry outside the object. Panics rather than returning a sentinel.
func (g *PixelGrid) GetPixel(x, y int) uint64 {
	if !g.inBounds(x, y) {
		panic("raster: pixel coordinates out of bounds")
	}
	return g.pixels[g.toIndex(x, y)]
}

// GetPixelCenter returns the world-space center of pixel (x,y).
func (g *PixelGrid) GetPixelCenter(x, y int) geometry.Vec2 {
	return geometry.Vec2{
		X: g.origin.X + (float32(x)+0.5)*g.pixelSize,
		Y: g.origin.Y + (float32(y)+0.5)*g.pixelSize,
	}
}

// DistributeEdge walks segment (p1,p2) in steps of pixelSize/2 and writes
// value into each hit cell. Steps below 0.1 length are a no-op.
// Intentionally unsynchronized: concurrent calls from multiple
// goroutines racing on the same cell are acceptable last-write-wins,
// because all lines of one island carry the same id and the raster is a
// heuristic overlap estimator, not ground truth.
func (g *PixelGrid) DistributeEdge(p1, p2 geometry.Vec2, value uint64) {
	dir := p2.Sub(p1)
	length := dir.Norm()
	if length < 0.1 {
		return
	}
	stepSize := g.pixelSize / 2.0

	var distributed float32
	for distributed < length {
		next := length
		if distributed+stepSize < next {
			next = distributed + stepSize
		}
		location := p1.Add(dir.Scale(next / length))
		x, y := g.toPixelCoords(location)
		if g.inBounds(x, y) {
			g.pixels[g.toIndex(x, y)] = value
		}
		distributed = next
	}
}
