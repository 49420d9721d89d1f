package raster

import "github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"

// VoxelSet is a sparse 3-D hash set of occupied cube cells, used to dedupe
// support-point placements during the global pass (the original's
// SupportGridFilter). It lives through the whole global pass and is
// mutated only from the sequential driver.
type VoxelSet struct {
	origin   geometry.Vec3
	cellSize float32
	taken    map[[3]int]struct{}
}

// NewVoxelSet creates an empty voxel set with origin and cube cell size.
func NewVoxelSet(origin geometry.Vec3, cellSize float32) *VoxelSet {
	return &VoxelSet{
		origin:   origin,
		cellSize: cellSize,
		taken:    make(map[[3]int]struct{}),
	}
}

func (v *VoxelSet) cellCoords(p geometry.Vec3) [3]int {
	rel := p.Sub(v.origin)
	return [3]int{
		int(rel.X / v.cellSize),
		int(rel.Y / v.cellSize),
		int(rel.Z / v.cellSize),
	}
}

// Take marks the cell containing position as occupied.
func (v *VoxelSet) Take(position geometry.Vec3) {
	v.taken[v.cellCoords(position)] = struct{}{}
}

// Taken reports whether the cell containing position is already occupied.
func (v *VoxelSet) Taken(position geometry.Vec3) bool {
	_, ok := v.taken[v.cellCoords(position)]
	return ok
}
