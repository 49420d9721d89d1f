// Package stability implements the auto-support analyzer: the local
// bridging/malformation pass, the per-layer island reckoner, the
// union-find part tracker, the torque-balance stability test, and the
// global driver that ties them together.
package stability

import "github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"

// PrintObject is the external collaborator exposing a sliced object's
// layers. Implementations come from the slicing pipeline; this package
// only reads through the interface.
type PrintObject interface {
	Layers() []Layer
	LayerCount() int
	// Size returns the object's xy bounding box (min, max).
	Size() (min, max geometry.Vec2)
	Height() float32
}

// Layer exposes one slice of the object.
type Layer interface {
	SliceZ() float32
	Regions() []LayerRegion
}

// LayerRegion groups the perimeters and fills sharing one set of flow
// parameters.
type LayerRegion interface {
	Perimeters() []ExtrusionEntity
	Fills() []ExtrusionEntity
	// FlowWidth returns the nominal extrusion width for the given flow
	// role (external-perimeter / perimeter / infill / solid-infill /
	// top-solid-infill flows).
	FlowWidth(role geometry.Role) float32
}

// ExtrusionEntity is a single path or a composite (collection) of paths.
// Composite entities recurse through Entities().
type ExtrusionEntity interface {
	Role() geometry.Role
	IsCollection() bool
	IsLoop() bool
	// CollectPoints returns this entity's polyline vertices. Meaningless
	// (and not called) when IsCollection() is true.
	CollectPoints() []geometry.Vec2
	// MinMM3PerMM is the minimum extruded volume per unit length, used to
	// accumulate island volume.
	MinMM3PerMM() float32
	// Entities returns child entities when IsCollection() is true.
	Entities() []ExtrusionEntity
}

// SupportPoint is a single output of the analyzer: a 3-D location with an
// associated instability force estimate and a direction vector.
type SupportPoint struct {
	Position  geometry.Vec3
	Force     float32
	Direction geometry.Vec3
}

// Issues is the analyzer's output: a deterministically ordered sequence
// of support points. The analyzer never fails fatally — every
// degenerate input yields a (possibly empty) Issues value rather than
// an error.
type Issues struct {
	SupportPoints []SupportPoint
}

// flowWidthForRole implements the original's get_flow_width switch
// (SupportSpotsGenerator.cpp): bridge infill and external perimeter both
// use the external-perimeter flow; gap fill and internal infill use the
// plain infill flow; solid/top-solid infill use their own flows; anything
// else falls back to perimeter flow.
func flowWidthForRole(region LayerRegion, role geometry.Role) float32 {
	switch role {
	case geometry.RoleBridgeInfill, geometry.RoleExternalPerimeter:
		return region.FlowWidth(geometry.RoleExternalPerimeter)
	case geometry.RoleGapFill, geometry.RoleInternalInfill:
		return region.FlowWidth(geometry.RoleInternalInfill)
	case geometry.RolePerimeter:
		return region.FlowWidth(geometry.RolePerimeter)
	case geometry.RoleSolidInfill:
		return region.FlowWidth(geometry.RoleSolidInfill)
	case geometry.RoleTopSolidInfill:
		return region.FlowWidth(geometry.RoleTopSolidInfill)
	default:
		return region.FlowWidth(geometry.RolePerimeter)
	}
}
