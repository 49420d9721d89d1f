package geometry

import "math"

// Role is the extrusion role tag carried on an ExtrusionLine. Only
// RoleExternalPerimeter participates in island seeding.
type Role int

const (
	RoleExternalPerimeter Role = iota
	RolePerimeter
	RoleBridgeInfill
	RoleSolidInfill
	RoleTopSolidInfill
	RoleInternalInfill
	RoleGapFill
	RoleOther
)

func (r Role) String() string {
	switch r {
	case RoleExternalPerimeter:
		return "external-perimeter"
	case RolePerimeter:
		return "perimeter"
	case RoleBridgeInfill:
		return "bridge-infill"
	case RoleSolidInfill:
		return "solid-infill"
	case RoleTopSolidInfill:
		return "top-solid-infill"
	case RoleInternalInfill:
		return "internal-infill"
	case RoleGapFill:
		return "gap-fill"
	default:
		return "other"
	}
}

// EntityID is an opaque, caller-assigned handle identifying the extrusion
// entity that a line was sampled from. It replaces the raw back-pointer
// the original C++ carries on ExtrusionLine: no ownership is implied, it
// is only used to group lines into connected paths and to look up
// role/flow through the Entity collaborator interface.
type EntityID int

// ExtrusionLine is an oriented 2-D segment on a layer, plus the metadata
// the local and global passes accumulate on it.
type ExtrusionLine struct {
	A, B   Vec2
	Len    float32
	Origin EntityID
	Role   Role

	// MinMM3PerMM is the owning entity's minimum extruded volume per unit
	// length, copied onto every line sampled from it so island volume
	// accumulation doesn't need to look the entity back up by EntityID.
	MinMM3PerMM float32

	SupportPointGenerated bool
	Malformation          float32
}

// NewLine constructs an ExtrusionLine with its length cached.
func NewLine(a, b Vec2, origin EntityID, role Role) ExtrusionLine {
	return ExtrusionLine{A: a, B: b, Len: a.Sub(b).Norm(), Origin: origin, Role: role}
}

// NewLineWithVolume is NewLine plus the per-length volume rate carried
// forward from the originating entity.
func NewLineWithVolume(a, b Vec2, origin EntityID, role Role, minMM3PerMM float32) ExtrusionLine {
	l := NewLine(a, b, origin, role)
	l.MinMM3PerMM = minMM3PerMM
	return l
}

// IsExternalPerimeter reports whether this line belongs to an external
// perimeter extrusion.
func (l ExtrusionLine) IsExternalPerimeter() bool {
	return l.Role == RoleExternalPerimeter
}

// Mid returns the segment midpoint.
func (l ExtrusionLine) Mid() Vec2 {
	return Vec2{(l.A.X + l.B.X) / 2, (l.A.Y + l.B.Y) / 2}
}

// Direction returns the normalized direction from A to B.
func (l ExtrusionLine) Direction() Vec2 {
	return l.B.Sub(l.A).Normalized()
}

// Angle returns the signed angle (radians, CCW positive) between
// directions u and v, using atan2 of the cross/dot products. Used by the
// local analyzer to accumulate curvature between consecutive resampled
// segments.
func Angle(u, v Vec2) float32 {
	cross := u.Cross(v)
	dot := u.Dot(v)
	return float32(math.Atan2(float64(cross), float64(dot)))
}
