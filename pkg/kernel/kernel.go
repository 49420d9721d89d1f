// Package kernel defines the abstract geometry kernel interface used to
// render debug solids (support points, island footprints) for visual
// inspection. Implementations (sdfx) provide solid modeling behind this
// interface. Only box, cylinder, translate and mesh output are exposed —
// no booleans, no rotation. Debug rendering uses box, translate and mesh
// output; cylinder is not called by it.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
