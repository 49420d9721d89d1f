// Package fixture decodes a sliced object from JSON into the
// stability.PrintObject collaborator interfaces, so the analyzer can run
// against a file on disk instead of a live slicing pipeline. It exists
// only for the CLI entry point and tests; nothing in pkg/stability
// depends on it.
package fixture

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/stability"
)

// Entity is the JSON shape of one extrusion path or collection of paths.
// A non-empty Children makes it a collection; Points/Loop/MinMM3PerMM are
// only meaningful on leaves.
type Entity struct {
	Role        string     `json:"role"`
	Loop        bool       `json:"loop"`
	MinMM3PerMM float32    `json:"minMM3PerMM"`
	Points      [][2]float32 `json:"points"`
	Children    []Entity   `json:"children"`
}

// Region is the JSON shape of one layer region: its perimeters, fills,
// and the nominal flow width per role.
type Region struct {
	FlowWidths map[string]float32 `json:"flowWidths"`
	Perimeters []Entity           `json:"perimeters"`
	Fills      []Entity           `json:"fills"`
}

// Layer is the JSON shape of one object layer.
type Layer struct {
	Z       float32  `json:"z"`
	Regions []Region `json:"regions"`
}

// Object is the JSON shape of a whole sliced object.
type Object struct {
	Min    [2]float32 `json:"min"`
	Max    [2]float32 `json:"max"`
	Height float32    `json:"height"`
	Layers []Layer    `json:"layers"`
}

// Decode reads a JSON-encoded Object from r and wraps it to satisfy
// stability.PrintObject.
func Decode(r io.Reader) (stability.PrintObject, error) {
	var obj Object
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return nil, fmt.Errorf("fixture: decode: %w", err)
	}
	return &printObject{data: obj}, nil
}

var roleByName = map[string]geometry.Role{
	"external-perimeter": geometry.RoleExternalPerimeter,
	"perimeter":           geometry.RolePerimeter,
	"bridge-infill":       geometry.RoleBridgeInfill,
	"solid-infill":        geometry.RoleSolidInfill,
	"top-solid-infill":    geometry.RoleTopSolidInfill,
	"internal-infill":     geometry.RoleInternalInfill,
	"gap-fill":            geometry.RoleGapFill,
}

func roleFromName(name string) geometry.Role {
	if r, ok := roleByName[name]; ok {
		return r
	}
	return geometry.RoleOther
}

// printObject adapts Object to stability.PrintObject.
type printObject struct{ data Object }

func (o *printObject) Layers() []stability.Layer {
	out := make([]stability.Layer, len(o.data.Layers))
	for i := range o.data.Layers {
		out[i] = &layer{data: o.data.Layers[i]}
	}
	return out
}

func (o *printObject) LayerCount() int { return len(o.data.Layers) }

func (o *printObject) Size() (min, max geometry.Vec2) {
	return geometry.Vec2{X: o.data.Min[0], Y: o.data.Min[1]}, geometry.Vec2{X: o.data.Max[0], Y: o.data.Max[1]}
}

func (o *printObject) Height() float32 { return o.data.Height }

type layer struct{ data Layer }

func (l *layer) SliceZ() float32 { return l.data.Z }

func (l *layer) Regions() []stability.LayerRegion {
	out := make([]stability.LayerRegion, len(l.data.Regions))
	for i := range l.data.Regions {
		out[i] = &region{data: l.data.Regions[i]}
	}
	return out
}

type region struct{ data Region }

func (r *region) Perimeters() []stability.ExtrusionEntity {
	return entitySlice(r.data.Perimeters)
}

func (r *region) Fills() []stability.ExtrusionEntity {
	return entitySlice(r.data.Fills)
}

func (r *region) FlowWidth(role geometry.Role) float32 {
	return r.data.FlowWidths[roleName(role)]
}

func roleName(role geometry.Role) string {
	for name, r := range roleByName {
		if r == role {
			return name
		}
	}
	return "other"
}

func entitySlice(entities []Entity) []stability.ExtrusionEntity {
	out := make([]stability.ExtrusionEntity, len(entities))
	for i := range entities {
		out[i] = &extrusionEntity{data: entities[i]}
	}
	return out
}

type extrusionEntity struct{ data Entity }

func (e *extrusionEntity) Role() geometry.Role { return roleFromName(e.data.Role) }

func (e *extrusionEntity) IsCollection() bool { return len(e.data.Children) > 0 }

func (e *extrusionEntity) IsLoop() bool { return e.data.Loop }

func (e *extrusionEntity) CollectPoints() []geometry.Vec2 {
	out := make([]geometry.Vec2, len(e.data.Points))
	for i, p := range e.data.Points {
		out[i] = geometry.Vec2{X: p[0], Y: p[1]}
	}
	return out
}

func (e *extrusionEntity) MinMM3PerMM() float32 { return e.data.MinMM3PerMM }

func (e *extrusionEntity) Entities() []stability.ExtrusionEntity {
	return entitySlice(e.data.Children)
}
