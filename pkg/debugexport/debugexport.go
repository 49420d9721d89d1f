// Package debugexport renders the analyzer's output as triangle meshes for
// visual inspection: a small marker at every support point and a thin
// extruded slab over every island's footprint, colored by a stable hash of
// their identity the same way the original's debug_export/value_to_rgbf
// colors its OBJ dumps. Nothing here feeds back into the analyzer; it only
// consumes stability.Issues and the island graph after the fact.
package debugexport

import (
	"fmt"
	"hash/fnv"
	"io"
	"math"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/kernel"
	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/stability"
)

// SupportPointMeshes builds one small cube marker per support point,
// centered on its position with the given half-width radius.
func SupportPointMeshes(k kernel.Kernel, points []stability.SupportPoint, radius float64) []*kernel.Mesh {
	out := make([]*kernel.Mesh, 0, len(points))
	for i, p := range points {
		side := 2 * radius
		box := k.Box(side, side, side)
		solid := k.Translate(box, float64(p.Position.X)-radius, float64(p.Position.Y)-radius, float64(p.Position.Z)-radius)
		mesh, err := k.ToMesh(solid)
		if err != nil || mesh.IsEmpty() {
			continue
		}
		mesh.PartName = fmt.Sprintf("support-%d", i)
		out = append(out, mesh)
	}
	return out
}

// IslandFootprintMeshes builds one thin extruded slab per island, spanning
// its external-perimeter bounding box, at the layer's z and the given
// thickness. Islands with no external lines, or whose external lines have
// a zero-width or zero-height bounding box, produce no mesh.
func IslandFootprintMeshes(k kernel.Kernel, graph []stability.LayerIslands, thickness float64) []*kernel.Mesh {
	var out []*kernel.Mesh
	for layerIdx, layer := range graph {
		for islandIdx, isl := range layer.Islands {
			min, max, ok := footprintBounds(isl.ExternalLines)
			if !ok {
				continue
			}
			w := float64(max.X - min.X)
			h := float64(max.Y - min.Y)
			if w <= 0 || h <= 0 {
				continue
			}
			box := k.Box(w, h, thickness)
			solid := k.Translate(box, float64(min.X), float64(min.Y), float64(layer.LayerZ))
			mesh, err := k.ToMesh(solid)
			if err != nil || mesh.IsEmpty() {
				continue
			}
			mesh.PartName = fmt.Sprintf("island-%d-%d", layerIdx, islandIdx)
			out = append(out, mesh)
		}
	}
	return out
}

// footprintBounds returns the xy bounding box of a set of extrusion lines.
func footprintBounds(lines []geometry.ExtrusionLine) (min, max geometry.Vec2, ok bool) {
	if len(lines) == 0 {
		return min, max, false
	}
	min = lines[0].A
	max = lines[0].A
	for _, line := range lines {
		for _, p := range [2]geometry.Vec2{line.A, line.B} {
			if p.X < min.X {
				min.X = p.X
			}
			if p.Y < min.Y {
				min.Y = p.Y
			}
			if p.X > max.X {
				max.X = p.X
			}
			if p.Y > max.Y {
				max.Y = p.Y
			}
		}
	}
	return min, max, true
}

// colorForName hashes name into a stable RGB triple, the same idea as the
// original's value_to_rgbf HSV sweep but over FNV-1a instead of an index,
// since debugexport's units are named rather than densely indexed.
func colorForName(name string) (r, g, b float32) {
	h := fnv.New32a()
	_, _ = io.WriteString(h, name)
	hue := float64(h.Sum32()%360) / 360.0
	return hsvToRGB(hue, 0.65, 0.95)
}

func hsvToRGB(h, s, v float64) (r, g, b float32) {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var rf, gf, bf float64
	switch int(i) % 6 {
	case 0:
		rf, gf, bf = v, t, p
	case 1:
		rf, gf, bf = q, v, p
	case 2:
		rf, gf, bf = p, v, t
	case 3:
		rf, gf, bf = p, q, v
	case 4:
		rf, gf, bf = t, p, v
	default:
		rf, gf, bf = v, p, q
	}
	return float32(rf), float32(gf), float32(bf)
}

// WriteOBJ writes meshes as a single Wavefront OBJ, one "o" group per mesh
// and a "# color r g b" comment ahead of each group's faces so a viewer
// that understands the convention can tint groups without a full MTL file.
func WriteOBJ(w io.Writer, meshes []*kernel.Mesh) error {
	vertexOffset := 0
	for _, m := range meshes {
		name := m.PartName
		if name == "" {
			name = fmt.Sprintf("mesh-%d", vertexOffset)
		}
		r, g, b := colorForName(name)
		if _, err := fmt.Fprintf(w, "o %s\n# color %.3f %.3f %.3f\n", name, r, g, b); err != nil {
			return err
		}
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			if _, err := fmt.Fprintf(w, "v %f %f %f\n", m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]); err != nil {
				return err
			}
		}
		for i := 0; i+2 < len(m.Indices); i += 3 {
			// OBJ face indices are 1-based and global to the file.
			a := vertexOffset + int(m.Indices[i]) + 1
			b := vertexOffset + int(m.Indices[i+1]) + 1
			c := vertexOffset + int(m.Indices[i+2]) + 1
			if _, err := fmt.Fprintf(w, "f %d %d %d\n", a, b, c); err != nil {
				return err
			}
		}
		vertexOffset += m.VertexCount()
	}
	return nil
}
