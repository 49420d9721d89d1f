package fixture

import (
	"strings"
	"testing"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
)

const twoLayerColumn = `{
	"min": [-3, -3], "max": [3, 3], "height": 0.4,
	"layers": [
		{
			"z": 0,
			"regions": [{
				"flowWidths": {"external-perimeter": 0.45},
				"perimeters": [{
					"role": "external-perimeter",
					"loop": true,
					"minMM3PerMM": 0.02,
					"points": [[-2,-2],[2,-2],[2,2],[-2,2]]
				}],
				"fills": []
			}]
		},
		{
			"z": 0.2,
			"regions": [{
				"flowWidths": {"external-perimeter": 0.45},
				"perimeters": [{
					"role": "external-perimeter",
					"loop": true,
					"minMM3PerMM": 0.02,
					"points": [[-2,-2],[2,-2],[2,2],[-2,2]]
				}],
				"fills": []
			}]
		}
	]
}`

func TestDecodeTwoLayerColumn(t *testing.T) {
	obj, err := Decode(strings.NewReader(twoLayerColumn))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if obj.LayerCount() != 2 {
		t.Fatalf("LayerCount() = %d, want 2", obj.LayerCount())
	}
	min, max := obj.Size()
	if min != (geometry.Vec2{X: -3, Y: -3}) || max != (geometry.Vec2{X: 3, Y: 3}) {
		t.Errorf("Size() = (%v, %v), want ((-3,-3), (3,3))", min, max)
	}

	layers := obj.Layers()
	region := layers[0].Regions()[0]
	perimeters := region.Perimeters()
	if len(perimeters) != 1 {
		t.Fatalf("len(Perimeters()) = %d, want 1", len(perimeters))
	}
	perim := perimeters[0]
	if perim.Role() != geometry.RoleExternalPerimeter {
		t.Errorf("Role() = %v, want RoleExternalPerimeter", perim.Role())
	}
	if !perim.IsLoop() {
		t.Error("IsLoop() = false, want true")
	}
	if perim.IsCollection() {
		t.Error("IsCollection() = true for a leaf entity, want false")
	}
	points := perim.CollectPoints()
	if len(points) != 4 {
		t.Fatalf("len(CollectPoints()) = %d, want 4", len(points))
	}
	if region.FlowWidth(geometry.RoleExternalPerimeter) != 0.45 {
		t.Errorf("FlowWidth(external-perimeter) = %v, want 0.45", region.FlowWidth(geometry.RoleExternalPerimeter))
	}
}

func TestDecodeCollectionEntity(t *testing.T) {
	src := `{
		"min": [0,0], "max": [1,1], "height": 0.2,
		"layers": [{
			"z": 0,
			"regions": [{
				"flowWidths": {},
				"perimeters": [{
					"children": [
						{"role": "external-perimeter", "loop": true, "minMM3PerMM": 0.02, "points": [[0,0],[1,0],[1,1]]}
					]
				}],
				"fills": []
			}]
		}]
	}`
	obj, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	perim := obj.Layers()[0].Regions()[0].Perimeters()[0]
	if !perim.IsCollection() {
		t.Fatal("IsCollection() = false, want true for an entity with children")
	}
	children := perim.Entities()
	if len(children) != 1 {
		t.Fatalf("len(Entities()) = %d, want 1", len(children))
	}
	if children[0].IsCollection() {
		t.Error("child IsCollection() = true, want false")
	}
}

func TestDecodeMalformedJSONReturnsError(t *testing.T) {
	_, err := Decode(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("expected an error decoding malformed JSON")
	}
}
