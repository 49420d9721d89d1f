package stability

import (
	"testing"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
)

func TestIsStableWhileExtrudingReturnsOneForNoSticking(t *testing.T) {
	p := &ObjectPart{Volume: 1, VolumeCentroidAccumulator: geometry.Vec3{Z: 1}}
	line := geometry.NewLine(geometry.Vec2{}, geometry.Vec2{X: 1}, 1, geometry.RolePerimeter)

	got := p.IsStableWhileExtruding(IslandConnection{}, line, 1.0, Defaults())
	if got != 1.0 {
		t.Fatalf("IsStableWhileExtruding with no sticking area = %v, want 1.0", got)
	}
}

func TestIsStableWhileExtrudingWideBaseIsMoreStableThanNarrow(t *testing.T) {
	params := Defaults()
	line := geometry.NewLine(geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 1, Y: 0}, 1, geometry.RolePerimeter)

	narrow := &ObjectPart{
		Volume:                    1,
		VolumeCentroidAccumulator: geometry.Vec3{X: 0, Y: 0, Z: 10},
		StickingArea:              1,
		StickingCentroidAccumulator: geometry.Vec3{X: 0, Y: 0, Z: 0},
	}
	wide := &ObjectPart{
		Volume:                    1,
		VolumeCentroidAccumulator: geometry.Vec3{X: 0, Y: 0, Z: 10},
		StickingArea:              1,
		StickingCentroidAccumulator:     geometry.Vec3{X: 0, Y: 0, Z: 0},
		StickingSecondMomentAccumulator: geometry.Vec2{X: 100, Y: 100},
	}

	narrowForce := narrow.IsStableWhileExtruding(IslandConnection{}, line, 10.0, params)
	wideForce := wide.IsStableWhileExtruding(IslandConnection{}, line, 10.0, params)

	if wideForce >= narrowForce {
		t.Fatalf("wide-base force %v should be lower (more stable) than narrow-base force %v", wideForce, narrowForce)
	}
}

func TestIsStableWhileExtrudingFallsThroughToConnectionWhenBedStable(t *testing.T) {
	params := Defaults()
	line := geometry.NewLine(geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 1, Y: 0}, 1, geometry.RolePerimeter)

	// Negligible mass (so weight/movement/conflict torques vanish) and a
	// sticking footprint aligned with the extruder pressure line (so its
	// conflict arm is zero too) leaves only the negative yield torque
	// term, driving bed_total_torque below zero and falling through to
	// the (empty) connection check, which reports maximally unstable (1.0)
	// when its area is negligible.
	p := &ObjectPart{
		Volume:                          1e-6,
		VolumeCentroidAccumulator:       geometry.Vec3{Z: 1e-5},
		StickingArea:                    1,
		StickingCentroidAccumulator:     geometry.Vec3{Z: 10},
		StickingSecondMomentAccumulator: geometry.Vec2{X: 100, Y: 100},
	}

	got := p.IsStableWhileExtruding(IslandConnection{}, line, 10.0, params)
	if got != 1.0 {
		t.Fatalf("expected fallthrough to empty connection to report unstable (1.0), got %v", got)
	}
}
