package geometry

import "testing"

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}

	if got := a.Add(b); got != (Vec2{4, 6}) {
		t.Errorf("Add = %v, want {4 6}", got)
	}
	if got := b.Sub(a); got != (Vec2{2, 2}) {
		t.Errorf("Sub = %v, want {2 2}", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale = %v, want {2 4}", got)
	}
	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot = %v, want 11", got)
	}
}

func TestVec2Cross(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	if got := a.Cross(b); got != 1 {
		t.Errorf("Cross = %v, want 1", got)
	}
	if got := b.Cross(a); got != -1 {
		t.Errorf("Cross = %v, want -1", got)
	}
}

func TestVec2Normalized(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalized()
	if got := n.Norm(); got < 0.999 || got > 1.001 {
		t.Errorf("Norm() of normalized vector = %v, want ~1", got)
	}

	zero := Vec2{}.Normalized()
	if zero != (Vec2{}) {
		t.Errorf("Normalized() of zero vector = %v, want {0 0}", zero)
	}
}

func TestVec2SqrtClampsNegative(t *testing.T) {
	v := Vec2{-4, 9}
	got := v.Sqrt()
	if got.X != 0 {
		t.Errorf("Sqrt().X = %v, want 0 for negative input", got.X)
	}
	if got.Y != 3 {
		t.Errorf("Sqrt().Y = %v, want 3", got.Y)
	}
}

func TestTo3AndXY(t *testing.T) {
	v2 := Vec2{1, 2}
	v3 := To3(v2, 5)
	if v3 != (Vec3{1, 2, 5}) {
		t.Errorf("To3 = %v, want {1 2 5}", v3)
	}
	if got := v3.XY(); got != v2 {
		t.Errorf("XY() = %v, want %v", got, v2)
	}
}

func TestDistancePointToLine64(t *testing.T) {
	// Line along X axis at z=0, point directly above at (5, 0, 3).
	d := DistancePointToLine64([3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{5, 0, 3})
	if d < 2.999 || d > 3.001 {
		t.Errorf("distance = %v, want 3", d)
	}
}

func TestDistancePointToLine64DegenerateLine(t *testing.T) {
	// Zero-length line falls back to point distance.
	d := DistancePointToLine64([3]float64{0, 0, 0}, [3]float64{0, 0, 0}, [3]float64{3, 4, 0})
	if d < 4.999 || d > 5.001 {
		t.Errorf("distance = %v, want 5", d)
	}
}
