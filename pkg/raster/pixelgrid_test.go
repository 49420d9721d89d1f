package raster

import (
	"testing"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/geometry"
)

func TestNewPixelGridClearedToNullIsland(t *testing.T) {
	g := NewPixelGrid(geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 10, Y: 10}, 1)
	for y := 0; y < g.CountY(); y++ {
		for x := 0; x < g.CountX(); x++ {
			if got := g.GetPixel(x, y); got != NullIsland {
				t.Fatalf("pixel (%d,%d) = %d, want NullIsland", x, y, got)
			}
		}
	}
}

func TestDistributeEdgeShortSegmentNoOp(t *testing.T) {
	g := NewPixelGrid(geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 10, Y: 10}, 1)
	g.DistributeEdge(geometry.Vec2{X: 5, Y: 5}, geometry.Vec2{X: 5.05, Y: 5}, 7)

	for y := 0; y < g.CountY(); y++ {
		for x := 0; x < g.CountX(); x++ {
			if got := g.GetPixel(x, y); got != NullIsland {
				t.Fatalf("pixel (%d,%d) = %d after no-op distribute, want NullIsland", x, y, got)
			}
		}
	}
}

func TestDistributeEdgeCoversPath(t *testing.T) {
	g := NewPixelGrid(geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 20, Y: 20}, 1)
	g.DistributeEdge(geometry.Vec2{X: 1, Y: 1}, geometry.Vec2{X: 10, Y: 1}, 3)

	x, y := 5, 1
	if got := g.GetPixel(x, y); got != 3 {
		t.Errorf("pixel (%d,%d) = %d, want 3", x, y, got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewPixelGrid(geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 10, Y: 10}, 1)
	g.DistributeEdge(geometry.Vec2{X: 1, Y: 1}, geometry.Vec2{X: 5, Y: 1}, 9)

	clone := g.Clone()
	if got := clone.GetPixel(2, 1); got != NullIsland {
		t.Errorf("fresh clone pixel = %d, want NullIsland", got)
	}

	clone.DistributeEdge(geometry.Vec2{X: 1, Y: 1}, geometry.Vec2{X: 5, Y: 1}, 11)
	if got := g.GetPixel(2, 1); got != 9 {
		t.Errorf("original grid mutated by clone write: got %d, want 9", got)
	}
}

func TestGetPixelOutOfBoundsPanics(t *testing.T) {
	g := NewPixelGrid(geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 10, Y: 10}, 1)
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for out-of-bounds pixel access")
		}
	}()
	g.GetPixel(-1, 0)
}

func TestGetPixelCenter(t *testing.T) {
	g := NewPixelGrid(geometry.Vec2{X: 0, Y: 0}, geometry.Vec2{X: 10, Y: 10}, 2)
	center := g.GetPixelCenter(0, 0)
	if center.X != 1 || center.Y != 1 {
		t.Errorf("GetPixelCenter(0,0) = %v, want {1 1}", center)
	}
}
