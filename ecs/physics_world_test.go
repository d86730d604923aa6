package ecs

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/ecs/component"
)

func newTestPhysics() *PhysicsWorld {
	pw := NewPhysicsWorld()
	pw.AddGround(mgl64.Vec2{-10, -10}, mgl64.Vec2{10, 10}, 0)
	pw.AddGround(mgl64.Vec2{2, 2}, mgl64.Vec2{4, 4}, 0.2)
	pw.AddWall(mgl64.Vec2{5, -10}, mgl64.Vec2{6, 10})
	return pw
}

func TestCharacterLandsOnGround(t *testing.T) {
	pw := newTestPhysics()
	c := pw.NewCharacter(mgl64.Vec3{0, 1, 0}, 0.5)
	if c.IsGrounded() {
		t.Fatalf("new character should not be grounded")
	}
	c.Move(mgl64.Vec3{0, -0.5, 0})
	if c.IsGrounded() {
		t.Fatalf("character above ground should not be grounded")
	}
	c.Move(mgl64.Vec3{0, -1, 0})
	if !c.IsGrounded() {
		t.Fatalf("character should land")
	}
	if y := c.Position().Y(); y != 0 {
		t.Fatalf("expected to rest at y=0, got %v", y)
	}
}

func TestCharacterStepsOntoLowLedge(t *testing.T) {
	pw := newTestPhysics()
	c := pw.NewCharacter(mgl64.Vec3{1, 0, 3}, 0.5)
	c.Move(mgl64.Vec3{2, -0.01, 0})
	if !c.IsGrounded() || c.Position().Y() != 0.2 {
		t.Fatalf("expected to stand on ledge at 0.2, got %v grounded=%v", c.Position(), c.IsGrounded())
	}
}

func TestCharacterFallsOffEdge(t *testing.T) {
	pw := newTestPhysics()
	c := pw.NewCharacter(mgl64.Vec3{-9.5, 0, 0}, 0.5)
	c.Move(mgl64.Vec3{-2, -0.01, 0})
	if c.IsGrounded() {
		t.Fatalf("character off the ground region should fall, at %v", c.Position())
	}
}

func TestCharacterStopsAtWall(t *testing.T) {
	pw := newTestPhysics()
	c := pw.NewCharacter(mgl64.Vec3{3, 0, -5}, 0.5)
	c.Move(mgl64.Vec3{5, 0, 0})
	if x := c.Position().X(); x > 4.5+1e-6 {
		t.Fatalf("character passed through wall, x=%v", x)
	}
}

func TestCharacterSlidesAlongWall(t *testing.T) {
	pw := newTestPhysics()
	c := pw.NewCharacter(mgl64.Vec3{4, 0, -5}, 0.5)
	c.Move(mgl64.Vec3{2, 0, 2})
	p := c.Position()
	if p.X() > 4.5+1e-6 {
		t.Fatalf("character passed through wall, x=%v", p.X())
	}
	if p.Z() <= -5+1e-3 {
		t.Fatalf("expected slide along z, got %v", p)
	}
}

func TestRaycastHitsNearestGround(t *testing.T) {
	pw := newTestPhysics()
	cases := []struct {
		name    string
		origin  mgl64.Vec3
		dir     mgl64.Vec3
		maxDist float64
		mask    component.LayerMask
		want    mgl64.Vec3
		hit     bool
	}{
		{"straight_down", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}, 100, component.GroundLayer, mgl64.Vec3{0, 0, 0}, true},
		{"ledge_first", mgl64.Vec3{3, 5, 3}, mgl64.Vec3{0, -1, 0}, 100, component.GroundLayer, mgl64.Vec3{3, 0.2, 3}, true},
		{"too_short", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}, 4, component.GroundLayer, mgl64.Vec3{}, false},
		{"pointing_up", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 1, 0}, 100, component.GroundLayer, mgl64.Vec3{}, false},
		{"outside_regions", mgl64.Vec3{50, 5, 0}, mgl64.Vec3{0, -1, 0}, 100, component.GroundLayer, mgl64.Vec3{}, false},
		{"wall_mask_only", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}, 100, component.WallLayer, mgl64.Vec3{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := pw.Raycast(tc.origin, tc.dir, tc.maxDist, tc.mask)
			if ok != tc.hit {
				t.Fatalf("expected hit=%v, got %v at %v", tc.hit, ok, got)
			}
			if ok && got.Sub(tc.want).Len() > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSetGroundHeightMovesSurface(t *testing.T) {
	pw := NewPhysicsWorld()
	idx := pw.AddGround(mgl64.Vec2{-1, -1}, mgl64.Vec2{1, 1}, 0)
	pw.SetGroundHeight(idx, 0.25)
	h, ok := pw.GroundHeightAt(0, 0, math.Inf(1))
	if !ok || h != 0.25 {
		t.Fatalf("expected height 0.25, got %v (ok=%v)", h, ok)
	}
	if _, ok := pw.GroundHeightAt(0, 0, 0.1); ok {
		t.Fatalf("ground above ceiling should be ignored")
	}
}

func TestGroundHeightAtPicksHighestRegion(t *testing.T) {
	pw := newTestPhysics()
	pw.AddGround(mgl64.Vec2{3, 3}, mgl64.Vec2{4, 4}, 1.5)

	tests := []struct {
		name    string
		x, z    float64
		ceiling float64
		want    float64
		ok      bool
	}{
		{name: "open floor", x: 0, z: 0, ceiling: 10, want: 0, ok: true},
		{name: "ledge over floor", x: 2.5, z: 2.5, ceiling: 10, want: 0.2, ok: true},
		{name: "stacked block", x: 3.5, z: 3.5, ceiling: 10, want: 1.5, ok: true},
		{name: "block above ceiling", x: 3.5, z: 3.5, ceiling: 1, want: 0.2, ok: true},
		{name: "region edge", x: 4, z: 3.5, ceiling: 10, want: 1.5, ok: true},
		{name: "off the map", x: 20, z: 0, ceiling: 10, ok: false},
		{name: "everything above ceiling", x: 0, z: 0, ceiling: -1, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, ok := pw.GroundHeightAt(tc.x, tc.z, tc.ceiling)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v (h=%v)", ok, tc.ok, h)
			}
			if ok && math.Abs(h-tc.want) > 1e-12 {
				t.Fatalf("height = %v, want %v", h, tc.want)
			}
		})
	}
}

func TestGroundHeightAtNilWorld(t *testing.T) {
	var pw *PhysicsWorld
	if _, ok := pw.GroundHeightAt(0, 0, 10); ok {
		t.Fatalf("nil world should report no ground")
	}
}
