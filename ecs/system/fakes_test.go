package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/ecs/component"
)

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func approxVec(a, b mgl64.Vec3, eps float64) bool {
	return approxEqual(a.X(), b.X(), eps) && approxEqual(a.Y(), b.Y(), eps) && approxEqual(a.Z(), b.Z(), eps)
}

// approxQuat treats q and -q as the same rotation.
func approxQuat(a, b mgl64.Quat, eps float64) bool {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return approxEqual(a.W, b.W, eps) && approxVec(a.V, b.V, eps)
}

type fakeSource struct {
	axes    map[string]float64
	buttons map[string]bool
	cursor  mgl64.Vec2
	rawSeen []bool
}

func (f *fakeSource) ReadAxis(name string, raw bool) float64 {
	f.rawSeen = append(f.rawSeen, raw)
	return f.axes[name]
}

func (f *fakeSource) ReadButton(name string) bool {
	return f.buttons[name]
}

func (f *fakeSource) CursorPosition() (float64, float64) {
	return f.cursor.X(), f.cursor.Y()
}

type fakeBody struct {
	pos      mgl64.Vec3
	grounded bool
	moves    []mgl64.Vec3
}

func (b *fakeBody) IsGrounded() bool { return b.grounded }

func (b *fakeBody) Move(delta mgl64.Vec3) {
	b.moves = append(b.moves, delta)
	b.pos = b.pos.Add(delta)
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }

type fakePicker struct {
	hit   mgl64.Vec3
	ok    bool
	calls int
	mask  component.LayerMask
	max   float64
}

func (p *fakePicker) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask component.LayerMask) (mgl64.Vec3, bool) {
	p.calls++
	p.mask = mask
	p.max = maxDistance
	return p.hit, p.ok
}

func testRig(mode component.CameraMode) component.CameraRig {
	return component.CameraRig{
		Mode: mode,
		ThirdPerson: component.ThirdPersonCamera{
			PivotOffset: mgl64.Vec3{0, 1.2, 0},
			YawSpeed:    5,
			PitchSpeed:  2.5,
			MinPitch:    -15,
			MaxPitch:    45,
			FOV:         60,
			Distance:    8,
		},
		Isometric: component.IsometricCamera{
			PivotOffset:  mgl64.Vec3{0, 0.5, 0},
			ForwardAngle: -45,
			Pitch:        45,
			FOV:          30,
			Distance:     12,
		},
		Viewport:       mgl64.Vec2{640, 480},
		MaxRayDistance: 100,
	}
}
