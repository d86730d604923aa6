package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const viewNearPlane = 0.01

// View is a perspective camera looking along its local +Z axis.
type View struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	FOV      float64 // vertical, degrees
	Width    float64
	Height   float64
}

func (v View) aspect() float64 {
	if v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

func (v View) tanHalfFOV() float64 {
	return math.Tan(mgl64.DegToRad(v.FOV) / 2)
}

// ScreenPointToRay returns a ray from the camera through a screen position.
// Screen coordinates have their origin at the top-left corner.
func (v View) ScreenPointToRay(sx, sy float64) (origin, dir mgl64.Vec3) {
	if v.Width <= 0 || v.Height <= 0 {
		return v.Position, v.Rotation.Rotate(Forward)
	}
	ndcX := 2*sx/v.Width - 1
	ndcY := 1 - 2*sy/v.Height
	t := v.tanHalfFOV()
	local := mgl64.Vec3{ndcX * t * v.aspect(), ndcY * t, 1}
	return v.Position, v.Rotation.Rotate(local).Normalize()
}

// WorldToScreen projects a world point to screen coordinates. ok is false for
// points behind the near plane.
func (v View) WorldToScreen(p mgl64.Vec3) (sx, sy float64, ok bool) {
	local := v.Rotation.Inverse().Rotate(p.Sub(v.Position))
	if local.Z() <= viewNearPlane {
		return 0, 0, false
	}
	t := v.tanHalfFOV()
	ndcX := local.X() / (local.Z() * t * v.aspect())
	ndcY := local.Y() / (local.Z() * t)
	return (ndcX + 1) * v.Width / 2, (1 - ndcY) * v.Height / 2, true
}
