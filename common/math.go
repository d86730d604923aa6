package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
	Right   = mgl64.Vec3{1, 0, 0}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards steps current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// NormalizeTo180 maps angles above 180 degrees into (-180, 180] by
// subtracting a single turn. Angles at or below -180 are returned unchanged.
func NormalizeTo180(angle float64) float64 {
	if angle > 180 {
		return angle - 360
	}
	return angle
}

// ClampMagnitude returns v scaled down to length max when it is longer.
func ClampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	sqr := v.Dot(v)
	if sqr > max*max && sqr > 0 {
		return v.Mul(max / math.Sqrt(sqr))
	}
	return v
}

// Euler builds a rotation from angles in degrees, applied Z first, then X,
// then Y (yaw-pitch-roll), with positive X pitching +Z downward.
func Euler(x, y, z float64) mgl64.Quat {
	qy := mgl64.QuatRotate(mgl64.DegToRad(y), Up)
	qx := mgl64.QuatRotate(mgl64.DegToRad(x), Right)
	qz := mgl64.QuatRotate(mgl64.DegToRad(z), Forward)
	return qy.Mul(qx).Mul(qz).Normalize()
}

// RotateAround applies a world-space rotation of angle degrees about axis on
// top of q.
func RotateAround(q mgl64.Quat, axis mgl64.Vec3, angle float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(angle), axis.Normalize()).Mul(q).Normalize()
}

// LookRotation returns the rotation whose +Z axis points along forward with no
// roll. A zero forward yields the identity rotation.
func LookRotation(forward mgl64.Vec3) mgl64.Quat {
	if forward.Dot(forward) < 1e-12 {
		return mgl64.QuatIdent()
	}
	yaw := math.Atan2(forward.X(), forward.Z())
	pitch := -math.Atan2(forward.Y(), math.Hypot(forward.X(), forward.Z()))
	return Euler(mgl64.RadToDeg(pitch), mgl64.RadToDeg(yaw), 0)
}

// YawLookAt turns from position toward target around the vertical axis only.
// It returns current when target is directly above, below or on position.
func YawLookAt(current mgl64.Quat, position, target mgl64.Vec3) mgl64.Quat {
	dir := target.Sub(position)
	dir[1] = 0
	if dir.Dot(dir) < 1e-12 {
		return current
	}
	return LookRotation(dir)
}

// Yaw returns the heading of q in degrees, measured from +Z toward +X.
func Yaw(q mgl64.Quat) float64 {
	f := q.Rotate(Forward)
	return mgl64.RadToDeg(math.Atan2(f.X(), f.Z()))
}

// TransformVector maps a local direction into world space through a rotation
// and a uniform scale. Translation is ignored.
func TransformVector(rotation mgl64.Quat, scale float64, v mgl64.Vec3) mgl64.Vec3 {
	return rotation.Rotate(v).Mul(scale)
}
