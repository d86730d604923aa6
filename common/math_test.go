package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func approxVec(t *testing.T, got, want mgl64.Vec3, tol float64, field string) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("%s = %v, want %v (tol=%.8f)", field, got, want, tol)
		}
	}
}

func TestNormalizeTo180(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{181, -179},
		{360, 0},
		{180, 180},
		{90, 90},
		{0, 0},
		{-179.5, -179.5},
		{-200, -200},
		{-540, -540},
	}
	for _, tt := range tests {
		if got := NormalizeTo180(tt.in); got != tt.want {
			t.Fatalf("NormalizeTo180(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeTo180IdempotentInRange(t *testing.T) {
	for a := -179.75; a <= 180; a += 0.25 {
		once := NormalizeTo180(a)
		if once != a || NormalizeTo180(once) != once {
			t.Fatalf("NormalizeTo180 changed in-range angle %v -> %v", a, once)
		}
	}
}

func TestClampMagnitude(t *testing.T) {
	tests := []struct {
		name string
		in   mgl64.Vec3
		max  float64
		want mgl64.Vec3
	}{
		{"short_unchanged", mgl64.Vec3{0.3, 0, 0.4}, 1, mgl64.Vec3{0.3, 0, 0.4}},
		{"diagonal_clamped", mgl64.Vec3{1, 0, 1}, 1, mgl64.Vec3{math.Sqrt2 / 2, 0, math.Sqrt2 / 2}},
		{"zero", mgl64.Vec3{}, 1, mgl64.Vec3{}},
		{"custom_cap", mgl64.Vec3{0, 0, 3}, 0.5, mgl64.Vec3{0, 0, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approxVec(t, ClampMagnitude(tt.in, tt.max), tt.want, 1e-9, "clamped")
		})
	}
}

func TestEulerAxes(t *testing.T) {
	approxVec(t, Euler(0, 90, 0).Rotate(Forward), Right, 1e-9, "yaw 90 forward")
	approxVec(t, Euler(0, -90, 0).Rotate(Forward), Right.Mul(-1), 1e-9, "yaw -90 forward")

	down := Euler(90, 0, 0).Rotate(Forward)
	approxVec(t, down, mgl64.Vec3{0, -1, 0}, 1e-9, "pitch 90 forward")

	// yaw is applied after pitch
	f := Euler(45, 90, 0).Rotate(Forward)
	approxVec(t, f, mgl64.Vec3{math.Sqrt2 / 2, -math.Sqrt2 / 2, 0}, 1e-9, "pitch+yaw forward")
}

func TestRotateAroundAccumulates(t *testing.T) {
	q := mgl64.QuatIdent()
	for i := 0; i < 4; i++ {
		q = RotateAround(q, Up, 22.5)
	}
	approxEqual(t, Yaw(q), 90, 1e-9, "yaw")
}

func TestLookRotation(t *testing.T) {
	q := LookRotation(mgl64.Vec3{1, 0, 1})
	approxEqual(t, Yaw(q), 45, 1e-9, "yaw")
	approxVec(t, q.Rotate(Up), Up, 1e-9, "no roll/pitch")

	if got := LookRotation(mgl64.Vec3{}); got != mgl64.QuatIdent() {
		t.Fatalf("LookRotation(zero) = %v, want identity", got)
	}
}

func TestYawLookAt(t *testing.T) {
	current := Euler(0, 30, 0)
	pos := mgl64.Vec3{1, 2, 3}

	got := YawLookAt(current, pos, mgl64.Vec3{1, 10, 3})
	if got != current {
		t.Fatalf("target straight above should keep rotation, got yaw %.3f", Yaw(got))
	}

	got = YawLookAt(current, pos, mgl64.Vec3{0, 5, 3})
	approxEqual(t, Yaw(got), -90, 1e-9, "yaw toward -X")
	approxVec(t, got.Rotate(Up), Up, 1e-9, "vertical axis only")
}

func TestTransformVectorScales(t *testing.T) {
	v := TransformVector(Euler(0, 90, 0), 2, mgl64.Vec3{0, 0, 1})
	approxVec(t, v, mgl64.Vec3{2, 0, 0}, 1e-9, "world")
}

func TestMoveTowards(t *testing.T) {
	approxEqual(t, MoveTowards(0, 1, 0.25), 0.25, 1e-12, "up")
	approxEqual(t, MoveTowards(0, -1, 0.25), -0.25, 1e-12, "down")
	approxEqual(t, MoveTowards(0.9, 1, 0.25), 1, 1e-12, "snap")
}
