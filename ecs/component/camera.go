package component

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/common"
)

var ErrUnknownCameraMode = errors.New("unknown camera mode")

// CameraMode selects which camera configuration and facing rule applies.
type CameraMode int

const (
	CameraThirdPerson CameraMode = iota
	CameraIsometric
)

func (m CameraMode) String() string {
	switch m {
	case CameraThirdPerson:
		return "third_person"
	case CameraIsometric:
		return "isometric"
	default:
		return fmt.Sprintf("CameraMode(%d)", int(m))
	}
}

// Valid reports whether m is one of the declared modes.
func (m CameraMode) Valid() bool {
	return m == CameraThirdPerson || m == CameraIsometric
}

// ParseCameraMode accepts the config spellings of a mode.
func ParseCameraMode(s string) (CameraMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "third_person", "thirdperson", "third-person":
		return CameraThirdPerson, nil
	case "isometric", "iso":
		return CameraIsometric, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCameraMode, s)
	}
}

type ThirdPersonCamera struct {
	PivotOffset mgl64.Vec3
	YawSpeed    float64
	PitchSpeed  float64
	MinPitch    float64
	MaxPitch    float64
	FOV         float64
	Distance    float64
}

type IsometricCamera struct {
	PivotOffset  mgl64.Vec3
	ForwardAngle float64
	Pitch        float64
	FOV          float64
	Distance     float64
}

// CameraPlacement is the pivot and camera local transform written when a
// mode is applied. Pitch updates rewrite PivotRotation afterwards.
type CameraPlacement struct {
	FOV           float64
	LocalPosition mgl64.Vec3 // camera, relative to the pivot
	PivotPosition mgl64.Vec3 // pivot, relative to the character
	PivotRotation mgl64.Quat
}

// CameraRig holds the per-mode camera configuration and the runtime state
// owned by the camera system.
type CameraRig struct {
	// Mode is the requested mode. It may change between frames; the camera
	// system notices and re-applies placement.
	Mode        CameraMode
	ThirdPerson ThirdPersonCamera
	Isometric   IsometricCamera
	// Viewport is the screen size in pixels used for cursor picking.
	Viewport mgl64.Vec2

	Current        CameraMode
	Pitch          float64 // degrees, third-person only
	MaxRayDistance float64
	Placement      CameraPlacement
	Applied        int // number of placement applications
}

// FOV returns the field of view configured for mode.
func (r CameraRig) FOV(mode CameraMode) float64 {
	if mode == CameraIsometric {
		return r.Isometric.FOV
	}
	return r.ThirdPerson.FOV
}

// View composes character, pivot and camera transforms into a world view.
func (r CameraRig) View(root Transform) common.View {
	scale := root.Scale
	if scale == 0 {
		scale = 1
	}
	pivotRot := root.Rotation.Mul(r.Placement.PivotRotation)
	pivotPos := root.Position.Add(root.Rotation.Rotate(r.Placement.PivotPosition.Mul(scale)))
	return common.View{
		Position: pivotPos.Add(pivotRot.Rotate(r.Placement.LocalPosition.Mul(scale))),
		Rotation: pivotRot.Normalize(),
		FOV:      r.Placement.FOV,
		Width:    r.Viewport.X(),
		Height:   r.Viewport.Y(),
	}
}

var CameraRigComponent = NewComponent[CameraRig]()

// MouseRayDistance is the cursor pick range: twice the farthest the
// isometric camera can sit from the ground under the character.
func (r CameraRig) MouseRayDistance(jumpHeight float64) float64 {
	return 2 * (r.Isometric.PivotOffset.Len() + r.Isometric.Distance + jumpHeight)
}
