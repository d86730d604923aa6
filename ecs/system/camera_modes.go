package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// Picker finds the first surface hit by a ray among the layers in mask.
type Picker interface {
	Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask component.LayerMask) (mgl64.Vec3, bool)
}

// facingContext is everything a mode needs to orient the mesh.
type facingContext struct {
	rig    *component.CameraRig
	root   *component.Transform
	mesh   *component.Mesh
	motion *component.Motion
	input  *component.Input
	picker Picker
}

// cameraMode holds the per-mode rules. Every mode implements every step, even
// as a no-op.
type cameraMode interface {
	place(rig *component.CameraRig, root *component.Transform)
	pitch(rig *component.CameraRig, dy float64)
	yaw(rig *component.CameraRig, root *component.Transform, dx float64)
	face(ctx facingContext)
}

var cameraModes = map[component.CameraMode]cameraMode{
	component.CameraThirdPerson: thirdPersonMode{},
	component.CameraIsometric:   isometricMode{},
}

func modeFor(m component.CameraMode) (cameraMode, error) {
	mode, ok := cameraModes[m]
	if !ok {
		return nil, fmt.Errorf("%w: %v", component.ErrUnknownCameraMode, m)
	}
	return mode, nil
}

type thirdPersonMode struct{}

func (thirdPersonMode) place(rig *component.CameraRig, root *component.Transform) {
	cfg := rig.ThirdPerson
	rig.Placement = component.CameraPlacement{
		FOV:           cfg.FOV,
		LocalPosition: mgl64.Vec3{0, 0, -cfg.Distance},
		PivotPosition: cfg.PivotOffset,
		PivotRotation: common.Euler(cfg.MaxPitch-cfg.MinPitch, 0, 0),
	}
}

func (thirdPersonMode) pitch(rig *component.CameraRig, dy float64) {
	cfg := rig.ThirdPerson
	p := common.NormalizeTo180(rig.Pitch) - dy*cfg.PitchSpeed
	rig.Pitch = mgl64.Clamp(p, cfg.MinPitch, cfg.MaxPitch)
	rig.Placement.PivotRotation = common.Euler(rig.Pitch, 0, 0)
}

func (thirdPersonMode) yaw(rig *component.CameraRig, root *component.Transform, dx float64) {
	if dx == 0 {
		return
	}
	root.Rotation = common.RotateAround(root.Rotation, common.Up, dx*rig.ThirdPerson.YawSpeed)
}

func (thirdPersonMode) face(ctx facingContext) {
	ctx.mesh.Rotation = common.LookRotation(ctx.motion.LastSignificantDirection)
}

type isometricMode struct{}

func (isometricMode) place(rig *component.CameraRig, root *component.Transform) {
	cfg := rig.Isometric
	rig.Placement = component.CameraPlacement{
		FOV:           cfg.FOV,
		LocalPosition: mgl64.Vec3{0, 0, -cfg.Distance},
		PivotPosition: cfg.PivotOffset,
		PivotRotation: common.Euler(cfg.Pitch, 0, 0),
	}
	root.Rotation = common.Euler(0, cfg.ForwardAngle, 0)
}

func (isometricMode) pitch(*component.CameraRig, float64) {}

func (isometricMode) yaw(*component.CameraRig, *component.Transform, float64) {}

func (isometricMode) face(ctx facingContext) {
	meshPos := ctx.mesh.WorldPosition(*ctx.root)
	target := ctx.root.Position
	if ctx.picker != nil {
		view := ctx.rig.View(*ctx.root)
		origin, dir := view.ScreenPointToRay(ctx.input.Cursor.X(), ctx.input.Cursor.Y())
		if hit, ok := ctx.picker.Raycast(origin, dir, ctx.rig.MaxRayDistance, component.GroundLayer); ok {
			target = hit
		}
	}
	target[1] = meshPos.Y()
	ctx.mesh.Rotation = common.YawLookAt(ctx.mesh.Rotation, meshPos, target)
}
