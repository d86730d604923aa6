package entity

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/ecs/system"
	"github.com/milk9111/charactercontroller/prefabs"
)

var ErrNoPhysicsWorld = errors.New("entity: world has no physics")

// characterHeight is the drawn height of the character capsule.
const characterHeight = 1.8

// BuildPlayer spawns the controlled character at spawn. The world must have
// a physics world attached.
func BuildPlayer(w *ecs.World, cfg prefabs.PlayerConfig, spawn mgl64.Vec3) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, ErrNoPhysicsWorld
	}
	w.SetGravity(cfg.Gravity)

	pos := spawn.Add(cfg.Spawn)
	body := pw.NewCharacter(pos, cfg.Radius)
	body.Move(mgl64.Vec3{0, -body.Radius(), 0})

	root := component.Transform{Position: body.Position(), Rotation: mgl64.QuatIdent(), Scale: 1}
	rig := cfg.Rig
	rig.MaxRayDistance = rig.MouseRayDistance(cfg.Player.JumpHeight)
	if _, err := system.ApplyCameraMode(&rig, &root, true); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	e := w.CreateEntity()
	adds := []func() error{
		func() error { return ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}) },
		func() error { return ecs.Add(w, e, component.PlayerComponent, cfg.Player) },
		func() error { return ecs.Add(w, e, component.InputComponent, component.Input{}) },
		func() error { return ecs.Add(w, e, component.TransformComponent, root) },
		func() error { return ecs.Add(w, e, component.CameraRigComponent, rig) },
		func() error {
			return ecs.Add(w, e, component.MeshComponent, component.Mesh{Offset: cfg.MeshOffset, Rotation: mgl64.QuatIdent()})
		},
		func() error {
			return ecs.Add(w, e, component.MotionComponent, component.Motion{
				JumpImpulse: system.JumpImpulse(w.Gravity(), cfg.Player.JumpHeight),
				Grounded:    body.IsGrounded(),
			})
		},
		func() error { return ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{Body: body}) },
		func() error {
			return ecs.Add(w, e, component.AppearanceComponent, component.Appearance{Color: cfg.Color, Radius: cfg.Radius, Height: characterHeight})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("player: add component: %w", err)
		}
	}
	return e, nil
}

// ApplyPlayerSpec swaps a live player's tunables between frames. A changed
// camera mode is left for the camera system to apply; changed camera settings
// under the same mode are re-placed immediately.
func ApplyPlayerSpec(w *ecs.World, e ecs.Entity, cfg prefabs.PlayerConfig) error {
	rig, ok := ecs.Get(w, e, component.CameraRigComponent)
	if !ok {
		return fmt.Errorf("player: apply spec: %w", component.ErrEntityNotAlive)
	}
	root, _ := ecs.Get(w, e, component.TransformComponent)
	motion, _ := ecs.Get(w, e, component.MotionComponent)
	mesh, _ := ecs.Get(w, e, component.MeshComponent)

	w.SetGravity(cfg.Gravity)

	settingsChanged := rig.ThirdPerson != cfg.Rig.ThirdPerson || rig.Isometric != cfg.Rig.Isometric
	rig.ThirdPerson = cfg.Rig.ThirdPerson
	rig.Isometric = cfg.Rig.Isometric
	rig.Viewport = cfg.Rig.Viewport
	rig.Mode = cfg.Rig.Mode
	rig.MaxRayDistance = rig.MouseRayDistance(cfg.Player.JumpHeight)
	if settingsChanged && rig.Mode == rig.Current {
		if _, err := system.ApplyCameraMode(&rig, &root, true); err != nil {
			return fmt.Errorf("player: apply spec: %w", err)
		}
	}

	motion.JumpImpulse = system.JumpImpulse(w.Gravity(), cfg.Player.JumpHeight)
	mesh.Offset = cfg.MeshOffset

	appearance, _ := ecs.Get(w, e, component.AppearanceComponent)
	appearance.Color = cfg.Color
	appearance.Radius = cfg.Radius

	for _, err := range []error{
		ecs.Add(w, e, component.PlayerComponent, cfg.Player),
		ecs.Add(w, e, component.CameraRigComponent, rig),
		ecs.Add(w, e, component.TransformComponent, root),
		ecs.Add(w, e, component.MotionComponent, motion),
		ecs.Add(w, e, component.MeshComponent, mesh),
		ecs.Add(w, e, component.AppearanceComponent, appearance),
	} {
		if err != nil {
			return fmt.Errorf("player: apply spec: %w", err)
		}
	}
	return nil
}

// SetCameraMode requests a camera mode for the player. The camera system
// applies it on the next frame.
func SetCameraMode(w *ecs.World, e ecs.Entity, mode component.CameraMode) error {
	if !mode.Valid() {
		return fmt.Errorf("player: set camera mode: %w: %v", component.ErrUnknownCameraMode, mode)
	}
	rig, ok := ecs.Get(w, e, component.CameraRigComponent)
	if !ok {
		return fmt.Errorf("player: set camera mode: %w", component.ErrEntityNotAlive)
	}
	rig.Mode = mode
	return ecs.Add(w, e, component.CameraRigComponent, rig)
}

// Player returns the first player entity.
func Player(w *ecs.World) (ecs.Entity, bool) {
	return w.First(component.PlayerTagComponent.Kind())
}
