package system

import "github.com/milk9111/charactercontroller/ecs"

// Pipeline is the character controller's system order. Each system sees the
// results of the ones before it in the same frame.
type Pipeline struct {
	Input     *InputSystem
	Camera    *CameraSystem
	Direction *DirectionSystem
	Facing    *FacingSystem
	Velocity  *VelocitySystem
	Movement  *MovementSystem
	Sync      *TransformSyncSystem
}

// NewCharacterPipeline builds the per-frame order: input, camera, direction,
// facing, velocity, movement, transform sync. Moving platforms update first.
func NewCharacterPipeline(source InputSource, bindings InputBindings, picker Picker) (*ecs.Scheduler, *Pipeline) {
	p := &Pipeline{
		Input:     NewInputSystem(source, bindings),
		Camera:    NewCameraSystem(),
		Direction: NewDirectionSystem(),
		Facing:    NewFacingSystem(picker),
		Velocity:  NewVelocitySystem(),
		Movement:  NewMovementSystem(),
		Sync:      NewTransformSyncSystem(),
	}
	s := ecs.NewScheduler(
		NewOscillatorSystem(),
		p.Input,
		p.Camera,
		p.Direction,
		p.Facing,
		p.Velocity,
		p.Movement,
		p.Sync,
	)
	return s, p
}
