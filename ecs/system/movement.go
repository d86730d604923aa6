package system

import (
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// MovementSystem hands each frame's displacement to the host body. The body
// owns collision resolution.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (ms *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaTime()
	ecs.ForEach2(w, component.MotionComponent, component.PhysicsBodyComponent, func(e ecs.Entity, motion *component.Motion, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		body.Body.Move(motion.Velocity.Mul(dt))

		grounded := body.Body.IsGrounded()
		if grounded && !motion.Grounded {
			w.Events().Push(ecs.Event{Type: ecs.EventLanded, Entity: e})
		}
		motion.Grounded = grounded
	})

	w.PhysicsWorld().Step(dt)
}

// TransformSyncSystem copies body positions into root transforms.
type TransformSyncSystem struct{}

func NewTransformSyncSystem() *TransformSyncSystem {
	return &TransformSyncSystem{}
}

func (ts *TransformSyncSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Body == nil {
			return
		}
		t.Position = body.Body.Position()
	})
}
