package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// JumpImpulse is the upward launch speed that reaches height under gravity.
func JumpImpulse(gravity mgl64.Vec3, height float64) mgl64.Vec3 {
	if height <= 0 {
		return mgl64.Vec3{}
	}
	return common.Up.Mul(math.Sqrt(2 * math.Abs(gravity.Y()) * height))
}

// IntegrateVelocity advances v by one frame. On the ground velocity is
// replaced by the input direction at full speed plus the jump impulse when
// jumping; gravity always accumulates.
func IntegrateVelocity(v mgl64.Vec3, grounded bool, dir mgl64.Vec3, jump bool, maxSpeed float64, impulse, gravity mgl64.Vec3, dt float64) mgl64.Vec3 {
	if grounded {
		v = dir.Mul(maxSpeed)
		if jump {
			v = v.Add(impulse)
		}
	}
	return v.Add(gravity.Mul(dt))
}

type VelocitySystem struct{}

func NewVelocitySystem() *VelocitySystem {
	return &VelocitySystem{}
}

func (vs *VelocitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaTime()
	gravity := w.Gravity()
	ecs.ForEach2(w, component.MotionComponent, component.PhysicsBodyComponent, func(e ecs.Entity, motion *component.Motion, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		player, _ := ecs.Get(w, e, component.PlayerComponent)
		input, _ := ecs.Get(w, e, component.InputComponent)

		grounded := body.Body.IsGrounded()
		motion.Velocity = IntegrateVelocity(motion.Velocity, grounded, motion.WorldDirection, input.Jump, player.MaxGroundSpeed, motion.JumpImpulse, gravity, dt)
		if grounded && input.Jump {
			w.Events().Push(ecs.Event{Type: ecs.EventJumped, Entity: e, Data: motion.Velocity})
		}
	})
}
