package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// DeriveWorldDirection maps a 2D input onto the character's horizontal plane:
// X strafes, Y goes forward. The local vector is capped to length limit
// before the character rotation and scale are applied.
func DeriveWorldDirection(input mgl64.Vec2, rotation mgl64.Quat, scale, limit float64) mgl64.Vec3 {
	local := common.ClampMagnitude(mgl64.Vec3{input.X(), 0, input.Y()}, limit)
	return common.TransformVector(rotation, scale, local)
}

// UpdateDirection stores a frame's world direction and promotes it to the
// facing direction when it is long enough.
func UpdateDirection(m *component.Motion, dir mgl64.Vec3) {
	m.WorldDirection = dir
	if dir.Dot(dir) > component.DirectionSqrMagnitudeThreshold {
		m.LastSignificantDirection = dir
	}
}

type DirectionSystem struct{}

func NewDirectionSystem() *DirectionSystem {
	return &DirectionSystem{}
}

func (ds *DirectionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.MotionComponent, component.TransformComponent, func(e ecs.Entity, motion *component.Motion, root *component.Transform) {
		input, _ := ecs.Get(w, e, component.InputComponent)
		limit := 1.0
		if p, ok := ecs.Get(w, e, component.PlayerComponent); ok && p.DirectionCap > 0 {
			limit = p.DirectionCap
		}
		UpdateDirection(motion, DeriveWorldDirection(input.Direction, root.Rotation, root.ScaleOrOne(), limit))
	})
}
