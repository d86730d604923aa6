package component

import "github.com/go-gl/mathgl/mgl64"

// DirectionSqrMagnitudeThreshold is the squared length a frame's direction
// must exceed to become the new facing direction.
const DirectionSqrMagnitudeThreshold = 0.01

// Motion is the movement state carried across frames.
type Motion struct {
	WorldDirection           mgl64.Vec3
	LastSignificantDirection mgl64.Vec3
	Velocity                 mgl64.Vec3
	// JumpImpulse is the launch velocity added on a grounded jump frame.
	JumpImpulse mgl64.Vec3
	Grounded    bool
}

var MotionComponent = NewComponent[Motion]()
