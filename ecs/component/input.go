package component

import "github.com/go-gl/mathgl/mgl64"

// Input stores one frame's input sample for an entity. It is overwritten
// every frame.
type Input struct {
	// Direction is the movement axis pair, each component in [-1, 1]:
	// X = strafe (right positive), Y = forward.
	Direction mgl64.Vec2
	// MouseDelta is the pointer movement since the previous frame, in axis units.
	MouseDelta mgl64.Vec2
	// Cursor is the pointer position in screen pixels, origin top-left.
	Cursor mgl64.Vec2
	Jump   bool
}

var InputComponent = NewComponent[Input]()
