package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Appearance is how the debug renderer draws a character.
type Appearance struct {
	Color  color.Color
	Radius float64
	Height float64
}

var AppearanceComponent = NewComponent[Appearance]()

// LevelBox is a static or moving block of level geometry spanning Min..Max in
// XZ and Bottom..Top vertically. Moving blocks take Top from their Transform.
type LevelBox struct {
	Min    mgl64.Vec2
	Max    mgl64.Vec2
	Bottom float64
	Top    float64
	Color  color.Color
	Wall   bool
}

var LevelBoxComponent = NewComponent[LevelBox]()
