package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// InputSource is the host's named-axis input provider. Smoothed axes are the
// host's responsibility; raw asks for the undamped value.
type InputSource interface {
	ReadAxis(name string, raw bool) float64
	ReadButton(name string) bool
	CursorPosition() (x, y float64)
}

// InputBindings names the axes and button sampled each frame.
type InputBindings struct {
	Horizontal string
	Vertical   string
	MouseX     string
	MouseY     string
	Jump       string
}

func DefaultInputBindings() InputBindings {
	return InputBindings{
		Horizontal: "Horizontal",
		Vertical:   "Vertical",
		MouseX:     "Mouse X",
		MouseY:     "Mouse Y",
		Jump:       "Jump",
	}
}

// SampleInput reads one frame of input. Jump reports the button as held.
func SampleInput(src InputSource, b InputBindings, raw bool) component.Input {
	if src == nil {
		return component.Input{}
	}
	cx, cy := src.CursorPosition()
	return component.Input{
		Direction:  mgl64.Vec2{src.ReadAxis(b.Horizontal, raw), src.ReadAxis(b.Vertical, raw)},
		MouseDelta: mgl64.Vec2{src.ReadAxis(b.MouseX, raw), src.ReadAxis(b.MouseY, raw)},
		Cursor:     mgl64.Vec2{cx, cy},
		Jump:       src.ReadButton(b.Jump),
	}
}

type InputSystem struct {
	source   InputSource
	bindings InputBindings
}

func NewInputSystem(source InputSource, bindings InputBindings) *InputSystem {
	return &InputSystem{source: source, bindings: bindings}
}

// SetSource swaps the input provider between frames.
func (i *InputSystem) SetSource(source InputSource) {
	i.source = source
}

func (i *InputSystem) SetBindings(bindings InputBindings) {
	i.bindings = bindings
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		raw := false
		if p, ok := ecs.Get(w, e, component.PlayerComponent); ok {
			raw = p.RawInput
		}
		*input = SampleInput(i.source, i.bindings, raw)
	})
}
