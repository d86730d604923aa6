package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/charactercontroller/ecs/system"
)

const (
	stickDeadzone = 0.2
	// DefaultMouseSensitivity converts cursor pixels into axis units.
	DefaultMouseSensitivity = 0.1
	// stickLookSpeed is the look axis value produced by a fully tilted right
	// stick in one frame.
	stickLookSpeed = 1.0
)

// EbitenSource reads keyboard, mouse and the first gamepad through ebiten.
type EbitenSource struct {
	bindings         system.InputBindings
	MouseSensitivity float64

	bank         *axisBank
	lastX        int
	lastY        int
	cursorX      int
	cursorY      int
	havePrev     bool
	captured     bool
	wantsCapture bool
}

var _ system.InputSource = (*EbitenSource)(nil)

func NewEbitenSource(bindings system.InputBindings) *EbitenSource {
	return &EbitenSource{
		bindings:         bindings,
		MouseSensitivity: DefaultMouseSensitivity,
		bank:             newAxisBank(),
	}
}

// SetCaptured locks and hides the cursor so mouse motion drives the camera.
// It applies on the next Update.
func (s *EbitenSource) SetCaptured(captured bool) {
	s.wantsCapture = captured
}

// SetBindings renames the axes written on the next Update.
func (s *EbitenSource) SetBindings(bindings system.InputBindings) {
	s.bindings = bindings
}

// Update polls devices once per frame.
func (s *EbitenSource) Update(dt float64) error {
	if s.wantsCapture != s.captured {
		if s.wantsCapture {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
		s.captured = s.wantsCapture
		s.havePrev = false
	}

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	back := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	forward := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)

	moveX := keyAxis(left, right)
	moveY := keyAxis(back, forward)

	x, y := ebiten.CursorPosition()
	s.cursorX, s.cursorY = x, y
	lookX, lookY := 0.0, 0.0
	if s.havePrev {
		lookX, lookY = mouseAxes(x-s.lastX, y-s.lastY, s.MouseSensitivity)
	}
	s.lastX, s.lastY = x, y
	s.havePrev = true

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if sx, sy, ok := stickAxes(lx, ly); ok {
			moveX, moveY = sx, sy
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if sx, sy, ok := stickAxes(rx, ry); ok {
			lookX += sx * stickLookSpeed
			lookY += sy * stickLookSpeed
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	s.bank.set(s.bindings.Horizontal, moveX, dt, true)
	s.bank.set(s.bindings.Vertical, moveY, dt, true)
	s.bank.set(s.bindings.MouseX, lookX, dt, false)
	s.bank.set(s.bindings.MouseY, lookY, dt, false)
	s.bank.buttons[s.bindings.Jump] = jump
	return nil
}

func (s *EbitenSource) ReadAxis(name string, raw bool) float64 {
	return s.bank.axis(name, raw)
}

func (s *EbitenSource) ReadButton(name string) bool {
	return s.bank.buttons[name]
}

func (s *EbitenSource) CursorPosition() (float64, float64) {
	return float64(s.cursorX), float64(s.cursorY)
}

func keyAxis(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v -= 1
	}
	if positive {
		v += 1
	}
	return v
}

// mouseAxes turns a pixel delta into look axes. Screen Y grows downward, the
// look axis grows upward.
func mouseAxes(dx, dy int, sensitivity float64) (float64, float64) {
	return float64(dx) * sensitivity, -float64(dy) * sensitivity
}

// stickAxes converts a stick reading to axis space (up is positive) and
// reports whether it is outside the dead zone.
func stickAxes(x, y float64) (float64, float64, bool) {
	if math.Hypot(x, y) <= stickDeadzone {
		return 0, 0, false
	}
	return x, -y, true
}
