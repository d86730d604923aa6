package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/charactercontroller/ecs/system"
)

var ErrScriptMissingSample = errors.New("script does not define sample")

// sampleDispatch runs the script's sample function once per frame and keeps
// its result in a global the host reads back.
const sampleDispatch = `
__out = sample(__frame, __time, __state)
`

// ScriptSource produces input from a tengo script. The script defines
//
//	sample := func(frame, time, state) { return {horizontal: 0, vertical: 1, jump: false} }
//
// Keys are axis names lowercased with spaces replaced by underscores, plus
// cursor_x and cursor_y. Missing keys read as zero. state is a map the script
// may use to keep values across frames.
type ScriptSource struct {
	name     string
	bindings system.InputBindings
	compiled *tengo.Compiled
	state    *tengo.Map

	bank    *axisBank
	frame   int64
	elapsed float64
	cursorX float64
	cursorY float64
}

var _ system.InputSource = (*ScriptSource)(nil)

// NewScriptSource compiles src. name is used in error messages.
func NewScriptSource(name string, src []byte, bindings system.InputBindings) (*ScriptSource, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + sampleDispatch))
	_ = script.Add("__frame", 0)
	_ = script.Add("__time", 0.0)
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__out", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		if strings.Contains(err.Error(), "unresolved reference 'sample'") {
			return nil, fmt.Errorf("input: script %s: %w", name, ErrScriptMissingSample)
		}
		return nil, fmt.Errorf("input: compile script %s: %w", name, err)
	}

	return &ScriptSource{
		name:     name,
		bindings: bindings,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		bank:     newAxisBank(),
	}, nil
}

// Update runs the script for the next frame. On error the previous frame's
// values are kept.
func (s *ScriptSource) Update(dt float64) error {
	if dt > 0 {
		s.elapsed += dt
	}
	if err := s.compiled.Set("__frame", s.frame); err != nil {
		return err
	}
	if err := s.compiled.Set("__time", s.elapsed); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	s.frame++
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("input: run script %s: %w", s.name, err)
	}

	out := s.compiled.Get("__out").Map()
	for _, name := range []string{s.bindings.Horizontal, s.bindings.Vertical} {
		s.bank.set(name, clampAxis(toFloat(out[scriptKey(name)])), dt, true)
	}
	for _, name := range []string{s.bindings.MouseX, s.bindings.MouseY} {
		s.bank.set(name, toFloat(out[scriptKey(name)]), dt, false)
	}
	s.bank.buttons[s.bindings.Jump] = toBool(out[scriptKey(s.bindings.Jump)])
	if v, ok := out["cursor_x"]; ok {
		s.cursorX = toFloat(v)
	}
	if v, ok := out["cursor_y"]; ok {
		s.cursorY = toFloat(v)
	}
	return nil
}

// Frame returns the number of completed Update calls.
func (s *ScriptSource) Frame() int64 {
	return s.frame
}

func (s *ScriptSource) ReadAxis(name string, raw bool) float64 {
	return s.bank.axis(name, raw)
}

func (s *ScriptSource) ReadButton(name string) bool {
	return s.bank.buttons[name]
}

func (s *ScriptSource) CursorPosition() (float64, float64) {
	return s.cursorX, s.cursorY
}

func scriptKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case float64:
		return b != 0
	}
	return false
}
