package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/ecs/system"
	"github.com/milk9111/charactercontroller/logger"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidSpec       = errors.New("invalid spec")
	ErrUnknownCameraMode = component.ErrUnknownCameraMode
)

const PlayerSpecFile = "player.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename over the values already in spec, so fields
// missing from the file keep their defaults.
func LoadSpecInto[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type Vec3Spec [3]float64

func (v Vec3Spec) Vec() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

type Vec2Spec [2]float64

func (v Vec2Spec) Vec() mgl64.Vec2 {
	return mgl64.Vec2(v)
}

type PlayerSpec struct {
	Name     string       `yaml:"name"`
	Movement MovementSpec `yaml:"movement"`
	Body     BodySpec     `yaml:"body"`
	Camera   CameraSpec   `yaml:"camera"`
	Input    InputSpec    `yaml:"input"`
	Physics  PhysicsSpec  `yaml:"physics"`
	Logging  LoggingSpec  `yaml:"logging"`
}

type MovementSpec struct {
	MaxGroundSpeed float64 `yaml:"max_ground_speed"`
	JumpHeight     float64 `yaml:"jump_height"`
	DirectionCap   float64 `yaml:"direction_cap"`
	RawInput       bool    `yaml:"raw_input"`
}

type BodySpec struct {
	Radius     float64   `yaml:"radius"`
	Spawn      Vec3Spec  `yaml:"spawn"`
	MeshOffset Vec3Spec  `yaml:"mesh_offset"`
	Color      YAMLColor `yaml:"color"`
}

type CameraSpec struct {
	Mode        string                `yaml:"mode"`
	Viewport    Vec2Spec              `yaml:"viewport"`
	ThirdPerson ThirdPersonCameraSpec `yaml:"third_person"`
	Isometric   IsometricCameraSpec   `yaml:"isometric"`
}

type ThirdPersonCameraSpec struct {
	PivotOffset Vec3Spec `yaml:"pivot_offset"`
	YawSpeed    float64  `yaml:"yaw_speed"`
	PitchSpeed  float64  `yaml:"pitch_speed"`
	MinPitch    float64  `yaml:"min_pitch"`
	MaxPitch    float64  `yaml:"max_pitch"`
	FOV         float64  `yaml:"fov"`
	Distance    float64  `yaml:"distance"`
}

type IsometricCameraSpec struct {
	PivotOffset  Vec3Spec `yaml:"pivot_offset"`
	ForwardAngle float64  `yaml:"forward_angle"`
	Pitch        float64  `yaml:"pitch"`
	FOV          float64  `yaml:"fov"`
	Distance     float64  `yaml:"distance"`
}

type InputSpec struct {
	Horizontal       string  `yaml:"horizontal"`
	Vertical         string  `yaml:"vertical"`
	MouseX           string  `yaml:"mouse_x"`
	MouseY           string  `yaml:"mouse_y"`
	Jump             string  `yaml:"jump"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
}

type PhysicsSpec struct {
	Gravity Vec3Spec `yaml:"gravity"`
}

type LoggingSpec struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultPlayerSpec returns the built-in tuning. Files are decoded on top of
// it.
func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name: "player",
		Movement: MovementSpec{
			MaxGroundSpeed: 10,
			JumpHeight:     0.5,
			DirectionCap:   1,
		},
		Body: BodySpec{
			Radius: 0.5,
			Color:  YAMLColor{Color: colornames.Orange},
		},
		Camera: CameraSpec{
			Mode:     component.CameraThirdPerson.String(),
			Viewport: Vec2Spec{1280, 720},
			ThirdPerson: ThirdPersonCameraSpec{
				PivotOffset: Vec3Spec{0, 1.2, 0},
				YawSpeed:    5,
				PitchSpeed:  2.5,
				MinPitch:    -15,
				MaxPitch:    45,
				FOV:         60,
				Distance:    8,
			},
			Isometric: IsometricCameraSpec{
				PivotOffset:  Vec3Spec{0, 0.5, 0},
				ForwardAngle: -45,
				Pitch:        45,
				FOV:          30,
				Distance:     12,
			},
		},
		Input: InputSpec{
			Horizontal:       "Horizontal",
			Vertical:         "Vertical",
			MouseX:           "Mouse X",
			MouseY:           "Mouse Y",
			Jump:             "Jump",
			MouseSensitivity: 0.1,
		},
		Physics: PhysicsSpec{Gravity: Vec3Spec{0, -9.81, 0}},
		Logging: LoggingSpec{Level: "info", Format: "console"},
	}
}

// LoadPlayerSpec loads and validates a player spec. An empty filename loads
// the default player.yaml.
func LoadPlayerSpec(filename string) (*PlayerSpec, error) {
	if strings.TrimSpace(filename) == "" {
		filename = PlayerSpecFile
	}
	spec := DefaultPlayerSpec()
	if err := LoadSpecInto(filename, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate reports every configuration problem at once.
func (s PlayerSpec) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSpec}, args...)...))
	}

	if _, err := component.ParseCameraMode(s.Camera.Mode); err != nil {
		errs = append(errs, err)
	}
	if s.Movement.MaxGroundSpeed <= 0 {
		invalid("movement.max_ground_speed must be positive, got %v", s.Movement.MaxGroundSpeed)
	}
	if s.Movement.JumpHeight < 0 {
		invalid("movement.jump_height must not be negative, got %v", s.Movement.JumpHeight)
	}
	if s.Movement.DirectionCap < 0 {
		invalid("movement.direction_cap must not be negative, got %v", s.Movement.DirectionCap)
	}
	if s.Body.Radius <= 0 {
		invalid("body.radius must be positive, got %v", s.Body.Radius)
	}

	tp := s.Camera.ThirdPerson
	if tp.YawSpeed < 0 || tp.PitchSpeed < 0 {
		invalid("camera.third_person speeds must not be negative")
	}
	if tp.MinPitch > tp.MaxPitch {
		invalid("camera.third_person.min_pitch %v exceeds max_pitch %v", tp.MinPitch, tp.MaxPitch)
	}
	if tp.Distance <= 0 {
		invalid("camera.third_person.distance must be positive, got %v", tp.Distance)
	}
	if !validFOV(tp.FOV) {
		invalid("camera.third_person.fov must be in (0, 180), got %v", tp.FOV)
	}

	iso := s.Camera.Isometric
	if iso.Distance <= 0 {
		invalid("camera.isometric.distance must be positive, got %v", iso.Distance)
	}
	if !validFOV(iso.FOV) {
		invalid("camera.isometric.fov must be in (0, 180), got %v", iso.FOV)
	}
	if s.Camera.Viewport[0] <= 0 || s.Camera.Viewport[1] <= 0 {
		invalid("camera.viewport must be positive, got %v", s.Camera.Viewport)
	}

	for field, name := range map[string]string{
		"horizontal": s.Input.Horizontal,
		"vertical":   s.Input.Vertical,
		"mouse_x":    s.Input.MouseX,
		"mouse_y":    s.Input.MouseY,
		"jump":       s.Input.Jump,
	} {
		if strings.TrimSpace(name) == "" {
			invalid("input.%s must name an axis", field)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("prefabs: validate %s: %w", s.Name, errors.Join(errs...))
}

func validFOV(fov float64) bool {
	return fov > 0 && fov < 180
}

// PlayerConfig is the immutable controller configuration built from a spec.
type PlayerConfig struct {
	Player           component.Player
	Rig              component.CameraRig
	Bindings         system.InputBindings
	Gravity          mgl64.Vec3
	Radius           float64
	Spawn            mgl64.Vec3
	MeshOffset       mgl64.Vec3
	Color            color.Color
	MouseSensitivity float64
	Logging          logger.Config
}

// ToComponents converts a validated spec into component values.
func (s PlayerSpec) ToComponents() (PlayerConfig, error) {
	mode, err := component.ParseCameraMode(s.Camera.Mode)
	if err != nil {
		return PlayerConfig{}, fmt.Errorf("prefabs: %s camera: %w", s.Name, err)
	}
	tp := s.Camera.ThirdPerson
	iso := s.Camera.Isometric
	return PlayerConfig{
		Player: component.Player{
			MaxGroundSpeed: s.Movement.MaxGroundSpeed,
			JumpHeight:     s.Movement.JumpHeight,
			DirectionCap:   s.Movement.DirectionCap,
			RawInput:       s.Movement.RawInput,
		},
		Rig: component.CameraRig{
			Mode: mode,
			ThirdPerson: component.ThirdPersonCamera{
				PivotOffset: tp.PivotOffset.Vec(),
				YawSpeed:    tp.YawSpeed,
				PitchSpeed:  tp.PitchSpeed,
				MinPitch:    tp.MinPitch,
				MaxPitch:    tp.MaxPitch,
				FOV:         tp.FOV,
				Distance:    tp.Distance,
			},
			Isometric: component.IsometricCamera{
				PivotOffset:  iso.PivotOffset.Vec(),
				ForwardAngle: iso.ForwardAngle,
				Pitch:        iso.Pitch,
				FOV:          iso.FOV,
				Distance:     iso.Distance,
			},
			Viewport: s.Camera.Viewport.Vec(),
		},
		Bindings: system.InputBindings{
			Horizontal: s.Input.Horizontal,
			Vertical:   s.Input.Vertical,
			MouseX:     s.Input.MouseX,
			MouseY:     s.Input.MouseY,
			Jump:       s.Input.Jump,
		},
		Gravity:          s.Physics.Gravity.Vec(),
		Radius:           s.Body.Radius,
		Spawn:            s.Body.Spawn.Vec(),
		MeshOffset:       s.Body.MeshOffset.Vec(),
		Color:            s.Body.Color.Or(colornames.Orange),
		MouseSensitivity: s.Input.MouseSensitivity,
		Logging: logger.Config{
			Level:  s.Logging.Level,
			Format: s.Logging.Format,
		},
	}, nil
}

// YAMLColor decodes "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

// Or returns c's color, or fallback when unset.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(value.Value))]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
