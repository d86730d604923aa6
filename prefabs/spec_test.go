package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/ecs/component"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func TestLoadPlayerSpecEmbedded(t *testing.T) {
	spec, err := LoadPlayerSpec("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg, err := spec.ToComponents()
	if err != nil {
		t.Fatalf("to components: %v", err)
	}
	if cfg.Player.MaxGroundSpeed != 10 || cfg.Player.JumpHeight != 0.5 {
		t.Fatalf("unexpected movement %+v", cfg.Player)
	}
	if cfg.Rig.Mode != component.CameraThirdPerson {
		t.Fatalf("expected third person, got %v", cfg.Rig.Mode)
	}
	if cfg.Rig.ThirdPerson.MinPitch != -15 || cfg.Rig.ThirdPerson.MaxPitch != 45 {
		t.Fatalf("unexpected pitch range %+v", cfg.Rig.ThirdPerson)
	}
	if cfg.Rig.Isometric.PivotOffset != (mgl64.Vec3{0, 0.5, 0}) {
		t.Fatalf("unexpected iso pivot %v", cfg.Rig.Isometric.PivotOffset)
	}
	if cfg.Bindings.MouseX != "Mouse X" || cfg.Bindings.Jump != "Jump" {
		t.Fatalf("unexpected bindings %+v", cfg.Bindings)
	}
	if cfg.Gravity != (mgl64.Vec3{0, -9.81, 0}) {
		t.Fatalf("unexpected gravity %v", cfg.Gravity)
	}
}

func TestLoadPlayerSpecFromDiskKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fast.yaml")
	data := []byte("name: fast\nmovement:\n  max_ground_speed: 20\ncamera:\n  mode: isometric\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	spec, err := LoadPlayerSpec(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Movement.MaxGroundSpeed != 20 {
		t.Fatalf("expected override, got %v", spec.Movement.MaxGroundSpeed)
	}
	if spec.Movement.JumpHeight != 0.5 || spec.Camera.ThirdPerson.Distance != 8 {
		t.Fatalf("missing fields should keep defaults, got %+v", spec)
	}
	cfg, err := spec.ToComponents()
	if err != nil {
		t.Fatalf("to components: %v", err)
	}
	if cfg.Rig.Mode != component.CameraIsometric {
		t.Fatalf("expected isometric, got %v", cfg.Rig.Mode)
	}
}

func TestPlayerSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*PlayerSpec)
		wantErr error
	}{
		{"defaults_ok", func(*PlayerSpec) {}, nil},
		{"unknown_mode", func(s *PlayerSpec) { s.Camera.Mode = "first_person" }, ErrUnknownCameraMode},
		{"zero_speed", func(s *PlayerSpec) { s.Movement.MaxGroundSpeed = 0 }, ErrInvalidSpec},
		{"negative_jump", func(s *PlayerSpec) { s.Movement.JumpHeight = -1 }, ErrInvalidSpec},
		{"pitch_inverted", func(s *PlayerSpec) { s.Camera.ThirdPerson.MinPitch = 50 }, ErrInvalidSpec},
		{"zero_distance", func(s *PlayerSpec) { s.Camera.Isometric.Distance = 0 }, ErrInvalidSpec},
		{"bad_fov", func(s *PlayerSpec) { s.Camera.ThirdPerson.FOV = 180 }, ErrInvalidSpec},
		{"no_radius", func(s *PlayerSpec) { s.Body.Radius = 0 }, ErrInvalidSpec},
		{"empty_axis", func(s *PlayerSpec) { s.Input.Vertical = " " }, ErrInvalidSpec},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := DefaultPlayerSpec()
			tc.mutate(&spec)
			err := spec.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadPlayerSpecRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("camera:\n  mode: orbit\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPlayerSpec(path); !errors.Is(err, ErrUnknownCameraMode) {
		t.Fatalf("expected ErrUnknownCameraMode, got %v", err)
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadSpec[PlayerSpec]("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected error for missing spec")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"'#ff8000'", color.NRGBA{R: 255, G: 128, A: 255}, false},
		{"'#10203040'", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"steelblue", colornames.Steelblue, false},
		{"'#abc'", nil, true},
		{"[1, 2]", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Color != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, c.Color)
			}
		})
	}
}

func TestLoadScriptEmbedded(t *testing.T) {
	for _, name := range []string{"circle", "circle.tengo", "scripts/idle.tengo", "prefabs/scripts/idle.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}
