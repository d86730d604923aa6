package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/charactercontroller/prefabs"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

const DefaultLevel = "arena"

// Level is walkable geometry in world units. Boxes are given as XZ corners.
type Level struct {
	Name      string           `yaml:"name"`
	Spawn     prefabs.Vec3Spec `yaml:"spawn"`
	Grounds   []Ground         `yaml:"grounds"`
	Walls     []Wall           `yaml:"walls"`
	Platforms []Platform       `yaml:"platforms"`
}

type Ground struct {
	Min    prefabs.Vec2Spec  `yaml:"min"`
	Max    prefabs.Vec2Spec  `yaml:"max"`
	Height float64           `yaml:"height"`
	Color  prefabs.YAMLColor `yaml:"color"`
}

type Wall struct {
	Min    prefabs.Vec2Spec  `yaml:"min"`
	Max    prefabs.Vec2Spec  `yaml:"max"`
	Height float64           `yaml:"height"`
	Color  prefabs.YAMLColor `yaml:"color"`
}

// Platform is a ground region that oscillates between Bottom and Top.
type Platform struct {
	Min    prefabs.Vec2Spec  `yaml:"min"`
	Max    prefabs.Vec2Spec  `yaml:"max"`
	Top    float64           `yaml:"top"`
	Bottom float64           `yaml:"bottom"`
	Color  prefabs.YAMLColor `yaml:"color"`
}

// Load reads a level by name ("arena", "arena.yaml") or by file path.
func Load(name string) (*Level, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultLevel
	}
	data, err := os.ReadFile(name)
	if err != nil {
		file := filepath.Base(name)
		if filepath.Ext(file) == "" {
			file += ".yaml"
		}
		data, err = LevelsFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
	}
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if len(lvl.Grounds) == 0 && len(lvl.Platforms) == 0 {
		return nil, fmt.Errorf("levels: %s: %w: no ground", name, prefabs.ErrInvalidSpec)
	}
	for i, p := range lvl.Platforms {
		if p.Bottom > p.Top {
			return nil, fmt.Errorf("levels: %s: %w: platform %d bottom above top", name, prefabs.ErrInvalidSpec, i)
		}
	}
	return &lvl, nil
}
