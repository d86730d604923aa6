package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/levels"
	"golang.org/x/image/colornames"
)

// groundThickness is the drawn depth of ground slabs.
const groundThickness = 0.2

// LoadLevelToWorld builds the physics world for lvl, attaches it to world
// and creates an entity per block of geometry.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) (*ecs.PhysicsWorld, error) {
	pw := ecs.NewPhysicsWorld()
	world.SetPhysicsWorld(pw)

	for _, g := range lvl.Grounds {
		pw.AddGround(g.Min.Vec(), g.Max.Vec(), g.Height)
		if err := addBox(world, component.LevelBox{
			Min:    g.Min.Vec(),
			Max:    g.Max.Vec(),
			Bottom: g.Height - groundThickness,
			Top:    g.Height,
			Color:  g.Color.Or(colornames.Darkolivegreen),
		}); err != nil {
			return nil, err
		}
	}

	for _, wall := range lvl.Walls {
		pw.AddWall(wall.Min.Vec(), wall.Max.Vec())
		if err := addBox(world, component.LevelBox{
			Min:   wall.Min.Vec(),
			Max:   wall.Max.Vec(),
			Top:   wall.Height,
			Color: wall.Color.Or(colornames.Slategray),
			Wall:  true,
		}); err != nil {
			return nil, err
		}
	}

	for _, p := range lvl.Platforms {
		idx := pw.AddGround(p.Min.Vec(), p.Max.Vec(), p.Bottom)
		e := world.CreateEntity()
		center := p.Min.Vec().Add(p.Max.Vec()).Mul(0.5)
		for _, err := range []error{
			ecs.Add(world, e, component.PlatformTagComponent, component.PlatformTag{}),
			ecs.Add(world, e, component.TransformComponent, component.Transform{
				Position: mgl64.Vec3{center.X(), p.Bottom, center.Y()},
				Rotation: mgl64.QuatIdent(),
				Scale:    1,
			}),
			ecs.Add(world, e, component.OscillatorComponent, component.Oscillator{Top: p.Top, Bottom: p.Bottom}),
			ecs.Add(world, e, component.GroundRegionComponent, component.GroundRegion{Index: idx}),
			ecs.Add(world, e, component.LevelBoxComponent, component.LevelBox{
				Min:    p.Min.Vec(),
				Max:    p.Max.Vec(),
				Bottom: p.Bottom - groundThickness,
				Top:    p.Bottom,
				Color:  p.Color.Or(colornames.Goldenrod),
			}),
		} {
			if err != nil {
				return nil, fmt.Errorf("level: platform: %w", err)
			}
		}
	}

	return pw, nil
}

func addBox(world *ecs.World, box component.LevelBox) error {
	e := world.CreateEntity()
	if err := ecs.Add(world, e, component.LevelBoxComponent, box); err != nil {
		return fmt.Errorf("level: add box: %w", err)
	}
	return nil
}
