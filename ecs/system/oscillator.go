package system

import (
	"math"

	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// OscillatorHeight is the height at time t of a body swinging between bottom
// and top.
func OscillatorHeight(o component.Oscillator, t float64) float64 {
	half := (o.Top - o.Bottom) * 0.5
	mid := o.Bottom + half
	return mid + math.Sin(t)*half
}

// OscillatorSystem moves oscillating entities and the ground regions they
// carry.
type OscillatorSystem struct{}

func NewOscillatorSystem() *OscillatorSystem {
	return &OscillatorSystem{}
}

func (s *OscillatorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	t := w.Elapsed()
	pw := w.PhysicsWorld()
	ecs.ForEach2(w, component.OscillatorComponent, component.TransformComponent, func(e ecs.Entity, osc *component.Oscillator, tr *component.Transform) {
		tr.Position[1] = OscillatorHeight(*osc, t)
		if region, ok := ecs.Get(w, e, component.GroundRegionComponent); ok {
			pw.SetGroundHeight(region.Index, tr.Position.Y())
		}
	})
}
