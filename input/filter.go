package input

import (
	"math"

	"github.com/milk9111/charactercontroller/common"
)

const (
	DefaultAxisSensitivity = 3.0
	DefaultAxisGravity     = 3.0
	DefaultAxisDeadZone    = 0.001
)

// AxisFilter damps a digital or analog axis toward its target the way engine
// "virtual axes" do: it ramps toward a held target at Sensitivity units per
// second, falls back to zero at Gravity units per second, and optionally
// snaps through zero when the target reverses.
type AxisFilter struct {
	Sensitivity float64
	Gravity     float64
	DeadZone    float64
	Snap        bool

	value float64
}

func NewAxisFilter() *AxisFilter {
	return &AxisFilter{
		Sensitivity: DefaultAxisSensitivity,
		Gravity:     DefaultAxisGravity,
		DeadZone:    DefaultAxisDeadZone,
		Snap:        true,
	}
}

// Update advances the filter by dt seconds toward target and returns the new
// value.
func (f *AxisFilter) Update(target, dt float64) float64 {
	if math.Abs(target) < f.DeadZone {
		target = 0
	}
	if dt <= 0 {
		return f.value
	}
	if f.Snap && target != 0 && f.value != 0 && math.Signbit(target) != math.Signbit(f.value) {
		f.value = 0
	}
	if target == 0 {
		f.value = common.MoveTowards(f.value, 0, f.Gravity*dt)
	} else {
		f.value = common.MoveTowards(f.value, target, f.Sensitivity*dt)
	}
	if math.Abs(f.value) < f.DeadZone {
		f.value = 0
	}
	return f.value
}

func (f *AxisFilter) Value() float64 {
	return f.value
}

func (f *AxisFilter) Reset() {
	f.value = 0
}

// axisBank holds one frame of raw and smoothed values per axis name.
type axisBank struct {
	raw      map[string]float64
	smoothed map[string]float64
	filters  map[string]*AxisFilter
	buttons  map[string]bool
}

func newAxisBank() *axisBank {
	return &axisBank{
		raw:      map[string]float64{},
		smoothed: map[string]float64{},
		filters:  map[string]*AxisFilter{},
		buttons:  map[string]bool{},
	}
}

// set records a raw axis value. Filtered axes are advanced by dt; others
// report the raw value in both modes.
func (b *axisBank) set(name string, value, dt float64, filtered bool) {
	b.raw[name] = value
	if !filtered {
		b.smoothed[name] = value
		return
	}
	f, ok := b.filters[name]
	if !ok {
		f = NewAxisFilter()
		b.filters[name] = f
	}
	b.smoothed[name] = f.Update(value, dt)
}

func (b *axisBank) axis(name string, raw bool) float64 {
	if raw {
		return b.raw[name]
	}
	return b.smoothed[name]
}
