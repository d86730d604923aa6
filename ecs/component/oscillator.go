package component

// Oscillator moves an entity vertically between Bottom and Top following a
// sine of elapsed time.
type Oscillator struct {
	Top    float64
	Bottom float64
}

var OscillatorComponent = NewComponent[Oscillator]()
