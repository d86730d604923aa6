package component

// Player holds movement tunables.
type Player struct {
	MaxGroundSpeed float64
	JumpHeight     float64
	// DirectionCap bounds the local input vector length. Zero means 1.
	DirectionCap float64
	// RawInput skips host-side axis smoothing.
	RawInput bool
}

var PlayerComponent = NewComponent[Player]()
