package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
	// TPS is the fixed simulation rate of the game loop.
	TPS = 60
)
