package component

// LayerMask is a bitmask of collision categories used to filter queries.
type LayerMask uint

const (
	GroundLayer LayerMask = 1 << iota
	WallLayer
)

const AllLayers = ^LayerMask(0)

// GroundRegion links an entity to a ground region of the physics world so
// moving platforms can update its height.
type GroundRegion struct {
	Index int
}

var GroundRegionComponent = NewComponent[GroundRegion]()
