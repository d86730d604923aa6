package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charactercontroller/ecs/component"
)

const (
	// characterLayer keeps character shapes out of ground and wall queries.
	characterLayer = uint(1) << 16

	contactSkin       = 1e-3
	groundSnapEps     = 1e-6
	DefaultStepOffset = 0.3
)

type groundRegion struct {
	shape  *cp.Shape
	height float64
}

// PhysicsWorld owns the Chipmunk space. The space is the XZ plane seen from
// above: cp X is world X and cp Y is world Z. Ground regions carry a top
// height; walls block horizontal motion at any height.
type PhysicsWorld struct {
	space   *cp.Space
	grounds []groundRegion
	walls   []*cp.Shape

	// StepOffset is the highest ledge a character climbs onto without
	// treating it as overhead.
	StepOffset float64
}

// NewPhysicsWorld creates an empty physics world.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	return &PhysicsWorld{
		space:      space,
		StepOffset: DefaultStepOffset,
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddGround registers a walkable axis-aligned region spanning min..max in XZ
// with its surface at height. It returns the region index.
func (pw *PhysicsWorld) AddGround(min, max mgl64.Vec2, height float64) int {
	shape := cp.NewBox2(pw.space.StaticBody, boundsXZ(min, max), 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(component.GroundLayer), cp.ALL_CATEGORIES))
	idx := len(pw.grounds)
	shape.UserData = idx
	pw.space.AddShape(shape)
	pw.grounds = append(pw.grounds, groundRegion{shape: shape, height: height})
	return idx
}

// AddWall registers an axis-aligned blocker spanning min..max in XZ.
func (pw *PhysicsWorld) AddWall(min, max mgl64.Vec2) {
	shape := cp.NewBox2(pw.space.StaticBody, boundsXZ(min, max), 0)
	shape.SetFriction(0.8)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(component.WallLayer), cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
	pw.walls = append(pw.walls, shape)
}

// GroundCount returns the number of registered ground regions.
func (pw *PhysicsWorld) GroundCount() int {
	if pw == nil {
		return 0
	}
	return len(pw.grounds)
}

// GroundBounds returns the XZ extent and height of a ground region.
func (pw *PhysicsWorld) GroundBounds(index int) (min, max mgl64.Vec2, height float64, ok bool) {
	if pw == nil || index < 0 || index >= len(pw.grounds) {
		return min, max, 0, false
	}
	g := pw.grounds[index]
	bb := g.shape.BB()
	return mgl64.Vec2{bb.L, bb.B}, mgl64.Vec2{bb.R, bb.T}, g.height, true
}

// WallBounds returns the XZ extents of every wall.
func (pw *PhysicsWorld) WallBounds() [][2]mgl64.Vec2 {
	if pw == nil {
		return nil
	}
	out := make([][2]mgl64.Vec2, 0, len(pw.walls))
	for _, w := range pw.walls {
		bb := w.BB()
		out = append(out, [2]mgl64.Vec2{{bb.L, bb.B}, {bb.R, bb.T}})
	}
	return out
}

// SetGroundHeight moves a ground region's surface. Moving platforms use it.
func (pw *PhysicsWorld) SetGroundHeight(index int, height float64) {
	if pw == nil || index < 0 || index >= len(pw.grounds) {
		return
	}
	pw.grounds[index].height = height
}

// GroundHeightAt returns the highest ground surface under (x, z) that is no
// higher than ceiling.
func (pw *PhysicsWorld) GroundHeightAt(x, z, ceiling float64) (float64, bool) {
	if pw == nil || pw.space == nil {
		return 0, false
	}
	best := math.Inf(-1)
	found := false
	pt := cp.Vector{X: x, Y: z}
	for _, g := range pw.grounds {
		if g.height > ceiling || g.height <= best {
			continue
		}
		if g.shape.PointQuery(pt).Distance > 0 {
			continue
		}
		best = g.height
		found = true
	}
	return best, found
}

// Raycast intersects a ray with the ground surfaces selected by mask and
// returns the nearest hit within maxDistance. dir need not be normalized.
func (pw *PhysicsWorld) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask component.LayerMask) (mgl64.Vec3, bool) {
	if pw == nil || mask&component.GroundLayer == 0 {
		return mgl64.Vec3{}, false
	}
	if dir.Len() == 0 {
		return mgl64.Vec3{}, false
	}
	dir = dir.Normalize()
	if math.Abs(dir.Y()) < 1e-9 {
		return mgl64.Vec3{}, false
	}
	bestT := math.Inf(1)
	var best mgl64.Vec3
	for _, g := range pw.grounds {
		t := (g.height - origin.Y()) / dir.Y()
		if t < 0 || t > maxDistance || t >= bestT {
			continue
		}
		p := origin.Add(dir.Mul(t))
		if g.shape.PointQuery(cp.Vector{X: p.X(), Y: p.Z()}).Distance > 0 {
			continue
		}
		bestT = t
		best = p
	}
	return best, !math.IsInf(bestT, 1)
}

// Step advances the Chipmunk space so kinematic bodies reindex.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// NewCharacter adds a kinematic character of the given radius at position.
func (pw *PhysicsWorld) NewCharacter(position mgl64.Vec3, radius float64) *Character {
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: position.X(), Y: position.Z()})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, characterLayer, 0))
	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	return &Character{
		world:    pw,
		body:     body,
		radius:   radius,
		position: position,
	}
}

// Character is a kinematic capsule-like body: a circle in XZ sliding along
// walls, standing on ground regions.
type Character struct {
	world    *PhysicsWorld
	body     *cp.Body
	radius   float64
	position mgl64.Vec3
	grounded bool
}

var _ component.CharacterBody = (*Character)(nil)

func (c *Character) Position() mgl64.Vec3 {
	return c.position
}

func (c *Character) Radius() float64 {
	return c.radius
}

// IsGrounded reports whether the last Move ended on a ground surface.
func (c *Character) IsGrounded() bool {
	return c.grounded
}

// Teleport places the character without collision checks.
func (c *Character) Teleport(position mgl64.Vec3) {
	c.position = position
	c.grounded = false
	c.body.SetPosition(cp.Vector{X: position.X(), Y: position.Z()})
}

// Move displaces the character by delta, sliding once along the first wall
// hit and landing on the ground below.
func (c *Character) Move(delta mgl64.Vec3) {
	start := cp.Vector{X: c.position.X(), Y: c.position.Z()}
	end := c.sweep(start, cp.Vector{X: delta.X(), Y: delta.Z()})

	y := c.position.Y() + delta.Y()
	c.grounded = false
	ceiling := c.position.Y() + c.world.StepOffset
	if ground, ok := c.world.GroundHeightAt(end.X, end.Y, ceiling); ok && y <= ground+groundSnapEps {
		y = ground
		c.grounded = true
	}

	c.position = mgl64.Vec3{end.X, y, end.Y}
	c.body.SetPosition(end)
}

func (c *Character) sweep(start, delta cp.Vector) cp.Vector {
	if delta.LengthSq() == 0 {
		return start
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(component.WallLayer))
	end := start.Add(delta)
	hit := c.world.space.SegmentQueryFirst(start, end, c.radius, filter)
	if hit.Shape == nil {
		return end
	}
	contact := start.Lerp(end, hit.Alpha).Add(hit.Normal.Mult(contactSkin))
	remaining := delta.Mult(1 - hit.Alpha)
	slide := remaining.Sub(hit.Normal.Mult(remaining.Dot(hit.Normal)))
	if slide.LengthSq() == 0 {
		return contact
	}
	slideEnd := contact.Add(slide)
	second := c.world.space.SegmentQueryFirst(contact, slideEnd, c.radius, filter)
	if second.Shape == nil {
		return slideEnd
	}
	return contact.Lerp(slideEnd, second.Alpha).Add(second.Normal.Mult(contactSkin))
}

func boundsXZ(min, max mgl64.Vec2) cp.BB {
	return cp.BB{
		L: math.Min(min.X(), max.X()),
		B: math.Min(min.Y(), max.Y()),
		R: math.Max(min.X(), max.X()),
		T: math.Max(min.Y(), max.Y()),
	}
}
