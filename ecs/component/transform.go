package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's world transform. Scale is uniform; zero means 1.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    float64
}

// ScaleOrOne returns Scale, treating the zero value as unit scale.
func (t Transform) ScaleOrOne() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

var TransformComponent = NewComponent[Transform]()

// Mesh is the visual child of a character. Rotation is in world space;
// Offset is relative to the character root.
type Mesh struct {
	Offset   mgl64.Vec3
	Rotation mgl64.Quat
}

// WorldPosition places the mesh relative to its root.
func (m Mesh) WorldPosition(root Transform) mgl64.Vec3 {
	return root.Position.Add(root.Rotation.Rotate(m.Offset.Mul(root.ScaleOrOne())))
}

var MeshComponent = NewComponent[Mesh]()
