package component

import "github.com/go-gl/mathgl/mgl64"

// CharacterBody is the host's kinematic body contract. Move is the only
// writer of the character's world position and resolves collisions itself.
type CharacterBody interface {
	IsGrounded() bool
	Move(delta mgl64.Vec3)
	Position() mgl64.Vec3
}

// PhysicsBody links an entity to its host body.
type PhysicsBody struct {
	Body CharacterBody
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
