package system

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	minimapZoom         = 4.0
)

// DrawPhysicsDebug draws the Chipmunk space from above into area, centred on
// the player. World +Z points up the screen.
func DrawPhysicsDebug(w *ecs.World, screen *ebiten.Image, area image.Rectangle) {
	if w == nil || screen == nil || w.PhysicsWorld() == nil {
		return
	}

	center := cp.Vector{}
	player, hasPlayer := w.First(component.PlayerTagComponent.Kind())
	if hasPlayer {
		if t, ok := ecs.Get(w, player, component.TransformComponent); ok {
			center = cp.Vector{X: t.Position.X(), Y: t.Position.Z()}
		}
	}

	sub, ok := screen.SubImage(area).(*ebiten.Image)
	if !ok {
		return
	}
	vector.FillRect(sub, float32(area.Min.X), float32(area.Min.Y), float32(area.Dx()), float32(area.Dy()), color.NRGBA{A: 160}, false)

	drawer := &physicsDebugDrawer{
		screen: sub,
		camX:   center.X,
		camY:   center.Y,
		zoom:   minimapZoom,
		ox:     float64(area.Min.X) + float64(area.Dx())/2,
		oy:     float64(area.Min.Y) + float64(area.Dy())/2,
	}
	cp.DrawSpace(w.PhysicsWorld().Space(), drawer)

	if !hasPlayer {
		return
	}
	if mesh, ok := ecs.Get(w, player, component.MeshComponent); ok {
		fwd := mesh.Rotation.Rotate(common.Forward)
		tip := cp.Vector{X: center.X + fwd.X()*2, Y: center.Y + fwd.Z()*2}
		drawer.drawLine(center, tip, cp.FColor{R: 1, G: 0.6, B: 0.1, A: 1})
	}
}

func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	rig, _ := ecs.Get(w, player, component.CameraRigComponent)
	motion, _ := ecs.Get(w, player, component.MotionComponent)
	root, _ := ecs.Get(w, player, component.TransformComponent)
	mesh, _ := ecs.Get(w, player, component.MeshComponent)

	grounded := false
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent); ok && body.Body != nil {
		grounded = body.Body.IsGrounded()
	}
	text := fmt.Sprintf(
		"Camera: %s (applied %d)\nPitch: %.1f\nYaw: %.1f  Mesh yaw: %.1f\nGrounded: %v\nPosition: %.2f %.2f %.2f\nVelocity: %.2f %.2f %.2f\nFrame: %d",
		rig.Current, rig.Applied, rig.Pitch,
		common.Yaw(root.Rotation), common.Yaw(mesh.Rotation),
		grounded,
		root.Position.X(), root.Position.Y(), root.Position.Z(),
		motion.Velocity.X(), motion.Velocity.Y(), motion.Velocity.Z(),
		w.Frame(),
	)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
	ox     float64
	oy     float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2 / d.zoom
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor tints shapes by collision layer.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	switch component.LayerMask(shape.Filter.Categories) {
	case component.WallLayer:
		return cp.FColor{R: 0.8, G: 0.8, B: 0.9, A: 0.9}
	case component.GroundLayer:
		return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
	default:
		return cp.FColor{R: 1, G: 0.6, B: 0.1, A: 1}
	}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(color), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	if len(verts) == 0 {
		return
	}
	for i := 0; i < len(verts); i++ {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		d.drawLine(a, b, color)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return d.ox + (v.X-d.camX)*d.zoom, d.oy - (v.Y-d.camY)*d.zoom
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
