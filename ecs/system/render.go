package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	renderNearPlane    = 0.05
	characterSegments  = 12
	facingArrowLength  = 1.2
	cursorMarkerSize   = 0.3
	levelLineWidth     = 1
	characterLineWidth = 2
)

// RenderSystem draws the world as wireframe through the player's camera.
type RenderSystem struct {
	player ecs.Entity
	picker Picker
}

func NewRenderSystem(picker Picker) *RenderSystem {
	return &RenderSystem{picker: picker}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.player.Valid() || !w.IsAlive(r.player) {
		if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			r.player = player
		}
	}
	rig, ok := ecs.Get(w, r.player, component.CameraRigComponent)
	if !ok {
		return
	}
	root, _ := ecs.Get(w, r.player, component.TransformComponent)
	view := rig.View(root)
	b := screen.Bounds()
	view.Width, view.Height = float64(b.Dx()), float64(b.Dy())

	boxes := w.Query(component.LevelBoxComponent.Kind())
	// far to near so nearer outlines draw on top
	sort.SliceStable(boxes, func(i, j int) bool {
		bi, _ := ecs.Get(w, boxes[i], component.LevelBoxComponent)
		bj, _ := ecs.Get(w, boxes[j], component.LevelBoxComponent)
		return boxDistance(bi, view.Position) > boxDistance(bj, view.Position)
	})
	for _, e := range boxes {
		box, _ := ecs.Get(w, e, component.LevelBoxComponent)
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok && !box.Wall {
			depth := box.Top - box.Bottom
			box.Top = t.Position.Y()
			box.Bottom = box.Top - depth
		}
		r.drawBox(screen, view, box)
	}

	r.drawCharacter(w, screen, view)
	if rig.Current == component.CameraIsometric {
		r.drawCursorTarget(w, screen, view, rig)
	}
}

func (r *RenderSystem) drawBox(screen *ebiten.Image, view common.View, box component.LevelBox) {
	clr := box.Color
	if clr == nil {
		clr = colornames.White
	}
	corners := func(y float64) [4]mgl64.Vec3 {
		return [4]mgl64.Vec3{
			{box.Min.X(), y, box.Min.Y()},
			{box.Max.X(), y, box.Min.Y()},
			{box.Max.X(), y, box.Max.Y()},
			{box.Min.X(), y, box.Max.Y()},
		}
	}
	top := corners(box.Top)
	bottom := corners(box.Bottom)
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		drawSegment3D(screen, view, top[i], top[j], levelLineWidth, clr)
		drawSegment3D(screen, view, bottom[i], bottom[j], levelLineWidth, clr)
		drawSegment3D(screen, view, bottom[i], top[i], levelLineWidth, clr)
	}
}

func (r *RenderSystem) drawCharacter(w *ecs.World, screen *ebiten.Image, view common.View) {
	root, ok := ecs.Get(w, r.player, component.TransformComponent)
	if !ok {
		return
	}
	look, _ := ecs.Get(w, r.player, component.AppearanceComponent)
	mesh, _ := ecs.Get(w, r.player, component.MeshComponent)
	clr := look.Color
	if clr == nil {
		clr = colornames.Orange
	}
	radius := look.Radius
	if radius <= 0 {
		radius = 0.5
	}
	height := look.Height
	if height <= 0 {
		height = 1.8
	}

	base := mesh.WorldPosition(root)
	ring := func(y float64) []mgl64.Vec3 {
		pts := make([]mgl64.Vec3, characterSegments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / characterSegments
			pts[i] = base.Add(mgl64.Vec3{math.Cos(a) * radius, y, math.Sin(a) * radius})
		}
		return pts
	}
	lower := ring(0)
	upper := ring(height)
	for i := range lower {
		j := (i + 1) % len(lower)
		drawSegment3D(screen, view, lower[i], lower[j], characterLineWidth, clr)
		drawSegment3D(screen, view, upper[i], upper[j], characterLineWidth, clr)
		if i%3 == 0 {
			drawSegment3D(screen, view, lower[i], upper[i], characterLineWidth, clr)
		}
	}

	chest := base.Add(mgl64.Vec3{0, height * 0.6, 0})
	fwd := mesh.Rotation.Rotate(common.Forward)
	drawSegment3D(screen, view, chest, chest.Add(fwd.Mul(radius+facingArrowLength)), characterLineWidth, colornames.Yellow)
}

func (r *RenderSystem) drawCursorTarget(w *ecs.World, screen *ebiten.Image, view common.View, rig component.CameraRig) {
	picker := r.picker
	if picker == nil {
		if pw := w.PhysicsWorld(); pw != nil {
			picker = pw
		}
	}
	if picker == nil {
		return
	}
	input, _ := ecs.Get(w, r.player, component.InputComponent)
	origin, dir := view.ScreenPointToRay(input.Cursor.X(), input.Cursor.Y())
	hit, ok := picker.Raycast(origin, dir, rig.MaxRayDistance, component.GroundLayer)
	if !ok {
		return
	}
	s := cursorMarkerSize
	drawSegment3D(screen, view, hit.Add(mgl64.Vec3{-s, 0, 0}), hit.Add(mgl64.Vec3{s, 0, 0}), characterLineWidth, colornames.Red)
	drawSegment3D(screen, view, hit.Add(mgl64.Vec3{0, 0, -s}), hit.Add(mgl64.Vec3{0, 0, s}), characterLineWidth, colornames.Red)
}

// drawSegment3D clips a world segment against the near plane and strokes it.
func drawSegment3D(screen *ebiten.Image, view common.View, a, b mgl64.Vec3, width float32, clr color.Color) {
	inv := view.Rotation.Inverse()
	la := inv.Rotate(a.Sub(view.Position))
	lb := inv.Rotate(b.Sub(view.Position))
	if la.Z() < renderNearPlane && lb.Z() < renderNearPlane {
		return
	}
	if la.Z() < renderNearPlane {
		la = clipNear(lb, la)
	} else if lb.Z() < renderNearPlane {
		lb = clipNear(la, lb)
	}
	x0, y0, ok0 := view.WorldToScreen(view.Position.Add(view.Rotation.Rotate(la)))
	x1, y1, ok1 := view.WorldToScreen(view.Position.Add(view.Rotation.Rotate(lb)))
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, clr, true)
}

// clipNear moves out toward in until it reaches the near plane.
func clipNear(in, out mgl64.Vec3) mgl64.Vec3 {
	t := (in.Z() - renderNearPlane) / (in.Z() - out.Z())
	return in.Add(out.Sub(in).Mul(t))
}

func boxDistance(box component.LevelBox, from mgl64.Vec3) float64 {
	c := box.Min.Add(box.Max).Mul(0.5)
	return mgl64.Vec3{c.X(), (box.Top + box.Bottom) / 2, c.Y()}.Sub(from).Len()
}
