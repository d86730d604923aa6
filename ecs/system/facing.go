package system

import (
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// FacingSystem orients the mesh: along the movement direction in third
// person, toward the cursor's ground point in isometric.
type FacingSystem struct {
	picker Picker
}

// NewFacingSystem uses picker for cursor rays. A nil picker falls back to the
// world's physics.
func NewFacingSystem(picker Picker) *FacingSystem {
	return &FacingSystem{picker: picker}
}

func (fs *FacingSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	picker := fs.picker
	if picker == nil {
		if pw := w.PhysicsWorld(); pw != nil {
			picker = pw
		}
	}

	ecs.ForEach2(w, component.MeshComponent, component.CameraRigComponent, func(e ecs.Entity, mesh *component.Mesh, rig *component.CameraRig) {
		root, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		motion, _ := ecs.Get(w, e, component.MotionComponent)
		input, _ := ecs.Get(w, e, component.InputComponent)

		mode, err := modeFor(rig.Current)
		if err != nil {
			panic("facing system: " + err.Error())
		}
		mode.face(facingContext{
			rig:    rig,
			root:   &root,
			mesh:   mesh,
			motion: &motion,
			input:  &input,
			picker: picker,
		})
	})
}
