package system

import (
	"log/slog"

	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/logger"
)

// ApplyCameraMode writes the placement of rig.Mode when it differs from the
// mode last applied, or unconditionally when force is set. It reports
// whether placement was written.
func ApplyCameraMode(rig *component.CameraRig, root *component.Transform, force bool) (bool, error) {
	if !force && rig.Applied > 0 && rig.Mode == rig.Current {
		return false, nil
	}
	mode, err := modeFor(rig.Mode)
	if err != nil {
		return false, err
	}
	rig.Current = rig.Mode
	mode.place(rig, root)
	rig.Applied++
	return true, nil
}

// UpdatePitch applies a vertical mouse delta under the current mode.
func UpdatePitch(rig *component.CameraRig, dy float64) error {
	mode, err := modeFor(rig.Current)
	if err != nil {
		return err
	}
	mode.pitch(rig, dy)
	return nil
}

// UpdateYaw applies a horizontal mouse delta under the current mode.
func UpdateYaw(rig *component.CameraRig, root *component.Transform, dx float64) error {
	mode, err := modeFor(rig.Current)
	if err != nil {
		return err
	}
	mode.yaw(rig, root, dx)
	return nil
}

type CameraSystem struct {
	log *slog.Logger
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{log: logger.L().With("system", "camera")}
}

// Update re-applies placement on mode changes, then pitch, then yaw.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.CameraRigComponent, component.TransformComponent, func(e ecs.Entity, rig *component.CameraRig, root *component.Transform) {
		input, _ := ecs.Get(w, e, component.InputComponent)

		previous := rig.Current
		applied, err := ApplyCameraMode(rig, root, false)
		if err != nil {
			panic("camera system: apply mode: " + err.Error())
		}
		if applied {
			cs.log.Info("camera mode applied", "entity", e, "from", previous, "to", rig.Current)
			w.Events().Push(ecs.Event{Type: ecs.EventCameraModeApplied, Entity: e, Data: rig.Current})
		}

		if err := UpdatePitch(rig, input.MouseDelta.Y()); err != nil {
			panic("camera system: update pitch: " + err.Error())
		}
		if err := UpdateYaw(rig, root, input.MouseDelta.X()); err != nil {
			panic("camera system: update yaw: " + err.Error())
		}
	})
}
