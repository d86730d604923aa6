package system

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

func TestApplyCameraModeIdempotentUnlessForced(t *testing.T) {
	rig := testRig(component.CameraThirdPerson)
	root := component.Transform{Rotation: mgl64.QuatIdent()}

	steps := []struct {
		name        string
		mode        component.CameraMode
		force       bool
		wantApplied bool
		wantCount   int
	}{
		{"first_forced", component.CameraThirdPerson, true, true, 1},
		{"same_mode_not_forced", component.CameraThirdPerson, false, false, 1},
		{"same_mode_forced", component.CameraThirdPerson, true, true, 2},
		{"switch_to_isometric", component.CameraIsometric, false, true, 3},
		{"isometric_again", component.CameraIsometric, false, false, 3},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			rig.Mode = s.mode
			applied, err := ApplyCameraMode(&rig, &root, s.force)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if applied != s.wantApplied {
				t.Fatalf("expected applied=%v, got %v", s.wantApplied, applied)
			}
			if rig.Applied != s.wantCount {
				t.Fatalf("expected %d applications, got %d", s.wantCount, rig.Applied)
			}
			if rig.Current != s.mode {
				t.Fatalf("expected current %v, got %v", s.mode, rig.Current)
			}
		})
	}
}

func TestApplyCameraModePlacement(t *testing.T) {
	t.Run("third_person", func(t *testing.T) {
		rig := testRig(component.CameraThirdPerson)
		root := component.Transform{Rotation: common.Euler(0, 30, 0)}
		if _, err := ApplyCameraMode(&rig, &root, true); err != nil {
			t.Fatalf("apply: %v", err)
		}
		p := rig.Placement
		if p.FOV != 60 || !approxVec(p.LocalPosition, mgl64.Vec3{0, 0, -8}, epsilon) || !approxVec(p.PivotPosition, mgl64.Vec3{0, 1.2, 0}, epsilon) {
			t.Fatalf("unexpected placement %+v", p)
		}
		want := common.Euler(60, 0, 0)
		if !approxQuat(p.PivotRotation, want, epsilon) {
			t.Fatalf("expected pivot rotation %v, got %v", want, p.PivotRotation)
		}
		if !approxEqual(common.Yaw(root.Rotation), 30, epsilon) {
			t.Fatalf("third person must not touch character yaw, got %v", common.Yaw(root.Rotation))
		}
	})

	t.Run("isometric", func(t *testing.T) {
		rig := testRig(component.CameraIsometric)
		root := component.Transform{Rotation: common.Euler(0, 30, 0)}
		if _, err := ApplyCameraMode(&rig, &root, true); err != nil {
			t.Fatalf("apply: %v", err)
		}
		p := rig.Placement
		if p.FOV != 30 || !approxVec(p.LocalPosition, mgl64.Vec3{0, 0, -12}, epsilon) {
			t.Fatalf("unexpected placement %+v", p)
		}
		if !approxEqual(common.Yaw(root.Rotation), -45, epsilon) {
			t.Fatalf("expected character yaw -45, got %v", common.Yaw(root.Rotation))
		}
		// camera sits above and behind the character, looking down
		view := rig.View(root)
		if view.Position.Y() <= root.Position.Y() {
			t.Fatalf("expected camera above character, got %v", view.Position)
		}
		if fwd := view.Rotation.Rotate(common.Forward); fwd.Y() >= 0 {
			t.Fatalf("expected camera looking down, got %v", fwd)
		}
	})
}

func TestApplyCameraModeUnknown(t *testing.T) {
	rig := testRig(component.CameraMode(42))
	root := component.Transform{Rotation: mgl64.QuatIdent()}
	_, err := ApplyCameraMode(&rig, &root, true)
	if !errors.Is(err, component.ErrUnknownCameraMode) {
		t.Fatalf("expected ErrUnknownCameraMode, got %v", err)
	}
	if rig.Applied != 0 {
		t.Fatalf("failed apply must not count")
	}
}

func TestCameraSystemPanicsOnUnknownMode(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.CameraRigComponent, testRig(component.CameraMode(7)))
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{Rotation: mgl64.QuatIdent()})

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for unknown camera mode")
		}
	}()
	NewCameraSystem().Update(w)
}

func TestUpdatePitchStaysClamped(t *testing.T) {
	sequences := []struct {
		name   string
		deltas []float64
		want   float64
	}{
		{"push_down_hard", []float64{100, 100, 100}, -15},
		{"push_up_hard", []float64{-100, -100}, 45},
		{"small_steps", []float64{-2, -2, 1}, 7.5},
		{"oscillate", []float64{-30, 60, -45, 7, -3}, 35},
		{"zero", []float64{0, 0}, 0},
	}
	for _, s := range sequences {
		t.Run(s.name, func(t *testing.T) {
			rig := testRig(component.CameraThirdPerson)
			root := component.Transform{Rotation: mgl64.QuatIdent()}
			if _, err := ApplyCameraMode(&rig, &root, true); err != nil {
				t.Fatalf("apply: %v", err)
			}
			for _, dy := range s.deltas {
				if err := UpdatePitch(&rig, dy); err != nil {
					t.Fatalf("pitch: %v", err)
				}
				if rig.Pitch < rig.ThirdPerson.MinPitch || rig.Pitch > rig.ThirdPerson.MaxPitch {
					t.Fatalf("pitch %v escaped [%v, %v]", rig.Pitch, rig.ThirdPerson.MinPitch, rig.ThirdPerson.MaxPitch)
				}
			}
			if !approxEqual(rig.Pitch, s.want, epsilon) {
				t.Fatalf("expected pitch %v, got %v", s.want, rig.Pitch)
			}
			if !approxQuat(rig.Placement.PivotRotation, common.Euler(s.want, 0, 0), epsilon) {
				t.Fatalf("pivot rotation does not match pitch")
			}
		})
	}
}

func TestIsometricIgnoresMouse(t *testing.T) {
	rig := testRig(component.CameraIsometric)
	root := component.Transform{Rotation: mgl64.QuatIdent()}
	if _, err := ApplyCameraMode(&rig, &root, true); err != nil {
		t.Fatalf("apply: %v", err)
	}
	before := rig.Placement
	beforeRot := root.Rotation
	if err := UpdatePitch(&rig, 10); err != nil {
		t.Fatalf("pitch: %v", err)
	}
	if err := UpdateYaw(&rig, &root, 10); err != nil {
		t.Fatalf("yaw: %v", err)
	}
	if rig.Placement != before || root.Rotation != beforeRot || rig.Pitch != 0 {
		t.Fatalf("isometric mode must ignore mouse deltas")
	}
}

func TestUpdateYawRotatesAboutWorldUp(t *testing.T) {
	rig := testRig(component.CameraThirdPerson)
	root := component.Transform{Rotation: mgl64.QuatIdent()}
	if _, err := ApplyCameraMode(&rig, &root, true); err != nil {
		t.Fatalf("apply: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := UpdateYaw(&rig, &root, 2); err != nil {
			t.Fatalf("yaw: %v", err)
		}
	}
	if got := common.Yaw(root.Rotation); !approxEqual(got, 30, 1e-6) {
		t.Fatalf("expected yaw 30, got %v", got)
	}
	if up := root.Rotation.Rotate(common.Up); !approxVec(up, common.Up, epsilon) {
		t.Fatalf("yaw must not tilt the character, up=%v", up)
	}
}

func TestCameraSystemAppliesLiveModeSwitch(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	rig := testRig(component.CameraThirdPerson)
	root := component.Transform{Rotation: mgl64.QuatIdent()}
	if _, err := ApplyCameraMode(&rig, &root, true); err != nil {
		t.Fatalf("apply: %v", err)
	}
	rig.Mode = component.CameraIsometric
	_ = ecs.Add(w, e, component.CameraRigComponent, rig)
	_ = ecs.Add(w, e, component.TransformComponent, root)
	_ = ecs.Add(w, e, component.InputComponent, component.Input{})

	cs := NewCameraSystem()
	cs.Update(w)

	got, _ := ecs.Get(w, e, component.CameraRigComponent)
	if got.Current != component.CameraIsometric || got.Applied != 2 {
		t.Fatalf("expected isometric applied twice total, got %v/%d", got.Current, got.Applied)
	}
	events := w.Events().Drain()
	if len(events) != 1 || events[0].Type != ecs.EventCameraModeApplied {
		t.Fatalf("expected one mode event, got %v", events)
	}

	cs.Update(w)
	got, _ = ecs.Get(w, e, component.CameraRigComponent)
	if got.Applied != 2 {
		t.Fatalf("unchanged mode must not re-apply, got %d", got.Applied)
	}
}
