// Command simulate runs the character controller headless, driven by a tengo
// input script, and logs the player state.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/ecs/entity"
	"github.com/milk9111/charactercontroller/ecs/system"
	"github.com/milk9111/charactercontroller/input"
	"github.com/milk9111/charactercontroller/levels"
	"github.com/milk9111/charactercontroller/logger"
	"github.com/milk9111/charactercontroller/prefabs"
)

func main() {
	configPath := flag.String("config", "", "player spec yaml")
	levelName := flag.String("level", "", "level name or path")
	scriptName := flag.String("script", "circle", "tengo input script")
	mode := flag.String("mode", "", "override the camera mode (third_person or isometric)")
	frames := flag.Int("frames", 600, "frames to simulate")
	tps := flag.Int("tps", common.TPS, "simulation rate")
	every := flag.Int("every", 30, "log the player state every n frames")
	flag.Parse()

	if err := run(*configPath, *levelName, *scriptName, *mode, *frames, *tps, *every); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func run(configPath, levelName, scriptName, mode string, frames, tps, every int) error {
	spec, err := prefabs.LoadPlayerSpec(configPath)
	if err != nil {
		return err
	}
	if mode != "" {
		spec.Camera.Mode = mode
	}
	cfg, err := spec.ToComponents()
	if err != nil {
		return err
	}
	logger.Init(cfg.Logging)
	log := logger.L().With("system", "simulate")

	lvl, err := levels.Load(levelName)
	if err != nil {
		return err
	}
	script, err := prefabs.LoadScript(scriptName)
	if err != nil {
		return err
	}
	src, err := input.NewScriptSource(scriptName, script, cfg.Bindings)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	if _, err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return err
	}
	player, err := entity.BuildPlayer(w, cfg, lvl.Spawn.Vec())
	if err != nil {
		return err
	}
	scheduler, _ := system.NewCharacterPipeline(src, cfg.Bindings, nil)
	w.SetScheduler(scheduler)

	if tps <= 0 {
		tps = common.TPS
	}
	if every <= 0 {
		every = 1
	}
	dt := 1.0 / float64(tps)
	log.Info("simulation start", "level", lvl.Name, "script", scriptName, "mode", cfg.Rig.Mode, "frames", frames)

	jumps, landings := 0, 0
	for i := 0; i < frames; i++ {
		if err := src.Update(dt); err != nil {
			log.Warn("script", "frame", i, "err", err)
		}
		w.Update(dt)

		for _, evt := range w.Events().Drain() {
			switch evt.Type {
			case ecs.EventJumped:
				jumps++
			case ecs.EventLanded:
				landings++
			case ecs.EventCameraModeApplied:
				log.Info("camera mode applied", "frame", i, "mode", evt.Data)
			}
		}

		if i%every != 0 && i != frames-1 {
			continue
		}
		root, _ := ecs.Get(w, player, component.TransformComponent)
		motion, _ := ecs.Get(w, player, component.MotionComponent)
		rig, _ := ecs.Get(w, player, component.CameraRigComponent)
		log.Info("frame",
			"frame", i,
			"pos", fmt.Sprintf("%.2f,%.2f,%.2f", root.Position.X(), root.Position.Y(), root.Position.Z()),
			"yaw", fmt.Sprintf("%.1f", common.Yaw(root.Rotation)),
			"pitch", fmt.Sprintf("%.1f", rig.Pitch),
			"vel", fmt.Sprintf("%.2f,%.2f,%.2f", motion.Velocity.X(), motion.Velocity.Y(), motion.Velocity.Z()),
			"grounded", motion.Grounded,
		)
	}
	log.Info("simulation done", "jumps", jumps, "landings", landings)
	return nil
}
