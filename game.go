package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/ecs/entity"
	"github.com/milk9111/charactercontroller/ecs/system"
	"github.com/milk9111/charactercontroller/input"
	"github.com/milk9111/charactercontroller/levels"
	"github.com/milk9111/charactercontroller/logger"
	"github.com/milk9111/charactercontroller/prefabs"
	"golang.org/x/image/colornames"
)

const noticeFrames = 120

type Options struct {
	ConfigPath string
	LevelName  string
	ScriptName string
	RawInput   bool
	Debug      bool
	Watch      bool
}

// frameSource is an input source polled once per frame before the world
// updates.
type frameSource interface {
	system.InputSource
	Update(dt float64) error
}

type notice struct {
	text string
	ttl  int
}

type Game struct {
	opts Options
	log  *slog.Logger

	world    *ecs.World
	player   ecs.Entity
	pipeline *system.Pipeline
	render   *system.RenderSystem

	keyboard *input.EbitenSource
	source   frameSource
	bindings system.InputBindings
	watcher  *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	notices []notice
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadPlayerSpec(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := playerConfig(spec, opts)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Logging)

	lvl, err := levels.Load(opts.LevelName)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:  opts,
		log:   logger.L().With("system", "game"),
		world: ecs.NewWorld(),
	}
	if _, err := entity.LoadLevelToWorld(g.world, lvl); err != nil {
		return nil, err
	}
	g.player, err = entity.BuildPlayer(g.world, cfg, lvl.Spawn.Vec())
	if err != nil {
		return nil, err
	}

	g.bindings = cfg.Bindings
	g.keyboard = input.NewEbitenSource(cfg.Bindings)
	if cfg.MouseSensitivity > 0 {
		g.keyboard.MouseSensitivity = cfg.MouseSensitivity
	}
	g.source = g.keyboard
	if opts.ScriptName != "" {
		src, err := loadScriptSource(opts.ScriptName, cfg.Bindings)
		if err != nil {
			return nil, err
		}
		g.source = src
	}

	scheduler, pipeline := system.NewCharacterPipeline(g.source, cfg.Bindings, nil)
	g.world.SetScheduler(scheduler)
	g.pipeline = pipeline
	g.render = system.NewRenderSystem(nil)
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		dirs := []string{prefabs.DiskDir, filepath.Join(prefabs.DiskDir, "scripts")}
		if opts.ConfigPath != "" {
			dirs = append(dirs, filepath.Dir(opts.ConfigPath))
		}
		if dir := filepath.Dir(opts.ScriptName); opts.ScriptName != "" && dir != "." {
			dirs = append(dirs, dir)
		}
		g.watcher, err = prefabs.NewWatcher(watchDirs(dirs)...)
		if err != nil {
			g.log.Warn("file watching disabled", "err", err)
		}
	}

	g.log.Info("game ready", "level", lvl.Name, "mode", cfg.Rig.Mode, "scripted", opts.ScriptName != "")
	return g, nil
}

func playerConfig(spec *prefabs.PlayerSpec, opts Options) (prefabs.PlayerConfig, error) {
	cfg, err := spec.ToComponents()
	if err != nil {
		return cfg, err
	}
	if opts.RawInput {
		cfg.Player.RawInput = true
	}
	cfg.Rig.Viewport = mgl64.Vec2{common.BaseWidth, common.BaseHeight}
	return cfg, nil
}

func loadScriptSource(name string, bindings system.InputBindings) (*input.ScriptSource, error) {
	data, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	return input.NewScriptSource(name, data, bindings)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	g.reloadChanged()

	rig, _ := ecs.Get(g.world, g.player, component.CameraRigComponent)
	g.keyboard.SetCaptured(!g.paused && g.source == frameSource(g.keyboard) && rig.Current == component.CameraThirdPerson)

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		next := component.CameraIsometric
		if rig.Mode == component.CameraIsometric {
			next = component.CameraThirdPerson
		}
		g.setCameraMode(next)
	}

	dt := 1.0 / float64(ebiten.TPS())
	if err := g.source.Update(dt); err != nil {
		g.log.Warn("input source", "err", err)
	}
	g.world.Update(dt)
	g.collectNotices()
	return nil
}

func (g *Game) setCameraMode(mode component.CameraMode) {
	if err := entity.SetCameraMode(g.world, g.player, mode); err != nil {
		g.log.Error("set camera mode", "err", err)
	}
}

func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Err(); err != nil {
		g.log.Warn("file watcher", "err", err)
	}
	for _, name := range g.watcher.Drain() {
		if prefabs.IsScriptFile(name) {
			g.reloadScript(name)
			continue
		}
		g.reloadSpec(name)
	}
}

func (g *Game) reloadSpec(name string) {
	if g.opts.ConfigPath == "" && filepath.Base(name) != prefabs.PlayerSpecFile {
		return
	}
	spec, err := prefabs.LoadPlayerSpec(g.opts.ConfigPath)
	if err != nil {
		g.log.Warn("reload player spec", "file", name, "err", err)
		g.notify("spec rejected: %v", err)
		return
	}
	cfg, err := playerConfig(spec, g.opts)
	if err != nil {
		g.log.Warn("reload player spec", "file", name, "err", err)
		return
	}
	if err := entity.ApplyPlayerSpec(g.world, g.player, cfg); err != nil {
		g.log.Error("apply player spec", "err", err)
		return
	}
	g.bindings = cfg.Bindings
	g.pipeline.Input.SetBindings(cfg.Bindings)
	g.keyboard.SetBindings(cfg.Bindings)
	if cfg.MouseSensitivity > 0 {
		g.keyboard.MouseSensitivity = cfg.MouseSensitivity
	}
	g.log.Info("player spec reloaded", "file", name)
	g.notify("spec reloaded")
}

func (g *Game) reloadScript(name string) {
	if g.opts.ScriptName == "" || filepath.Base(name) != filepath.Base(scriptFileName(g.opts.ScriptName)) {
		return
	}
	src, err := loadScriptSource(g.opts.ScriptName, g.bindings)
	if err != nil {
		g.log.Warn("reload script", "file", name, "err", err)
		g.notify("script rejected: %v", err)
		return
	}
	g.source = src
	g.pipeline.Input.SetSource(src)
	g.log.Info("script reloaded", "file", name)
	g.notify("script reloaded")
}

func scriptFileName(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".tengo"
	}
	return name
}

func (g *Game) collectNotices() {
	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventCameraModeApplied:
			g.notify("camera: %v", evt.Data)
		case ecs.EventLanded:
			if g.opts.Debug {
				g.notify("landed")
			}
		case ecs.EventJumped:
			if g.opts.Debug {
				g.notify("jump")
			}
		}
	}
	kept := g.notices[:0]
	for _, n := range g.notices {
		n.ttl--
		if n.ttl > 0 {
			kept = append(kept, n)
		}
	}
	g.notices = kept
}

func (g *Game) notify(format string, args ...any) {
	g.notices = append(g.notices, notice{text: fmt.Sprintf(format, args...), ttl: noticeFrames})
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	g.render.Draw(g.world, screen)

	if g.opts.Debug {
		system.DrawPlayerStateDebug(g.world, screen)
		size := 200
		area := image.Rect(common.BaseWidth-size-10, 10, common.BaseWidth-10, 10+size)
		system.DrawPhysicsDebug(g.world, screen, area)
	} else {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  [Tab] camera  [Esc] menu", ebiten.ActualFPS()), 10, 10)
	}

	for i, n := range g.notices {
		ebitenutil.DebugPrintAt(screen, n.text, 10, common.BaseHeight-20-16*i)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// watchDirs drops duplicates and directories missing on disk.
func watchDirs(dirs []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		clean := filepath.Clean(d)
		if seen[clean] {
			continue
		}
		if info, err := os.Stat(clean); err != nil || !info.IsDir() {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
	}
	return out
}
