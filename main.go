package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/logger"
)

func main() {
	configPath := flag.String("config", "", "player spec yaml (defaults to the built-in player.yaml)")
	levelName := flag.String("level", "", "level name in levels/ or a path to a level yaml")
	scriptName := flag.String("script", "", "drive the player from a tengo input script instead of the keyboard")
	raw := flag.Bool("raw", false, "read input axes without smoothing")
	debug := flag.Bool("debug", false, "show state overlay and physics minimap")
	watch := flag.Bool("watch", false, "reload the player spec and script when files change")
	flag.Parse()

	game, err := NewGame(Options{
		ConfigPath: *configPath,
		LevelName:  *levelName,
		ScriptName: *scriptName,
		RawInput:   *raw,
		Debug:      *debug,
		Watch:      *watch,
	})
	if err != nil {
		logger.L().Error("start game", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("character controller")
	ebiten.SetTPS(common.TPS)

	if err := ebiten.RunGame(game); err != nil {
		logger.L().Error("run game", "err", err)
		os.Exit(1)
	}
}
