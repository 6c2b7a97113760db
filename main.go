package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/memoryparasite/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (collider overlay, level live reload)")
	mute := flag.Bool("mute", false, "disable audio output")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "signal_garden", "level name in levels/ (basename, .yaml optional)")
	levelDir := flag.String("leveldir", "", "directory of level files to live-reload in debug mode")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("memory parasite")

	game := NewGame(*levelName, *debug, *mute, *levelDir)

	err := ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
