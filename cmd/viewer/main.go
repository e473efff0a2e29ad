// Command viewer draws the running encounter with ebiten for debugging.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bossrush/game"
	"github.com/milk9111/bossrush/prefabs"
)

func main() {
	config := flag.String("config", "", "encounter yaml (default: packaged encounter.yaml)")
	seed := flag.Int64("seed", 0, "override the encounter seed")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	spec, err := prefabs.LoadEncounterSpec(*config)
	if err != nil {
		log.Fatal(err)
	}
	g, err := game.New(spec, game.Options{Seed: *seed})
	if err != nil {
		log.Fatal(err)
	}
	g.Begin()

	arena := g.Arena()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(arena.X), int(arena.Y))
	ebiten.SetWindowTitle("bossrush")

	if err := ebiten.RunGame(newViewer(g)); err != nil {
		log.Fatal(err)
	}
}
