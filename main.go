package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"dinorun/assets"
	"dinorun/game"
	"dinorun/sim"
)

func main() {
	simConfig, err := sim.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config := game.NewConfig(simConfig)

	library, err := assets.NewLibrary(
		assets.WithOverrideDir(config.SpriteDir),
		assets.WithDebugDir(config.SpriteDebugDir),
	)
	if err != nil {
		log.Fatalf("Failed to load sprites: %v", err)
	}

	g, err := game.NewGame(config, library, log.Default())
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	ebiten.SetWindowSize(config.WindowSize())
	ebiten.SetWindowTitle(config.Title)
	ebiten.SetTPS(config.TPS)

	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
}
