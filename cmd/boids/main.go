package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids/internal/cli"
	"github.com/lao-tseu-is-alive/go-boids/internal/game"
)

func main() {
	cfg, logger, closeLog, err := cli.Setup(flag.CommandLine, os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	g, err := game.NewGame(cfg, logger)
	if err != nil {
		logger.Errorf("failed to start: %v", err)
		_ = closeLog()
		os.Exit(1)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(cfg.TicksPerSecond)

	logger.Infof("starting %d boids in %.0fx%.0f", cfg.BoidCount, cfg.WorldWidth, cfg.WorldHeight)
	if err := ebiten.RunGame(g); err != nil {
		logger.Errorf("game loop failed: %v", err)
		_ = closeLog()
		os.Exit(1)
	}
	logger.Infof("bye: %s", g.World().Stats())
	_ = closeLog()
}
