package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/EaterOA/AICombat/internal/arena"
	"github.com/EaterOA/AICombat/internal/game"
)

func main() {
	var scenarioPath string
	var seed int64
	var scale int
	var verbose bool

	flag.StringVar(&scenarioPath, "scenario", "", "scenario YAML file (default: the classic arena)")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "RNG seed")
	flag.IntVar(&scale, "scale", 2, "window scale factor")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sc := arena.ClassicScenario()
	if scenarioPath != "" {
		var err error
		if sc, err = arena.LoadScenario(scenarioPath); err != nil {
			log.Fatal(err)
		}
	}

	g, err := game.New(sc, seed, logger)
	if err != nil {
		log.Fatal(err)
	}
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("AICombat")
	ebiten.SetWindowSize(w*max(scale, 1), h*max(scale, 1))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
