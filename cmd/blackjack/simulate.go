package main

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays automated rounds and reports the house edge
type SimulateCmd struct {
	Rounds  int    `kong:"default='100000',help='Number of rounds to play'"`
	Workers int    `kong:"help='Parallel workers (defaults to CPU count)'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Decks   int    `kong:"default='1',help='Number of decks in the shoe'"`
	Chips   int    `kong:"default='500',help='Bankroll per rebuy'"`
	MinBet  int    `kong:"default='5',help='Table minimum bet'"`
	MaxBet  int    `kong:"default='100',help='Table maximum bet'"`
	Bet     int    `kong:"default='10',help='Flat bet per round'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	// Per-round game logs would swamp the report; keep them only when
	// debugging.
	gameLogger := log.New(io.Discard)
	if c.Debug {
		gameLogger = logger
	}

	logger.Info("Starting simulation", "rounds", c.Rounds, "workers", workers, "seed", seed, "bet", c.Bet)
	start := time.Now()

	sim := simulator.New(simulator.Config{
		Rounds:  c.Rounds,
		Workers: workers,
		Seed:    seed,
		Decks:   c.Decks,
		Chips:   c.Chips,
		MinBet:  c.MinBet,
		MaxBet:  c.MaxBet,
		Bet:     c.Bet,
		Logger:  gameLogger,
	})

	stats, err := sim.Run(shared.SetupSignalHandlerWithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("Simulation finished", "elapsed", time.Since(start))
	fmt.Println(stats.Summary())
	return nil
}
