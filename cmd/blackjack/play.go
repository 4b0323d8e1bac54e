package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs an interactive table in the terminal
type PlayCmd struct {
	Decks  int    `kong:"default='1',help='Number of decks in the shoe'"`
	Chips  int    `kong:"default='500',help='Starting chip count'"`
	MinBet int    `kong:"default='5',help='Table minimum bet'"`
	MaxBet int    `kong:"default='100',help='Table maximum bet'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug  bool   `kong:"help='Write debug logs to blackjack.log'"`
}

func (c *PlayCmd) Run() error {
	// The TUI owns the terminal, so logs go to a file.
	logger := shared.SetupFileLogger("blackjack.log", c.Debug)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("Starting table", "seed", seed, "decks", c.Decks, "chips", c.Chips)

	model := tui.New(randutil.New(seed), logger,
		game.WithDecks(c.Decks),
		game.WithChips(c.Chips),
		game.WithLimits(c.MinBet, c.MaxBet),
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
