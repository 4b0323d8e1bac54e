package main

import (
	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/server"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Config  string `kong:"default='blackjack.hcl',help='HCL config file (defaults apply if missing)'"`
	Address string `kong:"help='Override the listen address'"`
	Port    int    `kong:"help='Override the listen port'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Address != "" {
		cfg.Server.Address = c.Address
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel == "debug")
	logger.Info("Starting blackjack server",
		"address", cfg.GetAddress(),
		"decks", cfg.Table.Decks,
		"chips", cfg.Table.Chips,
		"min_bet", cfg.Table.MinBet,
		"max_bet", cfg.Table.MaxBet,
		"idle_timeout", cfg.Server.IdleTimeout,
	)

	s := server.NewServer(cfg, logger)
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		return s.Stop()
	case err := <-serverErr:
		return err
	}
}
