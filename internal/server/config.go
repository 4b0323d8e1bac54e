package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableSettings  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
}

// TableSettings defines the rules every session plays under
type TableSettings struct {
	Decks  int `hcl:"decks,optional"`
	Chips  int `hcl:"chips,optional"`
	MinBet int `hcl:"min_bet,optional"`
	MaxBet int `hcl:"max_bet,optional"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:     "localhost",
			Port:        8080,
			LogLevel:    "info",
			IdleTimeout: "5m",
		},
		Table: TableSettings{
			Decks:  1,
			Chips:  500,
			MinBet: 5,
			MaxBet: 100,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Server.IdleTimeout == "" {
		config.Server.IdleTimeout = defaults.Server.IdleTimeout
	}
	if config.Table.Decks == 0 {
		config.Table.Decks = defaults.Table.Decks
	}
	if config.Table.Chips == 0 {
		config.Table.Chips = defaults.Table.Chips
	}
	if config.Table.MinBet == 0 {
		config.Table.MinBet = defaults.Table.MinBet
	}
	if config.Table.MaxBet == 0 {
		config.Table.MaxBet = defaults.Table.MaxBet
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := time.ParseDuration(c.Server.IdleTimeout); err != nil {
		return fmt.Errorf("invalid idle_timeout: %w", err)
	}
	if c.Table.Decks < 1 {
		return fmt.Errorf("decks must be positive, got %d", c.Table.Decks)
	}
	if c.Table.Chips <= 0 {
		return fmt.Errorf("chips must be positive, got %d", c.Table.Chips)
	}
	if c.Table.MinBet <= 0 {
		return fmt.Errorf("min_bet must be positive, got %d", c.Table.MinBet)
	}
	if c.Table.MaxBet < c.Table.MinBet {
		return fmt.Errorf("max_bet %d below min_bet %d", c.Table.MaxBet, c.Table.MinBet)
	}
	return nil
}

// GetAddress returns the full listen address
func (c *Config) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GetIdleTimeout returns the parsed idle timeout. Validate must have
// been called first.
func (c *Config) GetIdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil {
		panic(err)
	}
	return d
}
