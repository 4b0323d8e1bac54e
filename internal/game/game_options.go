package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
)

// Defaults for the table configuration. This is the entire external
// configuration surface of the engine.
const (
	DefaultDecks  = 1
	DefaultChips  = 500
	DefaultMinBet = 5
	DefaultMaxBet = 100
)

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	decks   int
	chips   int
	minBet  int
	maxBet  int
	shoe    *deck.Shoe // overrides decks when provided
	logger  *log.Logger
	handler EventHandler
}

// WithDecks sets the number of decks in the shoe. Default is 1.
func WithDecks(n int) Option {
	return func(c *gameConfig) {
		c.decks = n
	}
}

// WithChips sets the player's starting chip balance. Default is 500.
func WithChips(n int) Option {
	return func(c *gameConfig) {
		c.chips = n
	}
}

// WithLimits sets the table minimum and maximum bet. Defaults are 5
// and 100.
func WithLimits(minBet, maxBet int) Option {
	return func(c *gameConfig) {
		c.minBet = minBet
		c.maxBet = maxBet
	}
}

// WithShoe sets a specific shoe, overriding the deck count. Used by
// tests to script exact card sequences.
func WithShoe(s *deck.Shoe) Option {
	return func(c *gameConfig) {
		c.shoe = s
	}
}

// WithLogger sets the logger for game progress
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithEventHandler sets a handler that receives events synchronously
// as the game advances
func WithEventHandler(handler EventHandler) Option {
	return func(c *gameConfig) {
		c.handler = handler
	}
}

// New creates a game with the given RNG and options. The RNG is
// required to make shuffling explicit and testing deterministic.
func New(rng *rand.Rand, opts ...Option) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}

	cfg := &gameConfig{
		decks:  DefaultDecks,
		chips:  DefaultChips,
		minBet: DefaultMinBet,
		maxBet: DefaultMaxBet,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.decks < 1 {
		panic(fmt.Sprintf("at least one deck required, got %d", cfg.decks))
	}
	if cfg.chips <= 0 {
		panic(fmt.Sprintf("starting chips must be positive, got %d", cfg.chips))
	}
	if cfg.minBet <= 0 {
		panic(fmt.Sprintf("minimum bet must be positive, got %d", cfg.minBet))
	}
	if cfg.maxBet < cfg.minBet {
		panic(fmt.Sprintf("maximum bet %d below minimum %d", cfg.maxBet, cfg.minBet))
	}

	shoe := cfg.shoe
	if shoe == nil {
		shoe = deck.NewShoe(rng, deck.WithDecks(cfg.decks))
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		shoe:    shoe,
		player:  NewPlayer(cfg.chips),
		minBet:  cfg.minBet,
		maxBet:  cfg.maxBet,
		nextBet: cfg.minBet,
		state:   StatePregame,
		logger:  logger.WithPrefix("game"),
		handler: cfg.handler,
	}
}
