package simulator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Workers int
	Seed    int64
	Decks   int
	Chips   int
	MinBet  int
	MaxBet  int
	Bet     int
	Logger  *log.Logger
}

// Simulator plays rounds of fixed basic strategy against the engine to
// estimate the house edge. Each worker runs its own independent game
// with a seed derived from the configured one, so runs are reproducible
// regardless of worker count... as long as the round split is stable.
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Simulator{config: config}
}

// Run executes the simulation and returns aggregated statistics
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	shards := make([]*statistics.Statistics, s.config.Workers)
	rounds := s.config.Rounds / s.config.Workers
	remainder := s.config.Rounds % s.config.Workers

	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.config.Workers; i++ {
		n := rounds
		if i < remainder {
			n++
		}
		eg.Go(func() error {
			stats, err := s.playRounds(ctx, s.config.Seed+int64(i), n)
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			shards[i] = stats
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, shard := range shards {
		total.Merge(shard)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

// roundRecorder observes game events to measure one round: the lowest
// holdings seen gives the chips wagered (nothing is credited back until
// settlement), and resolutions give per-hand outcomes.
type roundRecorder struct {
	game     *game.Game
	minHold  int
	outcomes []game.Outcome
}

func (r *roundRecorder) reset() {
	r.minHold = r.game.Player().Holdings()
	r.outcomes = r.outcomes[:0]
}

func (r *roundRecorder) handle(e game.Event) {
	switch ev := e.(type) {
	case game.CardDealtEvent:
		if h := r.game.Player().Holdings(); h < r.minHold {
			r.minHold = h
		}
	case game.HandResolvedEvent:
		r.outcomes = append(r.outcomes, ev.Outcome)
	}
}

func (s *Simulator) playRounds(ctx context.Context, seed int64, rounds int) (*statistics.Statistics, error) {
	recorder := &roundRecorder{}
	opts := []game.Option{
		game.WithDecks(s.config.Decks),
		game.WithChips(s.config.Chips),
		game.WithLimits(s.config.MinBet, s.config.MaxBet),
		game.WithEventHandler(recorder.handle),
	}
	if s.config.Logger != nil {
		opts = append(opts, game.WithLogger(s.config.Logger))
	}
	g := game.New(randutil.New(seed), opts...)
	recorder.game = g

	stats := &statistics.Statistics{}
	for i := 0; i < rounds; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rebuy := false
		if g.Player().Holdings() < s.config.MinBet {
			g.AddChips(s.config.Chips)
			rebuy = true
		}

		before := g.Player().Holdings()
		recorder.reset()

		if err := g.SetBet(clampBet(s.config.Bet, s.config.MinBet, s.config.MaxBet, before)); err != nil {
			return nil, err
		}

		var err error
		if i == 0 {
			err = g.Start()
		} else {
			err = g.Deal()
		}
		if err != nil {
			return nil, err
		}

		for g.State() == game.StatePlayerTurn {
			acted := false
			for _, h := range g.Hands() {
				if h.IsPlayable() {
					if err := s.act(g, h); err != nil {
						return nil, err
					}
					acted = true
					break
				}
			}
			if !acted {
				break
			}
		}
		if g.State() != game.StatePostgame {
			return nil, fmt.Errorf("round %d ended in state %s", i+1, g.State())
		}

		stats.Add(statistics.RoundResult{
			Net:      g.Player().Holdings() - before,
			Wagered:  before - recorder.minHold,
			Rebuy:    rebuy,
			Outcomes: append([]game.Outcome(nil), recorder.outcomes...),
		})
	}
	return stats, nil
}

// act applies a compact basic strategy: split aces and eights, double
// eleven, stand on hard 17+ and soft 19+, stand on a stiff hand against
// a weak dealer upcard, otherwise hit.
func (s *Simulator) act(g *game.Game, h *game.Hand) error {
	up := g.DealerHand().Cards()[0]
	score := h.Score()
	soft := isSoft(h)
	canAfford := g.Player().Holdings() >= h.Bet()

	switch {
	case h.CanSplit() && canAfford && (h.Cards()[0].Rank == deck.Ace || h.Cards()[0].Rank == deck.Eight):
		return g.Split(h)
	case h.State() == game.HandPair && !soft && score == 11 && canAfford:
		return g.Double(h)
	case score >= 17 && !soft:
		return g.Stand(h)
	case soft && score >= 19:
		return g.Stand(h)
	case !soft && score >= 12 && up.Value() <= 6:
		return g.Stand(h)
	default:
		return g.Hit(h)
	}
}

// isSoft reports whether an ace is currently counted as eleven
func isSoft(h *game.Hand) bool {
	hard := 0
	for _, c := range h.Cards() {
		if c.IsAce() {
			hard++
		} else {
			hard += c.Value()
		}
	}
	return h.Score() != hard
}

func clampBet(bet, minBet, maxBet, holdings int) int {
	switch {
	case bet < minBet:
		bet = minBet
	case bet > maxBet:
		bet = maxBet
	}
	if bet > holdings {
		bet = holdings
	}
	if bet < minBet {
		bet = minBet
	}
	return bet
}
