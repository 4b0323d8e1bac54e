package statistics

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// RoundResult captures the outcome of a single settled round from the
// player's perspective.
type RoundResult struct {
	Net     int  // chips won or lost across all hands in the round
	Wagered int  // total chips escrowed during the round
	Rebuy   bool // the bankroll was topped up before this round

	// Per-hand outcome counts; a split round contributes more than one.
	Outcomes []game.Outcome
}

// Statistics aggregates simulation results across rounds
type Statistics struct {
	Rounds     int
	Hands      int
	NetChips   int
	Wagered    int
	Rebuys     int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Busts      int
	Surrenders int
}

// Add folds one round's result into the statistics
func (s *Statistics) Add(r RoundResult) {
	s.Rounds++
	s.NetChips += r.Net
	s.Wagered += r.Wagered
	if r.Rebuy {
		s.Rebuys++
	}
	for _, o := range r.Outcomes {
		s.Hands++
		switch o {
		case game.OutcomeWin:
			s.Wins++
		case game.OutcomeLoss:
			s.Losses++
		case game.OutcomePush:
			s.Pushes++
		case game.OutcomeBlackjack:
			s.Blackjacks++
		case game.OutcomeBust:
			s.Busts++
		case game.OutcomeSurrender:
			s.Surrenders++
		}
	}
}

// Merge combines another shard's statistics into this one
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Hands += other.Hands
	s.NetChips += other.NetChips
	s.Wagered += other.Wagered
	s.Rebuys += other.Rebuys
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.Busts += other.Busts
	s.Surrenders += other.Surrenders
}

// MeanNet returns the average chips won or lost per round
func (s *Statistics) MeanNet() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.NetChips) / float64(s.Rounds)
}

// HouseEdge returns the house's take as a fraction of chips wagered.
// Positive means the house is winning.
func (s *Statistics) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return -float64(s.NetChips) / float64(s.Wagered)
}

// Validate performs internal consistency checks before reporting
func (s *Statistics) Validate() error {
	counted := s.Wins + s.Losses + s.Pushes + s.Blackjacks + s.Busts + s.Surrenders
	if counted != s.Hands {
		return fmt.Errorf("outcome counts sum to %d but %d hands recorded", counted, s.Hands)
	}
	if s.Hands < s.Rounds {
		return fmt.Errorf("%d hands across %d rounds", s.Hands, s.Rounds)
	}
	return nil
}

// Summary returns a human-readable report
func (s *Statistics) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rounds: %d (hands: %d, rebuys: %d)\n", s.Rounds, s.Hands, s.Rebuys)
	fmt.Fprintf(&b, "net: %+d chips over %d wagered (house edge %.2f%%)\n", s.NetChips, s.Wagered, s.HouseEdge()*100)
	fmt.Fprintf(&b, "wins: %d  blackjacks: %d  pushes: %d  losses: %d  busts: %d  surrenders: %d",
		s.Wins, s.Blackjacks, s.Pushes, s.Losses, s.Busts, s.Surrenders)
	return b.String()
}
