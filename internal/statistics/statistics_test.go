package statistics

import (
	"testing"

	"github.com/lox/blackjack/internal/game"
)

func TestAddAndValidate(t *testing.T) {
	s := &Statistics{}
	s.Add(RoundResult{Net: 5, Wagered: 5, Outcomes: []game.Outcome{game.OutcomeWin}})
	s.Add(RoundResult{Net: -10, Wagered: 10, Outcomes: []game.Outcome{game.OutcomeBust}})
	s.Add(RoundResult{Net: 0, Wagered: 5, Outcomes: []game.Outcome{game.OutcomePush}})
	s.Add(RoundResult{Net: -10, Wagered: 10, Outcomes: []game.Outcome{game.OutcomeWin, game.OutcomeLoss, game.OutcomeBust}})

	if s.Rounds != 4 || s.Hands != 6 {
		t.Errorf("rounds = %d, hands = %d", s.Rounds, s.Hands)
	}
	if s.NetChips != -15 || s.Wagered != 30 {
		t.Errorf("net = %d, wagered = %d", s.NetChips, s.Wagered)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMerge(t *testing.T) {
	a := &Statistics{}
	a.Add(RoundResult{Net: 30, Wagered: 20, Outcomes: []game.Outcome{game.OutcomeBlackjack}})
	b := &Statistics{}
	b.Add(RoundResult{Net: -20, Wagered: 20, Outcomes: []game.Outcome{game.OutcomeLoss}})

	a.Merge(b)
	if a.Rounds != 2 || a.NetChips != 10 || a.Blackjacks != 1 || a.Losses != 1 {
		t.Errorf("merged statistics off: %+v", a)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestHouseEdge(t *testing.T) {
	s := &Statistics{NetChips: -5, Wagered: 100}
	if got := s.HouseEdge(); got != 0.05 {
		t.Errorf("HouseEdge() = %v, want 0.05", got)
	}

	empty := &Statistics{}
	if got := empty.HouseEdge(); got != 0 {
		t.Errorf("HouseEdge() on empty stats = %v", got)
	}
}
