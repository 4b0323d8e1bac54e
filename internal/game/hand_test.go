package game

import (
	"errors"
	"testing"

	"github.com/lox/blackjack/internal/deck"
)

func buildHand(t *testing.T, owner *Player, cards string) *Hand {
	t.Helper()
	h := newHand(owner, 100)
	for _, c := range deck.MustParseCards(cards) {
		if _, err := h.Hit(c); err != nil {
			t.Fatalf("building hand %q: %v", cards, err)
		}
	}
	return h
}

func TestHandScore(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected int
	}{
		{name: "two aces", cards: "AhAs", expected: 12},
		{name: "two aces and a nine", cards: "AhAs9d", expected: 21},
		{name: "ace and two nines", cards: "Ah9s9d", expected: 19},
		{name: "ten nine ace", cards: "Th9sAd", expected: 20},
		{name: "blackjack", cards: "AhKs", expected: 21},
		{name: "three sevens", cards: "7h7s7d", expected: 21},
		{name: "hard twenty", cards: "KhQs", expected: 20},
		{name: "bust", cards: "KhQs5d", expected: 25},
		{name: "four aces", cards: "AhAsAdAc", expected: 14},
		{name: "soft eighteen", cards: "Ah7s", expected: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreCards(deck.MustParseCards(tt.cards)); got != tt.expected {
				t.Errorf("score of %s = %d, want %d", tt.cards, got, tt.expected)
			}
		})
	}
}

func TestIsBlackjack(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected bool
	}{
		{name: "ace king", cards: "AhKs", expected: true},
		{name: "ace ten", cards: "AhTs", expected: true},
		{name: "three card twenty one", cards: "7h7s7d", expected: false},
		{name: "ace king two", cards: "AhKs2d", expected: false},
		{name: "hard twenty", cards: "KhQs", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Hand{cards: deck.MustParseCards(tt.cards)}
			if got := h.IsBlackjack(); got != tt.expected {
				t.Errorf("IsBlackjack(%s) = %v, want %v", tt.cards, got, tt.expected)
			}
		})
	}
}

func TestHandStateMachine(t *testing.T) {
	player := NewPlayer(500)

	h := newHand(player, 100)
	if h.State() != HandEmpty {
		t.Fatalf("new hand state = %s, want empty", h.State())
	}

	for i, want := range []HandState{HandSingle, HandPair, HandHitting, HandHitting} {
		cards := deck.MustParseCards("2h3s4d5c")
		if st, err := h.Hit(cards[i]); err != nil || st != want {
			t.Fatalf("hit %d: state = %s, err = %v, want %s", i+1, st, err, want)
		}
	}

	if st, err := h.Stand(); err != nil || st != HandStanding {
		t.Fatalf("stand: state = %s, err = %v", st, err)
	}
	if _, err := h.Hit(deck.MustCard(deck.Two, deck.Hearts)); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("hit on a standing hand = %v, want ErrInvalidStateTransition", err)
	}
}

func TestHandAutoBlackjack(t *testing.T) {
	h := buildHand(t, NewPlayer(500), "AhKs")
	if h.State() != HandBlackjack {
		t.Errorf("state = %s, want blackjack", h.State())
	}
	if h.IsPlayable() {
		t.Error("blackjack hand must not be playable")
	}
	if !h.IsScoreable() {
		t.Error("blackjack hand must be scoreable")
	}
}

func TestHandAutoBust(t *testing.T) {
	h := buildHand(t, NewPlayer(500), "KhQs5d")
	if h.State() != HandBusted {
		t.Errorf("state = %s, want busted", h.State())
	}
	if h.IsPlayable() || h.IsScoreable() {
		t.Error("busted hand is neither playable nor scoreable")
	}
}

func TestDoubleOnlyFromPair(t *testing.T) {
	player := NewPlayer(500)
	h := buildHand(t, player, "5h6s2d") // already hit once
	if err := h.IncreaseBet(10); err != nil {
		t.Fatal(err)
	}

	cardsBefore := len(h.Cards())
	_, err := h.Double(deck.MustCard(deck.Ten, deck.Hearts))
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("double from %s = %v, want ErrInvalidStateTransition", h.State(), err)
	}
	if len(h.Cards()) != cardsBefore {
		t.Error("failed double must not add a card")
	}
	if h.Bet() != 10 {
		t.Errorf("failed double changed bet to %d", h.Bet())
	}
}

func TestDoubleTerminates(t *testing.T) {
	h := buildHand(t, NewPlayer(500), "5h6s")
	st, err := h.Double(deck.MustCard(deck.Ten, deck.Hearts))
	if err != nil || st != HandDoubled {
		t.Fatalf("double: state = %s, err = %v", st, err)
	}
	if got := len(h.Cards()); got != 3 {
		t.Errorf("doubled hand has %d cards, want exactly 3", got)
	}
	if h.Score() != 21 {
		t.Errorf("score = %d, want 21", h.Score())
	}
}

func TestDoubleCanBust(t *testing.T) {
	h := buildHand(t, NewPlayer(500), "Th6s")
	st, err := h.Double(deck.MustCard(deck.Ten, deck.Hearts))
	if err != nil || st != HandBusted {
		t.Fatalf("double into a bust: state = %s, err = %v", st, err)
	}
}

func TestDealerRestrictions(t *testing.T) {
	dealer := buildHand(t, nil, "8h8s")

	if _, err := dealer.Double(deck.MustCard(deck.Two, deck.Hearts)); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("dealer double = %v, want ErrInvalidStateTransition", err)
	}
	if _, err := dealer.Split(); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("dealer split = %v, want ErrInvalidStateTransition", err)
	}
	if _, err := dealer.Surrender(); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("dealer surrender = %v, want ErrInvalidStateTransition", err)
	}
}

func TestCanSplit(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected bool
	}{
		{name: "equal ranks", cards: "8h8s", expected: true},
		{name: "unequal ranks", cards: "8h9s", expected: false},
		{name: "equal values not ranks", cards: "KhQs", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := buildHand(t, NewPlayer(500), tt.cards)
			if got := h.CanSplit(); got != tt.expected {
				t.Errorf("CanSplit(%s) = %v, want %v", tt.cards, got, tt.expected)
			}
		})
	}
}

func TestSplitSingleLevelOnly(t *testing.T) {
	h := buildHand(t, NewPlayer(500), "8h8s")

	sibling, err := h.Split()
	if err != nil {
		t.Fatal(err)
	}
	if h.State() != HandSingle || sibling.State() != HandSingle {
		t.Errorf("states after split = %s / %s, want single / single", h.State(), sibling.State())
	}
	if len(h.Cards()) != 1 || len(sibling.Cards()) != 1 {
		t.Fatal("each split hand keeps exactly one card")
	}

	// Bring both back to a pair of eights and verify neither may re-split.
	if _, err := h.Hit(deck.MustCard(deck.Eight, deck.Diamonds)); err != nil {
		t.Fatal(err)
	}
	if _, err := sibling.Hit(deck.MustCard(deck.Eight, deck.Clubs)); err != nil {
		t.Fatal(err)
	}
	if h.CanSplit() || sibling.CanSplit() {
		t.Error("split hands must not re-split")
	}
}

func TestSurrenderReturnsHalf(t *testing.T) {
	player := NewPlayer(500)
	h := buildHand(t, player, "Th6s")
	if err := h.IncreaseBet(20); err != nil {
		t.Fatal(err)
	}
	if player.Holdings() != 480 {
		t.Fatalf("holdings after escrow = %d", player.Holdings())
	}

	st, err := h.Surrender()
	if err != nil || st != HandSurrendered {
		t.Fatalf("surrender: state = %s, err = %v", st, err)
	}
	if player.Holdings() != 490 {
		t.Errorf("holdings after surrender = %d, want 490", player.Holdings())
	}
	if h.Bet() != 10 {
		t.Errorf("forfeited bet = %d, want 10", h.Bet())
	}
}

func TestIncreaseBet(t *testing.T) {
	player := NewPlayer(50)
	h := newHand(player, 100)

	if err := h.IncreaseBet(30); err != nil {
		t.Fatal(err)
	}
	if player.Holdings() != 20 || h.Bet() != 30 {
		t.Errorf("holdings = %d, bet = %d", player.Holdings(), h.Bet())
	}

	// Over the table maximum: nothing moves.
	if err := h.IncreaseBet(80); !errors.Is(err, ErrBetExceedsMaximum) {
		t.Errorf("err = %v, want ErrBetExceedsMaximum", err)
	}
	if player.Holdings() != 20 || h.Bet() != 30 {
		t.Error("failed escrow moved funds")
	}

	// More than the player holds: nothing moves.
	if err := h.IncreaseBet(40); !errors.Is(err, ErrInsufficientHoldings) {
		t.Errorf("err = %v, want ErrInsufficientHoldings", err)
	}
	if player.Holdings() != 20 || h.Bet() != 30 {
		t.Error("failed escrow moved funds")
	}
}

func TestPayAndPush(t *testing.T) {
	player := NewPlayer(500)
	h := newHand(player, 100)
	if err := h.IncreaseBet(20); err != nil {
		t.Fatal(err)
	}

	if got := h.Pay(1.5); got != 50 {
		t.Errorf("Pay(1.5) credited %d, want 50", got)
	}
	if player.Holdings() != 530 {
		t.Errorf("holdings = %d, want 530", player.Holdings())
	}
	if h.Bet() != 0 {
		t.Errorf("bet after pay = %d", h.Bet())
	}

	if err := h.IncreaseBet(20); err != nil {
		t.Fatal(err)
	}
	if got := h.Push(); got != 20 {
		t.Errorf("Push() returned %d, want 20", got)
	}
	if player.Holdings() != 530 {
		t.Errorf("holdings after push = %d, want 530", player.Holdings())
	}
}

func TestHandStringConcealsHoleCard(t *testing.T) {
	h := newHand(nil, 100)
	if _, err := h.Hit(deck.MustCard(deck.Nine, deck.Hearts)); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Hit(deck.MustCard(deck.King, deck.Spades).AsHoleCard()); err != nil {
		t.Fatal(err)
	}

	s := h.String()
	if want := "9♥ 🂠 (9)"; s != want {
		t.Errorf("String() = %q, want %q", s, want)
	}

	h.Reveal()
	if s := h.String(); s != "9♥ K♠ (19)" {
		t.Errorf("String() after reveal = %q", s)
	}
}
