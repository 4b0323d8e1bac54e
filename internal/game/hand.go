package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// HandState represents the state of a blackjack hand
type HandState int

const (
	HandEmpty HandState = iota
	HandSingle
	HandPair
	HandHitting
	HandStanding
	HandDoubled
	HandBusted
	HandBlackjack
	HandSurrendered
)

// String returns the string representation of a hand state
func (s HandState) String() string {
	switch s {
	case HandEmpty:
		return "empty"
	case HandSingle:
		return "single"
	case HandPair:
		return "pair"
	case HandHitting:
		return "hitting"
	case HandStanding:
		return "standing"
	case HandDoubled:
		return "doubled"
	case HandBusted:
		return "busted"
	case HandBlackjack:
		return "blackjack"
	case HandSurrendered:
		return "surrendered"
	default:
		return "unknown"
	}
}

// Playable reports whether the state accepts further player actions
func (s HandState) Playable() bool {
	return s == HandPair || s == HandHitting
}

// Scoreable reports whether the state counts at showdown
func (s HandState) Scoreable() bool {
	return s == HandStanding || s == HandDoubled || s == HandBlackjack
}

// Hand is an ordered card sequence plus its escrowed bet and lifecycle
// state. A nil owner marks the dealer's hand, which may never double,
// split or surrender. Hands are created at deal (or split) time and
// discarded when the round settles.
type Hand struct {
	cards     []deck.Card
	bet       int
	state     HandState
	owner     *Player
	maxBet    int
	fromSplit bool
}

func newHand(owner *Player, maxBet int) *Hand {
	return &Hand{state: HandEmpty, owner: owner, maxBet: maxBet}
}

// Cards returns a copy of the hand's cards
func (h *Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// State returns the hand's current lifecycle state
func (h *Hand) State() HandState {
	return h.state
}

// Bet returns the chips currently escrowed in the hand
func (h *Hand) Bet() int {
	return h.bet
}

// IsDealer returns true for the dealer's hand
func (h *Hand) IsDealer() bool {
	return h.owner == nil
}

// IsPlayable reports whether the hand accepts further actions
func (h *Hand) IsPlayable() bool {
	return h.state.Playable()
}

// IsScoreable reports whether the hand counts at showdown
func (h *Hand) IsScoreable() bool {
	return h.state.Scoreable()
}

// Score returns the best blackjack total of the hand. Non-ace values
// are summed first; each ace then counts 11 unless that would bust,
// allowing at least one point for every ace still to be folded in.
// This yields the maximum total <= 21 reachable by soft/hard choices.
func (h *Hand) Score() int {
	return scoreCards(h.cards)
}

func scoreCards(cards []deck.Card) int {
	total, aces := 0, 0
	for _, c := range cards {
		if c.IsAce() {
			aces++
			continue
		}
		total += c.Value()
	}
	for remaining := aces; remaining > 0; remaining-- {
		if total+11+(remaining-1) <= 21 {
			total += 11
		} else {
			total++
		}
	}
	return total
}

// VisibleScore returns the score of the face-up cards only, for display
// while the dealer's hole card is concealed.
func (h *Hand) VisibleScore() int {
	visible := make([]deck.Card, 0, len(h.cards))
	for _, c := range h.cards {
		if !c.IsHoleCard() {
			visible = append(visible, c)
		}
	}
	return scoreCards(visible)
}

// IsBlackjack is true only for a two-card 21: an ace plus a ten-value
// card. Three-or-more-card 21s are just 21.
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Score() == 21
}

// CanSplit is true for a player hand holding an unsplit pair of equal
// ranks. Single-level split only: a hand that came from (or survived)
// a split refuses to split again.
func (h *Hand) CanSplit() bool {
	return !h.IsDealer() &&
		!h.fromSplit &&
		h.state == HandPair &&
		h.cards[0].Rank == h.cards[1].Rank
}

// Hit adds a card to the hand, walking the state machine:
// empty->single->pair->hitting->hitting. Reaching a two-card 21
// auto-transitions to blackjack; exceeding 21 auto-transitions to
// busted. The returned state lets the caller react to either.
func (h *Hand) Hit(card deck.Card) (HandState, error) {
	var next HandState
	switch h.state {
	case HandEmpty:
		next = HandSingle
	case HandSingle:
		next = HandPair
	case HandPair, HandHitting:
		next = HandHitting
	default:
		return h.state, fmt.Errorf("%w: cannot hit a %s hand", ErrInvalidStateTransition, h.state)
	}

	h.cards = append(h.cards, card)
	h.state = next

	switch {
	case h.Score() > 21:
		h.state = HandBusted
	case h.state == HandPair && h.IsBlackjack():
		h.state = HandBlackjack
	}
	return h.state, nil
}

// Stand ends play on the hand
func (h *Hand) Stand() (HandState, error) {
	if !h.state.Playable() {
		return h.state, fmt.Errorf("%w: cannot stand a %s hand", ErrInvalidStateTransition, h.state)
	}
	h.state = HandStanding
	return h.state, nil
}

// Double takes exactly one more card and ends play. Legal only on the
// initial pair; the caller escrows the extra bet before dealing the
// card. A total over 21 still busts.
func (h *Hand) Double(card deck.Card) (HandState, error) {
	if err := h.requirePlayerPair("double"); err != nil {
		return h.state, err
	}
	h.cards = append(h.cards, card)
	h.state = HandDoubled
	if h.Score() > 21 {
		h.state = HandBusted
	}
	return h.state, nil
}

// Split divides an equal-rank pair into two single-card hands, returning
// the new sibling. Both hands are marked so neither can re-split. The
// sibling carries no bet; the caller escrows it.
func (h *Hand) Split() (*Hand, error) {
	if h.IsDealer() {
		return nil, fmt.Errorf("%w: the dealer cannot split", ErrInvalidStateTransition)
	}
	if !h.CanSplit() {
		return nil, fmt.Errorf("%w: cannot split a %s hand", ErrInvalidStateTransition, h.state)
	}

	sibling := newHand(h.owner, h.maxBet)
	sibling.cards = []deck.Card{h.cards[1]}
	sibling.state = HandSingle
	sibling.fromSplit = true

	h.cards = h.cards[:1]
	h.state = HandSingle
	h.fromSplit = true
	return sibling, nil
}

// Surrender forfeits the hand: half the escrowed bet goes back to the
// player, the other half stays lost. Legal only on the initial pair.
func (h *Hand) Surrender() (HandState, error) {
	if err := h.requirePlayerPair("surrender"); err != nil {
		return h.state, err
	}
	refund := h.bet / 2
	h.owner.AdjustHoldings(refund)
	h.bet -= refund
	h.state = HandSurrendered
	return h.state, nil
}

func (h *Hand) requirePlayerPair(action string) error {
	if h.IsDealer() {
		return fmt.Errorf("%w: the dealer cannot %s", ErrInvalidStateTransition, action)
	}
	if h.state != HandPair {
		return fmt.Errorf("%w: cannot %s a %s hand", ErrInvalidStateTransition, action, h.state)
	}
	return nil
}

// IncreaseBet escrows amount from the owner into the hand's bet. Both
// the debit and the credit happen, or neither does.
func (h *Hand) IncreaseBet(amount int) error {
	if h.bet+amount > h.maxBet {
		return fmt.Errorf("%w: %d over limit %d", ErrBetExceedsMaximum, h.bet+amount, h.maxBet)
	}
	if h.owner == nil || h.owner.Holdings() < amount {
		return fmt.Errorf("%w: need %d", ErrInsufficientHoldings, amount)
	}
	h.owner.AdjustHoldings(-amount)
	h.bet += amount
	return nil
}

// Pay returns the escrowed bet plus winnings at the given odds to the
// owner and reports the total credited. 3:2 amounts round half-up.
func (h *Hand) Pay(odds float64) int {
	winnings := int(math.Round(float64(h.bet) * odds))
	total := h.bet + winnings
	h.owner.AdjustHoldings(total)
	h.bet = 0
	return total
}

// Push returns the escrowed bet unchanged and reports the amount
func (h *Hand) Push() int {
	amount := h.bet
	h.owner.AdjustHoldings(amount)
	h.bet = 0
	return amount
}

// forfeit surrenders any remaining escrow to the house
func (h *Hand) forfeit() {
	h.bet = 0
}

// Reveal turns any concealed cards face up
func (h *Hand) Reveal() {
	for i, c := range h.cards {
		h.cards[i] = c.Revealed()
	}
}

// HasHoleCard reports whether any card is still concealed
func (h *Hand) HasHoleCard() bool {
	for _, c := range h.cards {
		if c.IsHoleCard() {
			return true
		}
	}
	return false
}

// String renders the cards and score, concealing hole cards. While a
// hole card is down only the visible total is shown.
func (h *Hand) String() string {
	var b strings.Builder
	b.WriteString(deck.Render(h))
	if h.HasHoleCard() {
		fmt.Fprintf(&b, " (%d)", h.VisibleScore())
	} else if len(h.cards) > 0 {
		fmt.Fprintf(&b, " (%d)", h.Score())
	}
	return b.String()
}
