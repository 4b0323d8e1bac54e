package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
)

// GameState represents the top-level state of a blackjack game
type GameState int

const (
	StatePregame GameState = iota
	StateDealing
	StateBuying
	StatePlayerTurn
	StateDealerTurn
	StateScoring
	StatePostgame
	StateExited
)

// String returns the string representation of a game state
func (s GameState) String() string {
	switch s {
	case StatePregame:
		return "pregame"
	case StateDealing:
		return "dealing"
	case StateBuying:
		return "buying"
	case StatePlayerTurn:
		return "player"
	case StateDealerTurn:
		return "dealer"
	case StateScoring:
		return "scoring"
	case StatePostgame:
		return "postgame"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Game orchestrates a shoe, a player, a dealer hand and one or more
// player hands through the round lifecycle: deal, player turns, dealer
// play and settlement. All transitions run synchronously to completion
// before the next action is accepted; there is no concurrency inside a
// Game.
type Game struct {
	shoe    *deck.Shoe
	player  *Player
	dealer  *Hand
	hands   []*Hand
	minBet  int
	maxBet  int
	nextBet int
	state   GameState
	logger  *log.Logger
	handler EventHandler
}

// State returns the current game state
func (g *Game) State() GameState {
	return g.state
}

// Player returns the human player
func (g *Game) Player() *Player {
	return g.player
}

// DealerHand returns the dealer's hand for the current round, or nil
// before the first deal
func (g *Game) DealerHand() *Hand {
	return g.dealer
}

// Hands returns the player hands for the current round
func (g *Game) Hands() []*Hand {
	return append([]*Hand(nil), g.hands...)
}

// MinimumBet returns the table minimum
func (g *Game) MinimumBet() int {
	return g.minBet
}

// MaximumBet returns the table maximum
func (g *Game) MaximumBet() int {
	return g.maxBet
}

// Shoe returns the dealing shoe
func (g *Game) Shoe() *deck.Shoe {
	return g.shoe
}

// NextBet returns the wager that the next deal will escrow
func (g *Game) NextBet() int {
	return g.nextBet
}

// SetBet sets the wager for the next deal. Legal between rounds only.
func (g *Game) SetBet(amount int) error {
	switch g.state {
	case StatePregame, StatePostgame, StateBuying:
	default:
		return fmt.Errorf("%w: cannot change the bet during a round", ErrInvalidStateTransition)
	}
	if amount < g.minBet {
		return fmt.Errorf("%w: %d under limit %d", ErrBetBelowMinimum, amount, g.minBet)
	}
	if amount > g.maxBet {
		return fmt.Errorf("%w: %d over limit %d", ErrBetExceedsMaximum, amount, g.maxBet)
	}
	g.nextBet = amount
	return nil
}

// Start opens the table and deals the first round
func (g *Game) Start() error {
	if g.state != StatePregame {
		return fmt.Errorf("%w: game already started", ErrInvalidStateTransition)
	}
	return g.deal()
}

// Deal begins a new round. Legal only between rounds; a player whose
// holdings have fallen below the table minimum is routed to the buying
// state without any cards being drawn.
func (g *Game) Deal() error {
	if g.state != StatePostgame && g.state != StateBuying {
		return fmt.Errorf("%w: cannot deal from %s", ErrInvalidStateTransition, g.state)
	}
	return g.deal()
}

func (g *Game) deal() error {
	if g.player.Holdings() < g.minBet {
		g.logger.Info("holdings below table minimum", "holdings", g.player.Holdings(), "min", g.minBet)
		g.setState(StateBuying)
		return nil
	}

	g.setState(StateDealing)
	g.dealer = newHand(nil, g.maxBet)
	hand := newHand(g.player, g.maxBet)
	g.hands = []*Hand{hand}

	bet := g.nextBet
	if bet > g.player.Holdings() {
		bet = g.player.Holdings()
	}
	if err := hand.IncreaseBet(bet); err != nil {
		return err
	}

	// Casino deal order: face-up to the player, one to the dealer,
	// second face-up to the player, then the dealer's hole card.
	g.dealTo(hand, false)
	g.dealTo(g.dealer, false)
	g.dealTo(hand, false)
	g.dealTo(g.dealer, true)

	// Blackjacks are resolved only now, after every hand has its two
	// cards: a dealer blackjack short-circuits straight to scoring, and
	// a player blackjack waits for the dealer's hand to finish dealing.
	if g.dealer.State() == HandBlackjack {
		g.revealDealer()
		g.settle()
		return nil
	}

	g.setState(StatePlayerTurn)
	g.advanceIfDone()
	return nil
}

// Hit draws one card to the hand
func (g *Game) Hit(h *Hand) error {
	if err := g.requireAction(h); err != nil {
		return err
	}
	if !h.IsPlayable() {
		return fmt.Errorf("%w: cannot hit a %s hand", ErrInvalidStateTransition, h.State())
	}
	g.dealTo(h, false)
	g.advanceIfDone()
	return nil
}

// Stand ends play on the hand
func (g *Game) Stand(h *Hand) error {
	if err := g.requireAction(h); err != nil {
		return err
	}
	if _, err := h.Stand(); err != nil {
		return err
	}
	g.advanceIfDone()
	return nil
}

// Double doubles the hand's bet, draws exactly one card and ends play.
// The extra escrow happens before the card so a failed escrow leaves
// the hand untouched.
func (g *Game) Double(h *Hand) error {
	if err := g.requireAction(h); err != nil {
		return err
	}
	if h.State() != HandPair {
		return fmt.Errorf("%w: cannot double a %s hand", ErrInvalidStateTransition, h.State())
	}
	if err := h.IncreaseBet(h.Bet()); err != nil {
		return err
	}
	card := g.shoe.Deal(false)
	if _, err := h.Double(card); err != nil {
		return err
	}
	g.emit(CardDealtEvent{Hand: h, Card: card})
	g.advanceIfDone()
	return nil
}

// Split divides an equal-rank pair into two hands, escrows a matching
// bet on the sibling and deals one card to each so both are playable
// again. Single-level only; neither hand can re-split.
func (g *Game) Split(h *Hand) error {
	if err := g.requireAction(h); err != nil {
		return err
	}
	if !h.CanSplit() {
		return fmt.Errorf("%w: cannot split a %s hand", ErrInvalidStateTransition, h.State())
	}
	if g.player.Holdings() < h.Bet() {
		return fmt.Errorf("%w: need %d to split", ErrInsufficientHoldings, h.Bet())
	}

	bet := h.Bet()
	sibling, err := h.Split()
	if err != nil {
		return err
	}
	if err := sibling.IncreaseBet(bet); err != nil {
		return err
	}

	// Keep split siblings adjacent in play order.
	for i, other := range g.hands {
		if other == h {
			g.hands = append(g.hands[:i+1], append([]*Hand{sibling}, g.hands[i+1:]...)...)
			break
		}
	}

	g.dealTo(h, false)
	g.dealTo(sibling, false)
	g.advanceIfDone()
	return nil
}

// Surrender forfeits the hand, returning half its bet
func (g *Game) Surrender(h *Hand) error {
	if err := g.requireAction(h); err != nil {
		return err
	}
	if _, err := h.Surrender(); err != nil {
		return err
	}
	g.advanceIfDone()
	return nil
}

// AddChips credits the player. From the buying state this re-opens the
// table for the next deal.
func (g *Game) AddChips(amount int) {
	g.player.AdjustHoldings(amount)
	if g.state == StateBuying {
		g.setState(StatePostgame)
	}
}

// Quit ends the game from any state. Escrow still held by live hands
// returns to the player; busted and surrendered bets stay forfeited.
func (g *Game) Quit() {
	if g.state == StateExited {
		return
	}
	for _, h := range g.hands {
		if h.Bet() > 0 && h.State() != HandBusted && h.State() != HandSurrendered {
			h.Push()
		}
	}
	g.setState(StateExited)
}

func (g *Game) requireAction(h *Hand) error {
	if g.state != StatePlayerTurn {
		return fmt.Errorf("%w: no player turn in progress", ErrInvalidStateTransition)
	}
	for _, other := range g.hands {
		if other == h {
			return nil
		}
	}
	return ErrUnknownHand
}

func (g *Game) dealTo(h *Hand, asHoleCard bool) {
	card := g.shoe.Deal(asHoleCard)
	if _, err := h.Hit(card); err != nil {
		panic(err) // callers check playability before drawing
	}
	g.emit(CardDealtEvent{Hand: h, Card: card})
}

// advanceIfDone runs the dealer once no player hand remains playable
func (g *Game) advanceIfDone() {
	if g.state != StatePlayerTurn {
		return
	}
	for _, h := range g.hands {
		if h.IsPlayable() {
			return
		}
	}
	g.runDealer()
}

// runDealer plays the dealer's fixed strategy: reveal the hole card,
// draw below 17, stand at 17 or better, then settle.
func (g *Game) runDealer() {
	g.setState(StateDealerTurn)
	g.revealDealer()

	for g.dealer.State() != HandBusted && g.dealer.Score() < 17 {
		g.dealTo(g.dealer, false)
	}
	if g.dealer.IsPlayable() {
		if _, err := g.dealer.Stand(); err != nil {
			panic(err)
		}
	}

	g.logger.Debug("dealer finished", "hand", g.dealer.String(), "state", g.dealer.State())
	g.settle()
}

func (g *Game) revealDealer() {
	g.dealer.Reveal()
	g.emit(DealerRevealEvent{Dealer: g.dealer})
}

// settle resolves every player hand against the dealer and seeds the
// next round's bet back to the table minimum.
func (g *Game) settle() {
	g.setState(StateScoring)

	dealerBlackjack := g.dealer.State() == HandBlackjack
	dealerBusted := g.dealer.State() == HandBusted
	dealerScore := g.dealer.Score()

	for _, h := range g.hands {
		var (
			outcome Outcome
			amount  int
		)
		switch {
		case h.State() == HandBusted:
			outcome = OutcomeBust
		case h.State() == HandSurrendered:
			outcome = OutcomeSurrender
		case h.State() == HandBlackjack:
			// Blackjack compares against dealer blackjack status only,
			// never against the dealer's bust or score.
			if dealerBlackjack {
				outcome, amount = OutcomePush, h.Push()
			} else {
				outcome, amount = OutcomeBlackjack, h.Pay(1.5)
			}
		case dealerBlackjack:
			outcome = OutcomeLoss
		case dealerBusted:
			outcome, amount = OutcomeWin, h.Pay(1)
		case h.Score() > dealerScore:
			outcome, amount = OutcomeWin, h.Pay(1)
		case h.Score() == dealerScore:
			outcome, amount = OutcomePush, h.Push()
		default:
			outcome = OutcomeLoss
		}

		// Whatever escrow a losing hand still holds belongs to the house
		// now; a later quit must not refund it.
		if h.Bet() > 0 {
			h.forfeit()
		}

		g.logger.Info("hand resolved", "hand", h.String(), "outcome", outcome, "returned", amount)
		g.emit(HandResolvedEvent{Hand: h, Outcome: outcome, Amount: amount})
	}

	g.nextBet = g.minBet
	g.emit(RoundSettledEvent{Holdings: g.player.Holdings()})
	g.setState(StatePostgame)
}

func (g *Game) setState(to GameState) {
	if g.state == to {
		return
	}
	from := g.state
	g.state = to
	g.logger.Debug("state changed", "from", from, "to", to)
	g.emit(StateChangedEvent{From: from, To: to})
}

func (g *Game) emit(e Event) {
	if g.handler != nil {
		g.handler(e)
	}
}
