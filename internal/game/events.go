package game

import "github.com/lox/blackjack/internal/deck"

// EventType identifies a game event
type EventType string

const (
	EventTypeStateChanged EventType = "state_changed"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypeDealerReveal EventType = "dealer_reveal"
	EventTypeHandResolved EventType = "hand_resolved"
	EventTypeRoundSettled EventType = "round_settled"
)

// Event is a synchronous notification produced while the game advances.
// Events replace callback wiring between hands and the game: each action
// runs to completion and the handler sees the events in order.
type Event interface {
	EventType() EventType
}

// EventHandler receives events synchronously as they occur
type EventHandler func(Event)

// StateChangedEvent is emitted when the game's top-level state moves
type StateChangedEvent struct {
	From GameState
	To   GameState
}

func (e StateChangedEvent) EventType() EventType { return EventTypeStateChanged }

// CardDealtEvent is emitted for every card leaving the shoe
type CardDealtEvent struct {
	Hand *Hand
	Card deck.Card
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }

// DealerRevealEvent is emitted when the dealer's hole card turns over
type DealerRevealEvent struct {
	Dealer *Hand
}

func (e DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }

// Outcome classifies how a player hand fared at settlement
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeWin
	OutcomePush
	OutcomeBlackjack
	OutcomeBust
	OutcomeSurrender
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeLoss:
		return "loss"
	case OutcomeWin:
		return "win"
	case OutcomePush:
		return "push"
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeBust:
		return "bust"
	case OutcomeSurrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// HandResolvedEvent is emitted per player hand during settlement.
// Amount is the total credited back to the player (zero on a loss).
type HandResolvedEvent struct {
	Hand    *Hand
	Outcome Outcome
	Amount  int
}

func (e HandResolvedEvent) EventType() EventType { return EventTypeHandResolved }

// RoundSettledEvent is emitted once all hands have been resolved
type RoundSettledEvent struct {
	Holdings int
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
