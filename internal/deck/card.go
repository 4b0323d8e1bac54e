package deck

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRank = errors.New("invalid rank")
	ErrInvalidSuit = errors.New("invalid suit")
)

// Suit represents a card suit. Values follow casino deck order:
// hearts and clubs are the "forward" suits, diamonds and spades the
// "reversed" suits (see New in deck.go).
type Suit int

const (
	Hearts Suit = iota + 1
	Clubs
	Diamonds
	Spades
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Ace is low (1) because blackjack scoring
// treats it specially; see Card.Value.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// holeGlyph is rendered in place of a concealed dealer card.
const holeGlyph = "🂠"

// Card represents a playing card. Rank and suit never change after
// construction; the only mutable attribute is the hole-card flag, which
// conceals the card until the dealer's hand is revealed.
type Card struct {
	Rank Rank
	Suit Suit
	hole bool
}

// NewCard creates a new card, validating rank and suit
func NewCard(rank Rank, suit Suit) (Card, error) {
	if rank < Ace || rank > King {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRank, rank)
	}
	if suit < Hearts || suit > Spades {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidSuit, suit)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustCard creates a new card and panics on invalid input
func MustCard(rank Rank, suit Suit) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

// Value returns the blackjack value of the card: 11 for an Ace, 10 for
// face cards, otherwise the rank itself. Always in [2, 11].
func (c Card) Value() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank > Ten:
		return 10
	default:
		return int(c.Rank)
	}
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsHoleCard returns true if the card is currently concealed
func (c Card) IsHoleCard() bool {
	return c.hole
}

// AsHoleCard returns a concealed copy of the card
func (c Card) AsHoleCard() Card {
	c.hole = true
	return c
}

// Revealed returns a face-up copy of the card
func (c Card) Revealed() Card {
	c.hole = false
	return c
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// String returns the card as rank+suit (e.g. "A♥"), or the hole glyph
// while the card is concealed
func (c Card) String() string {
	if c.hole {
		return holeGlyph
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// ParseCards parses a compact card string like "AhKs" into cards.
// Ranks are A23456789TJQK, suits are h/c/d/s, case insensitive.
func ParseCards(s string) ([]Card, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("card string must have even length, got %d", len(s))
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, err := parseRank(s[i])
		if err != nil {
			return nil, err
		}
		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, err
		}
		cards = append(cards, Card{Rank: rank, Suit: suit})
	}
	return cards, nil
}

// MustParseCards parses a card string and panics on invalid input
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(b byte) (Rank, error) {
	switch strings.ToUpper(string(b)) {
	case "A":
		return Ace, nil
	case "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	default:
		if b >= '2' && b <= '9' {
			return Rank(b - '0'), nil
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidRank, string(b))
	}
}

func parseSuit(b byte) (Suit, error) {
	switch strings.ToLower(string(b)) {
	case "h":
		return Hearts, nil
	case "c":
		return Clubs, nil
	case "d":
		return Diamonds, nil
	case "s":
		return Spades, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSuit, string(b))
	}
}
