package deck

import (
	rand "math/rand/v2"
	"strings"
)

// CardHolder is implemented by anything that exposes an ordered card
// sequence (Deck, Shoe, and the game's hands).
type CardHolder interface {
	Cards() []Card
}

// Render returns the holder's cards as a space-separated string,
// with concealed cards shown as the hole glyph.
func Render(h CardHolder) string {
	cards := h.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Shuffle permutes cards in place with an unbiased Fisher-Yates walk.
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deck is a single 52-card deck in canonical casino order: hearts and
// clubs run Ace through King, diamonds and spades run King through Ace.
// A fresh deck is always in this order regardless of prior random state,
// so pre-shuffle behaviour is deterministic. Decks exist only to be
// folded into a Shoe.
type Deck struct {
	cards []Card
}

// New creates a deck in canonical order
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for _, suit := range []Suit{Hearts, Clubs} {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, Card{Rank: rank, Suit: suit})
		}
	}
	for _, suit := range []Suit{Diamonds, Spades} {
		for rank := King; rank >= Ace; rank-- {
			d.cards = append(d.cards, Card{Rank: rank, Suit: suit})
		}
	}
	return d
}

// Cards returns the deck's card sequence
func (d *Deck) Cards() []Card {
	return d.cards
}

// Size returns the number of cards in the deck
func (d *Deck) Size() int {
	return len(d.cards)
}

// String returns the deck rendered as a card list
func (d *Deck) String() string {
	return Render(d)
}
