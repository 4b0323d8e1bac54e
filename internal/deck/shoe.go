package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrShoeNotEmpty is returned when a fill is attempted while cards
// remain in the shoe. Hitting it indicates a refill-logic bug, not a
// recoverable condition.
var ErrShoeNotEmpty = errors.New("shoe is not empty")

// Shoe holds the cards of one or more decks and deals from the front.
// Shuffling is lazy: a freshly filled shoe stays in canonical deck
// order until the first deal forces a shuffle. When the shoe runs dry
// mid-deal it refills and reshuffles transparently, so Deal never fails
// under a sane configuration.
//
// A Shoe is created once per game and persists across rounds.
type Shoe struct {
	cards    []Card
	decks    int
	shuffled bool
	rng      *rand.Rand
	fixed    bool // test hook: Shuffle becomes a no-op
}

// ShoeOption configures a Shoe during creation
type ShoeOption func(*Shoe)

// WithDecks sets the number of decks the shoe holds. Default is 1.
func WithDecks(n int) ShoeOption {
	return func(s *Shoe) {
		s.decks = n
	}
}

// WithoutShuffle disables shuffling so the shoe deals in canonical deck
// order. For deterministic tests only.
func WithoutShuffle() ShoeOption {
	return func(s *Shoe) {
		s.fixed = true
	}
}

// WithCards replaces the shoe's contents with an exact card sequence
// and marks it shuffled. For scripting rounds in tests. Refills after
// the sequence is exhausted fall back to fresh decks.
func WithCards(cards ...Card) ShoeOption {
	return func(s *Shoe) {
		s.cards = append([]Card(nil), cards...)
		s.shuffled = true
	}
}

// NewShoe creates a shoe and fills it with fresh decks. The RNG is
// required to make shuffling explicit and testing deterministic.
func NewShoe(rng *rand.Rand, opts ...ShoeOption) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	s := &Shoe{rng: rng, decks: 1}
	for _, opt := range opts {
		opt(s)
	}
	if s.decks < 1 {
		panic(fmt.Sprintf("shoe needs at least one deck, got %d", s.decks))
	}
	if len(s.cards) == 0 {
		if err := s.fill(); err != nil {
			panic(err) // unreachable: the shoe is empty by construction
		}
	}
	return s
}

// fill appends the shoe's full complement of fresh decks. The shoe must
// be empty; the unshuffled cards clear the shuffled flag so the next
// deal reshuffles.
func (s *Shoe) fill() error {
	if len(s.cards) > 0 {
		return fmt.Errorf("%w: %d cards remain", ErrShoeNotEmpty, len(s.cards))
	}
	for i := 0; i < s.decks; i++ {
		s.cards = append(s.cards, New().Cards()...)
	}
	s.shuffled = false
	return nil
}

// Shuffle permutes the shoe in place. A no-op if the shoe is already
// shuffled; appending unshuffled cards (fill) re-arms it.
func (s *Shoe) Shuffle() {
	if s.shuffled {
		return
	}
	if !s.fixed {
		Shuffle(s.cards, s.rng)
	}
	s.shuffled = true
}

// Deal removes and returns the front card, shuffling first if needed.
// An exhausted shoe refills and reshuffles before dealing; the retry is
// bounded because fill guarantees a non-empty shoe. If asHoleCard is
// set the card comes back concealed.
func (s *Shoe) Deal(asHoleCard bool) Card {
	s.Shuffle()
	if len(s.cards) == 0 {
		if err := s.fill(); err != nil {
			panic(err)
		}
		s.Shuffle()
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	if asHoleCard {
		c = c.AsHoleCard()
	}
	return c
}

// Cards returns the shoe's remaining card sequence
func (s *Shoe) Cards() []Card {
	return s.cards
}

// Remaining returns the number of cards left before the next refill
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// DeckCount returns the number of decks the shoe refills with
func (s *Shoe) DeckCount() int {
	return s.decks
}

// String returns the shoe rendered as a card list
func (s *Shoe) String() string {
	return Render(s)
}
