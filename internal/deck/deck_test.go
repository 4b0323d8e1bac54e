package deck

import "testing"

func TestCanonicalOrder(t *testing.T) {
	d := New()
	cards := d.Cards()

	if len(cards) != 52 {
		t.Fatalf("deck has %d cards, want 52", len(cards))
	}

	// Hearts then clubs run Ace..King, diamonds then spades King..Ace.
	checkRun := func(offset int, suit Suit, reversed bool) {
		t.Helper()
		for i := 0; i < 13; i++ {
			want := Rank(i + 1)
			if reversed {
				want = Rank(13 - i)
			}
			c := cards[offset+i]
			if c.Suit != suit || c.Rank != want {
				t.Errorf("position %d: got %s, want %s%s", offset+i+1, c, want, suit)
			}
		}
	}

	checkRun(0, Hearts, false)
	checkRun(13, Clubs, false)
	checkRun(26, Diamonds, true)
	checkRun(39, Spades, true)
}

func TestCanonicalOrderIsStable(t *testing.T) {
	// Deck construction must not depend on random state.
	a, b := New(), New()
	if !cardsEqual(a.Cards(), b.Cards()) {
		t.Error("two fresh decks differ")
	}
}

func TestDeckContainsEveryCardOnce(t *testing.T) {
	seen := make(map[Card]int)
	for _, c := range New().Cards() {
		seen[c]++
	}
	if len(seen) != 52 {
		t.Fatalf("deck has %d distinct cards, want 52", len(seen))
	}
	for c, n := range seen {
		if n != 1 {
			t.Errorf("card %s appears %d times", c, n)
		}
	}
}
