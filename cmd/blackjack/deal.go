package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// DealCmd deals cards from a shoe and prints them, mainly useful for
// eyeballing shuffles and seeds
type DealCmd struct {
	Count      int    `kong:"default='5',help='Number of cards to deal'"`
	Decks      int    `kong:"default='1',help='Number of decks in the shoe'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Unshuffled bool   `kong:"help='Deal in fresh casino order instead of shuffling'"`
}

func (c *DealCmd) Run() error {
	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	opts := []deck.ShoeOption{deck.WithDecks(c.Decks)}
	if c.Unshuffled {
		opts = append(opts, deck.WithoutShuffle())
	}
	shoe := deck.NewShoe(randutil.New(seed), opts...)

	cards := make([]string, 0, c.Count)
	for i := 0; i < c.Count; i++ {
		cards = append(cards, shoe.Deal(false).String())
	}
	fmt.Println(strings.Join(cards, " "))
	return nil
}
