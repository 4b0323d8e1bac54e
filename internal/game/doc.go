// Package game implements the core blackjack rules engine: the hand
// state machine, bet escrow and the round orchestration.
//
// The main type is Game, which owns the shoe, the player's chips, the
// dealer hand and the player hands for one round.
//
// # Basic Usage
//
// Create and play a game:
//
//	g := game.New(randutil.NewFromTime(), game.WithChips(500))
//	if err := g.Start(); err != nil { ... }
//	for _, h := range g.Hands() {
//	    if h.IsPlayable() {
//	        _ = g.Hit(h) // or Stand, Double, Split, Surrender
//	    }
//	}
//	// Dealer play and settlement run automatically once no hand
//	// remains playable; the game is back in postgame afterwards.
//	_ = g.Deal()
//
// # Deterministic Testing
//
// All randomness flows through the explicit RNG. Tests can pin exact
// card sequences with a scripted shoe:
//
//	shoe := deck.NewShoe(randutil.New(1), deck.WithCards(deck.MustParseCards("AhTdKs9c")...))
//	g := game.New(randutil.New(1), game.WithShoe(shoe))
//
// # Architecture
//
// Game delegates to specialized components:
//   - Hand: per-hand state machine, scoring and bet escrow
//   - Player: the single audited entry point for chip movement
//   - deck.Shoe: card supply with transparent refill and reshuffle
//
// Every transition is synchronous; hand actions report their resulting
// state and the game emits typed Events in order, so there is no
// callback wiring and no concurrency inside the engine.
package game
