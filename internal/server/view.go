package server

import (
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/protocol"
)

// resolution remembers how a hand settled so snapshots taken after the
// round can still show the outcome.
type resolution struct {
	outcome game.Outcome
	payout  int
}

// snapshot builds a full table view for the client
func snapshot(g *game.Game, resolved map[*game.Hand]resolution) *protocol.State {
	state := &protocol.State{
		Type:      protocol.TypeState,
		GameState: g.State().String(),
		Holdings:  g.Player().Holdings(),
		NextBet:   g.NextBet(),
		Remaining: g.Shoe().Remaining(),
	}

	if dealer := g.DealerHand(); dealer != nil {
		view := handView(dealer, resolved)
		state.Dealer = &view
	}
	for _, h := range g.Hands() {
		state.Hands = append(state.Hands, handView(h, resolved))
	}
	return state
}

func handView(h *game.Hand, resolved map[*game.Hand]resolution) protocol.HandView {
	view := protocol.HandView{
		Bet:   h.Bet(),
		State: h.State().String(),
	}
	for _, c := range h.Cards() {
		if c.IsHoleCard() {
			view.Cards = append(view.Cards, "??")
		} else {
			view.Cards = append(view.Cards, c.String())
		}
	}
	if h.HasHoleCard() {
		view.Score = h.VisibleScore()
	} else {
		view.Score = h.Score()
	}
	if res, ok := resolved[h]; ok {
		view.Outcome = res.outcome.String()
		view.Payout = res.payout
	}
	return view
}
