package game

// Player holds the chip balance for the human seat. Holdings move only
// through AdjustHoldings so the flow of funds stays auditable; callers
// that debit (hand escrow) are responsible for checking sufficiency
// first, which keeps holdings non-negative.
type Player struct {
	holdings int
}

// NewPlayer creates a player with a starting chip balance
func NewPlayer(chips int) *Player {
	return &Player{holdings: chips}
}

// Holdings returns the player's current chip balance
func (p *Player) Holdings() int {
	return p.holdings
}

// AdjustHoldings applies a positive or negative delta to the balance.
// No floor check here: escrow callers validate before debiting.
func (p *Player) AdjustHoldings(delta int) {
	p.holdings += delta
}
