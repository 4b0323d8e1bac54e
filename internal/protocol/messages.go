package protocol

// MessageType identifies the type of message
type MessageType string

const (
	// Client -> Server
	TypeJoin   MessageType = "join"
	TypeBet    MessageType = "bet"
	TypeDeal   MessageType = "deal"
	TypeAction MessageType = "action"
	TypeBuyIn  MessageType = "buy_in"
	TypeQuit   MessageType = "quit"

	// Server -> Client
	TypeWelcome MessageType = "welcome"
	TypeState   MessageType = "state"
	TypeError   MessageType = "error"
)

// Hand actions carried by an Action message
const (
	ActionHit       = "hit"
	ActionStand     = "stand"
	ActionDouble    = "double"
	ActionSplit     = "split"
	ActionSurrender = "surrender"
)

// Client -> Server Messages

// Join is sent by a client when connecting
type Join struct {
	Type MessageType `json:"type"`
	Name string      `json:"name"`
}

// Bet sets the wager for the next deal
type Bet struct {
	Type   MessageType `json:"type"`
	Amount int         `json:"amount"`
}

// Deal asks for the next round to begin
type Deal struct {
	Type MessageType `json:"type"`
}

// Action plays one of the hand actions on a hand by index
type Action struct {
	Type   MessageType `json:"type"`
	Action string      `json:"action"` // hit, stand, double, split, surrender
	Hand   int         `json:"hand"`   // index into the player's hands
}

// BuyIn adds chips to the player's holdings
type BuyIn struct {
	Type   MessageType `json:"type"`
	Amount int         `json:"amount"`
}

// Quit leaves the table; any live escrow is refunded first
type Quit struct {
	Type MessageType `json:"type"`
}

// Server -> Client Messages

// Welcome is the first message after a successful Join
type Welcome struct {
	Type     MessageType `json:"type"`
	TableID  string      `json:"table_id"`
	Holdings int         `json:"holdings"`
	MinBet   int         `json:"min_bet"`
	MaxBet   int         `json:"max_bet"`
}

// State is a full snapshot of the table, sent after every change.
// Clients render from snapshots rather than applying deltas, which
// keeps reconnects and slow consumers trivial.
type State struct {
	Type      MessageType `json:"type"`
	GameState string      `json:"game_state"`
	Holdings  int         `json:"holdings"`
	NextBet   int         `json:"next_bet"`
	Dealer    *HandView   `json:"dealer,omitempty"`
	Hands     []HandView  `json:"hands,omitempty"`
	Remaining int         `json:"remaining"` // cards left in the shoe
}

// HandView is the client-visible form of a hand. A concealed hole card
// appears as "??" and is excluded from the score.
type HandView struct {
	Cards   []string `json:"cards"`
	Score   int      `json:"score"`
	Bet     int      `json:"bet,omitempty"`
	State   string   `json:"state"`
	Outcome string   `json:"outcome,omitempty"`
	Payout  int      `json:"payout,omitempty"`
}

// Error reports a rejected message. The connection stays open; the
// client's last acknowledged state is still authoritative.
type Error struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}
