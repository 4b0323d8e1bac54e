package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/protocol"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tableid"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Session owns one client's table: a WebSocket connection and the game
// it plays against. All game access happens on the read pump goroutine,
// so the game itself needs no locking.
type Session struct {
	conn      *websocket.Conn
	send      chan []byte
	tableID   string
	game      *game.Game
	resolved  map[*game.Hand]resolution
	logger    *log.Logger
	clock     quartz.Clock
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	done      chan struct{}

	mu         sync.RWMutex
	name       string
	lastActive time.Time
}

// NewSession creates a session with a fresh game under the given table
// settings
func NewSession(conn *websocket.Conn, settings TableSettings, clock quartz.Clock, logger *log.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		conn:     conn,
		send:     make(chan []byte, 256),
		tableID:  tableid.New(),
		resolved: make(map[*game.Hand]resolution),
		clock:    clock,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	s.logger = logger.WithPrefix("session").With("table", s.tableID)
	s.game = game.New(randutil.NewFromTime(),
		game.WithDecks(settings.Decks),
		game.WithChips(settings.Chips),
		game.WithLimits(settings.MinBet, settings.MaxBet),
		game.WithLogger(s.logger),
		game.WithEventHandler(s.handleEvent),
	)
	s.lastActive = clock.Now()
	return s
}

// Start begins handling the connection
func (s *Session) Start() {
	go s.writePump()
	go s.readPump()
}

// Close closes the connection
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.send)
		err = s.conn.Close()
	})
	return err
}

// TableID returns the session's table identifier
func (s *Session) TableID() string {
	return s.tableID
}

// Name returns the player name set by Join, or "" before it
func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Done is closed once the read pump has exited and the game has been
// quit. After that the game is quiescent and safe to inspect.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// IdleSince returns the time of the last client message
func (s *Session) IdleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = s.clock.Now()
	s.mu.Unlock()
}

// handleEvent tracks round boundaries and settlements so snapshots can
// include outcomes. Called synchronously from game transitions.
func (s *Session) handleEvent(e game.Event) {
	switch ev := e.(type) {
	case game.StateChangedEvent:
		if ev.To == game.StateDealing {
			clear(s.resolved)
		}
	case game.HandResolvedEvent:
		s.resolved[ev.Hand] = resolution{outcome: ev.Outcome, payout: ev.Amount}
	}
}

// readPump handles incoming messages from the client. The game is only
// ever touched on this goroutine, including the final quit: whatever
// ends the session (client disconnect, quit message, the idle reaper
// closing the connection), escrow is refunded here before the pump
// exits.
func (s *Session) readPump() {
	defer func() {
		s.game.Quit()
		_ = s.Close()
		close(s.done)
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		s.touch()
		s.handleMessage(data)
	}
}

// writePump handles outgoing messages to the client
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// handleMessage dispatches one client message
func (s *Session) handleMessage(data []byte) {
	typ, err := protocol.PeekType(data)
	if err != nil {
		s.sendError(err.Error())
		return
	}
	s.logger.Debug("Received message", "type", typ, "player", s.Name())

	if typ != protocol.TypeJoin && s.Name() == "" {
		s.sendError("must join first")
		return
	}

	switch typ {
	case protocol.TypeJoin:
		var msg protocol.Join
		if err := protocol.Unmarshal(data, &msg); err != nil {
			s.sendError("failed to parse join message")
			return
		}
		s.handleJoin(msg)

	case protocol.TypeBet:
		var msg protocol.Bet
		if err := protocol.Unmarshal(data, &msg); err != nil {
			s.sendError("failed to parse bet message")
			return
		}
		if err := s.game.SetBet(msg.Amount); err != nil {
			s.sendError(err.Error())
			return
		}
		s.sendState()

	case protocol.TypeDeal:
		s.handleDeal()

	case protocol.TypeAction:
		var msg protocol.Action
		if err := protocol.Unmarshal(data, &msg); err != nil {
			s.sendError("failed to parse action message")
			return
		}
		s.handleAction(msg)

	case protocol.TypeBuyIn:
		var msg protocol.BuyIn
		if err := protocol.Unmarshal(data, &msg); err != nil {
			s.sendError("failed to parse buy-in message")
			return
		}
		if msg.Amount <= 0 {
			s.sendError("buy-in amount must be positive")
			return
		}
		s.game.AddChips(msg.Amount)
		s.sendState()

	case protocol.TypeQuit:
		s.game.Quit()
		s.sendState()
		_ = s.Close()

	default:
		s.sendError(fmt.Sprintf("unexpected message type %q", typ))
	}
}

func (s *Session) handleJoin(msg protocol.Join) {
	if msg.Name == "" {
		s.sendError("player name required")
		return
	}
	s.mu.Lock()
	s.name = msg.Name
	s.mu.Unlock()
	s.logger.Info("Player joined", "player", msg.Name)

	s.sendMessage(&protocol.Welcome{
		Type:     protocol.TypeWelcome,
		TableID:  s.tableID,
		Holdings: s.game.Player().Holdings(),
		MinBet:   s.game.MinimumBet(),
		MaxBet:   s.game.MaximumBet(),
	})
	s.sendState()
}

func (s *Session) handleDeal() {
	var err error
	if s.game.State() == game.StatePregame {
		err = s.game.Start()
	} else {
		err = s.game.Deal()
	}
	if err != nil {
		s.sendError(err.Error())
		return
	}
	s.sendState()
}

func (s *Session) handleAction(msg protocol.Action) {
	hands := s.game.Hands()
	if msg.Hand < 0 || msg.Hand >= len(hands) {
		s.sendError(fmt.Sprintf("no hand at index %d", msg.Hand))
		return
	}
	hand := hands[msg.Hand]

	var err error
	switch msg.Action {
	case protocol.ActionHit:
		err = s.game.Hit(hand)
	case protocol.ActionStand:
		err = s.game.Stand(hand)
	case protocol.ActionDouble:
		err = s.game.Double(hand)
	case protocol.ActionSplit:
		err = s.game.Split(hand)
	case protocol.ActionSurrender:
		err = s.game.Surrender(hand)
	default:
		s.sendError(fmt.Sprintf("unknown action %q", msg.Action))
		return
	}
	if err != nil {
		s.sendError(err.Error())
		return
	}
	s.sendState()
}

func (s *Session) sendState() {
	s.sendMessage(snapshot(s.game, s.resolved))
}

func (s *Session) sendError(message string) {
	s.sendMessage(&protocol.Error{Type: protocol.TypeError, Message: message})
}

func (s *Session) sendMessage(v interface{}) {
	data, err := protocol.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to marshal message", "error", err)
		return
	}

	// The reaper may close the channel while a message is in flight.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("Attempted to send on closed session", "error", r)
		}
	}()

	select {
	case s.send <- data:
	case <-s.ctx.Done():
	default:
		s.logger.Warn("Send buffer full, closing connection")
		_ = s.Close()
	}
}
