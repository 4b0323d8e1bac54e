package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

// reapInterval is how often idle sessions are checked
const reapInterval = 30 * time.Second

// Server accepts WebSocket clients and gives each one its own table.
// Sessions are independent; the server only tracks them for shutdown
// and for reaping idle connections.
type Server struct {
	config     *Config
	upgrader   websocket.Upgrader
	sessions   map[*Session]bool
	register   chan *Session
	unregister chan *Session
	logger     *log.Logger
	clock      quartz.Clock
	mu         sync.RWMutex
	runOnce    sync.Once
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewServer creates a WebSocket blackjack server
func NewServer(config *Config, logger *log.Logger) *Server {
	return NewServerWithClock(config, logger, quartz.NewReal())
}

// NewServerWithClock creates a server with an injectable clock for the
// idle reaper
func NewServerWithClock(config *Config, logger *log.Logger, clock quartz.Clock) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions:   make(map[*Session]bool),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		logger:     logger.WithPrefix("server"),
		clock:      clock,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the WebSocket server
func (s *Server) Start() error {
	s.logger.Info("Starting WebSocket server", "addr", s.config.GetAddress())
	return http.ListenAndServe(s.config.GetAddress(), s.Handler())
}

// Handler returns the server's HTTP handler, for embedding in tests or
// an existing mux. The session lifecycle loop is started on first use,
// however many handlers are built.
func (s *Server) Handler() http.Handler {
	s.runOnce.Do(func() {
		go s.run()
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Stop stops the server and closes all sessions
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for session := range s.sessions {
		_ = session.Close()
	}
	s.mu.Unlock()

	return nil
}

// SessionCount returns the number of live sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// run handles session lifecycle and idle reaping
func (s *Server) run() {
	ticker := s.clock.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case session := <-s.register:
			s.mu.Lock()
			s.sessions[session] = true
			total := len(s.sessions)
			s.mu.Unlock()
			s.logger.Info("Client connected", "table", session.TableID(), "total", total)

		case session := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.sessions[session]; ok {
				delete(s.sessions, session)
				_ = session.Close()
			}
			total := len(s.sessions)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "table", session.TableID(), "total", total)

		case <-ticker.C:
			s.reapIdle()

		case <-s.ctx.Done():
			return
		}
	}
}

// reapIdle closes sessions that have gone quiet past the idle timeout.
// Only the connection is touched here; the session's read pump owns the
// game and quits it on its way out, refunding escrow like an explicit
// quit.
func (s *Server) reapIdle() {
	timeout := s.config.GetIdleTimeout()
	now := s.clock.Now()

	s.mu.RLock()
	var idle []*Session
	for session := range s.sessions {
		if now.Sub(session.IdleSince()) > timeout {
			idle = append(idle, session)
		}
	}
	s.mu.RUnlock()

	for _, session := range idle {
		s.logger.Info("Reaping idle session", "table", session.TableID(), "player", session.Name())
		_ = session.Close()
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	session := NewSession(conn, s.config.Table, s.clock, s.logger)
	s.register <- session
	session.Start()

	go func() {
		<-session.ctx.Done()
		select {
		case s.unregister <- session:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
