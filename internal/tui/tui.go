package tui

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Model is the Bubble Tea model for a local blackjack table. It owns
// the game and translates key presses into game actions; everything on
// screen is re-derived from the game on each View call.
type Model struct {
	game   *game.Game
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	betInput    textinput.Model

	// State
	gameLog  []string
	betting  bool // bet input has focus
	errLine  string
	quitting bool

	// Dimensions
	width       int
	height      int
	initialized bool
}

// New creates a model owning a fresh game. Game options are passed
// through, so table rules come from the caller.
func New(rng *rand.Rand, logger *log.Logger, opts ...game.Option) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "bet amount"
	ti.CharLimit = 6
	ti.Width = 20
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "bet> "

	m := &Model{
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		betInput:    ti,
		gameLog:     []string{},
	}
	opts = append(opts, game.WithLogger(logger), game.WithEventHandler(m.handleEvent))
	m.game = game.New(rng, opts...)
	return m
}

// Game exposes the underlying game, mainly for tests
func (m *Model) Game() *game.Game {
	return m.game
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// handleEvent appends a log line for each game event. Events arrive
// synchronously from actions taken inside Update.
func (m *Model) handleEvent(e game.Event) {
	switch ev := e.(type) {
	case game.CardDealtEvent:
		who := "you"
		if ev.Hand.IsDealer() {
			who = "dealer"
		}
		if ev.Card.IsHoleCard() {
			m.appendLog(fmt.Sprintf("%s draws a card face down", who))
		} else {
			m.appendLog(fmt.Sprintf("%s drew %s", who, ev.Card))
		}
	case game.DealerRevealEvent:
		m.appendLog(fmt.Sprintf("dealer shows %s", ev.Dealer))
	case game.HandResolvedEvent:
		switch ev.Outcome {
		case game.OutcomePush:
			m.appendLog(fmt.Sprintf("push, %d returned", ev.Amount))
		case game.OutcomeLoss, game.OutcomeBust, game.OutcomeSurrender:
			m.appendLog(fmt.Sprintf("%s: %s", ev.Outcome, ev.Hand))
		default:
			m.appendLog(fmt.Sprintf("%s pays %d", ev.Outcome, ev.Amount))
		}
	case game.RoundSettledEvent:
		m.appendLog(fmt.Sprintf("round over, holdings %d", ev.Holdings))
	}
}

func (m *Model) appendLog(line string) {
	m.gameLog = append(m.gameLog, line)
	m.logViewport.SetContent(GameLogStyle.Render(strings.Join(m.gameLog, "\n")))
	m.logViewport.GotoBottom()
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 4
		m.logViewport.Height = max(msg.Height-14, 3)
		m.initialized = true

	case tea.KeyMsg:
		if key := msg.String(); key == "ctrl+c" {
			return m.quit()
		}
		if m.betting {
			return m.updateBetting(msg)
		}
		return m.updatePlaying(msg)
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.game.Quit()
	m.quitting = true
	return m, tea.Sequence(tea.ClearScreen, tea.Quit)
}

// updateBetting handles keys while the bet input has focus
func (m *Model) updateBetting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.betting = false
		m.betInput.Blur()
		return m, nil
	case "enter":
		amount, err := strconv.Atoi(strings.TrimSpace(m.betInput.Value()))
		if err != nil {
			m.errLine = "bet must be a number"
			return m, nil
		}
		if err := m.game.SetBet(amount); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		m.errLine = ""
		m.betting = false
		m.betInput.Blur()
		m.betInput.SetValue("")
		m.appendLog(fmt.Sprintf("next bet set to %d", amount))
		return m, nil
	}

	var cmd tea.Cmd
	m.betInput, cmd = m.betInput.Update(msg)
	return m, cmd
}

// updatePlaying handles single-key table actions
func (m *Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errLine = ""

	switch msg.String() {
	case "q", "esc":
		return m.quit()

	case "b":
		if m.game.State() == game.StatePregame || m.game.State() == game.StatePostgame {
			m.betting = true
			m.betInput.Focus()
			return m, textinput.Blink
		}
		m.errLine = "bets change between rounds"

	case "d":
		var err error
		if m.game.State() == game.StatePregame {
			err = m.game.Start()
		} else {
			err = m.game.Deal()
		}
		m.reportError(err)

	case "a":
		if m.game.State() == game.StateBuying {
			m.game.AddChips(game.DefaultChips)
			m.appendLog(fmt.Sprintf("bought %d more chips", game.DefaultChips))
		}

	case "h":
		m.withActiveHand(m.game.Hit)
	case "s":
		m.withActiveHand(m.game.Stand)
	case "u":
		m.withActiveHand(m.game.Double)
	case "p":
		m.withActiveHand(m.game.Split)
	case "r":
		m.withActiveHand(m.game.Surrender)
	}

	return m, nil
}

func (m *Model) withActiveHand(action func(*game.Hand) error) {
	hand := m.activeHand()
	if hand == nil {
		m.errLine = "no hand to play"
		return
	}
	m.reportError(action(hand))
}

func (m *Model) reportError(err error) {
	if err != nil {
		m.errLine = err.Error()
	}
}

// activeHand returns the first hand still awaiting a decision
func (m *Model) activeHand() *game.Hand {
	for _, h := range m.game.Hands() {
		if h.IsPlayable() {
			return h
		}
	}
	return nil
}

// View renders the table
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" BLACKJACK "))
	b.WriteString("\n\n")

	if dealer := m.game.DealerHand(); dealer != nil {
		b.WriteString(InfoStyle.Render("dealer  "))
		b.WriteString(m.renderHand(dealer))
		b.WriteString("\n")
	}

	active := m.activeHand()
	for i, h := range m.game.Hands() {
		marker := "        "
		if h == active {
			marker = ActiveHandStyle.Render("  play> ")
		} else if i > 0 || len(m.game.Hands()) > 1 {
			marker = fmt.Sprintf("  hand%d ", i+1)
		}
		b.WriteString(marker)
		b.WriteString(m.renderHand(h))
		if h.Bet() > 0 {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("  bet %d", h.Bet())))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(HandInfoStyle.Render(fmt.Sprintf("holdings %d", m.game.Player().Holdings())))
	b.WriteString(InfoStyle.Render(fmt.Sprintf("  next bet %d  shoe %d", m.game.NextBet(), m.game.Shoe().Remaining())))
	b.WriteString("\n")
	b.WriteString(ActionsStyle.Render(m.hint()))
	b.WriteString("\n")

	if m.errLine != "" {
		b.WriteString(ErrorStyle.Render(m.errLine))
		b.WriteString("\n")
	}
	if m.betting {
		b.WriteString(m.betInput.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.logViewport.View())
	return b.String()
}

// renderHand colors each card by suit and shows the running score
func (m *Model) renderHand(h *game.Hand) string {
	var parts []string
	for _, c := range h.Cards() {
		switch {
		case c.IsHoleCard():
			parts = append(parts, c.String())
		case c.IsRed():
			parts = append(parts, RedCardStyle.Render(c.String()))
		default:
			parts = append(parts, BlackCardStyle.Render(c.String()))
		}
	}
	score := h.Score()
	if h.HasHoleCard() {
		score = h.VisibleScore()
	}
	return fmt.Sprintf("%s (%d)", strings.Join(parts, " "), score)
}

// hint lists the keys that make sense in the current state
func (m *Model) hint() string {
	switch m.game.State() {
	case game.StatePregame:
		return "[d]eal  [b]et  [q]uit"
	case game.StatePostgame:
		return "[d]eal  [b]et  [q]uit"
	case game.StateBuying:
		return "[a]dd chips  [q]uit"
	case game.StatePlayerTurn:
		hint := "[h]it  [s]tand"
		if hand := m.activeHand(); hand != nil && hand.State() == game.HandPair {
			hint += "  do[u]ble  su[r]render"
			if hand.CanSplit() {
				hint += "  s[p]lit"
			}
		}
		return hint + "  [q]uit"
	default:
		return "[q]uit"
	}
}
