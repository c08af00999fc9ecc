package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/cardtable/blackjack/internal/canvas"
	"github.com/cardtable/blackjack/internal/game"
	"github.com/cardtable/blackjack/internal/input"
)

const (
	ticksPerSecond = 30
	maxLogEntries  = 200
	buzzFlashTicks = 8
)

// tickMsg drives the fixed-rate update loop. All game state advances on
// ticks; key events only accumulate into the pending button mask.
type tickMsg time.Time

// Model is the Bubble Tea model for the card table session. It owns the
// game-select menu, the carried bankroll, and the active round if one is
// running.
type Model struct {
	logger *log.Logger

	rules game.Rules
	seed  int64
	bank  int

	games     []string
	menuIndex int
	round     *game.Round

	frame   uint64
	pending input.Mask
	tracker input.Tracker
	screen  *canvas.Canvas

	logViewport viewport.Model
	events      *eventLog

	width       int
	height      int
	initialized bool
	quitting    bool
}

// eventLog collects formatted game events for the log pane. It is held by
// pointer so the event bus and the model copy seen by Bubble Tea share it.
type eventLog struct {
	entries  []string
	buzzedAt uint64
	frame    *uint64
}

func (l *eventLog) OnEvent(event game.GameEvent) {
	if event.EventType() == game.EventTypeInvalidAction {
		l.buzzedAt = *l.frame
	}
	l.entries = append(l.entries, game.FormatEvent(event))
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
}

// NewModel creates the session shell. A seed of zero means each round
// derives its seed from the wall clock and the frame counter, matching how
// long a player lingered on the menu.
func NewModel(rules game.Rules, bank int, seed int64, logger *log.Logger) *Model {
	vp := viewport.New(40, game.ScreenH)
	vp.SetContent("")

	m := &Model{
		logger:      logger.WithPrefix("tui"),
		rules:       rules,
		seed:        seed,
		bank:        bank,
		games:       []string{"Blackjack"},
		screen:      canvas.New(game.ScreenW, game.ScreenH),
		logViewport: vp,
		events:      &eventLog{},
	}
	m.events.frame = &m.frame
	return m
}

// Bank returns the player's current bankroll. After the program exits it
// reflects the settled balance carried out of the last round.
func (m *Model) Bank() int { return m.bank }

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/ticksPerSecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.initialized = true

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// A force-quit can land mid-round; carry out the chips the
			// player actually holds, not the pre-round balance.
			if m.round != nil {
				m.bank = m.round.Bank()
			}
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
		if button, ok := keyButton(msg); ok {
			m.pending = m.pending.With(button)
		}

	case tickMsg:
		return m.advance()
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// advance runs one fixed-rate frame: it converts the keys pressed since the
// last tick into an input snapshot, steps the menu or the active round, and
// schedules the next tick.
func (m *Model) advance() (tea.Model, tea.Cmd) {
	m.frame++
	snapshot := m.tracker.Capture(m.pending)
	m.pending = 0

	if m.round == nil {
		if done := m.updateMenu(snapshot); done {
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
		return m, tick()
	}

	bank, done := m.round.Update(snapshot)
	if done {
		m.bank = bank
		m.round = nil
		m.tracker.Reset()
		m.logger.Info("returned to menu", "bank", m.bank)
	}
	return m, tick()
}

func (m *Model) updateMenu(snapshot input.Snapshot) bool {
	switch {
	case snapshot.Tapped(input.Up):
		m.menuIndex = (m.menuIndex + len(m.games) - 1) % len(m.games)
	case snapshot.Tapped(input.Down):
		m.menuIndex = (m.menuIndex + 1) % len(m.games)
	case snapshot.Tapped(input.Confirm):
		m.startRound()
	case snapshot.Tapped(input.Cancel):
		return true
	}
	return false
}

func (m *Model) startRound() {
	seed := m.seed
	if seed == 0 {
		seed = time.Now().UnixNano() + int64(m.frame)
	}
	m.round = game.NewRound(m.rules, seed, m.bank, m.logger)
	m.round.Events().Subscribe(m.events)
	m.tracker.Reset()
	m.logger.Info("round started", "game", m.games[m.menuIndex], "seed", seed, "bank", m.bank)
}

// keyButton maps terminal keys onto the six-button layout. Arrow keys move,
// enter or x confirms, escape or z cancels.
func keyButton(msg tea.KeyMsg) (input.Button, bool) {
	switch msg.String() {
	case "up":
		return input.Up, true
	case "down":
		return input.Down, true
	case "left":
		return input.Left, true
	case "right":
		return input.Right, true
	case "enter", " ", "x":
		return input.Confirm, true
	case "esc", "z":
		return input.Cancel, true
	}
	return 0, false
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.initialized {
		return "Loading..."
	}
	if m.round == nil {
		return m.menuView()
	}
	return m.tableView()
}

func (m *Model) menuView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("CARD TABLE"))
	b.WriteString("\n\n")
	for i, name := range m.games {
		if i == m.menuIndex {
			b.WriteString(MenuCursorStyle.Render("> " + name))
		} else {
			b.WriteString(MenuItemStyle.Render("  " + name))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(BankStyle.Render(fmt.Sprintf("Bank: $%d", m.bank)))
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("↑/↓ select · enter play · esc quit"))
	return b.String()
}

func (m *Model) tableView() string {
	m.screen.Clear()
	m.round.Draw(m.screen)
	table := m.screen.String()

	logWidth := m.width - game.ScreenW - 6
	if logWidth < 16 {
		return table
	}
	m.logViewport.Width = logWidth
	m.logViewport.Height = game.ScreenH - 2
	m.logViewport.SetContent(LogStyle.Render(strings.Join(m.events.entries, "\n")))
	m.logViewport.GotoBottom()

	logPane := PaneBorderStyle.Render(m.logViewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, table, " ", logPane)

	if m.events.buzzedAt > 0 && m.frame-m.events.buzzedAt < buzzFlashTicks {
		body = lipgloss.JoinVertical(lipgloss.Left, body, BuzzStyle.Render("✗ can't do that"))
	}
	return body
}
