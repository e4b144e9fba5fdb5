// Package tui is the terminal front end for a round machine.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/dicepoker/internal/round"
	"github.com/lox/dicepoker/internal/save"
)

const (
	sidebarWidth  = 30
	historyHeight = 6
	historyLimit  = 200
)

// Options configures the front end.
type Options struct {
	FPS          int
	Wager        int
	WagerStep    int
	BigWagerStep int
}

type frameMsg time.Time

// Model is the Bubble Tea model for a game at one table.
type Model struct {
	machine *round.Machine
	store   *save.Store
	logger  *log.Logger
	view    TableView

	settings save.Settings
	keys     keyMap
	help     help.Model
	history  viewport.Model

	historyLines []string

	wager   int
	oneRoll bool
	allRed  bool
	step    int
	bigStep int

	frame     time.Duration
	lastFrame time.Time

	notice     string
	savedRound int

	width    int
	height   int
	quitting bool
}

// New creates a model for machine. The store receives the balance after
// every round, after settings change and on quit.
func New(machine *round.Machine, store *save.Store, settings save.Settings, opts Options, logger *log.Logger) *Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	rules := machine.Rules()

	h := help.New()
	h.ShowAll = settings.ShowKeyLegend

	m := &Model{
		machine: machine,
		store:   store,
		logger:  logger.WithPrefix("tui"),
		view: TableView{
			Table:  machine.Table(),
			Layout: machine.Layout(),
			Red:    rules.RedFaces,
		},
		settings: settings,
		keys:     newKeyMap(),
		help:     h,
		history:  viewport.New(sidebarWidth, historyHeight),
		step:     max(opts.WagerStep, 1),
		bigStep:  max(opts.BigWagerStep, 1),
		frame:    time.Second / time.Duration(fps),
	}
	m.wager = m.clampWager(opts.Wager)
	if last := machine.LastResult(); last != nil {
		m.savedRound = last.Round
	}
	return m
}

// Init starts the frame clock.
func (m *Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		now := time.Time(msg)
		dt := m.frame.Seconds()
		if !m.lastFrame.IsZero() {
			dt = now.Sub(m.lastFrame).Seconds()
		}
		m.lastFrame = now
		m.advance(dt)
		return m, m.nextFrame()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

// advance ticks the machine and persists the balance once per finished round.
func (m *Model) advance(dt float64) {
	m.machine.Tick(dt)

	last := m.machine.LastResult()
	if last == nil || last.Round == m.savedRound {
		return
	}
	m.savedRound = last.Round
	m.addHistory(historyLine(*last))
	m.persist()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	phase := m.machine.Phase()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.persist()
		return tea.Quit

	case key.Matches(msg, m.keys.Roll):
		m.primaryAction()

	case key.Matches(msg, m.keys.Hold):
		i := int(msg.String()[0] - '1')
		if err := m.machine.ToggleHold(i); err != nil {
			m.logger.Debug("Hold ignored", "die", i, "error", err)
		}

	case key.Matches(msg, m.keys.WagerDown) && phase.CanStart():
		m.adjustWager(-m.step)
	case key.Matches(msg, m.keys.WagerUp) && phase.CanStart():
		m.adjustWager(m.step)
	case key.Matches(msg, m.keys.BigDown) && phase.CanStart():
		m.adjustWager(-m.bigStep)
	case key.Matches(msg, m.keys.BigUp) && phase.CanStart():
		m.adjustWager(m.bigStep)

	case key.Matches(msg, m.keys.OneRoll) && phase.CanStart():
		m.oneRoll = !m.oneRoll
		m.notice = ""
	case key.Matches(msg, m.keys.AllRed) && phase.CanStart():
		m.allRed = !m.allRed
		m.notice = ""

	case key.Matches(msg, m.keys.Legend):
		m.settings.ShowKeyLegend = !m.settings.ShowKeyLegend
		m.help.ShowAll = m.settings.ShowKeyLegend
		m.persist()
	}
	return nil
}

// primaryAction rolls, rolls again or starts a new round depending on phase.
func (m *Model) primaryAction() {
	switch phase := m.machine.Phase(); {
	case phase.CanStart():
		err := m.machine.RequestStart(m.wager, m.oneRoll, m.allRed)
		if err != nil {
			m.notice = startError(err, m.wager <= m.machine.Credit())
			m.logger.Debug("Start refused", "wager", m.wager, "error", err)
			return
		}
		m.notice = ""
	case phase == round.Hold:
		if err := m.machine.RequestReroll(); err != nil {
			m.logger.Warn("Reroll refused", "error", err)
		}
	}
}

func (m *Model) adjustWager(delta int) {
	m.wager = m.clampWager(m.wager + delta)
	m.notice = ""
}

func (m *Model) clampWager(w int) int {
	rules := m.machine.Rules()
	return min(max(w, rules.MinWager), rules.MaxWager)
}

func (m *Model) persist() {
	if m.store == nil {
		return
	}
	st := save.State{Credit: m.machine.Credit(), Settings: m.settings}
	if err := m.store.Save(st); err != nil {
		m.logger.Error("Failed to save", "error", err)
		m.notice = "Could not write save file."
	}
}

func (m *Model) addHistory(line string) {
	m.historyLines = append(m.historyLines, line)
	if len(m.historyLines) > historyLimit {
		m.historyLines = m.historyLines[len(m.historyLines)-historyLimit:]
	}
	m.history.SetContent(strings.Join(m.historyLines, "\n"))
	m.history.GotoBottom()
}

func historyLine(r round.Result) string {
	net := fmt.Sprintf("%+d", r.Net())
	if r.Net() >= 0 {
		net = SuccessStyle.Render(net)
	} else {
		net = ErrorStyle.Render(net)
	}
	return fmt.Sprintf("#%d %s %s", r.Round, r.FinalHand.Category.Label(), net)
}

// Wager returns the wager the next round will be started with.
func (m *Model) Wager() int { return m.wager }

// Settings returns the current persisted settings.
func (m *Model) Settings() save.Settings { return m.settings }

// Notice returns the last message raised by an input, if any.
func (m *Model) Notice() string { return m.notice }

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.machine.Snapshot()
	tableWidth := maxTableWidth
	if m.width > 0 {
		tableWidth = m.width - sidebarWidth - 6
	}

	table := TablePaneStyle.Render(m.view.Render(snap.Dice, tableWidth))
	sidebar := PaneStyle.Width(sidebarWidth).Render(m.renderSidebar(snap))
	top := lipgloss.JoinHorizontal(lipgloss.Top, table, sidebar)

	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("Dice Poker"),
		top,
		m.renderStatus(snap),
		m.help.View(m.keys),
	)
}

func (m *Model) renderSidebar(snap round.Snapshot) string {
	var b strings.Builder
	rules := m.machine.Rules()
	stake := rules.SideBetStake(m.wager)

	b.WriteString(CreditStyle.Render(fmt.Sprintf("Credit: %d", snap.Credit)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Wager: %d (%d-%d)\n", m.wager, rules.MinWager, rules.MaxWager)
	fmt.Fprintf(&b, "%s One Roll (%d)\n", checkbox(m.oneRoll), stake)
	fmt.Fprintf(&b, "%s All Red (%d)\n", checkbox(m.allRed), stake)
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Round %d, %s", snap.Round, snap.Phase)))
	b.WriteString("\n\n")
	b.WriteString(m.history.View())
	return b.String()
}

func (m *Model) renderStatus(snap round.Snapshot) string {
	status, result := Status(snap)
	var lines []string
	if m.notice != "" {
		lines = append(lines, WarningStyle.Render(m.notice))
	} else if status != "" {
		lines = append(lines, StatusStyle.Render(status))
	}
	if result != "" {
		lines = append(lines, ResultStyle.Render(result))
	}
	if len(lines) == 0 {
		lines = append(lines, InfoStyle.Render("Press space to roll."))
	}
	return strings.Join(lines, "\n")
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
