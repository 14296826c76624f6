package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typeshi/internal/charset"
	"github.com/verte-zerg/typeshi/internal/engine"
)

const masteredText = "All characters mastered! Great job!"

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	activeOptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	optStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	metStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
)

// Model implements the Bubble Tea practice UI. It forwards key events to the
// engine and renders the engine snapshot.
type Model struct {
	engine *engine.Engine
	sched  *Scheduler
	keys   keyMap
	help   help.Model

	width  int
	height int
}

// NewModel constructs a practice TUI model. sched must be the scheduler the
// engine was built with.
func NewModel(eng *engine.Engine, sched *Scheduler) *Model {
	return &Model{
		engine: eng,
		sched:  sched,
		keys:   newKeyMap(),
		help:   help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case pauseElapsedMsg:
		m.sched.fire(msg.id)
		return m, m.sched.drain()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
		return m, m.sched.drain()
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	settings := m.engine.Settings()
	var err error
	switch {
	case key.Matches(msg, m.keys.Mode):
		err = m.engine.OnModeSelect(charset.NextMode(settings.Mode))
	case key.Matches(msg, m.keys.Tier):
		err = m.engine.OnTierSelect(charset.NextTier(settings.Tier))
	case key.Matches(msg, m.keys.Accuracy):
		err = m.engine.OnAccuracyTargetSelect(charset.NextAccuracyTarget(settings.AccuracyTarget))
	case key.Matches(msg, m.keys.Reset):
		m.engine.OnReset()
	case key.Matches(msg, m.keys.Skip):
		m.engine.OnSkip()
	default:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyDelete:
			m.engine.OnBackspace()
		case tea.KeySpace:
			m.engine.OnCharacterKey(' ')
		case tea.KeyRunes:
			if msg.Alt {
				return
			}
			for _, r := range msg.Runes {
				m.engine.OnCharacterKey(r)
			}
		}
	}
	if err != nil {
		logErrf("failed to change option: %v\n", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.engine.Snapshot()
	header := renderOptions(snap.Settings)
	content := renderSequence(snap, m.contentWidth())
	status := renderStatus(snap)
	helpLine := footerStyle.Render(m.help.View(m.keys))
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{header, "", content, "", status, helpLine}, "\n")
	}
	block := lipgloss.JoinVertical(lipgloss.Center, content, "", status)
	if m.height < 5 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
	}
	top := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Top, header)
	body := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, block)
	bottom := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Bottom, helpLine)
	return top + "\n" + body + "\n" + bottom
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(1, int(float64(m.width)*0.70))
}

func renderSequence(snap engine.Snapshot, width int) string {
	if snap.Mastered {
		return correctStyle.Render(masteredText)
	}
	return wrapCells(buildCells(snap.Marks), width)
}

func renderOptions(s engine.Settings) string {
	modes := make([]string, 0, len(charset.Modes()))
	for _, mode := range charset.Modes() {
		modes = append(modes, option(string(mode), mode == s.Mode))
	}
	tiers := make([]string, 0, len(charset.Tiers()))
	for _, tier := range charset.Tiers() {
		tiers = append(tiers, option(string(tier), tier == s.Tier))
	}
	target := activeOptStyle.Render(fmt.Sprintf("%d%%", s.AccuracyTarget))
	return strings.Join([]string{
		strings.Join(modes, " "),
		strings.Join(tiers, " "),
		optStyle.Render("target ") + target,
	}, optStyle.Render("  |  "))
}

func option(label string, active bool) string {
	if active {
		return activeOptStyle.Render(label)
	}
	return optStyle.Render(label)
}

func renderStatus(snap engine.Snapshot) string {
	attempts := fmt.Sprintf("Attempts %d/%d", snap.Attempts, snap.MinAttempts)
	if snap.Attempts >= snap.MinAttempts {
		attempts = metStyle.Render(attempts)
	} else {
		attempts = footerStyle.Render(attempts)
	}
	accuracy := fmt.Sprintf("Accuracy %d%%", snap.Accuracy)
	if snap.Accuracy >= snap.Settings.AccuracyTarget {
		accuracy = metStyle.Render(accuracy)
	} else {
		accuracy = footerStyle.Render(accuracy)
	}
	mastered := fmt.Sprintf("Mastered %s", snap.Ratio)
	if snap.Skipped > 0 {
		mastered += fmt.Sprintf(" (%d skipped)", snap.Skipped)
	}
	segments := []string{
		accuracy,
		attempts,
		footerStyle.Render(mastered),
		footerStyle.Render("Chars " + string(snap.Unlocked)),
	}
	return strings.Join(segments, "  ")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
