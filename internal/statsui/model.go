// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typeshi/internal/charset"
	"github.com/verte-zerg/typeshi/internal/model"
	"github.com/verte-zerg/typeshi/internal/stats"
	"github.com/verte-zerg/typeshi/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Loader fetches a report for a filter.
type Loader func(ctx context.Context, cfg model.StatsConfig) (stats.Report, error)

// Model implements the Bubble Tea stats UI.
type Model struct {
	load   Loader
	cfg    model.StatsConfig
	report stats.Report
	errMsg string

	attempts table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model backed by st.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	return NewModelWithLoader(func(ctx context.Context, cfg model.StatsConfig) (stats.Report, error) {
		return stats.BuildReport(ctx, st, cfg)
	}, cfg)
}

// NewModelWithLoader constructs a stats UI model with a custom loader.
func NewModelWithLoader(load Loader, cfg model.StatsConfig) *Model {
	m := &Model{
		load:     load,
		cfg:      cfg,
		attempts: table.New(
			table.WithColumns(attemptColumns()),
			table.WithFocused(true),
			table.WithHeight(12),
			table.WithWidth(96),
		),
	}
	m.refresh()
	return m
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
		m.attempts.SetWidth(msg.Width)
		m.attempts.SetHeight(max(3, msg.Height-8-chartHeight))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "m":
			m.cfg.Mode = nextModeFilter(m.cfg.Mode)
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.attempts, cmd = m.attempts.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	filter := m.cfg.Mode
	if filter == "" {
		filter = "all modes"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("typeshi stats · %s · m: mode filter · q: quit", filter)))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		return b.String()
	}
	b.WriteString(renderCards(m.report))
	b.WriteString("\n")
	if len(m.report.Attempts) > 0 {
		b.WriteString(renderAccuracyChart(m.report.Attempts, m.chartWidth()))
		b.WriteString("\n")
	}
	b.WriteString(m.attempts.View())
	return b.String()
}

func (m *Model) chartWidth() int {
	if m.width == 0 {
		return 60
	}
	return m.width - 2
}

func (m *Model) refresh() {
	report, err := m.load(context.Background(), m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load stats: %v", err)
		return
	}
	m.errMsg = ""
	m.report = report
	rows := make([]table.Row, 0, len(report.Attempts))
	for i := len(report.Attempts) - 1; i >= 0; i-- {
		rows = append(rows, table.Row(stats.AttemptRow(report.Attempts[i])))
	}
	m.attempts.SetRows(rows)
	m.attempts.GotoTop()
}

func attemptColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 16},
		{Title: "Mode", Width: 12},
		{Title: "Tier", Width: 6},
		{Title: "Stage", Width: 6},
		{Title: "Acc", Width: 5},
		{Title: "Target", Width: 6},
		{Title: "Outcome", Width: 9},
		{Title: "Sequence", Width: 22},
	}
}

func renderCards(report stats.Report) string {
	attempts, unlocks, skips, highest, total := 0, 0, 0, 0, 0
	var accSum float64
	for _, s := range report.Summaries {
		attempts += s.Attempts
		unlocks += s.Unlocks
		skips += s.Skips
		accSum += s.MeanAccuracy * float64(s.Attempts)
		if s.HighestStage > highest {
			highest, total = s.HighestStage, s.Total
		}
	}
	mean := 0.0
	if attempts > 0 {
		mean = accSum / float64(attempts)
	}
	cards := []string{
		metricCard("Runs", fmt.Sprintf("%d", report.Runs)),
		metricCard("Attempts", fmt.Sprintf("%d", attempts)),
		metricCard("Avg Accuracy", fmt.Sprintf("%.1f%%", mean)),
		metricCard("Unlocks", fmt.Sprintf("%d (+%d skipped)", unlocks, skips)),
		metricCard("Best Stage", fmt.Sprintf("%d/%d", highest, total)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

// nextModeFilter cycles "" (all) through every mode.
func nextModeFilter(current string) string {
	modes := charset.Modes()
	if current == "" {
		return string(modes[0])
	}
	for i, m := range modes {
		if string(m) == current && i+1 < len(modes) {
			return string(modes[i+1])
		}
	}
	return ""
}
