package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typeshi/internal/model"
	"github.com/verte-zerg/typeshi/internal/stats"
)

func fakeLoader(calls *[]string) Loader {
	return func(_ context.Context, cfg model.StatsConfig) (stats.Report, error) {
		*calls = append(*calls, cfg.Mode)
		attempts := []model.Attempt{
			{RunID: "r1", At: time.Unix(1700000000, 0), Mode: "alphas", Tier: "short", Stage: 1, Total: 26, Accuracy: 90, AccuracyTarget: 70, Outcome: model.OutcomeAdvanced, Sequence: "jjj"},
		}
		return stats.Report{Attempts: attempts, Summaries: stats.Summarize(attempts), Runs: 1}, nil
	}
}

func TestViewShowsCardsAndRows(t *testing.T) {
	var calls []string
	m := NewModelWithLoader(fakeLoader(&calls), model.StatsConfig{})
	view := m.View()
	for _, needle := range []string{"all modes", "Runs", "90.0%", "2/26", "advanced"} {
		if !strings.Contains(view, needle) {
			t.Fatalf("view missing %q:\n%s", needle, view)
		}
	}
}

func TestModeFilterCycles(t *testing.T) {
	var calls []string
	m := NewModelWithLoader(fakeLoader(&calls), model.StatsConfig{})
	for i := 0; i < 5; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	}
	want := []string{"", "alphas", "alphanumeric", "symbols", "all", ""}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected loader calls: %q", calls)
	}
}

func TestViewShowsLoadError(t *testing.T) {
	m := NewModelWithLoader(func(context.Context, model.StatsConfig) (stats.Report, error) {
		return stats.Report{}, errors.New("boom")
	}, model.StatsConfig{Mode: "symbols"})
	if !strings.Contains(m.View(), "failed to load stats: boom") {
		t.Fatalf("expected error in view")
	}
}

func TestAccuracyChartFitsWidth(t *testing.T) {
	attempts := make([]model.Attempt, 0, 50)
	for i := 0; i < 50; i++ {
		attempts = append(attempts, model.Attempt{Accuracy: 40 + i, AccuracyTarget: 70, Outcome: model.OutcomeHeld})
	}
	out := renderAccuracyChart(attempts, 30)
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected chart output")
	}
}
