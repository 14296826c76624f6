package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/typeshi/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "typeshi.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListAttempts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(1700000000, 0)
	rows := []model.Attempt{
		{RunID: "r1", At: base, Mode: "alphas", Tier: "short", AccuracyTarget: 70, Stage: 1, Total: 26, Number: 1, Accuracy: 80, Outcome: model.OutcomeHeld, Sequence: "jj j"},
		{RunID: "r1", At: base.Add(time.Second), Mode: "alphas", Tier: "short", AccuracyTarget: 70, Stage: 1, Total: 26, Number: 3, Accuracy: 90, Outcome: model.OutcomeAdvanced, Sequence: "jjj"},
		{RunID: "r2", At: base.Add(2 * time.Second), Mode: "symbols", Tier: "long", AccuracyTarget: 90, Stage: 1, Total: 26, Number: 1, Accuracy: 40, Outcome: model.OutcomeHeld, Sequence: "!!!!!!!!"},
	}
	for _, a := range rows {
		if _, err := st.InsertAttempt(ctx, a); err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
	}

	all, err := st.ListAttempts(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(all))
	}
	if !all[1].At.Equal(rows[1].At) || all[1].Outcome != model.OutcomeAdvanced || all[1].Sequence != "jjj" {
		t.Fatalf("attempt did not round-trip: %+v", all[1])
	}

	alphas, err := st.ListAttempts(ctx, model.StatsConfig{Mode: "alphas"})
	if err != nil {
		t.Fatalf("list alphas: %v", err)
	}
	if len(alphas) != 2 {
		t.Fatalf("expected 2 alphas attempts, got %d", len(alphas))
	}

	since := base.Add(1500 * time.Millisecond)
	recent, err := st.ListAttempts(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 || recent[0].Mode != "symbols" {
		t.Fatalf("unexpected since filter result: %+v", recent)
	}

	last, err := st.ListAttempts(ctx, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 || last[0].Number != 3 {
		t.Fatalf("expected the two newest attempts, got %+v", last)
	}

	runs, err := st.CountRuns(ctx, "")
	if err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
}
