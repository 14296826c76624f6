package tui

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typeshi/internal/model"
	"github.com/verte-zerg/typeshi/internal/store"
)

// HistoryRecorder appends finished attempts to the store. Each recorder is
// one practice run.
type HistoryRecorder struct {
	store *store.Store
	runID string
	now   func() time.Time
}

// NewHistoryRecorder starts a new run backed by st.
func NewHistoryRecorder(st *store.Store) *HistoryRecorder {
	return &HistoryRecorder{
		store: st,
		runID: uuid.NewString(),
		now:   time.Now,
	}
}

// RunID identifies the practice run.
func (r *HistoryRecorder) RunID() string {
	return r.runID
}

// RecordAttempt implements engine.Recorder. Failures are logged, not fatal.
func (r *HistoryRecorder) RecordAttempt(a model.Attempt) {
	a.RunID = r.runID
	a.At = r.now()
	if _, err := r.store.InsertAttempt(context.Background(), a); err != nil {
		logErrf("failed to save attempt: %v\n", err)
	}
}
