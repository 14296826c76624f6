// Package stats contains attempt history calculations and reporting.
package stats

import (
	"context"

	"github.com/verte-zerg/typeshi/internal/model"
	"github.com/verte-zerg/typeshi/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Attempts  []model.Attempt
	Summaries []model.ModeSummary
	Runs      int
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	attempts, err := st.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	runs, err := st.CountRuns(ctx, cfg.Mode)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Attempts:  attempts,
		Summaries: Summarize(attempts),
		Runs:      runs,
	}, nil
}
