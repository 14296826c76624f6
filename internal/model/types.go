// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Mode           string
	Tier           string
	AccuracyTarget int
	PauseMs        int
	Seed           int64
	History        bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode   string
	Since  *time.Time
	Last   int
	Window int
}

// Attempt records one completed or skipped practice sequence.
type Attempt struct {
	RunID          string
	At             time.Time
	Mode           string
	Tier           string
	AccuracyTarget int
	// Stage is the number of unlocked chars when the attempt finished.
	Stage    int
	Total    int
	Number   int
	Accuracy int
	Outcome  string
	Sequence string
}

// Attempt outcomes as stored.
const (
	OutcomeHeld     = "held"
	OutcomeAdvanced = "advanced"
	OutcomeMastered = "mastered"
	OutcomeSkipped  = "skipped"
)

// ModeSummary aggregates attempts of one mode for reporting.
type ModeSummary struct {
	Mode         string
	Attempts     int
	Runs         int
	Unlocks      int
	Skips        int
	HighestStage int
	Total        int
	MeanAccuracy float64
	Accuracies   []float64
	LastAt       time.Time
}
