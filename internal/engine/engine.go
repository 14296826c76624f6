// Package engine drives a practice run: it owns progression and scoring for
// the active settings and exposes an event input port plus a render snapshot.
package engine

import (
	"fmt"
	"time"

	"github.com/verte-zerg/typeshi/internal/charset"
	"github.com/verte-zerg/typeshi/internal/generator"
	"github.com/verte-zerg/typeshi/internal/model"
	"github.com/verte-zerg/typeshi/internal/progress"
	"github.com/verte-zerg/typeshi/internal/scoring"
)

// DefaultPause is the delay between finishing a sequence and the next one.
const DefaultPause = 500 * time.Millisecond

// Scheduler runs a task after a delay. The returned func cancels the task if
// it has not run yet. Tasks must run on the goroutine that owns the engine.
type Scheduler interface {
	After(d time.Duration, task func()) (cancel func())
}

// Recorder receives every finished or skipped attempt.
type Recorder interface {
	RecordAttempt(model.Attempt)
}

// Settings are the user-selected options.
type Settings struct {
	Mode           charset.Mode
	Tier           charset.Tier
	AccuracyTarget int
}

// DefaultSettings returns alphas, short, 70%.
func DefaultSettings() Settings {
	return Settings{
		Mode:           charset.ModeAlphas,
		Tier:           charset.TierShort,
		AccuracyTarget: charset.DefaultAccuracyTarget,
	}
}

// Options configure a new Engine.
type Options struct {
	Settings  Settings
	Pause     time.Duration
	Generator *generator.Generator
	Scheduler Scheduler
	Recorder  Recorder
}

// Snapshot is everything a renderer needs after a mutation.
type Snapshot struct {
	Settings    Settings
	Marks       []scoring.Mark
	Accuracy    int
	Attempts    int
	MinAttempts int
	Unlocked    []rune
	Ratio       string
	Skipped     int
	Mastered    bool
	Paused      bool
}

// Engine is a single-owner practice state machine.
type Engine struct {
	settings Settings
	set      charset.Set
	band     charset.Band

	tracker *progress.Tracker
	session *scoring.Session
	gen     *generator.Generator

	sched    Scheduler
	recorder Recorder
	pause    time.Duration

	paused     bool
	mastered   bool
	cancel     func()
	generation uint64
}

// New validates opts.Settings and starts the first sequence.
func New(opts Options) (*Engine, error) {
	if opts.Scheduler == nil {
		return nil, fmt.Errorf("engine requires a scheduler")
	}
	if opts.Generator == nil {
		opts.Generator = generator.New()
	}
	if opts.Pause < 0 {
		return nil, fmt.Errorf("pause must be >= 0, got %s", opts.Pause)
	}
	e := &Engine{
		gen:      opts.Generator,
		sched:    opts.Scheduler,
		recorder: opts.Recorder,
		pause:    opts.Pause,
		tracker:  &progress.Tracker{},
	}
	if err := e.apply(opts.Settings); err != nil {
		return nil, err
	}
	return e, nil
}

// OnCharacterKey feeds a typed character. It is dropped while paused or
// after mastery.
func (e *Engine) OnCharacterKey(r rune) {
	if e.paused || e.mastered {
		return
	}
	if e.session.TypeChar(r) {
		e.completeSequence()
	}
}

// OnBackspace erases the last typed character.
func (e *Engine) OnBackspace() {
	if e.paused || e.mastered {
		return
	}
	e.session.Backspace()
}

// OnModeSelect switches mode and restarts progression.
func (e *Engine) OnModeSelect(mode charset.Mode) error {
	next := e.settings
	next.Mode = mode
	return e.apply(next)
}

// OnTierSelect switches tier and restarts progression.
func (e *Engine) OnTierSelect(tier charset.Tier) error {
	next := e.settings
	next.Tier = tier
	return e.apply(next)
}

// OnAccuracyTargetSelect switches the accuracy target and restarts progression.
func (e *Engine) OnAccuracyTargetSelect(percent int) error {
	next := e.settings
	next.AccuracyTarget = percent
	return e.apply(next)
}

// OnReset restarts progression for the current settings.
func (e *Engine) OnReset() {
	e.cancelPending()
	// Settings were validated when applied.
	_ = e.tracker.Initialize(e.set.Order)
	e.mastered = false
	e.nextSequence()
}

// OnSkip force-unlocks the next character. It is recorded as a skip, never
// as an earned unlock.
func (e *Engine) OnSkip() {
	if e.mastered {
		return
	}
	e.cancelPending()
	stage := e.tracker.UnlockedCount()
	attempts := e.tracker.Attempts()
	accuracy := e.tracker.Tally().Accuracy()
	if e.tracker.ForceAdvance() {
		e.record(model.Attempt{
			Stage:    stage,
			Number:   attempts,
			Accuracy: accuracy,
			Outcome:  model.OutcomeSkipped,
			Sequence: string(e.session.Target()),
		})
	}
	e.nextSequence()
}

// Snapshot projects the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Settings:    e.settings,
		Accuracy:    e.tracker.Tally().Accuracy(),
		Attempts:    e.tracker.Attempts(),
		MinAttempts: progress.MinAttemptsRequired(e.band),
		Unlocked:    e.tracker.Unlocked(),
		Ratio:       e.tracker.Ratio(),
		Skipped:     e.tracker.Skipped(),
		Mastered:    e.mastered,
		Paused:      e.paused,
	}
	if !e.mastered {
		snap.Marks = e.session.Classify()
	}
	return snap
}

// Settings returns the active settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

func (e *Engine) apply(s Settings) error {
	set, err := charset.Lookup(s.Mode)
	if err != nil {
		return err
	}
	band, err := charset.BandFor(s.Tier)
	if err != nil {
		return err
	}
	if !charset.ValidAccuracyTarget(s.AccuracyTarget) {
		return fmt.Errorf("unsupported accuracy target %d%%", s.AccuracyTarget)
	}
	if err := e.tracker.Initialize(set.Order); err != nil {
		return fmt.Errorf("mode %q: %w", s.Mode, err)
	}
	e.cancelPending()
	e.settings = s
	e.set = set
	e.band = band
	e.mastered = false
	e.nextSequence()
	return nil
}

func (e *Engine) completeSequence() {
	accuracy := e.session.Accuracy()
	number := e.tracker.Attempts() + 1
	stage := e.tracker.UnlockedCount()
	result := e.tracker.RecordAttemptCompletion(accuracy, e.settings.AccuracyTarget, e.band)
	e.record(model.Attempt{
		Stage:    stage,
		Number:   number,
		Accuracy: accuracy,
		Outcome:  result.String(),
		Sequence: string(e.session.Target()),
	})
	if result == progress.Mastered {
		e.mastered = true
		e.session = scoring.New(e.gen.Generate(nil, e.band), e.tracker.Tally())
		return
	}
	e.paused = true
	generation := e.generation
	e.cancel = e.sched.After(e.pause, func() {
		if generation != e.generation {
			return
		}
		e.nextSequence()
	})
}

func (e *Engine) nextSequence() {
	e.paused = false
	e.cancel = nil
	e.session = scoring.New(e.gen.Generate(e.tracker.Unlocked(), e.band), e.tracker.Tally())
}

func (e *Engine) cancelPending() {
	e.generation++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.paused = false
}

func (e *Engine) record(a model.Attempt) {
	if e.recorder == nil {
		return
	}
	a.Mode = string(e.settings.Mode)
	a.Tier = string(e.settings.Tier)
	a.AccuracyTarget = e.settings.AccuracyTarget
	a.Total = e.tracker.Total()
	e.recorder.RecordAttempt(a)
}
