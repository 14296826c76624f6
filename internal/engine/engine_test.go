package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/typeshi/internal/charset"
	"github.com/verte-zerg/typeshi/internal/generator"
	"github.com/verte-zerg/typeshi/internal/model"
	"github.com/verte-zerg/typeshi/internal/scoring"
)

type fakeTask struct {
	delay     time.Duration
	run       func()
	cancelled bool
}

type fakeScheduler struct {
	tasks []*fakeTask
}

func (s *fakeScheduler) After(d time.Duration, task func()) func() {
	ft := &fakeTask{delay: d, run: task}
	s.tasks = append(s.tasks, ft)
	return func() { ft.cancelled = true }
}

// fire runs every queued task, cancelled or not, the way a timer that lost
// the race with cancel would.
func (s *fakeScheduler) fire(ignoreCancel bool) int {
	tasks := s.tasks
	s.tasks = nil
	ran := 0
	for _, ft := range tasks {
		if ft.cancelled && !ignoreCancel {
			continue
		}
		ft.run()
		ran++
	}
	return ran
}

type memRecorder struct {
	attempts []model.Attempt
}

func (r *memRecorder) RecordAttempt(a model.Attempt) {
	r.attempts = append(r.attempts, a)
}

func newEngine(t *testing.T, settings Settings) (*Engine, *fakeScheduler, *memRecorder) {
	t.Helper()
	sched := &fakeScheduler{}
	rec := &memRecorder{}
	e, err := New(Options{
		Settings:  settings,
		Pause:     DefaultPause,
		Generator: generator.NewWithSource(rand.NewSource(7)),
		Scheduler: sched,
		Recorder:  rec,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e, sched, rec
}

func target(snap Snapshot) []rune {
	out := make([]rune, len(snap.Marks))
	for i, m := range snap.Marks {
		out[i] = m.Char
	}
	return out
}

func typePerfect(e *Engine) {
	for _, r := range target(e.Snapshot()) {
		e.OnCharacterKey(r)
	}
}

func typeWrong(e *Engine) {
	for range target(e.Snapshot()) {
		e.OnCharacterKey('~')
	}
}

func TestInitialState(t *testing.T) {
	e, _, _ := newEngine(t, DefaultSettings())
	snap := e.Snapshot()
	if string(snap.Unlocked) != "j" {
		t.Fatalf("expected j unlocked, got %q", string(snap.Unlocked))
	}
	if snap.Ratio != "1/26" {
		t.Fatalf("expected ratio 1/26, got %s", snap.Ratio)
	}
	if len(snap.Marks) == 0 || snap.Marks[0].State != scoring.Current {
		t.Fatalf("expected a fresh sequence with cursor at 0")
	}
	if snap.Accuracy != 0 || snap.Attempts != 0 || snap.MinAttempts != 3 {
		t.Fatalf("unexpected counters: %+v", snap)
	}
}

func TestScenarioUnlocksSecondChar(t *testing.T) {
	e, sched, rec := newEngine(t, DefaultSettings())
	for i := 0; i < 3; i++ {
		typePerfect(e)
		if i < 2 {
			if snap := e.Snapshot(); snap.Attempts != i+1 || snap.Accuracy != 100 {
				t.Fatalf("after attempt %d: attempts=%d accuracy=%d", i+1, snap.Attempts, snap.Accuracy)
			}
		}
		if !e.Snapshot().Paused {
			t.Fatalf("expected pause after completing a sequence")
		}
		if sched.tasks[0].delay != DefaultPause {
			t.Fatalf("expected pause of %s, got %s", DefaultPause, sched.tasks[0].delay)
		}
		sched.fire(false)
	}
	snap := e.Snapshot()
	if string(snap.Unlocked) != "jf" {
		t.Fatalf("expected jf unlocked, got %q", string(snap.Unlocked))
	}
	if snap.Attempts != 0 || snap.Accuracy != 0 {
		t.Fatalf("expected counters reset after unlock, got attempts=%d accuracy=%d", snap.Attempts, snap.Accuracy)
	}
	if len(rec.attempts) != 3 || rec.attempts[2].Outcome != model.OutcomeAdvanced {
		t.Fatalf("expected third attempt recorded as advanced: %+v", rec.attempts)
	}
	if rec.attempts[0].Mode != "alphas" || rec.attempts[0].Total != 26 {
		t.Fatalf("recorder did not receive settings: %+v", rec.attempts[0])
	}
}

func TestLowAccuracyNeverAdvances(t *testing.T) {
	e, sched, _ := newEngine(t, DefaultSettings())
	for i := 0; i < 6; i++ {
		typeWrong(e)
		sched.fire(false)
	}
	if snap := e.Snapshot(); snap.Ratio != "1/26" || snap.Attempts != 6 {
		t.Fatalf("expected no unlock, got ratio=%s attempts=%d", snap.Ratio, snap.Attempts)
	}
}

func TestInputDroppedWhilePaused(t *testing.T) {
	e, sched, _ := newEngine(t, DefaultSettings())
	typePerfect(e)
	before := e.Snapshot()
	e.OnCharacterKey('j')
	e.OnBackspace()
	after := e.Snapshot()
	if after.Accuracy != before.Accuracy || len(after.Marks) != len(before.Marks) {
		t.Fatalf("paused engine accepted input")
	}
	sched.fire(false)
	if e.Snapshot().Paused {
		t.Fatalf("expected pause to end")
	}
	if e.Snapshot().Marks[0].State != scoring.Current {
		t.Fatalf("expected a fresh sequence after the pause")
	}
}

func TestResetCancelsPendingSequence(t *testing.T) {
	e, sched, _ := newEngine(t, DefaultSettings())
	typePerfect(e)
	e.OnReset()
	fresh := target(e.Snapshot())
	e.OnCharacterKey(fresh[0])
	// A stale timer that fires anyway must not replace the new sequence.
	if ran := sched.fire(true); ran != 1 {
		t.Fatalf("expected the stale task to run, ran %d", ran)
	}
	snap := e.Snapshot()
	if string(target(snap)) != string(fresh) {
		t.Fatalf("stale task replaced the sequence")
	}
	if len(fresh) > 1 && snap.Marks[1].State != scoring.Current {
		t.Fatalf("stale task reset the cursor")
	}
	if snap.Attempts != 0 {
		t.Fatalf("reset should clear attempts, got %d", snap.Attempts)
	}
}

func TestOptionChangeResetsProgression(t *testing.T) {
	e, sched, _ := newEngine(t, DefaultSettings())
	e.OnSkip()
	e.OnSkip()
	typePerfect(e)
	if err := e.OnModeSelect(charset.ModeSymbols); err != nil {
		t.Fatalf("mode select: %v", err)
	}
	if sched.fire(false) != 0 {
		t.Fatalf("option change should cancel the pending task")
	}
	snap := e.Snapshot()
	if string(snap.Unlocked) != "!" || snap.Ratio != "1/26" || snap.Skipped != 0 {
		t.Fatalf("unexpected state after mode change: %+v", snap)
	}
	if err := e.OnTierSelect(charset.TierExtra); err != nil {
		t.Fatalf("tier select: %v", err)
	}
	if e.Snapshot().MinAttempts != 12 {
		t.Fatalf("expected min attempts from extra tier")
	}
	if err := e.OnAccuracyTargetSelect(90); err != nil {
		t.Fatalf("accuracy select: %v", err)
	}
	if err := e.OnAccuracyTargetSelect(42); err == nil {
		t.Fatalf("expected error for unsupported target")
	}
	if err := e.OnModeSelect("words"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if e.Settings().AccuracyTarget != 90 || e.Settings().Mode != charset.ModeSymbols {
		t.Fatalf("failed option change must keep previous settings: %+v", e.Settings())
	}
}

func TestSkipIsRecordedSeparately(t *testing.T) {
	e, _, rec := newEngine(t, DefaultSettings())
	e.OnSkip()
	snap := e.Snapshot()
	if string(snap.Unlocked) != "jf" || snap.Skipped != 1 {
		t.Fatalf("expected forced unlock, got %q skipped=%d", string(snap.Unlocked), snap.Skipped)
	}
	if len(rec.attempts) != 1 || rec.attempts[0].Outcome != model.OutcomeSkipped {
		t.Fatalf("expected skip record, got %+v", rec.attempts)
	}
}

func TestMasteryAfterFullUnlock(t *testing.T) {
	e, sched, rec := newEngine(t, DefaultSettings())
	for i := 0; i < 25; i++ {
		e.OnSkip()
	}
	if e.Snapshot().Ratio != "26/26" {
		t.Fatalf("expected full unlock, got %s", e.Snapshot().Ratio)
	}
	e.OnSkip()
	if e.Snapshot().Ratio != "26/26" || e.Snapshot().Skipped != 25 {
		t.Fatalf("skip past the end must not unlock")
	}
	if len(target(e.Snapshot())) == 0 {
		t.Fatalf("full unlock should still produce sequences")
	}
	for i := 0; i < 3; i++ {
		typePerfect(e)
		sched.fire(false)
	}
	snap := e.Snapshot()
	if !snap.Mastered || len(snap.Marks) != 0 {
		t.Fatalf("expected mastered state without a sequence: %+v", snap)
	}
	if last := rec.attempts[len(rec.attempts)-1]; last.Outcome != model.OutcomeMastered {
		t.Fatalf("expected mastered record, got %s", last.Outcome)
	}
	e.OnCharacterKey('~')
	e.OnBackspace()
	if after := e.Snapshot(); after.Accuracy != snap.Accuracy || after.Attempts != snap.Attempts {
		t.Fatalf("input after mastery must be ignored")
	}
	e.OnReset()
	if e.Snapshot().Mastered || e.Snapshot().Ratio != "1/26" {
		t.Fatalf("reset should leave the mastered state")
	}
}

func TestBackspaceRestoresAccuracy(t *testing.T) {
	e, _, _ := newEngine(t, DefaultSettings())
	seq := target(e.Snapshot())
	e.OnCharacterKey(seq[0])
	before := e.Snapshot()
	e.OnCharacterKey('~')
	e.OnBackspace()
	after := e.Snapshot()
	if after.Accuracy != before.Accuracy || after.Marks[1].State != scoring.Current {
		t.Fatalf("backspace did not restore state")
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	if _, err := New(Options{Settings: Settings{Mode: "words", Tier: charset.TierShort, AccuracyTarget: 70}, Scheduler: &fakeScheduler{}}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if _, err := New(Options{Settings: DefaultSettings()}); err == nil {
		t.Fatalf("expected error without scheduler")
	}
}
