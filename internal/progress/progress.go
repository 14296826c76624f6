// Package progress tracks which characters of a learning order are unlocked.
package progress

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/typeshi/internal/charset"
	"github.com/verte-zerg/typeshi/internal/scoring"
)

// ErrEmptyOrder is returned when a tracker is initialized without characters.
var ErrEmptyOrder = errors.New("learning order is empty")

// Result is the outcome of a completed attempt.
type Result int

// Attempt outcomes.
const (
	// Held means the gate was not met and the stage continues.
	Held Result = iota
	// Advanced means the next character was unlocked.
	Advanced
	// Mastered means the gate was met with every character already unlocked.
	Mastered
)

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case Advanced:
		return "advanced"
	case Mastered:
		return "mastered"
	default:
		return "held"
	}
}

// Tracker owns the unlocked prefix of a learning order and the counters of
// the current stage.
type Tracker struct {
	order    []rune
	unlocked int
	attempts int
	skipped  int
	tally    scoring.Tally
}

// New returns a tracker initialized for order.
func New(order []rune) (*Tracker, error) {
	t := &Tracker{}
	if err := t.Initialize(order); err != nil {
		return nil, err
	}
	return t, nil
}

// Initialize unlocks the first character of order and clears all counters.
func (t *Tracker) Initialize(order []rune) error {
	if len(order) == 0 {
		return ErrEmptyOrder
	}
	t.order = append(t.order[:0], order...)
	t.unlocked = 1
	t.skipped = 0
	t.ResetCounters()
	return nil
}

// MinAttemptsRequired is the number of completed sequences a stage needs
// before it may advance. It follows the shortest length of the tier.
func MinAttemptsRequired(band charset.Band) int {
	return band.Min
}

// RecordAttemptCompletion counts a finished sequence and advances when the
// accuracy target and the minimum attempts are both met.
func (t *Tracker) RecordAttemptCompletion(accuracy, target int, band charset.Band) Result {
	t.attempts++
	if accuracy < target || t.attempts < MinAttemptsRequired(band) {
		return Held
	}
	if t.Advance() {
		return Advanced
	}
	return Mastered
}

// Advance unlocks the next character and starts a fresh stage. It returns
// false, changing nothing, once every character is unlocked.
func (t *Tracker) Advance() bool {
	if t.unlocked >= len(t.order) {
		return false
	}
	t.unlocked++
	t.ResetCounters()
	return true
}

// ForceAdvance unlocks the next character without meeting the gate. Stages
// unlocked this way are counted separately from earned ones.
func (t *Tracker) ForceAdvance() bool {
	advanced := t.Advance()
	if advanced {
		t.skipped++
	}
	t.ResetCounters()
	return advanced
}

// ResetCounters clears the stage counters without touching unlocked chars.
func (t *Tracker) ResetCounters() {
	t.attempts = 0
	t.tally.Reset()
}

// Unlocked returns a copy of the unlocked characters in learning order.
func (t *Tracker) Unlocked() []rune {
	return append([]rune(nil), t.order[:t.unlocked]...)
}

// UnlockedCount is the number of unlocked characters.
func (t *Tracker) UnlockedCount() int {
	return t.unlocked
}

// Total is the length of the learning order.
func (t *Tracker) Total() int {
	return len(t.order)
}

// FullyUnlocked reports whether the whole learning order is unlocked.
func (t *Tracker) FullyUnlocked() bool {
	return t.unlocked >= len(t.order)
}

// Attempts is the number of sequences completed in the current stage.
func (t *Tracker) Attempts() int {
	return t.attempts
}

// Skipped is the number of stages unlocked by ForceAdvance.
func (t *Tracker) Skipped() int {
	return t.skipped
}

// Tally exposes the stage keystroke counters for scoring sessions.
func (t *Tracker) Tally() *scoring.Tally {
	return &t.tally
}

// Ratio renders progress as "unlocked/total".
func (t *Tracker) Ratio() string {
	return fmt.Sprintf("%d/%d", t.unlocked, len(t.order))
}
