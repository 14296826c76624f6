// Package scoring compares typed input against a target sequence.
package scoring

import "math"

// State classifies a single position of the target sequence.
type State int

// Position states.
const (
	Pending State = iota
	Current
	Correct
	Incorrect
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Current:
		return "current"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "pending"
	}
}

// Mark is one classified position of the target sequence.
type Mark struct {
	Char  rune
	State State
}

// Tally counts keystrokes for a stage. It outlives individual sequences.
type Tally struct {
	Correct int
	Total   int
}

// Accuracy returns the rounded percentage of correct keystrokes, or 0 when
// nothing has been typed.
func (t Tally) Accuracy() int {
	if t.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(t.Correct) / float64(t.Total) * 100))
}

// Reset zeroes the counters.
func (t *Tally) Reset() {
	t.Correct = 0
	t.Total = 0
}

// Session tracks input against one target sequence.
type Session struct {
	target []rune
	input  []rune
	tally  *Tally
}

// New starts a session for target. Keystrokes are counted into tally; a nil
// tally gets a private one.
func New(target []rune, tally *Tally) *Session {
	if tally == nil {
		tally = &Tally{}
	}
	return &Session{
		target: append([]rune(nil), target...),
		input:  make([]rune, 0, len(target)),
		tally:  tally,
	}
}

// TypeChar records a keystroke and reports whether it completed the sequence.
// Keystrokes after completion are ignored.
func (s *Session) TypeChar(r rune) bool {
	pos := len(s.input)
	if pos >= len(s.target) {
		return false
	}
	s.input = append(s.input, r)
	s.tally.Total++
	if r == s.target[pos] {
		s.tally.Correct++
	}
	return len(s.input) == len(s.target)
}

// Backspace removes the last keystroke and undoes its bookkeeping.
func (s *Session) Backspace() bool {
	pos := len(s.input) - 1
	if pos < 0 {
		return false
	}
	removed := s.input[pos]
	s.input = s.input[:pos]
	s.tally.Total--
	if removed == s.target[pos] {
		s.tally.Correct--
	}
	return true
}

// Cursor is the index of the next position to type.
func (s *Session) Cursor() int {
	return len(s.input)
}

// Complete reports whether every position has been typed.
func (s *Session) Complete() bool {
	return len(s.target) > 0 && len(s.input) == len(s.target)
}

// Accuracy returns the stage accuracy of the shared tally.
func (s *Session) Accuracy() int {
	return s.tally.Accuracy()
}

// Target returns a copy of the target sequence.
func (s *Session) Target() []rune {
	return append([]rune(nil), s.target...)
}

// Input returns a copy of the typed input.
func (s *Session) Input() []rune {
	return append([]rune(nil), s.input...)
}

// Classify projects the session onto per-position marks.
func (s *Session) Classify() []Mark {
	cursor := len(s.input)
	marks := make([]Mark, len(s.target))
	for i, r := range s.target {
		state := Pending
		switch {
		case i == cursor:
			state = Current
		case i < cursor && s.input[i] == r:
			state = Correct
		case i < cursor:
			state = Incorrect
		}
		marks[i] = Mark{Char: r, State: state}
	}
	return marks
}
