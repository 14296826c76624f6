// Package charset holds the fixed catalog of practice modes and difficulty tiers.
package charset

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the character domain being practiced.
type Mode string

// Practice modes.
const (
	ModeAlphas       Mode = "alphas"
	ModeAlphanumeric Mode = "alphanumeric"
	ModeSymbols      Mode = "symbols"
	ModeAll          Mode = "all"
)

// Tier selects the sequence length band.
type Tier string

// Difficulty tiers.
const (
	TierShort  Tier = "short"
	TierMedium Tier = "medium"
	TierLong   Tier = "long"
	TierExtra  Tier = "extra"
)

// DefaultAccuracyTarget is the accuracy gate used when none is configured.
const DefaultAccuracyTarget = 70

var (
	// ErrUnknownMode is returned for a mode outside the catalog.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrUnknownTier is returned for a tier outside the catalog.
	ErrUnknownTier = errors.New("unknown tier")
	// ErrInvalidOrder is returned when a learning order does not match its pool.
	ErrInvalidOrder = errors.New("invalid learning order")
)

// Band is an inclusive sequence length range.
type Band struct {
	Min int
	Max int
}

// Set describes the characters of a mode and the order they unlock in.
type Set struct {
	Mode  Mode
	Pool  []rune
	Order []rune
}

type setDef struct {
	pool  string
	order string
}

const (
	letters     = "abcdefghijklmnopqrstuvwxyz"
	digits      = "0123456789"
	symbols     = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	letterOrder = "jfkdlsahgqwertyuiopzxcvbnm"
	digitOrder  = "1234567890"
)

var modeOrder = []Mode{ModeAlphas, ModeAlphanumeric, ModeSymbols, ModeAll}

var sets = map[Mode]setDef{
	ModeAlphas:       {pool: letters, order: letterOrder},
	ModeAlphanumeric: {pool: letters + digits, order: letterOrder + digitOrder},
	ModeSymbols:      {pool: symbols, order: symbols},
	ModeAll:          {pool: letters + digits + symbols, order: letterOrder + digitOrder + symbols},
}

var tierOrder = []Tier{TierShort, TierMedium, TierLong, TierExtra}

var bands = map[Tier]Band{
	TierShort:  {Min: 3, Max: 5},
	TierMedium: {Min: 5, Max: 8},
	TierLong:   {Min: 8, Max: 12},
	TierExtra:  {Min: 12, Max: 15},
}

var accuracyTargets = []int{50, 60, 70, 80, 90, 95, 100}

// Modes returns every mode in display order.
func Modes() []Mode {
	return append([]Mode(nil), modeOrder...)
}

// Tiers returns every tier in display order.
func Tiers() []Tier {
	return append([]Tier(nil), tierOrder...)
}

// AccuracyTargets returns the selectable accuracy targets in ascending order.
func AccuracyTargets() []int {
	return append([]int(nil), accuracyTargets...)
}

// Lookup returns the character pool and learning order for a mode.
func Lookup(mode Mode) (Set, error) {
	def, ok := sets[mode]
	if !ok {
		return Set{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return Set{Mode: mode, Pool: []rune(def.pool), Order: []rune(def.order)}, nil
}

// BandFor returns the length band of a tier.
func BandFor(tier Tier) (Band, error) {
	band, ok := bands[tier]
	if !ok {
		return Band{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return band, nil
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sets[mode]; !ok {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownMode, s, joinModes())
	}
	return mode, nil
}

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	tier := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := bands[tier]; !ok {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownTier, s, joinTiers())
	}
	return tier, nil
}

// ValidAccuracyTarget reports whether p is a selectable accuracy target.
func ValidAccuracyTarget(p int) bool {
	for _, v := range accuracyTargets {
		if v == p {
			return true
		}
	}
	return false
}

// NextMode returns the mode after m, wrapping around.
func NextMode(m Mode) Mode {
	for i, v := range modeOrder {
		if v == m {
			return modeOrder[(i+1)%len(modeOrder)]
		}
	}
	return modeOrder[0]
}

// NextTier returns the tier after t, wrapping around.
func NextTier(t Tier) Tier {
	for i, v := range tierOrder {
		if v == t {
			return tierOrder[(i+1)%len(tierOrder)]
		}
	}
	return tierOrder[0]
}

// NextAccuracyTarget returns the target after p, wrapping around.
func NextAccuracyTarget(p int) int {
	for i, v := range accuracyTargets {
		if v == p {
			return accuracyTargets[(i+1)%len(accuracyTargets)]
		}
	}
	return DefaultAccuracyTarget
}

// Validate checks the whole catalog. Any error is a programming defect.
func Validate() error {
	for _, mode := range modeOrder {
		set, err := Lookup(mode)
		if err != nil {
			return err
		}
		if err := checkOrder(set); err != nil {
			return err
		}
	}
	for _, tier := range tierOrder {
		band, err := BandFor(tier)
		if err != nil {
			return err
		}
		if band.Min <= 0 || band.Min > band.Max {
			return fmt.Errorf("tier %q has invalid band %d-%d", tier, band.Min, band.Max)
		}
	}
	return nil
}

func checkOrder(set Set) error {
	if len(set.Order) == 0 {
		return fmt.Errorf("%w: mode %q has an empty learning order", ErrInvalidOrder, set.Mode)
	}
	if len(set.Order) != len(set.Pool) {
		return fmt.Errorf("%w: mode %q has %d ordered chars for a pool of %d", ErrInvalidOrder, set.Mode, len(set.Order), len(set.Pool))
	}
	pool := make(map[rune]struct{}, len(set.Pool))
	for _, r := range set.Pool {
		if _, dup := pool[r]; dup {
			return fmt.Errorf("%w: mode %q repeats %q in its pool", ErrInvalidOrder, set.Mode, r)
		}
		pool[r] = struct{}{}
	}
	for _, r := range set.Order {
		if _, ok := pool[r]; !ok {
			return fmt.Errorf("%w: mode %q orders %q which is not in its pool or appears twice", ErrInvalidOrder, set.Mode, r)
		}
		delete(pool, r)
	}
	return nil
}

func joinModes() string {
	names := make([]string, len(modeOrder))
	for i, m := range modeOrder {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func joinTiers() string {
	names := make([]string, len(tierOrder))
	for i, t := range tierOrder {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
