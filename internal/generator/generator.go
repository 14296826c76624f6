// Package generator builds practice sequences from unlocked characters.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/typeshi/internal/charset"
)

const (
	spaceChance = 0.2

	// Stages with this many chars or fewer get short sequences.
	earlyStageChars = 2
	earlyMinLength  = 3
	earlyMaxLength  = 6
)

// Generator produces randomized practice sequences.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Generate draws a sequence uniformly from unlocked with a length inside
// band. A space may follow any character but the last; spaces do not count
// toward the length. It returns nil when unlocked is empty.
func (g *Generator) Generate(unlocked []rune, band charset.Band) []rune {
	if len(unlocked) == 0 {
		return nil
	}
	length := g.length(len(unlocked), band)
	seq := make([]rune, 0, length+length/2)
	for i := 0; i < length; i++ {
		seq = append(seq, unlocked[g.rnd.Intn(len(unlocked))])
		if i < length-1 && g.rnd.Float64() < spaceChance {
			seq = append(seq, ' ')
		}
	}
	return seq
}

func (g *Generator) length(unlocked int, band charset.Band) int {
	minLen, maxLen := band.Min, band.Max
	if unlocked <= earlyStageChars {
		minLen = min(minLen, earlyMinLength)
		maxLen = min(maxLen, earlyMaxLength)
	}
	if minLen < 1 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	return minLen + g.rnd.Intn(maxLen-minLen+1)
}
