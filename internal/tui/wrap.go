// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typeshi/internal/scoring"
)

const spaceGlyph = '·'

type cell struct {
	s       string
	width   int
	isSpace bool
}

func buildCells(marks []scoring.Mark) []cell {
	out := make([]cell, 0, len(marks))
	for _, m := range marks {
		displayed := m.Char
		style := pendingStyle
		switch m.State {
		case scoring.Correct:
			style = correctStyle
		case scoring.Incorrect:
			style = incorrectStyle
			if m.Char == ' ' {
				displayed = spaceGlyph
			}
		case scoring.Current:
			style = cursorStyle
		}
		out = append(out, cell{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: m.Char == ' ',
		})
	}
	return out
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.s)
	}
	return b.String()
}

// wrapCells breaks at the last space that fits, or mid-run when a line has
// no space.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	var lines []string
	line := make([]cell, 0, len(cells))
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(cells); {
		c := cells[i]
		if lineWidth+c.width > width && len(line) > 0 {
			if lastSpace >= 0 {
				lines = append(lines, renderCells(line[:lastSpace]))
				line = append([]cell{}, line[lastSpace+1:]...)
			} else {
				lines = append(lines, renderCells(line))
				line = line[:0]
			}
			lineWidth, lastSpace = measure(line)
			continue
		}
		line = append(line, c)
		lineWidth += c.width
		if c.isSpace {
			lastSpace = len(line) - 1
		}
		i++
	}
	lines = append(lines, renderCells(line))
	return strings.Join(lines, "\n")
}

func measure(line []cell) (width, lastSpace int) {
	lastSpace = -1
	for i, c := range line {
		width += c.width
		if c.isSpace {
			lastSpace = i
		}
	}
	return width, lastSpace
}
