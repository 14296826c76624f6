package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typeshi/internal/scoring"
)

func TestBuildCellsStyles(t *testing.T) {
	s := scoring.New([]rune("ab c"), nil)
	s.TypeChar('a')
	s.TypeChar('x')
	s.TypeChar('x')
	cells := buildCells(s.Classify())
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	if cells[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first cell")
	}
	if cells[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected target char kept on mistype")
	}
	if cells[2].s != incorrectStyle.Render(string(spaceGlyph)) {
		t.Fatalf("expected glyph for mistyped space")
	}
	if cells[3].s != cursorStyle.Render("c") {
		t.Fatalf("expected cursor style for current cell")
	}
	if !cells[2].isSpace || cells[0].isSpace {
		t.Fatalf("unexpected space flags")
	}
}

func TestBuildCellsPending(t *testing.T) {
	cells := buildCells(scoring.New([]rune("jf"), nil).Classify())
	if cells[0].s != cursorStyle.Render("j") || cells[1].s != pendingStyle.Render("f") {
		t.Fatalf("expected cursor then pending")
	}
}

func plainCells(text string) []cell {
	cells := make([]cell, 0, len(text))
	for _, r := range text {
		cells = append(cells, cell{s: string(r), width: 1, isSpace: r == ' '})
	}
	return cells
}

func TestWrapCellsBreaksAtSpaces(t *testing.T) {
	got := wrapCells(plainCells("jfk dls ahg"), 8)
	want := "jfk dls\nahg"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapCellsBreaksLongRuns(t *testing.T) {
	got := wrapCells(plainCells("jjjjjjjjjj"), 4)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 || lines[0] != "jjjj" || lines[2] != "jj" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapCellsNoWidth(t *testing.T) {
	if got := wrapCells(plainCells("jf kd"), 0); got != "jf kd" {
		t.Fatalf("expected unwrapped output, got %q", got)
	}
}
