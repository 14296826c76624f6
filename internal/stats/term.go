package stats

import (
	"io"
	"os"

	"golang.org/x/term"
)

const defaultTrendWidth = 24

// TrendWidth picks a sparkline width that fits the terminal behind w.
func TrendWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTrendWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTrendWidth
	}
	// Leave room for the other summary columns.
	return max(8, min(width-60, 60))
}
