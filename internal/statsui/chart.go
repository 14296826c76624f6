package statsui

import (
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typeshi/internal/model"
)

const (
	chartHeight   = 6
	minChartWidth = 20
)

var (
	metBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Background(lipgloss.Color("#52C41A"))
	missedBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Background(lipgloss.Color("#FF4D4F"))
	emptyBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A")).Background(lipgloss.Color("#4A4A4A"))
)

// renderAccuracyChart draws one bar per recent attempt, newest on the right.
// Bars that met their target are green.
func renderAccuracyChart(attempts []model.Attempt, width int) string {
	width = max(minChartWidth, width)
	maxBars := width / 2
	if len(attempts) > maxBars {
		attempts = attempts[len(attempts)-maxBars:]
	}

	bc := barchart.New(width, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)
	for i := len(attempts); i < maxBars; i++ {
		bc.Push(barchart.BarData{
			Values: []barchart.BarValue{{Name: "empty", Value: 0, Style: emptyBarStyle}},
		})
	}
	for _, a := range attempts {
		style := missedBarStyle
		if a.Accuracy >= a.AccuracyTarget {
			style = metBarStyle
		}
		bc.Push(barchart.BarData{
			Values: []barchart.BarValue{{Name: a.Outcome, Value: float64(a.Accuracy), Style: style}},
		})
	}
	bc.Draw()
	return bc.View()
}
