// Package stats contains attempt history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/typeshi/internal/charset"
	"github.com/verte-zerg/typeshi/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summarize groups attempts by mode. Modes follow catalog order.
func Summarize(attempts []model.Attempt) []model.ModeSummary {
	byMode := map[string]*model.ModeSummary{}
	runs := map[string]map[string]struct{}{}
	accSum := map[string]int{}
	for _, a := range attempts {
		sum, ok := byMode[a.Mode]
		if !ok {
			sum = &model.ModeSummary{Mode: a.Mode}
			byMode[a.Mode] = sum
			runs[a.Mode] = map[string]struct{}{}
		}
		runs[a.Mode][a.RunID] = struct{}{}
		if a.Total > sum.Total {
			sum.Total = a.Total
		}
		if a.At.After(sum.LastAt) {
			sum.LastAt = a.At
		}
		stage := a.Stage
		switch a.Outcome {
		case model.OutcomeSkipped:
			sum.Skips++
			stage++
			if stage > sum.HighestStage {
				sum.HighestStage = stage
			}
			continue
		case model.OutcomeAdvanced:
			sum.Unlocks++
			stage++
		}
		if stage > sum.HighestStage {
			sum.HighestStage = stage
		}
		sum.Attempts++
		accSum[a.Mode] += a.Accuracy
		sum.Accuracies = append(sum.Accuracies, float64(a.Accuracy))
	}

	out := make([]model.ModeSummary, 0, len(byMode))
	for mode, sum := range byMode {
		sum.Runs = len(runs[mode])
		if sum.Attempts > 0 {
			sum.MeanAccuracy = float64(accSum[mode]) / float64(sum.Attempts)
		}
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := modeRank(out[i].Mode), modeRank(out[j].Mode)
		if ri == rj {
			return out[i].Mode < out[j].Mode
		}
		return ri < rj
	})
	return out
}

func modeRank(mode string) int {
	for i, m := range charset.Modes() {
		if string(m) == mode {
			return i
		}
	}
	return len(charset.Modes())
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample shrinks values to at most width points by averaging buckets.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return append([]float64(nil), values...)
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// RenderSummary prints one row per mode with an accuracy trend.
func RenderSummary(w io.Writer, summaries []model.ModeSummary, window, trendWidth int) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	headers := []string{"Mode", "Runs", "Attempts", "Stage", "Unlocks", "Skips", "Avg Acc", "Trend"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		trend := Sparkline(Resample(MovingAverage(s.Accuracies, window), trendWidth))
		rows = append(rows, []string{
			s.Mode,
			fmt.Sprintf("%d", s.Runs),
			fmt.Sprintf("%d", s.Attempts),
			fmt.Sprintf("%d/%d", s.HighestStage, s.Total),
			fmt.Sprintf("%d", s.Unlocks),
			fmt.Sprintf("%d", s.Skips),
			fmt.Sprintf("%.1f%%", s.MeanAccuracy),
			trend,
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRecent prints the newest n attempts, newest last.
func RenderRecent(w io.Writer, attempts []model.Attempt, n int) error {
	if len(attempts) == 0 {
		return nil
	}
	if n > 0 && len(attempts) > n {
		attempts = attempts[len(attempts)-n:]
	}
	if _, err := fmt.Fprintln(w, "Recent Attempts"); err != nil {
		return err
	}
	headers := []string{"When", "Mode", "Tier", "Stage", "Acc", "Target", "Outcome", "Sequence"}
	rows := make([][]string, 0, len(attempts))
	for _, a := range attempts {
		rows = append(rows, AttemptRow(a))
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// AttemptRow formats an attempt as table cells.
func AttemptRow(a model.Attempt) []string {
	return []string{
		a.At.Local().Format("2006-01-02 15:04"),
		a.Mode,
		a.Tier,
		fmt.Sprintf("%d/%d", a.Stage, a.Total),
		fmt.Sprintf("%d%%", a.Accuracy),
		fmt.Sprintf("%d%%", a.AccuracyTarget),
		a.Outcome,
		a.Sequence,
	}
}
