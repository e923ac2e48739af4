// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"spidertype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary holds aggregates over a set of results.
type Summary struct {
	Tests          int
	AvgWPM         float64
	BestWPM        int
	AvgAccuracy    float64
	AvgConsistency float64
	TotalTyping    time.Duration
	PerfectTests   int
}

// Summarize computes aggregates over results.
func Summarize(results []model.SessionResult) Summary {
	sum := Summary{Tests: len(results)}
	if len(results) == 0 {
		return sum
	}
	var wpm, acc, cons float64
	for _, res := range results {
		wpm += float64(res.WPMNet)
		acc += float64(res.AccuracyPercent)
		cons += float64(res.ConsistencyPct)
		if res.WPMNet > sum.BestWPM {
			sum.BestWPM = res.WPMNet
		}
		if res.AccuracyPercent >= 100 {
			sum.PerfectTests++
		}
		sum.TotalTyping += time.Duration(res.DurationSeconds) * time.Second
	}
	count := float64(len(results))
	sum.AvgWPM = wpm / count
	sum.AvgAccuracy = acc / count
	sum.AvgConsistency = cons / count
	return sum
}

// WPMSeries extracts net WPM per result, oldest first.
func WPMSeries(results []model.SessionResult) []float64 {
	out := make([]float64, len(results))
	for i, res := range results {
		out[i] = float64(res.WPMNet)
	}
	return out
}

// AccuracySeries extracts accuracy percent per result, oldest first.
func AccuracySeries(results []model.SessionResult) []float64 {
	out := make([]float64, len(results))
	for i, res := range results {
		out[i] = float64(res.AccuracyPercent)
	}
	return out
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
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints aggregate numbers for the results.
func RenderSummary(w io.Writer, results []model.SessionResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No tests recorded yet.")
		return err
	}
	sum := Summarize(results)
	lines := []string{
		"Summary",
		fmt.Sprintf("Tests: %d", sum.Tests),
		fmt.Sprintf("Avg WPM: %.1f", sum.AvgWPM),
		fmt.Sprintf("Best WPM: %d", sum.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.1f%%", sum.AvgAccuracy),
		fmt.Sprintf("Avg Consistency: %.1f%%", sum.AvgConsistency),
		fmt.Sprintf("Perfect Tests: %d", sum.PerfectTests),
		fmt.Sprintf("Time Typing: %s", sum.TotalTyping),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints learning curves for WPM and accuracy.
func RenderCurves(w io.Writer, results []model.SessionResult, window int) error {
	return RenderCurvesWithSize(w, results, window, 0, 10, false)
}

// RenderCurvesWithSize prints learning curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, results []model.SessionResult, window, totalWidth, height int, useColor bool) error {
	if len(results) == 0 {
		return nil
	}
	wpms := MovingAverage(WPMSeries(results), window)
	accs := MovingAverage(AccuracySeries(results), window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Learning Curves", []Series{
		{Name: "WPM", Values: wpms},
		{Name: "Accuracy", Values: accs},
	}, width, height, useColor)
}

// RenderHistory prints a table of the most recent results, newest first.
func RenderHistory(w io.Writer, results []model.SessionResult, limit int) error {
	if len(results) == 0 {
		return nil
	}
	if limit > 0 && len(results) > limit {
		results = results[len(results)-limit:]
	}

	headers := []string{"When", "Language", "Mode", "Dur", "WPM", "Raw", "Acc", "Cons"}
	rows := make([][]string, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		res := results[i]
		rows = append(rows, []string{
			res.Timestamp.Format("2006-01-02 15:04"),
			res.Language,
			res.Mode,
			fmt.Sprintf("%ds", res.DurationSeconds),
			fmt.Sprintf("%d", res.WPMNet),
			fmt.Sprintf("%d", res.WPMRaw),
			fmt.Sprintf("%d%%", res.AccuracyPercent),
			fmt.Sprintf("%d%%", res.ConsistencyPct),
		})
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true}
	if _, err := fmt.Fprintln(w, "Recent Tests"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
