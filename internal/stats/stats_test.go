package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spidertype/internal/model"
)

func result(wpm, acc int) model.SessionResult {
	return model.SessionResult{
		Timestamp:       time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		Language:        "go",
		Mode:            "code",
		DurationSeconds: 60,
		WPMNet:          wpm,
		WPMRaw:          wpm + 2,
		AccuracyPercent: acc,
		ConsistencyPct:  85,
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize([]model.SessionResult{result(60, 100), result(80, 90)})
	assert.Equal(t, 2, sum.Tests)
	assert.InDelta(t, 70.0, sum.AvgWPM, 1e-9)
	assert.Equal(t, 80, sum.BestWPM)
	assert.InDelta(t, 95.0, sum.AvgAccuracy, 1e-9)
	assert.Equal(t, 1, sum.PerfectTests)
	assert.Equal(t, 2*time.Minute, sum.TotalTyping)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	assert.Equal(t, 0, sum.Tests)
	assert.Zero(t, sum.AvgWPM)
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := MovingAverage(values, 3)
	require.Len(t, out, 5)
	assert.InDelta(t, 1.0, out[0], 1e-9)
	assert.InDelta(t, 1.5, out[1], 1e-9)
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestMovingAverageWindowOne(t *testing.T) {
	values := []float64{1, 2, 3}
	assert.Equal(t, values, MovingAverage(values, 1))
}

func TestSparkline(t *testing.T) {
	line := Sparkline([]float64{0, 5, 10})
	assert.Equal(t, 3, len(line))
	assert.Equal(t, byte(' '), line[0])
	assert.Equal(t, byte('@'), line[2])

	flat := Sparkline([]float64{7, 7, 7})
	assert.Equal(t, strings.Repeat(string(sparkChars[len(sparkChars)/2]), 3), flat)

	assert.Empty(t, Sparkline(nil))
}

func TestRenderSummaryEmpty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, RenderSummary(&b, nil))
	assert.Contains(t, b.String(), "No tests recorded yet.")
}

func TestRenderHistoryNewestFirst(t *testing.T) {
	older := result(60, 95)
	newer := result(80, 97)
	newer.Timestamp = older.Timestamp.Add(time.Hour)

	var b strings.Builder
	require.NoError(t, RenderHistory(&b, []model.SessionResult{older, newer}, 0))
	out := b.String()
	require.Contains(t, out, "Recent Tests")
	assert.Less(t, strings.Index(out, "13:00"), strings.Index(out, "12:00"))
}

func TestFormatTableAlignment(t *testing.T) {
	lines := formatTable(
		[]string{"Name", "WPM"},
		[][]string{{"go", "120"}, {"python", "7"}},
		map[int]bool{1: true},
	)
	require.Len(t, lines, 3)
	assert.Equal(t, "Name   WPM", lines[0])
	assert.Equal(t, "go     120", lines[1])
	assert.Equal(t, "python   7", lines[2])
}

func TestPlotWidthFor(t *testing.T) {
	assert.Equal(t, minPlotWidth, PlotWidthFor(0))
	assert.Equal(t, minPlotWidth, PlotWidthFor(12))
	assert.Equal(t, 80-len(axisLabelTop)-3, PlotWidthFor(80))
}

func TestPlotSeriesRendersRows(t *testing.T) {
	var b strings.Builder
	err := PlotSeries(&b, "Test Plot", []Series{
		{Name: "WPM", Values: []float64{10, 20, 30, 25, 40}},
	}, 20, 5)
	require.NoError(t, err)
	out := b.String()
	assert.Contains(t, out, "Test Plot")
	assert.Contains(t, out, "WPM: min=")
	assert.Contains(t, out, "Legend: ")
	assert.Equal(t, 10, strings.Count(out, "\n"), "title, note, range, rows, legend, trailing blank")
}

func TestResample(t *testing.T) {
	compressed := resample([]float64{1, 2, 3, 4}, 2)
	assert.Equal(t, []float64{1.5, 3.5}, compressed)

	stretched := resample([]float64{0, 10}, 3)
	require.Len(t, stretched, 3)
	assert.InDelta(t, 5.0, stretched[1], 1e-9)

	assert.Nil(t, resample(nil, 5))
}
