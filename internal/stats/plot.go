package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelTop        = "max"
	axisLabelBottom     = "min"
	axisSeparator       = " │ "
	scaleNote           = "Scaled per series; see min/max below."
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var plotColors = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
}

// canvas is a braille dot grid. Each text cell holds 2x4 dots; owner
// remembers which series painted a cell first, for coloring.
type canvas struct {
	width  int
	height int
	masks  []uint8
	owner  []int8
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.masks = make([]uint8, width*height)
	c.owner = make([]int8, width*height)
	for i := range c.owner {
		c.owner[i] = -1
	}
	return c
}

// brailleDots maps (x%2, y%4) to the braille dot bit.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func (c *canvas) dot(series, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.width || cy >= c.height {
		return
	}
	i := cy*c.width + cx
	c.masks[i] |= brailleDots[x%2][y%4]
	if c.owner[i] < 0 {
		c.owner[i] = int8(series)
	}
}

// line draws a Bresenham segment in dot coordinates.
func (c *canvas) line(series, x0, y0, x1, y1 int) {
	dx := int(math.Abs(float64(x1 - x0)))
	dy := -int(math.Abs(float64(y1 - y0)))
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.dot(series, x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

// PlotSeries renders a multi-line braille plot for the provided series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return PlotSeriesWithColor(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders the plot with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	nonEmpty := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 0 {
		return nil
	}

	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = autoPlotWidth()
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	type bounds struct{ min, max float64 }
	ranges := make([]bounds, len(nonEmpty))
	cv := newCanvas(width, height)
	for si, s := range nonEmpty {
		values := resample(s.Values, width)
		lo, hi := minMax(values)
		if math.Abs(hi-lo) < 1e-9 {
			lo--
			hi++
		}
		ranges[si] = bounds{min: lo, max: hi}

		dotHeight := height * 4
		prevX, prevY := -1, -1
		for x, v := range values {
			pos := (v - lo) / (hi - lo)
			y := int(math.Round((1 - pos) * float64(dotHeight-1)))
			if y < 0 {
				y = 0
			}
			if y >= dotHeight {
				y = dotHeight - 1
			}
			px := x * 2
			if prevX >= 0 {
				cv.line(si, prevX, prevY, px, y)
			} else {
				cv.dot(si, px, y)
			}
			prevX, prevY = px, y
		}
	}

	useColor := shouldUseColor(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, scaleNote); err != nil {
		return err
	}
	for i, s := range nonEmpty {
		if _, err := fmt.Fprintf(w, "%s: min=%.1f max=%.1f\n", s.Name, ranges[i].min, ranges[i].max); err != nil {
			return err
		}
	}

	labelWidth := utf8.RuneCountInString(axisLabelTop)
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = axisLabelTop
		case height - 1:
			label = axisLabelBottom
		}
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", labelWidth, label, axisSeparator)
		for x := 0; x < width; x++ {
			i := y*cv.width + x
			ch := rune(0x2800 + int(cv.masks[i]))
			if useColor && cv.owner[i] >= 0 {
				row.WriteString(plotColors[int(cv.owner[i])%len(plotColors)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}

	legend := make([]string, 0, len(nonEmpty))
	for i, s := range nonEmpty {
		label := fmt.Sprintf("%c %s", rune(0x2800+0x01), s.Name)
		if useColor {
			label = plotColors[i%len(plotColors)] + label + colorReset
		}
		legend = append(legend, label)
	}
	if _, err := fmt.Fprintln(w, "Legend: "+strings.Join(legend, "  ")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func autoPlotWidth() int {
	return PlotWidthFor(terminalWidth())
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// resample stretches or compresses values to exactly width points:
// bucket means when compressing, linear interpolation when stretching.
func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := 0; i < width; i++ {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 0
	}
	return lo, hi
}
