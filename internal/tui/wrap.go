// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s         string
	width     int
	isSpace   bool
	isNewline bool
}

// newlineMark is shown in place of a target newline so the break is typeable.
const newlineMark = '⏎'

func buildStyledRunes(targetRunes, inputRunes []rune, cursorIndex int) []styledRune {
	out := make([]styledRune, 0, len(targetRunes))
	for i, target := range targetRunes {
		displayed := target
		if target == '\n' {
			displayed = newlineMark
		} else if target == '\t' {
			displayed = '→'
		}
		style := pendingStyle
		if i < len(inputRunes) {
			switch {
			case target == ' ' && inputRunes[i] != ' ':
				displayed = '•'
				style = incorrectStyle
			case inputRunes[i] == target:
				style = correctStyle
			default:
				style = incorrectStyle
			}
		}
		if i == cursorIndex && i >= len(inputRunes) {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:         style.Render(string(displayed)),
			width:     runewidth.RuneWidth(displayed),
			isSpace:   target == ' ',
			isNewline: target == '\n',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes wraps at word boundaries within width. Target newlines
// always break the line, so code snippets keep their shape.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	flush := func() {
		out.WriteString(renderStyledRunes(line))
		out.WriteRune('\n')
		line = line[:0]
		lineWidth = 0
		lastSpaceIdx = -1
	}

	for i := 0; i < len(runes); {
		item := runes[i]
		if item.isNewline {
			line = append(line, item)
			flush()
			i++
			continue
		}
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				flush()
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return strings.TrimSuffix(out.String(), "\n")
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
