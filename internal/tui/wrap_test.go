package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != pendingStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined cursor for second rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	target := []rune("ab")
	input := []rune("ax")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for second rune")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	target := []rune("a b")
	input := []rune("ax")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestBuildStyledRunesNewlineMark(t *testing.T) {
	target := []rune("a\nb")
	runes := buildStyledRunes(target, nil, 0)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if !runes[1].isNewline {
		t.Fatalf("expected newline flag on second rune")
	}
	if !strings.Contains(runes[1].s, string(newlineMark)) {
		t.Fatalf("expected visible newline mark, got %q", runes[1].s)
	}
}

func TestWrapStyledRunesBreaksAtNewline(t *testing.T) {
	target := []rune("ab\ncd")
	runes := buildStyledRunes(target, nil, -1)
	out := wrapStyledRunes(runes, 80)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
}

func TestWrapStyledRunesBreaksAtWidth(t *testing.T) {
	target := []rune("one two three")
	runes := buildStyledRunes(target, nil, -1)
	out := wrapStyledRunes(runes, 7)
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", out)
	}
}

func TestWrapStyledRunesZeroWidth(t *testing.T) {
	target := []rune("abc")
	runes := buildStyledRunes(target, nil, -1)
	if out := wrapStyledRunes(runes, 0); out != renderStyledRunes(runes) {
		t.Fatalf("expected unwrapped output for zero width")
	}
}
