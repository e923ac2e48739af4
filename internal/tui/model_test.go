package tui

import (
	"testing"

	"spidertype/internal/session"
)

func TestStaleTickDoesNotDriveNewSession(t *testing.T) {
	m := &Model{sess: session.New("hello world", "go", "code", 30, nil)}
	m.sess.Type([]rune{'h'})
	old := m.sess

	// Abandon and start over before the armed tick lands.
	m.sess = session.New("hello world", "go", "code", 30, nil)
	m.sess.Type([]rune{'h'})

	_, cmd := m.Update(tickMsg{sessionID: old.ID()})
	if cmd != nil {
		t.Fatalf("stale tick must not reschedule")
	}
	if got := m.sess.Remaining(); got != 30 {
		t.Fatalf("stale tick consumed countdown, remaining %d", got)
	}
	if len(m.sess.History()) != 0 {
		t.Fatalf("stale tick sampled the new session: %d samples", len(m.sess.History()))
	}

	_, cmd = m.Update(tickMsg{sessionID: m.sess.ID()})
	if cmd == nil {
		t.Fatalf("live tick must reschedule")
	}
	if got := m.sess.Remaining(); got != 29 {
		t.Fatalf("expected one second consumed, remaining %d", got)
	}
	if len(m.sess.History()) != 1 {
		t.Fatalf("expected one sample, got %d", len(m.sess.History()))
	}
}

func TestTypeRunesArmsTickForCurrentSession(t *testing.T) {
	m := &Model{sess: session.New("abc", "go", "code", 30, nil)}
	if cmd := m.typeRunes([]rune{'a'}); cmd == nil {
		t.Fatalf("first keystroke must arm the tick")
	}
	if cmd := m.typeRunes([]rune{'b'}); cmd != nil {
		t.Fatalf("later keystrokes must not arm a second chain")
	}
}
