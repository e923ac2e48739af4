// Package session drives the lifecycle of one timed typing test.
package session

import (
	"time"

	"github.com/google/uuid"

	"spidertype/internal/metrics"
	"spidertype/internal/model"
)

// State is the lifecycle phase of a session.
type State int

const (
	StateIdle     State = iota // target assigned, no input yet
	StateRunning               // first character typed, timers active
	StateFinished              // terminal; a new test needs a new Session
)

// Session is a single timed typing attempt. It owns the typed buffer,
// the countdown, and the per-second WPM sample history. Not safe for
// concurrent use; the TUI event loop is the only driver.
type Session struct {
	id       string
	language string
	mode     string
	duration int // selected test length, seconds

	target []rune
	typed  []rune

	state     State
	startedAt time.Time
	remaining int
	history   []int

	clock Clock

	// finalized is the single-use latch: time running out and input
	// reaching the target length may race within one event loop turn,
	// and the result must be frozen exactly once.
	finalized bool
	result    model.SessionResult
}

// New creates an idle session for the given target text.
func New(target, language, mode string, durationSeconds int, clock Clock) *Session {
	if clock == nil {
		clock = SystemClock()
	}
	return &Session{
		id:        uuid.NewString(),
		language:  language,
		mode:      mode,
		duration:  durationSeconds,
		target:    []rune(target),
		remaining: durationSeconds,
		clock:     clock,
	}
}

// ID returns the session UUID.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Target returns the target runes.
func (s *Session) Target() []rune { return s.target }

// Typed returns the typed runes.
func (s *Session) Typed() []rune { return s.typed }

// Remaining returns the countdown seconds left.
func (s *Session) Remaining() int { return s.remaining }

// Elapsed returns time since the first keystroke, zero while idle.
func (s *Session) Elapsed() time.Duration {
	if s.state == StateIdle {
		return 0
	}
	if s.state == StateFinished {
		return s.result.Timestamp.Sub(s.startedAt)
	}
	return s.clock.Now().Sub(s.startedAt)
}

// Type feeds input runes into the session. The first rune starts the
// clock. Input is capped at the target length; reaching it finishes the
// session. Ignored once finished.
func (s *Session) Type(runes []rune) {
	if s.state == StateFinished {
		return
	}
	for _, r := range runes {
		if s.state == StateIdle {
			s.state = StateRunning
			s.startedAt = s.clock.Now()
			s.remaining = s.duration
		}
		if len(s.typed) >= len(s.target) {
			s.finish()
			return
		}
		s.typed = append(s.typed, r)
		if len(s.typed) >= len(s.target) {
			s.finish()
			return
		}
	}
}

// Backspace removes the last typed rune.
func (s *Session) Backspace() {
	if s.state != StateRunning || len(s.typed) == 0 {
		return
	}
	s.typed = s.typed[:len(s.typed)-1]
}

// CountdownTick consumes one second of the countdown; at zero the session
// finishes. No-op unless running.
func (s *Session) CountdownTick() {
	if s.state != StateRunning {
		return
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.finish()
	}
}

// SampleTick appends the current character-based WPM to the history.
// No-op unless running, so the history is never mutated after finish.
func (s *Session) SampleTick() {
	if s.state != StateRunning {
		return
	}
	s.history = append(s.history, metrics.RawWPM(len(s.typed), s.Elapsed()))
}

// History returns the per-second WPM samples collected so far.
func (s *Session) History() []int { return s.history }

// Snapshot computes live metrics for the typed prefix.
func (s *Session) Snapshot() metrics.Snapshot {
	return metrics.Measure(s.typed, s.target, s.Elapsed())
}

// Result returns the frozen result; ok is false until finished.
func (s *Session) Result() (model.SessionResult, bool) {
	if s.state != StateFinished {
		return model.SessionResult{}, false
	}
	return s.result, true
}

// finish freezes the result exactly once and stops all future ticks.
func (s *Session) finish() {
	if s.finalized {
		return
	}
	s.finalized = true

	now := s.clock.Now()
	elapsed := now.Sub(s.startedAt)
	snap := metrics.Measure(s.typed, s.target, elapsed)
	history := make([]int, len(s.history))
	copy(history, s.history)

	s.result = model.SessionResult{
		ID:              s.id,
		Timestamp:       now,
		Language:        s.language,
		Mode:            s.mode,
		DurationSeconds: s.duration,
		WPMNet:          snap.WPMNet,
		WPMRaw:          snap.WPMRaw,
		AccuracyPercent: snap.AccuracyPercent,
		ConsistencyPct:  metrics.Consistency(history),
		ErrorCount:      snap.ErrorCount,
		CorrectChars:    snap.CorrectChars,
		IncorrectChars:  snap.IncorrectChars,
		WPMHistory:      history,
	}
	s.state = StateFinished
}
