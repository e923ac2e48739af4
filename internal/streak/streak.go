// Package streak tracks consecutive practice days.
package streak

import (
	"math"
	"time"

	"spidertype/internal/model"
)

// Outcome describes what a single transition did to the streak.
type Outcome struct {
	Started  bool // first test ever
	Extended bool // streak grew by one day
	Broken   bool // gap of more than one day reset the streak
}

// Advance applies one completed test at time now to the record and returns
// the updated record. Pure: the caller persists the result. A zero-value
// record is treated as a first-ever test.
//
// The streak advances at most once per calendar day; LastStreakUpdateDate
// guards against redundant same-session invocations double-counting.
func Advance(rec model.StreakRecord, now time.Time) (model.StreakRecord, Outcome) {
	today := DayOf(now)

	if rec.TotalTests == 0 {
		return model.StreakRecord{
			CurrentStreak:        1,
			BestStreak:           1,
			LastTestDate:         today,
			LastStreakUpdateDate: today,
			LastTestDay:          today,
			TestsToday:           1,
			TotalTests:           1,
		}, Outcome{Started: true}
	}

	next := rec
	if SameDay(rec.LastTestDay, today) {
		next.TestsToday = rec.TestsToday + 1
	} else {
		next.TestsToday = 1
	}
	next.LastTestDay = today
	next.TotalTests = rec.TotalTests + 1

	var out Outcome
	days := daysBetween(DayOf(rec.LastTestDate), today)
	alreadyUpdated := SameDay(rec.LastStreakUpdateDate, today)
	switch {
	case days <= 0:
		// Same day (or clock skew): streak unchanged, anchor date kept.
	case days == 1 && !alreadyUpdated:
		next.CurrentStreak = rec.CurrentStreak + 1
		next.LastTestDate = today
		next.LastStreakUpdateDate = today
		out.Extended = true
	case days == 1:
		// Already advanced today; a duplicate invocation is a no-op.
	default:
		next.CurrentStreak = 1
		next.LastTestDate = today
		next.LastStreakUpdateDate = today
		out.Broken = true
	}

	if next.CurrentStreak > next.BestStreak {
		next.BestStreak = next.CurrentStreak
	}
	return next, out
}

// DayOf truncates t to midnight in its own location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween counts whole days from a to b. Rounding absorbs DST shifts.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
