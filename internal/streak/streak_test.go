package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"spidertype/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestAdvanceFirstTest(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 30, 0, 0, time.Local)
	rec, out := Advance(model.StreakRecord{}, now)
	assert.True(t, out.Started)
	assert.Equal(t, 1, rec.CurrentStreak)
	assert.Equal(t, 1, rec.BestStreak)
	assert.Equal(t, 1, rec.TestsToday)
	assert.Equal(t, 1, rec.TotalTests)
	assert.Equal(t, day(2024, 3, 10), rec.LastTestDate)
}

func TestAdvanceSameDay(t *testing.T) {
	first, _ := Advance(model.StreakRecord{}, day(2024, 3, 10).Add(9*time.Hour))
	second, out := Advance(first, day(2024, 3, 10).Add(18*time.Hour))
	assert.False(t, out.Extended)
	assert.False(t, out.Broken)
	assert.Equal(t, 1, second.CurrentStreak)
	assert.Equal(t, 2, second.TestsToday)
	assert.Equal(t, 2, second.TotalTests)
	assert.Equal(t, day(2024, 3, 10), second.LastTestDate)
}

func TestAdvanceNextDayExtends(t *testing.T) {
	first, _ := Advance(model.StreakRecord{}, day(2024, 3, 10))
	second, out := Advance(first, day(2024, 3, 11))
	assert.True(t, out.Extended)
	assert.Equal(t, 2, second.CurrentStreak)
	assert.Equal(t, 2, second.BestStreak)
	assert.Equal(t, 1, second.TestsToday)
	assert.Equal(t, day(2024, 3, 11), second.LastTestDate)
}

func TestAdvanceGapBreaksStreak(t *testing.T) {
	rec := model.StreakRecord{
		CurrentStreak: 6,
		BestStreak:    6,
		LastTestDate:  day(2024, 3, 10),
		LastTestDay:   day(2024, 3, 10),
		TestsToday:    3,
		TotalTests:    40,
	}
	next, out := Advance(rec, day(2024, 3, 12))
	assert.True(t, out.Broken)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 6, next.BestStreak, "best streak never decreases")
	assert.Equal(t, 1, next.TestsToday)
	assert.Equal(t, 41, next.TotalTests)
}

func TestAdvanceIdempotentPerDay(t *testing.T) {
	rec := model.StreakRecord{
		CurrentStreak: 4,
		BestStreak:    4,
		LastTestDate:  day(2024, 3, 10),
		LastTestDay:   day(2024, 3, 10),
		TestsToday:    1,
		TotalTests:    10,
	}
	now := day(2024, 3, 11).Add(8 * time.Hour)
	first, out1 := Advance(rec, now)
	assert.True(t, out1.Extended)
	assert.Equal(t, 5, first.CurrentStreak)

	// A redundant invocation the same day must not advance again. The
	// anchor date moved to today, so days-since is zero; the updated-today
	// guard additionally covers records whose anchor was left behind.
	second, out2 := Advance(first, now.Add(time.Minute))
	assert.False(t, out2.Extended)
	assert.Equal(t, 5, second.CurrentStreak)

	stale := rec
	stale.LastStreakUpdateDate = day(2024, 3, 11)
	guarded, out3 := Advance(stale, now)
	assert.False(t, out3.Extended)
	assert.Equal(t, 4, guarded.CurrentStreak)
}

func TestAdvanceBestStreakFollowsCurrent(t *testing.T) {
	rec := model.StreakRecord{
		CurrentStreak: 9,
		BestStreak:    9,
		LastTestDate:  day(2024, 3, 10),
		LastTestDay:   day(2024, 3, 10),
		TestsToday:    1,
		TotalTests:    9,
	}
	next, _ := Advance(rec, day(2024, 3, 11))
	assert.Equal(t, 10, next.CurrentStreak)
	assert.Equal(t, 10, next.BestStreak)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 10, 1, 0, 0, 0, time.Local)
	b := time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.Add(time.Minute)))
}
