// Package model defines shared data structures.
package model

import "time"

// AllowedDurations lists the selectable test durations in seconds.
var AllowedDurations = []int{15, 30, 60, 120}

// ValidDuration reports whether d is one of the selectable durations.
func ValidDuration(d int) bool {
	for _, allowed := range AllowedDurations {
		if d == allowed {
			return true
		}
	}
	return false
}

// Config defines practice settings.
type Config struct {
	Language        string
	Mode            string // "code" or "words"
	DurationSeconds int
	Words           int
	CapsPct         float64
	PunctPct        float64
	PunctSet        string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Language    string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionResult captures a completed typing test. Immutable once created.
type SessionResult struct {
	ID              string
	Timestamp       time.Time
	Language        string
	Mode            string
	DurationSeconds int
	WPMNet          int
	WPMRaw          int
	AccuracyPercent int
	ConsistencyPct  int
	ErrorCount      int
	CorrectChars    int
	IncorrectChars  int
	WPMHistory      []int // one net-WPM sample per elapsed second
}

// StreakRecord tracks consecutive practice days. A single record per
// profile, advanced at most once per calendar day by the streak transition.
type StreakRecord struct {
	CurrentStreak        int
	BestStreak           int
	LastTestDate         time.Time // day the streak last advanced or reset
	LastStreakUpdateDate time.Time // guard against double-incrementing within one day
	LastTestDay          time.Time // day of the most recent test, anchors TestsToday
	TestsToday           int
	TotalTests           int
}

// XPAward is the XP breakdown for one completed test.
type XPAward struct {
	Base              int
	WPMBonus          int
	AccuracyBonus     int
	DurationBonus     int
	ConsistencyBonus  int
	StreakBonus       int
	ComboBonus        int
	AchievementsBonus int
	Multiplier        float64
	Total             int
}

// LevelInfo describes progression derived from cumulative XP.
type LevelInfo struct {
	Level           int
	TotalXP         int
	XPIntoLevel     int
	XPForLevel      int
	ProgressPercent float64
}

// UnlockedAchievement records a single achievement unlock. Append-only;
// a profile never unlocks the same achievement twice.
type UnlockedAchievement struct {
	AchievementID string
	UnlockedAt    time.Time
}
