// Package progress turns finished test results into streak, achievement,
// XP, and level updates, and hands them to the persistence layer.
package progress

import (
	"context"

	"spidertype/internal/achievement"
	"spidertype/internal/model"
	"spidertype/internal/streak"
	"spidertype/internal/xp"
)

// Repository is the persistence contract the finalizer needs. The store
// package provides the SQLite implementation; tests inject fakes.
type Repository interface {
	Streak(ctx context.Context) (model.StreakRecord, error)
	SaveStreak(ctx context.Context, rec model.StreakRecord) error
	UnlockedAchievements(ctx context.Context) (map[string]bool, error)
	Unlock(ctx context.Context, ua model.UnlockedAchievement) error
	TotalXP(ctx context.Context) (int, error)
	SetTotalXP(ctx context.Context, total int) error
	InsertResult(ctx context.Context, res model.SessionResult) error
	CountPerfectResults(ctx context.Context) (int, error)
}

// Summary is everything the results screen shows for one finished test.
type Summary struct {
	Result        model.SessionResult
	Award         model.XPAward
	Level         model.LevelInfo
	LeveledUp     bool
	Streak        model.StreakRecord
	StreakOutcome streak.Outcome
	Achievements  []achievement.Achievement

	// Saved is false when any persistence operation failed. The test
	// still finished and its numbers are valid; nothing is retried.
	Saved bool
}

// Service finalizes completed sessions.
type Service struct {
	repo Repository
}

// NewService creates a finalizer backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Finalize evaluates one finished result: advances the streak, unlocks
// achievements, computes the XP award and level, and writes everything
// through the repository. Persistence failures degrade to Saved=false and
// never surface as errors; the caller is a UI that must keep running. A
// failed read also suppresses the write it would feed, so stored progress
// is never replaced by a fallback value.
//
// combo is the count of tests completed back-to-back in this program run
// before the current one.
func (s *Service) Finalize(ctx context.Context, res model.SessionResult, combo int) Summary {
	saved := true

	// A failed read leaves the matching write skipped: the fallback value
	// is a guess for display, and writing state derived from it would
	// clobber whatever the store actually holds.
	prevStreak, err := s.repo.Streak(ctx)
	streakOK := err == nil
	if !streakOK {
		prevStreak = model.StreakRecord{}
		saved = false
	}
	unlocked, err := s.repo.UnlockedAchievements(ctx)
	unlockedOK := err == nil
	if !unlockedOK {
		unlocked = map[string]bool{}
		saved = false
	}
	oldTotal, err := s.repo.TotalXP(ctx)
	totalOK := err == nil
	if !totalOK {
		oldTotal = 0
		saved = false
	}
	perfectCount, err := s.repo.CountPerfectResults(ctx)
	if err != nil {
		perfectCount = 0
		saved = false
	}
	if res.AccuracyPercent >= 100 {
		perfectCount++
	}

	rec, outcome := streak.Advance(prevStreak, res.Timestamp)

	fresh := achievement.Evaluate(achievement.Input{
		WPM:                  res.WPMNet,
		Accuracy:             res.AccuracyPercent,
		Consistency:          res.ConsistencyPct,
		Streak:               rec.CurrentStreak,
		TotalTests:           rec.TotalTests,
		TestsToday:           rec.TestsToday,
		PerfectAccuracyCount: perfectCount,
		Hour:                 res.Timestamp.Hour(),
	}, unlocked)

	award := xp.Calculate(res.WPMNet, res.AccuracyPercent, res.DurationSeconds,
		res.ConsistencyPct, rec.CurrentStreak, combo)
	// Achievement rewards are flat additions, not compounded.
	award.AchievementsBonus = achievement.TotalXP(fresh)
	award.Total += award.AchievementsBonus

	newTotal := oldTotal + award.Total
	level := xp.CalculateLevel(newTotal)
	prevLevel := xp.CalculateLevel(oldTotal)

	if err := s.repo.InsertResult(ctx, res); err != nil {
		saved = false
	}
	if streakOK {
		if err := s.repo.SaveStreak(ctx, rec); err != nil {
			saved = false
		}
	}
	if unlockedOK {
		for _, a := range fresh {
			ua := model.UnlockedAchievement{AchievementID: a.ID, UnlockedAt: res.Timestamp}
			if err := s.repo.Unlock(ctx, ua); err != nil {
				saved = false
			}
		}
	}
	if totalOK {
		if err := s.repo.SetTotalXP(ctx, newTotal); err != nil {
			saved = false
		}
	}

	return Summary{
		Result:        res,
		Award:         award,
		Level:         level,
		LeveledUp:     level.Level > prevLevel.Level,
		Streak:        rec,
		StreakOutcome: outcome,
		Achievements:  fresh,
		Saved:         saved,
	}
}
