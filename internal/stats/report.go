package stats

import (
	"context"
	"fmt"
	"io"

	"spidertype/internal/achievement"
	"spidertype/internal/model"
	"spidertype/internal/store"
	"spidertype/internal/xp"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Results  []model.SessionResult
	Summary  Summary
	Streak   model.StreakRecord
	Level    model.LevelInfo
	Unlocked []model.UnlockedAchievement
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	results, err := st.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	streak, err := st.Streak(ctx)
	if err != nil {
		return Report{}, err
	}
	totalXP, err := st.TotalXP(ctx)
	if err != nil {
		return Report{}, err
	}
	unlocked, err := st.ListUnlocked(ctx)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Results:  results,
		Summary:  Summarize(results),
		Streak:   streak,
		Level:    xp.CalculateLevel(totalXP),
		Unlocked: unlocked,
	}, nil
}

// RenderReport prints the full plain-text report.
func RenderReport(w io.Writer, report Report, cfg model.StatsConfig) error {
	if err := RenderSummary(w, report.Results); err != nil {
		return err
	}
	if len(report.Results) == 0 {
		return nil
	}

	lines := []string{
		fmt.Sprintf("Level %d (%s): %d XP, %.0f%% into level",
			report.Level.Level, xp.LevelTitle(report.Level.Level),
			report.Level.TotalXP, report.Level.ProgressPercent),
		fmt.Sprintf("Streak: %d day(s), best %d", report.Streak.CurrentStreak, report.Streak.BestStreak),
		fmt.Sprintf("Achievements: %d/%d", len(report.Unlocked), len(achievement.Catalog)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if err := RenderHistory(w, report.Results, 10); err != nil {
		return err
	}
	return RenderCurves(w, report.Results, cfg.CurveWindow)
}
