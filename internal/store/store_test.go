package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spidertype/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "spidertype.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func testResult(id string, ts time.Time) model.SessionResult {
	return model.SessionResult{
		ID:              id,
		Timestamp:       ts,
		Language:        "go",
		Mode:            "code",
		DurationSeconds: 60,
		WPMNet:          72,
		WPMRaw:          75,
		AccuracyPercent: 96,
		ConsistencyPct:  88,
		ErrorCount:      4,
		CorrectChars:    356,
		IncorrectChars:  4,
		WPMHistory:      []int{70, 72, 74},
	}
}

func TestInsertAndListResults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.InsertResult(ctx, testResult("a", base)))
	require.NoError(t, s.InsertResult(ctx, testResult("b", base.Add(time.Hour))))

	results, err := s.ListResults(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "b", results[1].ID)
	assert.Equal(t, []int{70, 72, 74}, results[0].WPMHistory)
	assert.True(t, results[0].Timestamp.Equal(base))
}

func TestListResultsFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	goRes := testResult("a", base)
	pyRes := testResult("b", base.Add(time.Hour))
	pyRes.Language = "python"
	late := testResult("c", base.Add(2*time.Hour))
	require.NoError(t, s.InsertResult(ctx, goRes))
	require.NoError(t, s.InsertResult(ctx, pyRes))
	require.NoError(t, s.InsertResult(ctx, late))

	byLang, err := s.ListResults(ctx, model.StatsConfig{Language: "python"})
	require.NoError(t, err)
	require.Len(t, byLang, 1)
	assert.Equal(t, "b", byLang[0].ID)

	since := base.Add(90 * time.Minute)
	recent, err := s.ListResults(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "c", recent[0].ID)

	last, err := s.ListResults(ctx, model.StatsConfig{Last: 2})
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].ID, "Last keeps the newest results")
}

func TestCountPerfectResults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	perfect := testResult("a", base)
	perfect.AccuracyPercent = 100
	require.NoError(t, s.InsertResult(ctx, perfect))
	require.NoError(t, s.InsertResult(ctx, testResult("b", base.Add(time.Hour))))

	count, err := s.CountPerfectResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStreakRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StreakRecord{}, empty, "missing row reads as zero record")

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	rec := model.StreakRecord{
		CurrentStreak:        4,
		BestStreak:           9,
		LastTestDate:         day,
		LastStreakUpdateDate: day,
		LastTestDay:          day,
		TestsToday:           3,
		TotalTests:           41,
	}
	require.NoError(t, s.SaveStreak(ctx, rec))

	got, err := s.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// Upsert keeps a single row.
	rec.CurrentStreak = 5
	require.NoError(t, s.SaveStreak(ctx, rec))
	got, err = s.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, got.CurrentStreak)
}

func TestAchievementUnlocks(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ts := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Unlock(ctx, model.UnlockedAchievement{AchievementID: "first_test", UnlockedAt: ts}))
	require.NoError(t, s.Unlock(ctx, model.UnlockedAchievement{AchievementID: "speed_50", UnlockedAt: ts.Add(time.Minute)}))
	// Duplicate unlock is a no-op.
	require.NoError(t, s.Unlock(ctx, model.UnlockedAchievement{AchievementID: "first_test", UnlockedAt: ts.Add(time.Hour)}))

	unlocked, err := s.UnlockedAchievements(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"first_test": true, "speed_50": true}, unlocked)

	list, err := s.ListUnlocked(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first_test", list[0].AchievementID)
	assert.True(t, list[0].UnlockedAt.Equal(ts), "first unlock timestamp wins")
}

func TestTotalXPRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	total, err := s.TotalXP(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	require.NoError(t, s.SetTotalXP(ctx, 390))
	require.NoError(t, s.SetTotalXP(ctx, 640))

	total, err = s.TotalXP(ctx)
	require.NoError(t, err)
	assert.Equal(t, 640, total)
}
