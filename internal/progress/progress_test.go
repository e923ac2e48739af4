package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spidertype/internal/model"
)

// memRepo is an in-memory Repository for tests.
type memRepo struct {
	streak         model.StreakRecord
	unlocked       map[string]bool
	totalXP        int
	results        []model.SessionResult
	failWrites     bool
	failStreakRead bool
	failTotalRead  bool
	unlockCalls    []string
}

func newMemRepo() *memRepo {
	return &memRepo{unlocked: map[string]bool{}}
}

var errBroken = errors.New("store unavailable")

func (r *memRepo) Streak(context.Context) (model.StreakRecord, error) {
	if r.failStreakRead {
		return model.StreakRecord{}, errBroken
	}
	return r.streak, nil
}

func (r *memRepo) SaveStreak(_ context.Context, rec model.StreakRecord) error {
	if r.failWrites {
		return errBroken
	}
	r.streak = rec
	return nil
}

func (r *memRepo) UnlockedAchievements(context.Context) (map[string]bool, error) {
	out := map[string]bool{}
	for id := range r.unlocked {
		out[id] = true
	}
	return out, nil
}

func (r *memRepo) Unlock(_ context.Context, ua model.UnlockedAchievement) error {
	if r.failWrites {
		return errBroken
	}
	r.unlocked[ua.AchievementID] = true
	r.unlockCalls = append(r.unlockCalls, ua.AchievementID)
	return nil
}

func (r *memRepo) TotalXP(context.Context) (int, error) {
	if r.failTotalRead {
		return 0, errBroken
	}
	return r.totalXP, nil
}

func (r *memRepo) SetTotalXP(_ context.Context, total int) error {
	if r.failWrites {
		return errBroken
	}
	r.totalXP = total
	return nil
}

func (r *memRepo) InsertResult(_ context.Context, res model.SessionResult) error {
	if r.failWrites {
		return errBroken
	}
	r.results = append(r.results, res)
	return nil
}

func (r *memRepo) CountPerfectResults(context.Context) (int, error) {
	count := 0
	for _, res := range r.results {
		if res.AccuracyPercent >= 100 {
			count++
		}
	}
	return count, nil
}

func sampleResult(ts time.Time) model.SessionResult {
	return model.SessionResult{
		ID:              "res-1",
		Timestamp:       ts,
		Language:        "go",
		Mode:            "code",
		DurationSeconds: 60,
		WPMNet:          80,
		WPMRaw:          82,
		AccuracyPercent: 100,
		ConsistencyPct:  90,
		CorrectChars:    400,
		WPMHistory:      []int{78, 80, 82},
	}
}

func noon() time.Time {
	return time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
}

func TestFinalizeFirstSession(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	sum := svc.Finalize(context.Background(), sampleResult(noon()), 0)

	require.True(t, sum.Saved)
	assert.True(t, sum.StreakOutcome.Started)
	assert.Equal(t, 1, sum.Streak.CurrentStreak)
	assert.Equal(t, 1, sum.Streak.TotalTests)

	// base 10 + wpm 40 + perfect 50 + duration 25 + consistency 15 = 140,
	// plus first_test (50), speed_50 (100), perfect (100) achievements.
	assert.Equal(t, 140, sum.Award.Total-sum.Award.AchievementsBonus)
	assert.Equal(t, 250, sum.Award.AchievementsBonus)
	assert.Equal(t, 390, sum.Award.Total)
	assert.Equal(t, 390, repo.totalXP)
	assert.ElementsMatch(t, []string{"first_test", "speed_50", "perfect"}, repo.unlockCalls)
	require.Len(t, repo.results, 1)
}

func TestFinalizeSecondSessionSameDay(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	svc.Finalize(ctx, sampleResult(noon()), 0)
	sum := svc.Finalize(ctx, sampleResult(noon().Add(time.Hour)), 1)

	assert.Equal(t, 1, sum.Streak.CurrentStreak, "same-day tests keep the streak")
	assert.Equal(t, 2, sum.Streak.TestsToday)
	assert.Equal(t, 2, sum.Streak.TotalTests)
	assert.Empty(t, sum.Achievements, "nothing re-unlocks")
	assert.Greater(t, sum.Award.ComboBonus, 0)
}

func TestFinalizeBrokenStreak(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	svc.Finalize(ctx, sampleResult(noon()), 0)
	sum := svc.Finalize(ctx, sampleResult(noon().AddDate(0, 0, 2)), 0)

	assert.True(t, sum.StreakOutcome.Broken)
	assert.Equal(t, 1, sum.Streak.CurrentStreak)
}

func TestFinalizePersistenceFailureIsNonFatal(t *testing.T) {
	repo := newMemRepo()
	repo.failWrites = true
	svc := NewService(repo)

	sum := svc.Finalize(context.Background(), sampleResult(noon()), 0)

	assert.False(t, sum.Saved)
	assert.Equal(t, 390, sum.Award.Total, "metrics and XP are still computed")
	assert.Equal(t, 0, repo.totalXP)
}

func TestFinalizeStreakReadFailureLeavesStoredStreakAlone(t *testing.T) {
	repo := newMemRepo()
	repo.streak = model.StreakRecord{
		CurrentStreak: 42,
		BestStreak:    42,
		LastTestDate:  time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local),
		LastTestDay:   time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local),
		TestsToday:    2,
		TotalTests:    300,
	}
	repo.failStreakRead = true
	svc := NewService(repo)

	sum := svc.Finalize(context.Background(), sampleResult(noon()), 0)

	assert.False(t, sum.Saved)
	assert.Equal(t, 42, repo.streak.CurrentStreak, "stored streak must not be overwritten")
	assert.Equal(t, 300, repo.streak.TotalTests)
	assert.Equal(t, 1, sum.Streak.CurrentStreak, "summary is still computed for display")
	require.Len(t, repo.results, 1, "the result itself is still recorded")
	assert.Greater(t, repo.totalXP, 0, "independent writes still proceed")
}

func TestFinalizeTotalXPReadFailureSkipsTotalWrite(t *testing.T) {
	repo := newMemRepo()
	repo.totalXP = 5000
	repo.failTotalRead = true
	svc := NewService(repo)

	sum := svc.Finalize(context.Background(), sampleResult(noon()), 0)

	assert.False(t, sum.Saved)
	assert.Equal(t, 5000, repo.totalXP, "stored total must not be replaced by one award")
	assert.Greater(t, sum.Award.Total, 0)
	require.Len(t, repo.results, 1)
}

func TestFinalizeLevelUp(t *testing.T) {
	repo := newMemRepo()
	repo.totalXP = 90 // 10 short of level 2
	svc := NewService(repo)

	sum := svc.Finalize(context.Background(), sampleResult(noon()), 0)

	assert.True(t, sum.LeveledUp)
	assert.GreaterOrEqual(t, sum.Level.Level, 2)
}

func TestFinalizeAchievementXPNotMultiplied(t *testing.T) {
	repo := newMemRepo()
	repo.streak = model.StreakRecord{
		CurrentStreak:        29,
		BestStreak:           29,
		LastTestDate:         time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local),
		LastTestDay:          time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local),
		LastStreakUpdateDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local),
		TestsToday:           1,
		TotalTests:           29,
	}
	svc := NewService(repo)

	sum := svc.Finalize(context.Background(), sampleResult(noon()), 0)

	// Streak reaches 30: multiplier 2.0 applies to the session XP but the
	// streak_30 reward (1000) is added flat.
	require.Contains(t, achievementIDs(sum), "streak_30")
	withoutAchievements := sum.Award.Total - sum.Award.AchievementsBonus
	assert.Equal(t, 280, withoutAchievements) // floor(140 * 2.0)
	assert.InDelta(t, 2.0, sum.Award.Multiplier, 1e-9)
}

func achievementIDs(sum Summary) []string {
	out := make([]string, 0, len(sum.Achievements))
	for _, a := range sum.Achievements {
		out = append(out, a.ID)
	}
	return out
}
