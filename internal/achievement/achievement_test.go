package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(achievements []Achievement) []string {
	var out []string
	for _, a := range achievements {
		out = append(out, a.ID)
	}
	return out
}

func TestEvaluateFirstTest(t *testing.T) {
	got := Evaluate(Input{TotalTests: 1, Hour: 12}, nil)
	assert.Equal(t, []string{"first_test"}, ids(got))
}

func TestEvaluateHighestSpeedTierOnly(t *testing.T) {
	got := Evaluate(Input{WPM: 120, TotalTests: 5, Hour: 12}, nil)
	assert.Equal(t, []string{"speed_100"}, ids(got))

	got = Evaluate(Input{WPM: 155, TotalTests: 5, Hour: 12}, nil)
	assert.Equal(t, []string{"speed_150"}, ids(got))
}

func TestEvaluateNeverReunlocks(t *testing.T) {
	in := Input{WPM: 60, Accuracy: 100, TotalTests: 5, Hour: 12}
	first := Evaluate(in, nil)
	assert.ElementsMatch(t, []string{"speed_50", "perfect"}, ids(first))

	unlocked := map[string]bool{}
	for _, a := range first {
		unlocked[a.ID] = true
	}
	second := Evaluate(in, unlocked)
	assert.Empty(t, second)
}

func TestEvaluatePerfectTen(t *testing.T) {
	got := Evaluate(Input{Accuracy: 100, PerfectAccuracyCount: 10, TotalTests: 20, Hour: 12},
		map[string]bool{"perfect": true})
	assert.Equal(t, []string{"perfect_10"}, ids(got))
}

func TestEvaluateStreakTiers(t *testing.T) {
	got := Evaluate(Input{Streak: 31, TotalTests: 40, Hour: 12}, nil)
	assert.Equal(t, []string{"streak_30"}, ids(got))
}

func TestEvaluateVolumeTiers(t *testing.T) {
	got := Evaluate(Input{TotalTests: 500, Hour: 12}, nil)
	assert.Equal(t, []string{"tests_500"}, ids(got))
}

func TestEvaluateHourWindows(t *testing.T) {
	tests := []struct {
		hour int
		want []string
	}{
		{1, []string{"early_bird", "night_owl"}}, // midnight overlap double-awards
		{5, []string{"early_bird"}},
		{6, nil},
		{12, nil},
		{22, []string{"night_owl"}},
		{23, []string{"night_owl"}},
	}
	for _, tt := range tests {
		got := Evaluate(Input{TotalTests: 5, Hour: tt.hour}, nil)
		assert.Equal(t, tt.want, ids(got), "hour %d", tt.hour)
	}
}

func TestEvaluateConsistencyAndMarathon(t *testing.T) {
	got := Evaluate(Input{Consistency: 96, TestsToday: 10, TotalTests: 12, Hour: 12}, nil)
	assert.ElementsMatch(t, []string{"consistency", "marathon"}, ids(got))
}

func TestTotalXP(t *testing.T) {
	perfect, _ := ByID("perfect")
	first, _ := ByID("first_test")
	assert.Equal(t, 150, TotalXP([]Achievement{perfect, first}))
	assert.Equal(t, 0, TotalXP(nil))
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Catalog {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.Greater(t, a.XP, 0)
	}
}
