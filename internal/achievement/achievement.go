// Package achievement defines the achievement catalog and unlock rules.
package achievement

// Achievement is a static catalog entry.
type Achievement struct {
	ID          string
	Name        string
	Description string
	XP          int
	Icon        string
}

// Catalog is the full achievement set, in display order.
var Catalog = []Achievement{
	{ID: "first_test", Name: "First Steps", Description: "Complete your first test", XP: 50, Icon: "🎯"},
	{ID: "speed_50", Name: "Speed Demon", Description: "Reach 50 WPM", XP: 100, Icon: "⚡"},
	{ID: "speed_100", Name: "Lightning Fast", Description: "Reach 100 WPM", XP: 250, Icon: "⚡⚡"},
	{ID: "speed_150", Name: "Supersonic", Description: "Reach 150 WPM", XP: 500, Icon: "🚀"},
	{ID: "perfect", Name: "Perfectionist", Description: "Get 100% accuracy", XP: 100, Icon: "💯"},
	{ID: "perfect_10", Name: "Flawless Streak", Description: "Get 100% accuracy 10 times", XP: 300, Icon: "✨"},
	{ID: "streak_7", Name: "Week Warrior", Description: "7-day streak", XP: 200, Icon: "🔥"},
	{ID: "streak_30", Name: "Month Master", Description: "30-day streak", XP: 1000, Icon: "🔥🔥"},
	{ID: "streak_100", Name: "Century Champion", Description: "100-day streak", XP: 5000, Icon: "👑"},
	{ID: "tests_100", Name: "Dedicated Typist", Description: "Complete 100 tests", XP: 500, Icon: "📈"},
	{ID: "tests_500", Name: "Typing Veteran", Description: "Complete 500 tests", XP: 2000, Icon: "🏆"},
	{ID: "tests_1000", Name: "Typing Legend", Description: "Complete 1000 tests", XP: 5000, Icon: "👑"},
	{ID: "night_owl", Name: "Night Owl", Description: "Complete a test after midnight", XP: 50, Icon: "🦉"},
	{ID: "early_bird", Name: "Early Bird", Description: "Complete a test before 6 AM", XP: 50, Icon: "🐦"},
	{ID: "marathon", Name: "Marathon Runner", Description: "Complete 10 tests in one day", XP: 300, Icon: "🏃"},
	{ID: "consistency", Name: "Consistency King", Description: "Achieve 95%+ consistency", XP: 150, Icon: "📊"},
}

// ByID looks up a catalog entry.
func ByID(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Input carries the per-test metrics and cumulative stats the rules see.
type Input struct {
	WPM                  int
	Accuracy             int
	Consistency          int
	Streak               int
	TotalTests           int
	TestsToday           int
	PerfectAccuracyCount int
	Hour                 int // local wall-clock hour of completion
}

// Evaluate returns the achievements newly satisfied by in, skipping IDs in
// unlocked. Tiered categories emit only the highest threshold met, so a
// fast first test does not shower all three speed tiers at once.
//
// Between midnight and 02:00 both early_bird and night_owl conditions hold
// and both fire; deliberate, see DESIGN.md.
func Evaluate(in Input, unlocked map[string]bool) []Achievement {
	var fresh []Achievement
	add := func(id string) {
		if unlocked[id] {
			return
		}
		if a, ok := ByID(id); ok {
			fresh = append(fresh, a)
		}
	}

	if in.TotalTests == 1 {
		add("first_test")
	}

	switch {
	case in.WPM >= 150:
		add("speed_150")
	case in.WPM >= 100:
		add("speed_100")
	case in.WPM >= 50:
		add("speed_50")
	}

	if in.Accuracy >= 100 {
		add("perfect")
		if in.PerfectAccuracyCount >= 10 {
			add("perfect_10")
		}
	}

	switch {
	case in.Streak >= 100:
		add("streak_100")
	case in.Streak >= 30:
		add("streak_30")
	case in.Streak >= 7:
		add("streak_7")
	}

	switch {
	case in.TotalTests >= 1000:
		add("tests_1000")
	case in.TotalTests >= 500:
		add("tests_500")
	case in.TotalTests >= 100:
		add("tests_100")
	}

	if in.Hour >= 0 && in.Hour < 6 {
		add("early_bird")
	}
	if in.Hour >= 22 || in.Hour < 2 {
		add("night_owl")
	}

	if in.Consistency >= 95 {
		add("consistency")
	}

	if in.TestsToday >= 10 {
		add("marathon")
	}

	return fresh
}

// TotalXP sums the rewards of the given achievements.
func TotalXP(achievements []Achievement) int {
	total := 0
	for _, a := range achievements {
		total += a.XP
	}
	return total
}
