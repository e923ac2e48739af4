package xp

import (
	"math"

	"spidertype/internal/model"
)

// CalculateLevel resolves cumulative XP into a level and progress toward
// the next one. The boundary to leave level L is floor(100 * L^1.5).
func CalculateLevel(totalXP int) model.LevelInfo {
	level := 1
	xpForCurrent := 0
	xpForNext := 100
	for totalXP >= xpForNext {
		level++
		xpForCurrent = xpForNext
		xpForNext = int(math.Floor(100 * math.Pow(float64(level), 1.5)))
	}

	into := totalXP - xpForCurrent
	needed := xpForNext - xpForCurrent
	progress := 100 * float64(into) / float64(needed)
	if progress > 100 {
		progress = 100
	}
	if progress < 0 {
		progress = 0
	}
	return model.LevelInfo{
		Level:           level,
		TotalXP:         totalXP,
		XPIntoLevel:     into,
		XPForLevel:      needed,
		ProgressPercent: progress,
	}
}

// LevelTitle returns the display title for a level.
func LevelTitle(level int) string {
	switch {
	case level >= 100:
		return "Typing Legend"
	case level >= 75:
		return "Typing Master"
	case level >= 50:
		return "Speed Demon"
	case level >= 40:
		return "Expert Typist"
	case level >= 30:
		return "Advanced Typist"
	case level >= 20:
		return "Skilled Typist"
	case level >= 10:
		return "Intermediate Typist"
	case level >= 5:
		return "Novice Typist"
	default:
		return "Beginner Typist"
	}
}

// MotivationalMessage picks a results-screen message for the XP earned.
func MotivationalMessage(xpEarned int) string {
	switch {
	case xpEarned >= 150:
		return "Outstanding performance! Keep it up!"
	case xpEarned >= 100:
		return "Excellent work! You're on fire!"
	case xpEarned >= 75:
		return "Great job! You're improving fast!"
	case xpEarned >= 50:
		return "Nice work! Keep practicing!"
	case xpEarned >= 25:
		return "Good effort! You're making progress!"
	default:
		return "Keep going! Every test makes you better!"
	}
}
