// Package xp converts finished test metrics into XP awards and levels.
package xp

import (
	"math"

	"spidertype/internal/model"
)

const (
	baseXPPerTest    = 10
	wpmXPFactor      = 0.5
	accuracyBonusMin = 95
	accuracyBonus    = 20
	perfectBonus     = 50
	consistencyMin   = 80
	consistencyBonus = 15
	comboStep        = 0.05 // 5% per consecutive test in one run
)

var durationMultipliers = map[int]float64{
	15:  0.5,
	30:  1.0,
	60:  1.5,
	120: 2.0,
}

var streakMultipliers = []struct {
	minStreak  int
	multiplier float64
}{
	{100, 3.0},
	{30, 2.0},
	{14, 1.5},
	{7, 1.25},
	{3, 1.1},
}

// Calculate derives the XP breakdown for one completed test. Pure and
// deterministic; achievement rewards are added by the caller afterwards
// and are not compounded by multipliers.
func Calculate(wpm, accuracy, durationSeconds, consistency, streak, combo int) model.XPAward {
	award := model.XPAward{
		Base:       baseXPPerTest,
		WPMBonus:   int(math.Floor(float64(wpm) * wpmXPFactor)),
		Multiplier: 1.0,
	}

	switch {
	case accuracy >= 100:
		award.AccuracyBonus = perfectBonus
	case accuracy >= accuracyBonusMin:
		award.AccuracyBonus = accuracyBonus
	}

	// Unrecognized durations fall back to a neutral multiplier.
	durationMult, ok := durationMultipliers[durationSeconds]
	if !ok {
		durationMult = 1.0
	}
	award.DurationBonus = int(math.Floor(float64(award.Base+award.WPMBonus) * (durationMult - 1)))

	if consistency >= consistencyMin {
		award.ConsistencyBonus = consistencyBonus
	}

	preMultiplier := award.Base + award.WPMBonus + award.AccuracyBonus +
		award.DurationBonus + award.ConsistencyBonus

	streakMult := streakMultiplier(streak)
	award.StreakBonus = int(math.Floor(float64(preMultiplier) * (streakMult - 1)))
	award.Multiplier = streakMult

	if combo > 0 {
		comboMult := 1 + float64(combo)*comboStep
		award.ComboBonus = int(math.Floor(float64(preMultiplier) * (comboMult - 1)))
		award.Multiplier *= comboMult
	}

	award.Total = int(math.Floor(float64(preMultiplier) * award.Multiplier))
	return award
}

func streakMultiplier(streak int) float64 {
	for _, tier := range streakMultipliers {
		if streak >= tier.minStreak {
			return tier.multiplier
		}
	}
	return 1.0
}
