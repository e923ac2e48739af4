// Package metrics computes typing speed and accuracy measurements.
package metrics

import (
	"math"
	"time"
)

// Snapshot holds the measurements for a typed prefix at a point in time.
type Snapshot struct {
	CorrectChars    int
	IncorrectChars  int
	ErrorCount      int
	AccuracyPercent int
	WPMNet          int
	WPMRaw          int
}

// Measure compares the typed prefix against the target position-wise and
// derives error counts, accuracy, and WPM for the elapsed time. Characters
// typed beyond the end of the target count as incorrect.
func Measure(typed, target []rune, elapsed time.Duration) Snapshot {
	correct, incorrect := compare(typed, target)
	errors := incorrect
	return Snapshot{
		CorrectChars:    correct,
		IncorrectChars:  incorrect,
		ErrorCount:      errors,
		AccuracyPercent: Accuracy(len(typed), errors),
		WPMRaw:          RawWPM(len(typed), elapsed),
		WPMNet:          NetWPM(len(typed), errors, elapsed),
	}
}

func compare(typed, target []rune) (correct, incorrect int) {
	limit := len(typed)
	if len(target) < limit {
		limit = len(target)
	}
	for i := 0; i < limit; i++ {
		if typed[i] == target[i] {
			correct++
		} else {
			incorrect++
		}
	}
	// Overshoot past the target has nothing to match against.
	incorrect += len(typed) - limit
	return correct, incorrect
}

// Accuracy returns the rounded percentage of correct characters. An empty
// prefix is 100% accurate.
func Accuracy(typedLen, errors int) int {
	if typedLen <= 0 {
		return 100
	}
	acc := 100 * float64(typedLen-errors) / float64(typedLen)
	if acc < 0 {
		acc = 0
	}
	return int(math.Round(acc))
}

// RawWPM returns uncorrected words per minute using the standard
// five-characters-per-word convention.
func RawWPM(typedLen int, elapsed time.Duration) int {
	minutes := elapsed.Minutes()
	if minutes <= 0 || typedLen <= 0 {
		return 0
	}
	return int(math.Round((float64(typedLen) / 5.0) / minutes))
}

// NetWPM returns raw WPM with the error rate amortized over the elapsed
// time subtracted, floored at zero.
func NetWPM(typedLen, errors int, elapsed time.Duration) int {
	minutes := elapsed.Minutes()
	if minutes <= 0 || typedLen <= 0 {
		return 0
	}
	raw := float64(RawWPM(typedLen, elapsed))
	penalty := (float64(errors) / 5.0) / minutes
	net := int(math.Round(raw - penalty))
	if net < 0 {
		net = 0
	}
	return net
}

// Consistency scores the spread of per-second WPM samples: 100 means zero
// variance, 0 means the spread covers the whole range. Undefined (0) for
// fewer than two samples or an all-zero history.
func Consistency(history []int) int {
	if len(history) < 2 {
		return 0
	}
	minVal, maxVal := history[0], history[0]
	for _, v := range history[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return 0
	}
	score := 100 * (1 - float64(maxVal-minVal)/float64(maxVal))
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}
