package snippets

import (
	"math/rand"
	"unicode"
)

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
