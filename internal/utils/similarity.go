package utils

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// CalculateSimilarity returns a normalized edit-distance similarity in [0,1]
// between two strings: 1 - levenshtein(a,b) / max(runeLen(a), runeLen(b)).
// Identical strings (including two empty strings) score 1.0, and an empty
// string against a non-empty one scores 0.0. Symmetric in its arguments.
//
// The distance comes from diffmatchpatch: a character-level diff reduced with
// DiffLevenshtein, which counts runes and treats paired insert/delete runs as
// substitutions.
func CalculateSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	distance := dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if distance > maxLen {
		distance = maxLen
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
