package parser

// Simple spell checker for "did you mean" notes on unresolved names.

import (
	"strings"
	"unicode"
)

// Nearest returns the element of candidates nearest to x using the
// Levenshtein metric, or "" when nothing is close enough.
func Nearest(x string, candidates []string) string {
	// Ignore underscores and case when matching.
	fold := func(s string) string {
		return strings.Map(func(r rune) rune {
			if r == '_' {
				return -1
			}
			return unicode.ToLower(r)
		}, s)
	}

	x = fold(x)

	var best string
	bestD := (len(x) + 1) / 2 // allow up to 50% typos
	for _, c := range candidates {
		d := levenshtein(x, fold(c), bestD)
		if d < bestD {
			bestD = d
			best = c
		}
	}
	return best
}

// levenshtein returns the edit distance between the byte strings x and y.
// If the distance exceeds limit it may return early with a value > limit.
func levenshtein(x, y string, limit int) int {
	if len(x) > len(y) {
		x, y = y, x
	}
	for i := 0; i < len(x); i++ {
		if x[i] != y[i] {
			x = x[i:]
			y = y[i:]
			break
		}
	}
	if x == "" {
		return len(y)
	}

	row := make([]int, len(y)+1)
	for i := range row {
		row[i] = i
	}
	for i := 1; i <= len(x); i++ {
		row[0] = i
		best := i
		prev := i - 1
		for j := 1; j <= len(y); j++ {
			a := prev
			if x[i-1] != y[j-1] {
				a++
			}
			k := min(a, 1+row[j-1], 1+row[j])
			prev, row[j] = row[j], k
			best = min(best, k)
		}
		if best > limit {
			return best
		}
	}
	return row[len(y)]
}
