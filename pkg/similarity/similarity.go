// Package similarity scores a spoken transcript against the expected phrase.
package similarity

import (
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
)

// Feedback tiers, best first.
const (
	TierExcellent = "excellent"
	TierGood      = "good"
	TierClose     = "close"
	TierRetry     = "retry"
)

// accented lists the non-ASCII letters kept by Normalize.
const accented = "àáâãäåæçèéêëìíîïñòóôõöøùúûüýÿœß"

// Normalize lowercases s and drops every rune outside a-z, 0-9, space and
// common accented Latin letters.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		case strings.ContainsRune(accented, r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Score returns 1 - distance/max(len) over the normalized strings, in [0, 1].
// It is 0 when either side normalizes to nothing.
func Score(expected, transcript string) float64 {
	a := []rune(Normalize(expected))
	b := []rune(Normalize(transcript))
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 1 - float64(Distance(a, b))/float64(max(len(a), len(b)))
}

// Distance is the Levenshtein distance with unit costs.
func Distance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// Feedback maps a score onto a tier using the configured lower bounds.
func Feedback(score float64, cfg models.SimilarityConfig) string {
	switch {
	case score >= cfg.Excellent:
		return TierExcellent
	case score >= cfg.Good:
		return TierGood
	case score >= cfg.Close:
		return TierClose
	default:
		return TierRetry
	}
}

// Compare scores a transcript and attaches its feedback tier.
func Compare(expected, transcript string, cfg models.SimilarityConfig) models.SimilarityResponse {
	s := Score(expected, transcript)
	return models.SimilarityResponse{Score: s, Feedback: Feedback(s, cfg)}
}
