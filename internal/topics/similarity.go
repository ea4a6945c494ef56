package topics

import "strings"

// DiceSimilarity calculates the Sørensen-Dice coefficient over character
// bigrams of the two strings, case-insensitive and ignoring whitespace.
// Returns a value in [0, 1]; identical strings score 1, strings shorter than
// one bigram score 0 unless equal. This is a pure function with no side
// effects.
func DiceSimilarity(a, b string) float64 {
	a = normalizeForSimilarity(a)
	b = normalizeForSimilarity(b)
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	// Bigram multiset of a.
	bigrams := make(map[string]int)
	for i := 0; i < len(a)-1; i++ {
		bigrams[a[i:i+2]]++
	}

	intersection := 0
	for i := 0; i < len(b)-1; i++ {
		bg := b[i : i+2]
		if bigrams[bg] > 0 {
			bigrams[bg]--
			intersection++
		}
	}

	return 2.0 * float64(intersection) / float64(len(a)-1+len(b)-1)
}

// normalizeForSimilarity lowercases s and strips all whitespace so that
// formatting differences do not affect the bigram profile.
func normalizeForSimilarity(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
