package service

import "strings"

// nameMatchThreshold is the similarity a name must exceed to count as a match.
const nameMatchThreshold = 0.8

// NormalizeName lowercases, trims and collapses internal whitespace.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// CharOverlapSimilarity counts the characters of the shorter string that occur
// anywhere in the longer one and divides by the longer length. It is not an
// edit distance: "ab" and "ba" score 1.
func CharOverlapSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longer, shorter := rb, ra
	if len(ra) > len(rb) {
		longer, shorter = ra, rb
	}
	if len(longer) == 0 {
		return 1
	}

	present := make(map[rune]struct{}, len(longer))
	for _, r := range longer {
		present[r] = struct{}{}
	}

	matches := 0
	for _, r := range shorter {
		if _, ok := present[r]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(longer))
}

// NamesMatch reports whether two names plausibly denote the same person:
// equal after normalisation, one containing the other, or similarity above 0.8.
func NamesMatch(provided, expected string) bool {
	a, b := NormalizeName(provided), NormalizeName(expected)
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return CharOverlapSimilarity(a, b) > nameMatchThreshold
}
