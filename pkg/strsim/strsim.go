// Package strsim provides edit distance and the identity thresholds
// used for fuzzy name matching. Lengths are measured in runes.
package strsim

// Distance returns the Levenshtein distance between a and b. Insertions,
// deletions and substitutions cost 1. Only two rows of length
// min(|a|,|b|)+1 are kept in memory.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	// rb is the shorter one, it defines the row length.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,
				curr[j-1]+1,
				prev[j-1]+cost,
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// MaxEdits returns the number of edits allowed for a name of the given
// length: under 9 runes 1 edit, under 14 runes 2, under 19 runes 3,
// otherwise 4.
func MaxEdits(name string) int {
	l := len([]rune(name))
	switch {
	case l < 9:
		return 1
	case l < 14:
		return 2
	case l < 19:
		return 3
	default:
		return 4
	}
}

// MinIdentity converts the length of a name into the minimal term
// similarity a fuzzy candidate must exceed. The result is
// (len - (maxEdits+1)) / len clamped to [0, 1]. A zero result means
// fuzzy matching is not meaningful for the name.
func MinIdentity(name string) float64 {
	l := len([]rune(name))
	if l == 0 {
		return 0
	}
	res := float64(l-(MaxEdits(name)+1)) / float64(l)
	if res < 0 {
		return 0
	}
	return res
}

// Similarity returns 1 - Distance(a, b)/min(|a|, |b|), the term
// similarity fuzzy index engines compare against MinIdentity. Two empty
// strings are identical; an empty and a non-empty string have similarity 0.
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	shorter := min(la, lb)
	if shorter == 0 {
		if la == lb {
			return 1
		}
		return 0
	}
	return 1 - float64(Distance(a, b))/float64(shorter)
}

// Accepts reports if candidate is close enough to term for a fuzzy
// query with the given minimal identity.
func Accepts(term, candidate string, minIdentity float64) bool {
	return Similarity(term, candidate) > minIdentity
}
