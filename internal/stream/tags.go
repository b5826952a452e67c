package stream

import "strings"

// holdbackLen returns the length of the longest suffix of buf that is a
// strict prefix of any of the given tags. That suffix must be retained until
// the next delta arrives: it may turn out to be the start of a tag, and
// emitting it as content would be a misemit that can never be retracted.
func holdbackLen(buf string, tags ...string) int {
	max := len(buf)
	best := 0
	for _, tag := range tags {
		limit := len(tag) - 1
		if limit > max {
			limit = max
		}
		for n := limit; n > best; n-- {
			if strings.HasSuffix(buf, tag[:n]) {
				best = n
				break
			}
		}
	}
	return best
}

// findEarliest returns the index of the first occurrence of any marker in
// buf and which marker matched. Returns (-1, "") when none occurs.
func findEarliest(buf string, markers ...string) (int, string) {
	bestIdx := -1
	bestMarker := ""
	for _, m := range markers {
		if i := strings.Index(buf, m); i >= 0 && (bestIdx < 0 || i < bestIdx) {
			bestIdx = i
			bestMarker = m
		}
	}
	return bestIdx, bestMarker
}
