// Package daily provides the deterministic date-seeded sampler behind the
// "words of the day" feature. For a fixed calendar date and corpus size the
// sample is fully reproducible, so no sampling table has to be persisted.
package daily

import (
	"math"
	"sort"
	"time"
)

// extraAttempts bounds how many additional draws are made beyond the
// requested count before giving up on filling the sample. Collisions are
// rare for realistic corpus sizes, so the sample is short only when the
// corpus itself is.
const extraAttempts = 20

// SeedForDate derives the sampling seed from a calendar date. The reference
// date is passed in explicitly rather than read from an ambient clock, which
// keeps the day boundary testable and timezone-explicit for the caller.
func SeedForDate(referenceDate time.Time) int64 {
	year, month, day := referenceDate.Date()
	return int64(year)*10000 + int64(month)*100 + int64(day)
}

// Sample returns up to count distinct positions in [0, corpusSize), derived
// reproducibly from the seed. Two calls with the same seed and corpus size
// return the identical set.
//
// The sequence comes from a sine-based hash, not a cryptographic source:
// reproducibility within a day is the only requirement. If the corpus is
// smaller than count, at most corpusSize positions are returned. An empty
// corpus yields an empty sample; callers treat that as "no data available",
// not an error.
func Sample(seed int64, corpusSize, count int) []int {
	if corpusSize <= 0 || count <= 0 {
		return []int{}
	}

	if count > corpusSize {
		count = corpusSize
	}

	seen := make(map[int]struct{}, count)
	positions := make([]int, 0, count)

	maxAttempts := count + extraAttempts
	for attempt := 0; attempt < maxAttempts && len(positions) < count; attempt++ {
		pos := int(pseudoRandom(seed+int64(attempt)) * float64(corpusSize))
		if pos >= corpusSize { // guard the frac(..) == 1.0 edge
			pos = corpusSize - 1
		}

		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}
		positions = append(positions, pos)
	}

	sort.Ints(positions)
	return positions
}

// pseudoRandom maps x to a reproducible value in [0, 1) using the classic
// frac(sin(x) * 10000) hash.
func pseudoRandom(x int64) float64 {
	v := math.Sin(float64(x)) * 10000
	return v - math.Floor(v)
}
