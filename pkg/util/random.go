package util

import "math/rand/v2"

// GenerateRandomInputs generates n random inputs in the range 0..m.
func GenerateRandomInputs(n, m uint) []uint {
	items := make([]uint, n)

	for i := uint(0); i < n; i++ {
		items[i] = rand.UintN(m)
	}

	return items
}

// GenerateRandomInts generates n random signed integers in the range lo..hi
// (inclusive) drawn from the given source.
func GenerateRandomInts(rng *rand.Rand, n uint, lo, hi int64) []int64 {
	items := make([]int64, n)
	width := uint64(hi - lo + 1)

	for i := uint(0); i < n; i++ {
		items[i] = lo + int64(rng.Uint64N(width))
	}

	return items
}
