// Package testutil provides the seeded randomness and naive oracles used by
// the property-based tests in bitvector, rank, selectsupport and
// sparsearray. Shaped after the teacher's own testutil.RNG: a
// math/rand.Rand wrapped with its seed retained for reproducible,
// seed-reported failures.
package testutil

import "math/rand"

// RNG wraps math/rand with a retained seed for reproducible test failures.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{rand: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the seed this RNG was constructed with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// BinaryString returns a random string of n '0'/'1' characters.
func (r *RNG) BinaryString(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		if r.rand.Intn(2) == 1 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// SparsePositions returns count distinct, ascending positions in [0, size).
// Panics if count > size, matching the reference test fixtures, which never
// request more positions than the array can hold.
func (r *RNG) SparsePositions(size uint64, count int) []uint64 {
	if uint64(count) > size {
		panic("testutil: count exceeds size")
	}
	chosen := make(map[uint64]struct{}, count)
	for len(chosen) < count {
		chosen[uint64(r.rand.Int63n(int64(size)))] = struct{}{}
	}
	positions := make([]uint64, 0, count)
	for p := range chosen {
		positions = append(positions, p)
	}
	// Insertion sort: count is small in every caller (test fixture sizes).
	for i := 1; i < len(positions); i++ {
		for j := i; j > 0 && positions[j-1] > positions[j]; j-- {
			positions[j-1], positions[j] = positions[j], positions[j-1]
		}
	}
	return positions
}

// NaiveRank1 counts the '1' characters in s[0:i+1], the textbook-definition
// oracle spec.md's testable properties check RankSupport.Rank1 against.
func NaiveRank1(s string, i int) uint64 {
	var count uint64
	for k := 0; k <= i; k++ {
		if s[k] == '1' {
			count++
		}
	}
	return count
}

// NaiveSelect1 returns the 0-based position of the i-th (1-indexed) '1'
// character in s, or -1 if there is no such bit.
func NaiveSelect1(s string, i int) int {
	count := 0
	for pos := 0; pos < len(s); pos++ {
		if s[pos] == '1' {
			count++
			if count == i {
				return pos
			}
		}
	}
	return -1
}
