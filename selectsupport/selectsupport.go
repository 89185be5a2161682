// Package selectsupport implements SelectSupport: given a RankSupport, finds
// the position of the i-th set bit by binary-searching rank1's monotonic
// step function.
package selectsupport

import (
	"fmt"

	"github.com/succinctgo/bitindex/internal/bxerr"
	"github.com/succinctgo/bitindex/rank"
)

// SelectSupport answers select1 queries against a RankSupport. It holds no
// state of its own beyond the RankSupport reference: every query re-derives
// its answer from rank1, so Save and Load are no-ops, matching the source's
// own empty save/load bodies for this type.
type SelectSupport struct {
	rank *rank.RankSupport
}

// New builds a SelectSupport over r. r must remain valid and must not gain
// set bits behind this SelectSupport's back without a corresponding
// RankSupport.BuildTables call, the same non-owning-reference contract
// RankSupport itself has over its BitVector.
func New(r *rank.RankSupport) *SelectSupport {
	return &SelectSupport{rank: r}
}

// Select1 returns the position of the i-th set bit, 1-indexed: Select1(1)
// is the first set bit, Select1(TotalOnes()) is the last. i == 0 or
// i > TotalOnes() fails with ErrInvalidArgument.
//
// Implementation binary-searches for the leftmost position whose rank1
// equals i. rank1 is a monotonically non-decreasing step function that
// increases by exactly 1 at every set bit, so for any i in
// [1, TotalOnes()] there is exactly one such leftmost position and it is
// the i-th set bit itself.
func (ss *SelectSupport) Select1(i uint64) (uint64, error) {
	total := ss.rank.TotalOnes()
	if i == 0 || i > total {
		return 0, fmt.Errorf("%w: selectsupport.Select1: i=%d, totalOnes=%d", bxerr.ErrInvalidArgument, i, total)
	}

	low, high := uint64(0), uint64(ss.rank.Size())-1
	for low < high {
		mid := low + (high-low)/2
		r, err := ss.rank.Rank1(mid)
		if err != nil {
			return 0, fmt.Errorf("%w: selectsupport.Select1: %v", bxerr.ErrInternal, err)
		}
		if r < i {
			low = mid + 1
		} else {
			high = mid
		}
	}

	got, err := ss.rank.Rank1(low)
	if err != nil {
		return 0, fmt.Errorf("%w: selectsupport.Select1: %v", bxerr.ErrInternal, err)
	}
	if got != i {
		return 0, fmt.Errorf("%w: selectsupport.Select1: binary search converged to rank %d, want %d", bxerr.ErrInternal, got, i)
	}
	return low, nil
}

// Save is a no-op: SelectSupport holds no state beyond its RankSupport
// reference, which is persisted (or not) independently.
func (ss *SelectSupport) Save(path string) error {
	return nil
}

// Load is a no-op. See Save.
func (ss *SelectSupport) Load(path string) error {
	return nil
}
