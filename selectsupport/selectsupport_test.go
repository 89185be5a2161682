package selectsupport

import (
	"errors"
	"testing"

	"github.com/succinctgo/bitindex/bitvector"
	"github.com/succinctgo/bitindex/internal/bxerr"
	"github.com/succinctgo/bitindex/internal/testutil"
	"github.com/succinctgo/bitindex/rank"
)

func TestSelect1ConcreteExample(t *testing.T) {
	bv, err := bitvector.FromBinaryString("1001011101001010")
	if err != nil {
		t.Fatalf("FromBinaryString: %v", err)
	}
	rs := rank.New(bv)
	ss := New(rs)

	cases := []struct {
		i    uint64
		want uint64
	}{
		{1, 0},
		{2, 3},
		{3, 5},
		{4, 6},
		{5, 7},
		{6, 9},
		{7, 12},
		{8, 14},
	}
	for _, c := range cases {
		got, err := ss.Select1(c.i)
		if err != nil {
			t.Fatalf("Select1(%d): %v", c.i, err)
		}
		if got != c.want {
			t.Errorf("Select1(%d) = %d, want %d", c.i, got, c.want)
		}
	}
}

func TestSelect1ZeroIsInvalid(t *testing.T) {
	bv, err := bitvector.FromBinaryString("1001011101001010")
	if err != nil {
		t.Fatalf("FromBinaryString: %v", err)
	}
	ss := New(rank.New(bv))
	if _, err := ss.Select1(0); !errors.Is(err, bxerr.ErrInvalidArgument) {
		t.Errorf("Select1(0): got %v, want ErrInvalidArgument", err)
	}
}

func TestSelect1BeyondTotalOnesIsInvalid(t *testing.T) {
	bv, err := bitvector.FromBinaryString("1001011101001010")
	if err != nil {
		t.Fatalf("FromBinaryString: %v", err)
	}
	rs := rank.New(bv)
	ss := New(rs)
	if _, err := ss.Select1(rs.TotalOnes() + 1); !errors.Is(err, bxerr.ErrInvalidArgument) {
		t.Errorf("Select1(totalOnes+1): got %v, want ErrInvalidArgument", err)
	}
}

func TestSelect1InvertsRank1(t *testing.T) {
	rng := testutil.NewRNG(77)
	for trial := 0; trial < 20; trial++ {
		s := rng.BinaryString(400)
		bv, err := bitvector.FromBinaryString(s)
		if err != nil {
			t.Fatalf("FromBinaryString: %v", err)
		}
		rs := rank.New(bv)
		ss := New(rs)

		total := rs.TotalOnes()
		for i := uint64(1); i <= total; i++ {
			pos, err := ss.Select1(i)
			if err != nil {
				t.Fatalf("trial %d (seed %d): Select1(%d): %v", trial, rng.Seed(), i, err)
			}
			r, err := rs.Rank1(pos)
			if err != nil {
				t.Fatalf("trial %d (seed %d): Rank1(%d): %v", trial, rng.Seed(), pos, err)
			}
			if r != i {
				t.Errorf("trial %d (seed %d): Rank1(Select1(%d)) = %d, want %d", trial, rng.Seed(), i, r, i)
			}
			if !bv.Get(uint32(pos)) {
				t.Errorf("trial %d (seed %d): Select1(%d) = %d is not a set bit", trial, rng.Seed(), i, pos)
			}
		}
	}
}

func TestSelect1AgreesWithNaive(t *testing.T) {
	rng := testutil.NewRNG(321)
	for trial := 0; trial < 20; trial++ {
		s := rng.BinaryString(350)
		bv, err := bitvector.FromBinaryString(s)
		if err != nil {
			t.Fatalf("FromBinaryString: %v", err)
		}
		ss := New(rank.New(bv))

		for i := 1; i <= 20; i++ {
			want := testutil.NaiveSelect1(s, i)
			got, err := ss.Select1(uint64(i))
			if want == -1 {
				if err == nil {
					t.Errorf("trial %d (seed %d): Select1(%d) = %d, want ErrInvalidArgument (fewer than %d ones)", trial, rng.Seed(), i, got, i)
				}
				continue
			}
			if err != nil {
				t.Fatalf("trial %d (seed %d): Select1(%d): %v", trial, rng.Seed(), i, err)
			}
			if got != uint64(want) {
				t.Errorf("trial %d (seed %d): Select1(%d) = %d, want %d", trial, rng.Seed(), i, got, want)
			}
		}
	}
}

func TestSelect1AgreesWithRoaring(t *testing.T) {
	rng := testutil.NewRNG(8181)
	for trial := 0; trial < 10; trial++ {
		s := rng.BinaryString(500)
		bv, err := bitvector.FromBinaryString(s)
		if err != nil {
			t.Fatalf("FromBinaryString: %v", err)
		}
		rs := rank.New(bv)
		ss := New(rs)
		rb := bv.ToRoaring()

		total := rs.TotalOnes()
		for i := uint64(1); i <= total; i++ {
			want, err := rb.Select(uint32(i - 1))
			if err != nil {
				t.Fatalf("trial %d (seed %d): roaring Select(%d): %v", trial, rng.Seed(), i-1, err)
			}
			got, err := ss.Select1(i)
			if err != nil {
				t.Fatalf("trial %d (seed %d): Select1(%d): %v", trial, rng.Seed(), i, err)
			}
			if got != uint64(want) {
				t.Errorf("trial %d (seed %d): Select1(%d) = %d, roaring Select(%d) = %d", trial, rng.Seed(), i, got, i-1, want)
			}
		}
	}
}

func TestSelect1Monotonic(t *testing.T) {
	rng := testutil.NewRNG(9)
	s := rng.BinaryString(300)
	bv, err := bitvector.FromBinaryString(s)
	if err != nil {
		t.Fatalf("FromBinaryString: %v", err)
	}
	rs := rank.New(bv)
	ss := New(rs)

	var prev uint64
	for i := uint64(1); i <= rs.TotalOnes(); i++ {
		pos, err := ss.Select1(i)
		if err != nil {
			t.Fatalf("Select1(%d): %v", i, err)
		}
		if i > 1 && pos <= prev {
			t.Errorf("Select1(%d) = %d is not strictly greater than Select1(%d) = %d", i, pos, i-1, prev)
		}
		prev = pos
	}
}
