package bitutil

import "testing"

func TestCeilDiv(t *testing.T) {
	cases := []struct{ num, den, want uint32 }{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{16, 8, 2},
		{17, 8, 3},
	}
	for _, c := range cases {
		if got := CeilDiv(c.num, c.den); got != c.want {
			t.Errorf("CeilDiv(%d, %d) = %d, want %d", c.num, c.den, got, c.want)
		}
	}
}

func TestNextPow2(t *testing.T) {
	cases := []struct{ num, want uint32 }{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 4},
		{16, 16},
		{17, 32},
		{1000, 1024},
	}
	for _, c := range cases {
		if got := NextPow2(c.num); got != c.want {
			t.Errorf("NextPow2(%d) = %d, want %d", c.num, got, c.want)
		}
	}
}

func TestLog2Floor(t *testing.T) {
	cases := []struct{ num, want uint32 }{
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{16, 4},
		{1024, 10},
	}
	for _, c := range cases {
		if got := Log2Floor(c.num); got != c.want {
			t.Errorf("Log2Floor(%d) = %d, want %d", c.num, got, c.want)
		}
	}
}

func TestGetSetBit(t *testing.T) {
	data := make([]byte, 2)
	SetBit(data, 0, true)
	SetBit(data, 7, true)
	SetBit(data, 8, true)
	SetBit(data, 15, true)

	for _, i := range []uint32{0, 7, 8, 15} {
		if !GetBit(data, i) {
			t.Errorf("expected bit %d set", i)
		}
	}
	for _, i := range []uint32{1, 2, 3, 4, 5, 6, 9, 10, 11, 12, 13, 14} {
		if GetBit(data, i) {
			t.Errorf("expected bit %d clear", i)
		}
	}

	SetBit(data, 0, false)
	if GetBit(data, 0) {
		t.Error("expected bit 0 cleared after unset")
	}
	if !GetBit(data, 7) {
		t.Error("expected bit 7 to remain set after clearing bit 0")
	}
}
