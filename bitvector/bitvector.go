// Package bitvector implements a packed, fixed-length sequence of
// single-bit values: the base store that rank, selectsupport and
// sparsearray all build on.
package bitvector

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/succinctgo/bitindex/internal/bitutil"
	"github.com/succinctgo/bitindex/internal/boundscheck"
	"github.com/succinctgo/bitindex/internal/bxerr"
)

// BitVector is a packed sequence of size bits, stored little-endian within
// each byte: bit i lives at byte i>>3, bit position i&7.
type BitVector struct {
	size uint32
	data []byte
}

// New allocates a zero-initialized BitVector of size bits.
func New(size uint32) *BitVector {
	return &BitVector{
		size: size,
		data: make([]byte, bitutil.CeilDiv(size, 8)),
	}
}

// FromBinaryString builds a BitVector from a string of '0'/'1' characters,
// one bit per character: Get(i) == (s[i] == '1') for every i < len(s).
//
// The source walks the string 8 characters at a time, reverses that
// substring and parses it as base-2, storing the resulting byte at i>>3 —
// this is just a character-oriented way of writing bit i&7 of byte i>>3 for
// each character, and that is exactly what this implementation does
// directly rather than going through a string-reverse-and-parse detour.
func FromBinaryString(s string) (*BitVector, error) {
	bv := New(uint32(len(s)))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			bitutil.SetBit(bv.data, uint32(i), true)
		case '0':
			// already zero
		default:
			return nil, fmt.Errorf("%w: FromBinaryString: byte %d is %q, want '0' or '1'", bxerr.ErrInvalidArgument, i, s[i])
		}
	}
	return bv, nil
}

// Get returns bit i without a bounds check. Calling Get with i >= Size() is
// undefined: use At when the index is not already known to be valid.
func (bv *BitVector) Get(i uint32) bool {
	return bitutil.GetBit(bv.data, i)
}

// At returns bit i, failing with ErrOutOfRange when i >= Size().
func (bv *BitVector) At(i uint32) (bool, error) {
	if boundscheck.Enabled && i >= bv.size {
		return false, fmt.Errorf("%w: bitvector.At: index %d for size %d", bxerr.ErrOutOfRange, i, bv.size)
	}
	return bv.Get(i), nil
}

// Set writes bit i to v, failing with ErrOutOfRange when i >= Size().
func (bv *BitVector) Set(i uint32, v bool) error {
	if boundscheck.Enabled && i >= bv.size {
		return fmt.Errorf("%w: bitvector.Set: index %d for size %d", bxerr.ErrOutOfRange, i, bv.size)
	}
	bitutil.SetBit(bv.data, i, v)
	return nil
}

// Popcount returns the total number of set bits across the whole vector.
// Bits past Size() within the last byte are always zero because Set is the
// only mutation path and it never writes past size, so they never
// contribute here.
func (bv *BitVector) Popcount() uint32 {
	var count uint32
	for _, b := range bv.data {
		count += uint32(popcountByte(b))
	}
	return count
}

// PopcountByte returns the popcount of the entire byte containing bit i,
// failing with ErrOutOfRange when i >= Size().
func (bv *BitVector) PopcountByte(i uint32) (uint32, error) {
	if boundscheck.Enabled && i >= bv.size {
		return 0, fmt.Errorf("%w: bitvector.PopcountByte: index %d for size %d", bxerr.ErrOutOfRange, i, bv.size)
	}
	return uint32(popcountByte(bv.data[i>>3])), nil
}

// PopcountRange returns the popcount of bits [start, start+length). length
// must be <= 32; this fails with ErrInvalidArgument otherwise, and with
// ErrOutOfRange if start is not a valid index.
//
// Implementation: load a 32-bit little-endian word at byte start>>3, shift
// right by start&7, shift left by 32-length, popcount. When start is within
// 3 bytes of the end of the buffer, a naive word load would read past the
// allocation; per the source's own documented ambiguity (the reference
// implementation reads that 32-bit word unconditionally and relies on the
// caller never exercising the tail), this implementation instead falls
// back to a byte-wise scan over exactly the requested range whenever the
// fast word load would overrun data, rather than requiring callers to
// over-allocate three trailing bytes. The same byte-wise scan is used when
// (start&7)+length exceeds 32, since the shifted word then no longer holds
// every bit of the range.
func (bv *BitVector) PopcountRange(start, length uint32) (uint32, error) {
	if boundscheck.Enabled {
		if start >= bv.size {
			return 0, fmt.Errorf("%w: bitvector.PopcountRange: start %d for size %d", bxerr.ErrOutOfRange, start, bv.size)
		}
		if length > 32 {
			return 0, fmt.Errorf("%w: bitvector.PopcountRange: length %d exceeds 32", bxerr.ErrInvalidArgument, length)
		}
		if start+length < start {
			return 0, fmt.Errorf("%w: bitvector.PopcountRange: start+length overflows", bxerr.ErrInvalidArgument)
		}
	}
	if length == 0 {
		return 0, nil
	}

	startByte := start >> 3
	if int(startByte)+4 > len(bv.data) || (start&7)+length > 32 {
		return bv.popcountRangeByteWise(start, length), nil
	}

	word := binary.LittleEndian.Uint32(bv.data[startByte : startByte+4])
	word >>= start & 7
	word <<= 32 - length
	return uint32(popcount32(word)), nil
}

func (bv *BitVector) popcountRangeByteWise(start, length uint32) uint32 {
	var count uint32
	for k := uint32(0); k < length; k++ {
		if bitutil.GetBit(bv.data, start+k) {
			count++
		}
	}
	return count
}

// Size returns the number of bits in this vector.
func (bv *BitVector) Size() uint32 {
	return bv.size
}

// Data returns the mutable backing byte slice, for use by serialization
// code that needs to read or write the raw packed bytes directly.
func (bv *BitVector) Data() []byte {
	return bv.data
}

// ToRoaring materializes the set bits of this BitVector into a roaring
// bitmap, the natural interop point between a dense succinct bitvector and
// the ecosystem's dominant sparse/compressed bitmap representation.
func (bv *BitVector) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()
	for i := uint32(0); i < bv.size; i++ {
		if bv.Get(i) {
			rb.Add(i)
		}
	}
	return rb
}

// FromRoaring builds a BitVector of the given size from the bits set in rb.
// Bits in rb at or beyond size are ignored.
func FromRoaring(rb *roaring.Bitmap, size uint32) *BitVector {
	bv := New(size)
	it := rb.Iterator()
	for it.HasNext() {
		v := it.Next()
		if v >= size {
			break
		}
		bitutil.SetBit(bv.data, v, true)
	}
	return bv
}

func popcountByte(b byte) int {
	return bits.OnesCount8(b)
}

func popcount32(v uint32) int {
	return bits.OnesCount32(v)
}
