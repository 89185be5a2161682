// Package sparsearray implements SparseArray[T]: a sparse, position-indexed
// array backed by an occupancy BitVector and a RankSupport over it, storing
// only the elements that were actually appended.
package sparsearray

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/succinctgo/bitindex/bitvector"
	"github.com/succinctgo/bitindex/internal/bitutil"
	"github.com/succinctgo/bitindex/internal/bxerr"
	"github.com/succinctgo/bitindex/rank"
	"github.com/succinctgo/bitindex/serialize"
)

// magic identifies a SparseArray file (spec.md §6.3).
const magic uint32 = 0xDEADBEEF

// SparseArray maps a logical size and a set of (pos, value) pairs appended
// in strictly ascending pos order to constant-time-ish index and rank
// queries, without allocating storage for unset positions.
//
// Elements must be appended in strictly ascending pos: this is what lets
// the underlying RankSupport repair its tables incrementally in
// O(n - s*floor(pos/s)) per append instead of rebuilding from scratch
// (rank.BuildTables, design-notes §9 option (a)).
type SparseArray[T any] struct {
	codec serialize.Codec[T]

	size     uint64
	occupied *bitvector.BitVector
	rs       *rank.RankSupport
	values   []T
	lastPos  int64
}

// New creates an empty SparseArray that encodes its elements with codec
// when saved or loaded. Call Create before appending.
func New[T any](codec serialize.Codec[T]) *SparseArray[T] {
	return &SparseArray[T]{codec: codec, lastPos: -1}
}

// Create (re)initializes the array to hold size logical positions, none of
// them occupied yet.
func (sa *SparseArray[T]) Create(size uint64) {
	sa.size = size
	sa.occupied = bitvector.New(uint32(size))
	sa.rs = rank.New(sa.occupied)
	sa.values = nil
	sa.lastPos = -1
}

// Append records value at position pos. pos must be strictly greater than
// every previously appended position and less than Size(); violating
// either fails with ErrInvalidArgument or ErrOutOfRange respectively.
func (sa *SparseArray[T]) Append(value T, pos uint64) error {
	if pos >= sa.size {
		return fmt.Errorf("%w: sparsearray.Append: pos %d for size %d", bxerr.ErrOutOfRange, pos, sa.size)
	}
	if int64(pos) <= sa.lastPos {
		return fmt.Errorf("%w: sparsearray.Append: pos %d must be strictly greater than the last appended position %d", bxerr.ErrInvalidArgument, pos, sa.lastPos)
	}

	if err := sa.occupied.Set(uint32(pos), true); err != nil {
		return fmt.Errorf("%w: sparsearray.Append: %v", bxerr.ErrInternal, err)
	}
	sa.rs.BuildTables(pos)
	sa.values = append(sa.values, value)
	sa.lastPos = int64(pos)
	return nil
}

// GetAtIndex returns the value stored at logical position index, and false
// if that position was never appended to.
func (sa *SparseArray[T]) GetAtIndex(index uint64) (T, bool, error) {
	var zero T
	if index >= sa.size {
		return zero, false, fmt.Errorf("%w: sparsearray.GetAtIndex: index %d for size %d", bxerr.ErrOutOfRange, index, sa.size)
	}
	if !sa.occupied.Get(uint32(index)) {
		return zero, false, nil
	}
	r, err := sa.rs.Rank1(index)
	if err != nil {
		return zero, false, fmt.Errorf("%w: sparsearray.GetAtIndex: %v", bxerr.ErrInternal, err)
	}
	return sa.values[r-1], true, nil
}

// GetAtRank returns the k-th appended value, 0-indexed in append order
// (unlike Select1), and false if k is at least NumElem().
func (sa *SparseArray[T]) GetAtRank(k uint64) (T, bool) {
	var zero T
	if k >= uint64(len(sa.values)) {
		return zero, false
	}
	return sa.values[k], true
}

// NumElemAt returns the number of elements appended at positions <= index,
// i.e. rank1(index) over the occupancy bitmap.
func (sa *SparseArray[T]) NumElemAt(index uint64) (uint64, error) {
	if index >= sa.size {
		return 0, fmt.Errorf("%w: sparsearray.NumElemAt: index %d for size %d", bxerr.ErrOutOfRange, index, sa.size)
	}
	r, err := sa.rs.Rank1(index)
	if err != nil {
		return 0, fmt.Errorf("%w: sparsearray.NumElemAt: %v", bxerr.ErrInternal, err)
	}
	return r, nil
}

// Size returns the logical size the array was created with.
func (sa *SparseArray[T]) Size() uint64 {
	return sa.size
}

// NumElem returns the number of elements actually appended.
func (sa *SparseArray[T]) NumElem() int {
	return len(sa.values)
}

// Overhead returns the total bits occupied by the occupancy bitmap and the
// rank index built over it, not counting the stored elements themselves.
func (sa *SparseArray[T]) Overhead() uint64 {
	return uint64(len(sa.occupied.Data()))*8 + sa.rs.Overhead()
}

// Save writes the array to path: 4-byte magic, 4-byte element size (for
// the sanity check on Load), 4-byte logical size, the occupancy bitmap as a
// length-prefixed byte container, the elements in append order via codec,
// a one-byte flag saying whether rank tables follow, and, when withTables
// is true, the rank index tables as written by rank.WriteTables (superblock
// size, block size, both tables), so a subsequent Load can skip rebuilding
// them.
func (sa *SparseArray[T]) Save(path string, withTables bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sparsearray: save %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, magic); err != nil {
		return err
	}

	elementSize, _ := sa.codec.ElementSize()
	if err := binary.Write(w, binary.LittleEndian, uint32(elementSize)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(sa.size)); err != nil {
		return err
	}

	byteCodec := serialize.FixedCodec[byte]{}
	if err := serialize.WriteContainer(w, sa.occupied.Data(), byteCodec.Encode); err != nil {
		return err
	}
	if err := serialize.WriteContainer(w, sa.values, sa.codec.Encode); err != nil {
		return err
	}

	var hasTables byte
	if withTables {
		hasTables = 1
	}
	if err := binary.Write(w, binary.LittleEndian, hasTables); err != nil {
		return err
	}
	if withTables {
		if err := sa.rs.WriteTables(w); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Load reads an array previously written by Save from path, replacing this
// array's contents. Elements are decoded with the codec this SparseArray was
// constructed with, which must match the one used to Save — a magic
// mismatch or an element-size mismatch against that codec both raise
// ErrCorrupt.
func (sa *SparseArray[T]) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("sparsearray: load %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var gotMagic uint32
	if err := binary.Read(r, binary.LittleEndian, &gotMagic); err != nil {
		return fmt.Errorf("sparsearray: load %s: %w", path, err)
	}
	if gotMagic != magic {
		return fmt.Errorf("%w: sparsearray.Load: magic %#08x, want %#08x", bxerr.ErrCorrupt, gotMagic, magic)
	}

	var gotElementSize uint32
	if err := binary.Read(r, binary.LittleEndian, &gotElementSize); err != nil {
		return fmt.Errorf("sparsearray: load %s: %w", path, err)
	}
	if wantSize, ok := sa.codec.ElementSize(); ok && gotElementSize != uint32(wantSize) {
		return fmt.Errorf("%w: sparsearray.Load: element size %d, want %d", bxerr.ErrCorrupt, gotElementSize, wantSize)
	}

	var size32 uint32
	if err := binary.Read(r, binary.LittleEndian, &size32); err != nil {
		return fmt.Errorf("sparsearray: load %s: %w", path, err)
	}
	size := uint64(size32)

	byteCodec := serialize.FixedCodec[byte]{}
	data, err := serialize.ReadContainerExact(r, int(bitutil.CeilDiv(uint32(size), 8)), byteCodec.Decode)
	if err != nil {
		return fmt.Errorf("sparsearray: load %s: %w", path, err)
	}

	values, err := serialize.ReadContainer(r, sa.codec.Decode)
	if err != nil {
		return fmt.Errorf("sparsearray: load %s: %w", path, err)
	}

	var hasTables byte
	if err := binary.Read(r, binary.LittleEndian, &hasTables); err != nil {
		return fmt.Errorf("sparsearray: load %s: %w", path, err)
	}

	occupied := bitvector.New(uint32(size))
	copy(occupied.Data(), data)

	rs := rank.New(occupied)
	if hasTables == 1 {
		if err := rs.ReadTables(r); err != nil {
			return fmt.Errorf("sparsearray: load %s: %w", path, err)
		}
	}

	sa.size = size
	sa.occupied = occupied
	sa.rs = rs
	sa.values = values
	sa.lastPos = lastSetBit(occupied)
	return nil
}

func lastSetBit(bv *bitvector.BitVector) int64 {
	for i := int64(bv.Size()) - 1; i >= 0; i-- {
		if bv.Get(uint32(i)) {
			return i
		}
	}
	return -1
}
