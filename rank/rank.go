// Package rank implements RankSupport: a two-level (superblock/block)
// prefix-sum index over a bitvector.BitVector giving constant-time rank1
// queries.
package rank

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/succinctgo/bitindex/bitvector"
	"github.com/succinctgo/bitindex/internal/bitutil"
	"github.com/succinctgo/bitindex/internal/boundscheck"
	"github.com/succinctgo/bitindex/internal/bxerr"
	"github.com/succinctgo/bitindex/serialize"
)

// magic identifies a RankSupport file (spec.md §6.2).
const magic uint32 = 0xFEEDBEEF

// RankSupport holds a non-owning reference to a BitVector and derives its
// index tables from it. The referenced BitVector must remain valid for the
// lifetime of the RankSupport: Go has no borrow checker, so this is a
// caller contract rather than a compiler-enforced one (design-notes §9,
// option (a): explicit borrow, documented rather than annotated).
type RankSupport struct {
	bv *bitvector.BitVector

	superblockSize uint32 // s
	blockSize      uint32 // b

	superblocks []uint32 // superblocks[k] = popcount(bv[0, k*s))
	blocks      []uint32 // blocks[j] = popcount within enclosing superblock up to j*b

	totalOnes uint64
}

// New builds a RankSupport over bv, computing the superblock and block
// sizes from n = bv.Size() per spec.md §3 and building the tables from
// scratch.
func New(bv *bitvector.BitVector) *RankSupport {
	n := bv.Size()
	logN := bitutil.Log2Floor(bitutil.NextPow2(n))

	s := logN * logN / 2
	b := logN / 2
	if s == 0 {
		s = 1
	}
	if b == 0 {
		b = 1
	}

	rs := &RankSupport{
		bv:             bv,
		superblockSize: s,
		blockSize:      b,
		superblocks:    make([]uint32, bitutil.CeilDiv(n, s)),
		blocks:         make([]uint32, bitutil.CeilDiv(n, b)),
	}
	rs.BuildTables(0)
	return rs
}

// Rank1 returns the number of 1 bits in bv[0, i], inclusive of i.
func (rs *RankSupport) Rank1(i uint64) (uint64, error) {
	n := rs.bv.Size()
	if boundscheck.Enabled && i >= uint64(n) {
		return 0, fmt.Errorf("%w: rank.Rank1: index %d for size %d", bxerr.ErrOutOfRange, i, n)
	}
	idx := uint32(i)

	sb := rs.superblocks[idx/rs.superblockSize]
	bl := rs.blocks[idx/rs.blockSize]

	blockStart := (idx / rs.blockSize) * rs.blockSize
	tailLen := (idx % rs.blockSize) + 1
	tail, err := rs.bv.PopcountRange(blockStart, tailLen)
	if err != nil {
		// idx < n and blockStart <= idx < n, tailLen <= blockSize <= 16 for
		// any 32-bit-sized BitVector, so PopcountRange's own contract can
		// never be violated here. If it is, the invariant that should
		// guarantee it is broken, not the caller's argument.
		return 0, fmt.Errorf("%w: rank.Rank1: %v", bxerr.ErrInternal, err)
	}

	return uint64(sb) + uint64(bl) + uint64(tail), nil
}

// Call is an alias for Rank1: Go has no operator(), so this stands in for
// the source's `rank(i)` call-syntax convenience.
func (rs *RankSupport) Call(i uint64) (uint64, error) {
	return rs.Rank1(i)
}

// BuildTables refreshes superblocks and blocks starting from the
// superblock enclosing startingIndex, seeding the running totals from the
// existing table entries at that boundary and walking to the end of the
// bit vector. This is what lets SparseArray.Append repair the tables in
// O(n - s*floor(pos/s)) after a single-bit flip instead of rebuilding from
// scratch, as spec.md §4.2 and §9 describe — correct only if everything
// before startingIndex's superblock was already correct, which is exactly
// the ascending-append-order contract sparsearray enforces.
func (rs *RankSupport) BuildTables(startingIndex uint64) {
	n := rs.bv.Size()

	idx := startingIndex
	if idx > uint64(n) {
		idx = uint64(n)
	}
	start := uint32(idx)
	start = (start / rs.superblockSize) * rs.superblockSize

	var superblockSum, blockSum uint32
	if sbIdx := start / rs.superblockSize; int(sbIdx) < len(rs.superblocks) {
		superblockSum = rs.superblocks[sbIdx]
	}
	if blIdx := start / rs.blockSize; int(blIdx) < len(rs.blocks) {
		blockSum = rs.blocks[blIdx]
	}

	for i := start; i < n; i++ {
		if i%rs.superblockSize == 0 {
			rs.superblocks[i/rs.superblockSize] = superblockSum
			blockSum = 0
		}
		if i%rs.blockSize == 0 {
			rs.blocks[i/rs.blockSize] = blockSum
		}
		if rs.bv.Get(i) {
			blockSum++
			superblockSum++
		}
	}
	rs.totalOnes = uint64(superblockSum)
}

// TotalOnes returns the global popcount of the underlying BitVector.
func (rs *RankSupport) TotalOnes() uint64 {
	return rs.totalOnes
}

// Overhead returns the total bits occupied by the superblock and block
// tables: 32 bits per entry, times the number of entries in each.
func (rs *RankSupport) Overhead() uint64 {
	return uint64(len(rs.superblocks))*32 + uint64(len(rs.blocks))*32
}

// Size returns the size of the underlying BitVector.
func (rs *RankSupport) Size() uint32 {
	return rs.bv.Size()
}

// Superblocks returns the raw superblock table. This is exported for use
// by sparsearray and serialization code, not as part of the stable per-bit
// query API — Go has no C++-style friend declaration, so "exported but
// documented as internal" is this module's stand-in (design-notes §9).
func (rs *RankSupport) Superblocks() []uint32 {
	return rs.superblocks
}

// Blocks returns the raw block table. See Superblocks.
func (rs *RankSupport) Blocks() []uint32 {
	return rs.blocks
}

// WriteTables writes the superblock size, block size and the two
// length-prefixed tables to w, without a magic number or file handling of
// its own. Save wraps this for the standalone on-disk format; sparsearray
// embeds the same bytes inline in its own file when asked to persist
// tables alongside its elements.
func (rs *RankSupport) WriteTables(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, rs.superblockSize); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, rs.blockSize); err != nil {
		return err
	}
	u32 := serialize.FixedCodec[uint32]{}
	if err := serialize.WriteContainer(w, rs.superblocks, u32.Encode); err != nil {
		return err
	}
	return serialize.WriteContainer(w, rs.blocks, u32.Encode)
}

// ReadTables reads a superblock size, block size and the two
// length-prefixed tables from r into rs, replacing its current tables and
// recomputing TotalOnes from the underlying BitVector (the table format
// itself carries no explicit total, per spec.md §6.2).
func (rs *RankSupport) ReadTables(r io.Reader) error {
	var superblockSize, blockSize uint32
	if err := binary.Read(r, binary.LittleEndian, &superblockSize); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &blockSize); err != nil {
		return err
	}

	u32 := serialize.FixedCodec[uint32]{}
	superblocks, err := serialize.ReadContainer(r, u32.Decode)
	if err != nil {
		return err
	}
	blocks, err := serialize.ReadContainer(r, u32.Decode)
	if err != nil {
		return err
	}

	rs.superblockSize = superblockSize
	rs.blockSize = blockSize
	rs.superblocks = superblocks
	rs.blocks = blocks
	rs.totalOnes = uint64(rs.bv.Popcount())
	return nil
}

// Save writes the RankSupport's index tables to path in the format
// documented in spec.md §6.2: magic, then WriteTables.
func (rs *RankSupport) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rank: save %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, magic); err != nil {
		return err
	}
	if err := rs.WriteTables(w); err != nil {
		return err
	}
	return w.Flush()
}

// Load reads index tables from path into rs, replacing its current tables.
// rs must already hold a valid reference to the BitVector these tables
// were built over — Load does not change that reference. A magic mismatch
// raises ErrCorrupt.
func (rs *RankSupport) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("rank: load %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var gotMagic uint32
	if err := binary.Read(r, binary.LittleEndian, &gotMagic); err != nil {
		return fmt.Errorf("rank: load %s: %w", path, err)
	}
	if gotMagic != magic {
		return fmt.Errorf("%w: rank.Load: magic %#08x, want %#08x", bxerr.ErrCorrupt, gotMagic, magic)
	}
	return rs.ReadTables(r)
}
