// Package bitindex provides packed succinct bit-indexed data structures:
// a BitVector, a two-level RankSupport index over it, a binary-search
// SelectSupport over that, and a generic SparseArray[T] built on the first
// two. See the bitvector, rank, selectsupport and sparsearray
// subpackages for the types themselves; this package holds the shared
// logging helper.
package bitindex
