// Package bxerr holds the sentinel error taxonomy shared by every package
// in this module. Call sites wrap these with fmt.Errorf("%w: ...", ...) so
// callers can branch with errors.Is instead of parsing strings, the same
// unification pattern the teacher's root errors.go applies when it maps
// internal errors onto a stable public taxonomy.
package bxerr

import "errors"

var (
	// ErrOutOfRange is returned when an index is >= the relevant size.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidArgument is returned for arguments that are in-range but
	// otherwise not legal for the operation (a popcount range longer than
	// 32 bits, a select rank of zero, a duplicate sparse-array append).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCorrupt is returned when persisted data fails a self-consistency
	// check on load: a bad magic number, an element-size mismatch, or a
	// container whose length disagrees with a fixed destination.
	ErrCorrupt = errors.New("corrupt data")

	// ErrInternal is returned when an invariant that validated inputs
	// should have preserved is broken anyway. It indicates a bug in this
	// module, not a caller error.
	ErrInternal = errors.New("internal invariant violated")
)
