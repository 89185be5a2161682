//go:build !nocheckbounds

// Package boundscheck exposes the bounds-checking feature flag used by
// bitvector and rank.
//
// This is the Go equivalent of the reference implementation's
// compile-time CHECK_BOUNDS constant: build with the default tag set and
// every index/argument check in this module is live. Build with
// `-tags nocheckbounds` and Enabled becomes a false constant, letting the
// compiler dead-code-eliminate the checks in bitvector and rank; callers
// then take full responsibility for passing valid arguments to those, per
// the contract documented on each unchecked operation. The checks in
// selectsupport and sparsearray do not read this flag and stay live in
// both builds.
package boundscheck

// Enabled reports whether bounds and argument validation is compiled in.
const Enabled = true
