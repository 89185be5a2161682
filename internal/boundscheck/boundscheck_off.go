//go:build nocheckbounds

package boundscheck

// Enabled is false: bounds and argument checks in bitvector and rank are
// skipped. Out-of-range or otherwise invalid calls to those are then
// undefined behavior, not a panic or an error. The checks in selectsupport
// and sparsearray do not read this flag and still run.
const Enabled = false
