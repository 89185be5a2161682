package bitindex

import "github.com/succinctgo/bitindex/internal/bxerr"

// These re-export the sentinel errors every subpackage wraps with
// fmt.Errorf("%w: ...", ...): callers outside this module can only reach
// them here, since internal/bxerr itself is not importable from outside
// the module.
var (
	ErrOutOfRange      = bxerr.ErrOutOfRange
	ErrInvalidArgument = bxerr.ErrInvalidArgument
	ErrCorrupt         = bxerr.ErrCorrupt
	ErrInternal        = bxerr.ErrInternal
)
