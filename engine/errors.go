package engine

import (
	"errors"

	"github.com/gnjz/babyhippo/hippocampus"
)

// Sentinel errors for every failure kind the engine reports. The first four
// alias the hippocampus package's own sentinels directly, so
// errors.Is(err, engine.ErrCapacityFull) succeeds against whatever
// hippocampus actually returned, without callers needing to import
// hippocampus themselves. Serialization and NumericFault have no
// hippocampus counterpart - they originate in this package.
var (
	ErrCapacityFull  = hippocampus.ErrCapacityFull
	ErrUnknownWord   = hippocampus.ErrUnknownWord
	ErrEmptyStore    = hippocampus.ErrEmptyStore
	ErrInvalidInput  = hippocampus.ErrInvalidInput
	ErrSerialization = errors.New("engine: malformed or version-mismatched save document")
	ErrNumericFault  = errors.New("engine: kernel observed non-finite state; engine instance must be discarded")
)
