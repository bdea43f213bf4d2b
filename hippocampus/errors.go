package hippocampus

import "errors"

// Sentinel errors returned by Store operations. The engine package wraps
// these directly as part of its own public error taxonomy rather than
// redefining them.
var (
	ErrCapacityFull = errors.New("hippocampus: word store is at capacity")
	ErrUnknownWord  = errors.New("hippocampus: unknown word")
	ErrEmptyStore   = errors.New("hippocampus: word store is empty")
	ErrInvalidInput = errors.New("hippocampus: invalid input")
)
