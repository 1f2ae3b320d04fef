package mtree

import "errors"

// ErrInvalidCapacity and ErrInvalidMaxCapacity are the PreconditionViolation
// errors from spec.md §7: they are returned by New, never panicked, since
// they are detectable entirely from the constructor's own arguments.
var (
	ErrInvalidCapacity    = errors.New("mtree: min_capacity must be >= 2")
	ErrInvalidMaxCapacity = errors.New("mtree: max_capacity must be >= min_capacity")
)
