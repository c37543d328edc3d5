package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrCycleInFlight   = errors.New("cycle already in flight")
	ErrFeedUnavailable = errors.New("leaderboard feed unavailable")
	ErrRateLimited     = errors.New("rate limited")
)

// RenderError wraps any failure while producing the leaderboard image.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed write of the message identity, either to
// the local file or to a remote sync target.
type PersistenceError struct {
	Target string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist identity to %s: %v", e.Target, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
