package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPermissionDenied marks a subscription the backing store rejected. It is
// surfaced differently from transport errors: the user is told to log in
// correctly instead of getting the raw detail.
var ErrPermissionDenied = errors.New("permission denied")

// ErrNotJobOwner is returned when someone other than the posting client tries
// to complete a job.
var ErrNotJobOwner = errors.New("job belongs to another client")

// ErrInvalidTransition is returned when a status change is not on the
// forward-only Open → Assigned → Completed path.
var ErrInvalidTransition = errors.New("invalid status transition")

// WriteError wraps a create/update the store rejected. Callers surface it to
// the user and never retry automatically.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// classify separates permission denials from everything else on the
// subscription path.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "NOAUTH") || strings.Contains(msg, "NOPERM") ||
		strings.Contains(strings.ToLower(msg), "permission denied") {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}
