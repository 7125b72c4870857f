package domain

import (
	"errors"
	"fmt"
)

// NotInitializedError is returned by every store call issued before the
// engine image has been loaded.
type NotInitializedError struct {
	Op string
}

func (e NotInitializedError) Error() string {
	if e.Op == "" {
		return "store not initialized"
	}
	return fmt.Sprintf("store not initialized: %s", e.Op)
}

// ConstraintError wraps an integrity violation reported by the engine
// (unique keys, foreign keys, checks). The offending mutation is never
// partially applied.
type ConstraintError struct {
	Stmt string
	Err  error
}

func (e ConstraintError) Error() string {
	if e.Err == nil {
		return "constraint violation"
	}
	return fmt.Sprintf("constraint violation: %v", e.Err)
}

func (e ConstraintError) Unwrap() error { return e.Err }

// CapacityExceededError reports a passenger insert rejected because the
// trip's vehicle is already at seat capacity. The booking allocator turns
// this into a structured outcome; it is a business condition, not a fault.
type CapacityExceededError struct {
	TripID int64
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("vehicle full for trip %d", e.TripID)
}

// TxOpenError reports a nested transaction: a unit-of-work closure tried
// to begin another transaction on the same store. Independent concurrent
// callers do not see it; they wait their turn.
type TxOpenError struct{}

func (e TxOpenError) Error() string { return "transaction already open" }

// BackingStoreError marks a mutation that succeeded in memory but whose
// image export to the backing store failed. Callers may retry persistence
// without re-applying the mutation.
type BackingStoreError struct {
	Op  string
	Err error
}

func (e BackingStoreError) Error() string {
	return fmt.Sprintf("backing store %s failed: %v", e.Op, e.Err)
}

func (e BackingStoreError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotInitialized(err error) bool {
	var target NotInitializedError
	return errors.As(err, &target)
}

func IsConstraint(err error) bool {
	var target ConstraintError
	return errors.As(err, &target)
}

func IsCapacityExceeded(err error) bool {
	var target CapacityExceededError
	return errors.As(err, &target)
}

func IsTxOpen(err error) bool {
	var target TxOpenError
	return errors.As(err, &target)
}

func IsBackingStore(err error) bool {
	var target BackingStoreError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}
