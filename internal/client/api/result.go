package api

import "errors"

// State is the tag of a Result
type State int

const (
	StatePending State = iota
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// errPending is returned by Unwrap on a result that has not completed
var errPending = errors.New("result is still pending")

// Result is the outcome of an API operation: pending, success with a payload,
// or failure with a cause.
type Result[T any] struct {
	value T
	err   error
	state State
}

// Pending returns a result that has not completed yet
func Pending[T any]() Result[T] {
	return Result[T]{state: StatePending}
}

// Success wraps a payload
func Success[T any](v T) Result[T] {
	return Result[T]{state: StateSuccess, value: v}
}

// Failure wraps a cause. A nil cause is still a failure.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Result[T]{state: StateFailure, err: err}
}

// State returns the tag
func (r Result[T]) State() State {
	return r.state
}

// Value returns the payload and whether the result is a success
func (r Result[T]) Value() (T, bool) {
	return r.value, r.state == StateSuccess
}

// Err returns the failure cause, nil otherwise
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap converts the result into the usual (value, error) pair
func (r Result[T]) Unwrap() (T, error) {
	switch r.state {
	case StateSuccess:
		return r.value, nil
	case StateFailure:
		var zero T
		return zero, r.err
	default:
		var zero T
		return zero, errPending
	}
}

// resultOf builds a Result from a (value, error) pair
func resultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(v)
}
