package script

import (
	"errors"
	"fmt"
)

var (
	// ErrStateClosed is returned when calling into a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrUndefined is returned by Call when the global function is not
	// defined by the script.
	ErrUndefined = errors.New("function not defined")
)

// CallError records a failed callback.
type CallError struct {
	Func string
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("script: %s: %v", e.Func, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}
