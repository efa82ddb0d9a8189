package input

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction is returned for an action name with no handler.
	ErrUnknownAction = errors.New("unknown action")

	// ErrClosed is returned when the engine has been closed.
	ErrClosed = errors.New("input engine is closed")

	// ErrNoHost is returned by New when no host is given.
	ErrNoHost = errors.New("no host")
)

// ActionError records a failed action dispatch.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %q: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
