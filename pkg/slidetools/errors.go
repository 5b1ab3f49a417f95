package slidetools

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates an action file or input document does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates an action file extension other than .json, .toml, .yaml or .yml.
var ErrUnsupportedFormat = errors.New("unsupported action file format")

// ErrUnknownKey indicates an action file key that maps to no action field.
var ErrUnknownKey = errors.New("unknown action file key")

// ActionError represents an error attributed to one action of a tree.
type ActionError struct {
	Action string
	Stage  string // "load", "validate", "run"
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action error in %q (%s): %v", e.Action, e.Stage, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// NewActionError creates a new ActionError.
func NewActionError(action, stage string, err error) *ActionError {
	return &ActionError{
		Action: action,
		Stage:  stage,
		Err:    err,
	}
}
