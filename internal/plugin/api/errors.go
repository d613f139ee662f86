package api

import (
	"errors"
	"fmt"
)

// ErrReadOnly is raised when a script assigns a read-only ro property.
var ErrReadOnly = errors.New("read-only property")

// ScriptError reports a script that failed to load.
type ScriptError struct {
	Script string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
