package plugin

import "errors"

// Script manager errors.
var (
	// ErrScriptNotFound is returned when a configured script file is missing.
	ErrScriptNotFound = errors.New("script not found")

	// ErrNoEntryPoint is returned when a script directory has no init.lua.
	ErrNoEntryPoint = errors.New("script directory has no entry point (init.lua)")

	// ErrNotLua is returned when a configured file is not a .lua script.
	ErrNotLua = errors.New("not a lua script")

	// ErrClosed is returned when the manager has been closed.
	ErrClosed = errors.New("script manager is closed")
)
