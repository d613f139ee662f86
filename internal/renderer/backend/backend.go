// Package backend connects the input core to a terminal.
//
// A Terminal reads key events from a tcell screen, converts them to
// key.Code values, and implements host.Surface by drawing annotations, a
// status line on the bottom row and the cursor.
package backend

import (
	"github.com/cleichner/rotide/internal/host"
	"github.com/cleichner/rotide/internal/input/key"
)

// CursorStyle defines how the cursor appears.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// Backend is a display the editor can run against.
type Backend interface {
	host.Surface
	host.Bounded

	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// The Keys channel is closed afterwards.
	Shutdown()

	// Keys delivers key presses in order.
	Keys() <-chan key.Code

	// SetCursorStyle changes the cursor appearance.
	SetCursorStyle(style CursorStyle)
}
