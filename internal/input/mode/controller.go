package mode

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// Controller owns the active mode and coordinates transitions.
//
// Controller is not safe for concurrent use. Input is processed one key at a
// time on a single goroutine, and that goroutine is the only one that may
// switch modes.
type Controller struct {
	current  Mode
	previous Mode

	// callbacks are notified on mode changes. Removed entries are nil.
	callbacks []ChangeCallback

	transitions int
}

// NewController creates a controller in Normal mode.
func NewController() *Controller {
	return NewControllerIn(Normal)
}

// NewControllerIn creates a controller starting in the given mode.
// Invalid modes fall back to Normal.
func NewControllerIn(initial Mode) *Controller {
	if !initial.IsValid() {
		initial = Normal
	}
	return &Controller{
		current:  initial,
		previous: initial,
	}
}

// Current returns the active mode.
func (c *Controller) Current() Mode {
	return c.current
}

// Previous returns the mode that was active before the last transition.
func (c *Controller) Previous() Mode {
	return c.previous
}

// Is returns true if the active mode is m.
func (c *Controller) Is(m Mode) bool {
	return c.current == m
}

// IsAny returns true if the active mode is any of the given modes.
func (c *Controller) IsAny(modes ...Mode) bool {
	for _, m := range modes {
		if c.current == m {
			return true
		}
	}
	return false
}

// Switch makes m the active mode and notifies callbacks.
// Switching to the active mode is a no-op and returns false.
func (c *Controller) Switch(m Mode) bool {
	if !m.IsValid() || m == c.current {
		return false
	}

	from := c.current
	c.previous = from
	c.current = m
	c.transitions++

	// Callbacks may register further callbacks; iterate over a snapshot.
	callbacks := make([]ChangeCallback, len(c.callbacks))
	copy(callbacks, c.callbacks)
	for _, cb := range callbacks {
		if cb != nil {
			cb(from, m)
		}
	}
	return true
}

// Transitions returns the number of mode changes since creation.
func (c *Controller) Transitions() int {
	return c.transitions
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (c *Controller) OnChange(callback ChangeCallback) func() {
	c.callbacks = append(c.callbacks, callback)
	index := len(c.callbacks) - 1

	return func() {
		// Remove callback by setting to nil (preserves indices)
		if index < len(c.callbacks) {
			c.callbacks[index] = nil
		}
	}
}
