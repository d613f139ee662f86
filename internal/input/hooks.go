package input

import (
	"sort"

	"github.com/cleichner/rotide/internal/dispatcher/execctx"
	"github.com/cleichner/rotide/internal/input/key"
)

// Hook observes keys before and after they are matched.
type Hook interface {
	// PreKey is called before a key is processed.
	// Return true to consume the key and stop further processing.
	PreKey(c key.Code, ctx *execctx.Context) bool

	// PostKey is called after a key is processed.
	PostKey(c key.Code, out Outcome, ctx *execctx.Context)
}

// HookFuncs adapts plain functions to Hook. Either may be nil.
type HookFuncs struct {
	Pre  func(c key.Code, ctx *execctx.Context) bool
	Post func(c key.Code, out Outcome, ctx *execctx.Context)
}

// PreKey implements Hook.
func (f HookFuncs) PreKey(c key.Code, ctx *execctx.Context) bool {
	return f.Pre != nil && f.Pre(c, ctx)
}

// PostKey implements Hook.
func (f HookFuncs) PostKey(c key.Code, out Outcome, ctx *execctx.Context) {
	if f.Post != nil {
		f.Post(c, out, ctx)
	}
}

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
)

// HookID uniquely identifies a registered hook.
type HookID uint64

// HookRegistration holds metadata about a registered hook.
type HookRegistration struct {
	ID       HookID
	Name     string
	Priority HookPriority
	Hook     Hook
}

// HookManager keeps hooks ordered by priority, then registration order.
// It is not safe for concurrent use.
type HookManager struct {
	hooks   []HookRegistration
	nextID  HookID
	enabled bool
}

// NewHookManager creates a new hook manager.
func NewHookManager() *HookManager {
	return &HookManager{enabled: true}
}

// Register adds a hook and returns its id. A named hook replaces an
// existing hook with the same name.
func (m *HookManager) Register(hook Hook, name string, priority HookPriority) HookID {
	if name != "" {
		m.UnregisterByName(name)
	}
	m.nextID++
	m.hooks = append(m.hooks, HookRegistration{
		ID:       m.nextID,
		Name:     name,
		Priority: priority,
		Hook:     hook,
	})
	sort.SliceStable(m.hooks, func(i, j int) bool {
		return m.hooks[i].Priority < m.hooks[j].Priority
	})
	return m.nextID
}

// Unregister removes a hook by id.
func (m *HookManager) Unregister(id HookID) bool {
	for i := range m.hooks {
		if m.hooks[i].ID == id {
			m.hooks = append(m.hooks[:i:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// UnregisterByName removes a hook by name.
func (m *HookManager) UnregisterByName(name string) bool {
	for _, reg := range m.hooks {
		if reg.Name == name {
			return m.Unregister(reg.ID)
		}
	}
	return false
}

// SetEnabled enables or disables all hooks.
func (m *HookManager) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Count returns the number of registered hooks.
func (m *HookManager) Count() int {
	return len(m.hooks)
}

// List returns all hook registrations in execution order.
func (m *HookManager) List() []HookRegistration {
	out := make([]HookRegistration, len(m.hooks))
	copy(out, m.hooks)
	return out
}

// RunPreKey runs PreKey hooks in order.
// Returns true if any hook consumed the key.
func (m *HookManager) RunPreKey(c key.Code, ctx *execctx.Context) bool {
	if !m.enabled {
		return false
	}
	for _, reg := range m.List() {
		if reg.Hook.PreKey(c, ctx) {
			return true
		}
	}
	return false
}

// RunPostKey runs PostKey hooks in order.
func (m *HookManager) RunPostKey(c key.Code, out Outcome, ctx *execctx.Context) {
	if !m.enabled {
		return
	}
	for _, reg := range m.List() {
		reg.Hook.PostKey(c, out, ctx)
	}
}
