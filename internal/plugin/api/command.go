package api

import (
	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
)

// CommandModule implements ro.on_command, ro.remove_command and
// ro.command.
type CommandModule struct {
	rt *Runtime
}

// NewCommandModule creates a new command module.
func NewCommandModule(rt *Runtime) *CommandModule {
	return &CommandModule{rt: rt}
}

// Name returns the module name.
func (m *CommandModule) Name() string {
	return "command"
}

// Register adds the command functions.
func (m *CommandModule) Register(L *lua.LState, ro *lua.LTable) error {
	L.SetField(ro, "on_command", L.NewFunction(m.onCommand))
	L.SetField(ro, "remove_command", L.NewFunction(m.removeCommand))
	L.SetField(ro, "command", L.NewFunction(m.command))
	return nil
}

// on_command(fn) -> id
// fn(name, ...) is called for every submitted command line after the
// handlers registered before it declined. Returning true accepts the line.
func (m *CommandModule) onCommand(L *lua.LState) int {
	fn := L.CheckFunction(1)

	id, err := m.rt.host.OnCommand(m.rt.commandHandler(fn))
	if err != nil {
		L.RaiseError("on_command: %v", err)
		return 0
	}
	m.rt.commands = append(m.rt.commands, id)
	L.Push(lua.LString(id.String()))
	return 1
}

// remove_command(id) -> bool
func (m *CommandModule) removeCommand(L *lua.LState) int {
	id, err := uuid.Parse(L.CheckString(1))
	if err != nil {
		L.ArgError(1, "invalid command id")
		return 0
	}

	removed := m.rt.host.RemoveCommand(id)
	if removed {
		m.rt.untrackCommand(id)
	}
	L.Push(lua.LBool(removed))
	return 1
}

// command(text) -> outcome
// Submits text as if typed on the command line. Returns "accepted",
// "unrecognized", "empty" or "cancelled".
func (m *CommandModule) command(L *lua.LState) int {
	text := L.CheckString(1)
	L.Push(lua.LString(m.rt.host.Submit(text).String()))
	return 1
}
