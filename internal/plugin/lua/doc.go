// Package lua wraps gopher-lua for editor scripts.
//
// A State is a sandboxed interpreter: the io, os, debug and package
// libraries are never opened, the chunk loaders (dofile, loadfile, load,
// loadstring) are removed, and require only resolves modules the host
// provides. Every chunk and call runs under an execution deadline.
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.DoFile("keyboard.lua"); err != nil {
//	    return err
//	}
//
// A State is not safe for concurrent use. Calls may nest: a Go function
// invoked from Lua may call back into the same State.
package lua
