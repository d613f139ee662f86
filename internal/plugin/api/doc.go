// Package api exposes the editor to Lua scripts through the global ro
// table.
//
// Each Module adds functions and constants to ro; modules that implement
// PropertyProvider also back fields such as ro.status and ro.insert_mode
// with host state through ro's metatable:
//
//	ro.bind({ro.CTRL_A, ro.CTRL_B}, function()
//	    ro.status = "-- You know your ABDs --"
//	end)
//
//	ro.on_command(function(name, ...)
//	    if name ~= "hello" then return false end
//	    ro.status = "hi"
//	    return true
//	end)
//
// A key handler that returns false declines the key; any other result
// consumes it. A command handler accepts a line by returning true. Errors
// raised by a handler are logged and count as declining.
//
// A Runtime owns one sandboxed interpreter and remembers what its scripts
// registered so Unload can take it back before a reload.
package api
