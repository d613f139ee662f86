// Package plugin discovers and loads the user's Lua scripts.
//
// A Loader walks the configured search paths. Each path is a single .lua
// file or a directory; a directory contributes its *.lua files in name
// order and every subdirectory holding an init.lua:
//
//	~/.config/rotide/scripts/keys.lua
//	~/.config/rotide/scripts/motions/init.lua
//
// A Manager owns one api.Runtime and runs the embedded runtime scripts
// followed by every discovered script. A failing script is logged and
// skipped. Reload discards the interpreter together with every binding
// and command the scripts registered, then loads everything again:
//
//	m := plugin.NewManager(handler, plugin.ManagerConfig{
//	    Paths:   cfg.Scripts.Paths,
//	    Builtin: cfg.Scripts.Runtime,
//	    Logger:  logger,
//	    OnReset: reapplyKeymaps,
//	})
//	if err := m.LoadAll(); err != nil {
//	    logger.Warn("scripts: %v", err)
//	}
//
// Subpackage lua wraps the sandboxed interpreter and subpackage api
// exposes the ro table scripts program against.
package plugin
