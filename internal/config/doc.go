// Package config loads rotide's settings.
//
// Settings come from three layers, later layers winning:
//
//	1. Built-in defaults (Default)
//	2. The TOML file, ~/.config/rotide/config.toml unless -c is given
//	3. ROTIDE_* environment variables
//
// A config file looks like:
//
//	[editor]
//	initialMode = "normal"
//	logLevel = "info"
//	statusOnUnknown = true
//
//	[scripts]
//	paths = ["~/.config/rotide/scripts", "extra.lua"]
//	watch = true
//	runtime = true
//	timeout = "2s"
//
//	[keymap]
//	files = ["keys.yaml"]
//
// ROTIDE_LOG_LEVEL and ROTIDE_SCRIPTS (a path list) override the matching
// settings; any other ROTIDE_SECTION_SETTING_NAME variable maps to
// section.settingName.
//
// # Sub-packages
//
//   - loader: TOML and environment sources
//   - watcher: fsnotify-based change notification for live reload
package config
