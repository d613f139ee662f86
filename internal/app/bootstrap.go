package app

import (
	"github.com/cleichner/rotide/internal/config"
	"github.com/cleichner/rotide/internal/config/watcher"
	"github.com/cleichner/rotide/internal/dispatcher"
	"github.com/cleichner/rotide/internal/input"
	"github.com/cleichner/rotide/internal/input/keymap"
	"github.com/cleichner/rotide/internal/plugin"
	plua "github.com/cleichner/rotide/internal/plugin/lua"
)

// bootstrapper initializes components with cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		init func() error
	}{
		{"config", b.initConfig},
		{"logger", b.initLogger},
		{"input", b.initInput},
		{"keymaps", b.initKeymaps},
		{"scripts", b.initScripts},
		{"watcher", b.initWatcher},
	}
	for _, step := range steps {
		if err := step.init(); err != nil {
			b.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
		b.initOrder = append(b.initOrder, step.name)
	}
	return nil
}

// initConfig loads the configuration file and environment overrides.
func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(b.opts.ConfigPath)
	if err != nil {
		return err
	}
	if len(b.opts.Scripts) > 0 {
		cfg.Scripts.Paths = append(cfg.Scripts.Paths, b.opts.Scripts...)
	}
	b.app.config = cfg
	b.app.configPath = b.opts.ConfigPath
	if b.app.configPath == "" {
		b.app.configPath = config.DefaultConfigPath()
	}
	return nil
}

// initLogger creates the application logger. The -log-level option wins
// over the configured level.
func (b *bootstrapper) initLogger() error {
	lcfg := DefaultLoggerConfig()
	if b.opts.LogOutput != nil {
		lcfg.Output = b.opts.LogOutput
	}
	lcfg.Level = ParseLogLevel(b.app.config.Editor.LogLevel)
	if b.opts.LogLevel != "" {
		lcfg.Level = ParseLogLevel(b.opts.LogLevel)
	}
	b.app.logger = NewLogger(lcfg)
	return nil
}

// initInput creates the key handler on the surface.
func (b *bootstrapper) initInput() error {
	cfg := b.app.config
	h := input.NewHandler(input.Config{
		InitialMode:           cfg.Mode(),
		Builtins:              true,
		ReportUnknownCommands: cfg.Editor.StatusOnUnknown,
		EnableMetrics:         cfg.Editor.Metrics,
	}, b.app.surface)
	h.SetLogger(b.app.logger.WithComponent("input"))
	h.Commands().RegisterPostHook(dispatcher.LoggingHook{Logger: b.app.logger.WithComponent("commands")})
	b.app.handler = h
	return nil
}

// initKeymaps applies the configured keymap files over the defaults.
func (b *bootstrapper) initKeymaps() error {
	keymaps, err := loadKeymaps(b.app.config.Keymap.Files)
	if err != nil {
		return err
	}
	for _, km := range keymaps {
		if err := b.app.handler.ApplyKeymap(km); err != nil {
			return NewOperationError("apply keymap", km.Source, err)
		}
	}
	b.app.keymaps = keymaps
	return nil
}

// initScripts loads the embedded runtime and the user's scripts. A failing
// script is logged by the manager and does not stop startup.
func (b *bootstrapper) initScripts() error {
	b.app.scripts = b.app.newScriptManager(b.app.config)
	if err := b.app.scripts.LoadAll(); err != nil {
		b.app.logger.Warn("scripts: %v", err)
	}
	return nil
}

// initWatcher starts watching the config, keymap and script files when
// live reload is enabled.
func (b *bootstrapper) initWatcher() error {
	if !b.app.config.Scripts.Watch || b.opts.NoWatch {
		return nil
	}
	w, err := watcher.New()
	if err != nil {
		return err
	}
	b.app.watcher = w
	b.app.rewatch()
	return nil
}

// cleanup performs cleanup in reverse initialization order.
// Called when bootstrap fails partway through.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "scripts":
			if b.app.scripts != nil {
				_ = b.app.scripts.Close()
				b.app.scripts = nil
			}
		case "watcher":
			if b.app.watcher != nil {
				_ = b.app.watcher.Close()
				b.app.watcher = nil
			}
		}
	}
}

// newScriptManager creates a script manager for cfg whose reload resets
// key bindings to the defaults plus the current keymap files.
func (app *Application) newScriptManager(cfg *config.Config) *plugin.Manager {
	var stateOpts []plua.StateOption
	if d := cfg.ScriptTimeout(); d > 0 {
		stateOpts = append(stateOpts, plua.WithExecutionTimeout(d))
	}
	return plugin.NewManager(app.handler, plugin.ManagerConfig{
		Paths:        cfg.Scripts.Paths,
		Builtin:      cfg.Scripts.Runtime,
		Logger:       app.logger.WithComponent("lua"),
		StateOptions: stateOpts,
		OnReset:      app.resetBindings,
	})
}

// loadKeymaps reads keymap files in order.
func loadKeymaps(files []string) ([]*keymap.Keymap, error) {
	keymaps := make([]*keymap.Keymap, 0, len(files))
	for _, file := range files {
		km, err := keymap.LoadFile(file)
		if err != nil {
			return nil, NewOperationError("load keymap", file, err)
		}
		keymaps = append(keymaps, km)
	}
	return keymaps, nil
}
