// Package app wires configuration, the key handler, Lua scripts and live
// reload together and runs the event loop that feeds keys to the handler.
package app

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync/atomic"

	"github.com/cleichner/rotide/internal/config"
	"github.com/cleichner/rotide/internal/config/watcher"
	"github.com/cleichner/rotide/internal/host"
	"github.com/cleichner/rotide/internal/input"
	"github.com/cleichner/rotide/internal/input/key"
	"github.com/cleichner/rotide/internal/input/keymap"
	"github.com/cleichner/rotide/internal/plugin"
)

// Application owns one editing session: a surface, the input handler
// driving it, and the scripts bound into that handler.
//
// Everything except Run's channel plumbing happens on the goroutine that
// calls Run, so handlers and scripts never run concurrently.
type Application struct {
	opts       Options
	config     *config.Config
	configPath string
	logger     *Logger

	surface host.Surface
	handler *input.Handler
	keymaps []*keymap.Keymap
	scripts *plugin.Manager
	watcher *watcher.Watcher

	running atomic.Bool
	closed  bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty means the
	// default location, which may be absent.
	ConfigPath string

	// LogLevel overrides the configured log level.
	LogLevel string

	// Scripts are appended to the configured script paths.
	Scripts []string

	// NoWatch disables live reload regardless of configuration.
	NoWatch bool

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer
}

// Source delivers key codes to Run. Run returns once the channel closes.
type Source interface {
	Keys() <-chan key.Code
}

// New creates an application writing to surface.
func New(opts Options, surface host.Surface) (*Application, error) {
	app := &Application{
		opts:    opts,
		surface: surface,
	}
	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Run feeds keys from src to the handler until src closes, ctx is done or
// a binding requests quit. Script and keymap reloads triggered by file
// changes run between keys. Run returns ErrQuit on a quit request and nil
// when src is exhausted.
func (app *Application) Run(ctx context.Context, src Source) error {
	if app.closed {
		return ErrClosed
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	var (
		changes <-chan watcher.Event
		errs    <-chan error
	)
	if app.watcher != nil {
		changes = app.watcher.Events()
		errs = app.watcher.Errors()
	}
	keys := src.Keys()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case c, ok := <-keys:
			if !ok {
				return nil
			}
			app.handleKey(c)
			if app.handler.QuitRequested() {
				return ErrQuit
			}

		case ev, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			app.logger.Info("%s %s, reloading", ev.Path, ev.Op)
			if err := app.Reload(); err != nil {
				app.logger.Warn("reload: %v", err)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			app.logger.Warn("watch: %v", err)
		}
	}
}

// handleKey dispatches one key.
func (app *Application) handleKey(c key.Code) {
	out := app.handler.HandleKey(c)
	app.logger.Debug("key %s: %s", c, out.Status)
}

// Feed dispatches keys synchronously, stopping early on a quit request.
// It reports whether quit was requested.
func (app *Application) Feed(seq key.Sequence) bool {
	for _, c := range seq {
		app.handleKey(c)
		if app.handler.QuitRequested() {
			return true
		}
	}
	return false
}

// Reload re-reads the configuration and keymap files and reloads every
// script. When the new configuration or a keymap file is invalid, nothing
// changes and the error is returned.
func (app *Application) Reload() error {
	if app.closed {
		return ErrClosed
	}

	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return NewOperationError("reload config", app.configPath, err)
	}
	if len(app.opts.Scripts) > 0 {
		cfg.Scripts.Paths = append(cfg.Scripts.Paths, app.opts.Scripts...)
	}

	keymaps, err := loadKeymaps(cfg.Keymap.Files)
	if err != nil {
		return err
	}

	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(cfg.Editor.LogLevel))
	}
	app.keymaps = keymaps

	var loadErr error
	if sameScripts(app.config, cfg) {
		loadErr = app.scripts.Reload()
	} else {
		if err := app.scripts.Close(); err != nil {
			app.logger.Warn("close scripts: %v", err)
		}
		app.scripts = app.newScriptManager(cfg)
		app.resetBindings()
		loadErr = app.scripts.LoadAll()
	}
	app.config = cfg

	app.rewatch()
	app.logger.Info("reloaded %d scripts, %d keymaps", app.scripts.Count(), len(keymaps))
	if loadErr != nil {
		return NewOperationError("reload scripts", "", loadErr)
	}
	return nil
}

// resetBindings drops script bindings and restores the defaults plus the
// current keymap files.
func (app *Application) resetBindings() {
	if err := app.handler.ResetBindings(app.keymaps...); err != nil {
		app.logger.Warn("reset bindings: %v", err)
	}
}

// rewatch adds every config, keymap and script path to the watcher.
// Watching a path twice is harmless.
func (app *Application) rewatch() {
	if app.watcher == nil {
		return
	}
	paths := app.config.WatchPaths(app.configPath)
	paths = append(paths, app.scripts.WatchPaths()...)
	for _, p := range paths {
		if err := app.watcher.Watch(p); err != nil {
			app.logger.Debug("watch %s: %v", p, err)
		}
	}
}

// sameScripts reports whether a and b load the same scripts the same way.
func sameScripts(a, b *config.Config) bool {
	return a.Scripts.Runtime == b.Scripts.Runtime &&
		a.Scripts.Timeout == b.Scripts.Timeout &&
		slices.Equal(a.Scripts.Paths, b.Scripts.Paths)
}

// Close unloads scripts and stops the watcher. It is safe to call more
// than once.
func (app *Application) Close() error {
	if app.closed {
		return nil
	}
	app.closed = true

	if m := app.handler.Metrics(); m != nil {
		s := m.Snapshot()
		app.logger.Debug("keys=%d handled=%d unmatched=%d avg=%s peak=%s",
			s.Keys, s.Handled, s.Unmatched, s.AverageLatency, s.PeakLatency)
	}

	var errs []error
	if app.scripts != nil {
		errs = append(errs, app.scripts.Close())
	}
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
	}
	return errors.Join(errs...)
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// ConfigPath returns the configuration file path, possibly nonexistent.
func (app *Application) ConfigPath() string {
	return app.configPath
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Handler returns the input handler.
func (app *Application) Handler() *input.Handler {
	return app.handler
}

// Scripts returns the script manager.
func (app *Application) Scripts() *plugin.Manager {
	return app.scripts
}

// Watcher returns the file watcher, or nil when live reload is off.
func (app *Application) Watcher() *watcher.Watcher {
	return app.watcher
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}
