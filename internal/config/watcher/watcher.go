// Package watcher reports changes to configuration, keymap and script
// files for live reload.
//
// Files are watched through their parent directory, so editors that
// replace a file on save are still seen. Rapid changes to one path are
// coalesced into a single Event delivered after the debounce period.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned when using a closed watcher.
var ErrClosed = errors.New("watcher is closed")

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Watcher monitors files and directories for changes.
type Watcher struct {
	mu sync.Mutex

	fsw *fsnotify.Watcher

	// Watched files, and directories whose every entry is watched
	files map[string]bool
	dirs  map[string]bool

	// Directories registered with fsnotify
	added map[string]bool

	debounce time.Duration
	pending  map[string]Event

	events chan Event
	errors chan error

	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
// Zero delivers every change immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher and starts its event loop.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		added:    make(map[string]bool),
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]Event),
		events:   make(chan Event, 64),
		errors:   make(chan error, 8),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Watch adds a file or directory. A file that doesn't exist yet is
// watched for creation, but its directory must exist.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}

	info, err := os.Stat(absPath)
	switch {
	case err == nil && info.IsDir():
		if err := w.addDir(absPath); err != nil {
			return err
		}
		w.dirs[absPath] = true
	case err == nil || os.IsNotExist(err):
		if err := w.addDir(filepath.Dir(absPath)); err != nil {
			return err
		}
		w.files[absPath] = true
	default:
		return err
	}
	return nil
}

// addDir registers dir with fsnotify once.
func (w *Watcher) addDir(dir string) error {
	if w.added[dir] {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.added[dir] = true
	return nil
}

// Unwatch removes a file or directory from the watch list.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	delete(w.files, absPath)
	delete(w.dirs, absPath)
	return nil
}

// WatchedFiles returns the watched files and directories, sorted.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.files)+len(w.dirs))
	for p := range w.files {
		paths = append(paths, p)
	}
	for p := range w.dirs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Events returns the channel changes are delivered on.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel watch errors are delivered on.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return w.fsw.Close()
}

// loop handles fsnotify events until Close.
func (w *Watcher) loop() {
	defer w.wg.Done()

	var tick <-chan time.Time
	if w.debounce > 0 {
		ticker := time.NewTicker(w.debounce)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.done:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}

		case now := <-tick:
			w.flush(now)
		}
	}
}

// handle filters and queues one fsnotify event.
func (w *Watcher) handle(fsEvent fsnotify.Event) {
	op, ok := convertOp(fsEvent.Op)
	if !ok {
		return
	}

	path := filepath.Clean(fsEvent.Name)
	w.mu.Lock()
	relevant := w.files[path] || w.dirs[filepath.Dir(path)] || w.dirs[path]
	w.mu.Unlock()
	if !relevant {
		return
	}

	event := Event{Path: path, Op: op, Time: time.Now()}
	if w.debounce == 0 {
		w.send(event)
		return
	}
	w.queue(event)
}

// convertOp maps an fsnotify operation; chmod-only events are dropped.
func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}

// queue coalesces an event with any pending one for the same path:
// remove wins, create survives later writes, otherwise the newest op wins.
func (w *Watcher) queue(event Event) {
	existing, ok := w.pending[event.Path]
	if ok {
		switch {
		case existing.Op == OpRemove && event.Op != OpCreate:
			event.Op = OpRemove
		case existing.Op == OpCreate && event.Op == OpWrite:
			event.Op = OpCreate
		}
	}
	w.pending[event.Path] = event
}

// flush sends the events that have been quiet for the debounce period.
func (w *Watcher) flush(now time.Time) {
	stable := now.Add(-w.debounce)
	paths := make([]string, 0, len(w.pending))
	for path, event := range w.pending {
		if !event.Time.After(stable) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	for _, path := range paths {
		w.send(w.pending[path])
		delete(w.pending, path)
	}
}

// send delivers an event, dropping it when the channel is full.
func (w *Watcher) send(event Event) {
	select {
	case w.events <- event:
	default:
	}
}
