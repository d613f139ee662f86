package plugin

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cleichner/rotide/internal/host"
	"github.com/cleichner/rotide/internal/input"
	"github.com/cleichner/rotide/internal/input/key"
)

type recordLogger struct {
	infos []string
	warns []string
}

func (l *recordLogger) Info(msg string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(msg, args...))
}

func (l *recordLogger) Warn(msg string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(msg, args...))
}

func newTestManager(t *testing.T, config ManagerConfig) (*Manager, *input.Handler, *host.Memory) {
	t.Helper()
	surface := host.NewMemory()
	h := input.NewHandler(input.DefaultConfig(), surface)
	m := NewManager(h, config)
	t.Cleanup(func() { _ = m.Close() })
	return m, h, surface
}

func press(h *input.Handler, codes ...key.Code) {
	for _, c := range codes {
		h.HandleKey(c)
	}
}

func TestManagerLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "keys.lua"), `
ro.bind("<F5>", function() ro.status = "F5 from script" end)
print("keys loaded")
`)
	log := &recordLogger{}
	m, h, surface := newTestManager(t, ManagerConfig{
		Paths:   []string{dir},
		Builtin: true,
		Logger:  log,
	})

	var events []ManagerEvent
	m.Subscribe(func(e ManagerEvent) { events = append(events, e) })

	if err := m.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
	scripts := m.Scripts()
	if scripts[0].Path != BuiltinPath || scripts[1].Name != "keys" {
		t.Errorf("Scripts() = %+v, %+v", scripts[0], scripts[1])
	}
	if len(events) != 2 || events[1].Type != EventScriptLoaded || events[1].Script != "keys" {
		t.Errorf("events = %+v", events)
	}
	if len(log.infos) != 1 || log.infos[0] != "lua: keys loaded" {
		t.Errorf("infos = %v", log.infos)
	}

	press(h, key.F5)
	if got := surface.Status(); got != "F5 from script" {
		t.Errorf("status = %q", got)
	}

	press(h, key.CtrlA, key.CtrlB)
	if got := surface.Status(); got != "-- You know your ABDs --" {
		t.Errorf("status after combo = %q", got)
	}
}

func TestManagerScriptErrorDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "a_broken.lua"), "ro.bind(")
	writeScript(t, filepath.Join(dir, "b_good.lua"), `ro.bind("<F6>", function() ro.status = "good" end)`)

	log := &recordLogger{}
	m, h, surface := newTestManager(t, ManagerConfig{Paths: []string{dir}, Logger: log})

	var failed []string
	m.Subscribe(func(e ManagerEvent) {
		if e.Type == EventScriptError {
			failed = append(failed, e.Script)
		}
	})

	err := m.LoadAll()
	if err == nil {
		t.Fatal("LoadAll() should report the broken script")
	}
	if len(failed) != 1 || failed[0] != "a_broken" {
		t.Errorf("failed = %v", failed)
	}
	if errs := m.Errors(); len(errs) != 1 || errs["a_broken"] == nil {
		t.Errorf("Errors() = %v", errs)
	}
	if len(log.warns) != 1 {
		t.Errorf("warns = %v", log.warns)
	}

	press(h, key.F6)
	if got := surface.Status(); got != "good" {
		t.Errorf("status = %q, want good", got)
	}
}

func TestManagerReload(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "keys.lua")
	writeScript(t, script, `ro.bind("<F5>", function() ro.status = "old" end)`)

	resets := 0
	m, h, surface := newTestManager(t, ManagerConfig{
		Paths:   []string{dir},
		OnReset: func() { resets++ },
	})
	if err := m.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if resets != 0 {
		t.Errorf("OnReset ran on first load")
	}

	writeScript(t, script, `ro.bind("<F6>", function() ro.status = "new" end)`)
	reloaded := false
	m.Subscribe(func(e ManagerEvent) {
		if e.Type == EventReloaded {
			reloaded = true
		}
	})
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if resets != 1 || !reloaded {
		t.Errorf("resets = %d, reloaded = %v", resets, reloaded)
	}

	surface.SetStatus("")
	press(h, key.F5)
	if got := surface.Status(); got != "" {
		t.Errorf("old binding still live: status = %q", got)
	}
	press(h, key.F6)
	if got := surface.Status(); got != "new" {
		t.Errorf("status = %q, want new", got)
	}
	if rt := m.Runtime(); rt == nil || rt.BindingCount() != 1 {
		t.Errorf("runtime bindings after reload wrong")
	}
}

func TestManagerReloadRemovesCommands(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "cmd.lua")
	writeScript(t, script, `
ro.on_command(function(name)
  if name == "hello" then ro.status = "hi" return true end
  return false
end)`)

	m, h, surface := newTestManager(t, ManagerConfig{Paths: []string{dir}})
	if err := m.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	h.Submit("hello")
	if got := surface.Status(); got != "hi" {
		t.Fatalf("status = %q, want hi", got)
	}

	writeScript(t, script, "-- nothing")
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	h.Submit("hello")
	if got := surface.Status(); got != "Not an editor command: hello" {
		t.Errorf("status = %q", got)
	}
}

func TestManagerWatchPaths(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "keys.lua"), "-- keys")

	m, _, _ := newTestManager(t, ManagerConfig{Paths: []string{dir}, Builtin: true})
	if err := m.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	paths := m.WatchPaths()
	want := []string{dir, filepath.Join(dir, "keys.lua")}
	if len(paths) != len(want) {
		t.Fatalf("WatchPaths() = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("WatchPaths()[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestManagerClosed(t *testing.T) {
	m, _, _ := newTestManager(t, DefaultManagerConfig())
	if err := m.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := m.LoadAll(); !errors.Is(err, ErrClosed) {
		t.Errorf("LoadAll() after Close = %v, want ErrClosed", err)
	}
	if err := m.Reload(); !errors.Is(err, ErrClosed) {
		t.Errorf("Reload() after Close = %v, want ErrClosed", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestManagerSubscribePanicAndUnsubscribe(t *testing.T) {
	m, _, _ := newTestManager(t, DefaultManagerConfig())

	calls := 0
	m.Subscribe(func(ManagerEvent) { panic("boom") })
	unsubscribe := m.Subscribe(func(ManagerEvent) { calls++ })
	m.Subscribe(nil)()

	if err := m.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	unsubscribe()
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls after unsubscribe = %d, want 1", calls)
	}
}
