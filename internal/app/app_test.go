package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/config"
	"github.com/kobzarvs/qline/internal/editor"
	"github.com/kobzarvs/qline/internal/session"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(40, 5)
	return s
}

func post(t *testing.T, s tcell.Screen, ev tcell.Event) {
	t.Helper()
	if err := s.PostEvent(ev); err != nil {
		t.Fatalf("post event: %v", err)
	}
}

func newTestApp(t *testing.T, lines ...string) (*App, *editor.Controller, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	a := New(path)
	a.sessions = session.Open(filepath.Join(dir, "state", "session.json"))
	ed := editor.New(config.Default(), path, buffer.New(lines...))
	return a, ed, dir
}

func TestLoopSaveThenQuitRecordsSession(t *testing.T) {
	a, ed, dir := newTestApp(t, "hello")
	s := newTestScreen(t)

	post(t, s, tcell.NewEventKey(tcell.KeyEnd, 0, 0))
	post(t, s, tcell.NewEventKey(tcell.KeyRune, '!', 0))
	post(t, s, tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModAlt))
	post(t, s, tcell.NewEventKey(tcell.KeyCtrlQ, 0, 0))

	if err := a.loop(s, ed); err != nil {
		t.Fatalf("loop error: %v", err)
	}
	data, err := os.ReadFile(ed.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "hello!" {
		t.Fatalf("file contents = %q, want %q", string(data), "hello!")
	}

	reopened := session.Open(filepath.Join(dir, "state", "session.json"))
	state, ok := reopened.GetFileState(sessionKey(ed.Path()))
	if !ok {
		t.Fatalf("session has no state for %s", ed.Path())
	}
	if state.CursorRow != 0 || state.CursorCol != 6 {
		t.Fatalf("session state = %+v, want row 0 col 6", state)
	}
}

func TestLoopInterruptSkipsSession(t *testing.T) {
	a, ed, dir := newTestApp(t, "hello")
	s := newTestScreen(t)

	post(t, s, tcell.NewEventKey(tcell.KeyRune, 'x', 0))
	post(t, s, tcell.NewEventInterrupt(quitSignal{}))

	if err := a.loop(s, ed); err != nil {
		t.Fatalf("loop error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "state", "session.json")); !os.IsNotExist(err) {
		t.Fatalf("interrupt wrote the session (stat err %v)", err)
	}
	if _, err := os.Stat(ed.Path()); !os.IsNotExist(err) {
		t.Fatalf("interrupt wrote the buffer (stat err %v)", err)
	}
}

func TestLoopReloadsConfig(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("QLINE_CONFIG_HOME", cfgDir)
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("[editor]\ntab-width = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	a, ed, _ := newTestApp(t, "")
	s := newTestScreen(t)

	post(t, s, tcell.NewEventInterrupt(configChanged{}))
	post(t, s, tcell.NewEventKey(tcell.KeyTab, 0, 0))
	post(t, s, tcell.NewEventInterrupt(quitSignal{}))

	if err := a.loop(s, ed); err != nil {
		t.Fatalf("loop error: %v", err)
	}
	if got := ed.Lines()[0]; got != "  " {
		t.Fatalf("line after tab = %q, want two spaces", got)
	}
}

func TestRestoreCursorClamps(t *testing.T) {
	a, ed, _ := newTestApp(t, "ab", "cde")
	a.sessions.SetFileState(sessionKey(ed.Path()), session.FileState{CursorRow: 7, CursorCol: 9})
	a.restoreCursor(ed)
	if got := ed.Cursor(); got != (buffer.Position{Row: 1, Col: 3}) {
		t.Fatalf("cursor = %v, want 1:3", got)
	}
}
