package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"

	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/config"
	"github.com/kobzarvs/qline/internal/editor"
	"github.com/kobzarvs/qline/internal/logger"
	"github.com/kobzarvs/qline/internal/session"
)

// Interrupt payloads posted into the screen's event queue.
type (
	quitSignal    struct{}
	configChanged struct{}
)

// App is the top-level runtime for qline.
type App struct {
	path     string
	sessions *session.Manager
}

func New(path string) *App {
	return &App{path: path}
}

// Run edits the file until the user quits or the process is interrupted.
func (a *App) Run() (err error) {
	if err := logger.Init(logger.DebugEnabled()); err != nil {
		fmt.Fprintln(os.Stderr, "qline: logging disabled:", err)
	}
	defer func() {
		err = multierr.Append(err, logger.Close())
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		return err
	}
	ed, err := editor.Open(cfg, a.path)
	if err != nil {
		logger.Error("open failed", "path", a.path, "error", err)
		return err
	}
	if sm, err := session.NewManager(); err != nil {
		logger.Warn("session unavailable", "error", err)
	} else {
		a.sessions = sm
	}
	a.restoreCursor(ed)

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchSignals(ctx, s)
	if err := config.Watch(ctx, func() {
		_ = s.PostEvent(tcell.NewEventInterrupt(configChanged{}))
	}); err != nil {
		logger.Warn("config watch disabled", "error", err)
	}

	return a.loop(s, ed)
}

// watchSignals turns SIGINT and SIGTERM into a quit interrupt.
func watchSignals(ctx context.Context, s tcell.Screen) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(signals)
		select {
		case <-ctx.Done():
		case sig := <-signals:
			logger.Info("signal received", "signal", sig.String())
			_ = s.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
		}
	}()
}

// loop handles one event at a time and redraws after each. A quit command
// records the session; an interrupt exits without writing anything.
func (a *App) loop(s tcell.Screen, ed *editor.Controller) error {
	ed.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				return a.saveSession(ed)
			}
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
			switch ev.Data().(type) {
			case quitSignal:
				return nil
			case configChanged:
				reloadConfig(ed)
			}
		}
		ed.Render(s)
	}
}

func reloadConfig(ed *editor.Controller) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config reload failed", "error", err)
		return
	}
	ed.ApplyConfig(cfg)
	logger.Info("config reloaded")
}

func sessionKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func (a *App) restoreCursor(ed *editor.Controller) {
	if a.sessions == nil {
		return
	}
	state, ok := a.sessions.GetFileState(sessionKey(ed.Path()))
	if !ok {
		return
	}
	ed.SetCursor(buffer.Position{Row: state.CursorRow, Col: state.CursorCol})
	logger.Debug("cursor restored", "pos", ed.Cursor().String())
}

func (a *App) saveSession(ed *editor.Controller) error {
	if a.sessions == nil {
		return nil
	}
	cursor := ed.Cursor()
	a.sessions.SetFileState(sessionKey(ed.Path()), session.FileState{
		CursorRow: cursor.Row,
		CursorCol: cursor.Col,
	})
	if err := a.sessions.Save(); err != nil {
		logger.Error("session save failed", "error", err)
		return err
	}
	return nil
}
