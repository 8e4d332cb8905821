package editor

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/config"
	"github.com/kobzarvs/qline/internal/logger"
	"github.com/kobzarvs/qline/internal/motion"
	"github.com/kobzarvs/qline/internal/mutate"
	"github.com/kobzarvs/qline/internal/selection"
)

type Mode int

const (
	Idle Mode = iota
	AwaitingModifierKey
)

// State is everything the controller tracks besides the buffer.
type State struct {
	Mode      Mode
	Cursor    buffer.Position
	Sel       *selection.Selection
	Selecting bool
	Stage     selection.Stage
}

// Snapshot is the render-ready view of a controller.
type Snapshot struct {
	Lines     []string
	Cursor    buffer.Position
	Span      *buffer.Span
	Stage     selection.Stage
	Selecting bool
	Pending   bool
	Dirty     bool
	Status    string
}

// Controller owns one buffer and applies commands to it one at a time.
type Controller struct {
	buf    *buffer.LineBuffer
	path   string
	state  State
	keymap *Keymap

	register string
	status   string
	dirty    bool

	tabWidth   int
	trim       bool
	showStatus bool
	scroll     int

	styleMain      tcell.Style
	styleSelection tcell.Style
	styleStatus    tcell.Style
	stylePending   tcell.Style
}

// New returns a controller editing buf, saved to path.
func New(cfg config.Config, path string, buf *buffer.LineBuffer) *Controller {
	if buf == nil {
		buf = buffer.New()
	}
	c := &Controller{buf: buf, path: path}
	c.ApplyConfig(cfg)
	return c
}

// Open loads path through the load collaborator, creating it if missing.
func Open(cfg config.Config, path string) (*Controller, error) {
	buf, err := buffer.Open(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, path, buf), nil
}

// ApplyConfig updates options, styles and key bindings. Buffer and cursor
// state are untouched.
func (c *Controller) ApplyConfig(cfg config.Config) {
	c.tabWidth = cfg.Editor.TabWidth
	if c.tabWidth < 1 {
		c.tabWidth = 4
	}
	c.trim = cfg.Editor.Trim()
	c.showStatus = cfg.Editor.ShowStatus()
	c.keymap = NewKeymap(cfg.Keymap)

	fg := parseColor(cfg.Theme.Foreground, tcell.ColorDefault)
	bg := parseColor(cfg.Theme.Background, tcell.ColorDefault)
	c.styleMain = tcell.StyleDefault.Foreground(fg).Background(bg)
	selFg := parseColor(cfg.Theme.SelectionForeground, bg)
	selBg := parseColor(cfg.Theme.SelectionBackground, fg)
	c.styleSelection = tcell.StyleDefault.Foreground(selFg).Background(selBg)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, fg)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, bg)
	c.styleStatus = tcell.StyleDefault.Foreground(statusFg).Background(statusBg)
	pendingFg := parseColor(cfg.Theme.PendingForeground, statusFg)
	c.stylePending = c.styleStatus.Foreground(pendingFg).Bold(true)
}

func (c *Controller) Path() string { return c.path }

func (c *Controller) Lines() []string { return c.buf.Lines() }

func (c *Controller) Cursor() buffer.Position { return c.state.Cursor }

func (c *Controller) State() State { return c.state }

// Register holds the text of the last copied selection.
func (c *Controller) Register() string { return c.register }

func (c *Controller) Dirty() bool { return c.dirty }

// SetCursor moves the cursor to the nearest valid position for pos.
func (c *Controller) SetCursor(pos buffer.Position) {
	c.state.Cursor = c.buf.ClampPosition(pos)
}

// Snapshot returns the state the renderer needs. Span is set only while
// selecting a non-empty range.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Lines:     c.buf.Lines(),
		Cursor:    c.state.Cursor,
		Span:      c.visibleSpan(),
		Stage:     c.state.Stage,
		Selecting: c.state.Selecting,
		Pending:   c.state.Mode == AwaitingModifierKey,
		Dirty:     c.dirty,
		Status:    c.status,
	}
}

func (c *Controller) visibleSpan() *buffer.Span {
	if !c.state.Selecting || c.state.Sel == nil {
		return nil
	}
	span := c.state.Sel.Span()
	if span.Empty() {
		return nil
	}
	return &span
}

// HandleKey translates ev and handles the resulting commands. It reports
// whether the editor should quit.
func (c *Controller) HandleKey(ev *tcell.EventKey) bool {
	for _, cmd := range c.keymap.Translate(ev) {
		if c.Handle(cmd) {
			return true
		}
	}
	return false
}

// Handle applies one command and reports whether the editor should quit.
// After a modifier prefix the next command is looked up in the combination
// table; unknown combinations are dropped and the mode returns to Idle.
func (c *Controller) Handle(cmd Command) bool {
	c.state.Cursor = c.buf.ClampPosition(c.state.Cursor)
	c.status = ""

	if c.state.Mode == AwaitingModifierKey {
		c.state.Mode = Idle
		ch, ok := cmd.(InsertChar)
		if !ok {
			return false
		}
		next, ok := c.keymap.Combination(ch.Ch)
		if !ok {
			logger.Debug("unbound modifier combination", "key", string(ch.Ch))
			return false
		}
		cmd = next
	}

	switch cmd := cmd.(type) {
	case ModifierPrefix:
		c.state.Mode = AwaitingModifierKey
	case Move:
		c.move(cmd.Dir)
	case LineStart:
		c.moveTo(buffer.Position{Row: c.state.Cursor.Row, Col: 0})
	case LineEnd:
		c.moveTo(buffer.Position{Row: c.state.Cursor.Row, Col: c.buf.RowLen(c.state.Cursor.Row)})
	case WordForward:
		c.moveTo(motion.NextWordBoundary(c.state.Cursor, c.buf))
	case WordBackward:
		c.moveTo(motion.PreviousWordBoundary(c.state.Cursor, c.buf))
	case InsertChar:
		c.insertString(string(cmd.Ch))
	case Tab:
		c.insertString(strings.Repeat(" ", c.tabWidth))
	case Newline:
		c.newline()
	case Backspace:
		c.backspace()
	case ToggleSelection:
		c.toggleSelection()
	case ExpandSelection:
		c.expand()
	case ShrinkSelection:
		c.shrink()
	case Transform:
		c.transform(cmd.Kind)
	case CopySelection:
		c.copySelection()
	case Save:
		c.save()
	case Quit:
		return true
	}

	c.state.Cursor = c.buf.ClampPosition(c.state.Cursor)
	return false
}

func (c *Controller) move(dir Direction) {
	pos := c.state.Cursor
	switch dir {
	case Left:
		pos.Col--
	case Right:
		pos.Col++
	case Up:
		pos.Row--
	case Down:
		pos.Row++
	}
	c.moveTo(pos)
}

// moveTo places the cursor and drags the active end of the selection with it.
func (c *Controller) moveTo(pos buffer.Position) {
	c.state.Cursor = c.buf.ClampPosition(pos)
	c.followCursor()
}

func (c *Controller) followCursor() {
	if c.state.Selecting && c.state.Sel != nil {
		c.state.Sel.Active = c.state.Cursor
	}
}

// editable reports whether edit keys may change the buffer. While selecting
// they only pin the selection to the cursor.
func (c *Controller) editable() bool {
	if c.state.Selecting {
		c.followCursor()
		return false
	}
	return true
}

func (c *Controller) insertString(s string) {
	if !c.editable() {
		return
	}
	if err := c.buf.InsertString(c.state.Cursor, s); err != nil {
		logger.Error("insert failed", "pos", c.state.Cursor.String(), "error", err)
		return
	}
	c.state.Cursor.Col += utf8.RuneCountInString(s)
	c.committed()
}

func (c *Controller) newline() {
	if !c.editable() {
		return
	}
	pos, err := c.buf.SplitLine(c.state.Cursor)
	if err != nil {
		logger.Error("split line failed", "pos", c.state.Cursor.String(), "error", err)
		return
	}
	c.state.Cursor = pos
	c.committed()
}

func (c *Controller) backspace() {
	if !c.editable() {
		return
	}
	pos, err := c.buf.DeleteCharBefore(c.state.Cursor)
	if err != nil {
		logger.Error("delete failed", "pos", c.state.Cursor.String(), "error", err)
		return
	}
	if pos == c.state.Cursor {
		return
	}
	c.state.Cursor = pos
	c.committed()
}

// committed records a buffer change and resets the selection cycle.
func (c *Controller) committed() {
	c.dirty = true
	c.clearSelection()
}

func (c *Controller) clearSelection() {
	c.state.Sel = nil
	c.state.Selecting = false
	c.state.Stage = selection.StageNone
}

func (c *Controller) toggleSelection() {
	if c.state.Selecting {
		c.clearSelection()
		logger.Debug("selection off")
		return
	}
	c.state.Sel = &selection.Selection{Anchor: c.state.Cursor, Active: c.state.Cursor}
	c.state.Selecting = true
	logger.Debug("selection on", "anchor", c.state.Cursor.String())
}

func (c *Controller) expand() {
	sel, stage := selection.Expand(c.state.Stage, c.state.Cursor, c.buf)
	c.setStage(sel, stage)
	logger.Debug("expand selection", "stage", stage.String(), "span", spanString(sel))
}

func (c *Controller) shrink() {
	sel, stage, ok := selection.Shrink(c.state.Stage, c.state.Cursor, c.buf)
	if !ok {
		return
	}
	c.setStage(sel, stage)
	logger.Debug("shrink selection", "stage", stage.String(), "span", spanString(sel))
}

func (c *Controller) setStage(sel *selection.Selection, stage selection.Stage) {
	c.state.Sel = sel
	c.state.Stage = stage
	c.state.Selecting = stage != selection.StageNone
}

func (c *Controller) transform(kind mutate.Transform) {
	if c.state.Sel == nil {
		return
	}
	span := c.state.Sel.Span()
	if span.Empty() {
		return
	}
	before := c.buf.Lines()
	pos, ok := mutate.ApplyToSelection(c.buf, &span, kind)
	if !ok {
		return
	}
	c.state.Cursor = pos
	c.clearSelection()
	if !slices.Equal(before, c.buf.Lines()) {
		c.dirty = true
	}
	logger.Debug("transform selection", "transform", kind.String(), "start", span.Start.String(), "end", span.End.String())
}

func (c *Controller) copySelection() {
	if c.state.Sel == nil {
		return
	}
	span := c.state.Sel.Span()
	if span.Empty() {
		return
	}
	c.register = c.buf.Text(span)
	c.status = fmt.Sprintf("copied %d chars", utf8.RuneCountInString(c.register))
}

func (c *Controller) save() {
	if c.path == "" {
		c.status = "no file name"
		return
	}
	lines := c.buf.Lines()
	if err := buffer.Save(c.path, lines, c.trim); err != nil {
		logger.Error("save failed", "path", c.path, "error", err)
		c.status = "save failed: " + err.Error()
		return
	}
	c.dirty = false
	c.status = fmt.Sprintf("wrote %d lines", len(lines))
	logger.Info("saved", "path", c.path, "lines", len(lines))
}

func spanString(sel *selection.Selection) string {
	if sel == nil {
		return ""
	}
	span := sel.Span()
	return span.Start.String() + "-" + span.End.String()
}
