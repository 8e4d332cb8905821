package editor

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qline/internal/buffer"
)

// Render draws the buffer, the selection, the status line and the caret.
func (c *Controller) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	viewHeight := h
	statusY := -1
	if c.showStatus && h > 1 {
		viewHeight = h - 1
		statusY = h - 1
	}
	c.ensureCursorVisible(viewHeight)

	s.SetStyle(c.styleMain)
	s.Clear()

	span := c.visibleSpan()
	for y := 0; y < viewHeight; y++ {
		row := c.scroll + y
		if row >= c.buf.Len() {
			clearLine(s, y, w, c.styleMain)
			continue
		}
		c.drawLine(s, y, w, row, span)
	}
	if statusY >= 0 {
		c.renderStatusline(s, w, statusY)
	}

	cursor := c.state.Cursor
	cy := cursor.Row - c.scroll
	if cy < 0 || cy >= viewHeight {
		s.HideCursor()
		s.Show()
		return
	}
	cx := visualCol(c.buf.Line(cursor.Row), cursor.Col, c.tabWidth)
	if cx >= w {
		cx = w - 1
	}
	s.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	s.ShowCursor(cx, cy)
	s.Show()
}

func (c *Controller) drawLine(s tcell.Screen, y, w, row int, span *buffer.Span) {
	line := c.buf.Line(row)
	x := 0
	for idx, r := range line {
		if x >= w {
			return
		}
		style := c.styleMain
		if inSpan(span, row, idx) {
			style = c.styleSelection
		}
		if r == '\t' {
			spaces := c.tabWidth - (x % c.tabWidth)
			for i := 0; i < spaces && x < w; i++ {
				s.SetContent(x, y, ' ', nil, style)
				x++
			}
			continue
		}
		width := cellWidth(r)
		if x+width > w {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += width
	}
	// A span running past the end of the row covers its line break.
	if x < w && inSpan(span, row, len(line)) {
		s.SetContent(x, y, ' ', nil, c.styleSelection)
		x++
	}
	for x < w {
		s.SetContent(x, y, ' ', nil, c.styleMain)
		x++
	}
}

func inSpan(span *buffer.Span, row, col int) bool {
	if span == nil {
		return false
	}
	pos := buffer.Position{Row: row, Col: col}
	return !pos.Less(span.Start) && pos.Less(span.End)
}

func (c *Controller) renderStatusline(s tcell.Screen, w, y int) {
	name := c.path
	if name == "" {
		name = "[No Name]"
	} else {
		name = filepath.Base(name)
	}
	if c.dirty {
		name += "[+]"
	}

	left := fmt.Sprintf(" %s | %s", name, c.state.Stage)
	pendingAt := -1
	if c.state.Mode == AwaitingModifierKey {
		left += " | "
		pendingAt = len([]rune(left))
		left += "ALT"
	}
	if c.status != "" {
		left += " | " + c.status
	}
	left += " "

	cursor := c.state.Cursor
	col := visualCol(c.buf.Line(cursor.Row), cursor.Col, c.tabWidth) + 1
	right := fmt.Sprintf(" Ln %d, Col %d ", cursor.Row+1, col)

	line := composeStatusLine(left, right, w)
	for x, r := range line {
		if x >= w {
			break
		}
		style := c.styleStatus
		if pendingAt >= 0 && x >= pendingAt && x < pendingAt+3 {
			style = c.stylePending
		}
		s.SetContent(x, y, r, nil, style)
	}
}

func (c *Controller) ensureCursorVisible(viewHeight int) {
	if viewHeight <= 0 {
		return
	}
	row := c.state.Cursor.Row
	if row < c.scroll {
		c.scroll = row
		return
	}
	if row >= c.scroll+viewHeight {
		c.scroll = row - viewHeight + 1
	}
	if last := c.buf.Len() - 1; c.scroll > last {
		c.scroll = last
	}
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for len(line) < width-len(rightRunes) {
		line = append(line, ' ')
	}
	line = append(line, rightRunes...)
	return line
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// cellWidth is the number of screen cells r occupies. Zero-width runes still
// take a cell so that every column has a place for the caret.
func cellWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 1 {
		return w
	}
	return 1
}

// visualCol converts a rune column into a screen column, expanding tabs and
// wide runes.
func visualCol(line []rune, col int, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	x := 0
	for i := 0; i < col; i++ {
		if line[i] == '\t' {
			x += tabWidth - (x % tabWidth)
			continue
		}
		x += cellWidth(line[i])
	}
	return x
}
