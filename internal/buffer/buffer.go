package buffer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrOutOfBounds reports a position that does not address the buffer.
var ErrOutOfBounds = errors.New("position out of bounds")

// Position addresses a rune offset within a row. Col == len(row) is the
// end-of-line position.
type Position struct {
	Row int
	Col int
}

// Less orders positions by row, then column.
func (p Position) Less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Span is a normalized, end-exclusive range between two positions.
type Span struct {
	Start Position
	End   Position
}

// NewSpan orders a and b so that Start <= End.
func NewSpan(a, b Position) Span {
	if b.Less(a) {
		a, b = b, a
	}
	return Span{Start: a, End: b}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// LineBuffer owns the rows of the document. It is never empty.
type LineBuffer struct {
	lines [][]rune
}

// New builds a buffer from rows. No rows yields a single empty row.
func New(lines ...string) *LineBuffer {
	b := &LineBuffer{lines: make([][]rune, 0, len(lines))}
	for _, line := range lines {
		b.lines = append(b.lines, []rune(line))
	}
	b.EnsureNonEmpty()
	return b
}

func (b *LineBuffer) Len() int {
	return len(b.lines)
}

// Line returns the runes of row. The slice belongs to the buffer.
func (b *LineBuffer) Line(row int) []rune {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return b.lines[row]
}

func (b *LineBuffer) RowLen(row int) int {
	return len(b.Line(row))
}

// Lines returns a copy of the rows as strings.
func (b *LineBuffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

func (b *LineBuffer) checkPosition(pos Position) error {
	if pos.Row < 0 || pos.Row >= len(b.lines) || pos.Col < 0 || pos.Col > len(b.lines[pos.Row]) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	return nil
}

// InsertChar inserts ch at pos, shifting the rest of the row right.
func (b *LineBuffer) InsertChar(pos Position, ch rune) error {
	if err := b.checkPosition(pos); err != nil {
		return err
	}
	line := b.lines[pos.Row]
	line = append(line, 0)
	copy(line[pos.Col+1:], line[pos.Col:])
	line[pos.Col] = ch
	b.lines[pos.Row] = line
	return nil
}

// InsertString inserts s at pos. s must not contain newlines.
func (b *LineBuffer) InsertString(pos Position, s string) error {
	if err := b.checkPosition(pos); err != nil {
		return err
	}
	line := b.lines[pos.Row]
	ins := []rune(s)
	merged := make([]rune, 0, len(line)+len(ins))
	merged = append(merged, line[:pos.Col]...)
	merged = append(merged, ins...)
	merged = append(merged, line[pos.Col:]...)
	b.lines[pos.Row] = merged
	return nil
}

// SplitLine breaks the row at pos.Col and returns the start of the new row.
func (b *LineBuffer) SplitLine(pos Position) (Position, error) {
	if err := b.checkPosition(pos); err != nil {
		return pos, err
	}
	line := b.lines[pos.Row]
	left := append([]rune(nil), line[:pos.Col]...)
	right := append([]rune(nil), line[pos.Col:]...)

	newLines := make([][]rune, 0, len(b.lines)+1)
	newLines = append(newLines, b.lines[:pos.Row]...)
	newLines = append(newLines, left, right)
	newLines = append(newLines, b.lines[pos.Row+1:]...)
	b.lines = newLines
	return Position{Row: pos.Row + 1, Col: 0}, nil
}

// MergeWithPrevious joins row onto row-1. Trailing whitespace of the
// previous row and leading whitespace of row are dropped at the seam.
// The returned position is the end of the merged row.
func (b *LineBuffer) MergeWithPrevious(row int) (Position, error) {
	if row <= 0 || row >= len(b.lines) {
		return Position{Row: row}, fmt.Errorf("%w: merge row %d", ErrOutOfBounds, row)
	}
	left := []rune(strings.TrimRightFunc(string(b.lines[row-1]), unicode.IsSpace))
	right := []rune(strings.TrimLeftFunc(string(b.lines[row]), unicode.IsSpace))
	merged := append(left, right...)

	newLines := make([][]rune, 0, len(b.lines)-1)
	newLines = append(newLines, b.lines[:row-1]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, b.lines[row+1:]...)
	b.lines = newLines
	return Position{Row: row - 1, Col: len(merged)}, nil
}

// DeleteCharBefore removes the rune before pos, merging with the previous
// row at column 0. At 0:0 nothing changes.
func (b *LineBuffer) DeleteCharBefore(pos Position) (Position, error) {
	if err := b.checkPosition(pos); err != nil {
		return pos, err
	}
	if pos.Col == 0 {
		if pos.Row == 0 {
			return pos, nil
		}
		return b.MergeWithPrevious(pos.Row)
	}
	line := b.lines[pos.Row]
	copy(line[pos.Col-1:], line[pos.Col:])
	b.lines[pos.Row] = line[:len(line)-1]
	return Position{Row: pos.Row, Col: pos.Col - 1}, nil
}

// EnsureNonEmpty re-seeds an empty buffer with one empty row.
func (b *LineBuffer) EnsureNonEmpty() {
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}
}

// ClampPosition returns the nearest position that addresses the buffer.
func (b *LineBuffer) ClampPosition(pos Position) Position {
	b.EnsureNonEmpty()
	pos.Row = clamp(pos.Row, 0, len(b.lines)-1)
	pos.Col = clamp(pos.Col, 0, len(b.lines[pos.Row]))
	return pos
}

// Text returns the runes covered by span, rows joined with '\n'.
func (b *LineBuffer) Text(span Span) string {
	start := b.ClampPosition(span.Start)
	end := b.ClampPosition(span.End)
	if end.Less(start) {
		start, end = end, start
	}
	if start.Row == end.Row {
		return string(b.lines[start.Row][start.Col:end.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Row][start.Col:]))
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[row]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Row][:end.Col]))
	return sb.String()
}

// ReplaceRows replaces rows first..last (inclusive) with rows. An empty
// result is re-seeded with a single empty row.
func (b *LineBuffer) ReplaceRows(first, last int, rows []string) error {
	if first < 0 || last >= len(b.lines) || first > last {
		return fmt.Errorf("%w: rows %d..%d", ErrOutOfBounds, first, last)
	}
	newLines := make([][]rune, 0, len(b.lines)-(last-first+1)+len(rows))
	newLines = append(newLines, b.lines[:first]...)
	for _, row := range rows {
		newLines = append(newLines, []rune(row))
	}
	newLines = append(newLines, b.lines[last+1:]...)
	b.lines = newLines
	b.EnsureNonEmpty()
	return nil
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
