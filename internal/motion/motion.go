// Package motion computes cursor movement over a line buffer. Nothing here
// mutates the text.
package motion

import (
	"unicode"

	"github.com/kobzarvs/qline/internal/buffer"
)

// Text is the read-only view of rows that motions need.
type Text interface {
	Len() int
	Line(row int) []rune
}

// IsWordRune reports whether r belongs to a word. Words are runs of letters
// and digits; punctuation, underscore and whitespace all separate words.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordAt(text Text, row, col int) bool {
	line := text.Line(row)
	return col >= 0 && col < len(line) && IsWordRune(line[col])
}

// NextWordBoundary moves past the end of the word under pos, or past the end
// of the next word when pos is not on a word. Row ends count as separators.
// On the last rune of the last row it returns pos unchanged; when no word
// follows it stops at the end of the last row.
func NextWordBoundary(pos buffer.Position, text Text) buffer.Position {
	last := text.Len() - 1
	if last < 0 {
		return pos
	}
	if pos.Row >= last && pos.Col >= len(text.Line(last))-1 {
		return pos
	}
	row, col := pos.Row, pos.Col
	for !wordAt(text, row, col) {
		if col < len(text.Line(row)) {
			col++
			continue
		}
		if row >= last {
			return buffer.Position{Row: last, Col: len(text.Line(last))}
		}
		row++
		col = 0
	}
	line := text.Line(row)
	for col < len(line) && IsWordRune(line[col]) {
		col++
	}
	return buffer.Position{Row: row, Col: col}
}

// PreviousWordBoundary moves to the start of the word before pos. It steps
// one rune left (or to the last rune of the previous row), skips separators
// backwards across rows, then walks to the start of that word. At 0:0 it
// returns pos unchanged.
func PreviousWordBoundary(pos buffer.Position, text Text) buffer.Position {
	if pos.Row <= 0 && pos.Col <= 0 {
		return pos
	}
	row, col := pos.Row, pos.Col
	if col > 0 {
		col--
	} else {
		row--
		col = len(text.Line(row)) - 1
	}
	for !wordAt(text, row, col) {
		if col > 0 {
			col--
			continue
		}
		if row == 0 {
			return buffer.Position{}
		}
		row--
		col = len(text.Line(row)) - 1
	}
	line := text.Line(row)
	for col > 0 && IsWordRune(line[col-1]) {
		col--
	}
	return buffer.Position{Row: row, Col: col}
}

// WordSpan returns the word containing pos on its row. When pos is not on a
// word rune the span is empty at pos.
func WordSpan(pos buffer.Position, text Text) buffer.Span {
	if !wordAt(text, pos.Row, pos.Col) {
		return buffer.Span{Start: pos, End: pos}
	}
	line := text.Line(pos.Row)
	start, end := pos.Col, pos.Col
	for start > 0 && IsWordRune(line[start-1]) {
		start--
	}
	for end < len(line) && IsWordRune(line[end]) {
		end++
	}
	return buffer.Span{
		Start: buffer.Position{Row: pos.Row, Col: start},
		End:   buffer.Position{Row: pos.Row, Col: end},
	}
}
