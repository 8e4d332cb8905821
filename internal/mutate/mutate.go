// Package mutate rewrites the text covered by a selection.
package mutate

import (
	"strings"
	"unicode"

	"github.com/kobzarvs/qline/internal/buffer"
)

// Transform names a rewrite applied to selected text.
type Transform int

const (
	Identity Transform = iota
	Uppercase
	Lowercase
	Delete
)

func (t Transform) String() string {
	switch t {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Delete:
		return "delete"
	default:
		return "identity"
	}
}

// Apply returns the replacement for text.
func (t Transform) Apply(text string) string {
	switch t {
	case Uppercase:
		return strings.ToUpper(text)
	case Lowercase:
		return strings.ToLower(text)
	case Delete:
		return ""
	default:
		return text
	}
}

// ApplyToSelection replaces the text covered by span with its transform and
// returns the new cursor. Rows produced by the splice that hold only
// whitespace are removed. The cursor lands on the span start, clamped to the
// resulting buffer. A nil span leaves the buffer untouched and reports false.
func ApplyToSelection(b *buffer.LineBuffer, span *buffer.Span, t Transform) (buffer.Position, bool) {
	if span == nil {
		return buffer.Position{}, false
	}
	norm := buffer.NewSpan(b.ClampPosition(span.Start), b.ClampPosition(span.End))
	start, end := norm.Start, norm.End

	replaced := t.Apply(b.Text(norm))
	rows := strings.Split(replaced, "\n")

	prefix := string(b.Line(start.Row)[:start.Col])
	suffix := string(b.Line(end.Row)[end.Col:])
	rows[0] = prefix + rows[0]
	rows[len(rows)-1] += suffix

	kept := rows[:0]
	for _, row := range rows {
		if strings.TrimFunc(row, unicode.IsSpace) == "" {
			continue
		}
		kept = append(kept, row)
	}
	// Both ends are clamped, so ReplaceRows cannot fail.
	_ = b.ReplaceRows(start.Row, end.Row, kept)
	return b.ClampPosition(start), true
}
