// Package selection implements the staged selection cycle: word, enclosing
// pair, whole line, and back to nothing.
package selection

import (
	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/motion"
)

type Stage int

const (
	StageNone Stage = iota
	StageWord
	StagePair
	StageLine
)

func (s Stage) String() string {
	switch s {
	case StageWord:
		return "WORD"
	case StagePair:
		return "PAIR"
	case StageLine:
		return "LINE"
	default:
		return "NONE"
	}
}

// Selection is an anchor and an active end. The active end follows the
// cursor while selecting.
type Selection struct {
	Anchor buffer.Position
	Active buffer.Position
}

// Span returns the normalized range of the selection.
func (s Selection) Span() buffer.Span {
	return buffer.NewSpan(s.Anchor, s.Active)
}

func fromSpan(span buffer.Span) *Selection {
	return &Selection{Anchor: span.Start, Active: span.End}
}

// Pair is an opening and closing delimiter.
type Pair struct {
	Open  rune
	Close rune
}

// Pairs lists the delimiters searched around the cursor, in tie-break order.
var Pairs = []Pair{
	{'"', '"'},
	{'\'', '\''},
	{'(', ')'},
	{'[', ']'},
	{'<', '>'},
	{'{', '}'},
}

// PairSpan finds the innermost delimiter pair around pos on its row. Each
// candidate is located by an independent scan left and right of the cursor
// column; nesting and multi-row pairs are not recognised. The span includes
// both delimiters.
func PairSpan(pos buffer.Position, text motion.Text) (buffer.Span, bool) {
	line := text.Line(pos.Row)
	if len(line) == 0 {
		return buffer.Span{}, false
	}
	from := pos.Col
	if from >= len(line) {
		from = len(line) - 1
	}
	if from < 0 {
		from = 0
	}
	best := -1
	bestOpen, bestClose := 0, 0
	for i, p := range Pairs {
		openAt := -1
		for x := from; x >= 0; x-- {
			if line[x] == p.Open {
				openAt = x
				break
			}
		}
		if openAt < 0 {
			continue
		}
		closeAt := -1
		// A quote under the cursor cannot close itself.
		for x := from; x < len(line); x++ {
			if line[x] == p.Close && x != openAt {
				closeAt = x
				break
			}
		}
		if closeAt < 0 {
			continue
		}
		if best < 0 || openAt > bestOpen || (openAt == bestOpen && closeAt < bestClose) {
			best = i
			bestOpen, bestClose = openAt, closeAt
		}
	}
	if best < 0 {
		return buffer.Span{}, false
	}
	return buffer.Span{
		Start: buffer.Position{Row: pos.Row, Col: bestOpen},
		End:   buffer.Position{Row: pos.Row, Col: bestClose + 1},
	}, true
}

// LineSpan covers the whole row of pos.
func LineSpan(pos buffer.Position, text motion.Text) buffer.Span {
	return buffer.Span{
		Start: buffer.Position{Row: pos.Row, Col: 0},
		End:   buffer.Position{Row: pos.Row, Col: len(text.Line(pos.Row))},
	}
}

// Expand advances the stage and computes the span for the new stage from the
// cursor. Leaving StageLine collapses to an empty selection at the cursor.
func Expand(stage Stage, cursor buffer.Position, text motion.Text) (*Selection, Stage) {
	switch stage {
	case StageNone:
		return fromSpan(motion.WordSpan(cursor, text)), StageWord
	case StageWord:
		if span, ok := PairSpan(cursor, text); ok {
			return fromSpan(span), StagePair
		}
		return fromSpan(LineSpan(cursor, text)), StageLine
	case StagePair:
		return fromSpan(LineSpan(cursor, text)), StageLine
	default:
		return &Selection{Anchor: cursor, Active: cursor}, StageNone
	}
}

// Shrink steps the stage back, recomputing the span from the cursor. From
// StageLine without a pair on the row the line span is kept at StagePair so
// that further shrinks still reach StageWord. At StageNone it reports false.
func Shrink(stage Stage, cursor buffer.Position, text motion.Text) (*Selection, Stage, bool) {
	switch stage {
	case StageLine:
		if span, ok := PairSpan(cursor, text); ok {
			return fromSpan(span), StagePair, true
		}
		return fromSpan(LineSpan(cursor, text)), StagePair, true
	case StagePair:
		return fromSpan(motion.WordSpan(cursor, text)), StageWord, true
	case StageWord:
		return &Selection{Anchor: cursor, Active: cursor}, StageNone, true
	default:
		return nil, StageNone, false
	}
}
