package selection

import (
	"testing"

	"github.com/kobzarvs/qline/internal/buffer"
)

func pos(row, col int) buffer.Position {
	return buffer.Position{Row: row, Col: col}
}

func span(r1, c1, r2, c2 int) buffer.Span {
	return buffer.Span{Start: pos(r1, c1), End: pos(r2, c2)}
}

func TestExpandCycle(t *testing.T) {
	text := buffer.New(`x := call(arg) + 1`)
	cursor := pos(0, 11)

	want := []struct {
		stage Stage
		span  buffer.Span
	}{
		{StageWord, span(0, 10, 0, 13)},
		{StagePair, span(0, 9, 0, 14)},
		{StageLine, span(0, 0, 0, 18)},
		{StageNone, span(0, 11, 0, 11)},
	}
	stage := StageNone
	for i, w := range want {
		var sel *Selection
		sel, stage = Expand(stage, cursor, text)
		if stage != w.stage {
			t.Fatalf("expand %d: stage = %v, want %v", i+1, stage, w.stage)
		}
		if got := sel.Span(); got != w.span {
			t.Fatalf("expand %d: span = %+v, want %+v", i+1, got, w.span)
		}
	}
	if sel, _ := Expand(StageLine, cursor, text); !sel.Span().Empty() {
		t.Fatalf("expand from line should collapse to an empty span")
	}
}

func TestExpandWordOnSeparator(t *testing.T) {
	text := buffer.New("a + b")
	sel, stage := Expand(StageNone, pos(0, 2), text)
	if stage != StageWord {
		t.Fatalf("stage = %v, want WORD", stage)
	}
	if got := sel.Span(); got != span(0, 2, 0, 2) {
		t.Fatalf("span = %+v, want empty at 0:2", got)
	}
}

func TestExpandWithoutPairSkipsToLine(t *testing.T) {
	text := buffer.New("plain words here")
	sel, stage := Expand(StageWord, pos(0, 7), text)
	if stage != StageLine {
		t.Fatalf("stage = %v, want LINE", stage)
	}
	if got := sel.Span(); got != span(0, 0, 0, 16) {
		t.Fatalf("span = %+v, want whole line", got)
	}
}

func TestPairSpan(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want buffer.Span
		ok   bool
	}{
		{"parens", "f(x, y)", 3, span(0, 1, 0, 7), true},
		{"double quotes", `say "hi there" now`, 8, span(0, 4, 0, 14), true},
		{"single quotes", "it 'is' ok", 5, span(0, 3, 0, 7), true},
		{"brackets", "a[idx]", 3, span(0, 1, 0, 6), true},
		{"angles", "Vec<T>", 4, span(0, 3, 0, 6), true},
		{"braces", "{ k: v }", 3, span(0, 0, 0, 8), true},
		{"innermost wins", `"(a)"`, 2, span(0, 1, 0, 4), true},
		{"cursor on closer", "f(x)", 3, span(0, 1, 0, 4), true},
		{"cursor on opening quote", `say "hi"`, 4, span(0, 4, 0, 8), true},
		{"cursor past end", "(ab)", 4, span(0, 0, 0, 4), true},
		{"no closer on row", "f(x", 2, buffer.Span{}, false},
		{"no pair", "abc", 1, buffer.Span{}, false},
		{"empty row", "", 0, buffer.Span{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PairSpan(pos(0, tc.col), buffer.New(tc.line))
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("span = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestPairSpanIgnoresOtherRows(t *testing.T) {
	text := buffer.New("(", "inside", ")")
	if _, ok := PairSpan(pos(1, 2), text); ok {
		t.Fatalf("pair across rows should not be found")
	}
}

func TestShrink(t *testing.T) {
	text := buffer.New("go(fast)")
	cursor := pos(0, 4)

	sel, stage, ok := Shrink(StageLine, cursor, text)
	if !ok || stage != StagePair || sel.Span() != span(0, 2, 0, 8) {
		t.Fatalf("shrink line = %+v %v %v, want pair span", sel, stage, ok)
	}
	sel, stage, ok = Shrink(stage, cursor, text)
	if !ok || stage != StageWord || sel.Span() != span(0, 3, 0, 7) {
		t.Fatalf("shrink pair = %+v %v %v, want word span", sel, stage, ok)
	}
	sel, stage, ok = Shrink(stage, cursor, text)
	if !ok || stage != StageNone || !sel.Span().Empty() {
		t.Fatalf("shrink word = %+v %v %v, want empty span", sel, stage, ok)
	}
	sel, stage, ok = Shrink(stage, cursor, text)
	if ok || stage != StageNone || sel != nil {
		t.Fatalf("shrink none = %+v %v %v, want no-op", sel, stage, ok)
	}
}

func TestShrinkLineWithoutPairKeepsLine(t *testing.T) {
	text := buffer.New("no pairs")
	sel, stage, ok := Shrink(StageLine, pos(0, 1), text)
	if !ok || stage != StagePair {
		t.Fatalf("stage = %v ok=%v, want PAIR true", stage, ok)
	}
	if got := sel.Span(); got != span(0, 0, 0, 8) {
		t.Fatalf("span = %+v, want whole line", got)
	}
}

func TestSelectionSpanNormalizes(t *testing.T) {
	s := Selection{Anchor: pos(3, 1), Active: pos(1, 4)}
	if got := s.Span(); got != span(1, 4, 3, 1) {
		t.Fatalf("span = %+v, want 1:4..3:1", got)
	}
}
