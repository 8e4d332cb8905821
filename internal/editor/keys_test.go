package editor

import (
	"sort"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/config"
	"github.com/kobzarvs/qline/internal/mutate"
)

func eventForKeyString(t *testing.T, key string) *tcell.EventKey {
	t.Helper()
	if key == "ctrl+space" {
		return tcell.NewEventKey(tcell.KeyCtrlSpace, 0, 0)
	}
	if base, ok := strings.CutPrefix(key, "ctrl+"); ok {
		r := []rune(base)
		if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
			t.Fatalf("unsupported ctrl key %q", key)
		}
		return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(r[0]-'a'), 0, 0)
	}
	switch key {
	case "left":
		return tcell.NewEventKey(tcell.KeyLeft, 0, 0)
	case "right":
		return tcell.NewEventKey(tcell.KeyRight, 0, 0)
	case "up":
		return tcell.NewEventKey(tcell.KeyUp, 0, 0)
	case "down":
		return tcell.NewEventKey(tcell.KeyDown, 0, 0)
	case "home":
		return tcell.NewEventKey(tcell.KeyHome, 0, 0)
	case "end":
		return tcell.NewEventKey(tcell.KeyEnd, 0, 0)
	case "enter":
		return tcell.NewEventKey(tcell.KeyEnter, 0, 0)
	case "backspace":
		return tcell.NewEventKey(tcell.KeyBackspace2, 0, 0)
	case "del":
		return tcell.NewEventKey(tcell.KeyDelete, 0, 0)
	case "tab":
		return tcell.NewEventKey(tcell.KeyTab, 0, 0)
	case "esc":
		return tcell.NewEventKey(tcell.KeyEscape, 0, 0)
	case "space":
		return tcell.NewEventKey(tcell.KeyRune, ' ', 0)
	}
	if r := []rune(key); len(r) == 1 {
		return tcell.NewEventKey(tcell.KeyRune, r[0], 0)
	}
	t.Fatalf("unsupported key %q", key)
	return nil
}

func TestDefaultKeysTranslate(t *testing.T) {
	cfg := config.Default()
	km := NewKeymap(cfg.Keymap)
	names := make([]string, 0, len(cfg.Keymap.Keys))
	for name := range cfg.Keymap.Keys {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			want, ok := parseAction(cfg.Keymap.Keys[name])
			if !ok {
				t.Fatalf("default action %q does not parse", cfg.Keymap.Keys[name])
			}
			got := km.Translate(eventForKeyString(t, name))
			if diff := cmp.Diff([]Command{want}, got); diff != "" {
				t.Fatalf("translate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultModifierKeysParse(t *testing.T) {
	cfg := config.Default()
	km := NewKeymap(cfg.Keymap)
	if len(km.modifier) != len(cfg.Keymap.Modifier) {
		t.Fatalf("modifier table has %d entries, want %d", len(km.modifier), len(cfg.Keymap.Modifier))
	}
	cmd, ok := km.Combination('u')
	if !ok {
		t.Fatalf("no combination for u")
	}
	if diff := cmp.Diff(Command(Transform{Kind: mutate.Delete}), cmd); diff != "" {
		t.Fatalf("combination mismatch (-want +got):\n%s", diff)
	}
	if _, ok := km.Combination(' '); !ok {
		t.Fatalf("no combination for space")
	}
}

func TestTranslateAltRune(t *testing.T) {
	km := NewKeymap(config.Default().Keymap)
	got := km.Translate(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModAlt))
	want := []Command{ModifierPrefix{}, InsertChar{Ch: 'n'}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("translate mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslatePrintableInserts(t *testing.T) {
	km := NewKeymap(config.Default().Keymap)
	for _, r := range []rune{'a', 'Z', ' ', 'ж', '('} {
		got := km.Translate(tcell.NewEventKey(tcell.KeyRune, r, 0))
		if diff := cmp.Diff([]Command{InsertChar{Ch: r}}, got); diff != "" {
			t.Fatalf("translate %q mismatch (-want +got):\n%s", r, diff)
		}
	}
}

func TestTranslateUnboundKey(t *testing.T) {
	km := NewKeymap(config.Default().Keymap)
	if got := km.Translate(tcell.NewEventKey(tcell.KeyF5, 0, 0)); got != nil {
		t.Fatalf("translate F5 = %v, want nil", got)
	}
}

func TestKeymapOverridesAndUnknownActions(t *testing.T) {
	km := NewKeymap(config.Keymap{
		Keys: map[string]string{
			"ctrl+x": "quit",
			"ctrl+y": "teleport",
		},
		Modifier: map[string]string{
			"w":     "word_forward",
			"ab":    "word_backward",
			"x":     "no_such_action",
			"space": "copy_selection",
		},
	})
	if _, ok := km.keys["ctrl+y"]; ok {
		t.Fatalf("unknown action bound")
	}
	got := km.Translate(eventForKeyString(t, "ctrl+x"))
	if diff := cmp.Diff([]Command{Quit{}}, got); diff != "" {
		t.Fatalf("translate mismatch (-want +got):\n%s", diff)
	}
	if len(km.modifier) != 2 {
		t.Fatalf("modifier table = %v, want w and space only", km.modifier)
	}
}

func TestHandleKeyAltCombination(t *testing.T) {
	c := newTestController("hello world")
	c.SetCursor(pos(0, 1))
	if quit := c.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModAlt)); quit {
		t.Fatalf("HandleKey returned quit")
	}
	if got := c.Snapshot().Span; got == nil || *got != (buffer.Span{Start: pos(0, 0), End: pos(0, 5)}) {
		t.Fatalf("span = %v, want 0:0-0:5", got)
	}
	c.HandleKey(eventForKeyString(t, "esc"))
	c.HandleKey(eventForKeyString(t, "m"))
	if diff := cmp.Diff([]string{"HELLO world"}, c.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if quit := c.HandleKey(eventForKeyString(t, "ctrl+q")); !quit {
		t.Fatalf("ctrl+q did not quit")
	}
}
