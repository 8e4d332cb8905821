package editor

import (
	"sort"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/config"
	"github.com/kobzarvs/qline/internal/logger"
)

// Keymap turns terminal key events into commands. keys holds plain key
// bindings; modifier holds the combinations read after a modifier prefix.
type Keymap struct {
	keys     map[string]Command
	modifier map[rune]Command
}

// NewKeymap resolves action names from the configuration. Unknown actions
// and modifier keys that are not a single character are skipped.
func NewKeymap(km config.Keymap) *Keymap {
	k := &Keymap{
		keys:     make(map[string]Command, len(km.Keys)),
		modifier: make(map[rune]Command, len(km.Modifier)),
	}
	for _, name := range sortedKeys(km.Keys) {
		action := km.Keys[name]
		cmd, ok := parseAction(action)
		if !ok {
			logger.Warn("unknown action in keymap", "key", name, "action", action)
			continue
		}
		k.keys[name] = cmd
	}
	for _, name := range sortedKeys(km.Modifier) {
		action := km.Modifier[name]
		r, ok := modifierRune(name)
		if !ok {
			logger.Warn("modifier key must be a single character", "key", name)
			continue
		}
		cmd, ok := parseAction(action)
		if !ok {
			logger.Warn("unknown action in modifier keymap", "key", name, "action", action)
			continue
		}
		k.modifier[r] = cmd
	}
	return k
}

func sortedKeys(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func modifierRune(name string) (rune, bool) {
	switch name {
	case "space":
		return ' ', true
	case "tab":
		return '\t', true
	}
	if utf8.RuneCountInString(name) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return r, true
}

// Combination returns the command bound to r after a modifier prefix.
func (k *Keymap) Combination(r rune) (Command, bool) {
	cmd, ok := k.modifier[r]
	return cmd, ok
}

// Translate decodes one key event. Alt+<key> arrives as the modifier prefix
// followed by the key; unbound printable keys insert themselves.
func (k *Keymap) Translate(ev *tcell.EventKey) []Command {
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModAlt != 0 {
		return []Command{ModifierPrefix{}, InsertChar{Ch: ev.Rune()}}
	}
	if cmd, ok := k.keys[keyString(ev)]; ok {
		return []Command{cmd}
	}
	if ev.Key() == tcell.KeyRune {
		return []Command{InsertChar{Ch: ev.Rune()}}
	}
	return nil
}

func keyString(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				return "ctrl+space"
			}
			return "space"
		}
		return string(r)
	}
	// Named keys first: KeyTab, KeyEnter, KeyBackspace and KeyEscape share
	// codes with Ctrl-I, Ctrl-M, Ctrl-H and Ctrl-[.
	switch ev.Key() {
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEscape:
		return "esc"
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		return name
	}
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyDelete:
		return "del"
	}
	return ""
}

func ctrlKeyName(key tcell.Key) string {
	switch key {
	case tcell.KeyCtrlSpace:
		return "ctrl+space"
	case tcell.KeyCtrlA:
		return "ctrl+a"
	case tcell.KeyCtrlB:
		return "ctrl+b"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyCtrlD:
		return "ctrl+d"
	case tcell.KeyCtrlE:
		return "ctrl+e"
	case tcell.KeyCtrlF:
		return "ctrl+f"
	case tcell.KeyCtrlG:
		return "ctrl+g"
	case tcell.KeyCtrlJ:
		return "ctrl+j"
	case tcell.KeyCtrlK:
		return "ctrl+k"
	case tcell.KeyCtrlL:
		return "ctrl+l"
	case tcell.KeyCtrlN:
		return "ctrl+n"
	case tcell.KeyCtrlO:
		return "ctrl+o"
	case tcell.KeyCtrlP:
		return "ctrl+p"
	case tcell.KeyCtrlQ:
		return "ctrl+q"
	case tcell.KeyCtrlR:
		return "ctrl+r"
	case tcell.KeyCtrlS:
		return "ctrl+s"
	case tcell.KeyCtrlT:
		return "ctrl+t"
	case tcell.KeyCtrlU:
		return "ctrl+u"
	case tcell.KeyCtrlV:
		return "ctrl+v"
	case tcell.KeyCtrlW:
		return "ctrl+w"
	case tcell.KeyCtrlX:
		return "ctrl+x"
	case tcell.KeyCtrlY:
		return "ctrl+y"
	case tcell.KeyCtrlZ:
		return "ctrl+z"
	}
	return ""
}
