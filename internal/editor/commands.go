package editor

import "github.com/kobzarvs/qline/internal/mutate"

// Command is a decoded key event. The set is closed: Controller.Handle
// switches over every variant.
type Command interface {
	command()
}

type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	default:
		return "down"
	}
}

type (
	InsertChar      struct{ Ch rune }
	Move            struct{ Dir Direction }
	LineStart       struct{}
	LineEnd         struct{}
	Newline         struct{}
	Tab             struct{}
	Backspace       struct{}
	ModifierPrefix  struct{}
	ToggleSelection struct{}
	WordForward     struct{}
	WordBackward    struct{}
	ExpandSelection struct{}
	ShrinkSelection struct{}
	Transform       struct{ Kind mutate.Transform }
	CopySelection   struct{}
	Save            struct{}
	Quit            struct{}
)

func (InsertChar) command()      {}
func (Move) command()            {}
func (LineStart) command()       {}
func (LineEnd) command()         {}
func (Newline) command()         {}
func (Tab) command()             {}
func (Backspace) command()       {}
func (ModifierPrefix) command()  {}
func (ToggleSelection) command() {}
func (WordForward) command()     {}
func (WordBackward) command()    {}
func (ExpandSelection) command() {}
func (ShrinkSelection) command() {}
func (Transform) command()       {}
func (CopySelection) command()   {}
func (Save) command()            {}
func (Quit) command()            {}

// parseAction maps a keymap action name to its command.
func parseAction(name string) (Command, bool) {
	switch name {
	case "move_left":
		return Move{Dir: Left}, true
	case "move_right":
		return Move{Dir: Right}, true
	case "move_up":
		return Move{Dir: Up}, true
	case "move_down":
		return Move{Dir: Down}, true
	case "line_start":
		return LineStart{}, true
	case "line_end":
		return LineEnd{}, true
	case "newline":
		return Newline{}, true
	case "tab":
		return Tab{}, true
	case "backspace":
		return Backspace{}, true
	case "modifier_prefix":
		return ModifierPrefix{}, true
	case "toggle_selection":
		return ToggleSelection{}, true
	case "word_forward":
		return WordForward{}, true
	case "word_backward":
		return WordBackward{}, true
	case "expand_selection":
		return ExpandSelection{}, true
	case "shrink_selection":
		return ShrinkSelection{}, true
	case "uppercase":
		return Transform{Kind: mutate.Uppercase}, true
	case "lowercase":
		return Transform{Kind: mutate.Lowercase}, true
	case "delete_selection":
		return Transform{Kind: mutate.Delete}, true
	case "copy_selection":
		return CopySelection{}, true
	case "save":
		return Save{}, true
	case "quit":
		return Quit{}, true
	}
	return nil, false
}
