package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Keymap struct {
	Keys     map[string]string `toml:"keys"`
	Modifier map[string]string `toml:"modifier"`
}

type EditorOptions struct {
	TabWidth               int   `toml:"tab-width"`
	TrimTrailingWhitespace *bool `toml:"trim-trailing-whitespace"`
	StatusLine             *bool `toml:"status-line"`
}

// Trim reports whether trailing whitespace is stripped on save.
func (o EditorOptions) Trim() bool {
	return o.TrimTrailingWhitespace == nil || *o.TrimTrailingWhitespace
}

// ShowStatus reports whether the status line is drawn.
func (o EditorOptions) ShowStatus() bool {
	return o.StatusLine == nil || *o.StatusLine
}

type Theme struct {
	Theme                string `toml:"theme"`
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	SelectionForeground  string `toml:"selection-foreground"`
	SelectionBackground  string `toml:"selection-background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	PendingForeground    string `toml:"pending-foreground"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth: 4,
		},
		Theme: Theme{
			Theme:                "",
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			SelectionForeground:  "#0A0E14",
			SelectionBackground:  "#B3B1AD",
			StatuslineForeground: "#B3B1AD",
			StatuslineBackground: "#0F1419",
			PendingForeground:    "#E6B450",
		},
		Keymap: Keymap{
			Keys: map[string]string{
				"left":       "move_left",
				"right":      "move_right",
				"up":         "move_up",
				"down":       "move_down",
				"ctrl+b":     "move_left",
				"ctrl+f":     "move_right",
				"ctrl+p":     "move_up",
				"ctrl+n":     "move_down",
				"ctrl+a":     "line_start",
				"ctrl+e":     "line_end",
				"home":       "line_start",
				"end":        "line_end",
				"enter":      "newline",
				"tab":        "tab",
				"backspace":  "backspace",
				"del":        "backspace",
				"ctrl+space": "toggle_selection",
				"esc":        "modifier_prefix",
				"ctrl+q":     "quit",
				"ctrl+c":     "quit",
			},
			Modifier: map[string]string{
				"f":     "word_forward",
				"b":     "word_backward",
				"n":     "expand_selection",
				"p":     "shrink_selection",
				"m":     "uppercase",
				"l":     "lowercase",
				"u":     "delete_selection",
				"s":     "save",
				"space": "copy_selection",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.TrimTrailingWhitespace != nil {
		cfg.Editor.TrimTrailingWhitespace = userCfg.Editor.TrimTrailingWhitespace
	}
	if userCfg.Editor.StatusLine != nil {
		cfg.Editor.StatusLine = userCfg.Editor.StatusLine
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap.Keys {
		cfg.Keymap.Keys[k] = v
	}
	for k, v := range userCfg.Keymap.Modifier {
		cfg.Keymap.Modifier[k] = v
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.PendingForeground != "" {
		dst.PendingForeground = src.PendingForeground
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads theme/<name>.toml. Both a bare table and a [theme]
// section are accepted.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QLINE_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qline"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
