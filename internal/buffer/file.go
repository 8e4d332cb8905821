package buffer

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"unicode"
)

// Load reads path into rows. A missing file is created empty. The result
// always holds at least one row.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		return []string{""}, nil
	}
	return splitLines(string(data)), nil
}

// Save writes lines joined by '\n'. With trim, trailing whitespace is
// removed from every row.
func Save(path string, lines []string, trim bool) error {
	out := lines
	if trim {
		out = make([]string, len(lines))
		for i, line := range lines {
			out[i] = strings.TrimRightFunc(line, unicode.IsSpace)
		}
	}
	return os.WriteFile(path, []byte(strings.Join(out, "\n")), 0o644)
}

// Open loads path into a LineBuffer.
func Open(path string) (*LineBuffer, error) {
	lines, err := Load(path)
	if err != nil {
		return nil, err
	}
	return New(lines...), nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}
