package transform

import (
	"strings"

	"robotidy/internal/disablers"
)

// TrimTrailingWhitespace removes trailing spaces and tabs from every line.
type TrimTrailingWhitespace struct{}

func (t *TrimTrailingWhitespace) Name() string { return "TrimTrailingWhitespace" }

func (t *TrimTrailingWhitespace) Description() string {
	return "Remove trailing spaces and tabs from every line"
}

func (t *TrimTrailingWhitespace) Transform(doc *Document) {
	for i, line := range doc.Lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == line {
			continue
		}
		n := i + 1
		if doc.Disablers.IsNodeDisabled(t.Name(), disablers.LineRange{Start: n, End: n}, true) {
			continue
		}
		doc.Lines[i] = trimmed
	}
}
