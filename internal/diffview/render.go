package diffview

import (
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	hunkColor   = color.New(color.FgMagenta)
	addColor    = color.New(color.FgGreen)
	delColor    = color.New(color.FgRed)
)

// Colorize re-renders a unified diff with per-line colors. With color output
// globally disabled (color.NoColor) the text passes through unchanged.
func Colorize(diff string) string {
	if diff == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			b.WriteString(headerColor.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkColor.Sprint(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addColor.Sprint(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(delColor.Sprint(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
