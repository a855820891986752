package text

// Paragraph wrapping for error explanations.

import (
	"strings"
)

// Wrap reflows a paragraph to the given width, prefixing each line with the
// margin. ANSI escapes don't count towards the width.
func Wrap(margin string, width int, paragraph string) string {
	var out strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(paragraph) {
		wordWidth := colorlessLength(word)
		if lineWidth > 0 && lineWidth+1+wordWidth > width {
			out.WriteString("\n")
			lineWidth = 0
		}
		if lineWidth == 0 {
			out.WriteString(margin)
		} else {
			out.WriteString(" ")
			lineWidth++
		}
		out.WriteString(word)
		lineWidth = lineWidth + wordWidth
	}
	out.WriteString("\n")
	return out.String()
}

func colorlessLength(s string) int {
	length := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			length++
		}
	}
	return length
}
