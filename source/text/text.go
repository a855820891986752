package text

// Text utilities for rendering error messages and REPL output.

import (
	"strconv"
	"strings"

	"github.com/molt-lang/molt/source/token"
)

const (
	VERSION = "0.2.1"
	BULLET  = "  ▪ "
	PROMPT  = "→ "
)

const (
	RESET  = "\033[0m"
	RED    = "\033[31m"
	GREEN  = "\033[32m"
	YELLOW = "\033[33m"
	CYAN   = "\033[36m"
)

func Cyan(s string) string {
	return CYAN + s + RESET
}

func Emph(s string) string {
	return "'" + s + "'"
}

func Red(s string) string {
	return RED + s + RESET
}

func Green(s string) string {
	return GREEN + s + RESET
}

func Yellow(s string) string {
	return YELLOW + s + RESET
}

func ExtractFileName(s string) string {
	if strings.LastIndex(s, ".") >= 0 {
		s = s[:strings.LastIndex(s, ".")]
	}
	if strings.LastIndex(s, "/") >= 0 {
		s = s[strings.LastIndex(s, "/")+1:]
	}
	return s
}

func DescribePos(tok *token.Token) string {
	prettySource := tok.Source
	if prettySource == "" {
		return ""
	}
	if prettySource != "REPL input" {
		prettySource = "'" + prettySource + "'"
	}
	if tok.Line > 0 {
		result := strconv.Itoa(tok.Line)
		if tok.ChStart > 0 {
			result = result + ":" + strconv.Itoa(tok.ChStart)
			if tok.ChStart != tok.ChEnd {
				result = result + "-" + strconv.Itoa(tok.ChEnd)
			}
		}
		return " at line " + result + " of " + prettySource
	}
	return " in " + prettySource
}

func Logo() string {
	var out strings.Builder
	out.WriteString("\n")
	out.WriteString("  ┌─────────────┐\n")
	out.WriteString("  │ Molt " + VERSION + " │\n")
	out.WriteString("  └─────────────┘\n\n")
	return out.String()
}
