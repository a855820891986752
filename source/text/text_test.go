package text

import (
	"strings"
	"testing"

	"github.com/molt-lang/molt/source/token"
)

func TestWrap(t *testing.T) {
	wrapped := Wrap("  ", 10, "one two three four five")
	for i, line := range strings.Split(strings.TrimRight(wrapped, "\n"), "\n") {
		if !strings.HasPrefix(line, "  ") {
			t.Fatalf("line %d lost its margin: %q", i, line)
		}
		if len(line)-2 > 10 {
			t.Fatalf("line %d too wide: %q", i, line)
		}
	}
	colored := Wrap("", 3, Red("abc"))
	if strings.Count(colored, "\n") != 1 {
		t.Fatalf("escape codes counted towards the width: %q", colored)
	}
}

func TestDescribePos(t *testing.T) {
	tests := []struct {
		tok  token.Token
		want string
	}{
		{token.Token{}, ""},
		{token.Token{Source: "REPL input", Line: 2}, " at line 2 of REPL input"},
		{token.Token{Source: "frob.molt", Line: 3, ChStart: 4, ChEnd: 7}, " at line 3:4-7 of 'frob.molt'"},
		{token.Token{Source: "frob.molt"}, " in 'frob.molt'"},
	}
	for i, test := range tests {
		if got := DescribePos(&test.tok); got != test.want {
			t.Fatalf("test %d: got %q, expected %q", i, got, test.want)
		}
	}
}
