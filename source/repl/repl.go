package repl

// The kernel REPL: reads a quoted form, lowers it, and prints the kernel
// instruction tree, or the diagnostic if the form can't be lowered. Mainly a
// debugging surface for the compiler's own developers, which is why it works
// on quoted forms rather than source text.

import (
	"fmt"
	"io"
	"strings"

	"github.com/lmorg/readline"

	"github.com/molt-lang/molt/source/err"
	"github.com/molt-lang/molt/source/kernel"
	"github.com/molt-lang/molt/source/lower"
	"github.com/molt-lang/molt/source/sexpr"
	"github.com/molt-lang/molt/source/text"
)

const replSource = "REPL input"

// The REPL pretends to be lowering the body of a nullary function 'it' in a
// module 'repl', so that local and super-related forms can be tried out.
func replContext(pass *lower.Pass) lower.Context {
	function := kernel.FuncID{Function: "it", Arity: 0}
	if table, ok := pass.Overrides.(*lower.OverrideTable); ok {
		table.Define("repl", function)
	}
	return lower.NewContext("repl", &function)
}

func Start(out io.Writer) {
	pass := lower.New()
	ctx := replContext(pass)
	rline := readline.NewInstance()
	rline.SetPrompt(text.PROMPT)
	var lastErr *err.Error
	for {
		line, _ := rline.Readline()
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if line == "explain" {
			if lastErr == nil {
				fmt.Fprintln(out, "Nothing has gone wrong yet.")
				continue
			}
			fmt.Fprint(out, text.Wrap("  ", 72, err.Explain(lastErr)))
			continue
		}
		node, readErr := sexpr.Read(line, replSource)
		if readErr != nil {
			lastErr = readErr
			fmt.Fprint(out, describe(readErr))
			continue
		}
		instr, _, lowerErr := pass.Expr(node, ctx)
		if lowerErr != nil {
			lastErr = lowerErr
			fmt.Fprint(out, describe(lowerErr))
			continue
		}
		fmt.Fprintln(out, instr.String())
	}
}

// Lower reads every form in the input and lowers each against a fresh
// context, writing the kernel trees to out. Used for file input. Returns
// false if anything failed.
func Lower(input, source string, out io.Writer) bool {
	pass := lower.New()
	nodes, readErr := sexpr.ReadAll(input, source)
	if readErr != nil {
		fmt.Fprint(out, describe(readErr))
		return false
	}
	ok := true
	for _, node := range nodes {
		instr, _, lowerErr := pass.Expr(node, replContext(pass))
		if lowerErr != nil {
			fmt.Fprint(out, describe(lowerErr))
			ok = false
			continue
		}
		fmt.Fprintln(out, instr.String())
	}
	return ok
}

func describe(e *err.Error) string {
	return text.Red(text.BULLET) + e.Message + text.DescribePos(e.Token) + ".\n"
}
