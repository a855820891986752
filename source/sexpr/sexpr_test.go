package sexpr

import (
	"testing"
)

// The surface nodes print themselves in the language's own notation, so the
// cleanest check on the reader is what the tree it builds prints as.
func TestReading(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`42`, `42`},
		{`-3`, `-3`},
		{`2.5`, `2.5`},
		{`:ok`, `:ok`},
		{`"hi there"`, `"hi there"`},
		{`x`, `x`},
		{`_`, `_`},
		{`x@2`, `x`}, // The hygiene counter rides on the token, not the name.
		{`(pin x)`, `^x`},
		{`(pair 1 2)`, `{1, 2}`},
		{`(tuple 1 2 3)`, `{1, 2, 3}`},
		{`(list 1 2)`, `[1, 2]`},
		{`(list 1 2 | t)`, `[1, 2 | t]`},
		{`(map (:a 1) (k v))`, `%{:a => 1, k => v}`},
		{`(bits (seg x 8 integer))`, `<<x::size(8)::integer>>`},
		{`(block 1 2)`, `(1; 2)`},
		{`(= x (op + 1 2))`, `(x = (1 + 2))`},
		{`(case x (clause (1) :one) (clause (_) :two))`, `case x do 1 -> :one; _ -> :two end`},
		{`(case x (clause (y) (when (op > y 0)) y))`, `case x do y when (y > 0) -> y end`},
		{`(try 1 (catch (clause (e) :caught)) (after :done))`, `try do 1 catch e -> :caught after :done end`},
		{`(receive (clause (m) m) (after 100 :t))`, `receive do m -> m after 100 -> :t end`},
		{`(for (<- x xs) x)`, `for x <- xs, x`},
		{`(op - 1)`, `(- 1)`},
		{`(op~ or a b)`, `(a or b)`},
		{`(call f 1 2)`, `f(1, 2)`},
		{`(remote :m f x)`, `:m.f(x)`},
		{`(dyn f 1)`, `f.(1)`},
		{`(capture f 2)`, `&f/2`},
		{`(placeholder 1)`, `&1`},
		{`(super 1 2)`, `super(1, 2)`},
		{`(fn (clause (x) x))`, `fn x -> x end`},
		{`  (list    1
			2) ; trailing comment`, `[1, 2]`},
	}
	for i, test := range tests {
		node, readErr := Read(test.input, "test")
		if readErr != nil {
			t.Fatalf("test %d: reading %q failed: %s", i, test.input, readErr.Message)
		}
		if node.String() != test.want {
			t.Fatalf("test %d: reading %q gave %s, expected %s", i, test.input, node.String(), test.want)
		}
	}
}

func TestHygieneCounter(t *testing.T) {
	node, readErr := Read(`x@2`, "test")
	if readErr != nil {
		t.Fatalf("reading failed: %s", readErr.Message)
	}
	tok := node.GetToken()
	if tok.Literal != "x" || tok.Counter != 2 {
		t.Fatalf("got literal %q with counter %d", tok.Literal, tok.Counter)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		input   string
		errorId string
	}{
		{`(frobnicate x)`, "sexpr/head"},
		{`(list 1`, "sexpr/eof"},
		{`)`, "sexpr/form"},
		{`{`, "sexpr/char"},
		{`"no closing quote`, "sexpr/string"},
		{`1 2`, "sexpr/trailing"},
		{`(pin 1)`, "sexpr/form"},
		{`(pair 1 2 3)`, "sexpr/paren"},
		{``, "sexpr/eof"},
	}
	for i, test := range tests {
		_, readErr := Read(test.input, "test")
		if readErr == nil {
			t.Fatalf("test %d: reading %q succeeded, expected error %s", i, test.input, test.errorId)
		}
		if readErr.ErrorId != test.errorId {
			t.Fatalf("test %d: reading %q gave error %s, expected %s", i, test.input, readErr.ErrorId, test.errorId)
		}
	}
}

func TestReadAll(t *testing.T) {
	nodes, readErr := ReadAll("1 :two (list 3)", "test")
	if readErr != nil {
		t.Fatalf("reading failed: %s", readErr.Message)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 forms, got %d", len(nodes))
	}
	if nodes[2].String() != "[3]" {
		t.Fatalf("third form read as %s", nodes[2].String())
	}
}
