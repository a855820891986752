package lower

import (
	"testing"

	"github.com/molt-lang/molt/source/err"
	"github.com/molt-lang/molt/source/kernel"
	"github.com/molt-lang/molt/source/sexpr"
)

type lowerTest struct {
	input string
	want  string
}

// testLower lowers each input as if it were the body of a function frob/2
// in a module mymod, and compares the printed kernel tree.
func testLower(t *testing.T, tests []lowerTest) {
	t.Helper()
	for i, test := range tests {
		fid := kernel.FuncID{Function: "frob", Arity: 2}
		instr, _, lowerErr := lowerString(t, New(), test.input, NewContext("mymod", &fid))
		if lowerErr != nil {
			t.Fatalf("test %d: lowering %q failed: %s", i, test.input, lowerErr.Message)
		}
		if instr.String() != test.want {
			t.Fatalf("test %d: lowering %q gave\n%s\nexpected\n%s", i, test.input, instr.String(), test.want)
		}
	}
}

func TestLiterals(t *testing.T) {
	tests := []lowerTest{
		{`42`, `42`},
		{`-3`, `-3`},
		{`2.5`, `2.5`},
		{`:ok`, `:ok`},
		{`"hello"`, `"hello"`},
	}
	testLower(t, tests)
}

func TestContainers(t *testing.T) {
	tests := []lowerTest{
		{`(pair 1 :ok)`, `(tuple 1 :ok)`},
		{`(tuple x y)`, `(tuple x y)`},
		{`(list)`, `nil`},
		{`(list 1 2 3)`, `(cons 1 (cons 2 (cons 3 nil)))`},
		{`(list 1 | x)`, `(cons 1 x)`},
		{`(map (:a 1))`, `(map (:a => 1))`},
		{`(bits (seg 1) (seg x 8 integer 1))`, `<<1, x::size(8)::integer>>`},
	}
	testLower(t, tests)
}

func TestMatch(t *testing.T) {
	tests := []lowerTest{
		{`(= x 1)`, `(match x 1)`},
		{`(= (tuple a b) (pair 1 2))`, `(match (tuple a b) (tuple 1 2))`},
		{`(= (map (:a v)) m)`, `(match (map (:a := v)) m)`}, // Pattern fields match exactly.
		{`(= (pair x x) y)`, `(match (tuple x x) y)`},       // Repeated variable unifies.
		{`(= x@2 1)`, `(match x@2 1)`},                      // Hygiene counter kept apart from the name.
		{`(block (= x 1) (= (pin x) y))`, `(block (match x 1) (match x y))`},
		{`(block (= x 1) (= x 2) x)`, `(block (match x 1) (match x~1 2) x~1)`}, // Rebinding shadows.
		{`(= (remote :kernel ++ (list 1) t) y)`, `(match (op ++ (cons 1 nil) t) y)`},
	}
	testLower(t, tests)
}

func TestCalls(t *testing.T) {
	tests := []lowerTest{
		{`(call wibble 1 2)`, `(call wibble 1 2)`},
		{`(remote :lists map f l)`, `(call-remote :lists map f l)`},
		{`(remote :kernel + 1 2)`, `(op + 1 2)`},
		{`(remote :kernel frob 1)`, `(call-remote :kernel frob 1)`},
		{`(dyn f 1 2)`, `(apply f 1 2)`},
		{`(capture frob 2)`, `(make-fun frob/2)`},
		{`(op + 1 2)`, `(op + 1 2)`},
		{`(op - 1)`, `(op - 1)`},
	}
	testLower(t, tests)
}

func TestControl(t *testing.T) {
	tests := []lowerTest{
		{`(block 1 2)`, `(block 1 2)`},
		{`(case x (clause (1) :one) (clause (_) :other))`,
			`(case x (clause (1) :one) (clause (_) :other))`},
		{`(case x (clause (y) (when (remote :kernel is_atom y)) :ok))`,
			`(case x (clause (y) when (call-remote :kernel is_atom y) :ok))`},
		{`(try (block 1 2) (catch (clause (e) :caught)) (after :done))`,
			`(try 1 2 catch (clause (e) :caught) after :done)`},
		{`(receive (clause (m) m))`, `(receive (clause (m) m))`},
		{`(receive (clause (m) m) (after 100 :timeout))`,
			`(receive (clause (m) m) after 100 :timeout)`},
		{`(for (<- x xs) (op > x 0) (op * x x))`,
			`(lc (x <- xs) (op > x 0) yield (op * x x))`},
		{`(fn (clause (x) x))`, `(fun (clause (x) x))`},
	}
	testLower(t, tests)
}

// A receive timeout is ordinary code, not a pattern: it reads bindings made
// outside the receive instead of shadowing them, and it may be computed by a
// call.
func TestReceiveTimeoutIsExpression(t *testing.T) {
	testLower(t, []lowerTest{
		{`(block (= t 100) (receive (clause (m) m) (after t :late)))`,
			`(block (match t 100) (receive (clause (m) m) after t :late))`},
		{`(receive (clause (m) m) (after (call next_timeout :poll) :late))`,
			`(receive (clause (m) m) after (call next_timeout :poll) :late)`},
	})
}

// A name bound while a try body is lowered must still be that name when a
// later section is reached, so rebinding inside a try does not shadow.
func TestTrySuppressesShadowing(t *testing.T) {
	testLower(t, []lowerTest{
		{`(try (block (= x 1) (= x 2)) (after :ok))`,
			`(try (match x 1) (match x 2) after :ok)`},
	})
}

// A filter that can't be proven boolean is wrapped in a truthiness dispatch
// bound to a discard.
func TestComprehensionFilterCoercion(t *testing.T) {
	testLower(t, []lowerTest{
		{`(for (<- x xs) x 1)`,
			`(lc (x <- xs) (match _ (case x (clause (_kernel@1) when ` +
				`(op orelse (op =:= _kernel@1 :false) (op =:= _kernel@1 :nil)) :false) ` +
				`(clause (_) :true))) yield 1)`},
	})
}

// A pinned reference in an anonymous-function pattern can't reuse the outer
// binding, so it binds fresh and compares in the guard.
func TestFnPinBecomesGuard(t *testing.T) {
	testLower(t, []lowerTest{
		{`(block (= x 1) (fn (clause ((pin x)) :ok)))`,
			`(block (match x 1) (fun (clause (_kernel@1) when (op =:= _kernel@1 x) :ok)))`},
	})
}

func TestBooleanRewrite(t *testing.T) {
	tests := []lowerTest{
		// The canonical two-clause shape on a provably boolean subject is
		// rewritten to literal matches.
		{`(case (op < x y) (clause (b) (when (op~ or p q)) :no) (clause (_) :yes))`,
			`(case (op < x y) (clause (:false) :no) (clause (:true) :yes))`},
		// Without the combinator-origin tag the guard is the user's own and
		// must survive.
		{`(case (op < x y) (clause (b) (when (op or p q)) :no) (clause (_) :yes))`,
			`(case (op < x y) (clause (b) when (op or p q) :no) (clause (_) :yes))`},
		// A subject that isn't provably boolean is never rewritten.
		{`(case x (clause (b) (when (op~ or p q)) :no) (clause (_) :yes))`,
			`(case x (clause (b) when (op or p q) :no) (clause (_) :yes))`},
	}
	testLower(t, tests)
}

func TestSuper(t *testing.T) {
	pass := New()
	fid := kernel.FuncID{Function: "frob", Arity: 2}
	pass.Overrides.(*OverrideTable).Define("mymod", fid)
	instr, ctx, lowerErr := lowerString(t, pass, `(super 1 2)`, NewContext("mymod", &fid))
	if lowerErr != nil {
		t.Fatalf("super call failed: %s", lowerErr.Message)
	}
	if instr.String() != `(call frob@override~1 1 2)` {
		t.Fatalf("super call gave %s", instr.String())
	}
	if !ctx.SuperCalled {
		t.Fatalf("super call didn't set the flag")
	}
}

func TestCallerRequest(t *testing.T) {
	fid := kernel.FuncID{Function: "frob", Arity: 2}
	instr, ctx, lowerErr := lowerString(t, New(), `__CALLER__`, NewContext("mymod", &fid))
	if lowerErr != nil {
		t.Fatalf("caller reference failed: %s", lowerErr.Message)
	}
	if instr.String() != "__caller__" {
		t.Fatalf("caller reference gave %s", instr.String())
	}
	if !ctx.CallerRequested {
		t.Fatalf("caller reference didn't set the flag")
	}
}

// Lowering a literal leaves the variable table untouched.
func TestLiteralLeavesContextAlone(t *testing.T) {
	fid := kernel.FuncID{Function: "frob", Arity: 2}
	before := NewContext("mymod", &fid)
	_, after, lowerErr := lowerString(t, New(), `42`, before)
	if lowerErr != nil {
		t.Fatalf("lowering failed: %s", lowerErr.Message)
	}
	if len(after.Vars) != 0 || after.Counter != 0 {
		t.Fatalf("lowering a literal changed the context: %v", after)
	}
}

func lowerString(t *testing.T, pass *Pass, input string, ctx Context) (kernel.Instruction, Context, *err.Error) {
	t.Helper()
	node, readErr := sexpr.Read(input, "test")
	if readErr != nil {
		t.Fatalf("can't read %q: %s", input, readErr.Message)
	}
	instr, out, lowerErr := pass.Expr(node, ctx)
	return instr, out, lowerErr
}
