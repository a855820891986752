package lower

import (
	"testing"

	"github.com/molt-lang/molt/source/kernel"
)

func TestMergeVars(t *testing.T) {
	fid := kernel.FuncID{Function: "frob", Arity: 1}
	base := NewContext("mymod", &fid)
	base.Vars[varKey{"x", 0}] = varEntry{ident: "x", version: 0}

	left := base.branch()
	left.Vars[varKey{"y", 0}] = varEntry{ident: "y", version: 0}
	left.Counter = 3

	right := base.branch()
	right.Vars[varKey{"x", 0}] = varEntry{ident: "x~1", version: 1}
	right.Vars[varKey{"z", 2}] = varEntry{ident: "z@2", version: 0}
	right.Counter = 5
	right.SuperCalled = true

	merged := mergeVars(left, right)
	if got := merged.Vars[varKey{"x", 0}].ident; got != "x~1" {
		t.Fatalf("younger binding of x lost, got %s", got)
	}
	if got := merged.Vars[varKey{"y", 0}].ident; got != "y" {
		t.Fatalf("left-only binding of y lost, got %s", got)
	}
	if got := merged.Vars[varKey{"z", 2}].ident; got != "z@2" {
		t.Fatalf("right-only binding of z lost, got %s", got)
	}
	if merged.Counter != 5 {
		t.Fatalf("counter should advance to the higher side, got %d", merged.Counter)
	}
	if !merged.SuperCalled {
		t.Fatalf("flags should survive a merge")
	}
	if left.Vars[varKey{"x", 0}].ident != "x" {
		t.Fatalf("merging mutated its input")
	}
}

// Guard conjuncts accumulated on either side of a merge are all kept, with
// conjuncts from the shared base counted once.
func TestMergeGuards(t *testing.T) {
	fid := kernel.FuncID{Function: "frob", Arity: 1}
	base := NewContext("mymod", &fid)
	shared := &kernel.Op{Line: 1, Operator: "=:=", Args: []kernel.Instruction{
		&kernel.Var{Line: 1, Name: "_kernel@1"}, &kernel.Var{Line: 1, Name: "x"}}}
	base.ExtraGuards = []kernel.Instruction{shared}

	left := base.branch()
	fromLeft := &kernel.Op{Line: 2, Operator: "=:=", Args: []kernel.Instruction{
		&kernel.Var{Line: 2, Name: "_kernel@2"}, &kernel.Var{Line: 2, Name: "y"}}}
	left.ExtraGuards = append(append([]kernel.Instruction{}, left.ExtraGuards...), fromLeft)

	right := base.branch()
	fromRight := &kernel.Op{Line: 3, Operator: "=:=", Args: []kernel.Instruction{
		&kernel.Var{Line: 3, Name: "_kernel@3"}, &kernel.Var{Line: 3, Name: "z"}}}
	right.ExtraGuards = append(append([]kernel.Instruction{}, right.ExtraGuards...), fromRight)

	merged := mergeVars(left, right)
	if len(merged.ExtraGuards) != 3 {
		t.Fatalf("expected 3 guard conjuncts after the merge, got %d", len(merged.ExtraGuards))
	}
	for _, want := range []kernel.Instruction{shared, fromLeft, fromRight} {
		if !containsInstruction(merged.ExtraGuards, want) {
			t.Fatalf("guard conjunct %s lost in the merge", want.String())
		}
	}
}

func TestMergeCounters(t *testing.T) {
	fid := kernel.FuncID{Function: "frob", Arity: 1}
	left := NewContext("mymod", &fid)
	left.Counter = 2

	right := left.branch()
	right.Vars[varKey{"x", 0}] = varEntry{ident: "x", version: 0}
	right.Counter = 7
	right.CallerRequested = true

	merged := mergeCounters(left, right)
	if merged.Counter != 7 {
		t.Fatalf("counter not carried, got %d", merged.Counter)
	}
	if !merged.CallerRequested {
		t.Fatalf("flags not carried")
	}
	if _, ok := merged.Vars[varKey{"x", 0}]; ok {
		t.Fatalf("a counter merge must not carry variable visibility")
	}
}

func TestBranchIsolation(t *testing.T) {
	fid := kernel.FuncID{Function: "frob", Arity: 1}
	base := NewContext("mymod", &fid)
	branched := base.branch()
	branched.Vars[varKey{"x", 0}] = varEntry{ident: "x", version: 0}
	if _, ok := base.Vars[varKey{"x", 0}]; ok {
		t.Fatalf("binding in a branch leaked into the original")
	}
}

func TestVarIdent(t *testing.T) {
	tests := []struct {
		name             string
		counter, version int
		want             string
	}{
		{"x", 0, 0, "x"},
		{"x", 2, 0, "x@2"},
		{"x", 0, 1, "x~1"},
		{"x", 2, 3, "x@2~3"},
	}
	for _, test := range tests {
		if got := varIdent(test.name, test.counter, test.version); got != test.want {
			t.Fatalf("varIdent(%s, %d, %d) gave %s, expected %s",
				test.name, test.counter, test.version, got, test.want)
		}
	}
}
