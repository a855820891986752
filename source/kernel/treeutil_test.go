package kernel

import (
	"reflect"
	"testing"

	"github.com/molt-lang/molt/source/values"
)

func TestUnwrapRoundTrip(t *testing.T) {
	blocks := []*Block{
		{Line: 1, Body: []Instruction{&Literal{Line: 1, Value: values.MakeInt(1)}}},
		{Line: 1, Body: []Instruction{
			&Literal{Line: 1, Value: values.MakeInt(1)},
			&Var{Line: 2, Name: "x"},
			&Nil{Line: 3},
		}},
	}
	for i, block := range blocks {
		rewrapped := Wrap(block.Line, Unwrap(block))
		var want Instruction = block
		if len(block.Body) == 1 {
			// A single-statement block unwraps to its statement.
			want = block.Body[0]
		}
		if !reflect.DeepEqual(rewrapped, want) {
			t.Fatalf("test %d: round trip gave %s, expected %s", i, rewrapped.String(), want.String())
		}
	}
	single := &Var{Line: 1, Name: "x"}
	if seq := Unwrap(single); len(seq) != 1 || seq[0] != Instruction(single) {
		t.Fatalf("a non-block should unwrap to itself alone, got %v", seq)
	}
}

func TestSplitLast(t *testing.T) {
	init, last := SplitLast([]int{1, 2, 3})
	if !reflect.DeepEqual(init, []int{1, 2}) || last != 3 {
		t.Fatalf("SplitLast gave %v, %v", init, last)
	}
	init, last = SplitLast([]int{7})
	if len(init) != 0 || last != 7 {
		t.Fatalf("SplitLast of a singleton gave %v, %v", init, last)
	}
}

func TestReturnsBoolean(t *testing.T) {
	kernelAtom := &Literal{Value: values.MakeAtom(OperatorNamespace)}
	x := &Var{Name: "x"}
	tests := []struct {
		instr Instruction
		want  bool
	}{
		{&Literal{Value: values.TRUE}, true},
		{&Literal{Value: values.FALSE}, true},
		{&Literal{Value: values.MakeAtom("ok")}, false},
		{&Op{Operator: "<", Args: []Instruction{x, x}}, true},
		{&Op{Operator: "+", Args: []Instruction{x, x}}, false},
		{&Op{Operator: "and", Args: []Instruction{&Literal{Value: values.TRUE}, x}}, false},
		{&Op{Operator: "and", Args: []Instruction{&Literal{Value: values.TRUE}, &Literal{Value: values.FALSE}}}, true},
		{&Op{Operator: "not", Args: []Instruction{&Literal{Value: values.TRUE}}}, true},
		{&RemoteCall{Target: kernelAtom, Function: "is_atom", Args: []Instruction{x}}, true},
		{&RemoteCall{Target: kernelAtom, Function: "hd", Args: []Instruction{x}}, false},
		{&RemoteCall{Target: &Literal{Value: values.MakeAtom("lists")}, Function: "is_atom", Args: []Instruction{x}}, false},
		{&Block{Body: []Instruction{x, &Op{Operator: "==", Args: []Instruction{x, x}}}}, true},
		{&Block{Body: []Instruction{&Op{Operator: "==", Args: []Instruction{x, x}}, x}}, false},
		{x, false},
	}
	for i, test := range tests {
		if got := ReturnsBoolean(test.instr); got != test.want {
			t.Fatalf("test %d: ReturnsBoolean(%s) gave %v", i, test.instr.String(), got)
		}
	}
}

func TestFromValue(t *testing.T) {
	tests := []struct {
		value values.Value
		want  string
	}{
		{values.MakeInt(42), "42"},
		{values.MakeAtom("ok"), ":ok"},
		{values.MakeList(values.MakeInt(1), values.MakeInt(2)), "(cons 1 (cons 2 nil))"},
		{values.MakeList(), "nil"},
		{values.MakeTuple(values.MakeInt(1), values.MakeAtom("a")), "(tuple 1 :a)"},
		{values.MakeTuple(values.MakeList(values.MakeInt(1))), "(tuple (cons 1 nil))"},
	}
	for i, test := range tests {
		if got := FromValue(1, test.value).String(); got != test.want {
			t.Fatalf("test %d: FromValue gave %s, expected %s", i, got, test.want)
		}
	}
}

func TestOperatorClassification(t *testing.T) {
	tests := []struct {
		function string
		arity    int
		want     bool
	}{
		{"+", 2, true}, {"+", 1, true}, {"+", 3, false},
		{"++", 2, true}, {"=:=", 2, true}, {"orelse", 2, true},
		{"is_atom", 1, false}, {"frob", 2, false},
	}
	for i, test := range tests {
		if got := IsOperator(test.function, test.arity); got != test.want {
			t.Fatalf("test %d: IsOperator(%s, %d) gave %v", i, test.function, test.arity, got)
		}
	}
	if !IsGuardSafe("is_atom", 1) || !IsGuardSafe("++", 2) || IsGuardSafe("spawn", 1) {
		t.Fatalf("guard-safe whitelist misclassifies")
	}
}
