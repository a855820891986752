package kernel

// Classification of the 'kernel' namespace: which remote calls are really
// operators, and which builtins the VM allows inside patterns and guards.

import (
	"github.com/molt-lang/molt/source/set"
)

// The designated low-level-operator namespace. A qualified call to this
// module may denote an operator application rather than a function call.
const OperatorNamespace = "kernel"

type FuncID struct {
	Function string
	Arity    int
}

var arithmeticOps = set.MakeFromSlice([]FuncID{
	{"+", 1}, {"-", 1}, {"+", 2}, {"-", 2}, {"*", 2}, {"/", 2},
	{"div", 2}, {"rem", 2},
	{"band", 2}, {"bor", 2}, {"bxor", 2}, {"bsl", 2}, {"bsr", 2}, {"bnot", 1},
})

var comparisonOps = set.MakeFromSlice([]FuncID{
	{"==", 2}, {"/=", 2}, {"=<", 2}, {">=", 2}, {"<", 2}, {">", 2},
	{"=:=", 2}, {"=/=", 2},
})

var booleanOps = set.MakeFromSlice([]FuncID{
	{"and", 2}, {"or", 2}, {"xor", 2}, {"not", 1},
	{"andalso", 2}, {"orelse", 2},
})

var listOps = set.MakeFromSlice([]FuncID{
	{"++", 2}, {"--", 2},
})

// IsOperator reports whether a name/arity in the operator namespace is
// classified as a list, comparison, boolean, or arithmetic operator. Such
// calls must be emitted as operator instructions: the evaluator cannot
// execute them as ordinary calls, and list concatenation has to remain
// inlineable inside patterns.
func IsOperator(function string, arity int) bool {
	id := FuncID{function, arity}
	return arithmeticOps.Contains(id) || comparisonOps.Contains(id) ||
		booleanOps.Contains(id) || listOps.Contains(id)
}

var guardSafeBuiltins = set.MakeFromSlice([]FuncID{
	{"is_atom", 1}, {"is_binary", 1}, {"is_bitstring", 1}, {"is_boolean", 1},
	{"is_float", 1}, {"is_function", 1}, {"is_function", 2}, {"is_integer", 1},
	{"is_list", 1}, {"is_map", 1}, {"is_map_key", 2}, {"is_number", 1},
	{"is_pid", 1}, {"is_reference", 1}, {"is_tuple", 1},
	{"abs", 1}, {"bit_size", 1}, {"byte_size", 1}, {"ceil", 1}, {"floor", 1},
	{"hd", 1}, {"tl", 1}, {"length", 1}, {"map_size", 1}, {"map_get", 2},
	{"element", 2}, {"tuple_size", 1}, {"node", 0}, {"node", 1}, {"self", 0},
	{"round", 1}, {"trunc", 1},
})

// IsGuardSafe reports whether the named builtin may be called from inside a
// pattern or guard.
func IsGuardSafe(function string, arity int) bool {
	return guardSafeBuiltins.Contains(FuncID{function, arity}) || IsOperator(function, arity)
}
