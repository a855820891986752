package kernel

// Structural helpers over the instruction tree.

import (
	"github.com/molt-lang/molt/source/values"
)

// SplitLast divides a non-empty sequence into its leading elements and its
// final element.
func SplitLast[T any](seq []T) ([]T, T) {
	return seq[:len(seq)-1], seq[len(seq)-1]
}

// Unwrap flattens an instruction into a bare instruction sequence: a block
// unwraps to its body, anything else to a single-element sequence. Used
// where a construct must expose its statements individually, e.g. the
// protected body of a try.
func Unwrap(instr Instruction) []Instruction {
	if block, ok := instr.(*Block); ok {
		return block.Body
	}
	return []Instruction{instr}
}

// Wrap is the inverse of Unwrap: a single instruction stands alone, a longer
// sequence is wrapped back into a block.
func Wrap(line int, seq []Instruction) Instruction {
	if len(seq) == 1 {
		return seq[0]
	}
	return &Block{Line: line, Body: seq}
}

// ReturnsBoolean reports whether an instruction can be statically proven to
// always yield 'true' or 'false'.
func ReturnsBoolean(instr Instruction) bool {
	switch instr := instr.(type) {
	case *Literal:
		return instr.Value == values.TRUE || instr.Value == values.FALSE
	case *Op:
		id := FuncID{instr.Operator, len(instr.Args)}
		if comparisonOps.Contains(id) {
			return true
		}
		if booleanOps.Contains(id) {
			// The boolean operators only yield booleans when fed booleans.
			for _, arg := range instr.Args {
				if !ReturnsBoolean(arg) {
					return false
				}
			}
			return true
		}
		return false
	case *RemoteCall:
		target, ok := instr.Target.(*Literal)
		if !ok || target.Value.T != values.ATOM || target.Value.V.(string) != OperatorNamespace {
			return false
		}
		name := instr.Function
		return len(name) > 3 && name[:3] == "is_" && IsGuardSafe(name, len(instr.Args))
	case *Block:
		if len(instr.Body) == 0 {
			return false
		}
		return ReturnsBoolean(instr.Body[len(instr.Body)-1])
	}
	return false
}

// FromValue is the one-to-one conversion from an already-evaluated constant
// to the instruction producing it. Lists become cons chains and tuples
// become tuple instructions, so that constants and constructed containers
// lower to the same shapes; everything else is a literal.
func FromValue(line int, v values.Value) Instruction {
	switch v.T {
	case values.LIST:
		var result Instruction = &Nil{Line: line}
		elements := values.ListElements(v)
		for i := len(elements) - 1; i >= 0; i-- {
			result = &Cons{Line: line, Head: FromValue(line, elements[i]), Tail: result}
		}
		return result
	case values.TUPLE:
		elements := []Instruction{}
		for _, el := range v.V.([]values.Value) {
			elements = append(elements, FromValue(line, el))
		}
		return &Tuple{Line: line, Elements: elements}
	}
	return &Literal{Line: line, Value: v}
}
