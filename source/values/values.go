package values

// Runtime constant values. By the time the kernel pass sees the surface tree
// every macro has been expanded, so a node can carry an already-evaluated
// constant: an atom, a number, a chunk of binary data, or a reference to a
// process or function. These are the values such nodes carry.

import (
	"fmt"
	"strconv"
	"strings"

	"src.elv.sh/pkg/persistent/vector"
)

type ValueType uint32

const (
	UNDEFINED_VALUE ValueType = iota // The zero value should never be anything meaningful.
	NULL
	ATOM
	INT
	FLOAT
	STRING // Binary data. Molt strings are binaries, as on the target VM.
	PID
	FUNC
	LIST
	TUPLE
)

type Value struct {
	T ValueType
	V any
}

// A reference to a named function, as captured by e.g. '&frob/2'.
type FuncRef struct {
	Module   string
	Function string
	Arity    int
}

type Pid uint64

var (
	NIL   = Value{T: ATOM, V: "nil"}
	TRUE  = Value{T: ATOM, V: "true"}
	FALSE = Value{T: ATOM, V: "false"}
)

func MakeAtom(name string) Value {
	return Value{T: ATOM, V: name}
}

func MakeInt(i int) Value {
	return Value{T: INT, V: i}
}

func MakeFloat(f float64) Value {
	return Value{T: FLOAT, V: f}
}

func MakeString(s string) Value {
	return Value{T: STRING, V: s}
}

func MakeList(elements ...Value) Value {
	vec := vector.Empty
	for _, el := range elements {
		vec = vec.Conj(el)
	}
	return Value{T: LIST, V: vec}
}

func MakeTuple(elements ...Value) Value {
	return Value{T: TUPLE, V: elements}
}

// ListElements unpacks a LIST value back into a slice.
func ListElements(v Value) []Value {
	vec := v.V.(vector.Vector)
	result := make([]Value, 0, vec.Len())
	for it := vec.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(Value))
	}
	return result
}

func (v Value) String() string {
	switch v.T {
	case UNDEFINED_VALUE:
		return "UNDEFINED VALUE!"
	case NULL:
		return "null"
	case ATOM:
		return ":" + v.V.(string)
	case INT:
		return strconv.Itoa(v.V.(int))
	case FLOAT:
		return strconv.FormatFloat(v.V.(float64), 'f', -1, 64)
	case STRING:
		return strconv.Quote(v.V.(string))
	case PID:
		return fmt.Sprintf("#pid<%d>", uint64(v.V.(Pid)))
	case FUNC:
		ref := v.V.(FuncRef)
		if ref.Module == "" {
			return fmt.Sprintf("&%s/%d", ref.Function, ref.Arity)
		}
		return fmt.Sprintf("&%s.%s/%d", ref.Module, ref.Function, ref.Arity)
	case LIST:
		parts := []string{}
		for _, el := range ListElements(v) {
			parts = append(parts, el.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TUPLE:
		parts := []string{}
		for _, el := range v.V.([]Value) {
			parts = append(parts, el.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("%v", v.V)
}
