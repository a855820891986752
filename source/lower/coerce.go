package lower

// Boolean coercion for filters and synthesized conditions.

import (
	"github.com/molt-lang/molt/source/kernel"
	"github.com/molt-lang/molt/source/values"
)

// coerceToBoolean turns an instruction of arbitrary type into one yielding
// 'true' or 'false'. An instruction already proven boolean is used as it
// stands, negated if asked. Anything else is wrapped in a dispatch whose
// first clause catches 'false' and 'nil', so that the usual truthiness rule
// applies.
func (p *Pass) coerceToBoolean(line int, instr kernel.Instruction, negate bool, ctx Context) (kernel.Instruction, Context) {
	if kernel.ReturnsBoolean(instr) {
		if negate {
			return &kernel.Op{Line: line, Operator: "not", Args: []kernel.Instruction{instr}}, ctx
		}
		return instr, ctx
	}
	subject, ctx := ctx.newTemp(line)
	onFalsy := &kernel.Literal{Line: line, Value: values.FALSE}
	onTruthy := &kernel.Literal{Line: line, Value: values.TRUE}
	if negate {
		onFalsy, onTruthy = onTruthy, onFalsy
	}
	guard := &kernel.Op{Line: line, Operator: "orelse", Args: []kernel.Instruction{
		&kernel.Op{Line: line, Operator: "=:=", Args: []kernel.Instruction{subject, &kernel.Literal{Line: line, Value: values.FALSE}}},
		&kernel.Op{Line: line, Operator: "=:=", Args: []kernel.Instruction{subject, &kernel.Literal{Line: line, Value: values.NIL}}},
	}}
	return &kernel.Case{Line: line, Subject: instr, Clauses: []kernel.Clause{
		{Line: line, Patterns: []kernel.Instruction{subject}, Guard: guard, Body: []kernel.Instruction{onFalsy}},
		{Line: line, Patterns: []kernel.Instruction{&kernel.Var{Line: line, Name: "_"}}, Body: []kernel.Instruction{onTruthy}},
	}}, ctx
}
