package lower

// Variable resolution. Four reference shapes reach this file: pinned
// references, the wildcard, ordinary named variables, and the
// caller-introspection pseudo-variable. What each is allowed to do depends
// on the mode the context is in.

import (
	"github.com/molt-lang/molt/source/ast"
	"github.com/molt-lang/molt/source/kernel"
)

const callerVariable = "__CALLER__"

func (p *Pass) translateVar(node *ast.Identifier, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	if node.Value == "_" {
		if !isMatchMode(ctx.Mode) {
			p.throw("lower/wildcard", tok)
		}
		return &kernel.Var{Line: line, Name: "_"}, ctx
	}
	if node.Value == callerVariable {
		if ctx.Function == nil {
			p.throw("lower/caller/context", tok)
		}
		ctx.CallerRequested = true
		return &kernel.Var{Line: line, Name: "__caller__"}, ctx
	}
	key := varKey{node.Value, tok.Counter}
	if isMatchMode(ctx.Mode) {
		return p.bindMatchVar(key, line, ctx)
	}
	entry, ok := ctx.Vars[key]
	if !ok {
		entry = varEntry{ident: varIdent(key.name, key.counter, 0)}
		ctx.Vars = copyVars(ctx.Vars)
		ctx.Vars[key] = entry
	}
	return &kernel.Var{Line: line, Name: entry.ident}, ctx
}

// bindMatchVar resolves a named variable occurring in a pattern. The first
// occurrence shadows any outer binding of the name; later occurrences in the
// same pattern resolve to the binding the first one made, so that the VM
// unifies them instead of rebinding. The backup table tells the two cases
// apart: an entry equal to its backup was made before this match began.
func (p *Pass) bindMatchVar(key varKey, line int, ctx Context) (kernel.Instruction, Context) {
	entry, bound := ctx.Vars[key]
	outer, wasOuter := ctx.Backup[key]
	if bound && (!wasOuter || entry != outer) {
		// Bound during this match: unify.
		return &kernel.Var{Line: line, Name: entry.ident}, ctx
	}
	if bound && ctx.NoName {
		// Shadowing is suppressed so that a name picked in a try body is
		// still the same name when its else section refers to it.
		return &kernel.Var{Line: line, Name: entry.ident}, ctx
	}
	version := 0
	if bound {
		version = entry.version + 1
	}
	fresh := varEntry{ident: varIdent(key.name, key.counter, version), version: version}
	ctx.Vars = copyVars(ctx.Vars)
	ctx.Vars[key] = fresh
	return &kernel.Var{Line: line, Name: fresh.ident}, ctx
}

func (p *Pass) translatePin(node *ast.PinExpression, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	name := node.Inner.Value
	key := varKey{name, node.Inner.GetToken().Counter}
	switch ctx.Mode {
	case MATCH:
		outer, ok := ctx.Backup[key]
		if !ok {
			p.throw("lower/pin/unbound", tok, name)
		}
		// No new binding: the match must equal the outer value.
		return &kernel.Var{Line: line, Name: outer.ident}, ctx
	case GUARD_ANON:
		outer, ok := ctx.Backup[key]
		if !ok {
			p.throw("lower/pin/unbound", tok, name)
		}
		// The match primitive underneath an anonymous function cannot reuse
		// an outer binding, so bind fresh and compare in the guard instead.
		fresh, out := ctx.newTemp(line)
		out.ExtraGuards = append(append([]kernel.Instruction{}, out.ExtraGuards...),
			&kernel.Op{Line: line, Operator: "=:=", Args: []kernel.Instruction{
				fresh,
				&kernel.Var{Line: line, Name: outer.ident},
			}})
		return fresh, out
	}
	p.throw("lower/pin/context", tok, name)
	return nil, ctx
}
