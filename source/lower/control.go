package lower

// Control constructs: blocks, matches, case dispatch, try, receive,
// comprehensions, and the raw operator wrapper.

import (
	"github.com/molt-lang/molt/source/ast"
	"github.com/molt-lang/molt/source/kernel"
)

func (p *Pass) translateBlock(node *ast.BlockExpression, ctx Context) (kernel.Instruction, Context) {
	line := node.GetToken().Line
	body, ctx := p.translateAll(node.Body, ctx)
	return &kernel.Block{Line: line, Body: body}, ctx
}

// translateMatch lowers '='. The right-hand side is ordinary code; the
// left-hand side is a pattern, entered with a fresh pin backup snapshot so
// that '^' resolves against what was bound before the match began. Inside a
// pattern a nested '=' is an alias and both sides stay in pattern mode.
func (p *Pass) translateMatch(node *ast.MatchExpression, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	if isGuardMode(ctx.Mode) {
		p.throw("lower/match/guard", tok)
	}
	if isMatchMode(ctx.Mode) {
		right, ctx := p.translate(node.Right, ctx)
		left, ctx := p.translate(node.Left, ctx)
		return &kernel.Match{Line: line, Left: left, Right: right}, ctx
	}
	right, ctx := p.translate(node.Right, ctx)
	mctx := ctx
	mctx.Mode = MATCH
	mctx.Backup = copyVars(ctx.Vars)
	left, mctx := p.translate(node.Left, mctx)
	out := mctx
	out.Mode = ctx.Mode
	out.Backup = ctx.Backup
	return &kernel.Match{Line: line, Left: left, Right: right}, out
}

func (p *Pass) translateCase(node *ast.CaseExpression, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	subject, ctx := p.translate(node.Subject, ctx)
	clauses := node.Clauses
	if kernel.ReturnsBoolean(subject) {
		clauses = rewriteBooleanClauses(clauses)
	}
	kclauses, ctx := p.Clauses.Assemble(tok, clauses, ctx)
	return &kernel.Case{Line: line, Subject: subject, Clauses: kclauses}, ctx
}

// rewriteBooleanClauses replaces the two-clause shape the boolean combinator
// macros expand to
//
//	x when x or-origin-disjunction -> a; _ -> b
//
// with literal 'false' and 'true' patterns, which the downstream match
// compiler turns into a plain branch. The subject has already been proven to
// yield a boolean, so no meaning changes. Anything but that exact shape
// passes through untouched: a superficially similar case the user wrote
// themselves must keep its guard.
func rewriteBooleanClauses(clauses []*ast.Clause) []*ast.Clause {
	if len(clauses) != 2 {
		return clauses
	}
	first, second := clauses[0], clauses[1]
	if len(first.Patterns) != 1 || len(second.Patterns) != 1 {
		return clauses
	}
	if subject, ok := first.Patterns[0].(*ast.Identifier); !ok || subject.Value == "_" {
		return clauses
	}
	guard, ok := first.Guard.(*ast.OperatorExpression)
	if !ok || !guard.BooleanOrigin || (guard.Operator != "or" && guard.Operator != "orelse") {
		return clauses
	}
	if wild, ok := second.Patterns[0].(*ast.Identifier); !ok || wild.Value != "_" || second.Guard != nil {
		return clauses
	}
	return []*ast.Clause{
		{Token: first.Token, Patterns: []ast.Node{&ast.AtomLiteral{Token: first.Token, Value: "false"}}, Body: first.Body},
		{Token: second.Token, Patterns: []ast.Node{&ast.AtomLiteral{Token: second.Token, Value: "true"}}, Body: second.Body},
	}
}

// translateTry lowers the four sections in the order body, catch, after,
// else, with only the counters and flags carried from one section to the
// next, since no section's bindings are visible in another. Synthetic naming
// is suppressed for the duration so that a name picked while lowering the
// body is still that name when the else clauses match on it.
func (p *Pass) translateTry(node *ast.TryExpression, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	inner := ctx
	inner.NoName = true
	bodyInstr, bctx := p.translate(node.Body, inner)
	cctx := mergeCounters(inner, bctx)
	var catches []kernel.Clause
	if len(node.Catches) > 0 {
		catches, cctx = p.Clauses.Assemble(tok, node.Catches, cctx)
	}
	actx := mergeCounters(inner, cctx)
	var after []kernel.Instruction
	if node.After != nil {
		var afterInstr kernel.Instruction
		afterInstr, actx = p.translate(node.After, actx)
		after = kernel.Unwrap(afterInstr)
	}
	ectx := mergeCounters(inner, actx)
	var elses []kernel.Clause
	if len(node.Else) > 0 {
		elses, ectx = p.Clauses.Assemble(tok, node.Else, ectx)
	}
	out := mergeCounters(ctx, ectx)
	return &kernel.Try{Line: line, Body: kernel.Unwrap(bodyInstr), Catches: catches, Else: elses, After: after}, out
}

// translateReceive lowers the message clauses as usual and the timeout
// section on its own. The timeout clause's lone 'pattern' slot carries the
// timeout expression, which is ordinary code, not a pattern: it must read
// variables already bound outside and may call functions, so it never goes
// near pattern mode. The section is an alternative to the message clauses
// and is reconciled with them the same way sibling clauses are.
func (p *Pass) translateReceive(node *ast.ReceiveExpression, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	kclauses, ctx := p.Clauses.Assemble(tok, node.Clauses, ctx)
	if node.After == nil {
		return &kernel.Receive{Line: line, Clauses: kclauses}, ctx
	}
	if len(node.After.Patterns) != 1 {
		p.throw("lower/receive/after", node.After.GetToken())
	}
	timeout, actx := p.translate(node.After.Patterns[0], ctx.branch())
	body, actx := p.translate(node.After.Body, actx)
	return &kernel.Receive{
		Line:    line,
		Clauses: kclauses,
		Timeout: timeout,
		After:   kernel.Unwrap(body),
	}, mergeVars(ctx, actx)
}

// translateComprehension lowers 'for'. The last element of the body is the
// yield expression; everything before it is a qualifier, each either a
// generator or a filter. Bindings made by generators are visible to later
// qualifiers and to the yield, but not outside the comprehension, so only
// the counters flow back out.
func (p *Pass) translateComprehension(node *ast.ComprehensionExpression, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	if len(node.Body) == 0 {
		p.throw("lower/internal", tok, "empty comprehension")
	}
	qualifierNodes, yieldNode := kernel.SplitLast(node.Body)
	if node.Binary {
		if _, ok := yieldNode.(*ast.BitstringExpression); !ok {
			p.throw("lower/comprehension/yield", yieldNode.GetToken())
		}
	}
	inner := ctx
	qualifiers := make([]kernel.Instruction, 0, len(qualifierNodes))
	for _, q := range qualifierNodes {
		var instr kernel.Instruction
		instr, inner = p.translateQualifier(q, inner)
		qualifiers = append(qualifiers, instr)
	}
	yield, inner := p.translate(yieldNode, inner)
	out := mergeCounters(ctx, inner)
	return &kernel.Comprehension{Line: line, Binary: node.Binary, Qualifiers: qualifiers, Yield: yield}, out
}

func (p *Pass) translateQualifier(node ast.Node, ctx Context) (kernel.Instruction, Context) {
	gen, ok := node.(*ast.GeneratorExpression)
	if !ok {
		// A filter: its truth value gates continuation. The check is bound
		// to a discard so that no variable escapes it.
		line := node.GetToken().Line
		instr, ctx := p.translate(node, ctx)
		if kernel.ReturnsBoolean(instr) {
			return instr, ctx
		}
		check, ctx := p.coerceToBoolean(line, instr, false, ctx)
		return &kernel.Match{Line: line, Left: &kernel.Var{Line: line, Name: "_"}, Right: check}, ctx
	}
	line := gen.GetToken().Line
	if gen.Binary {
		if _, ok := gen.Pattern.(*ast.BitstringExpression); !ok {
			p.throw("lower/comprehension/generator", gen.GetToken())
		}
	}
	source, ctx := p.translate(gen.Source, ctx)
	mctx := ctx
	mctx.Mode = MATCH
	mctx.Backup = copyVars(ctx.Vars)
	pattern, mctx := p.translate(gen.Pattern, mctx)
	out := mctx
	out.Mode = ctx.Mode
	out.Backup = ctx.Backup
	return &kernel.Generate{Line: line, Binary: gen.Binary, Pattern: pattern, Source: source}, out
}

func (p *Pass) translateOperator(node *ast.OperatorExpression, ctx Context) (kernel.Instruction, Context) {
	line := node.GetToken().Line
	args, ctx := p.translateArgs(node.Args, ctx)
	return &kernel.Op{Line: line, Operator: node.Operator, Args: args}, ctx
}
