package lower

// Clause assembly for case, try, receive, and fn. Each clause lowers its
// patterns in a pattern mode, its guard in guard mode, and its body back in
// the mode the construct was entered in; the contexts produced by sibling
// clauses are alternatives and are reconciled by the variable merge.

import (
	"github.com/molt-lang/molt/source/ast"
	"github.com/molt-lang/molt/source/kernel"
	"github.com/molt-lang/molt/source/token"
)

type clauseBuilder struct {
	p *Pass
}

func (cb *clauseBuilder) Assemble(tok *token.Token, clauses []*ast.Clause, ctx Context) ([]kernel.Clause, Context) {
	kclauses := make([]kernel.Clause, 0, len(clauses))
	out := ctx
	for _, cl := range clauses {
		kcl, cctx := cb.p.translateClause(cl, ctx.branch(), MATCH)
		kclauses = append(kclauses, kcl)
		out = mergeVars(out, cctx)
	}
	return kclauses, out
}

// translateClause lowers one clause. patternMode is MATCH for the ordinary
// constructs and GUARD_ANON for anonymous-function clauses, whose pinned
// references work by extra guard conjunct instead of by reuse. Any conjuncts
// so accumulated are drained into the clause guard here.
func (p *Pass) translateClause(cl *ast.Clause, ctx Context, patternMode Mode) (kernel.Clause, Context) {
	line := cl.GetToken().Line
	mctx := ctx
	mctx.Mode = patternMode
	mctx.Backup = copyVars(ctx.Vars)
	mctx.ExtraGuards = nil
	patterns, mctx := p.translateAll(cl.Patterns, mctx)

	gctx := mctx
	gctx.Mode = GUARD
	var guard kernel.Instruction
	if cl.Guard != nil {
		guard, gctx = p.translate(cl.Guard, gctx)
	}
	for _, extra := range gctx.ExtraGuards {
		if guard == nil {
			guard = extra
		} else {
			guard = &kernel.Op{Line: extra.GetLine(), Operator: "andalso", Args: []kernel.Instruction{extra, guard}}
		}
	}

	bctx := gctx
	bctx.Mode = ctx.Mode
	bctx.Backup = ctx.Backup
	bctx.ExtraGuards = ctx.ExtraGuards
	body, bctx := p.translate(cl.Body, bctx)

	return kernel.Clause{Line: line, Patterns: patterns, Guard: guard, Body: kernel.Unwrap(body)}, bctx
}
