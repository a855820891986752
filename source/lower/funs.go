package lower

// Default implementations of the anonymous-function and bitstring
// collaborators. The clause/function compiler that embeds the pass can swap
// in its own, but these are complete: fn clauses lower through the shared
// clause translator in the anonymous pattern mode, and bitstrings lower
// segment by segment.

import (
	"github.com/molt-lang/molt/source/ast"
	"github.com/molt-lang/molt/source/kernel"
	"github.com/molt-lang/molt/source/token"
)

type fnLowerer struct {
	p *Pass
}

func (f *fnLowerer) Lower(tok *token.Token, clauses []*ast.Clause, ctx Context) (kernel.Instruction, Context) {
	line := tok.Line
	kclauses := make([]kernel.Clause, 0, len(clauses))
	out := ctx
	for _, cl := range clauses {
		kcl, cctx := f.p.translateClause(cl, ctx.branch(), GUARD_ANON)
		kclauses = append(kclauses, kcl)
		// A fn is a new scope: nothing bound in a clause outlives it.
		out = mergeCounters(out, cctx)
	}
	return &kernel.Fun{Line: line, Clauses: kclauses}, out
}

type bitstringLowerer struct {
	p *Pass
}

func (b *bitstringLowerer) Lower(tok *token.Token, segments []*ast.BitSegment, ctx Context) (kernel.Instruction, Context) {
	line := tok.Line
	lowered := make([]kernel.Segment, 0, len(segments))
	for _, seg := range segments {
		var value kernel.Instruction
		value, ctx = b.p.translate(seg.Value, ctx)
		var size kernel.Instruction
		if seg.Size != nil {
			// A size expression is never a pattern, even inside one: it
			// reads variables the pattern has already bound.
			sctx := ctx
			if isMatchMode(sctx.Mode) {
				sctx.Mode = GUARD
			}
			size, sctx = b.p.translate(seg.Size, sctx)
			sctx.Mode = ctx.Mode
			ctx = sctx
		}
		lowered = append(lowered, kernel.Segment{Value: value, Size: size, Type: seg.Type, Unit: seg.Unit})
	}
	return &kernel.Binary{Line: line, Segments: lowered}, ctx
}
