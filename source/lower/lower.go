package lower

// The kernel pass: lowers the macro-expanded surface tree to the kernel
// instruction tree. A single recursive entry point dispatches on node shape;
// everything else in this package is reached through it.

import (
	"fmt"

	"github.com/molt-lang/molt/source/ast"
	"github.com/molt-lang/molt/source/err"
	"github.com/molt-lang/molt/source/kernel"
	"github.com/molt-lang/molt/source/token"
	"github.com/molt-lang/molt/source/values"
)

// The collaborators a Pass needs from the surrounding compiler. New wires in
// working defaults for all of them; the clause and function compilers
// replace Overrides with the module's real registry.

type BitstringLowerer interface {
	Lower(tok *token.Token, segments []*ast.BitSegment, ctx Context) (kernel.Instruction, Context)
}

type FnLowerer interface {
	Lower(tok *token.Token, clauses []*ast.Clause, ctx Context) (kernel.Instruction, Context)
}

type ClauseAssembler interface {
	Assemble(tok *token.Token, clauses []*ast.Clause, ctx Context) ([]kernel.Clause, Context)
}

type OverrideRegistry interface {
	// IsDefined reports whether an overridable definition of the function
	// exists in the module.
	IsDefined(module string, function kernel.FuncID) bool
	// TargetName gives the synthesized name under which the overridden
	// definition can be called locally.
	TargetName(module string, function kernel.FuncID) string
}

type Pass struct {
	Bitstrings BitstringLowerer
	Fns        FnLowerer
	Clauses    ClauseAssembler
	Overrides  OverrideRegistry
}

func New() *Pass {
	p := &Pass{}
	p.Bitstrings = &bitstringLowerer{p}
	p.Fns = &fnLowerer{p}
	p.Clauses = &clauseBuilder{p}
	p.Overrides = NewOverrideTable()
	return p
}

// Expr lowers one expression. Any illegality detected during the descent is
// terminal for the translation unit: no partial output is returned.
func (p *Pass) Expr(node ast.Node, ctx Context) (instr kernel.Instruction, out Context, compileErr *err.Error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*err.Error)
			if !ok {
				panic(r)
			}
			instr, out, compileErr = nil, ctx, e
		}
	}()
	instr, out = p.translate(node, ctx)
	return instr, out, nil
}

func (p *Pass) throw(errorID string, tok *token.Token, args ...any) {
	panic(err.CreateErr(errorID, tok, args...))
}

func (p *Pass) translate(node ast.Node, ctx Context) (kernel.Instruction, Context) {
	line := node.GetToken().Line
	switch node := node.(type) {
	case *ast.AtomLiteral:
		return &kernel.Literal{Line: line, Value: values.MakeAtom(node.Value)}, ctx
	case *ast.IntegerLiteral:
		return &kernel.Literal{Line: line, Value: values.MakeInt(node.Value)}, ctx
	case *ast.FloatLiteral:
		return &kernel.Literal{Line: line, Value: values.MakeFloat(node.Value)}, ctx
	case *ast.StringLiteral:
		return &kernel.Literal{Line: line, Value: values.MakeString(node.Value)}, ctx
	case *ast.ConstantValue:
		return kernel.FromValue(line, node.Value), ctx
	case *ast.Identifier:
		return p.translateVar(node, ctx)
	case *ast.PinExpression:
		return p.translatePin(node, ctx)
	case *ast.PairExpression:
		return p.translatePair(node, ctx)
	case *ast.TupleExpression:
		return p.translateTuple(node, ctx)
	case *ast.MapExpression:
		return p.translateMap(node, ctx)
	case *ast.ListExpression:
		return p.translateList(node, ctx)
	case *ast.BitstringExpression:
		return p.Bitstrings.Lower(node.GetToken(), node.Segments, ctx)
	case *ast.BlockExpression:
		return p.translateBlock(node, ctx)
	case *ast.MatchExpression:
		return p.translateMatch(node, ctx)
	case *ast.CaseExpression:
		return p.translateCase(node, ctx)
	case *ast.TryExpression:
		return p.translateTry(node, ctx)
	case *ast.ReceiveExpression:
		return p.translateReceive(node, ctx)
	case *ast.ComprehensionExpression:
		return p.translateComprehension(node, ctx)
	case *ast.OperatorExpression:
		return p.translateOperator(node, ctx)
	case *ast.LocalCall:
		return p.translateLocal(node, ctx)
	case *ast.RemoteCall:
		return p.translateRemote(node, ctx)
	case *ast.DynamicCall:
		return p.translateDynamic(node, ctx)
	case *ast.CaptureExpression:
		return &kernel.MakeFun{Line: line, Function: node.Function, Arity: node.Arity}, ctx
	case *ast.PlaceholderExpression:
		p.throw("lower/capture/placeholder", node.GetToken(), node.Index)
	case *ast.SuperExpression:
		return p.translateSuper(node, ctx)
	case *ast.FnExpression:
		return p.Fns.Lower(node.GetToken(), node.Clauses, ctx)
	}
	// The expander can't emit anything else, so a node shaped otherwise
	// means the compiler itself is broken.
	p.throw("lower/internal", node.GetToken(), fmt.Sprintf("%T", node))
	return nil, ctx
}

// translateAll lowers a sequence left to right, each node seeing the context
// produced by its predecessor.
func (p *Pass) translateAll(nodes []ast.Node, ctx Context) ([]kernel.Instruction, Context) {
	instructions := make([]kernel.Instruction, 0, len(nodes))
	for _, node := range nodes {
		var instr kernel.Instruction
		instr, ctx = p.translate(node, ctx)
		instructions = append(instructions, instr)
	}
	return instructions, ctx
}

// translateArgs lowers the arguments of a call or the elements of a
// container. In a pattern, arguments thread strictly sequentially, since a
// variable bound by one may recur in the next. Ordinarily each argument is
// lowered against a copy of the incoming context, so transient effects
// cannot leak between siblings, and the variable tables are merged back
// afterwards so that a deliberate match inside an argument still binds.
func (p *Pass) translateArgs(args []ast.Node, ctx Context) ([]kernel.Instruction, Context) {
	if ctx.Mode != ORDINARY {
		return p.translateAll(args, ctx)
	}
	instructions := make([]kernel.Instruction, 0, len(args))
	out := ctx
	for _, arg := range args {
		instr, actx := p.translate(arg, ctx.branch())
		instructions = append(instructions, instr)
		out = mergeVars(out, actx)
	}
	return instructions, out
}
