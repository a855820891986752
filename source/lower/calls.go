package lower

// Call lowering. Whether a call is legal at all depends on the mode; what a
// remote call lowers to depends on whether its target names the operator
// namespace. Super calls redirect through the override registry.

import (
	"fmt"

	"github.com/molt-lang/molt/source/ast"
	"github.com/molt-lang/molt/source/kernel"
)

func (p *Pass) translateLocal(node *ast.LocalCall, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	if isMatchMode(ctx.Mode) {
		p.throw("lower/call/match", tok, describeCall(node.Function, len(node.Args)))
	}
	if isGuardMode(ctx.Mode) {
		if len(node.Args) == 0 {
			// Indistinguishable from an unbound variable at this point, so
			// the diagnostic names both readings.
			p.throw("lower/call/guard/arity", tok, node.Function)
		}
		p.throw("lower/call/guard", tok, describeCall(node.Function, len(node.Args)))
	}
	if ctx.Function == nil {
		p.throw("lower/call/function", tok, describeCall(node.Function, len(node.Args)))
	}
	args, ctx := p.translateArgs(node.Args, ctx)
	return &kernel.LocalCall{Line: line, Function: node.Function, Args: args}, ctx
}

// translateRemote lowers a qualified call. The target and the argument list
// are lowered independently and their variable tables reconciled afterwards,
// since neither side sees the other's bindings. A call into the operator
// namespace whose name and arity classify as an operator is emitted as an
// operator instruction rather than a call: the evaluator cannot execute
// those as ordinary calls, and list concatenation has to stay inlineable
// inside patterns.
func (p *Pass) translateRemote(node *ast.RemoteCall, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	arity := len(node.Args)
	if isMatchMode(ctx.Mode) || isGuardMode(ctx.Mode) {
		if !isOperatorNamespace(node.Target) || !kernel.IsGuardSafe(node.Function, arity) {
			p.throw("lower/remote/guard", tok, node.Target.String(), node.Function, arity)
		}
		target, ctx := p.translate(node.Target, ctx)
		args, ctx := p.translateArgs(node.Args, ctx)
		if kernel.IsOperator(node.Function, arity) {
			return &kernel.Op{Line: line, Operator: node.Function, Args: args}, ctx
		}
		return &kernel.RemoteCall{Line: line, Target: target, Function: node.Function, Args: args}, ctx
	}
	target, tctx := p.translate(node.Target, ctx.branch())
	args, actx := p.translateArgs(node.Args, ctx.branch())
	out := mergeVars(mergeVars(ctx, tctx), actx)
	if isOperatorNamespace(node.Target) && kernel.IsOperator(node.Function, arity) {
		return &kernel.Op{Line: line, Operator: node.Function, Args: args}, out
	}
	return &kernel.RemoteCall{Line: line, Target: target, Function: node.Function, Args: args}, out
}

func (p *Pass) translateDynamic(node *ast.DynamicCall, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	if isMatchMode(ctx.Mode) {
		p.throw("lower/call/match", tok, node.Target.String())
	}
	if isGuardMode(ctx.Mode) {
		p.throw("lower/call/guard", tok, node.Target.String())
	}
	target, tctx := p.translate(node.Target, ctx.branch())
	args, actx := p.translateArgs(node.Args, ctx.branch())
	out := mergeVars(mergeVars(ctx, tctx), actx)
	return &kernel.DynamicCall{Line: line, Target: target, Args: args}, out
}

func (p *Pass) translateSuper(node *ast.SuperExpression, ctx Context) (kernel.Instruction, Context) {
	tok := node.GetToken()
	line := tok.Line
	if ctx.Module == "" || ctx.Function == nil {
		p.throw("lower/super/context", tok)
	}
	// The arity check comes before the registry lookup: a malformed super
	// call must leave no trace in the registry.
	if len(node.Args) != ctx.Function.Arity {
		p.throw("lower/super/arity", tok, ctx.Function.Arity,
			describeCall(ctx.Function.Function, ctx.Function.Arity), len(node.Args))
	}
	if !p.Overrides.IsDefined(ctx.Module, *ctx.Function) {
		p.throw("lower/super/undefined", tok, ctx.Module, describeCall(ctx.Function.Function, ctx.Function.Arity))
	}
	args, ctx := p.translateArgs(node.Args, ctx)
	ctx.SuperCalled = true
	target := p.Overrides.TargetName(ctx.Module, *ctx.Function)
	return &kernel.LocalCall{Line: line, Function: target, Args: args}, ctx
}

func isOperatorNamespace(target ast.Node) bool {
	atom, ok := target.(*ast.AtomLiteral)
	return ok && atom.Value == kernel.OperatorNamespace
}

func describeCall(function string, arity int) string {
	return fmt.Sprintf("%s/%d", function, arity)
}
