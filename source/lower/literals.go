package lower

// Container lowering. The raw literals are dealt with directly in the
// dispatcher; what is left is the shapes that contain other expressions,
// which must be lowered through the argument rule so that the mode and the
// bindings thread correctly.

import (
	"github.com/molt-lang/molt/source/ast"
	"github.com/molt-lang/molt/source/kernel"
)

func (p *Pass) translatePair(node *ast.PairExpression, ctx Context) (kernel.Instruction, Context) {
	line := node.GetToken().Line
	elements, ctx := p.translateArgs([]ast.Node{node.First, node.Second}, ctx)
	return &kernel.Tuple{Line: line, Elements: elements}, ctx
}

func (p *Pass) translateTuple(node *ast.TupleExpression, ctx Context) (kernel.Instruction, Context) {
	line := node.GetToken().Line
	elements, ctx := p.translateArgs(node.Elements, ctx)
	return &kernel.Tuple{Line: line, Elements: elements}, ctx
}

func (p *Pass) translateMap(node *ast.MapExpression, ctx Context) (kernel.Instruction, Context) {
	line := node.GetToken().Line
	// In a pattern each field matches its key exactly, so the key must
	// already be bound or literal. In ordinary code the key is an arbitrary
	// expression and the field merely associates.
	exact := isMatchMode(ctx.Mode)
	nodes := make([]ast.Node, 0, 2*len(node.Pairs))
	for _, pair := range node.Pairs {
		nodes = append(nodes, pair.Key, pair.Value)
	}
	lowered, ctx := p.translateArgs(nodes, ctx)
	fields := make([]kernel.MapField, 0, len(node.Pairs))
	for i := 0; i < len(lowered); i += 2 {
		fields = append(fields, kernel.MapField{Exact: exact, Key: lowered[i], Value: lowered[i+1]})
	}
	return &kernel.Map{Line: line, Fields: fields}, ctx
}

func (p *Pass) translateList(node *ast.ListExpression, ctx Context) (kernel.Instruction, Context) {
	line := node.GetToken().Line
	elements, ctx := p.translateArgs(node.Elements, ctx)
	var tail kernel.Instruction = &kernel.Nil{Line: line}
	if node.Tail != nil {
		// The only list form allowed a non-nil tail: '[a, b | t]'.
		tail, ctx = p.translate(node.Tail, ctx)
	}
	for i := len(elements) - 1; i >= 0; i-- {
		tail = &kernel.Cons{Line: elements[i].GetLine(), Head: elements[i], Tail: tail}
	}
	return tail, ctx
}
