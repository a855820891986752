package ast

// The surface tree as handed to the kernel pass. By this point the expander
// has run: every macro is gone, every special form is one of the node kinds
// below, and every node carries the token of the source text it came from.

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/molt-lang/molt/source/token"
	"github.com/molt-lang/molt/source/values"
)

// The base Node interface
type Node interface {
	Children() []Node
	GetToken() *token.Token
	String() string
}

// Nodes in alphabetical order. Other structures and functions are in a separate section at the bottom.

type AtomLiteral struct {
	Token token.Token
	Value string
}

func (al *AtomLiteral) Children() []Node       { return []Node{} }
func (al *AtomLiteral) GetToken() *token.Token { return &al.Token }
func (al *AtomLiteral) String() string         { return ":" + al.Value }

type BitstringExpression struct {
	Token    token.Token
	Segments []*BitSegment
}

func (be *BitstringExpression) Children() []Node {
	result := []Node{}
	for _, seg := range be.Segments {
		result = append(result, seg.Value)
		if seg.Size != nil {
			result = append(result, seg.Size)
		}
	}
	return result
}
func (be *BitstringExpression) GetToken() *token.Token { return &be.Token }
func (be *BitstringExpression) String() string {
	parts := []string{}
	for _, seg := range be.Segments {
		parts = append(parts, seg.String())
	}
	return "<<" + strings.Join(parts, ", ") + ">>"
}

type BlockExpression struct {
	Token token.Token
	Body  []Node
}

func (be *BlockExpression) Children() []Node       { return be.Body }
func (be *BlockExpression) GetToken() *token.Token { return &be.Token }
func (be *BlockExpression) String() string {
	parts := []string{}
	for _, node := range be.Body {
		parts = append(parts, node.String())
	}
	return "(" + strings.Join(parts, "; ") + ")"
}

type CaptureExpression struct {
	Token    token.Token
	Function string
	Arity    int
}

func (ce *CaptureExpression) Children() []Node       { return []Node{} }
func (ce *CaptureExpression) GetToken() *token.Token { return &ce.Token }
func (ce *CaptureExpression) String() string {
	return fmt.Sprintf("&%s/%d", ce.Function, ce.Arity)
}

type CaseExpression struct {
	Token   token.Token
	Subject Node
	Clauses []*Clause
}

func (ce *CaseExpression) Children() []Node {
	result := []Node{ce.Subject}
	for _, cl := range ce.Clauses {
		result = append(result, cl)
	}
	return result
}
func (ce *CaseExpression) GetToken() *token.Token { return &ce.Token }
func (ce *CaseExpression) String() string {
	var out bytes.Buffer
	out.WriteString("case ")
	out.WriteString(ce.Subject.String())
	out.WriteString(" do ")
	for i, cl := range ce.Clauses {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(cl.String())
	}
	out.WriteString(" end")
	return out.String()
}

// One clause of a 'case', 'try', 'receive', or 'fn'. The guard may be nil.
type Clause struct {
	Token    token.Token
	Patterns []Node
	Guard    Node
	Body     Node
}

func (cl *Clause) Children() []Node {
	result := append([]Node{}, cl.Patterns...)
	if cl.Guard != nil {
		result = append(result, cl.Guard)
	}
	result = append(result, cl.Body)
	return result
}
func (cl *Clause) GetToken() *token.Token { return &cl.Token }
func (cl *Clause) String() string {
	var out bytes.Buffer
	parts := []string{}
	for _, pat := range cl.Patterns {
		parts = append(parts, pat.String())
	}
	out.WriteString(strings.Join(parts, ", "))
	if cl.Guard != nil {
		out.WriteString(" when ")
		out.WriteString(cl.Guard.String())
	}
	out.WriteString(" -> ")
	out.WriteString(cl.Body.String())
	return out.String()
}

type ComprehensionExpression struct {
	Token  token.Token
	Binary bool // A binary comprehension yields a bit string rather than a list.
	Body   []Node
}

func (ce *ComprehensionExpression) Children() []Node       { return ce.Body }
func (ce *ComprehensionExpression) GetToken() *token.Token { return &ce.Token }
func (ce *ComprehensionExpression) String() string {
	parts := []string{}
	for _, node := range ce.Body {
		parts = append(parts, node.String())
	}
	return "for " + strings.Join(parts, ", ")
}

type ConstantValue struct {
	Token token.Token
	Value values.Value
}

func (cv *ConstantValue) Children() []Node       { return []Node{} }
func (cv *ConstantValue) GetToken() *token.Token { return &cv.Token }
func (cv *ConstantValue) String() string         { return cv.Value.String() }

type DynamicCall struct {
	Token  token.Token
	Target Node
	Args   []Node
}

func (dc *DynamicCall) Children() []Node       { return append([]Node{dc.Target}, dc.Args...) }
func (dc *DynamicCall) GetToken() *token.Token { return &dc.Token }
func (dc *DynamicCall) String() string {
	return dc.Target.String() + ".(" + describeArgs(dc.Args) + ")"
}

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) Children() []Node       { return []Node{} }
func (fl *FloatLiteral) GetToken() *token.Token { return &fl.Token }
func (fl *FloatLiteral) String() string         { return fl.Token.Literal }

type FnExpression struct {
	Token   token.Token
	Clauses []*Clause
}

func (fe *FnExpression) Children() []Node {
	result := []Node{}
	for _, cl := range fe.Clauses {
		result = append(result, cl)
	}
	return result
}
func (fe *FnExpression) GetToken() *token.Token { return &fe.Token }
func (fe *FnExpression) String() string {
	parts := []string{}
	for _, cl := range fe.Clauses {
		parts = append(parts, cl.String())
	}
	return "fn " + strings.Join(parts, "; ") + " end"
}

type GeneratorExpression struct {
	Token   token.Token
	Binary  bool
	Pattern Node
	Source  Node
}

func (ge *GeneratorExpression) Children() []Node       { return []Node{ge.Pattern, ge.Source} }
func (ge *GeneratorExpression) GetToken() *token.Token { return &ge.Token }
func (ge *GeneratorExpression) String() string {
	return ge.Pattern.String() + " <- " + ge.Source.String()
}

type Identifier struct {
	Token token.Token
	Value string
}

func (id *Identifier) Children() []Node       { return []Node{} }
func (id *Identifier) GetToken() *token.Token { return &id.Token }
func (id *Identifier) String() string         { return id.Value }

type IntegerLiteral struct {
	Token token.Token
	Value int
}

func (il *IntegerLiteral) Children() []Node       { return []Node{} }
func (il *IntegerLiteral) GetToken() *token.Token { return &il.Token }
func (il *IntegerLiteral) String() string         { return il.Token.Literal }

type ListExpression struct {
	Token    token.Token
	Elements []Node
	Tail     Node // Non-nil only for a cons pattern '[a, b | tail]'.
}

func (le *ListExpression) Children() []Node {
	result := append([]Node{}, le.Elements...)
	if le.Tail != nil {
		result = append(result, le.Tail)
	}
	return result
}
func (le *ListExpression) GetToken() *token.Token { return &le.Token }
func (le *ListExpression) String() string {
	result := "[" + describeArgs(le.Elements)
	if le.Tail != nil {
		result = result + " | " + le.Tail.String()
	}
	return result + "]"
}

type LocalCall struct {
	Token    token.Token
	Function string
	Args     []Node
}

func (lc *LocalCall) Children() []Node       { return lc.Args }
func (lc *LocalCall) GetToken() *token.Token { return &lc.Token }
func (lc *LocalCall) String() string {
	return lc.Function + "(" + describeArgs(lc.Args) + ")"
}

type MapExpression struct {
	Token token.Token
	Pairs []MapPair
}

func (me *MapExpression) Children() []Node {
	result := []Node{}
	for _, pair := range me.Pairs {
		result = append(result, pair.Key, pair.Value)
	}
	return result
}
func (me *MapExpression) GetToken() *token.Token { return &me.Token }
func (me *MapExpression) String() string {
	parts := []string{}
	for _, pair := range me.Pairs {
		parts = append(parts, pair.Key.String()+" => "+pair.Value.String())
	}
	return "%{" + strings.Join(parts, ", ") + "}"
}

type MatchExpression struct {
	Token token.Token
	Left  Node
	Right Node
}

func (me *MatchExpression) Children() []Node       { return []Node{me.Left, me.Right} }
func (me *MatchExpression) GetToken() *token.Token { return &me.Token }
func (me *MatchExpression) String() string {
	return "(" + me.Left.String() + " = " + me.Right.String() + ")"
}

type OperatorExpression struct {
	Token    token.Token
	Operator string
	Args     []Node
	// Set on guards synthesized by the boolean combinator macros; the case
	// clause rewrite fires only when it is present.
	BooleanOrigin bool
}

func (oe *OperatorExpression) Children() []Node       { return oe.Args }
func (oe *OperatorExpression) GetToken() *token.Token { return &oe.Token }
func (oe *OperatorExpression) String() string {
	if len(oe.Args) == 1 {
		return "(" + oe.Operator + " " + oe.Args[0].String() + ")"
	}
	return "(" + oe.Args[0].String() + " " + oe.Operator + " " + oe.Args[1].String() + ")"
}

type PairExpression struct {
	Token  token.Token
	First  Node
	Second Node
}

func (pe *PairExpression) Children() []Node       { return []Node{pe.First, pe.Second} }
func (pe *PairExpression) GetToken() *token.Token { return &pe.Token }
func (pe *PairExpression) String() string {
	return "{" + pe.First.String() + ", " + pe.Second.String() + "}"
}

type PinExpression struct {
	Token token.Token
	Inner *Identifier
}

func (pe *PinExpression) Children() []Node       { return []Node{pe.Inner} }
func (pe *PinExpression) GetToken() *token.Token { return &pe.Token }
func (pe *PinExpression) String() string         { return "^" + pe.Inner.Value }

type PlaceholderExpression struct {
	Token token.Token
	Index int
}

func (pe *PlaceholderExpression) Children() []Node       { return []Node{} }
func (pe *PlaceholderExpression) GetToken() *token.Token { return &pe.Token }
func (pe *PlaceholderExpression) String() string         { return fmt.Sprintf("&%d", pe.Index) }

type ReceiveExpression struct {
	Token   token.Token
	Clauses []*Clause
	// The 'after' section: a clause whose single pattern is the timeout
	// expression. Nil if there is no timeout.
	After *Clause
}

func (re *ReceiveExpression) Children() []Node {
	result := []Node{}
	for _, cl := range re.Clauses {
		result = append(result, cl)
	}
	if re.After != nil {
		result = append(result, re.After)
	}
	return result
}
func (re *ReceiveExpression) GetToken() *token.Token { return &re.Token }
func (re *ReceiveExpression) String() string {
	var out bytes.Buffer
	out.WriteString("receive do ")
	for i, cl := range re.Clauses {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(cl.String())
	}
	if re.After != nil {
		out.WriteString(" after ")
		out.WriteString(re.After.String())
	}
	out.WriteString(" end")
	return out.String()
}

type RemoteCall struct {
	Token    token.Token
	Target   Node
	Function string
	Args     []Node
}

func (rc *RemoteCall) Children() []Node       { return append([]Node{rc.Target}, rc.Args...) }
func (rc *RemoteCall) GetToken() *token.Token { return &rc.Token }
func (rc *RemoteCall) String() string {
	return rc.Target.String() + "." + rc.Function + "(" + describeArgs(rc.Args) + ")"
}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Children() []Node       { return []Node{} }
func (sl *StringLiteral) GetToken() *token.Token { return &sl.Token }
func (sl *StringLiteral) String() string         { return "\"" + sl.Value + "\"" }

type SuperExpression struct {
	Token token.Token
	Args  []Node
}

func (se *SuperExpression) Children() []Node       { return se.Args }
func (se *SuperExpression) GetToken() *token.Token { return &se.Token }
func (se *SuperExpression) String() string {
	return "super(" + describeArgs(se.Args) + ")"
}

type TryExpression struct {
	Token   token.Token
	Body    Node
	Catches []*Clause
	Else    []*Clause
	After   Node
}

func (te *TryExpression) Children() []Node {
	result := []Node{te.Body}
	for _, cl := range te.Catches {
		result = append(result, cl)
	}
	for _, cl := range te.Else {
		result = append(result, cl)
	}
	if te.After != nil {
		result = append(result, te.After)
	}
	return result
}
func (te *TryExpression) GetToken() *token.Token { return &te.Token }
func (te *TryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("try do ")
	out.WriteString(te.Body.String())
	if len(te.Catches) > 0 {
		out.WriteString(" catch ")
		for i, cl := range te.Catches {
			if i > 0 {
				out.WriteString("; ")
			}
			out.WriteString(cl.String())
		}
	}
	if len(te.Else) > 0 {
		out.WriteString(" else ")
		for i, cl := range te.Else {
			if i > 0 {
				out.WriteString("; ")
			}
			out.WriteString(cl.String())
		}
	}
	if te.After != nil {
		out.WriteString(" after ")
		out.WriteString(te.After.String())
	}
	out.WriteString(" end")
	return out.String()
}

type TupleExpression struct {
	Token    token.Token
	Elements []Node
}

func (te *TupleExpression) Children() []Node       { return te.Elements }
func (te *TupleExpression) GetToken() *token.Token { return &te.Token }
func (te *TupleExpression) String() string {
	return "{" + describeArgs(te.Elements) + "}"
}

// Other structures and functions.

type MapPair struct {
	Key   Node
	Value Node
}

type BitSegment struct {
	Value Node
	Size  Node   // Nil means the default size for the segment type.
	Type  string // "integer", "float", "binary", "bits", "utf8" ...
	Unit  int
}

func (bs *BitSegment) String() string {
	result := bs.Value.String()
	if bs.Size != nil {
		result = result + "::size(" + bs.Size.String() + ")"
	}
	if bs.Type != "" {
		result = result + "::" + bs.Type
	}
	return result
}

func describeArgs(args []Node) string {
	parts := []string{}
	for _, arg := range args {
		parts = append(parts, arg.String())
	}
	return strings.Join(parts, ", ")
}
