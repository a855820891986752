package kernel

// The kernel instruction tree: the low-level form consumed by the native
// code generator. Each instruction mirrors one target-VM construct, and each
// carries the source line it was lowered from so that runtime diagnostics
// can point somewhere useful.

import (
	"fmt"
	"strings"

	"github.com/molt-lang/molt/source/values"
)

type Instruction interface {
	GetLine() int
	String() string
}

// Instructions in alphabetical order. Shared structures are at the bottom.

type Binary struct {
	Line     int
	Segments []Segment
}

func (b *Binary) GetLine() int { return b.Line }
func (b *Binary) String() string {
	parts := []string{}
	for _, seg := range b.Segments {
		parts = append(parts, seg.String())
	}
	return "<<" + strings.Join(parts, ", ") + ">>"
}

type Block struct {
	Line int
	Body []Instruction
}

func (b *Block) GetLine() int { return b.Line }
func (b *Block) String() string {
	return "(block " + describeAll(b.Body) + ")"
}

type Case struct {
	Line    int
	Subject Instruction
	Clauses []Clause
}

func (c *Case) GetLine() int { return c.Line }
func (c *Case) String() string {
	return "(case " + c.Subject.String() + " " + describeClauses(c.Clauses) + ")"
}

type Comprehension struct {
	Line       int
	Binary     bool
	Qualifiers []Instruction
	Yield      Instruction
}

func (c *Comprehension) GetLine() int { return c.Line }
func (c *Comprehension) String() string {
	kind := "lc"
	if c.Binary {
		kind = "bc"
	}
	return "(" + kind + " " + describeAll(c.Qualifiers) + " yield " + c.Yield.String() + ")"
}

type Cons struct {
	Line int
	Head Instruction
	Tail Instruction
}

func (c *Cons) GetLine() int { return c.Line }
func (c *Cons) String() string {
	return "(cons " + c.Head.String() + " " + c.Tail.String() + ")"
}

type DynamicCall struct {
	Line   int
	Target Instruction
	Args   []Instruction
}

func (d *DynamicCall) GetLine() int { return d.Line }
func (d *DynamicCall) String() string {
	return "(apply " + d.Target.String() + " " + describeAll(d.Args) + ")"
}

type Fun struct {
	Line    int
	Clauses []Clause
}

func (f *Fun) GetLine() int { return f.Line }
func (f *Fun) String() string {
	return "(fun " + describeClauses(f.Clauses) + ")"
}

type Generate struct {
	Line    int
	Binary  bool
	Pattern Instruction
	Source  Instruction
}

func (g *Generate) GetLine() int { return g.Line }
func (g *Generate) String() string {
	arrow := "<-"
	if g.Binary {
		arrow = "<="
	}
	return "(" + g.Pattern.String() + " " + arrow + " " + g.Source.String() + ")"
}

type Literal struct {
	Line  int
	Value values.Value
}

func (l *Literal) GetLine() int   { return l.Line }
func (l *Literal) String() string { return l.Value.String() }

type LocalCall struct {
	Line     int
	Function string
	Args     []Instruction
}

func (l *LocalCall) GetLine() int { return l.Line }
func (l *LocalCall) String() string {
	return "(call " + l.Function + " " + describeAll(l.Args) + ")"
}

type MakeFun struct {
	Line     int
	Function string
	Arity    int
}

func (m *MakeFun) GetLine() int   { return m.Line }
func (m *MakeFun) String() string { return fmt.Sprintf("(make-fun %s/%d)", m.Function, m.Arity) }

type Map struct {
	Line   int
	Fields []MapField
}

func (m *Map) GetLine() int { return m.Line }
func (m *Map) String() string {
	parts := []string{}
	for _, field := range m.Fields {
		parts = append(parts, field.String())
	}
	return "(map " + strings.Join(parts, " ") + ")"
}

type Match struct {
	Line  int
	Left  Instruction
	Right Instruction
}

func (m *Match) GetLine() int { return m.Line }
func (m *Match) String() string {
	return "(match " + m.Left.String() + " " + m.Right.String() + ")"
}

type Nil struct {
	Line int
}

func (n *Nil) GetLine() int   { return n.Line }
func (n *Nil) String() string { return "nil" }

type Op struct {
	Line     int
	Operator string
	Args     []Instruction
}

func (o *Op) GetLine() int { return o.Line }
func (o *Op) String() string {
	return "(op " + o.Operator + " " + describeAll(o.Args) + ")"
}

type Receive struct {
	Line    int
	Clauses []Clause
	Timeout Instruction // Nil if the receive has no timeout.
	After   []Instruction
}

func (r *Receive) GetLine() int { return r.Line }
func (r *Receive) String() string {
	result := "(receive " + describeClauses(r.Clauses)
	if r.Timeout != nil {
		result = result + " after " + r.Timeout.String() + " " + describeAll(r.After)
	}
	return result + ")"
}

type RemoteCall struct {
	Line     int
	Target   Instruction
	Function string
	Args     []Instruction
}

func (r *RemoteCall) GetLine() int { return r.Line }
func (r *RemoteCall) String() string {
	return "(call-remote " + r.Target.String() + " " + r.Function + " " + describeAll(r.Args) + ")"
}

type Try struct {
	Line    int
	Body    []Instruction
	Catches []Clause
	Else    []Clause
	After   []Instruction
}

func (t *Try) GetLine() int { return t.Line }
func (t *Try) String() string {
	result := "(try " + describeAll(t.Body)
	if len(t.Catches) > 0 {
		result = result + " catch " + describeClauses(t.Catches)
	}
	if len(t.Else) > 0 {
		result = result + " else " + describeClauses(t.Else)
	}
	if len(t.After) > 0 {
		result = result + " after " + describeAll(t.After)
	}
	return result + ")"
}

type Tuple struct {
	Line     int
	Elements []Instruction
}

func (t *Tuple) GetLine() int { return t.Line }
func (t *Tuple) String() string {
	return "(tuple " + describeAll(t.Elements) + ")"
}

type Var struct {
	Line int
	Name string
}

func (v *Var) GetLine() int   { return v.Line }
func (v *Var) String() string { return v.Name }

// Shared structures.

// One clause of a case, fun, receive, or try instruction.
type Clause struct {
	Line     int
	Patterns []Instruction
	Guard    Instruction // Nil if the clause has no guard.
	Body     []Instruction
}

func (cl Clause) String() string {
	result := "(clause (" + describeAll(cl.Patterns) + ")"
	if cl.Guard != nil {
		result = result + " when " + cl.Guard.String()
	}
	return result + " " + describeAll(cl.Body) + ")"
}

// A map field either requires its key to match exactly (patterns, where the
// key must be bound or literal) or associates a computed key with a value
// (construction). The distinction changes how the VM matches, not just what
// the arguments are.
type MapField struct {
	Exact bool
	Key   Instruction
	Value Instruction
}

func (f MapField) String() string {
	arrow := "=>"
	if f.Exact {
		arrow = ":="
	}
	return "(" + f.Key.String() + " " + arrow + " " + f.Value.String() + ")"
}

type Segment struct {
	Value Instruction
	Size  Instruction // Nil means the default size for the segment type.
	Type  string
	Unit  int
}

func (s Segment) String() string {
	result := s.Value.String()
	if s.Size != nil {
		result = result + "::size(" + s.Size.String() + ")"
	}
	if s.Type != "" {
		result = result + "::" + s.Type
	}
	return result
}

func describeAll(instructions []Instruction) string {
	parts := []string{}
	for _, instr := range instructions {
		parts = append(parts, instr.String())
	}
	return strings.Join(parts, " ")
}

func describeClauses(clauses []Clause) string {
	parts := []string{}
	for _, cl := range clauses {
		parts = append(parts, cl.String())
	}
	return strings.Join(parts, " ")
}
