package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"   // x, foo, acc, ...
	INT    = "int"     // 1343456
	FLOAT  = "float64" // 1.23
	ATOM   = "atom"    // :ok, :error, ...
	STRING = "string"  // "foo"

	LPAREN = "("
	RPAREN = ")"
	PIPE   = "|"
)

// A token records where a surface node came from. The expander attaches one
// to every node it produces, so by the time the kernel pass runs these are
// pure metadata: the pass only reads Line and Source for diagnostics.
//
// Counter is the hygiene counter. Two variables with the same Literal but
// different Counters were introduced by different macro-expansion sites and
// must not capture one another.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
	Counter int
}
