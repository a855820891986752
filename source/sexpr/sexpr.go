package sexpr

// A reader for quoted forms: the parenthesized textual rendering of the
// expanded surface tree. The real front end hands the kernel pass its trees
// directly; this reader exists so that the pass can be driven from the REPL
// and from tests without going through parsing and expansion.
//
// The shapes it accepts mirror the surface node kinds one to one:
//
//	42  3.5  "text"  :atom  x  _  x@2
//	(pin x) (pair a b) (tuple a b c) (list a b) (list a b | t)
//	(map (k v) ...) (bits (seg v) (seg v size type unit) ...)
//	(block e ...) (= pat e) (case subj clause ...)
//	(try e (catch clause ...) (else clause ...) (after e))
//	(receive clause ... (after timeout e ...))
//	(for qualifier ... yield) (bfor qualifier ... yield)
//	(<- pat source) (<= pat source)
//	(op name a b) (op~ name a b)
//	(call f a ...) (remote target f a ...) (dyn target a ...)
//	(capture f n) (placeholder n) (super a ...) (fn clause ...)
//
// where clause is (clause (pat ...) body ...) or
// (clause (pat ...) (when guard) body ...).

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/molt-lang/molt/source/ast"
	"github.com/molt-lang/molt/source/err"
	"github.com/molt-lang/molt/source/token"
)

// Read turns one quoted form into a surface node.
func Read(input, source string) (node ast.Node, readErr *err.Error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*err.Error)
			if !ok {
				panic(r)
			}
			node, readErr = nil, e
		}
	}()
	r := &reader{tokens: tokenize(input, source)}
	node = r.readForm(r.next())
	if trailing := r.next(); trailing.Type != token.EOF {
		throw("sexpr/trailing", &trailing, trailing.Literal)
	}
	return node, nil
}

// ReadAll turns a whole input, e.g. the contents of a file, into the
// sequence of surface nodes its forms denote.
func ReadAll(input, source string) (nodes []ast.Node, readErr *err.Error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*err.Error)
			if !ok {
				panic(r)
			}
			nodes, readErr = nil, e
		}
	}()
	r := &reader{tokens: tokenize(input, source)}
	for {
		tok := r.next()
		if tok.Type == token.EOF {
			return nodes, nil
		}
		nodes = append(nodes, r.readForm(tok))
	}
}

func throw(errorID string, tok *token.Token, args ...any) {
	panic(err.CreateErr(errorID, tok, args...))
}

type reader struct {
	tokens []token.Token
	pos    int
}

func (r *reader) next() token.Token {
	if r.pos >= len(r.tokens) {
		return r.tokens[len(r.tokens)-1]
	}
	tok := r.tokens[r.pos]
	r.pos++
	return tok
}

func (r *reader) peek() token.Token {
	if r.pos >= len(r.tokens) {
		return r.tokens[len(r.tokens)-1]
	}
	return r.tokens[r.pos]
}

// readForm reads the form starting at tok.
func (r *reader) readForm(tok token.Token) ast.Node {
	switch tok.Type {
	case token.INT:
		i, _ := strconv.Atoi(tok.Literal)
		return &ast.IntegerLiteral{Token: tok, Value: i}
	case token.FLOAT:
		f, _ := strconv.ParseFloat(tok.Literal, 64)
		return &ast.FloatLiteral{Token: tok, Value: f}
	case token.STRING:
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.ATOM:
		return &ast.AtomLiteral{Token: tok, Value: tok.Literal}
	case token.IDENT:
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case token.LPAREN:
		return r.readCompound(tok)
	case token.EOF:
		throw("sexpr/eof", &tok)
	}
	throw("sexpr/form", &tok, tok.Literal)
	return nil
}

func (r *reader) readCompound(open token.Token) ast.Node {
	head := r.next()
	if head.Type != token.IDENT {
		throw("sexpr/head", &head, head.Literal)
	}
	switch head.Literal {
	case "pin":
		inner, ok := r.readForm(r.next()).(*ast.Identifier)
		if !ok {
			throw("sexpr/form", &head, "pin")
		}
		r.expectClose(head)
		return &ast.PinExpression{Token: head, Inner: inner}
	case "pair":
		first := r.readForm(r.next())
		second := r.readForm(r.next())
		r.expectClose(head)
		return &ast.PairExpression{Token: head, First: first, Second: second}
	case "tuple":
		return &ast.TupleExpression{Token: head, Elements: r.readRest()}
	case "list":
		elements, tail := r.readListBody(head)
		return &ast.ListExpression{Token: head, Elements: elements, Tail: tail}
	case "map":
		return r.readMap(head)
	case "bits":
		return r.readBits(head)
	case "block":
		return &ast.BlockExpression{Token: head, Body: r.readRest()}
	case "=":
		left := r.readForm(r.next())
		right := r.readForm(r.next())
		r.expectClose(head)
		return &ast.MatchExpression{Token: head, Left: left, Right: right}
	case "case":
		subject := r.readForm(r.next())
		return &ast.CaseExpression{Token: head, Subject: subject, Clauses: r.readClauses(head)}
	case "try":
		return r.readTry(head)
	case "receive":
		return r.readReceive(head)
	case "for", "bfor":
		return &ast.ComprehensionExpression{Token: head, Binary: head.Literal == "bfor", Body: r.readRest()}
	case "<-", "<=":
		pattern := r.readForm(r.next())
		source := r.readForm(r.next())
		r.expectClose(head)
		return &ast.GeneratorExpression{Token: head, Binary: head.Literal == "<=", Pattern: pattern, Source: source}
	case "op", "op~":
		name := r.next()
		if name.Type != token.IDENT {
			throw("sexpr/head", &name, name.Literal)
		}
		return &ast.OperatorExpression{Token: name, Operator: name.Literal,
			Args: r.readRest(), BooleanOrigin: head.Literal == "op~"}
	case "call":
		name := r.next()
		if name.Type != token.IDENT {
			throw("sexpr/head", &name, name.Literal)
		}
		return &ast.LocalCall{Token: name, Function: name.Literal, Args: r.readRest()}
	case "remote":
		target := r.readForm(r.next())
		name := r.next()
		if name.Type != token.IDENT {
			throw("sexpr/head", &name, name.Literal)
		}
		return &ast.RemoteCall{Token: name, Target: target, Function: name.Literal, Args: r.readRest()}
	case "dyn":
		target := r.readForm(r.next())
		return &ast.DynamicCall{Token: head, Target: target, Args: r.readRest()}
	case "capture":
		name := r.next()
		arity := r.next()
		if name.Type != token.IDENT || arity.Type != token.INT {
			throw("sexpr/form", &head, "capture")
		}
		n, _ := strconv.Atoi(arity.Literal)
		r.expectClose(head)
		return &ast.CaptureExpression{Token: head, Function: name.Literal, Arity: n}
	case "placeholder":
		index := r.next()
		if index.Type != token.INT {
			throw("sexpr/form", &head, "placeholder")
		}
		n, _ := strconv.Atoi(index.Literal)
		r.expectClose(head)
		return &ast.PlaceholderExpression{Token: head, Index: n}
	case "super":
		return &ast.SuperExpression{Token: head, Args: r.readRest()}
	case "fn":
		return &ast.FnExpression{Token: head, Clauses: r.readClauses(head)}
	}
	throw("sexpr/head", &head, head.Literal)
	return nil
}

// readRest reads forms up to the closing paren of the current compound.
func (r *reader) readRest() []ast.Node {
	result := []ast.Node{}
	for {
		tok := r.next()
		if tok.Type == token.RPAREN {
			return result
		}
		if tok.Type == token.EOF {
			throw("sexpr/eof", &tok)
		}
		result = append(result, r.readForm(tok))
	}
}

func (r *reader) readListBody(head token.Token) ([]ast.Node, ast.Node) {
	elements := []ast.Node{}
	for {
		tok := r.next()
		switch tok.Type {
		case token.RPAREN:
			return elements, nil
		case token.PIPE:
			tail := r.readForm(r.next())
			r.expectClose(head)
			return elements, tail
		case token.EOF:
			throw("sexpr/eof", &tok)
		}
		elements = append(elements, r.readForm(tok))
	}
}

func (r *reader) readMap(head token.Token) ast.Node {
	pairs := []ast.MapPair{}
	for {
		tok := r.next()
		if tok.Type == token.RPAREN {
			return &ast.MapExpression{Token: head, Pairs: pairs}
		}
		if tok.Type != token.LPAREN {
			throw("sexpr/form", &tok, "map")
		}
		key := r.readForm(r.next())
		value := r.readForm(r.next())
		r.expectClose(tok)
		pairs = append(pairs, ast.MapPair{Key: key, Value: value})
	}
}

func (r *reader) readBits(head token.Token) ast.Node {
	segments := []*ast.BitSegment{}
	for {
		tok := r.next()
		if tok.Type == token.RPAREN {
			return &ast.BitstringExpression{Token: head, Segments: segments}
		}
		if tok.Type != token.LPAREN {
			throw("sexpr/form", &tok, "bits")
		}
		segHead := r.next()
		if segHead.Type != token.IDENT || segHead.Literal != "seg" {
			throw("sexpr/head", &segHead, segHead.Literal)
		}
		seg := &ast.BitSegment{Value: r.readForm(r.next())}
		if r.peek().Type != token.RPAREN {
			seg.Size = r.readForm(r.next())
		}
		if next := r.peek(); next.Type == token.IDENT {
			seg.Type = r.next().Literal
		}
		if next := r.peek(); next.Type == token.INT {
			unit, _ := strconv.Atoi(r.next().Literal)
			seg.Unit = unit
		}
		r.expectClose(tok)
		segments = append(segments, seg)
	}
}

func (r *reader) readClauses(head token.Token) []*ast.Clause {
	clauses := []*ast.Clause{}
	for {
		tok := r.next()
		if tok.Type == token.RPAREN {
			return clauses
		}
		if tok.Type != token.LPAREN {
			throw("sexpr/form", &tok, "clause")
		}
		clauses = append(clauses, r.readClause(tok))
	}
}

// readClause reads one (clause (pats ...) [(when guard)] body ...) form,
// whose opening paren has already been consumed.
func (r *reader) readClause(open token.Token) *ast.Clause {
	head := r.next()
	if head.Type != token.IDENT || head.Literal != "clause" {
		throw("sexpr/head", &head, head.Literal)
	}
	if patOpen := r.next(); patOpen.Type != token.LPAREN {
		throw("sexpr/form", &patOpen, "clause")
	}
	patterns := r.readRest()
	var guard ast.Node
	body := []ast.Node{}
	for {
		tok := r.next()
		if tok.Type == token.RPAREN {
			break
		}
		if tok.Type == token.LPAREN && r.peek().Type == token.IDENT && r.peek().Literal == "when" && guard == nil && len(body) == 0 {
			r.next()
			guard = r.readForm(r.next())
			r.expectClose(tok)
			continue
		}
		body = append(body, r.readForm(tok))
	}
	if len(body) == 0 {
		throw("sexpr/form", &head, "clause")
	}
	var bodyNode ast.Node
	if len(body) == 1 {
		bodyNode = body[0]
	} else {
		bodyNode = &ast.BlockExpression{Token: head, Body: body}
	}
	return &ast.Clause{Token: head, Patterns: patterns, Guard: guard, Body: bodyNode}
}

func (r *reader) readTry(head token.Token) ast.Node {
	result := &ast.TryExpression{Token: head}
	result.Body = r.readForm(r.next())
	for {
		tok := r.next()
		if tok.Type == token.RPAREN {
			return result
		}
		if tok.Type != token.LPAREN {
			throw("sexpr/form", &tok, "try")
		}
		section := r.next()
		if section.Type != token.IDENT {
			throw("sexpr/head", &section, section.Literal)
		}
		switch section.Literal {
		case "catch":
			result.Catches = r.readClauses(section)
		case "else":
			result.Else = r.readClauses(section)
		case "after":
			result.After = r.readForm(r.next())
			r.expectClose(section)
		default:
			throw("sexpr/head", &section, section.Literal)
		}
	}
}

func (r *reader) readReceive(head token.Token) ast.Node {
	result := &ast.ReceiveExpression{Token: head}
	for {
		tok := r.next()
		if tok.Type == token.RPAREN {
			return result
		}
		if tok.Type != token.LPAREN {
			throw("sexpr/form", &tok, "receive")
		}
		if r.peek().Type == token.IDENT && r.peek().Literal == "after" {
			afterTok := r.next()
			timeout := r.readForm(r.next())
			body := r.readRest()
			if len(body) == 0 {
				throw("sexpr/form", &afterTok, "after")
			}
			var bodyNode ast.Node
			if len(body) == 1 {
				bodyNode = body[0]
			} else {
				bodyNode = &ast.BlockExpression{Token: afterTok, Body: body}
			}
			result.After = &ast.Clause{Token: afterTok, Patterns: []ast.Node{timeout}, Body: bodyNode}
			continue
		}
		result.Clauses = append(result.Clauses, r.readClause(tok))
	}
}

func (r *reader) expectClose(head token.Token) {
	if tok := r.next(); tok.Type != token.RPAREN {
		throw("sexpr/paren", &tok, tok.Literal)
	}
}

// The tokenizer. Symbols may carry a hygiene counter written name@N.

func tokenize(input, source string) []token.Token {
	tokens := []token.Token{}
	line := 1
	runes := []rune(input)
	i := 0
	col := 0
	emit := func(ty token.TokenType, literal string, start int) {
		tokens = append(tokens, token.Token{
			Type: ty, Literal: literal, Line: line,
			ChStart: start, ChEnd: col, Source: source,
		})
	}
	for i < len(runes) {
		c := runes[i]
		start := col
		switch {
		case c == '\n':
			line++
			col = 0
			i++
		case unicode.IsSpace(c):
			i++
			col++
		case c == ';':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case c == '(':
			i++
			col++
			emit(token.LPAREN, "(", start)
		case c == ')':
			i++
			col++
			emit(token.RPAREN, ")", start)
		case c == '|':
			i++
			col++
			emit(token.PIPE, "|", start)
		case c == '"':
			i++
			col++
			var sb strings.Builder
			closed := false
			for i < len(runes) {
				c = runes[i]
				i++
				col++
				if c == '"' {
					closed = true
					break
				}
				if c == '\\' && i < len(runes) {
					c = unescape(runes[i])
					i++
					col++
				}
				sb.WriteRune(c)
			}
			if !closed {
				tok := token.Token{Type: token.EOF, Line: line, Source: source}
				tokens = append(tokens, tok)
				panic(err.CreateErr("sexpr/string", &tok))
			}
			emit(token.STRING, sb.String(), start)
		case c == ':' && i+1 < len(runes) && isSymbolRune(runes[i+1]):
			i++
			col++
			name := readSymbol(runes, &i, &col)
			emit(token.ATOM, name, start)
		case unicode.IsDigit(c), c == '-' && i+1 < len(runes) && unicode.IsDigit(runes[i+1]):
			literal, isFloat := readNumber(runes, &i, &col)
			if isFloat {
				emit(token.FLOAT, literal, start)
			} else {
				emit(token.INT, literal, start)
			}
		case isSymbolRune(c):
			name := readSymbol(runes, &i, &col)
			tok := token.Token{
				Type: token.IDENT, Literal: name, Line: line,
				ChStart: start, ChEnd: col, Source: source,
			}
			// 'x@2' is the variable x introduced at expansion site 2.
			if at := strings.LastIndex(name, "@"); at > 0 {
				if counter, convErr := strconv.Atoi(name[at+1:]); convErr == nil {
					tok.Literal = name[:at]
					tok.Counter = counter
				}
			}
			tokens = append(tokens, tok)
		default:
			tok := token.Token{Type: token.ILLEGAL, Literal: string(c), Line: line, ChStart: start, Source: source}
			tokens = append(tokens, tok)
			panic(err.CreateErr("sexpr/char", &tok, string(c)))
		}
	}
	tokens = append(tokens, token.Token{Type: token.EOF, Line: line, Source: source})
	return tokens
}

func readSymbol(runes []rune, i, col *int) string {
	var sb strings.Builder
	for *i < len(runes) && isSymbolRune(runes[*i]) {
		sb.WriteRune(runes[*i])
		(*i)++
		(*col)++
	}
	return sb.String()
}

func readNumber(runes []rune, i, col *int) (string, bool) {
	var sb strings.Builder
	isFloat := false
	if runes[*i] == '-' {
		sb.WriteRune('-')
		(*i)++
		(*col)++
	}
	for *i < len(runes) && (unicode.IsDigit(runes[*i]) || runes[*i] == '.') {
		if runes[*i] == '.' {
			if isFloat || *i+1 >= len(runes) || !unicode.IsDigit(runes[*i+1]) {
				break
			}
			isFloat = true
		}
		sb.WriteRune(runes[*i])
		(*i)++
		(*col)++
	}
	return sb.String(), isFloat
}

func isSymbolRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		strings.ContainsRune("_@~!?*+-/=<>.&^%#$", r)
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return r
}
