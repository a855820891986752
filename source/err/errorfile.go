package err

import (
	"fmt"
	"strings"

	"github.com/molt-lang/molt/source/token"
)

// A map from error identifiers to functions that supply the corresponding error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifiers.
//
// Two otherwise identical errors thrown in different places in the Go code must be assigned
// different identifiers, if only by suffixing /a, /b, etc to the identifier.

var ErrorCreatorMap = map[string]ErrorCreator{

	"lower/call/function": {
		Message: func(tok *token.Token, args ...any) string {
			return "undefined function " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A local call can only be made from inside a function definition, since the name " +
				"of the called function is resolved against the functions of the enclosing module."
		},
	},

	"lower/call/guard": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot invoke local function " + emph(args[0]) + " inside a guard"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Guards are restricted to a fixed set of predicates known to be free of side " +
				"effects. A call to a function you have defined yourself can never be one of them."
		},
	},

	"lower/call/guard/arity": {
		Message: func(tok *token.Token, args ...any) string {
			return "unknown variable " + emph(args[0]) + " or cannot invoke local function " + emph(fmt.Sprintf("%v/0", args[0])) + " inside a guard"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "This looks like either a variable that hasn't been bound, or a call to a " +
				"zero-argument function, which isn't allowed in a guard. Either way it can't be compiled."
		},
	},

	"lower/call/match": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot invoke function " + emph(args[0]) + " inside a match"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The left-hand side of a match is a pattern, and patterns are built out of " +
				"literals and variables. There is no point during matching at which a function could run."
		},
	},

	"lower/caller/context": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("__CALLER__") + " can only be used inside a function"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Caller information is synthesized per function clause, so there is nothing " +
				"for " + emph("__CALLER__") + " to refer to at the top level of a module."
		},
	},

	"lower/capture/placeholder": {
		Message: func(tok *token.Token, args ...any) string {
			return "unhandled placeholder " + emph(fmt.Sprintf("&%v", args[0])) + " outside of a capture"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Placeholders like " + emph("&1") + " only mean anything directly inside a " +
				emph("&(...)") + " capture. This one has no capture around it."
		},
	},

	"lower/comprehension/generator": {
		Message: func(tok *token.Token, args ...any) string {
			return "a binary generator expects a bit string pattern on its left-hand side"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A generator of the form " + emph("<<x>> <- data") + " deconstructs a bit " +
				"string, so the pattern to the left of the arrow must itself be written as a bit string."
		},
	},

	"lower/comprehension/yield": {
		Message: func(tok *token.Token, args ...any) string {
			return "expected bit string yield in binary comprehension"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A binary comprehension builds a bit string, so the expression it yields " +
				"for each element must be written as a bit string literal."
		},
	},

	"lower/internal": {
		Message: func(tok *token.Token, args ...any) string {
			return "kernel pass can't lower node of type " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The expander should never hand the kernel pass a node shaped like this. " +
				"This is a bug in the compiler, not in your program. Please report it."
		},
	},

	"lower/match/guard": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot use the match operator " + emph("=") + " inside a guard"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A guard is a predicate over values that are already bound. Binding new " +
				"variables is exactly what a guard must not do."
		},
	},

	"lower/pin/context": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot use " + emph("^"+fmt.Sprintf("%v", args[0])) + " outside of a match"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The pin operator says 'match against the value this variable already has'. " +
				"Outside of a pattern there is no match for it to take part in."
		},
	},

	"lower/pin/unbound": {
		Message: func(tok *token.Token, args ...any) string {
			return "unbound variable " + emph("^"+fmt.Sprintf("%v", args[0])) + " in pin"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The pin operator matches against the value a variable already has, so the " +
				"variable must have been given a value before the pattern is reached."
		},
	},

	"lower/receive/after": {
		Message: func(tok *token.Token, args ...any) string {
			return "malformed timeout clause in " + emph("receive")
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The " + emph("after") + " section of a " + emph("receive") + " block must " +
				"consist of a single timeout expression and a body."
		},
	},

	"lower/remote/guard": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot invoke remote function " + emph(fmt.Sprintf("%v.%v/%v", args[0], args[1], args[2])) + " inside a match or guard"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Only a fixed whitelist of built-in predicates may be called from inside a " +
				"pattern or a guard. Any other remote call could have side effects, which matching " +
				"must never have."
		},
	},

	"lower/super/arity": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("super") + " must be called with " + emph(fmt.Sprintf("%v", args[0])) + " arguments, the arity of " + emph(fmt.Sprintf("%v", args[1])) + ", but got " + emph(fmt.Sprintf("%v", args[2]))
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A " + emph("super") + " call redirects to the overridden definition of the " +
				"enclosing function, so it must take exactly as many arguments as that function declares."
		},
	},

	"lower/super/context": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("super") + " can only be called inside a function definition"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A " + emph("super") + " call redirects to the overridden definition of the " +
				"enclosing function, so it needs both an enclosing module and an enclosing function."
		},
	},

	"lower/super/undefined": {
		Message: func(tok *token.Token, args ...any) string {
			return "no overridable definition of " + emph(fmt.Sprintf("%v.%v", args[0], args[1])) + " for " + emph("super") + " to call"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "You can only call " + emph("super") + " in a function that overrides a " +
				"definition marked as overridable."
		},
	},

	"lower/wildcard": {
		Message: func(tok *token.Token, args ...any) string {
			return "unbound variable " + emph("_")
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The wildcard " + emph("_") + " discards a value during pattern matching. " +
				"It never holds a value, so it means nothing outside of a pattern."
		},
	},

	"sexpr/char": {
		Message: func(tok *token.Token, args ...any) string {
			return "unrecognized character " + emph(args[0]) + " in quoted form"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "This character can't begin any part of a quoted form. Perhaps a string is missing its quotes?"
		},
	},

	"sexpr/eof": {
		Message: func(tok *token.Token, args ...any) string {
			return "unexpected end of input in quoted form"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The form ended before its closing parenthesis. Count your brackets."
		},
	},

	"sexpr/form": {
		Message: func(tok *token.Token, args ...any) string {
			return "malformed " + emph(args[0]) + " form"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The form doesn't have the parts its head says it should have."
		},
	},

	"sexpr/head": {
		Message: func(tok *token.Token, args ...any) string {
			return "unrecognized form head " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The first thing inside a parenthesized form must name one of the surface node kinds."
		},
	},

	"sexpr/paren": {
		Message: func(tok *token.Token, args ...any) string {
			return "expected " + emph(")") + " but got " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The form has more parts than its head allows."
		},
	},

	"sexpr/string": {
		Message: func(tok *token.Token, args ...any) string {
			return "unterminated string in quoted form"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A string began but the input ended before its closing quote."
		},
	},

	"sexpr/trailing": {
		Message: func(tok *token.Token, args ...any) string {
			return "unexpected " + emph(args[0]) + " after the end of the form"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Each line of input must contain exactly one quoted form."
		},
	},

	"unknown": {
		Message: func(tok *token.Token, args ...any) string {
			return "unknown error identifier " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The compiler threw an error with an identifier it has no message for. " +
				"This is a bug in the compiler, not in your program. Please report it."
		},
	},
}

func emph(s any) string {
	if t, ok := s.(string); ok {
		s = strings.TrimSpace(t)
	}
	return fmt.Sprintf("'%v'", s)
}
