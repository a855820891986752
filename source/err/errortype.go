package err

import (
	"github.com/molt-lang/molt/source/text"
	"github.com/molt-lang/molt/source/token"
)

// The 'error' type.
type Error struct {
	ErrorId string
	Message string
	Args    []any
	Trace   []*token.Token
	Token   *token.Token
}

type Errors = []*Error

type ErrorCreator struct {
	Message     func(tok *token.Token, args ...any) string
	Explanation func(errors Errors, pos int, tok *token.Token, args ...any) string
}

func (e *Error) AddToTrace(tok *token.Token) {
	e.Trace = append(e.Trace, tok)
}

func CreateErr(errorID string, tok *token.Token, args ...any) *Error {
	errorCreator, ok := ErrorCreatorMap[errorID]
	if !ok {
		errorCreator = ErrorCreatorMap["unknown"]
		args = []any{errorID}
		errorID = "unknown"
	}
	return &Error{
		ErrorId: errorID,
		Message: errorCreator.Message(tok, args...),
		Args:    args,
		Token:   tok,
		Trace:   []*token.Token{tok},
	}
}

// Explain gives the long-form explanation of an error. CreateErr normalizes
// unrecognized identifiers, so the map lookup always succeeds.
func Explain(e *Error) string {
	creator := ErrorCreatorMap[e.ErrorId]
	return creator.Explanation(Errors{e}, 0, e.Token, e.Args...)
}

func Throw(errorID string, errors Errors, tok *token.Token, args ...any) Errors {
	return append(errors, CreateErr(errorID, tok, args...))
}

func GetList(errors Errors) string {
	result := "\n"
	for _, e := range errors {
		result = result + text.BULLET + e.Message + text.DescribePos(e.Token) + ".\n"
	}
	return result + "\n"
}
