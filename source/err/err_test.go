package err

import (
	"strings"
	"testing"

	"github.com/molt-lang/molt/source/token"
)

func TestCreateErr(t *testing.T) {
	tok := &token.Token{Line: 3, Source: "test.molt"}
	e := CreateErr("lower/pin/unbound", tok, "x")
	if e.ErrorId != "lower/pin/unbound" {
		t.Fatalf("got error id %s", e.ErrorId)
	}
	if !strings.Contains(e.Message, "'^x'") {
		t.Fatalf("message doesn't name the variable: %s", e.Message)
	}
	if e.Token != tok || len(e.Trace) != 1 {
		t.Fatalf("token not recorded")
	}
}

// An unrecognized identifier must degrade to the 'unknown' error rather
// than crash: a typo in a throw site mustn't take the compiler down.
func TestUnknownIdentifier(t *testing.T) {
	tok := &token.Token{Line: 1, Source: "test.molt"}
	e := CreateErr("lower/no/such/error", tok)
	if e.ErrorId != "unknown" {
		t.Fatalf("got error id %s", e.ErrorId)
	}
	if !strings.Contains(e.Message, "lower/no/such/error") {
		t.Fatalf("message doesn't name the bad identifier: %s", e.Message)
	}
}

func TestThrowAccumulates(t *testing.T) {
	tok := &token.Token{Line: 1, Source: "test.molt"}
	var errors Errors
	errors = Throw("lower/wildcard", errors, tok)
	errors = Throw("lower/pin/unbound", errors, tok, "x")
	if len(errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errors))
	}
	list := GetList(errors)
	if !strings.Contains(list, "unbound variable") || !strings.Contains(list, "line 1") {
		t.Fatalf("error list renders badly: %s", list)
	}
}

// Every creator must survive being called, message and explanation both, so
// a throw can never die inside the error system itself.
func TestAllCreatorsTotal(t *testing.T) {
	tok := &token.Token{Line: 1, Source: "test.molt"}
	args := []any{"a", "b", "c", "d"}
	for id, creator := range ErrorCreatorMap {
		if msg := creator.Message(tok, args...); msg == "" {
			t.Fatalf("error %s has an empty message", id)
		}
		if expl := creator.Explanation(Errors{}, 0, tok, args...); expl == "" {
			t.Fatalf("error %s has an empty explanation", id)
		}
	}
}
