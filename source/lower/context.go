package lower

// How the kernel pass keeps track of where it is: which variables are bound,
// whether it is lowering ordinary code, a pattern, or a guard, and what has
// been requested of the surrounding compiler. A Context is a value; it is
// threaded through the recursive descent and copied where two
// sub-translations must not see each other's bindings. One fresh Context is
// made per function clause and none outlives the clause it was made for.

import (
	"fmt"

	"github.com/molt-lang/molt/source/kernel"
)

type Mode int

const (
	ORDINARY Mode = iota
	MATCH
	GUARD
	// The pattern mode of anonymous-function clauses, where a pinned
	// reference cannot reuse an outer binding directly and must instead
	// bind fresh and compare.
	GUARD_ANON
)

func isMatchMode(m Mode) bool {
	return m == MATCH || m == GUARD_ANON
}

func isGuardMode(m Mode) bool {
	return m == GUARD
}

type varKey struct {
	name    string
	counter int // The hygiene counter of the macro-expansion site, 0 for user-written variables.
}

type varEntry struct {
	ident   string
	version int // Bumped each time a binding construct shadows the name.
}

type Context struct {
	Vars   map[varKey]varEntry
	Backup map[varKey]varEntry // Snapshot of Vars taken on entering a match; what '^' resolves against.
	Mode   Mode

	Module   string         // "" means top level.
	Function *kernel.FuncID // Nil means top level.

	// Side-conditions accumulated by pinned references in anonymous-function
	// patterns, drained into the clause guard by the clause assembler.
	ExtraGuards []kernel.Instruction

	Counter int // Monotonic; used for synthetic names and shadowing versions.

	NoName          bool // Suppresses shadowing while a try body is lowered, so names stay stable across its sections.
	CallerRequested bool
	SuperCalled     bool
}

func NewContext(module string, function *kernel.FuncID) Context {
	return Context{
		Vars:   map[varKey]varEntry{},
		Backup: map[varKey]varEntry{},
		Module: module, Function: function,
	}
}

func copyVars(vars map[varKey]varEntry) map[varKey]varEntry {
	result := make(map[varKey]varEntry, len(vars))
	for k, v := range vars {
		result[k] = v
	}
	return result
}

// branch returns a context that can be mutated without the original seeing
// it, for sub-translations that evaluate independently.
func (c Context) branch() Context {
	c.Vars = copyVars(c.Vars)
	return c
}

func varIdent(name string, counter, version int) string {
	s := name
	if counter != 0 {
		s = fmt.Sprintf("%s@%d", s, counter)
	}
	if version != 0 {
		s = fmt.Sprintf("%s~%d", s, version)
	}
	return s
}

// newTemp mints a synthetic variable no user-written name can collide with.
func (c Context) newTemp(line int) (*kernel.Var, Context) {
	c.Counter++
	return &kernel.Var{Line: line, Name: fmt.Sprintf("_kernel@%d", c.Counter)}, c
}

// The three merge policies.

// mergeVars reconciles two contexts whose sub-translations ran against the
// same base: bindings agreed on are kept, bindings made on one side only are
// propagated, and where the sides disagree the younger binding wins. The
// counter advances to the higher side so later names cannot collide.
func mergeVars(left, right Context) Context {
	out := left
	out.Vars = copyVars(left.Vars)
	for k, rv := range right.Vars {
		lv, ok := out.Vars[k]
		if !ok || rv.version > lv.version {
			out.Vars[k] = rv
		}
	}
	if right.Counter > out.Counter {
		out.Counter = right.Counter
	}
	if len(right.ExtraGuards) > 0 {
		merged := append([]kernel.Instruction{}, left.ExtraGuards...)
		for _, g := range right.ExtraGuards {
			if !containsInstruction(merged, g) {
				merged = append(merged, g)
			}
		}
		out.ExtraGuards = merged
	}
	out.CallerRequested = out.CallerRequested || right.CallerRequested
	out.SuperCalled = out.SuperCalled || right.SuperCalled
	return out
}

func containsInstruction(instructions []kernel.Instruction, instr kernel.Instruction) bool {
	for _, have := range instructions {
		if have == instr {
			return true
		}
	}
	return false
}

// mergeCounters combines only the bookkeeping of the right context into the
// left: counters and flags, never variable visibility. Used where a
// sub-translation's bindings go out of scope, e.g. the sections of a try.
func mergeCounters(left, right Context) Context {
	out := left
	if right.Counter > out.Counter {
		out.Counter = right.Counter
	}
	out.CallerRequested = out.CallerRequested || right.CallerRequested
	out.SuperCalled = out.SuperCalled || right.SuperCalled
	return out
}

// Strictly sequential composition needs no merge function: the context
// returned by the later translation supersedes the earlier one, since
// everything the earlier one bound is already visible in it.
