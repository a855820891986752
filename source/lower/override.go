package lower

// The table-backed override registry. The module compiler registers a
// definition here when it sees a redefinition of an overridable function;
// super lowering asks it whether a redirect target exists and what the
// overridden definition is now called.

import (
	"fmt"

	"github.com/molt-lang/molt/source/kernel"
)

type overrideKey struct {
	module   string
	function kernel.FuncID
}

type OverrideTable struct {
	targets map[overrideKey]string
	// How many times each function has been overridden; each renaming of
	// the displaced definition must be distinct.
	generations map[overrideKey]int
}

func NewOverrideTable() *OverrideTable {
	return &OverrideTable{
		targets:     map[overrideKey]string{},
		generations: map[overrideKey]int{},
	}
}

// Define records that an overridable definition of the function has been
// displaced by a newer one, and returns the synthesized name the displaced
// definition is kept under.
func (t *OverrideTable) Define(module string, function kernel.FuncID) string {
	key := overrideKey{module, function}
	t.generations[key]++
	target := fmt.Sprintf("%s@override~%d", function.Function, t.generations[key])
	t.targets[key] = target
	return target
}

func (t *OverrideTable) IsDefined(module string, function kernel.FuncID) bool {
	_, ok := t.targets[overrideKey{module, function}]
	return ok
}

func (t *OverrideTable) TargetName(module string, function kernel.FuncID) string {
	return t.targets[overrideKey{module, function}]
}
