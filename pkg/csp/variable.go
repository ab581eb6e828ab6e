// This file defines decision variables. Variables carry only identity and an
// initial domain; current domains live in the Store so search can mutate and
// restore them without touching the model.
package csp

import "fmt"

// VarKind distinguishes puzzle letters from auxiliary carry variables.
// Both kinds participate identically in domains, constraints, and search;
// the kind only matters to callers decoding a solution.
type VarKind int

const (
	// KindLetter marks a variable standing for one puzzle letter.
	KindLetter VarKind = iota
	// KindCarry marks an auxiliary column-carry variable.
	KindCarry
)

// Variable is a decision variable in a constraint satisfaction problem.
// Identity is immutable after creation; variables are created through
// Model.NewVariable and are meaningful only within their model.
type Variable struct {
	id     int
	name   string
	kind   VarKind
	domain Domain // initial domain, seeds the Store
}

// ID returns the variable's unique identifier within its model.
func (v *Variable) ID() int { return v.id }

// Name returns the variable's name, e.g. a letter or carry label.
func (v *Variable) Name() string { return v.name }

// Kind reports whether this is a letter or a carry variable.
func (v *Variable) Kind() VarKind { return v.kind }

// InitialDomain returns the domain the variable starts with before any
// propagation or search.
func (v *Variable) InitialDomain() Domain { return v.domain }

// String returns a human-readable representation.
func (v *Variable) String() string {
	return fmt.Sprintf("%s%s", v.name, v.domain.String())
}
