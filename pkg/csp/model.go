// This file defines the Model: the constraint graph of a CSP. A model holds
// the variables, the constraints over them, and an index from each variable
// to the constraints referencing it. Models are immutable during solving and
// may be shared read-only by parallel workers.
package csp

import (
	"errors"
	"fmt"
)

// Errors reported by the engine. Branch-local failures (empty domains,
// unsupported assignments) are expected during search and are always
// recovered by backtracking; they surface to callers only as an empty
// result set.
var (
	// ErrDomainEmpty reports that a removal left a variable with no
	// candidate digits.
	ErrDomainEmpty = errors.New("domain became empty")
	// ErrInconsistent reports an assignment or revision that contradicts the
	// current domains.
	ErrInconsistent = errors.New("constraint store is inconsistent")
	// ErrNodeBudget reports that search stopped because the configured node
	// budget was exhausted. Distinct from "no solution": the search space
	// was not fully explored.
	ErrNodeBudget = errors.New("search node budget exhausted")
)

// Model is a constraint satisfaction problem: decision variables with finite
// domains and the constraints restricting their joint assignments.
//
// Models are constructed incrementally and must not be modified once solving
// begins. All mutable state lives in Store instances, so a single Model is
// safe for concurrent use by any number of solvers.
type Model struct {
	variables   []*Variable
	constraints []Constraint

	// byVar indexes constraints by the variables they reference;
	// byVar[id] lists every constraint touching variable id.
	byVar [][]Constraint
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewVariable creates a variable with the given name, kind and initial
// domain, and adds it to the model.
func (m *Model) NewVariable(name string, kind VarKind, domain Domain) *Variable {
	v := &Variable{
		id:     len(m.variables),
		name:   name,
		kind:   kind,
		domain: domain,
	}
	m.variables = append(m.variables, v)
	m.byVar = append(m.byVar, nil)
	return v
}

// AddConstraint adds a constraint to the model and indexes it under each
// variable it references.
func (m *Model) AddConstraint(c Constraint) {
	m.constraints = append(m.constraints, c)
	for _, v := range c.Variables() {
		if v.id >= 0 && v.id < len(m.byVar) {
			m.byVar[v.id] = append(m.byVar[v.id], c)
		}
	}
}

// Variables returns all variables in creation order.
// The returned slice must not be modified.
func (m *Model) Variables() []*Variable { return m.variables }

// Constraints returns all constraints in insertion order.
// The returned slice must not be modified.
func (m *Model) Constraints() []Constraint { return m.constraints }

// ConstraintsOn returns the constraints referencing the variable.
func (m *Model) ConstraintsOn(v *Variable) []Constraint {
	if v == nil || v.id < 0 || v.id >= len(m.byVar) {
		return nil
	}
	return m.byVar[v.id]
}

// Degree returns the number of constraints referencing the variable, used by
// variable-selection heuristics.
func (m *Model) Degree(v *Variable) int {
	return len(m.ConstraintsOn(v))
}

// Validate checks that the model is well-formed: every variable has a
// non-empty initial domain and every constraint references only variables
// belonging to this model.
func (m *Model) Validate() error {
	for _, v := range m.variables {
		if v.domain.IsEmpty() {
			return fmt.Errorf("variable %s has empty initial domain", v.name)
		}
	}
	for _, c := range m.constraints {
		for _, v := range c.Variables() {
			if v.id < 0 || v.id >= len(m.variables) || m.variables[v.id] != v {
				return fmt.Errorf("constraint %s references unknown variable %q", c.Type(), v.name)
			}
		}
	}
	return nil
}

// String returns a short summary of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{variables: %d, constraints: %d}", len(m.variables), len(m.constraints))
}
