// This file implements the closed set of constraint variants. Constraints
// are stateless beyond the variables they reference: they read and prune
// domains only through the Store handed to Revise, so a single constraint
// instance serves every search branch.
package csp

import (
	"fmt"
	"math/bits"
	"strings"
)

// Constraint restricts the joint values of the variables it references.
//
// Revise removes digits from v's domain that have no supporting combination
// of values in the domains of the constraint's other variables. It reports
// whether any digit was removed; an emptied domain surfaces as ErrDomainEmpty.
//
// Satisfied reports whether the constraint holds under the store's current
// domains. Constraints with unbound variables are not yet violated, so
// Satisfied returns true for them unless the bound subset already conflicts.
type Constraint interface {
	Variables() []*Variable
	Type() string
	String() string
	Revise(st *Store, v *Variable) (bool, error)
	Satisfied(st *Store) bool
}

// AllDifferent requires all of its variables to take distinct digits.
//
// Revision is pairwise: a digit loses support once a peer is bound to it.
// A pigeonhole check fails fast when fewer candidate digits remain across
// all domains than there are variables, in which case no complete
// assignment can exist.
type AllDifferent struct {
	variables []*Variable
}

// NewAllDifferent creates an AllDifferent constraint over the variables.
func NewAllDifferent(variables []*Variable) (*AllDifferent, error) {
	if len(variables) < 2 {
		return nil, fmt.Errorf("AllDifferent requires at least two variables")
	}
	varsCopy := make([]*Variable, len(variables))
	copy(varsCopy, variables)
	return &AllDifferent{variables: varsCopy}, nil
}

// Variables implements Constraint.
func (c *AllDifferent) Variables() []*Variable { return c.variables }

// Type implements Constraint.
func (c *AllDifferent) Type() string { return "AllDifferent" }

// String implements Constraint.
func (c *AllDifferent) String() string {
	names := make([]string, len(c.variables))
	for i, v := range c.variables {
		names[i] = v.name
	}
	return fmt.Sprintf("AllDifferent(%s)", strings.Join(names, ","))
}

// Revise implements Constraint. It removes from v's domain every digit a
// peer variable is already bound to.
func (c *AllDifferent) Revise(st *Store, v *Variable) (bool, error) {
	// Pigeonhole: fewer candidate digits than variables means failure
	// regardless of how search proceeds.
	var union uint64
	for _, w := range c.variables {
		union |= st.Domain(w).bits
	}
	if bits.OnesCount64(union) < len(c.variables) {
		return false, fmt.Errorf("AllDifferent: %d candidate digits for %d variables: %w",
			bits.OnesCount64(union), len(c.variables), ErrInconsistent)
	}

	changed := false
	for _, w := range c.variables {
		if w == v || !st.Bound(w) {
			continue
		}
		removed, err := st.Remove(v, st.Value(w))
		if removed {
			changed = true
		}
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// Satisfied implements Constraint: no two bound variables share a digit.
func (c *AllDifferent) Satisfied(st *Store) bool {
	var seen uint64
	for _, w := range c.variables {
		if !st.Bound(w) {
			continue
		}
		bit := uint64(1) << uint(st.Value(w))
		if seen&bit != 0 {
			return false
		}
		seen |= bit
	}
	return true
}

// NotValue excludes a single digit from one variable's domain. Compiled for
// leading letters with the digit 0.
type NotValue struct {
	variable *Variable
	value    int
}

// NewNotValue creates a constraint excluding value from the variable.
func NewNotValue(v *Variable, value int) *NotValue {
	return &NotValue{variable: v, value: value}
}

// Variables implements Constraint.
func (c *NotValue) Variables() []*Variable { return []*Variable{c.variable} }

// Type implements Constraint.
func (c *NotValue) Type() string { return "NotValue" }

// String implements Constraint.
func (c *NotValue) String() string {
	return fmt.Sprintf("%s != %d", c.variable.name, c.value)
}

// Revise implements Constraint.
func (c *NotValue) Revise(st *Store, v *Variable) (bool, error) {
	if v != c.variable {
		return false, nil
	}
	return st.Remove(v, c.value)
}

// Satisfied implements Constraint.
func (c *NotValue) Satisfied(st *Store) bool {
	return !st.Bound(c.variable) || st.Value(c.variable) != c.value
}

// LinearColumn enforces one column of the columnar addition:
//
//	Σ addends + carryIn = result + base·carryOut
//
// Internally the equation is normalized to Σ coef·var = 0 with net
// coefficients, so a letter occupying several slots of the same column
// (including the result slot) appears once. Revision is support-based and
// exact: a digit survives only if some combination of values from the other
// domains balances the equation, with interval pruning cutting the support
// search. When all variables but one are fixed, the remaining one is forced.
type LinearColumn struct {
	vars  []*Variable
	coefs []int
	label string
}

// NewLinearColumn creates the column constraint for the given addend
// letters, carry-in, result letter and carry-out. addends may be empty for
// columns above the longest term, where only the carry chain constrains the
// result digit.
func NewLinearColumn(addends []*Variable, carryIn, result, carryOut *Variable, base int) (*LinearColumn, error) {
	if base < 2 {
		return nil, fmt.Errorf("LinearColumn: base %d out of range", base)
	}
	if carryIn == nil || result == nil || carryOut == nil {
		return nil, fmt.Errorf("LinearColumn: carry and result variables are required")
	}

	c := &LinearColumn{}
	add := func(v *Variable, coef int) {
		for i, w := range c.vars {
			if w == v {
				c.coefs[i] += coef
				return
			}
		}
		c.vars = append(c.vars, v)
		c.coefs = append(c.coefs, coef)
	}
	for _, v := range addends {
		add(v, 1)
	}
	add(carryIn, 1)
	add(result, -1)
	add(carryOut, -base)

	// Drop variables whose contributions cancelled out.
	vars := c.vars[:0]
	coefs := c.coefs[:0]
	for i, v := range c.vars {
		if c.coefs[i] != 0 {
			vars = append(vars, v)
			coefs = append(coefs, c.coefs[i])
		}
	}
	c.vars = vars
	c.coefs = coefs

	lhs := make([]string, 0, len(addends)+1)
	for _, v := range addends {
		lhs = append(lhs, v.name)
	}
	lhs = append(lhs, carryIn.name)
	c.label = fmt.Sprintf("%s = %s+%d*%s", strings.Join(lhs, "+"), result.name, base, carryOut.name)
	return c, nil
}

// Variables implements Constraint.
func (c *LinearColumn) Variables() []*Variable { return c.vars }

// Type implements Constraint.
func (c *LinearColumn) Type() string { return "LinearColumn" }

// String implements Constraint.
func (c *LinearColumn) String() string { return fmt.Sprintf("LinearColumn(%s)", c.label) }

// Revise implements Constraint: every digit of v must participate in at
// least one combination of candidate values balancing the column equation.
func (c *LinearColumn) Revise(st *Store, v *Variable) (bool, error) {
	self := -1
	for i, w := range c.vars {
		if w == v {
			self = i
			break
		}
	}
	if self < 0 {
		return false, nil
	}

	var unsupported []int
	for w := st.Domain(v).bits; w != 0; w &^= w & -w {
		digit := bits.TrailingZeros64(w)
		if !c.supported(st, self, digit) {
			unsupported = append(unsupported, digit)
		}
	}

	changed := false
	for _, digit := range unsupported {
		removed, err := st.Remove(v, digit)
		if removed {
			changed = true
		}
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// supported reports whether fixing c.vars[self] to value leaves the column
// equation satisfiable from the remaining domains. Depth-first over the
// other variables with interval pruning: a partial sum is abandoned as soon
// as the residual target falls outside the reachable range of the suffix.
func (c *LinearColumn) supported(st *Store, self, value int) bool {
	target := -c.coefs[self] * value

	others := make([]int, 0, len(c.vars)-1)
	for i := range c.vars {
		if i != self {
			others = append(others, i)
		}
	}

	// Suffix bounds on the reachable contribution of others[k:].
	lo := make([]int, len(others)+1)
	hi := make([]int, len(others)+1)
	for k := len(others) - 1; k >= 0; k-- {
		i := others[k]
		d := st.Domain(c.vars[i])
		if d.IsEmpty() {
			return false
		}
		minC := c.coefs[i] * d.Min()
		maxC := c.coefs[i] * d.Max()
		if minC > maxC {
			minC, maxC = maxC, minC
		}
		lo[k] = lo[k+1] + minC
		hi[k] = hi[k+1] + maxC
	}

	var walk func(k, acc int) bool
	walk = func(k, acc int) bool {
		if k == len(others) {
			return acc == target
		}
		rest := target - acc
		if rest < lo[k] || rest > hi[k] {
			return false
		}
		i := others[k]
		coef := c.coefs[i]
		for w := st.Domain(c.vars[i]).bits; w != 0; w &^= w & -w {
			digit := bits.TrailingZeros64(w)
			if walk(k+1, acc+coef*digit) {
				return true
			}
		}
		return false
	}
	return walk(0, 0)
}

// Satisfied implements Constraint: with every variable bound the equation
// must balance exactly.
func (c *LinearColumn) Satisfied(st *Store) bool {
	sum := 0
	for i, v := range c.vars {
		if !st.Bound(v) {
			return true
		}
		sum += c.coefs[i] * st.Value(v)
	}
	return sum == 0
}
