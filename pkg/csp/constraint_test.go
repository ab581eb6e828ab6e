package csp

import (
	"errors"
	"testing"
)

func TestNewAllDifferent(t *testing.T) {
	m := NewModel()
	a := m.NewVariable("A", KindLetter, FullDomain(10))
	b := m.NewVariable("B", KindLetter, FullDomain(10))

	if _, err := NewAllDifferent([]*Variable{a, b}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if _, err := NewAllDifferent([]*Variable{a}); err == nil {
		t.Error("Expected an error for a single variable")
	}
}

// A bound peer's digit loses support everywhere else.
func TestAllDifferentRevise(t *testing.T) {
	m := NewModel()
	a := m.NewVariable("A", KindLetter, FullDomain(10))
	b := m.NewVariable("B", KindLetter, FullDomain(10))
	c := m.NewVariable("C", KindLetter, FullDomain(10))
	ad, err := NewAllDifferent([]*Variable{a, b, c})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	m.AddConstraint(ad)

	st := NewStore(m)
	if err := st.Assign(a, 3); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	changed, err := ad.Revise(st, b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !changed {
		t.Error("Expected a domain change")
	}
	if st.Domain(b).Has(3) {
		t.Error("Digit 3 should have been pruned from B")
	}
	if st.Domain(b).Count() != 9 {
		t.Errorf("Expected 9 digits left, got %d", st.Domain(b).Count())
	}

	// Revising again finds nothing new.
	changed, err = ad.Revise(st, b)
	if err != nil || changed {
		t.Errorf("Second revision = (%v, %v), want no change", changed, err)
	}
}

// Fewer candidate digits than variables can never be completed.
func TestAllDifferentPigeonhole(t *testing.T) {
	m := NewModel()
	a := m.NewVariable("A", KindLetter, DomainOf(10, 1, 2))
	b := m.NewVariable("B", KindLetter, DomainOf(10, 1, 2))
	c := m.NewVariable("C", KindLetter, DomainOf(10, 1, 2))
	ad, err := NewAllDifferent([]*Variable{a, b, c})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	m.AddConstraint(ad)

	st := NewStore(m)
	if _, err := ad.Revise(st, a); !errors.Is(err, ErrInconsistent) {
		t.Errorf("Expected ErrInconsistent, got %v", err)
	}
}

func TestAllDifferentSatisfied(t *testing.T) {
	m := NewModel()
	a := m.NewVariable("A", KindLetter, FullDomain(10))
	b := m.NewVariable("B", KindLetter, FullDomain(10))
	ad, _ := NewAllDifferent([]*Variable{a, b})
	m.AddConstraint(ad)

	st := NewStore(m)
	if !ad.Satisfied(st) {
		t.Error("Unbound variables cannot violate AllDifferent")
	}
	st.Assign(a, 5)
	st.Assign(b, 5)
	if ad.Satisfied(st) {
		t.Error("Two variables bound to the same digit must violate AllDifferent")
	}
}

func TestNotValueRevise(t *testing.T) {
	m := NewModel()
	a := m.NewVariable("A", KindLetter, FullDomain(10))
	nv := NewNotValue(a, 0)
	m.AddConstraint(nv)

	st := NewStore(m)
	changed, err := nv.Revise(st, a)
	if err != nil || !changed {
		t.Fatalf("Revise = (%v, %v), want a change", changed, err)
	}
	if st.Domain(a).Has(0) {
		t.Error("Digit 0 should have been pruned")
	}
}

// With two addends fixed, the column forces both the result digit and the
// carry-out.
func TestLinearColumnForcesResult(t *testing.T) {
	m := NewModel()
	a := m.NewVariable("A", KindLetter, DomainOf(10, 9))
	b := m.NewVariable("B", KindLetter, DomainOf(10, 8))
	r := m.NewVariable("R", KindLetter, FullDomain(10))
	cin := m.NewVariable("cin", KindCarry, DomainOf(1, 0))
	cout := m.NewVariable("cout", KindCarry, FullDomain(2))

	col, err := NewLinearColumn([]*Variable{a, b}, cin, r, cout, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	m.AddConstraint(col)

	st := NewStore(m)
	if _, err := col.Revise(st, r); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := col.Revise(st, cout); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 9 + 8 + 0 = 17 = 7 + 10*1
	if !st.Domain(r).Equal(DomainOf(10, 7)) {
		t.Errorf("Expected R forced to {7}, got %s", st.Domain(r))
	}
	if !st.Domain(cout).Equal(DomainOf(2, 1)) {
		t.Errorf("Expected carry-out forced to {1}, got %s", st.Domain(cout))
	}
}

// 9 + 9 with no carry-out cannot balance; the revision must wipe the result
// domain and surface the failure.
func TestLinearColumnUnsatisfiable(t *testing.T) {
	m := NewModel()
	a := m.NewVariable("A", KindLetter, DomainOf(10, 9))
	b := m.NewVariable("B", KindLetter, DomainOf(10, 9))
	r := m.NewVariable("R", KindLetter, FullDomain(10))
	cin := m.NewVariable("cin", KindCarry, DomainOf(1, 0))
	cout := m.NewVariable("cout", KindCarry, DomainOf(1, 0))

	col, err := NewLinearColumn([]*Variable{a, b}, cin, r, cout, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	m.AddConstraint(col)

	st := NewStore(m)
	if _, err := col.Revise(st, r); !errors.Is(err, ErrDomainEmpty) {
		t.Errorf("Expected ErrDomainEmpty, got %v", err)
	}
}

// A letter occupying two addend slots of the same column contributes with a
// merged coefficient rather than appearing twice.
func TestLinearColumnMergesRepeatedLetters(t *testing.T) {
	m := NewModel()
	a := m.NewVariable("A", KindLetter, DomainOf(10, 4))
	r := m.NewVariable("R", KindLetter, FullDomain(10))
	cin := m.NewVariable("cin", KindCarry, DomainOf(1, 0))
	cout := m.NewVariable("cout", KindCarry, FullDomain(2))

	col, err := NewLinearColumn([]*Variable{a, a}, cin, r, cout, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(col.Variables()) != 4 {
		t.Fatalf("Expected 4 distinct variables after merging, got %d", len(col.Variables()))
	}
	m.AddConstraint(col)

	st := NewStore(m)
	if _, err := col.Revise(st, r); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// 4 + 4 + 0 = 8, no carry.
	if !st.Domain(r).Equal(DomainOf(10, 8)) {
		t.Errorf("Expected R forced to {8}, got %s", st.Domain(r))
	}
}

func TestLinearColumnSatisfied(t *testing.T) {
	m := NewModel()
	a := m.NewVariable("A", KindLetter, FullDomain(10))
	b := m.NewVariable("B", KindLetter, FullDomain(10))
	r := m.NewVariable("R", KindLetter, FullDomain(10))
	cin := m.NewVariable("cin", KindCarry, DomainOf(1, 0))
	cout := m.NewVariable("cout", KindCarry, FullDomain(2))
	col, err := NewLinearColumn([]*Variable{a, b}, cin, r, cout, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	m.AddConstraint(col)

	st := NewStore(m)
	if !col.Satisfied(st) {
		t.Error("Partially bound column cannot be violated yet")
	}
	st.Assign(a, 5)
	st.Assign(b, 6)
	st.Assign(r, 1)
	st.Assign(cout, 1)
	if !col.Satisfied(st) {
		t.Error("5 + 6 + 0 = 1 + 10*1 should satisfy the column")
	}

	st2 := NewStore(m)
	st2.Assign(a, 5)
	st2.Assign(b, 6)
	st2.Assign(r, 2)
	st2.Assign(cout, 1)
	if col.Satisfied(st2) {
		t.Error("5 + 6 + 0 != 2 + 10*1 must violate the column")
	}
}
