package csp

import (
	"errors"
	"testing"
)

func newTestStore(t *testing.T, n, size int) (*Model, *Store, []*Variable) {
	t.Helper()
	m := NewModel()
	vars := make([]*Variable, n)
	for i := range vars {
		vars[i] = m.NewVariable(string(rune('A'+i)), KindLetter, FullDomain(size))
	}
	return m, NewStore(m), vars
}

func TestStoreSeedsInitialDomains(t *testing.T) {
	_, st, vars := newTestStore(t, 3, 10)
	for _, v := range vars {
		if !st.Domain(v).Equal(FullDomain(10)) {
			t.Errorf("Variable %s not seeded with its initial domain", v.Name())
		}
	}
}

func TestStoreRemoveAndRestore(t *testing.T) {
	_, st, vars := newTestStore(t, 1, 4)
	v := vars[0]

	mark := st.Snapshot()
	for _, digit := range []int{0, 2} {
		removed, err := st.Remove(v, digit)
		if !removed || err != nil {
			t.Fatalf("Remove(%d) = (%v, %v)", digit, removed, err)
		}
	}
	if !st.Domain(v).Equal(DomainOf(4, 1, 3)) {
		t.Errorf("Expected {1,3}, got %s", st.Domain(v))
	}

	// Removing an absent digit neither changes nor trails anything.
	removed, err := st.Remove(v, 0)
	if removed || err != nil {
		t.Errorf("Removing absent digit = (%v, %v)", removed, err)
	}

	st.Restore(mark)
	if !st.Domain(v).Equal(FullDomain(4)) {
		t.Errorf("Restore did not undo removals: %s", st.Domain(v))
	}
}

// Emptying a domain must still be undoable: the wipeout is trailed before
// the error is reported.
func TestStoreRemoveToEmpty(t *testing.T) {
	_, st, vars := newTestStore(t, 1, 2)
	v := vars[0]

	mark := st.Snapshot()
	if _, err := st.Remove(v, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	removed, err := st.Remove(v, 1)
	if !removed {
		t.Error("Expected the final digit to be removed")
	}
	if !errors.Is(err, ErrDomainEmpty) {
		t.Errorf("Expected ErrDomainEmpty, got %v", err)
	}
	if !st.Domain(v).IsEmpty() {
		t.Error("Expected an empty domain")
	}

	st.Restore(mark)
	if !st.Domain(v).Equal(FullDomain(2)) {
		t.Errorf("Restore did not undo the wipeout: %s", st.Domain(v))
	}
}

func TestStoreAssign(t *testing.T) {
	_, st, vars := newTestStore(t, 1, 10)
	v := vars[0]

	if err := st.Assign(v, 7); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !st.Bound(v) || st.Value(v) != 7 {
		t.Errorf("Expected %s bound to 7, got %s", v.Name(), st.Domain(v))
	}

	// Re-assigning the same digit is a no-op; a different digit conflicts.
	if err := st.Assign(v, 7); err != nil {
		t.Errorf("Re-assigning the bound digit: %v", err)
	}
	if err := st.Assign(v, 3); !errors.Is(err, ErrInconsistent) {
		t.Errorf("Expected ErrInconsistent, got %v", err)
	}
}

func TestStoreAssignAbsentDigit(t *testing.T) {
	_, st, vars := newTestStore(t, 1, 10)
	v := vars[0]
	if _, err := st.Remove(v, 4); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := st.Assign(v, 4); !errors.Is(err, ErrInconsistent) {
		t.Errorf("Expected ErrInconsistent, got %v", err)
	}
}

func TestStoreAllBound(t *testing.T) {
	_, st, vars := newTestStore(t, 2, 3)
	if st.AllBound() {
		t.Error("Fresh store should not be fully bound")
	}
	for i, v := range vars {
		if err := st.Assign(v, i); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if !st.AllBound() {
		t.Error("Expected all variables bound")
	}
}

// A clone shares no trail with its origin: pruning one side must not leak
// into the other.
func TestStoreCloneIsIndependent(t *testing.T) {
	_, st, vars := newTestStore(t, 1, 5)
	v := vars[0]

	clone := st.Clone()
	if _, err := clone.Remove(v, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !st.Domain(v).Equal(FullDomain(5)) {
		t.Error("Pruning the clone changed the original")
	}

	if _, err := st.Remove(v, 4); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !clone.Domain(v).Has(4) {
		t.Error("Pruning the original changed the clone")
	}
}
