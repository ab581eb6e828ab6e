// This file implements the domain store: the mutable per-variable candidate
// sets, with a trail of changes enabling O(changes) undo on backtrack.
package csp

// change records one domain overwrite for the undo trail.
type change struct {
	id   int
	prev Domain
}

// Store holds the current domain of every variable in a model, together with
// an undo trail. Search records a Snapshot before a tentative assignment and
// Restores it when abandoning the branch.
//
// A Store must not be shared between concurrent search branches; parallel
// workers each Clone their own.
type Store struct {
	domains []Domain
	trail   []change
}

// NewStore creates a store seeded from the model's initial variable domains.
func NewStore(m *Model) *Store {
	domains := make([]Domain, len(m.variables))
	for i, v := range m.variables {
		domains[i] = v.domain
	}
	return &Store{
		domains: domains,
		trail:   make([]change, 0, 256),
	}
}

// Clone returns an independent copy of the store's current domains.
// The clone starts with an empty trail.
func (s *Store) Clone() *Store {
	domains := make([]Domain, len(s.domains))
	copy(domains, s.domains)
	return &Store{
		domains: domains,
		trail:   make([]change, 0, 256),
	}
}

// Domain returns the variable's current candidate digits.
func (s *Store) Domain(v *Variable) Domain {
	return s.domains[v.id]
}

// setDomain overwrites a variable's domain, recording the previous value on
// the trail.
func (s *Store) setDomain(v *Variable, d Domain) {
	s.trail = append(s.trail, change{id: v.id, prev: s.domains[v.id]})
	s.domains[v.id] = d
}

// Remove removes a digit from a variable's domain. It reports whether the
// digit was present, and returns ErrDomainEmpty if the removal left the
// domain empty. An emptied domain is a branch failure, not a fatal error:
// the trail still records the change, so Restore recovers the prior state.
func (s *Store) Remove(v *Variable, digit int) (bool, error) {
	d := s.domains[v.id]
	if !d.Has(digit) {
		return false, nil
	}
	nd := d.Remove(digit)
	s.setDomain(v, nd)
	if nd.IsEmpty() {
		return true, ErrDomainEmpty
	}
	return true, nil
}

// Assign collapses a variable's domain to a single digit. Returns
// ErrInconsistent if the digit is not among the current candidates.
func (s *Store) Assign(v *Variable, digit int) error {
	d := s.domains[v.id]
	if !d.Has(digit) {
		return ErrInconsistent
	}
	if d.IsSingleton() {
		return nil
	}
	s.setDomain(v, DomainOf(d.Size(), digit))
	return nil
}

// Bound returns true if the variable has exactly one candidate left.
func (s *Store) Bound(v *Variable) bool {
	return s.domains[v.id].IsSingleton()
}

// Value returns the variable's single candidate digit.
// Panics if the variable is not bound.
func (s *Store) Value(v *Variable) int {
	return s.domains[v.id].SingletonValue()
}

// AllBound returns true if every variable has a singleton domain.
func (s *Store) AllBound() bool {
	for _, d := range s.domains {
		if !d.IsSingleton() {
			return false
		}
	}
	return true
}

// Snapshot returns a mark for the current trail position.
func (s *Store) Snapshot() int { return len(s.trail) }

// Restore undoes every domain change recorded since the mark.
func (s *Store) Restore(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		ch := s.trail[i]
		s.domains[ch.id] = ch.prev
	}
	s.trail = s.trail[:mark]
}
