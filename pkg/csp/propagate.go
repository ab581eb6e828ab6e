// This file implements the AC-3 style propagator. The worklist holds
// (constraint, variable) pairs to revise; any successful revision re-enqueues
// the pairs of every constraint sharing the revised variable, so pruning runs
// to a fixpoint. An emptied domain aborts propagation immediately.
package csp

// arc is one pending revision: constraint index paired with variable id.
type arc struct {
	c int
	v int
}

// Propagator prunes domains until no constraint can remove another digit.
// Reaching the fixpoint does not guarantee a solution exists; it only makes
// every remaining digit locally supported, so search is still required.
//
// A Propagator holds reusable worklist buffers and must not be shared
// between concurrent searches.
type Propagator struct {
	model   *Model
	cindex  map[Constraint]int
	queue   []arc
	pending map[arc]bool

	// revisions counts Revise calls, for search statistics.
	revisions int64
}

// NewPropagator creates a propagator for the model.
func NewPropagator(m *Model) *Propagator {
	cindex := make(map[Constraint]int, len(m.constraints))
	for i, c := range m.constraints {
		cindex[c] = i
	}
	return &Propagator{
		model:   m,
		cindex:  cindex,
		queue:   make([]arc, 0, 128),
		pending: make(map[arc]bool, 128),
	}
}

// Propagate revises every (constraint, variable) pair to a fixpoint.
// Used once at the root before search begins.
func (p *Propagator) Propagate(st *Store) error {
	p.reset()
	for ci, c := range p.model.constraints {
		for _, v := range c.Variables() {
			p.push(arc{c: ci, v: v.id})
		}
	}
	return p.run(st)
}

// PropagateFrom revises the pairs of every constraint touching v, to a
// fixpoint. Used after each tentative assignment during search.
func (p *Propagator) PropagateFrom(st *Store, v *Variable) error {
	p.reset()
	for _, c := range p.model.ConstraintsOn(v) {
		ci := p.cindex[c]
		for _, w := range c.Variables() {
			p.push(arc{c: ci, v: w.id})
		}
	}
	return p.run(st)
}

func (p *Propagator) reset() {
	p.queue = p.queue[:0]
	for a := range p.pending {
		delete(p.pending, a)
	}
}

func (p *Propagator) push(a arc) {
	if p.pending[a] {
		return
	}
	p.pending[a] = true
	p.queue = append(p.queue, a)
}

// run drains the worklist. On failure the worklist state is discarded; the
// caller restores domains through the store trail.
func (p *Propagator) run(st *Store) error {
	for len(p.queue) > 0 {
		a := p.queue[0]
		p.queue = p.queue[1:]
		delete(p.pending, a)

		c := p.model.constraints[a.c]
		v := p.model.variables[a.v]

		p.revisions++
		changed, err := c.Revise(st, v)
		if err != nil {
			return err
		}
		if !changed {
			continue
		}

		// v's domain shrank: every constraint sharing v may now prune
		// digits from its other variables.
		for _, c2 := range p.model.ConstraintsOn(v) {
			ci := p.cindex[c2]
			for _, w := range c2.Variables() {
				if w == v {
					continue
				}
				p.push(arc{c: ci, v: w.id})
			}
		}
	}
	return nil
}
