// This file defines the Puzzle structure and its compilation into a csp
// model: letter variables, the global AllDifferent, leading-digit
// exclusions, and one column-sum constraint per digit place linked by a
// chain of auxiliary carry variables.
package cryptarithm

import (
	"errors"
	"fmt"

	"github.com/gitrdm/cryptarithm/pkg/csp"
)

// DefaultBase is the arithmetic base puzzles use unless configured
// otherwise.
const DefaultBase = 10

// MaxBase bounds the supported arithmetic base. The alphabet has 26
// letters, so larger bases only relax the pigeonhole limit.
const MaxBase = 36

// ErrStructural marks puzzles that are well-formed text but provably
// unsolvable by shape alone, detected before search starts: more distinct
// letters than digits in the base, or a term wider than the result.
var ErrStructural = errors.New("puzzle is structurally infeasible")

// Puzzle is a parsed letter-arithmetic puzzle: the addend terms, the result
// word, and the arithmetic base. Immutable after creation.
type Puzzle struct {
	Terms  []string
	Result string
	Base   int
}

// Equation returns the puzzle in its textual form,
// e.g. "SEND + MORE = MONEY".
func (p *Puzzle) Equation() string {
	out := ""
	for i, t := range p.Terms {
		if i > 0 {
			out += " + "
		}
		out += t
	}
	return out + " = " + p.Result
}

// Letters returns the distinct letters of the puzzle in first-appearance
// order across the terms and then the result.
func (p *Puzzle) Letters() []rune {
	seen := make(map[rune]bool)
	letters := make([]rune, 0, 16)
	appendWord := func(w string) {
		for _, r := range w {
			if !seen[r] {
				seen[r] = true
				letters = append(letters, r)
			}
		}
	}
	for _, t := range p.Terms {
		appendWord(t)
	}
	appendWord(p.Result)
	return letters
}

// Validate checks the puzzle for structural infeasibility. It does not run
// any search: these are pigeonhole-style rejections a solver must report
// upfront rather than prove by exhaustion.
func (p *Puzzle) Validate() error {
	base := p.Base
	if base == 0 {
		base = DefaultBase
	}
	if base < 2 || base > MaxBase {
		return fmt.Errorf("base %d out of range [2, %d]: %w", base, MaxBase, ErrStructural)
	}
	if len(p.Terms) < 2 || p.Result == "" {
		return fmt.Errorf("puzzle needs at least two terms and a result: %w", ErrStructural)
	}
	if len(p.Terms) >= csp.MaxDigits {
		// Column carries can reach roughly one per term; the bitset
		// domains cannot represent wider carry ranges.
		return fmt.Errorf("%d terms exceed the supported carry range: %w", len(p.Terms), ErrStructural)
	}
	if n := len(p.Letters()); n > base {
		return fmt.Errorf("%d distinct letters but base %d has only %d digits: %w",
			n, base, base, ErrStructural)
	}
	for _, t := range p.Terms {
		if len(t) > len(p.Result) {
			return fmt.Errorf("term %s is wider than result %s: %w", t, p.Result, ErrStructural)
		}
	}
	return nil
}

// Compiled is a puzzle lowered to a csp model, retaining the mapping from
// letters to model variables needed to decode solutions.
type Compiled struct {
	Puzzle *Puzzle
	Model  *csp.Model

	base      int
	letterVar map[rune]*csp.Variable
	carries   []*csp.Variable
}

// Compile builds the constraint model for the puzzle:
//
//   - one variable per distinct letter with domain 0..base-1;
//   - AllDifferent over all letter variables;
//   - a zero exclusion for the leading letter of every term and the result;
//   - per digit column, a LinearColumn constraint tying the column's
//     letters, its result letter, and the carry chain.
//
// Carries are auxiliary variables held in the same store and graph as the
// letters. The carry into the units column and the carry out of the last
// column are pinned to zero; intermediate carry domains are sized from the
// number of addends in the preceding column, which yields {0,1} for
// ordinary two-term puzzles.
func (p *Puzzle) Compile() (*Compiled, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	base := p.Base
	if base == 0 {
		base = DefaultBase
	}

	m := csp.NewModel()
	digits := csp.FullDomain(base)

	letters := p.Letters()
	letterVar := make(map[rune]*csp.Variable, len(letters))
	vars := make([]*csp.Variable, 0, len(letters))
	for _, r := range letters {
		v := m.NewVariable(string(r), csp.KindLetter, digits)
		letterVar[r] = v
		vars = append(vars, v)
	}

	if len(vars) >= 2 {
		ad, err := csp.NewAllDifferent(vars)
		if err != nil {
			return nil, err
		}
		m.AddConstraint(ad)
	}

	leading := make(map[rune]bool)
	for _, t := range p.Terms {
		leading[rune(t[0])] = true
	}
	leading[rune(p.Result[0])] = true
	for _, r := range letters {
		if leading[r] {
			m.AddConstraint(csp.NewNotValue(letterVar[r], 0))
		}
	}

	columns := len(p.Result)
	carries := make([]*csp.Variable, columns+1)
	carries[0] = m.NewVariable("c0", csp.KindCarry, csp.DomainOf(1, 0))

	maxCarry := 0
	for col := 0; col < columns; col++ {
		addends := make([]*csp.Variable, 0, len(p.Terms))
		for _, t := range p.Terms {
			if col < len(t) {
				addends = append(addends, letterVar[rune(t[len(t)-1-col])])
			}
		}

		maxCarry = ((base-1)*len(addends) + maxCarry) / base
		if col == columns-1 {
			// The final carry must vanish, or the sum would be wider
			// than the result.
			carries[col+1] = m.NewVariable(fmt.Sprintf("c%d", col+1), csp.KindCarry, csp.DomainOf(1, 0))
		} else {
			carries[col+1] = m.NewVariable(fmt.Sprintf("c%d", col+1), csp.KindCarry, csp.FullDomain(maxCarry+1))
		}

		result := letterVar[rune(p.Result[len(p.Result)-1-col])]
		column, err := csp.NewLinearColumn(addends, carries[col], result, carries[col+1], base)
		if err != nil {
			return nil, err
		}
		m.AddConstraint(column)
	}

	return &Compiled{
		Puzzle:    p,
		Model:     m,
		base:      base,
		letterVar: letterVar,
		carries:   carries,
	}, nil
}
