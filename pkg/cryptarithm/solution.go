// This file defines solutions: decoding engine assignments back to letter
// mappings, verifying them arithmetically, and formatting them for output.
package cryptarithm

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Solution maps every letter of a puzzle to its digit.
type Solution struct {
	puzzle *Puzzle
	base   int
	digits map[rune]int
}

// Digit returns the digit assigned to the letter, or -1 if the letter does
// not occur in the puzzle.
func (s Solution) Digit(letter rune) int {
	d, ok := s.digits[letter]
	if !ok {
		return -1
	}
	return d
}

// Digits returns a copy of the letter-to-digit mapping.
func (s Solution) Digits() map[rune]int {
	out := make(map[rune]int, len(s.digits))
	for r, d := range s.digits {
		out[r] = d
	}
	return out
}

// Verify substitutes the mapping into the puzzle and re-adds the terms
// numerically, reporting whether the sum matches the result. It also
// re-checks digit uniqueness and the leading-digit rule, so a true result
// is an end-to-end certificate independent of the solver.
func (s Solution) Verify() bool {
	used := make(map[int]rune, len(s.digits))
	for r, d := range s.digits {
		if d < 0 || d >= s.base {
			return false
		}
		if _, dup := used[d]; dup {
			return false
		}
		used[d] = r
	}
	for _, w := range append(append([]string{}, s.puzzle.Terms...), s.puzzle.Result) {
		if s.digits[rune(w[0])] == 0 {
			return false
		}
	}

	sum := new(big.Int)
	for _, t := range s.puzzle.Terms {
		sum.Add(sum, s.wordValue(t))
	}
	return sum.Cmp(s.wordValue(s.puzzle.Result)) == 0
}

// wordValue computes the numeric value of a word under the mapping.
func (s Solution) wordValue(word string) *big.Int {
	value := new(big.Int)
	b := big.NewInt(int64(s.base))
	for _, r := range word {
		value.Mul(value, b)
		value.Add(value, big.NewInt(int64(s.digits[r])))
	}
	return value
}

// wordDigits renders a word with its letters substituted by digits, using
// upper-case letters for digits beyond 9.
func (s Solution) wordDigits(word string) string {
	var b strings.Builder
	for _, r := range word {
		d := s.digits[r]
		if d < 10 {
			b.WriteByte(byte('0' + d))
		} else {
			b.WriteByte(byte('A' + d - 10))
		}
	}
	return b.String()
}

// Format returns the digit-substituted equation,
// e.g. "9567 + 1085 = 10652".
func (s Solution) Format() string {
	parts := make([]string, len(s.puzzle.Terms))
	for i, t := range s.puzzle.Terms {
		parts[i] = s.wordDigits(t)
	}
	return strings.Join(parts, " + ") + " = " + s.wordDigits(s.puzzle.Result)
}

// Mapping returns the letter assignments as "D=7 E=5 ...", letters sorted.
func (s Solution) Mapping() string {
	letters := make([]rune, 0, len(s.digits))
	for r := range s.digits {
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	parts := make([]string, len(letters))
	for i, r := range letters {
		parts[i] = fmt.Sprintf("%c=%d", r, s.digits[r])
	}
	return strings.Join(parts, " ")
}

// String implements fmt.Stringer.
func (s Solution) String() string { return s.Format() }

// key is a canonical identity for deduplication and ordering: the digits of
// the letters in puzzle appearance order.
func (s Solution) key() string {
	letters := s.puzzle.Letters()
	b := make([]byte, len(letters))
	for i, r := range letters {
		b[i] = byte(s.digits[r])
	}
	return string(b)
}
