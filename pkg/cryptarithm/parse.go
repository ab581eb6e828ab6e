// Package cryptarithm models letter-arithmetic puzzles such as
// SEND + MORE = MONEY as constraint satisfaction problems and solves them
// with the csp engine. Each distinct letter stands for a unique digit,
// leading letters cannot be zero, and the columnar addition must hold
// exactly.
package cryptarithm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInput marks malformed puzzle text, rejected before any model is built.
var ErrInput = errors.New("invalid puzzle input")

// ParseError describes why a puzzle line was rejected.
type ParseError struct {
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// Unwrap lets callers match the error with errors.Is(err, ErrInput).
func (e *ParseError) Unwrap() error { return ErrInput }

// Parse converts a puzzle line of the form
//
//	WORD1 + WORD2 [+ WORD3 ...] = RESULT
//
// into a Puzzle. Letters are case-insensitive ASCII and are normalized to
// upper case; anything else — digits, missing operators, empty words — is a
// parse error. The returned puzzle uses DefaultBase.
func Parse(line string) (*Puzzle, error) {
	fail := func(reason string) (*Puzzle, error) {
		return nil, &ParseError{Input: line, Reason: reason}
	}

	sides := strings.Split(line, "=")
	if len(sides) != 2 {
		return fail("expected exactly one '='")
	}

	result, ok := parseWord(sides[1])
	if !ok {
		return fail("result must be a single word of letters")
	}

	parts := strings.Split(sides[0], "+")
	if len(parts) < 2 {
		return fail("expected at least two terms joined by '+'")
	}
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		word, ok := parseWord(part)
		if !ok {
			return fail(fmt.Sprintf("term %q must be a word of letters", strings.TrimSpace(part)))
		}
		terms = append(terms, word)
	}

	return &Puzzle{Terms: terms, Result: result, Base: DefaultBase}, nil
}

// parseWord trims and upper-cases one word, reporting whether it is a
// non-empty run of ASCII letters.
func parseWord(s string) (string, bool) {
	word := strings.ToUpper(strings.TrimSpace(s))
	if word == "" {
		return "", false
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return word, true
}
