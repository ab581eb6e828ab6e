// This file loads batch files: YAML documents listing several puzzles to
// solve in one run.
package cryptarithm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatchEntry is one puzzle in a batch file.
type BatchEntry struct {
	// Equation is the puzzle text, e.g. "SEND + MORE = MONEY".
	Equation string `yaml:"equation"`

	// All requests every solution for this entry.
	All bool `yaml:"all"`

	// Base overrides the arithmetic base; zero keeps the default.
	Base int `yaml:"base"`
}

// Batch is a parsed batch file.
type Batch struct {
	Puzzles []BatchEntry `yaml:"puzzles"`
}

// LoadBatch reads and parses a YAML batch file. Entry equations are parsed
// eagerly so a malformed entry is reported with its position before any
// solving starts.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing batch file %s: %w", path, err)
	}
	if len(b.Puzzles) == 0 {
		return nil, fmt.Errorf("batch file %s lists no puzzles", path)
	}
	for i, e := range b.Puzzles {
		if _, err := Parse(e.Equation); err != nil {
			return nil, fmt.Errorf("batch entry %d: %w", i+1, err)
		}
	}
	return &b, nil
}

// Puzzle parses the entry's equation and applies its base override.
func (e BatchEntry) Puzzle() (*Puzzle, error) {
	p, err := Parse(e.Equation)
	if err != nil {
		return nil, err
	}
	if e.Base != 0 {
		p.Base = e.Base
	}
	return p, nil
}
