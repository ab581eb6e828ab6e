package cryptarithm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBatch(t *testing.T) {
	path := writeBatchFile(t, `
puzzles:
  - equation: SEND + MORE = MONEY
    all: true
  - equation: TWO + TWO = FOUR
  - equation: A + A = B
    base: 3
`)
	batch, err := LoadBatch(path)
	require.NoError(t, err)
	require.Len(t, batch.Puzzles, 3)

	assert.Equal(t, "SEND + MORE = MONEY", batch.Puzzles[0].Equation)
	assert.True(t, batch.Puzzles[0].All)
	assert.False(t, batch.Puzzles[1].All)
	assert.Equal(t, 3, batch.Puzzles[2].Base)
}

func TestLoadBatchRejectsBadEquation(t *testing.T) {
	path := writeBatchFile(t, `
puzzles:
  - equation: SEND + MORE = MONEY
  - equation: NOT AN EQUATION
`)
	_, err := LoadBatch(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInput)
	assert.Contains(t, err.Error(), "entry 2")
}

func TestLoadBatchRejectsEmpty(t *testing.T) {
	path := writeBatchFile(t, "puzzles: []\n")
	_, err := LoadBatch(path)
	assert.Error(t, err)
}

func TestLoadBatchRejectsBadYAML(t *testing.T) {
	path := writeBatchFile(t, "puzzles: [unclosed\n")
	_, err := LoadBatch(path)
	assert.Error(t, err)
}

func TestLoadBatchMissingFile(t *testing.T) {
	_, err := LoadBatch(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBatchEntryPuzzle(t *testing.T) {
	entry := BatchEntry{Equation: "A + A = B", Base: 3}
	p, err := entry.Puzzle()
	require.NoError(t, err)
	assert.Equal(t, 3, p.Base)
	assert.Equal(t, []string{"A", "A"}, p.Terms)

	entry = BatchEntry{Equation: "SEND + MORE = MONEY"}
	p, err = entry.Puzzle()
	require.NoError(t, err)
	assert.Equal(t, DefaultBase, p.Base)
}
