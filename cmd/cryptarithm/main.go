// Command cryptarithm solves letter-arithmetic puzzles such as
// SEND + MORE = MONEY from the command line.
//
// Exit codes distinguish the three possible outcomes:
//
//	0  the puzzle was solved, or exhaustively proven to have no solution
//	2  the input was malformed or the puzzle is structurally infeasible
//	3  the search ran out of budget (nodes or time) before concluding
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitrdm/cryptarithm/pkg/cryptarithm"
)

const (
	exitOK        = 0
	exitBadPuzzle = 2
	exitExhausted = 3
)

type cliOptions struct {
	all       bool
	base      int
	timeout   time.Duration
	nodeLimit int64
	workers   int
	file      string
	stats     bool
}

func main() {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   `cryptarithm [flags] "SEND + MORE = MONEY"`,
		Short: "Solve letter-arithmetic puzzles",
		Long: `cryptarithm assigns a distinct digit to every letter of an addition
puzzle so the arithmetic holds, with no leading zeros. Pass one equation
as the argument, or a YAML batch file with --file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.file != "" {
				if len(args) > 0 {
					return errors.New("pass either an equation or --file, not both")
				}
				return runBatch(cmd, opts)
			}
			if len(args) == 0 {
				return errors.New("no equation given; see --help")
			}
			return runOne(cmd, opts, args[0], opts.all)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&opts.all, "all", "a", false, "enumerate every solution")
	flags.IntVarP(&opts.base, "base", "b", cryptarithm.DefaultBase, "arithmetic base (2..36)")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 0, "abort the search after this duration")
	flags.Int64VarP(&opts.nodeLimit, "node-limit", "n", 0, "abort after this many search nodes")
	flags.IntVarP(&opts.workers, "workers", "w", 1, "split the search across this many workers")
	flags.StringVarP(&opts.file, "file", "f", "", "solve every puzzle in a YAML batch file")
	flags.BoolVarP(&opts.stats, "stats", "s", false, "print search statistics")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cryptarithm: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the command's exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, cryptarithm.ErrInput),
		errors.Is(err, cryptarithm.ErrStructural):
		return exitBadPuzzle
	case errors.Is(err, cryptarithm.ErrBudget),
		errors.Is(err, context.DeadlineExceeded):
		return exitExhausted
	default:
		return exitBadPuzzle
	}
}

// runOne parses and solves a single equation.
func runOne(cmd *cobra.Command, opts *cliOptions, equation string, all bool) error {
	puzzle, err := cryptarithm.Parse(equation)
	if err != nil {
		return err
	}
	puzzle.Base = opts.base

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	result, err := puzzle.Solve(ctx, cryptarithm.Options{
		All:       all,
		NodeLimit: opts.nodeLimit,
		Workers:   opts.workers,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, puzzle.Equation())
	if len(result.Solutions) == 0 {
		fmt.Fprintln(out, "no solution")
	}
	for _, s := range result.Solutions {
		fmt.Fprintf(out, "%s   [%s]\n", s.Format(), s.Mapping())
	}
	if all {
		fmt.Fprintf(out, "%d solution(s)\n", len(result.Solutions))
	}
	if opts.stats {
		fmt.Fprintf(out, "stats: %s\n", result.Stats)
	}
	return nil
}

// runBatch solves every puzzle listed in a YAML batch file. Entries are
// independent: a failing entry is reported and the run continues, and the
// worst outcome decides the process exit code.
func runBatch(cmd *cobra.Command, opts *cliOptions) error {
	batch, err := cryptarithm.LoadBatch(opts.file)
	if err != nil {
		return err
	}

	var firstErr error
	for i, entry := range batch.Puzzles {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if err := runBatchEntry(cmd, opts, entry); err != nil {
			fmt.Fprintf(os.Stderr, "cryptarithm: %s: %v\n", entry.Equation, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func runBatchEntry(cmd *cobra.Command, opts *cliOptions, entry cryptarithm.BatchEntry) error {
	entryOpts := *opts
	if entry.Base != 0 {
		entryOpts.base = entry.Base
	}
	return runOne(cmd, &entryOpts, entry.Equation, opts.all || entry.All)
}
