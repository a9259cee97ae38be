package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	deque "github.com/lucasgdosr/blockdeque"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "run [op [arg...]]...",
		Short: "Apply a sequence of operations to an empty deque",
		Long: `The run command applies operations, in order, to a fresh deque of ints
and prints the final contents and grid layout.

Operations:
  push_back N   push_front N   pop_back   pop_front
  insert I N    erase I

Example:
  dequectl run push_back 1 push_back 2 push_front 0 insert 1 99
  dequectl run --file ops.txt --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := args
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				script, err := readScript(f)
				if err != nil {
					return fmt.Errorf("failed to read script: %w", err)
				}
				tokens = append(script, tokens...)
			}
			return runOps(cmd, tokens)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read operations from a file, one per line")
	return cmd
}

func runOps(cmd *cobra.Command, tokens []string) error {
	ops, err := parseOps(tokens)
	if err != nil {
		return err
	}

	d, err := deque.MakeDeque(deque.WithLogger[int](newLogger(cmd.ErrOrStderr())))
	if err != nil {
		return err
	}
	defer d.Release()

	for i, o := range ops {
		if err := apply(d, o); err != nil {
			return fmt.Errorf("op %d (%s): %w", i+1, o, err)
		}
	}
	return printSummary(cmd.OutOrStdout(), summarize(d, len(ops)))
}
