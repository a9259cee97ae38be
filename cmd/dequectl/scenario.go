package main

import (
	"fmt"

	"github.com/spf13/cobra"

	deque "github.com/lucasgdosr/blockdeque"
)

func init() {
	rootCmd.AddCommand(newScenarioCmd())
}

// scenario is the reference walk-through: ends, then the middle.
var scenario = []op{
	{name: "push_back", args: []int{1}},
	{name: "push_back", args: []int{2}},
	{name: "push_front", args: []int{0}},
	{name: "pop_front"},
	{name: "insert", args: []int{1, 99}},
	{name: "erase", args: []int{0}},
}

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Run the reference scenario step by step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deque.MakeDeque(deque.WithLogger[int](newLogger(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			defer d.Release()

			w := cmd.OutOrStdout()
			var steps []summary
			for i, o := range scenario {
				if err := apply(d, o); err != nil {
					return fmt.Errorf("step %d (%s): %w", i+1, o, err)
				}
				s := summarize(d, i+1)
				if jsonOut {
					steps = append(steps, s)
					continue
				}
				fmt.Fprintf(w, "%-14s -> %v (size=%d)\n", o, s.Values, s.Size)
			}
			if jsonOut {
				return printJSON(w, steps)
			}
			return nil
		},
	}
}
