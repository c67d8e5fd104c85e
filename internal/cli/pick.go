package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bagtoad/pathpick/internal/selector"
)

var pickHelp = map[selector.Strategy]struct{ short, long string }{
	selector.StrategyLastModified: {
		short: "Print the most recently modified file",
		long:  "Print the path of the file with the newest modification time.\nIf several files share it, the first in name order wins.",
	},
	selector.StrategyRandom: {
		short: "Print a random file",
		long:  "Print the path of a file chosen uniformly at random.",
	},
	selector.StrategyIndexed: {
		short: "Print the Nth file in sorted order",
		long:  "Print the path of the file at position --index (0-based) after sorting\nall matching paths in ascending order. Use `pathpick list` to see the order.",
	},
}

func newPickCommand(opts *rootOptions, strategy selector.Strategy) *cobra.Command {
	var ext string
	var index int

	help := pickHelp[strategy]
	cmd := &cobra.Command{
		Use:   strategy.String() + " [directory]",
		Short: help.short,
		Long:  help.long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			n, ok := e.registry.ForStrategy(strategy)
			if !ok {
				return fmt.Errorf("no node for strategy %s", strategy)
			}

			a := e.request(cmd, args, ext)
			a.Index = index
			path, err := n.Select(a)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ext, "ext", "e", "", "Extensions to match, separated by '|' (e.g. 'png|jpg'); blank = any")
	if strategy == selector.StrategyIndexed {
		cmd.Flags().IntVarP(&index, "index", "i", 0, "0-based position in sorted order")
	}

	return cmd
}
