package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bagtoad/pathpick/internal/report"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "Show matching files with their index, time, size and image dimensions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			// Same ordering as `pathpick index`, so the printed indexes match.
			a := e.request(cmd, args, ext)
			l, err := e.sel.Candidates(a.Directory, a.Extensions)
			if err != nil {
				return err
			}

			report.Print(cmd.OutOrStdout(), l, report.Collect(l))
			return nil
		},
	}

	cmd.Flags().StringVarP(&ext, "ext", "e", "", "Extensions to match, separated by '|' (e.g. 'png|jpg'); blank = any")
	return cmd
}

func newNodesCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "Describe the picker nodes offered to hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				data, err := json.MarshalIndent(e.registry.Nodes(), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			for _, n := range e.registry.Nodes() {
				inputs := make([]string, len(n.Inputs))
				for i, in := range n.Inputs {
					inputs[i] = fmt.Sprintf("%s:%s", in.Name, in.Type)
				}
				fmt.Fprintf(out, "%-20s %-12s %-10s -> %s\n",
					n.Name, n.Category, n.Strategy(), strings.Join(inputs, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print descriptors as JSON")
	return cmd
}
