package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/bagtoad/pathpick/internal/cli"
	"github.com/bagtoad/pathpick/internal/node"
)

func main() {
	rootCmd := cli.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Same "Error: " form the nodes return to their hosts.
		color.New(color.FgRed).Fprintf(os.Stderr, "%s%v\n", node.ErrorPrefix, err)
		os.Exit(1)
	}
}
