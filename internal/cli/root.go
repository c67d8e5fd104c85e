// Package cli implements the pathpick command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bagtoad/pathpick/internal/config"
	"github.com/bagtoad/pathpick/internal/logger"
	"github.com/bagtoad/pathpick/internal/node"
	"github.com/bagtoad/pathpick/internal/selector"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
}

// env is what every subcommand needs once flags are parsed.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	sel      *selector.Selector
	registry *node.Registry
}

// NewRootCommand creates the root pathpick command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pathpick",
		Short: "Pick one file from a directory: newest, random, or by index",
		Long: `pathpick selects a single file from a directory.

  latest   the most recently modified file
  random   a uniformly random file
  index    the Nth file in sorted path order

Only the immediate children of the directory are considered. Use -e to
restrict candidates by extension, e.g. -e 'png|jpg'. Defaults for the
directory and extensions can be set in ~/.pathpick/config.yaml.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.pathpick/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	cmd.AddCommand(newPickCommand(opts, selector.StrategyLastModified))
	cmd.AddCommand(newPickCommand(opts, selector.StrategyRandom))
	cmd.AddCommand(newPickCommand(opts, selector.StrategyIndexed))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newNodesCommand(opts))
	cmd.AddCommand(newServeCommand(opts))

	return cmd
}

func (o *rootOptions) setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(config.Resolve(o.logLevel, cfg.LogLevel, "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	log := logger.New(cmd.ErrOrStderr(), level)
	log.Debugf("config: directory=%q extensions=%q listen=%q", cfg.Directory, cfg.Extensions, cfg.Listen)

	sel := selector.New(selector.WithLogger(log))
	return &env{cfg: cfg, log: log, sel: sel, registry: node.NewRegistry(sel)}, nil
}

// request builds node arguments from the optional directory argument and the
// --ext flag, falling back to the config file.
func (e *env) request(cmd *cobra.Command, args []string, ext string) node.Args {
	var dir string
	if len(args) > 0 {
		dir = args[0]
	}
	a := node.Args{
		Directory:  config.Resolve(dir, e.cfg.Directory, "."),
		Extensions: e.cfg.Extensions,
	}
	// An explicit empty -e clears the configured filter.
	if cmd.Flags().Changed("ext") {
		a.Extensions = ext
	}
	return a
}
