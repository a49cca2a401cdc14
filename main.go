// fd is a CLI tool that recursively searches the current directory for
// entries whose path (or file name) matches a regular expression.
//
// Matching is smart case: an all-lowercase pattern matches
// case-insensitively, any uppercase letter makes it case-sensitive.
// Hidden entries are skipped unless --hidden is given, symlinks are not
// followed unless --follow is given, and matches are colored by kind.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nethoundsh/fd/internal/runner"
	"github.com/nethoundsh/fd/pkg/config"
	"github.com/spf13/cobra"
)

// version can be overridden at build time with:
//
//	go build -ldflags "-X main.version=v1.2.3"
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// Exit codes: 0 = success (including no matches), 1 = error or help.
func run(args []string, stdout, stderr io.Writer) int {
	var helpShown bool
	cmd := newRootCommand(stdout, stderr, &helpShown)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	if helpShown {
		return 1
	}
	return 0
}

// newRootCommand builds the fd command. helpShown is set when usage was
// printed instead of running a search.
func newRootCommand(stdout, stderr io.Writer, helpShown *bool) *cobra.Command {
	var opts config.Options

	cmd := &cobra.Command{
		Use:   "fd [PATTERN]",
		Short: "Find entries in the current directory tree by pattern",
		Long: `fd recursively searches the current directory and prints every path
that contains a match for PATTERN, a regular expression. Without a
pattern every entry is printed.

Defaults can be stored in config.yaml under the user config directory
(or the file named by $FD_CONFIG); command-line flags take precedence.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Pattern = args[0]
			}
			if err := applyConfigFile(cmd, &opts); err != nil {
				return err
			}
			return search(opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("fd {{.Version}}\n")

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, a []string) {
		defaultHelp(c, a)
		*helpShown = true
	})

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&opts.Sensitive, "sensitive", "s", false, "case-sensitive search (default: smart case)")
	flags.BoolVarP(&opts.FilenameOnly, "filename", "f", false, "search filenames only (default: full path)")
	flags.BoolVar(&opts.Hidden, "hidden", false, "search hidden files/directories (default: off)")
	flags.BoolVarP(&opts.Follow, "follow", "F", false, "follow symlinks (default: off)")
	flags.BoolVarP(&opts.NoColor, "no-color", "n", false, "do not colorize output")
	flags.StringVar(&opts.Color, "color", "always", "when to colorize output: auto, always, or never")
	flags.StringArrayVarP(&opts.Excludes, "exclude", "E", nil, "exclude entries matching the glob (repeatable, e.g. \"*.log\")")
	flags.StringVar(&opts.MinSize, "min-size", "", "only files at least this large (e.g. \"1KB\", \"10MB\")")
	flags.StringVar(&opts.MaxSize, "max-size", "", "only files at most this large (e.g. \"100MB\", \"1GB\")")
	flags.IntVarP(&opts.MaxDepth, "max-depth", "d", 0, "maximum search depth (0 = unlimited)")
	flags.StringVar(&opts.BaseDirectory, "base-directory", "", "search this directory instead of the current one")
	flags.BoolVarP(&opts.AbsolutePath, "absolute-path", "a", false, "print absolute paths")
	flags.BoolVarP(&opts.ListDetails, "list-details", "l", false, "show permissions, size and modification time")
	flags.BoolVar(&opts.Stats, "stats", false, "print a match summary to stderr")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "report skipped entries on stderr")

	return cmd
}

// applyConfigFile layers config.yaml defaults under the explicit flags.
func applyConfigFile(cmd *cobra.Command, opts *config.Options) error {
	path, err := config.FilePath()
	if err != nil {
		// No config directory (e.g. $HOME unset): run on flags alone.
		return nil
	}
	file, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	file.Apply(opts, cmd.Flags().Changed)
	return nil
}

func search(opts config.Options, stdout, stderr io.Writer) error {
	cfg, re, err := config.New(opts)
	if err != nil {
		return err
	}

	st, err := runner.Scan(cfg, re, stdout, stderr)
	if err != nil {
		return err
	}
	if cfg.Stats {
		runner.PrintStats(stderr, st, cfg.Colored)
	}
	return nil
}
