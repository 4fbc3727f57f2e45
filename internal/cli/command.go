package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TheIndifferent/disk-usage/internal/integration"
	"github.com/TheIndifferent/disk-usage/internal/probe"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
	stdout  io.Writer
	stderr  io.Writer
	// isTerminal reports whether stdout is an interactive terminal.
	isTerminal func() bool
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{
		version: version,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		isTerminal: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "disk-usage [flags] [path]",
		Short: "Browse a directory tree ordered by size",
		Long: heredoc.Doc(`
			disk-usage scans a directory and shows every entry with its size and
			the space it takes on disk, largest first.

			Positional Arguments:
			  path                   Directory to analyze. Defaults to the current directory.

			Interactive keys:
			  up/down, j/k           Move the cursor
			  enter, right, l        Open the directory under the cursor
			  left, h, backspace     Go back to the parent directory
			  r                      Rescan from the root
			  q, esc                 Quit

			Every flag can also be set with a DISKUSAGE_ environment variable
			(e.g. DISKUSAGE_POLICY=cluster) or in the file given by --config.

			The '--init' flag prints a shell function that opens the interactive
			view and changes into the directory that was open when it quit.
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := loadOptions(v, cmd.Flags(), args)
			if err != nil {
				return err
			}

			return c.run(options)
		},
	}

	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	flags := cmd.Flags()
	flags.StringP("policy", "p", string(probe.DefaultKind),
		fmt.Sprintf("On-disk size policy: one of %v", probe.Kinds()))
	flags.Bool("follow-symlinks", true, "Follow symbolic links (cyclic links are not detected)")
	flags.StringP("output", "o", OutputAuto, "Output format: tui, table or json (default: tui on a terminal, else table)")
	flags.IntP("top", "t", 0, "Number of rows to print in table and json output (0=all)")
	flags.String("log-level", DefaultLogLevel, "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Write logs to this file")
	flags.Bool("debug", false, "Enable debug output")
	flags.Bool("print-dir", false, "Print the directory left open when the interactive view exits")
	flags.StringP("config", "c", "", "Configuration file (toml, yaml or json)")
	flags.BoolP("version", "v", false, "Show version and exit")
	flags.BoolP("init", "i", false, "Output init script for shell usage")

	flags.SortFlags = false

	return cmd
}

func (c CLI) run(options Options) error {
	if options.Version {
		fmt.Fprintln(c.stdout, c.version)

		return nil
	}

	if options.Integration {
		rendered, err := integration.Render()
		if err != nil {
			return fmt.Errorf("rendering integration script: %w", err)
		}

		fmt.Fprintln(c.stdout, rendered)

		return nil
	}

	if err := options.validate(c.isTerminal()); err != nil {
		return err
	}

	return c.logic(options)
}
