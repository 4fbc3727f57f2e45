package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/TheIndifferent/disk-usage/internal/probe"
)

// Output formats.
const (
	OutputAuto  = ""
	OutputTUI   = "tui"
	OutputTable = "table"
	OutputJSON  = "json"
)

// Options configures a disk-usage run.
type Options struct {
	// Path is the directory to analyze.
	Path string
	// Policy names the on-disk size policy.
	Policy string
	// FollowSymlinks resolves symbolic links while scanning.
	FollowSymlinks bool
	// Output is one of tui, table or json.
	Output string
	// TopN limits the rows printed by table and json output (0=all).
	TopN int
	// LogLevel is the minimum level logged.
	LogLevel string
	// LogFile receives log output instead of stderr.
	LogFile string
	// Debug forces debug logging.
	Debug bool
	// PrintDir prints the directory left open when the interactive view exits.
	PrintDir bool
	// ConfigFile is an optional configuration file.
	ConfigFile string
	// Version indicates whether to show version and exit.
	Version bool
	// Integration indicates whether to output the shell integration script.
	Integration bool
}

// validate checks the options and resolves the scan path.
func (o *Options) validate(interactiveTerminal bool) error {
	if _, err := probe.ParseKind(o.Policy); err != nil {
		return err
	}

	allowedOutputs := []string{OutputAuto, OutputTUI, OutputTable, OutputJSON}
	if !slices.Contains(allowedOutputs, o.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", o.Output, allowedOutputs[1:])
	}

	if o.TopN < 0 {
		return errors.New("top cannot be negative")
	}

	switch {
	case o.PrintDir:
		if o.Output != OutputAuto && o.Output != OutputTUI {
			return fmt.Errorf("--print-dir requires the %s output", OutputTUI)
		}

		o.Output = OutputTUI
	case o.Output == OutputAuto && interactiveTerminal:
		o.Output = OutputTUI
	case o.Output == OutputAuto:
		o.Output = OutputTable
	}

	return o.resolvePath()
}

// resolvePath defaults to the working directory and requires an existing directory.
func (o *Options) resolvePath() error {
	if o.Path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine current directory: %w", err)
		}

		o.Path = cwd
	}

	abs, err := filepath.Abs(o.Path)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("path does not exist: %s", o.Path)
		}

		return fmt.Errorf("accessing path %q: %w", o.Path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", o.Path)
	}

	o.Path = abs

	return nil
}
