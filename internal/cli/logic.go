package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/TheIndifferent/disk-usage/internal/navigation"
	"github.com/TheIndifferent/disk-usage/internal/probe"
	"github.com/TheIndifferent/disk-usage/internal/sizetree"
	"github.com/TheIndifferent/disk-usage/internal/tui"
)

func (c CLI) logic(options Options) (err error) {
	logger, closeLog, err := newLogger(options, c.stderr)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := closeLog(); cerr != nil && err == nil {
			err = fmt.Errorf("closing log file: %w", cerr)
		}
	}()

	kind, err := probe.ParseKind(options.Policy)
	if err != nil {
		return err
	}

	builder := sizetree.NewBuilder(sizetree.Options{
		Policy:         kind,
		FollowSymlinks: options.FollowSymlinks,
		Logger:         logger,
	})
	state := navigation.New(builder, logger)

	logger.Debug("starting", "path", options.Path, "policy", kind, "output", options.Output)

	if options.Output == OutputTUI {
		return c.interactive(options, state, builder)
	}

	return c.report(options, kind, state, builder)
}

func (c CLI) interactive(options Options, state *navigation.State, builder *sizetree.Builder) error {
	model := tui.New(state, builder, options.Path)

	// Keep stdout free for the printed directory.
	out := c.stdout
	if options.PrintDir {
		out = c.stderr
	}

	final, err := tui.Run(model, out)
	if err != nil {
		return err
	}

	if options.PrintDir && final.Dir() != "" {
		fmt.Fprintln(c.stdout, final.Dir())
	}

	return nil
}

func (c CLI) report(options Options, kind probe.Kind, state *navigation.State, builder *sizetree.Builder) error {
	enableProgress := options.Output != OutputJSON &&
		!options.Debug &&
		c.stderr == os.Stderr &&
		isatty.IsTerminal(os.Stderr.Fd())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reporting <-chan struct{}

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(c.stderr, "\033[?25l")
		defer fmt.Fprint(c.stderr, "\033[?25h")

		reporting = sizetree.ReportProgress(ctx, builder, func(p sizetree.Progress) {
			msg := fmt.Sprintf("Scanning… %s files, %s", humanize.Comma(p.Files), humanize.Bytes(p.Bytes))
			fmt.Fprintf(c.stderr, "\r\033[2K%s\r", msg)
		}, sizetree.DefaultProgressInterval)
	}

	start := time.Now()
	items, err := state.ScanRootFrom(options.Path)

	cancel()

	// Clear the status line
	if enableProgress {
		<-reporting
		fmt.Fprint(c.stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	root := state.Root()
	progress := builder.Progress()

	if options.TopN > 0 && len(items) > options.TopN {
		items = items[:options.TopN]
	}

	report := &Report{
		Path:        options.Path,
		Policy:      string(kind),
		SizeLogical: root.SizeLogical(),
		SizeOnDisk:  root.SizeOnDisk(),
		Files:       progress.Files,
		Dirs:        progress.Dirs,
		Items:       items,
		Elapsed:     time.Since(start),
	}

	switch options.Output {
	case OutputJSON:
		return PrintJSON(report, c.stdout)
	case OutputTable:
		return PrintTable(report, c.stdout)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
