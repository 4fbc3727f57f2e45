package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/TheIndifferent/disk-usage/internal/view"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
	// BarWidth is the width of the relative size bar in table output.
	BarWidth = 20
)

// Report is the result of a non-interactive run.
type Report struct {
	// Path is the scanned directory.
	Path string `json:"path"`
	// Policy is the on-disk size policy used.
	Policy string `json:"policy"`
	// SizeLogical is the total logical size.
	SizeLogical uint64 `json:"size_logical"`
	// SizeOnDisk is the total on-disk size.
	SizeOnDisk uint64 `json:"size_on_disk"`
	// Files is the number of files scanned.
	Files int64 `json:"files"`
	// Dirs is the number of directories scanned.
	Dirs int64 `json:"dirs"`
	// Items are the rows of the root, largest first.
	Items []view.SizeItem `json:"items"`
	// Elapsed is the total time taken by the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the report in human-readable table format.
func PrintTable(report *Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\n%s (%s sizes):\t\t\n", report.Path, report.Policy)

	for i, item := range report.Items {
		name := item.Name
		if !item.IsFile {
			name += "/"
		}

		fmt.Fprintf(w, "  %d) %s\t%s\t%s %5.1f%%\n",
			i+1, name, item.SizeString, bar(item.RelativeDiskSize), 100*item.RelativeDiskSize)
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%s\n", humanize.Comma(report.Files))
	fmt.Fprintf(w, "Total directories:\t%s\n", humanize.Comma(report.Dirs))
	fmt.Fprintf(w, "Total size:\t%s (%s bytes)\n",
		view.ReadableSize(report.SizeLogical), humanize.Comma(int64(report.SizeLogical))) //nolint:gosec // Sizes fit in int64
	fmt.Fprintf(w, "On disk:\t%s (%s bytes)\n",
		view.ReadableSize(report.SizeOnDisk), humanize.Comma(int64(report.SizeOnDisk))) //nolint:gosec // Sizes fit in int64

	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Elapsed.Round(time.Millisecond))

	return w.Flush()
}

// bar renders a relative size in [0,1] as a fixed-width bar.
func bar(relative float32) string {
	filled := int(relative*BarWidth + 0.5)
	filled = max(0, min(filled, BarWidth))

	return strings.Repeat("█", filled) + strings.Repeat("░", BarWidth-filled)
}
