package view

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/TheIndifferent/disk-usage/internal/sizetree"
)

// SizeItem is one display row.
type SizeItem struct {
	// Name is the display name of the node.
	Name string `json:"name"`
	// SizeString is the human readable size, e.g. "12 MB (14 MB on disk)".
	SizeString string `json:"size_string"`
	// RelativeRealSize is the logical size divided by the largest logical size among siblings.
	RelativeRealSize float32 `json:"relative_real_size"`
	// RelativeDiskSize is the on-disk size divided by the largest on-disk size among siblings.
	RelativeDiskSize float32 `json:"relative_disk_size"`
	// IsFile is true for leaf nodes.
	IsFile bool `json:"is_file"`
}

// Projector converts nodes into rows.
type Projector struct {
	logger *log.Logger
}

// NewProjector creates a Projector. A nil logger discards output.
func NewProjector(logger *log.Logger) *Projector {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Projector{logger: logger}
}

// Node returns the rows for the children of a directory, or the single
// row of a file viewed on its own.
func (p *Projector) Node(n *sizetree.Node) []SizeItem {
	if n.IsFile() {
		return []SizeItem{p.File(n)}
	}

	return p.Children(n.Children())
}

// Children returns one row per node, in the given order. Relative sizes are
// normalized against the largest sibling; a zero maximum is treated as 1.
func (p *Projector) Children(children []*sizetree.Node) []SizeItem {
	var maxLogical, maxDisk uint64

	for _, c := range children {
		maxLogical = max(maxLogical, c.SizeLogical())
		maxDisk = max(maxDisk, c.SizeOnDisk())
	}

	maxLogical = max(maxLogical, 1)
	maxDisk = max(maxDisk, 1)

	items := make([]SizeItem, 0, len(children))
	for _, c := range children {
		items = append(items, SizeItem{
			Name:             c.Name(),
			SizeString:       p.readable(c.SizeLogical()) + " (" + p.readable(c.SizeOnDisk()) + " on disk)",
			RelativeRealSize: ratio(c.SizeLogical(), maxLogical),
			RelativeDiskSize: ratio(c.SizeOnDisk(), maxDisk),
			IsFile:           c.IsFile(),
		})
	}

	return items
}

// File returns the row of a file shown as the whole view.
func (p *Projector) File(n *sizetree.Node) SizeItem {
	return SizeItem{
		Name:             n.Name(),
		SizeString:       p.readable(n.SizeLogical()),
		RelativeRealSize: 1,
		RelativeDiskSize: 1,
		IsFile:           true,
	}
}

func (p *Projector) readable(size uint64) string {
	s, ok := readableSize(size)
	if !ok {
		p.logger.Warn("size exceeds readable units", "bytes", size)
	}

	return s
}

func ratio(value, maximum uint64) float32 {
	return float32(float64(value) / float64(maximum))
}
