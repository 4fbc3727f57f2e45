package sizetree

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/charlievieth/fastwalk"
	"github.com/charmbracelet/log"

	"github.com/TheIndifferent/disk-usage/internal/probe"
)

// InvalidName replaces entry names that are not valid UTF-8.
const InvalidName = "<invalid name>"

// Options configures a Builder.
type Options struct {
	// Policy selects how on-disk sizes are computed.
	Policy probe.Kind
	// FollowSymlinks resolves symbolic links to the file or directory they point at.
	FollowSymlinks bool
	// Logger receives per-entry failures. Nil discards them.
	Logger *log.Logger
}

// Builder scans directory trees. A Builder runs one scan at a time.
type Builder struct {
	opts     Options
	logger   *log.Logger
	counters counters
	readDir  func(string) ([]os.DirEntry, error)
}

// NewBuilder creates a Builder with the given options.
func NewBuilder(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if opts.Policy == "" {
		opts.Policy = probe.DefaultKind
	}

	return &Builder{opts: opts, logger: logger, readDir: os.ReadDir}
}

// Progress returns the counters of the current or last scan.
func (b *Builder) Progress() Progress {
	return b.counters.snapshot()
}

// Scan walks root and returns its tree. The only error is a failure to set
// up the size policy for the volume holding root; everything below the root
// degrades to empty nodes instead.
func (b *Builder) Scan(root string) (*Node, error) {
	policy, err := probe.New(b.opts.Policy, root)
	if err != nil {
		return nil, fmt.Errorf("preparing %s size policy: %w", b.opts.Policy, err)
	}

	b.counters.reset()

	w := walker{
		probe:          probe.NewProbe(policy, b.logger),
		logger:         b.logger,
		followSymlinks: b.opts.FollowSymlinks,
		counters:       &b.counters,
		readDir:        b.readDir,
	}

	return w.node(root, rootName(root)), nil
}

type walker struct {
	probe          *probe.Probe
	logger         *log.Logger
	followSymlinks bool
	counters       *counters
	readDir        func(string) ([]os.DirEntry, error)
}

// node classifies path with a stat that follows links, as the root is given by the user.
func (w walker) node(path, name string) *Node {
	info, err := os.Stat(path)
	if err != nil {
		w.logger.Warn("failed to stat path", "path", path, "err", err)

		return NewFile(name, 0, 0)
	}

	switch {
	case info.IsDir():
		return w.dir(path, name)
	case info.Mode().IsRegular():
		return w.file(path, name)
	default:
		return NewFile(name, 0, 0)
	}
}

func (w walker) file(path, name string) *Node {
	logical, onDisk := w.probe.Sizes(path)

	w.counters.files.Add(1)
	w.counters.bytes.Add(logical)

	return NewFile(name, logical, onDisk)
}

func (w walker) dir(path, name string) *Node {
	entries, err := w.readDir(path)
	if err != nil {
		if len(entries) == 0 {
			w.logger.Warn("failed to read directory", "path", path, "err", err)

			return NewFile(name, 0, 0)
		}

		w.logger.Warn("directory listing incomplete", "path", path, "err", err)
	}

	w.counters.dirs.Add(1)

	children := make([]*Node, 0, len(entries))

	for _, entry := range entries {
		childPath := filepath.Join(path, entry.Name())
		childName := w.displayName(childPath, entry.Name())

		isDir, isFile, ok := w.classify(childPath, entry)
		if !ok {
			continue
		}

		var child *Node

		switch {
		case isDir:
			child = w.dir(childPath, childName)
		case isFile:
			child = w.file(childPath, childName)
		default:
			continue
		}

		child.entry = entry.Name()
		children = append(children, child)
	}

	return NewDir(name, children)
}

// classify resolves the type of a listed entry. Symbolic links are
// reclassified by their target when following is enabled and skipped otherwise.
func (w walker) classify(path string, entry fs.DirEntry) (isDir, isFile, ok bool) {
	mode := entry.Type()
	if mode&fs.ModeSymlink == 0 {
		return mode.IsDir(), mode.IsRegular(), true
	}

	if !w.followSymlinks {
		w.logger.Debug("skipping symbolic link", "path", path)

		return false, false, false
	}

	info, err := fastwalk.StatDirEntry(path, entry)
	if err != nil {
		w.logger.Warn("failed to resolve symbolic link", "path", path, "err", err)

		return false, false, false
	}

	return info.IsDir(), info.Mode().IsRegular(), true
}

func (w walker) displayName(path, name string) string {
	if name == "" || !utf8.ValidString(name) {
		w.logger.Warn("entry name is not valid UTF-8", "path", path)

		return InvalidName
	}

	return name
}

// rootName returns the name shown for the scan root.
func rootName(root string) string {
	name := filepath.Base(filepath.Clean(root))
	if !utf8.ValidString(name) {
		return InvalidName
	}

	return name
}
