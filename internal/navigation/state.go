package navigation

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/TheIndifferent/disk-usage/internal/sizetree"
	"github.com/TheIndifferent/disk-usage/internal/view"
)

// ErrCorruptState reports that a file was found where the navigation stack
// must hold a directory. It signals a bug, never bad input, and callers must
// stop instead of continuing with the state.
var ErrCorruptState = errors.New("navigation state corrupted")

// Scanner builds the tree for a root path.
type Scanner interface {
	Scan(root string) (*sizetree.Node, error)
}

// frame is an opened directory and its position among its parent's children.
type frame struct {
	node  *sizetree.Node
	index int
}

// State is the navigation cursor over a scanned tree.
type State struct {
	mu sync.Mutex

	scanner   Scanner
	projector *view.Projector
	logger    *log.Logger

	rootPath   string
	root       *sizetree.Node
	navigation []frame
}

// New creates a State with an empty root. A nil logger discards output.
func New(scanner Scanner, logger *log.Logger) *State {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &State{
		scanner:   scanner,
		projector: view.NewProjector(logger),
		logger:    logger,
		root:      sizetree.NewDir("", nil),
	}
}

// ScanRootFrom scans path, installs the result as the new root and resets
// navigation. It returns the rows of the new root.
func (s *State) ScanRootFrom(path string) ([]view.SizeItem, error) {
	root, err := s.scanner.Scan(path)
	if err != nil {
		return nil, fmt.Errorf("scanning %q: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.navigation) > 0 {
		s.logger.Debug("new scan resets navigation", "depth", len(s.navigation))
	}

	s.rootPath = path
	s.root = root
	s.navigation = nil

	return s.projector.Node(root), nil
}

// StepInto opens the child at index of the current directory.
//
// When the child is a directory, its rows are returned with changed set.
// When it is a file, or the root itself is a file, nothing changes and
// changed is false. An out-of-range index resets navigation to the root
// and returns the root's rows with changed set. The error is non-nil only
// for ErrCorruptState.
func (s *State) StepInto(index int) (items []view.SizeItem, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.current()
	if current.IsFile() {
		if len(s.navigation) == 0 {
			s.logger.Debug("root is a file, nothing to step into")

			return nil, false, nil
		}

		return nil, false, fmt.Errorf("%w: open node %q at depth %d is a file",
			ErrCorruptState, current.Name(), len(s.navigation))
	}

	if index < 0 || index >= current.Len() {
		s.logger.Warn("step into index out of range, returning to root",
			"index", index, "children", current.Len(), "depth", len(s.navigation))

		s.navigation = nil

		return s.projector.Node(s.root), true, nil
	}

	target := current.Child(index)
	if target.IsFile() {
		s.logger.Debug("refusing to step into a file", "name", target.Name())

		return nil, false, nil
	}

	s.navigation = append(s.navigation, frame{node: target, index: index})

	return s.projector.Node(target), true, nil
}

// StepOut closes the current directory. It returns the position of the
// closed directory among its siblings and the rows of the parent. ok is
// false when already at the root.
func (s *State) StepOut() (restoreIndex int, items []view.SizeItem, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.navigation) == 0 {
		return 0, nil, false
	}

	left := s.navigation[len(s.navigation)-1]
	s.navigation = s.navigation[:len(s.navigation)-1]
	parent := s.current()

	restoreIndex = left.index
	if restoreIndex >= parent.Len() || parent.Child(restoreIndex) != left.node {
		s.logger.Warn("stored index does not match parent, restoring to first row",
			"name", left.node.Name(), "index", left.index)

		restoreIndex = 0
	}

	return restoreIndex, s.projector.Node(parent), true
}

// Items returns the rows of the current directory.
func (s *State) Items() []view.SizeItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.projector.Node(s.current())
}

// Root returns the installed tree.
func (s *State) Root() *sizetree.Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.root
}

// Depth returns the number of opened directories below the root.
func (s *State) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.navigation)
}

// CurrentPath returns the filesystem path of the current directory, built from
// the names as listed on disk rather than the display names.
func (s *State) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := make([]string, 0, len(s.navigation)+1)
	parts = append(parts, s.rootPath)

	for _, f := range s.navigation {
		parts = append(parts, f.node.EntryName())
	}

	return filepath.Join(parts...)
}

// current returns the top of the navigation stack, or the root. Callers hold mu.
func (s *State) current() *sizetree.Node {
	if len(s.navigation) == 0 {
		return s.root
	}

	return s.navigation[len(s.navigation)-1].node
}
