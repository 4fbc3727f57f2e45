package sizetree

import (
	"cmp"
	"slices"
)

// Node is a file or a directory in a scanned tree. Nodes are never modified
// after construction and may be shared freely between goroutines.
type Node struct {
	name     string
	entry    string
	dir      bool
	children []*Node
	logical  uint64
	onDisk   uint64
}

// NewFile creates a leaf node.
func NewFile(name string, logical, onDisk uint64) *Node {
	return &Node{name: name, logical: logical, onDisk: onDisk}
}

// NewDir creates a directory node owning children. The children are sorted
// by on-disk size, largest first; equal sizes keep their given order.
func NewDir(name string, children []*Node) *Node {
	slices.SortStableFunc(children, func(a, b *Node) int {
		return cmp.Compare(b.onDisk, a.onDisk)
	})

	n := &Node{name: name, dir: true, children: children}
	for _, c := range children {
		n.logical += c.logical
		n.onDisk += c.onDisk
	}

	return n
}

// Name returns the display name of the node.
func (n *Node) Name() string { return n.name }

// EntryName returns the name of the node as listed on disk. It differs from
// Name only when the listed name was replaced by InvalidName.
func (n *Node) EntryName() string {
	if n.entry == "" {
		return n.name
	}

	return n.entry
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.dir }

// IsFile reports whether the node is a leaf.
func (n *Node) IsFile() bool { return !n.dir }

// SizeLogical returns the logical size, summed over all descendants for a directory.
func (n *Node) SizeLogical() uint64 { return n.logical }

// SizeOnDisk returns the on-disk size, summed over all descendants for a directory.
func (n *Node) SizeOnDisk() uint64 { return n.onDisk }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i-th child in size order.
func (n *Node) Child(i int) *Node { return n.children[i] }

// Children returns a copy of the ordered children.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Index returns the position of child among the children of n, or -1.
func (n *Node) Index(child *Node) int {
	return slices.Index(n.children, child)
}
