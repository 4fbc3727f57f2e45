package probe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrClusterSize is returned when the cluster size of the volume holding a scan root cannot be determined.
var ErrClusterSize = errors.New("cannot determine cluster size")

// Kind names an on-disk size policy.
type Kind string

const (
	// Logical reports the logical size as the on-disk size.
	Logical Kind = "logical"
	// Cluster rounds the logical size up to a multiple of the volume cluster size.
	Cluster Kind = "cluster"
	// Allocated asks the operating system for the space actually allocated to the file.
	Allocated Kind = "allocated"
)

// Kinds lists every supported policy kind.
func Kinds() []Kind {
	return []Kind{Logical, Cluster, Allocated}
}

// ParseKind converts a policy name into a Kind.
func ParseKind(s string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range Kinds() {
		if k == kind {
			return k, nil
		}
	}

	return "", fmt.Errorf("unknown size policy %q: must be one of %v", s, Kinds())
}

// Policy computes the on-disk size of a file given its logical size.
type Policy interface {
	// Kind returns the kind of the policy.
	Kind() Kind
	// OnDiskSize returns the bytes consumed on storage by the file at path.
	OnDiskSize(path string, logical uint64) uint64
}

// New returns the policy of the given kind for the volume containing root.
// The cluster policy queries the cluster size once here; failing to do so
// is reported as ErrClusterSize.
func New(kind Kind, root string) (Policy, error) {
	switch kind {
	case Logical:
		return logicalPolicy{}, nil
	case Cluster:
		size, err := clusterSize(root)
		if err != nil {
			return nil, fmt.Errorf("%w for %q: %w", ErrClusterSize, root, err)
		}

		if size == 0 {
			return nil, fmt.Errorf("%w for %q: volume reports zero", ErrClusterSize, root)
		}

		return clusterPolicy{size: size}, nil
	case Allocated:
		return allocatedPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown size policy %q", kind)
	}
}

// RoundUp returns the smallest multiple of cluster that is >= size.
func RoundUp(size, cluster uint64) uint64 {
	if cluster == 0 || size == 0 {
		return size
	}

	return (size + cluster - 1) / cluster * cluster
}

type logicalPolicy struct{}

func (logicalPolicy) Kind() Kind { return Logical }

func (logicalPolicy) OnDiskSize(_ string, logical uint64) uint64 { return logical }

type clusterPolicy struct {
	size uint64
}

func (clusterPolicy) Kind() Kind { return Cluster }

func (p clusterPolicy) OnDiskSize(_ string, logical uint64) uint64 {
	return RoundUp(logical, p.size)
}

type allocatedPolicy struct{}

func (allocatedPolicy) Kind() Kind { return Allocated }

// OnDiskSize falls back to the logical size when the allocation query fails.
func (allocatedPolicy) OnDiskSize(path string, logical uint64) uint64 {
	size, ok := allocatedSize(path)
	if !ok {
		return logical
	}

	return size
}

// Probe reads file sizes using a fixed policy.
type Probe struct {
	policy Policy
	logger *log.Logger
}

// NewProbe creates a Probe. A nil logger discards output.
func NewProbe(policy Policy, logger *log.Logger) *Probe {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Probe{policy: policy, logger: logger}
}

// Policy returns the policy in use.
func (p *Probe) Policy() Policy {
	return p.policy
}

// LogicalSize returns the length reported by the file metadata, or 0 if the
// metadata cannot be read.
func (p *Probe) LogicalSize(path string) uint64 {
	info, err := os.Stat(path)
	if err != nil {
		p.logger.Warn("failed to read file size", "path", path, "err", err)

		return 0
	}

	return uint64(info.Size()) //nolint:gosec // Size of a stat'ed file is never negative
}

// Sizes returns the logical and on-disk size of the file at path.
func (p *Probe) Sizes(path string) (logical, onDisk uint64) {
	logical = p.LogicalSize(path)

	return logical, p.policy.OnDiskSize(path, logical)
}
