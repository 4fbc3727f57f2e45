//go:build !(linux || darwin || freebsd || windows)

package probe

import "errors"

// DefaultKind is the policy used when none is configured.
const DefaultKind = Logical

func clusterSize(string) (uint64, error) {
	return 0, errors.New("cluster size query not supported on this platform")
}

func allocatedSize(string) (uint64, bool) {
	return 0, false
}
