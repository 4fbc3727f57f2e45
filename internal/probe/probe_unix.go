//go:build linux || darwin || freebsd

package probe

import "golang.org/x/sys/unix"

// DefaultKind is the policy used when none is configured.
const DefaultKind = Allocated

// clusterSize returns the allocation unit of the filesystem containing path.
func clusterSize(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}

	//nolint:gosec // block size comes from the kernel, not user input
	return uint64(st.Bsize), nil
}

// allocatedSize returns the bytes allocated to path. Blocks is in 512-byte units.
func allocatedSize(path string) (uint64, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, false
	}

	if st.Blocks < 0 {
		return 0, false
	}

	return uint64(st.Blocks) * 512, true
}
