//go:build windows

package probe

import (
	"path/filepath"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// DefaultKind is the policy used when none is configured.
const DefaultKind = Cluster

// invalidFileSize is INVALID_FILE_SIZE as returned by GetCompressedFileSizeW.
const invalidFileSize = 0xFFFFFFFF

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procGetDiskFreeSpaceW     = kernel32.NewProc("GetDiskFreeSpaceW")
	procGetCompressedFileSize = kernel32.NewProc("GetCompressedFileSizeW")
)

// clusterSize returns sectors-per-cluster times bytes-per-sector for the volume containing path.
func clusterSize(path string) (uint64, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}

	volume := filepath.VolumeName(abs) + `\`

	name, err := windows.UTF16PtrFromString(volume)
	if err != nil {
		return 0, err
	}

	var sectorsPerCluster, bytesPerSector, freeClusters, totalClusters uint32

	r1, _, callErr := procGetDiskFreeSpaceW.Call(
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(&sectorsPerCluster)),
		uintptr(unsafe.Pointer(&bytesPerSector)),
		uintptr(unsafe.Pointer(&freeClusters)),
		uintptr(unsafe.Pointer(&totalClusters)),
	)
	if r1 == 0 {
		return 0, callErr
	}

	return uint64(sectorsPerCluster) * uint64(bytesPerSector), nil
}

// allocatedSize queries the compressed (allocated) size of path.
func allocatedSize(path string) (uint64, bool) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, false
	}

	var high uint32

	low, _, callErr := procGetCompressedFileSize.Call(
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(&high)),
	)
	if uint32(low) == invalidFileSize {
		if errno, ok := callErr.(syscall.Errno); !ok || errno != 0 {
			return 0, false
		}
	}

	return uint64(high)<<32 | uint64(uint32(low)), true
}
