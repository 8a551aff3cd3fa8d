//go:build !unix

package fsprobe

import "os"

// stubProbe is used on platforms without a hardlink/device concept.
// Every file is treated as unique.
type stubProbe struct{}

// New returns the platform Probe. On non-unix GOOS, every file is
// reported as having a unique identity and size-on-disk equal to its
// apparent size.
func New() Probe { return stubProbe{} }

func (stubProbe) DeviceOf(path string) (uint64, error) {
	return 0, nil
}

func (stubProbe) Identity(info os.FileInfo) Identity {
	return Identity{Nlink: 1}
}

func (stubProbe) SizeOnDisk(parentPath, name string, info os.FileInfo) uint64 {
	return uint64(info.Size())
}

func (stubProbe) ApparentSize(info os.FileInfo) uint64 {
	return uint64(info.Size())
}
