// Package fsprobe is the per-platform metadata capability the core
// consumes instead of talking to os.FileInfo.Sys() directly, so the
// walker and builder stay free of build tags.
package fsprobe

import "os"

// Identity names a file for hardlink purposes: device, inode, and the
// total number of hardlinks the file has. On platforms without the
// concept (stub build), every file reports a unique identity.
type Identity struct {
	Device uint64
	Inode  uint64
	Nlink  uint64
}

// Probe extracts platform metadata from a stat result.
type Probe interface {
	// DeviceOf returns the device id containing path.
	DeviceOf(path string) (uint64, error)
	// Identity extracts hardlink identity from file metadata.
	Identity(info os.FileInfo) Identity
	// SizeOnDisk returns actual block usage for a file, given its
	// directory entry name and stat result.
	SizeOnDisk(parentPath, name string, info os.FileInfo) uint64
	// ApparentSize is always info.Size(); kept on the interface so
	// callers don't need a second capability for the common case.
	ApparentSize(info os.FileInfo) uint64
}
