//go:build unix

package fsprobe

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// unixProbe reads device/inode/nlink/block-count from os.FileInfo.Sys().
// That value is always a *syscall.Stat_t (the stdlib syscall package's
// type, not golang.org/x/sys/unix's near-identical one), matching the
// assertion opencoff-go-fio's meta_unix.go and mknod_unixish.go make;
// golang.org/x/sys/unix is used only for the direct unix.Stat call in
// DeviceOf, which doesn't go through Sys() at all.
type unixProbe struct{}

// New returns the platform Probe for unix-like systems.
func New() Probe { return unixProbe{} }

func (unixProbe) DeviceOf(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return uint64(st.Dev), nil
}

func (unixProbe) Identity(info os.FileInfo) Identity {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return Identity{Nlink: 1}
	}
	return Identity{
		Device: uint64(st.Dev),
		Inode:  st.Ino,
		Nlink:  uint64(st.Nlink),
	}
}

func (unixProbe) SizeOnDisk(parentPath, name string, info os.FileInfo) uint64 {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return uint64(info.Size())
	}
	// st.Blocks is always in units of 512 bytes, regardless of the
	// filesystem's native block size.
	return uint64(st.Blocks) * 512
}

func (unixProbe) ApparentSize(info os.FileInfo) uint64 {
	return uint64(info.Size())
}
