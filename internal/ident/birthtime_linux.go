//go:build linux

package ident

import (
	"time"

	"golang.org/x/sys/unix"
)

// CreationTime returns the file birth time reported by statx. Filesystems
// that do not record it fall back to the modification time.
func CreationTime(path string) (time.Time, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME|unix.STATX_MTIME, &stx)
	if err != nil {
		if err == unix.ENOSYS {
			return modTime(path)
		}
		return time.Time{}, err
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return modTime(path)
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), nil
}
