//go:build darwin || freebsd

package ident

import (
	"time"

	"golang.org/x/sys/unix"
)

// CreationTime returns the file birth time from stat
func CreationTime(path string) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, err
	}
	return time.Unix(st.Btim.Unix()), nil
}
