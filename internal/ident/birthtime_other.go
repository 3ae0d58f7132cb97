//go:build !linux && !darwin && !freebsd && !windows

package ident

import "time"

// CreationTime falls back to the modification time on platforms without a
// native birth time
func CreationTime(path string) (time.Time, error) {
	return modTime(path)
}
