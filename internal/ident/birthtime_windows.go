//go:build windows

package ident

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// CreationTime returns the NTFS creation time
func CreationTime(path string) (time.Time, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid path %s: %w", path, err)
	}

	var attrs windows.Win32FileAttributeData
	if err := windows.GetFileAttributesEx(name, windows.GetFileExInfoStandard, (*byte)(unsafe.Pointer(&attrs))); err != nil {
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return time.Unix(0, attrs.CreationTime.Nanoseconds()), nil
}
