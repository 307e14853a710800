//go:build windows

package fs

import (
	"fmt"
	"os"
	"syscall"
	"time"
)

func creationTime(path string) (time.Time, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return time.Time{}, err
	}
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, fmt.Errorf("no attribute data for %s", path)
	}
	return time.Unix(0, data.CreationTime.Nanoseconds()), nil
}
