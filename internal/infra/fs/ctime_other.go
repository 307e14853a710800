//go:build !linux && !darwin && !freebsd && !netbsd && !windows

package fs

import (
	"os"
	"time"
)

// Platforms without a creation time use the modification time.
func creationTime(path string) (time.Time, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
