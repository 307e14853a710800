//go:build darwin || freebsd || netbsd

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
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, fmt.Errorf("no stat data for %s", path)
	}
	return time.Unix(st.Birthtimespec.Unix()), nil
}
