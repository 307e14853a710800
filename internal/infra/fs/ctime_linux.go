//go:build linux

package fs

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// creationTime prefers the statx birth time and falls back to the inode
// change time on filesystems or kernels that do not record one.
func creationTime(path string) (time.Time, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME|unix.STATX_CTIME, &stx)
	if err == nil {
		if stx.Mask&unix.STATX_BTIME != 0 {
			return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), nil
		}
		return time.Unix(stx.Ctime.Sec, int64(stx.Ctime.Nsec)), nil
	}
	if !errors.Is(err, unix.ENOSYS) {
		return time.Time{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}

	info, err := os.Lstat(path)
	if err != nil {
		return time.Time{}, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, fmt.Errorf("no stat data for %s", path)
	}
	return time.Unix(st.Ctim.Unix()), nil
}
