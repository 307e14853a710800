package fs

import (
	"io/fs"
	"os"
	"time"
)

// renameFunc is swapped in tests to simulate rename failures.
var renameFunc = os.Rename

type OSFS struct{}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OSFS) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

func (OSFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (OSFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Rename moves oldPath to newPath and fails with fs.ErrExist instead of
// replacing an existing newPath.
func (o OSFS) Rename(oldPath, newPath string) error {
	return renameNoReplace(o, oldPath, newPath)
}

// CreatedAt returns the creation time the platform reports for path,
// without following symlinks.
func (OSFS) CreatedAt(path string) (time.Time, error) {
	return creationTime(path)
}

func checkedRename(o OSFS, oldPath, newPath string) error {
	exists, err := o.Exists(newPath)
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
	}
	if exists {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrExist}
	}
	return renameFunc(oldPath, newPath)
}
