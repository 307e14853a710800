package app

import (
	"io/fs"
	"time"
)

type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Lstat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Rename(oldPath, newPath string) error
}

type CreationTimeReader interface {
	CreatedAt(path string) (time.Time, error)
}

// ProgressFunc is called after each entry is handled.
type ProgressFunc func(current, total int, name string)
