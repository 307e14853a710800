package domain

import "io/fs"

// EntryKind classifies a directory entry. Only PlainFile entries are
// renamed.
type EntryKind int

const (
	PlainFile EntryKind = iota
	Directory
	Symlink
	Special
	Missing
)

func (k EntryKind) String() string {
	switch k {
	case PlainFile:
		return "plain file"
	case Directory:
		return "directory"
	case Symlink:
		return "symlink"
	case Special:
		return "special file"
	default:
		return "missing"
	}
}

// ClassifyMode maps an Lstat mode to an EntryKind.
func ClassifyMode(mode fs.FileMode) EntryKind {
	switch {
	case mode.IsRegular():
		return PlainFile
	case mode.IsDir():
		return Directory
	case mode&fs.ModeSymlink != 0:
		return Symlink
	default:
		return Special
	}
}
