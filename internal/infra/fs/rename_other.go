//go:build !linux

package fs

func renameNoReplace(o OSFS, oldPath, newPath string) error {
	return checkedRename(o, oldPath, newPath)
}
