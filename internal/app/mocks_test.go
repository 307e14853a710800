package app

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"time"
)

type mockEntry struct {
	name      string
	mode      fs.FileMode
	createdAt time.Time
	timeErr   error
}

// mockFS keeps a flat directory in memory. Renames mutate it so a second
// run sees the result of the first.
type mockFS struct {
	dir        string
	missing    bool
	notDir     bool
	readDirErr error
	entries    map[string]*mockEntry
	renameErrs map[string]error
	renames    [][2]string
}

func newMockFS(dir string, entries ...*mockEntry) *mockFS {
	m := &mockFS{dir: dir, entries: map[string]*mockEntry{}, renameErrs: map[string]error{}}
	for _, e := range entries {
		m.entries[e.name] = e
	}
	return m
}

func (m *mockFS) Stat(path string) (fs.FileInfo, error) {
	if path != m.dir || m.missing {
		return nil, fs.ErrNotExist
	}
	mode := fs.ModeDir
	if m.notDir {
		mode = 0
	}
	return mockFileInfo{name: filepath.Base(path), mode: mode}, nil
}

func (m *mockFS) Lstat(path string) (fs.FileInfo, error) {
	if filepath.Dir(path) != m.dir {
		return nil, fs.ErrNotExist
	}
	e, ok := m.entries[filepath.Base(path)]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return mockFileInfo{name: e.name, mode: e.mode}, nil
}

func (m *mockFS) ReadDir(path string) ([]fs.DirEntry, error) {
	if m.readDirErr != nil {
		return nil, m.readDirErr
	}
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]fs.DirEntry, 0, len(names))
	for _, name := range names {
		out = append(out, mockDirEntry{name: name, mode: m.entries[name].mode})
	}
	return out, nil
}

func (m *mockFS) Rename(oldPath, newPath string) error {
	oldName := filepath.Base(oldPath)
	newName := filepath.Base(newPath)
	if err, ok := m.renameErrs[oldName]; ok {
		return err
	}
	e, ok := m.entries[oldName]
	if !ok {
		return fs.ErrNotExist
	}
	if _, exists := m.entries[newName]; exists {
		return fs.ErrExist
	}
	delete(m.entries, oldName)
	e.name = newName
	m.entries[newName] = e
	m.renames = append(m.renames, [2]string{oldName, newName})
	return nil
}

func (m *mockFS) CreatedAt(path string) (time.Time, error) {
	e, ok := m.entries[filepath.Base(path)]
	if !ok {
		return time.Time{}, fs.ErrNotExist
	}
	if e.timeErr != nil {
		return time.Time{}, e.timeErr
	}
	return e.createdAt, nil
}

func (m *mockFS) names() []string {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type mockDirEntry struct {
	name string
	mode fs.FileMode
}

func (m mockDirEntry) Name() string               { return m.name }
func (m mockDirEntry) IsDir() bool                { return m.mode.IsDir() }
func (m mockDirEntry) Type() fs.FileMode          { return m.mode.Type() }
func (m mockDirEntry) Info() (fs.FileInfo, error) { return mockFileInfo{name: m.name, mode: m.mode}, nil }

type mockFileInfo struct {
	name string
	mode fs.FileMode
}

func (m mockFileInfo) Name() string       { return m.name }
func (m mockFileInfo) Size() int64        { return 0 }
func (m mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m mockFileInfo) IsDir() bool        { return m.mode.IsDir() }
func (m mockFileInfo) Sys() interface{}   { return nil }

var errTimestamp = errors.New("no birth time")
