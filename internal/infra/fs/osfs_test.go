package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRenameMovesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	dst := filepath.Join(dir, "2024-01-01_120000_notes.txt")
	writeFile(t, src, "hello")

	if err := (OSFS{}).Rename(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("expected source to be gone, got %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil || string(b) != "hello" {
		t.Fatalf("unexpected destination content %q (%v)", b, err)
	}
}

func TestRenameRefusesToReplace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	dst := filepath.Join(dir, "2024-01-01_120000_notes.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	err := (OSFS{}).Rename(src, dst)
	if err == nil {
		t.Fatalf("expected collision error")
	}
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected collision, got %v", err)
	}
	b, _ := os.ReadFile(dst)
	if string(b) != "old" {
		t.Fatalf("destination was overwritten: %q", b)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source should still exist: %v", err)
	}
}

func TestCheckedRenameUsesRenameFunc(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "a")

	old := renameFunc
	renameFunc = func(oldpath, newpath string) error {
		return os.ErrPermission
	}
	defer func() { renameFunc = old }()

	if err := checkedRename(OSFS{}, src, filepath.Join(dir, "b.txt")); !os.IsPermission(err) {
		t.Fatalf("expected permission error, got %v", err)
	}
}

func TestCreatedAtIsRecent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fresh.txt")
	before := time.Now().Add(-time.Minute)
	writeFile(t, path, "x")

	created, err := (OSFS{}).CreatedAt(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Before(before) || created.After(time.Now().Add(time.Minute)) {
		t.Fatalf("creation time %v not close to now", created)
	}
}

func TestCreatedAtMissingFile(t *testing.T) {
	if _, err := (OSFS{}).CreatedAt(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	if ok, err := (OSFS{}).Exists(path); ok || err != nil {
		t.Fatalf("expected missing, got %v %v", ok, err)
	}
	writeFile(t, path, "a")
	if ok, err := (OSFS{}).Exists(path); !ok || err != nil {
		t.Fatalf("expected present, got %v %v", ok, err)
	}
}
