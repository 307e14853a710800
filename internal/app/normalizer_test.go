package app

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"inboxstamp/internal/domain"
	appErrors "inboxstamp/internal/errors"
	"inboxstamp/internal/logging"
)

const inboxDir = "/vault/00_Inbox"

func scenarioFS(created time.Time) *mockFS {
	return newMockFS(inboxDir,
		&mockEntry{name: "notes.txt", createdAt: created},
		&mockEntry{name: "2024-01-01_120000_old.txt", createdAt: created},
		&mockEntry{name: "archive", mode: fs.ModeDir, createdAt: created},
	)
}

func newNormalizer(m *mockFS) Normalizer {
	return Normalizer{FS: m, Times: m}
}

func TestNormalizeScenario(t *testing.T) {
	created := time.Date(2024, 10, 2, 15, 1, 30, 0, time.Local)
	mock := scenarioFS(created)
	n := newNormalizer(mock)

	report, err := n.Normalize(context.Background(), inboxDir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Renamed != 1 {
		t.Fatalf("expected 1 rename, got %d", report.Renamed)
	}
	if report.SkippedPrefixed != 1 || report.SkippedNotFile != 1 {
		t.Fatalf("unexpected skips: %+v", report)
	}

	want := []string{"2024-01-01_120000_old.txt", "2024-10-02_150130_notes.txt", "archive"}
	if got := mock.names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected names: %v", got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	created := time.Date(2024, 10, 2, 15, 1, 30, 0, time.Local)
	mock := scenarioFS(created)
	n := newNormalizer(mock)

	if _, err := n.Normalize(context.Background(), inboxDir, false); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := n.Normalize(context.Background(), inboxDir, false)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.Renamed != 0 {
		t.Fatalf("expected no renames on second run, got %d", report.Renamed)
	}
	if len(mock.renames) != 1 {
		t.Fatalf("expected exactly one rename overall, got %v", mock.renames)
	}
}

func TestNormalizeNewNameUsesCreationTime(t *testing.T) {
	a := time.Date(2023, 5, 6, 7, 8, 9, 0, time.Local)
	b := time.Date(2021, 12, 31, 23, 59, 58, 0, time.Local)
	mock := newMockFS(inboxDir,
		&mockEntry{name: "a.png", createdAt: a},
		&mockEntry{name: "b.md", createdAt: b},
	)
	n := newNormalizer(mock)

	report, err := n.Normalize(context.Background(), inboxDir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, o := range report.Renames() {
		if o.NewName != domain.FormatTimestamp(o.CreatedAt)+"_"+o.Name {
			t.Fatalf("unexpected new name %q for %q", o.NewName, o.Name)
		}
	}
	want := [][2]string{
		{"a.png", "2023-05-06_070809_a.png"},
		{"b.md", "2021-12-31_235958_b.md"},
	}
	if !reflect.DeepEqual(mock.renames, want) {
		t.Fatalf("unexpected renames: %v", mock.renames)
	}
}

func TestNormalizeIsolatesRenameFailures(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	mock := newMockFS(inboxDir,
		&mockEntry{name: "a.txt", createdAt: created},
		&mockEntry{name: "b.txt", createdAt: created},
		&mockEntry{name: "c.txt", createdAt: created},
		&mockEntry{name: "2024-01-02_030405_c.txt", createdAt: created},
	)
	mock.renameErrs["a.txt"] = fs.ErrPermission
	n := newNormalizer(mock)

	report, err := n.Normalize(context.Background(), inboxDir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Renamed != 1 || report.Failed != 2 {
		t.Fatalf("expected 1 renamed and 2 failed, got %+v", report)
	}

	failures := report.Failures()
	if failures[0].Name != "a.txt" || !errors.Is(failures[0].Err, fs.ErrPermission) {
		t.Fatalf("unexpected first failure: %+v", failures[0])
	}
	if failures[1].Name != "c.txt" || !errors.Is(failures[1].Err, fs.ErrExist) {
		t.Fatalf("unexpected second failure: %+v", failures[1])
	}
	for _, f := range failures {
		if appErrors.KindOf(f.Err) != appErrors.EntryRenameFailed {
			t.Fatalf("unexpected kind %s", appErrors.KindOf(f.Err))
		}
	}
}

func TestNormalizeIsolatesTimestampFailures(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	mock := newMockFS(inboxDir,
		&mockEntry{name: "a.txt", timeErr: errTimestamp},
		&mockEntry{name: "b.txt", createdAt: created},
	)
	n := newNormalizer(mock)

	report, err := n.Normalize(context.Background(), inboxDir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Renamed != 1 || report.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if appErrors.KindOf(report.Failures()[0].Err) != appErrors.TimestampUnavailable {
		t.Fatalf("expected timestamp failure, got %v", report.Failures()[0].Err)
	}
}

func TestNormalizeMissingDirectory(t *testing.T) {
	mock := scenarioFS(time.Now())
	mock.missing = true
	n := newNormalizer(mock)

	report, err := n.Normalize(context.Background(), inboxDir, false)
	if !appErrors.IsKind(err, appErrors.DirectoryNotFound) {
		t.Fatalf("expected DirectoryNotFound, got %v", err)
	}
	if report.Renamed != 0 || len(mock.renames) != 0 {
		t.Fatalf("expected no mutation")
	}
}

func TestNormalizeTargetIsNotDirectory(t *testing.T) {
	mock := scenarioFS(time.Now())
	mock.notDir = true
	n := newNormalizer(mock)

	_, err := n.Normalize(context.Background(), inboxDir, false)
	if !appErrors.IsKind(err, appErrors.DirectoryNotFound) || !errors.Is(err, appErrors.ErrNotDirectory) {
		t.Fatalf("expected DirectoryNotFound for a file, got %v", err)
	}
}

func TestNormalizeUnreadableDirectory(t *testing.T) {
	mock := scenarioFS(time.Now())
	mock.readDirErr = fs.ErrPermission
	n := newNormalizer(mock)

	_, err := n.Normalize(context.Background(), inboxDir, false)
	if !appErrors.IsKind(err, appErrors.DirectoryUnreadable) {
		t.Fatalf("expected DirectoryUnreadable, got %v", err)
	}
	if len(mock.renames) != 0 {
		t.Fatalf("expected no mutation")
	}
}

func TestNormalizeDryRunDoesNotRename(t *testing.T) {
	created := time.Date(2024, 10, 2, 15, 1, 30, 0, time.Local)
	mock := scenarioFS(created)
	n := newNormalizer(mock)

	report, err := n.Normalize(context.Background(), inboxDir, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.DryRun || report.Renamed != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(mock.renames) != 0 {
		t.Fatalf("dry run renamed files: %v", mock.renames)
	}
}

func TestPlannerSkipsSymlinks(t *testing.T) {
	mock := newMockFS(inboxDir,
		&mockEntry{name: "link.txt", mode: fs.ModeSymlink},
		&mockEntry{name: "fifo", mode: fs.ModeNamedPipe},
	)
	planner := Planner{FS: mock, Times: mock}

	plan, err := planner.Plan(context.Background(), inboxDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Items) != 0 || len(plan.Outcomes) != 2 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	for _, o := range plan.Outcomes {
		if o.Kind != domain.SkippedNotFile {
			t.Fatalf("expected not-a-file skip, got %v", o.Kind)
		}
	}
}

func TestPlannerReportsProgress(t *testing.T) {
	mock := scenarioFS(time.Now())
	var calls []int
	planner := Planner{FS: mock, Times: mock, OnProgress: func(current, total int, name string) {
		if total != 3 {
			t.Fatalf("unexpected total %d", total)
		}
		calls = append(calls, current)
	}}

	if _, err := planner.Plan(context.Background(), inboxDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(calls, []int{1, 2, 3}) {
		t.Fatalf("unexpected progress calls: %v", calls)
	}
}

func TestPlannerRequiresPorts(t *testing.T) {
	planner := Planner{}
	if _, err := planner.Plan(context.Background(), inboxDir); err == nil {
		t.Fatalf("expected error without ports")
	}
}

func TestExecutorStopsOnCancelledContext(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	mock := newMockFS(inboxDir,
		&mockEntry{name: "a.txt", createdAt: created},
		&mockEntry{name: "b.txt", createdAt: created},
	)
	planner := Planner{FS: mock, Times: mock}
	plan, err := planner.Plan(context.Background(), inboxDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	executor := Executor{FS: mock, OnProgress: func(current, total int, name string) {
		cancel()
	}}

	report, err := executor.Execute(ctx, plan)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if report.Renamed != 1 {
		t.Fatalf("expected the first rename to stick, got %d", report.Renamed)
	}
	if _, ok := mock.entries[filepath.Base(plan.Items[0].TargetPath)]; !ok {
		t.Fatalf("expected first file renamed")
	}
}

func TestExecutorLogsCollisions(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	mock := newMockFS(inboxDir,
		&mockEntry{name: "a.txt", createdAt: created},
		&mockEntry{name: "b.txt", createdAt: created},
		&mockEntry{name: "2024-01-02_030405_a.txt", createdAt: created},
	)
	mock.renameErrs["b.txt"] = fs.ErrPermission

	var buf bytes.Buffer
	n := Normalizer{FS: mock, Times: mock, Logger: logging.New(&buf, false)}
	if _, err := n.Normalize(context.Background(), inboxDir, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "a.txt not renamed: 2024-01-02_030405_a.txt already exists") {
		t.Fatalf("expected collision line, got:\n%s", out)
	}
	if !strings.Contains(out, "b.txt not renamed: permission denied") {
		t.Fatalf("expected permission line, got:\n%s", out)
	}
}
