package app

import (
	"context"
	"errors"
	"path/filepath"

	"inboxstamp/internal/domain"
	appErrors "inboxstamp/internal/errors"
	"inboxstamp/internal/logging"
)

type Planner struct {
	FS         FileSystem
	Times      CreationTimeReader
	Logger     logging.Logger
	OnProgress ProgressFunc
}

// Plan lists dir once and decides, per entry, whether it is renamed and
// to what. Directory-level failures are returned as errors; entry-level
// failures end up in the plan's outcomes.
func (p *Planner) Plan(ctx context.Context, dir string) (domain.RenamePlan, error) {
	if p.FS == nil || p.Times == nil {
		return domain.RenamePlan{}, appErrors.Wrap(appErrors.Internal, "plan", dir, errors.New("planner requires FS and Times"))
	}

	stop := p.Logger.Measure("Planning renames")
	defer stop()

	info, err := p.FS.Stat(dir)
	if err != nil {
		return domain.RenamePlan{}, appErrors.Wrap(appErrors.DirectoryNotFound, "stat", dir, err)
	}
	if !info.IsDir() {
		return domain.RenamePlan{}, appErrors.Wrap(appErrors.DirectoryNotFound, "stat", dir, appErrors.ErrNotDirectory)
	}

	entries, err := p.FS.ReadDir(dir)
	if err != nil {
		return domain.RenamePlan{}, appErrors.Wrap(appErrors.DirectoryUnreadable, "readdir", dir, err)
	}
	p.Logger.Verbosef("Found %d entries in %s", len(entries), dir)

	plan := domain.RenamePlan{Dir: dir, Scanned: len(entries)}
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return plan, appErrors.Wrap(appErrors.Internal, "plan", dir, err)
		}

		item, outcome, ok := p.planEntry(dir, entry.Name())
		if ok {
			plan.Items = append(plan.Items, item)
		} else {
			plan.Outcomes = append(plan.Outcomes, outcome)
		}

		if p.OnProgress != nil {
			p.OnProgress(i+1, len(entries), entry.Name())
		}
	}

	p.Logger.Verbosef("Planned %d renames, %d entries left alone", len(plan.Items), len(plan.Outcomes))
	return plan, nil
}

func (p *Planner) planEntry(dir, name string) (domain.RenameItem, domain.Outcome, bool) {
	if domain.HasTimestampPrefix(name) {
		p.Logger.Verbosef("Skipping %s: already prefixed", name)
		return domain.RenameItem{}, domain.Outcome{Kind: domain.SkippedPrefixed, Name: name}, false
	}

	path := filepath.Join(dir, name)
	kind := domain.Missing
	if info, err := p.FS.Lstat(path); err == nil {
		kind = domain.ClassifyMode(info.Mode())
	}
	if kind != domain.PlainFile {
		p.Logger.Verbosef("Skipping %s: %s", name, kind)
		return domain.RenameItem{}, domain.Outcome{Kind: domain.SkippedNotFile, Name: name}, false
	}

	createdAt, err := p.Times.CreatedAt(path)
	if err != nil {
		p.Logger.Warnf("no creation time for %s: %v", name, err)
		return domain.RenameItem{}, domain.FailedOutcome(name, appErrors.Wrap(appErrors.TimestampUnavailable, "ctime", name, err)), false
	}

	newName := domain.PrefixedName(createdAt, name)
	return domain.RenameItem{
		Name:       name,
		NewName:    newName,
		SourcePath: path,
		TargetPath: filepath.Join(dir, newName),
		CreatedAt:  createdAt,
	}, domain.Outcome{}, true
}
