package app

import (
	"context"
	"errors"
	"io/fs"

	"inboxstamp/internal/domain"
	appErrors "inboxstamp/internal/errors"
	"inboxstamp/internal/logging"
)

type Executor struct {
	FS         FileSystem
	Logger     logging.Logger
	OnProgress ProgressFunc
}

// Execute renames every planned item in order. A failed rename is recorded
// and the next item is attempted. The returned report always covers the
// items handled so far; the error is non-nil only when ctx ends the run
// early.
func (e *Executor) Execute(ctx context.Context, plan domain.RenamePlan) (domain.Report, error) {
	if e.FS == nil {
		return domain.Summarize(plan.Dir, plan.Outcomes), appErrors.Wrap(appErrors.Internal, "execute", plan.Dir, errors.New("executor requires FS"))
	}

	stop := e.Logger.Measure("Renaming files")
	defer stop()

	outcomes := make([]domain.Outcome, 0, len(plan.Outcomes)+len(plan.Items))
	outcomes = append(outcomes, plan.Outcomes...)

	for i, item := range plan.Items {
		if err := ctx.Err(); err != nil {
			return domain.Summarize(plan.Dir, outcomes), appErrors.Wrap(appErrors.Internal, "execute", plan.Dir, err)
		}

		if err := e.FS.Rename(item.SourcePath, item.TargetPath); err != nil {
			if errors.Is(err, fs.ErrExist) {
				e.Logger.Warnf("%s not renamed: %s already exists", item.Name, item.NewName)
			} else {
				e.Logger.Warnf("%s not renamed: %v", item.Name, err)
			}
			outcomes = append(outcomes, domain.FailedOutcome(item.Name, appErrors.Wrap(appErrors.EntryRenameFailed, "rename", item.Name, err)))
		} else {
			e.Logger.Verbosef("Renamed %s -> %s", item.Name, item.NewName)
			outcomes = append(outcomes, domain.RenamedOutcome(item))
		}

		if e.OnProgress != nil {
			e.OnProgress(i+1, len(plan.Items), item.Name)
		}
	}

	return domain.Summarize(plan.Dir, outcomes), nil
}
