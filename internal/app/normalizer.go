package app

import (
	"context"

	"inboxstamp/internal/domain"
	"inboxstamp/internal/logging"
)

// Normalizer prefixes every plain file in an inbox directory with its
// creation timestamp.
type Normalizer struct {
	FS     FileSystem
	Times  CreationTimeReader
	Logger logging.Logger
}

// Normalize plans and executes the renames for dir. With dryRun set the
// plan is reported without touching the filesystem.
func (n *Normalizer) Normalize(ctx context.Context, dir string, dryRun bool) (domain.Report, error) {
	planner := Planner{FS: n.FS, Times: n.Times, Logger: n.Logger}
	plan, err := planner.Plan(ctx, dir)
	if err != nil {
		return domain.Report{Dir: dir, DryRun: dryRun}, err
	}
	if dryRun {
		return plan.Preview(), nil
	}

	executor := Executor{FS: n.FS, Logger: n.Logger}
	return executor.Execute(ctx, plan)
}
