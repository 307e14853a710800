package domain

import "time"

type RenameItem struct {
	Name       string
	NewName    string
	SourcePath string
	TargetPath string
	CreatedAt  time.Time
}

// RenamePlan is built from a single listing of Dir. Outcomes holds the
// entries that will not be renamed (skips and timestamp failures).
type RenamePlan struct {
	Dir      string
	Scanned  int
	Items    []RenameItem
	Outcomes []Outcome
}

// Preview folds the plan into a report as if every item had been renamed.
func (p RenamePlan) Preview() Report {
	outcomes := make([]Outcome, 0, len(p.Outcomes)+len(p.Items))
	outcomes = append(outcomes, p.Outcomes...)
	for _, item := range p.Items {
		outcomes = append(outcomes, RenamedOutcome(item))
	}
	report := Summarize(p.Dir, outcomes)
	report.DryRun = true
	return report
}
