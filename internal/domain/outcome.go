package domain

import "time"

type OutcomeKind int

const (
	Renamed OutcomeKind = iota
	SkippedPrefixed
	SkippedNotFile
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Renamed:
		return "renamed"
	case SkippedPrefixed:
		return "skipped (already prefixed)"
	case SkippedNotFile:
		return "skipped (not a file)"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the per-entry result of a run. NewName and CreatedAt are set
// for Renamed, Err for Failed.
type Outcome struct {
	Kind      OutcomeKind
	Name      string
	NewName   string
	CreatedAt time.Time
	Err       error
}

func RenamedOutcome(item RenameItem) Outcome {
	return Outcome{Kind: Renamed, Name: item.Name, NewName: item.NewName, CreatedAt: item.CreatedAt}
}

func FailedOutcome(name string, err error) Outcome {
	return Outcome{Kind: Failed, Name: name, Err: err}
}

type Report struct {
	Dir             string
	DryRun          bool
	Outcomes        []Outcome
	Renamed         int
	SkippedPrefixed int
	SkippedNotFile  int
	Failed          int
}

// Summarize folds per-entry outcomes into a report. Outcome order is kept.
func Summarize(dir string, outcomes []Outcome) Report {
	report := Report{Dir: dir, Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Kind {
		case Renamed:
			report.Renamed++
		case SkippedPrefixed:
			report.SkippedPrefixed++
		case SkippedNotFile:
			report.SkippedNotFile++
		case Failed:
			report.Failed++
		}
	}
	return report
}

func (r Report) Renames() []Outcome {
	return r.filter(Renamed)
}

func (r Report) Failures() []Outcome {
	return r.filter(Failed)
}

func (r Report) Skipped() int {
	return r.SkippedPrefixed + r.SkippedNotFile
}

func (r Report) filter(kind OutcomeKind) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}
