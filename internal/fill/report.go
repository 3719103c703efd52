package fill

import "github.com/xolan/jt/internal/worklog"

// Report is what a fill run hands back to the CLI: the plan it executed
// and the per-entry submission outcomes.
type Report struct {
	Plan     *Plan
	Outcomes []worklog.Outcome
}

// Submitted returns how many entries the remote service accepted.
func (r *Report) Submitted() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == worklog.StatusSubmitted {
			n++
		}
	}
	return n
}

// SubmissionState summarises the run for the user. The distinction
// matters: a partial failure means specific entries need fixing and
// resubmitting, while a clean failure means nothing reached the service.
type SubmissionState int

const (
	// AllSubmitted means every entry was accepted.
	AllSubmitted SubmissionState = iota
	// NothingSubmitted means no entry was accepted.
	NothingSubmitted
	// PartiallySubmitted means some entries were accepted and some were
	// not; the failed ones need manual attention.
	PartiallySubmitted
)

// State classifies the outcome list.
func (r *Report) State() SubmissionState {
	submitted := r.Submitted()
	switch {
	case submitted == 0:
		return NothingSubmitted
	case submitted == len(r.Outcomes):
		return AllSubmitted
	default:
		return PartiallySubmitted
	}
}
