// Package fill orchestrates a timesheet fill run: aggregate candidate
// tasks, resolve attributes, allocate minutes, build entries and submit
// them. Failures during resolution, allocation and building are recorded
// per task or day; only a failed task query aborts the run.
package fill

import (
	"context"
	"fmt"
	"time"

	"github.com/xolan/jt/internal/alloc"
	"github.com/xolan/jt/internal/attr"
	"github.com/xolan/jt/internal/task"
	"github.com/xolan/jt/internal/worklog"
)

// Phase tracks where a fill run currently stands.
type Phase int

const (
	PhaseAggregating Phase = iota
	PhaseResolving
	PhaseAllocating
	PhaseBuilding
	PhaseSubmitting
	PhaseDone
	// PhaseFailed is terminal and only reachable from PhaseAggregating:
	// without the remote task list there is nothing to fill.
	PhaseFailed
)

// String returns the phase label used in progress output.
func (p Phase) String() string {
	switch p {
	case PhaseAggregating:
		return "aggregating"
	case PhaseResolving:
		return "resolving"
	case PhaseAllocating:
		return "allocating"
	case PhaseBuilding:
		return "building"
	case PhaseSubmitting:
		return "submitting"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Querier fetches the worker's assigned tasks from the tracker.
type Querier interface {
	AssignedTasks(ctx context.Context) ([]task.Task, error)
}

// DaySelection names the tasks the user picked for one workday.
type DaySelection struct {
	Date       time.Time
	Selections []alloc.Selection
}

// DayPlan is the planned work for one day: allocations, built entries and
// any warnings gathered while planning it.
type DayPlan struct {
	Date        time.Time
	Allocations []alloc.Allocation
	Entries     []worklog.Entry
	Warnings    []string
}

// Plan is the full week's planned entries, in construction order, plus
// all accumulated warnings.
type Plan struct {
	Days     []DayPlan
	Entries  []worklog.Entry
	Warnings []string
}

// Options configures a Runner.
type Options struct {
	Querier   Querier
	Submitter worklog.Submitter
	Store     *attr.Store
	// StaticTasks are merged with the queried tasks.
	StaticTasks []task.Task
	// TargetMinutes is the daily target; zero disables target allocation.
	TargetMinutes int
	// DefaultMinutes is the fallback duration for unpinned tasks when no
	// target applies.
	DefaultMinutes int
	// FailureThreshold aborts submission after this many failed entries.
	FailureThreshold int
}

// Runner drives one fill run through its phases.
type Runner struct {
	opts  Options
	phase Phase
}

// NewRunner creates a Runner in the aggregating phase.
func NewRunner(opts Options) *Runner {
	return &Runner{opts: opts, phase: PhaseAggregating}
}

// Phase returns the run's current phase.
func (r *Runner) Phase() Phase {
	return r.phase
}

// Candidates queries the tracker and merges the result with the static
// tasks. A query failure is fatal and moves the run to PhaseFailed.
func (r *Runner) Candidates(ctx context.Context) ([]task.Task, error) {
	remote, err := r.opts.Querier.AssignedTasks(ctx)
	if err != nil {
		r.phase = PhaseFailed
		return nil, err
	}
	return task.Merge(remote, r.opts.StaticTasks), nil
}

// Plan resolves attributes, allocates minutes and builds entries for the
// selected days. Per-task and per-day problems become warnings on the
// plan; the run carries on with whatever entries were built.
func (r *Runner) Plan(candidates []task.Task, days []DaySelection) *Plan {
	byKey := make(map[string]task.Task, len(candidates))
	for _, t := range candidates {
		byKey[t.Key] = t
	}

	type resolution struct {
		attributes []attr.Resolved
		err        error
	}
	resolved := make(map[string]resolution)
	plan := &Plan{}

	// Resolving: each selected task's attribute set, computed once.
	r.phase = PhaseResolving
	for _, day := range days {
		for _, sel := range day.Selections {
			if _, done := resolved[sel.TaskKey]; done {
				continue
			}
			t, ok := byKey[sel.TaskKey]
			if !ok {
				resolved[sel.TaskKey] = resolution{err: fmt.Errorf("task %s is not a candidate", sel.TaskKey)}
				plan.Warnings = append(plan.Warnings, fmt.Sprintf("%s: not in the candidate list, skipped", sel.TaskKey))
				continue
			}
			attributes, failures, err := r.opts.Store.Resolve(t)
			for _, f := range failures {
				plan.Warnings = append(plan.Warnings, f.String())
			}
			if err != nil {
				plan.Warnings = append(plan.Warnings, err.Error())
			}
			resolved[sel.TaskKey] = resolution{attributes: attributes, err: err}
		}
	}

	for _, day := range days {
		// Allocating: distribute the day's target over its selections.
		r.phase = PhaseAllocating
		result := alloc.Distribute(r.opts.TargetMinutes, r.opts.DefaultMinutes, day.Selections)

		dayPlan := DayPlan{Date: day.Date, Allocations: result.Allocations}
		if result.Mismatch != nil {
			dayPlan.Warnings = append(dayPlan.Warnings, result.Mismatch.String())
		}

		// Building: one entry per allocation that survived resolution.
		r.phase = PhaseBuilding
		for _, a := range result.Allocations {
			res, ok := resolved[a.TaskKey]
			if !ok || res.err != nil {
				continue
			}
			e, err := worklog.Build(byKey[a.TaskKey], res.attributes, day.Date, a.Minutes)
			if err != nil {
				dayPlan.Warnings = append(dayPlan.Warnings, err.Error())
				continue
			}
			dayPlan.Entries = append(dayPlan.Entries, e)
		}

		plan.Warnings = append(plan.Warnings, dayPlan.Warnings...)
		plan.Entries = append(plan.Entries, dayPlan.Entries...)
		plan.Days = append(plan.Days, dayPlan)
	}

	return plan
}

// Submit sends the planned entries through the coordinator and finishes
// the run. Entries that failed construction were never part of the plan,
// so a partially warned plan still submits.
func (r *Runner) Submit(ctx context.Context, plan *Plan) []worklog.Outcome {
	r.phase = PhaseSubmitting
	coordinator := worklog.NewCoordinator(r.opts.Submitter, r.opts.FailureThreshold)
	outcomes := coordinator.SubmitAll(ctx, plan.Entries)
	r.phase = PhaseDone
	return outcomes
}
