package fill

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xolan/jt/internal/alloc"
	"github.com/xolan/jt/internal/attr"
	"github.com/xolan/jt/internal/task"
	"github.com/xolan/jt/internal/worklog"
)

type fakeQuerier struct {
	tasks []task.Task
	err   error
}

func (q *fakeQuerier) AssignedTasks(_ context.Context) ([]task.Task, error) {
	return q.tasks, q.err
}

type fakeSubmitter struct {
	errs      map[string]error
	submitted []worklog.Entry
}

func (s *fakeSubmitter) Submit(_ context.Context, e worklog.Entry) error {
	s.submitted = append(s.submitted, e)
	return s.errs[e.TaskKey]
}

func monday() time.Time {
	return time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)
}

func testRunner(q Querier, s worklog.Submitter) *Runner {
	return NewRunner(Options{
		Querier:   q,
		Submitter: s,
		Store: attr.NewStore(
			[]attr.Rule{{Key: "_Account_", Name: "Account", WorkAttributeID: 1, Value: "INTERNAL"}},
			[]attr.Rule{{Key: "_Activity_", Name: "Activity", WorkAttributeID: 2, Value: "/customfield_12345/value"}},
			nil,
		),
		StaticTasks: []task.Task{
			{Key: "OPS-7", Summary: "Standup", Source: task.SourceStatic},
		},
		TargetMinutes:  480,
		DefaultMinutes: 480,
	})
}

func remoteTasks() []task.Task {
	return []task.Task{
		{
			Key:     "PROJ-1",
			Summary: "Fix login",
			Fields: map[string]any{
				"summary":           "Fix login",
				"customfield_12345": map[string]any{"value": "X"},
			},
			Source: task.SourceRemote,
		},
		{
			Key:     "PROJ-2",
			Summary: "Upgrade CI",
			Fields:  map[string]any{"summary": "Upgrade CI"},
			Source:  task.SourceRemote,
		},
	}
}

func TestCandidates(t *testing.T) {
	runner := testRunner(&fakeQuerier{tasks: remoteTasks()}, &fakeSubmitter{})

	candidates, err := runner.Candidates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("expected remote + static candidates, got %d", len(candidates))
	}
	if candidates[2].Key != "OPS-7" {
		t.Errorf("static task should come last, got %v", candidates[2].Key)
	}
}

func TestCandidatesQueryFailureIsFatal(t *testing.T) {
	runner := testRunner(&fakeQuerier{err: errors.New("boom")}, &fakeSubmitter{})

	_, err := runner.Candidates(context.Background())
	if err == nil {
		t.Fatal("expected the query failure to propagate")
	}
	if runner.Phase() != PhaseFailed {
		t.Errorf("expected PhaseFailed, got %v", runner.Phase())
	}
}

func TestPlanBuildsEntriesAndWarnings(t *testing.T) {
	runner := testRunner(&fakeQuerier{tasks: remoteTasks()}, &fakeSubmitter{})
	candidates, err := runner.Candidates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := []DaySelection{
		{
			Date: monday(),
			Selections: []alloc.Selection{
				{TaskKey: "PROJ-1"},
				{TaskKey: "PROJ-2"},
			},
		},
		{
			Date: monday().AddDate(0, 0, 1),
			Selections: []alloc.Selection{
				{TaskKey: "OPS-7", PinnedMinutes: 480},
			},
		},
	}

	plan := runner.Plan(candidates, days)

	if len(plan.Days) != 2 {
		t.Fatalf("expected 2 day plans, got %d", len(plan.Days))
	}
	if len(plan.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(plan.Entries))
	}

	// Monday splits the target evenly.
	if plan.Entries[0].TimeSpentMinutes != 240 || plan.Entries[1].TimeSpentMinutes != 240 {
		t.Errorf("monday allocation wrong: %d/%d", plan.Entries[0].TimeSpentMinutes, plan.Entries[1].TimeSpentMinutes)
	}
	// PROJ-1 resolves both layers; PROJ-2 and OPS-7 miss the pointer.
	if len(plan.Entries[0].Attributes) != 2 {
		t.Errorf("PROJ-1 should carry static + dynamic attributes, got %+v", plan.Entries[0].Attributes)
	}
	if len(plan.Entries[1].Attributes) != 1 {
		t.Errorf("PROJ-2 should carry only the static attribute, got %+v", plan.Entries[1].Attributes)
	}

	// Two pointer misses are warnings, not failures.
	misses := 0
	for _, w := range plan.Warnings {
		if strings.Contains(w, "path not found") {
			misses++
		}
	}
	if misses != 2 {
		t.Errorf("expected 2 recorded pointer misses, got %d: %v", misses, plan.Warnings)
	}
}

func TestPlanUnknownSelectionIsSkipped(t *testing.T) {
	runner := testRunner(&fakeQuerier{tasks: remoteTasks()}, &fakeSubmitter{})
	candidates, _ := runner.Candidates(context.Background())

	days := []DaySelection{
		{
			Date: monday(),
			Selections: []alloc.Selection{
				{TaskKey: "PROJ-1"},
				{TaskKey: "GHOST-1"},
			},
		},
	}

	plan := runner.Plan(candidates, days)

	if len(plan.Entries) != 1 {
		t.Fatalf("expected only the known task to build, got %d entries", len(plan.Entries))
	}
	found := false
	for _, w := range plan.Warnings {
		if strings.Contains(w, "GHOST-1") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning about the unknown selection: %v", plan.Warnings)
	}
}

func TestPlanMismatchIsAWarning(t *testing.T) {
	runner := testRunner(&fakeQuerier{tasks: remoteTasks()}, &fakeSubmitter{})
	candidates, _ := runner.Candidates(context.Background())

	days := []DaySelection{
		{
			Date: monday(),
			Selections: []alloc.Selection{
				{TaskKey: "PROJ-1", PinnedMinutes: 300},
			},
		},
	}

	plan := runner.Plan(candidates, days)

	if len(plan.Entries) != 1 || plan.Entries[0].TimeSpentMinutes != 300 {
		t.Fatalf("pinned entry should build as pinned: %+v", plan.Entries)
	}
	if len(plan.Days[0].Warnings) == 0 {
		t.Error("expected an allocation mismatch warning")
	}
}

func TestSubmitRunsToDone(t *testing.T) {
	submitter := &fakeSubmitter{
		errs: map[string]error{
			"PROJ-2": &worklog.TransportError{Err: errors.New("timeout")},
		},
	}
	runner := testRunner(&fakeQuerier{tasks: remoteTasks()}, submitter)
	candidates, _ := runner.Candidates(context.Background())

	days := []DaySelection{
		{Date: monday(), Selections: []alloc.Selection{{TaskKey: "PROJ-1"}, {TaskKey: "PROJ-2"}}},
	}
	plan := runner.Plan(candidates, days)

	outcomes := runner.Submit(context.Background(), plan)

	if runner.Phase() != PhaseDone {
		t.Errorf("expected PhaseDone, got %v", runner.Phase())
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Status != worklog.StatusSubmitted || outcomes[1].Status != worklog.StatusTransportFailed {
		t.Errorf("outcomes wrong: %v / %v", outcomes[0].Status, outcomes[1].Status)
	}

	report := &Report{Plan: plan, Outcomes: outcomes}
	if report.State() != PartiallySubmitted {
		t.Errorf("expected PartiallySubmitted, got %v", report.State())
	}
	if report.Submitted() != 1 {
		t.Errorf("expected 1 submitted, got %d", report.Submitted())
	}
}

func TestReportState(t *testing.T) {
	entry := worklog.Entry{TaskKey: "PROJ-1"}
	tests := []struct {
		name     string
		outcomes []worklog.Outcome
		want     SubmissionState
	}{
		{
			name: "all submitted",
			outcomes: []worklog.Outcome{
				{Entry: entry, Status: worklog.StatusSubmitted},
			},
			want: AllSubmitted,
		},
		{
			name: "nothing submitted",
			outcomes: []worklog.Outcome{
				{Entry: entry, Status: worklog.StatusTransportFailed},
			},
			want: NothingSubmitted,
		},
		{
			name: "partially submitted",
			outcomes: []worklog.Outcome{
				{Entry: entry, Status: worklog.StatusSubmitted},
				{Entry: entry, Status: worklog.StatusRejected},
			},
			want: PartiallySubmitted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &Report{Outcomes: tt.outcomes}
			if got := report.State(); got != tt.want {
				t.Errorf("State() = %v, want %v", got, tt.want)
			}
		})
	}
}
