// Package worklog builds submittable work-log entries and coordinates
// their submission to the remote timesheet service.
package worklog

import (
	"errors"
	"fmt"
	"time"

	"github.com/xolan/jt/internal/attr"
	"github.com/xolan/jt/internal/task"
)

// ErrNonPositiveDuration is returned by Build for durations of zero or
// less; the remote service would reject such an entry anyway.
var ErrNonPositiveDuration = errors.New("duration must be positive")

// Entry is one submittable work-log record: a task, a calendar day, a
// duration and the task's resolved attributes.
type Entry struct {
	TaskKey          string          `json:"task_key"`
	Summary          string          `json:"summary,omitempty"`
	Date             time.Time       `json:"date"`
	TimeSpentMinutes int             `json:"time_spent_minutes"`
	Attributes       []attr.Resolved `json:"attributes,omitempty"`
}

// Build combines a task, its resolved attributes, a date and an allocated
// duration into an Entry. It fails only on a non-positive duration.
func Build(t task.Task, attributes []attr.Resolved, date time.Time, minutes int) (Entry, error) {
	if minutes <= 0 {
		return Entry{}, fmt.Errorf("%s on %s: %w", t.Key, date.Format("2006-01-02"), ErrNonPositiveDuration)
	}
	return Entry{
		TaskKey:          t.Key,
		Summary:          t.Summary,
		Date:             date,
		TimeSpentMinutes: minutes,
		Attributes:       attributes,
	}, nil
}
