// Package task defines the candidate task model and the merge of remotely
// queried tasks with statically configured ones.
package task

import "fmt"

// Source indicates where a task came from.
type Source int

const (
	// SourceRemote marks a task returned by the issue tracker query.
	SourceRemote Source = iota
	// SourceStatic marks a task declared in the configuration file.
	SourceStatic
)

// Task is one candidate for work logging. Fields holds the task's raw
// field tree (decoded JSON) as returned by the tracker; static tasks
// usually carry none. A Task is read-only for the duration of a fill run.
type Task struct {
	Key     string
	Summary string
	Fields  map[string]any
	Source  Source
}

// String renders the task the way it is shown in pickers and reports.
func (t Task) String() string {
	if t.Summary == "" {
		return t.Key
	}
	return fmt.Sprintf("%s - %s", t.Key, t.Summary)
}
