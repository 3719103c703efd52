// Package attr holds the work-attribute rules and resolves a task's final
// attribute set from them.
package attr

import "fmt"

// Rule describes one configured work attribute. For static rules Value is
// a literal; for dynamic rules it is an RFC 6901 JSON pointer evaluated
// against a task's field tree at fill time.
type Rule struct {
	// Key is the attribute key used by the remote system (e.g. "_Account_").
	Key string `toml:"key"`
	// Name is the display label shown in reports.
	Name string `toml:"name"`
	// WorkAttributeID identifies the metadata slot in the remote system.
	WorkAttributeID int `toml:"work_attribute_id"`
	// Value is a literal (static rule) or a JSON pointer (dynamic rule).
	Value string `toml:"value"`
	// Required marks a dynamic rule whose failure, with no static value
	// covering the same WorkAttributeID, fails resolution for the task.
	Required bool `toml:"required"`
}

// Resolved is a fully evaluated attribute attached to one work-log entry.
type Resolved struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	WorkAttributeID int    `json:"work_attribute_id"`
	Value           string `json:"value"`
}

// ResolutionFailure records a dynamic rule that did not resolve against a
// task. It is surfaced as a warning and does not stop the run.
type ResolutionFailure struct {
	TaskKey string
	RuleKey string
	Pointer string
	Err     error
}

// String renders the failure for warning output.
func (f ResolutionFailure) String() string {
	return fmt.Sprintf("%s: attribute %q: %v", f.TaskKey, f.RuleKey, f.Err)
}
