package attr

import (
	"fmt"

	"github.com/xolan/jt/internal/fieldpath"
	"github.com/xolan/jt/internal/task"
)

// Store holds the configured attribute rules for a fill run. It is built
// once from configuration and read-only afterwards.
type Store struct {
	// Static rules carry literal values applied to every task.
	Static []Rule
	// Dynamic rules carry JSON pointers resolved per task.
	Dynamic []Rule
	// TaskOverrides maps a static task's key to its own rules, which win
	// over everything else for that task.
	TaskOverrides map[string][]Rule
}

// NewStore builds a Store from the configured rule lists.
func NewStore(static, dynamic []Rule, overrides map[string][]Rule) *Store {
	return &Store{Static: static, Dynamic: dynamic, TaskOverrides: overrides}
}

// Resolve computes the final attribute set for a task by layering rules in
// precedence order: global static first, then dynamic, then task-specific
// static overrides. Later layers replace earlier ones sharing the same
// WorkAttributeID; attribute order follows first application, so the output
// is deterministic.
//
// Failed dynamic rules are collected rather than aborting the other rules.
// Resolve returns an error only when a required dynamic rule failed and no
// other layer supplied a value for its WorkAttributeID.
func (s *Store) Resolve(t task.Task) ([]Resolved, []ResolutionFailure, error) {
	var order []int
	byID := make(map[int]Resolved)

	apply := func(r Resolved) {
		if _, ok := byID[r.WorkAttributeID]; !ok {
			order = append(order, r.WorkAttributeID)
		}
		byID[r.WorkAttributeID] = r
	}

	for _, rule := range s.Static {
		apply(Resolved{
			Key:             rule.Key,
			Name:            rule.Name,
			WorkAttributeID: rule.WorkAttributeID,
			Value:           rule.Value,
		})
	}

	var failures []ResolutionFailure
	failedRequired := make(map[int]ResolutionFailure)
	for _, rule := range s.Dynamic {
		value, err := fieldpath.Resolve(anyFields(t), rule.Value)
		if err != nil {
			failure := ResolutionFailure{
				TaskKey: t.Key,
				RuleKey: rule.Key,
				Pointer: rule.Value,
				Err:     err,
			}
			failures = append(failures, failure)
			if rule.Required {
				failedRequired[rule.WorkAttributeID] = failure
			}
			continue
		}
		apply(Resolved{
			Key:             rule.Key,
			Name:            rule.Name,
			WorkAttributeID: rule.WorkAttributeID,
			Value:           value,
		})
	}

	for _, rule := range s.TaskOverrides[t.Key] {
		apply(Resolved{
			Key:             rule.Key,
			Name:            rule.Name,
			WorkAttributeID: rule.WorkAttributeID,
			Value:           rule.Value,
		})
	}

	for id, failure := range failedRequired {
		if _, covered := byID[id]; !covered {
			return nil, failures, fmt.Errorf("task %s: required attribute %q did not resolve: %w", t.Key, failure.RuleKey, failure.Err)
		}
	}

	resolved := make([]Resolved, 0, len(order))
	for _, id := range order {
		resolved = append(resolved, byID[id])
	}
	return resolved, failures, nil
}

// anyFields widens the field tree for the pointer walk; a nil map still
// walks (and fails) cleanly.
func anyFields(t task.Task) any {
	if t.Fields == nil {
		return map[string]any{}
	}
	return t.Fields
}
