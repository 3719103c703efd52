// Package alloc distributes a day's target minutes across the tasks
// selected for that day.
package alloc

import "fmt"

// Selection is one task chosen for a day. PinnedMinutes > 0 fixes the
// task's duration; 0 leaves it to the allocator.
type Selection struct {
	TaskKey       string
	PinnedMinutes int
}

// Allocation is the computed duration for one selected task.
type Allocation struct {
	TaskKey string
	Minutes int
}

// Mismatch reports that a day's allocations cannot meet the target. It is
// a warning: the user may intentionally log more or less than the target.
type Mismatch struct {
	Target    int
	Allocated int
}

// String renders the mismatch for warning output.
func (m Mismatch) String() string {
	return fmt.Sprintf("allocated %dm does not match the daily target of %dm", m.Allocated, m.Target)
}

// Result holds a day's allocations and an optional mismatch warning.
type Result struct {
	Allocations []Allocation
	Mismatch    *Mismatch
}

// Total returns the summed minutes of all allocations.
func (r Result) Total() int {
	total := 0
	for _, a := range r.Allocations {
		total += a.Minutes
	}
	return total
}

// Distribute allocates minutes to the day's selections. Pinned selections
// keep their minutes. The remainder of targetMinutes is split evenly over
// the unpinned selections in selection order, with the integer remainder
// going to the earliest ones, so the total equals the target exactly.
//
// When targetMinutes is 0 (no configured target), every unpinned selection
// falls back to defaultMinutes. When the pins alone overshoot the target,
// or leave less than one minute per unpinned selection, unpinned
// selections also fall back to defaultMinutes and a Mismatch is recorded.
func Distribute(targetMinutes, defaultMinutes int, selections []Selection) Result {
	allocations := make([]Allocation, len(selections))
	pinned := 0
	var unpinned []int
	for i, sel := range selections {
		allocations[i] = Allocation{TaskKey: sel.TaskKey, Minutes: sel.PinnedMinutes}
		if sel.PinnedMinutes > 0 {
			pinned += sel.PinnedMinutes
		} else {
			unpinned = append(unpinned, i)
		}
	}

	result := Result{Allocations: allocations}

	if len(unpinned) == 0 {
		if targetMinutes > 0 && pinned != targetMinutes {
			result.Mismatch = &Mismatch{Target: targetMinutes, Allocated: pinned}
		}
		return result
	}

	if targetMinutes == 0 {
		for _, i := range unpinned {
			allocations[i].Minutes = defaultMinutes
		}
		return result
	}

	remaining := targetMinutes - pinned
	if remaining < len(unpinned) {
		// Not even one minute per task left under the target.
		for _, i := range unpinned {
			allocations[i].Minutes = defaultMinutes
		}
		result.Mismatch = &Mismatch{Target: targetMinutes, Allocated: result.Total()}
		return result
	}

	share := remaining / len(unpinned)
	extra := remaining % len(unpinned)
	for n, i := range unpinned {
		allocations[i].Minutes = share
		if n < extra {
			allocations[i].Minutes++
		}
	}
	return result
}
