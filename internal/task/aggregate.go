package task

// Merge combines remotely queried tasks with statically configured ones
// into a single ordered candidate list with unique keys. Remote tasks keep
// their query order and come first; static tasks not already present are
// appended in configuration order.
//
// When a static task shares a key with a remote task, the two collapse into
// one candidate: the field tree comes from the remote task (static tasks
// typically carry none) and the summary from whichever source has one,
// remote preferred.
func Merge(remote, static []Task) []Task {
	merged := make([]Task, 0, len(remote)+len(static))
	byKey := make(map[string]int, len(remote))

	for _, t := range remote {
		if _, ok := byKey[t.Key]; ok {
			// The tracker should not return duplicate keys; keep the
			// first occurrence if it does.
			continue
		}
		byKey[t.Key] = len(merged)
		merged = append(merged, t)
	}

	for _, t := range static {
		if i, ok := byKey[t.Key]; ok {
			if merged[i].Summary == "" {
				merged[i].Summary = t.Summary
			}
			if merged[i].Fields == nil {
				merged[i].Fields = t.Fields
			}
			continue
		}
		byKey[t.Key] = len(merged)
		merged = append(merged, t)
	}

	return merged
}
