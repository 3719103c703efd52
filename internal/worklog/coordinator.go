package worklog

import (
	"context"
	"errors"
	"fmt"
)

// RejectedError is returned by a Submitter when the remote service refused
// the entry (e.g. a validation error). Other entries may still succeed.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected by remote: %s", e.Reason)
}

// TransportError is returned by a Submitter when the entry never reached
// the remote service (network or auth failure).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Submitter is the external submission interface. Implementations return
// nil for an accepted entry, *RejectedError for a remote refusal, and
// *TransportError when the entry could not be delivered at all. Retry and
// backoff policy belong to the implementation, not the coordinator.
type Submitter interface {
	Submit(ctx context.Context, e Entry) error
}

// Status is the per-entry submission outcome.
type Status int

const (
	// StatusSubmitted means the remote service accepted the entry.
	StatusSubmitted Status = iota
	// StatusRejected means the remote service refused the entry.
	StatusRejected
	// StatusTransportFailed means the entry never reached the service.
	StatusTransportFailed
	// StatusSkipped means the entry was not attempted because the queue
	// was aborted (cancellation or failure threshold).
	StatusSkipped
)

// String returns the outcome label used in reports.
func (s Status) String() string {
	switch s {
	case StatusSubmitted:
		return "submitted"
	case StatusRejected:
		return "rejected"
	case StatusTransportFailed:
		return "transport failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome pairs an entry with its submission result. Reason is empty for
// submitted entries.
type Outcome struct {
	Entry  Entry
	Status Status
	Reason string
}

// Coordinator submits entries sequentially, in construction order, and
// collects one Outcome per entry. A failed entry does not block the rest:
// one bad entry must not lose the whole week.
type Coordinator struct {
	submitter Submitter
	// failureThreshold aborts the remaining queue once this many entries
	// have failed. Zero disables the threshold.
	failureThreshold int
}

// NewCoordinator creates a Coordinator. failureThreshold <= 0 disables the
// abort threshold.
func NewCoordinator(submitter Submitter, failureThreshold int) *Coordinator {
	return &Coordinator{submitter: submitter, failureThreshold: failureThreshold}
}

// SubmitAll submits every entry and returns outcomes in entry order.
// Cancelling the context aborts the remaining queue; already-submitted
// entries stay submitted, the remote system is the source of truth from
// there on.
func (c *Coordinator) SubmitAll(ctx context.Context, entries []Entry) []Outcome {
	outcomes := make([]Outcome, len(entries))
	failures := 0
	aborted := false

	for i, e := range entries {
		if aborted {
			outcomes[i] = Outcome{Entry: e, Status: StatusSkipped, Reason: "submission aborted"}
			continue
		}
		if err := ctx.Err(); err != nil {
			outcomes[i] = Outcome{Entry: e, Status: StatusSkipped, Reason: err.Error()}
			aborted = true
			continue
		}

		outcomes[i] = c.submitOne(ctx, e)
		if outcomes[i].Status != StatusSubmitted {
			failures++
			if c.failureThreshold > 0 && failures >= c.failureThreshold {
				aborted = true
			}
		}
	}

	return outcomes
}

func (c *Coordinator) submitOne(ctx context.Context, e Entry) Outcome {
	err := c.submitter.Submit(ctx, e)
	if err == nil {
		return Outcome{Entry: e, Status: StatusSubmitted}
	}

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return Outcome{Entry: e, Status: StatusRejected, Reason: rejected.Reason}
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		return Outcome{Entry: e, Status: StatusTransportFailed, Reason: transport.Err.Error()}
	}
	// An unclassified error means the entry did not demonstrably reach
	// the service.
	return Outcome{Entry: e, Status: StatusTransportFailed, Reason: err.Error()}
}

// Failed filters the outcomes down to entries the user needs to resubmit.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Status != StatusSubmitted {
			failed = append(failed, o)
		}
	}
	return failed
}
