package cmd

import (
	"fmt"
	"io"

	"github.com/xolan/jt/internal/fill"
	"github.com/xolan/jt/internal/timeutil"
	"github.com/xolan/jt/internal/tui"
	"github.com/xolan/jt/internal/worklog"
)

var styles = tui.DefaultStyles()

// formatMinutes formats minutes as a human-readable duration string
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// printPlan writes the planned week: per day, the entries with their
// allocated minutes and resolved attributes.
func printPlan(w io.Writer, plan *fill.Plan) {
	for _, day := range plan.Days {
		_, _ = fmt.Fprintln(w, styles.Day.Render(timeutil.FormatDay(day.Date)))
		if len(day.Entries) == 0 {
			_, _ = fmt.Fprintln(w, "  (nothing planned)")
		}
		for _, e := range day.Entries {
			_, _ = fmt.Fprintf(w, "  %s  %s\n", e.TaskKey, formatMinutes(e.TimeSpentMinutes))
			for _, a := range e.Attributes {
				_, _ = fmt.Fprintf(w, "    %s: %s\n", a.Name, a.Value)
			}
		}
		for _, warning := range day.Warnings {
			_, _ = fmt.Fprintf(w, "  %s\n", styles.Warning.Render("warning: "+warning))
		}
	}
}

// printResolutionWarnings writes the plan-level warnings not already tied
// to a day (attribute resolution failures).
func printResolutionWarnings(w io.Writer, plan *fill.Plan) {
	seen := make(map[string]bool)
	for _, day := range plan.Days {
		for _, warning := range day.Warnings {
			seen[warning] = true
		}
	}
	for _, warning := range plan.Warnings {
		if !seen[warning] {
			_, _ = fmt.Fprintln(w, styles.Warning.Render("warning: "+warning))
		}
	}
}

// printOutcomes writes one line per submitted entry with its outcome.
func printOutcomes(w io.Writer, outcomes []worklog.Outcome) {
	for _, o := range outcomes {
		line := fmt.Sprintf("%s %s (%s)", o.Entry.Date.Format("2006-01-02"), o.Entry.TaskKey, formatMinutes(o.Entry.TimeSpentMinutes))
		switch o.Status {
		case worklog.StatusSubmitted:
			_, _ = fmt.Fprintf(w, "%s %s\n", styles.Success.Render("✓"), line)
		case worklog.StatusSkipped:
			_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.Warning.Render("-"), line, o.Reason)
		default:
			_, _ = fmt.Fprintf(w, "%s %s: %s: %s\n", styles.Error.Render("✗"), line, o.Status, o.Reason)
		}
	}
}

// printSummary writes the closing line, making "nothing was submitted"
// and "some entries were not submitted" unmistakably different.
func printSummary(w io.Writer, report *fill.Report) {
	switch report.State() {
	case fill.AllSubmitted:
		_, _ = fmt.Fprintln(w, styles.Success.Render(fmt.Sprintf("All %d entries submitted.", len(report.Outcomes))))
	case fill.NothingSubmitted:
		_, _ = fmt.Fprintln(w, styles.Error.Render("Nothing was submitted."))
	case fill.PartiallySubmitted:
		failed := len(report.Outcomes) - report.Submitted()
		_, _ = fmt.Fprintln(w, styles.Warning.Render(fmt.Sprintf(
			"%d of %d entries submitted; %d were not. Failed entries are journaled, fix the cause and run 'jt retry'.",
			report.Submitted(), len(report.Outcomes), failed)))
	}
}
