package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/jt/internal/journal"
	"github.com/xolan/jt/internal/worklog"
)

// retryCmd represents the retry command
var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Resubmit entries that failed last time",
	Long: `Resubmit the work-log entries journaled by an earlier 'jt fill'.

Entries accepted this time are removed from the journal; entries that
fail again stay journaled for the next attempt.`,
	Run: func(cmd *cobra.Command, args []string) {
		retryFailed(cmd)
	},
}

func init() {
	retryCmd.Flags().Bool("dry-run", false, "Show what would be resubmitted without submitting")
}

// retryFailed resubmits journaled entries and rewrites the journal with
// whatever failed again.
func retryFailed(cmd *cobra.Command) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	path, err := deps.JournalPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine journal location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	result, err := journal.Read(path)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read the retry journal")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	for _, warning := range result.Warnings {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: journal line %d is corrupted: %s\n", warning.LineNumber, warning.Error)
	}
	if len(result.Records) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing to retry.")
		return
	}

	entries := make([]worklog.Entry, len(result.Records))
	for i, record := range result.Records {
		entries[i] = record.Entry
	}

	if dryRun {
		for _, e := range entries {
			_, _ = fmt.Fprintf(deps.Stdout, "%s %s (%s)\n", e.Date.Format("2006-01-02"), e.TaskKey, formatMinutes(e.TimeSpentMinutes))
		}
		_, _ = fmt.Fprintf(deps.Stdout, "Dry run: %d journaled entries, nothing resubmitted.\n", len(entries))
		return
	}

	cfg, ok := loadConfig()
	if !ok {
		return
	}
	client, ok := newClient(cfg, false)
	if !ok {
		return
	}

	coordinator := worklog.NewCoordinator(client, cfg.FailureThreshold)
	outcomes := coordinator.SubmitAll(cmd.Context(), entries)
	printOutcomes(deps.Stdout, outcomes)

	var remaining []journal.Record
	for i, o := range outcomes {
		if o.Status == worklog.StatusSubmitted {
			continue
		}
		record := result.Records[i]
		record.Reason = o.Reason
		record.FailedAt = deps.Now()
		remaining = append(remaining, record)
	}
	if err := journal.Rewrite(path, remaining); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Failed to update the retry journal: %v\n", err)
	}

	if len(remaining) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, styles.Success.Render("All journaled entries submitted."))
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, styles.Warning.Render(fmt.Sprintf("%d entries still failing; they remain journaled.", len(remaining))))
	deps.Exit(1)
}
