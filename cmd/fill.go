package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xolan/jt/internal/alloc"
	"github.com/xolan/jt/internal/config"
	"github.com/xolan/jt/internal/fill"
	"github.com/xolan/jt/internal/journal"
	"github.com/xolan/jt/internal/timeutil"
	"github.com/xolan/jt/internal/worklog"
)

// fillCmd represents the fill command
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the week's timesheet",
	Long: `Fill a week's work-log timesheet against Tempo.

jt queries your assigned JIRA tasks, merges them with the static tasks
from your configuration, and walks you through the five workdays of the
week. For each day you select one or more tasks; minutes are distributed
to meet the daily target unless you pin them explicitly.

Scripted use skips the picker: each --task KEY[=MINUTES] is applied to
every workday of the week.

Examples:
  jt fill                        Interactive fill for the current week
  jt fill --next --dry-run       Plan next week without submitting
  jt fill --task PROJ-1 --yes    Log PROJ-1 every day, no questions asked
  jt fill --task PROJ-1=120 --task OPS-7`,
	Run: func(cmd *cobra.Command, args []string) {
		runFill(cmd)
	},
}

func init() {
	fillCmd.Flags().Bool("dry-run", false, "Plan and print, but do not log any work")
	fillCmd.Flags().Bool("next", false, "Fill next week rather than the current week")
	fillCmd.Flags().Int("target", 0, "Daily target minutes (overrides the configured value)")
	fillCmd.Flags().StringArray("task", nil, "Select KEY[=MINUTES] for every workday (repeatable, skips the picker)")
	fillCmd.Flags().Bool("yes", false, "Skip the submission confirmation")
}

// runFill drives one fill run end to end.
func runFill(cmd *cobra.Command) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	next, _ := cmd.Flags().GetBool("next")
	target, _ := cmd.Flags().GetInt("target")
	taskFlags, _ := cmd.Flags().GetStringArray("task")
	yes, _ := cmd.Flags().GetBool("yes")

	cfg, ok := loadConfig()
	if !ok {
		return
	}
	client, ok := newClient(cfg, dryRun)
	if !ok {
		return
	}

	if target == 0 {
		target = cfg.DailyTargetTimeSpentMinutes
	}
	runner := fill.NewRunner(fill.Options{
		Querier:          client,
		Submitter:        client,
		Store:            cfg.AttributeStore(),
		StaticTasks:      cfg.Tasks(),
		TargetMinutes:    target,
		DefaultMinutes:   cfg.DefaultTimeSpentMinutes,
		FailureThreshold: cfg.FailureThreshold,
	})

	ctx := cmd.Context()
	candidates, err := runner.Candidates(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to retrieve assigned tasks")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, styles.Error.Render("Nothing was submitted."))
		deps.Exit(1)
		return
	}
	if len(candidates) == 0 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No candidate tasks: nothing assigned and no static tasks configured")
		deps.Exit(1)
		return
	}

	days := timeutil.Workweek(deps.Now(), next)

	var selections []fill.DaySelection
	if len(taskFlags) > 0 {
		selections, err = scriptedSelections(days, taskFlags)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use --task KEY or --task KEY=MINUTES")
			deps.Exit(1)
			return
		}
	} else {
		picked, confirmed, err := deps.Pick(days, candidates)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		if !confirmed {
			_, _ = fmt.Fprintln(deps.Stdout, "Aborted, nothing was submitted.")
			return
		}
		selections = picked
	}

	if len(selections) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No tasks selected, nothing to do.")
		return
	}

	plan := runner.Plan(candidates, selections)
	printPlan(deps.Stdout, plan)
	printResolutionWarnings(deps.Stderr, plan)

	if len(plan.Entries) == 0 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No submittable entries could be built")
		_, _ = fmt.Fprintln(deps.Stderr, styles.Error.Render("Nothing was submitted."))
		deps.Exit(1)
		return
	}

	if !yes && !dryRun && !confirm(fmt.Sprintf("Submit %d entries?", len(plan.Entries))) {
		_, _ = fmt.Fprintln(deps.Stdout, "Aborted, nothing was submitted.")
		return
	}

	outcomes := runner.Submit(ctx, plan)
	printOutcomes(deps.Stdout, outcomes)

	report := &fill.Report{Plan: plan, Outcomes: outcomes}
	if dryRun {
		_, _ = fmt.Fprintln(deps.Stdout, "Dry run: no work was logged.")
		return
	}

	if err := journalFailures(outcomes, deps.Now()); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Failed to journal failed entries: %v\n", err)
	}

	printSummary(deps.Stdout, report)
	if report.State() != fill.AllSubmitted {
		deps.Exit(1)
	}
}

// scriptedSelections applies the --task flags to every workday.
func scriptedSelections(days []time.Time, taskFlags []string) ([]fill.DaySelection, error) {
	daily := make([]alloc.Selection, 0, len(taskFlags))
	for _, flag := range taskFlags {
		key, minutesStr, pinned := strings.Cut(flag, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid --task value %q", flag)
		}
		sel := alloc.Selection{TaskKey: key}
		if pinned {
			minutes, err := strconv.Atoi(strings.TrimSpace(minutesStr))
			if err != nil || minutes <= 0 {
				return nil, fmt.Errorf("invalid minutes in --task value %q", flag)
			}
			sel.PinnedMinutes = minutes
		}
		daily = append(daily, sel)
	}

	selections := make([]fill.DaySelection, len(days))
	for i, day := range days {
		selections[i] = fill.DaySelection{Date: day, Selections: append([]alloc.Selection(nil), daily...)}
	}
	return selections, nil
}

// confirm asks a yes/no question on stdin, defaulting to no.
func confirm(prompt string) bool {
	_, _ = fmt.Fprintf(deps.Stdout, "%s [y/N] ", prompt)
	reader := bufio.NewReader(deps.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// journalFailures appends failed outcomes to the retry journal.
func journalFailures(outcomes []worklog.Outcome, now time.Time) error {
	path, err := deps.JournalPath()
	if err != nil {
		return err
	}
	return journal.Append(path, outcomes, now)
}

// loadConfig loads and validates the configuration, reporting problems
// through the shared deps.
func loadConfig() (config.Config, bool) {
	path, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return config.Config{}, false
	}

	cfg, err := config.Load(path)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Run 'jt config init' to create a sample config at %s\n", path)
		deps.Exit(1)
		return config.Config{}, false
	}
	return cfg, true
}

// newClient builds the API client from config and the JIRA_TOKEN env var.
func newClient(cfg config.Config, dryRun bool) (apiClient, bool) {
	token, err := deps.Token()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Export a JIRA bearer token as JIRA_TOKEN")
		deps.Exit(1)
		return nil, false
	}
	return deps.NewClient(cfg, token, dryRun), true
}
