package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/jt/internal/fill"
	"github.com/xolan/jt/internal/task"
)

// tasksCmd represents the tasks command
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List candidate tasks",
	Long: `List the tasks a fill run would offer: your assigned JIRA tasks
merged with the static tasks from your configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		listTasks(cmd)
	},
}

// listTasks queries and prints the merged candidate list.
func listTasks(cmd *cobra.Command) {
	cfg, ok := loadConfig()
	if !ok {
		return
	}
	client, ok := newClient(cfg, false)
	if !ok {
		return
	}

	runner := fill.NewRunner(fill.Options{
		Querier:     client,
		Submitter:   client,
		Store:       cfg.AttributeStore(),
		StaticTasks: cfg.Tasks(),
	})

	candidates, err := runner.Candidates(cmd.Context())
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to retrieve assigned tasks")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(candidates) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No candidate tasks found.")
		return
	}

	for _, t := range candidates {
		label := t.String()
		if t.Source == task.SourceStatic {
			label += " " + styles.Help.Render("(static)")
		}
		_, _ = fmt.Fprintln(deps.Stdout, label)
	}
}
