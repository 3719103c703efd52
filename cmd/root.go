package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jt",
	Short: "Fill your JIRA/Tempo timesheet from the terminal",
	Long: `jt fills a weekly work-log timesheet against JIRA and its Tempo add-on.

Usage:
  jt fill                    Fill the current week, picking a task per day
  jt fill --next             Fill next week instead
  jt fill --dry-run          Plan and print, but do not submit anything
  jt tasks                   List candidate tasks (assigned + configured)
  jt retry                   Resubmit entries that failed last time
  jt config                  Show the effective configuration
  jt config init             Write a sample configuration file

Authentication: jt reads a bearer token from the JIRA_TOKEN environment
variable. The JIRA endpoint, worker and attribute rules live in jt.toml
in your user configuration directory (see 'jt config').`,
}

func init() {
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(retryCmd)
	rootCmd.AddCommand(configCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"jt version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
