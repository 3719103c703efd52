package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xolan/jt/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration for jt.

Shows the configuration file location, whether it exists, and the loaded
settings. Use 'jt config init' to write a commented sample file and
'jt config path' to print just the file path.

Configuration file location:
  ~/.config/jt/jt.toml               Linux/macOS
  %APPDATA%\jt\jt.toml               Windows`,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

// configPathCmd represents the config path command
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		printConfigPath()
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// showConfig displays the current effective configuration
func showConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	fileExists := false
	if _, err := os.Stat(configPath); err == nil {
		fileExists = true
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", configPath)
	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: not found (run 'jt config init' to create one)")
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "api_endpoint: %s\n", cfg.APIEndpoint)
	_, _ = fmt.Fprintf(deps.Stdout, "worker: %s\n", cfg.Worker)
	if cfg.Reviewer != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "reviewer: %s\n", cfg.Reviewer)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "default_time_spent_minutes: %d\n", cfg.DefaultTimeSpentMinutes)
	_, _ = fmt.Fprintf(deps.Stdout, "daily_target_time_spent_minutes: %d\n", cfg.DailyTargetTimeSpentMinutes)
	_, _ = fmt.Fprintf(deps.Stdout, "failure_threshold: %d\n", cfg.FailureThreshold)
	_, _ = fmt.Fprintf(deps.Stdout, "static_tasks: %d\n", len(cfg.StaticTasks))
	_, _ = fmt.Fprintf(deps.Stdout, "static_attributes: %d\n", len(cfg.StaticAttributes))
	_, _ = fmt.Fprintf(deps.Stdout, "dynamic_attributes: %d\n", len(cfg.DynamicAttributes))
}

// printConfigPath prints the config file path, for use in scripts.
func printConfigPath() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, configPath)
}

// initConfig writes the sample config file, refusing to overwrite.
func initConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if _, err := os.Stat(configPath); err == nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Config file already exists at %s\n", configPath)
		deps.Exit(1)
		return
	}

	if err := os.WriteFile(configPath, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Sample config written to %s\n", configPath)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit it with your endpoint, worker and attribute rules.")
}
