// Package config loads and validates the jt configuration file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xolan/jt/internal/attr"
	"github.com/xolan/jt/internal/task"
)

const (
	// AppName is the application name used for config directory
	AppName = "jt"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "jt.toml"
)

// StaticTask is a task declared in configuration rather than fetched from
// the tracker. Its attributes override the global rules for this task.
type StaticTask struct {
	Key        string      `toml:"key"`
	Summary    string      `toml:"summary"`
	Attributes []attr.Rule `toml:"attributes"`
}

// Config represents the application configuration
type Config struct {
	// APIEndpoint is the base URL of the JIRA instance.
	APIEndpoint string `toml:"api_endpoint"`
	// Worker is the account work is logged for.
	Worker string `toml:"worker"`
	// Reviewer optionally names the timesheet reviewer.
	Reviewer string `toml:"reviewer"`
	// DefaultTimeSpentMinutes is the fallback duration for a task with no
	// pin and no daily target.
	DefaultTimeSpentMinutes int `toml:"default_time_spent_minutes"`
	// DailyTargetTimeSpentMinutes is the number of minutes a filled day
	// should add up to. Zero disables target-based allocation.
	DailyTargetTimeSpentMinutes int `toml:"daily_target_time_spent_minutes"`
	// FailureThreshold aborts submission after this many failed entries.
	// Zero submits the whole queue regardless of failures.
	FailureThreshold int `toml:"failure_threshold"`

	StaticTasks       []StaticTask `toml:"static_tasks"`
	StaticAttributes  []attr.Rule  `toml:"static_attributes"`
	DynamicAttributes []attr.Rule  `toml:"dynamic_attributes"`
}

// DefaultConfig returns a Config with sensible defaults: an eight-hour
// default duration and daily target, matching a standard workday.
func DefaultConfig() Config {
	return Config{
		DefaultTimeSpentMinutes:     480,
		DailyTargetTimeSpentMinutes: 480,
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads and validates the config file at the given path.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file if it exists and returns defaults
// otherwise. A present-but-invalid file is still an error.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Normalize fills zero-valued durations from the defaults.
func (c *Config) Normalize() {
	if c.DefaultTimeSpentMinutes == 0 {
		c.DefaultTimeSpentMinutes = 480
	}
	c.APIEndpoint = strings.TrimRight(c.APIEndpoint, "/")
}

// Validate checks the configuration for the mistakes that would otherwise
// only surface mid-run: a malformed endpoint, a missing worker, negative
// durations, or dynamic rules whose values are not JSON pointers.
func (c Config) Validate() error {
	if c.APIEndpoint == "" {
		return errors.New("api_endpoint is required")
	}
	u, err := url.Parse(c.APIEndpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_endpoint %q is not a valid URL", c.APIEndpoint)
	}
	if c.Worker == "" {
		return errors.New("worker is required")
	}
	if c.DefaultTimeSpentMinutes < 0 {
		return errors.New("default_time_spent_minutes cannot be negative")
	}
	if c.DailyTargetTimeSpentMinutes < 0 {
		return errors.New("daily_target_time_spent_minutes cannot be negative")
	}
	if c.FailureThreshold < 0 {
		return errors.New("failure_threshold cannot be negative")
	}

	for _, rule := range c.DynamicAttributes {
		if !strings.HasPrefix(rule.Value, "/") {
			return fmt.Errorf("dynamic attribute %q: value %q is not a JSON pointer", rule.Key, rule.Value)
		}
	}
	for i, st := range c.StaticTasks {
		if st.Key == "" {
			return fmt.Errorf("static_tasks[%d]: key is required", i)
		}
	}
	return nil
}

// AttributeStore builds the read-only rule store consumed by the attribute
// resolver.
func (c Config) AttributeStore() *attr.Store {
	overrides := make(map[string][]attr.Rule, len(c.StaticTasks))
	for _, st := range c.StaticTasks {
		if len(st.Attributes) > 0 {
			overrides[st.Key] = st.Attributes
		}
	}
	return attr.NewStore(c.StaticAttributes, c.DynamicAttributes, overrides)
}

// Tasks returns the configured static tasks as candidate tasks.
func (c Config) Tasks() []task.Task {
	tasks := make([]task.Task, 0, len(c.StaticTasks))
	for _, st := range c.StaticTasks {
		tasks = append(tasks, task.Task{
			Key:     st.Key,
			Summary: st.Summary,
			Source:  task.SourceStatic,
		})
	}
	return tasks
}

// GenerateSampleConfig returns a commented sample jt.toml.
func GenerateSampleConfig() string {
	return `# jt configuration file

# Base URL of your JIRA instance.
api_endpoint = "https://jira.example.com"

# Account work is logged for.
worker = "jdoe"

# Optional timesheet reviewer.
reviewer = ""

# Fallback duration when no daily target applies.
default_time_spent_minutes = 480

# Minutes a filled day should add up to. 0 disables target allocation.
daily_target_time_spent_minutes = 480

# Abort submission after this many failed entries. 0 submits everything.
failure_threshold = 0

# Attributes applied to every logged task.
[[static_attributes]]
key = "_Account_"
name = "Account"
work_attribute_id = 1
value = "INTERNAL"

# Attributes resolved per task from its fields (RFC 6901 JSON pointer).
[[dynamic_attributes]]
key = "_Activity_"
name = "Activity"
work_attribute_id = 2
value = "/customfield_12345/value"

# Tasks not assigned to you in JIRA but logged anyway.
[[static_tasks]]
key = "OPS-1"
summary = "Team meetings"

  [[static_tasks.attributes]]
  key = "_Activity_"
  name = "Activity"
  work_attribute_id = 2
  value = "Meetings"
`
}
