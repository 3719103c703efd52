package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/xolan/jt/internal/attr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const validConfig = `
api_endpoint = "https://jira.example.com"
worker = "jdoe"
default_time_spent_minutes = 480
daily_target_time_spent_minutes = 480

[[static_attributes]]
key = "_Account_"
name = "Account"
work_attribute_id = 1
value = "INTERNAL"

[[dynamic_attributes]]
key = "_Activity_"
name = "Activity"
work_attribute_id = 2
value = "/customfield_12345/value"

[[static_tasks]]
key = "OPS-1"
summary = "Team meetings"

  [[static_tasks.attributes]]
  key = "_Activity_"
  name = "Activity"
  work_attribute_id = 2
  value = "Meetings"
`

func TestLoad(t *testing.T) {
	path := writeConfig(t, validConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIEndpoint != "https://jira.example.com" {
		t.Errorf("api_endpoint = %q", cfg.APIEndpoint)
	}
	if cfg.Worker != "jdoe" {
		t.Errorf("worker = %q", cfg.Worker)
	}
	if len(cfg.StaticAttributes) != 1 || cfg.StaticAttributes[0].WorkAttributeID != 1 {
		t.Errorf("static attributes wrong: %+v", cfg.StaticAttributes)
	}
	if len(cfg.DynamicAttributes) != 1 || cfg.DynamicAttributes[0].Value != "/customfield_12345/value" {
		t.Errorf("dynamic attributes wrong: %+v", cfg.DynamicAttributes)
	}
	if len(cfg.StaticTasks) != 1 || len(cfg.StaticTasks[0].Attributes) != 1 {
		t.Errorf("static tasks wrong: %+v", cfg.StaticTasks)
	}
}

func TestLoadTrimsEndpointSlash(t *testing.T) {
	path := writeConfig(t, `
api_endpoint = "https://jira.example.com/"
worker = "jdoe"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIEndpoint != "https://jira.example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.APIEndpoint)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultTimeSpentMinutes != 480 || cfg.DailyTargetTimeSpentMinutes != 480 {
		t.Errorf("defaults wrong: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := DefaultConfig()
		cfg.APIEndpoint = "https://jira.example.com"
		cfg.Worker = "jdoe"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing endpoint",
			mutate:  func(c *Config) { c.APIEndpoint = "" },
			wantErr: "api_endpoint",
		},
		{
			name:    "endpoint without scheme",
			mutate:  func(c *Config) { c.APIEndpoint = "jira.example.com" },
			wantErr: "not a valid URL",
		},
		{
			name:    "missing worker",
			mutate:  func(c *Config) { c.Worker = "" },
			wantErr: "worker",
		},
		{
			name:    "negative target",
			mutate:  func(c *Config) { c.DailyTargetTimeSpentMinutes = -1 },
			wantErr: "daily_target_time_spent_minutes",
		},
		{
			name: "dynamic value without pointer",
			mutate: func(c *Config) {
				c.DynamicAttributes = append(c.DynamicAttributes, attr.Rule{Key: "_A_", Value: "literal"})
			},
			wantErr: "not a JSON pointer",
		},
		{
			name: "static task without key",
			mutate: func(c *Config) {
				c.StaticTasks = append(c.StaticTasks, StaticTask{Summary: "nameless"})
			},
			wantErr: "key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAttributeStore(t *testing.T) {
	path := writeConfig(t, validConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := cfg.AttributeStore()
	if len(store.Static) != 1 || len(store.Dynamic) != 1 {
		t.Errorf("store layers wrong: %+v", store)
	}
	if len(store.TaskOverrides["OPS-1"]) != 1 {
		t.Errorf("task overrides missing: %+v", store.TaskOverrides)
	}
}

func TestTasks(t *testing.T) {
	path := writeConfig(t, validConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tasks := cfg.Tasks()
	if len(tasks) != 1 || tasks[0].Key != "OPS-1" || tasks[0].Summary != "Team meetings" {
		t.Errorf("static tasks wrong: %+v", tasks)
	}
}

func TestGenerateSampleConfigParses(t *testing.T) {
	var cfg Config
	if _, err := toml.Decode(GenerateSampleConfig(), &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		t.Errorf("sample config does not validate: %v", err)
	}
}
