package cmd

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/xolan/jt/internal/config"
	"github.com/xolan/jt/internal/fill"
	"github.com/xolan/jt/internal/jira"
	"github.com/xolan/jt/internal/journal"
	"github.com/xolan/jt/internal/task"
	"github.com/xolan/jt/internal/tui"
	"github.com/xolan/jt/internal/worklog"
)

// apiClient is what the commands need from the JIRA/Tempo client.
type apiClient interface {
	fill.Querier
	worklog.Submitter
}

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)
	Now    func() time.Time

	ConfigPath  func() (string, error)
	JournalPath func() (string, error)
	Token       func() (string, error)

	// NewClient builds the API client used for querying and submission.
	NewClient func(cfg config.Config, token string, dryRun bool) apiClient
	// Pick runs the interactive task picker.
	Pick func(days []time.Time, candidates []task.Task) ([]fill.DaySelection, bool, error)
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Exit:        os.Exit,
		Now:         time.Now,
		ConfigPath:  config.GetConfigPath,
		JournalPath: journal.GetJournalPath,
		Token:       tokenFromEnv,
		NewClient: func(cfg config.Config, token string, dryRun bool) apiClient {
			return jira.NewClient(cfg.APIEndpoint, token, cfg.Worker, dryRun)
		},
		Pick: tui.Run,
	}
}

// tokenFromEnv reads the API token from the JIRA_TOKEN environment
// variable, the same contract as the original tooling around Tempo.
func tokenFromEnv() (string, error) {
	token := os.Getenv("JIRA_TOKEN")
	if token == "" {
		return "", errors.New("JIRA_TOKEN is not set")
	}
	return token, nil
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
