// Package journal persists work-log entries that failed submission, so a
// later `jt retry` can resubmit exactly those. One JSON object per line.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xolan/jt/internal/worklog"
)

const (
	// AppName is the application name used for config directory
	AppName = "jt"
	// JournalFile is the name of the JSON Lines journal file
	JournalFile = "failed.jsonl"
)

// Record is one journaled failed entry: the entry itself, why it failed
// and when.
type Record struct {
	Entry    worklog.Entry `json:"entry"`
	Reason   string        `json:"reason"`
	FailedAt time.Time     `json:"failed_at"`
}

// ParseWarning represents a warning about a corrupted or malformed line.
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// ReadResult contains the journaled records plus warnings about any lines
// that no longer parse.
type ReadResult struct {
	Records  []Record
	Warnings []ParseWarning
}

// GetJournalPath returns the path to the journal file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetJournalPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, JournalFile), nil
}

// Append adds records for the failed outcomes to the journal. Creates the
// file if it doesn't exist. Submitted outcomes are ignored.
func Append(path string, outcomes []worklog.Outcome, now time.Time) error {
	failed := worklog.Failed(outcomes)
	if len(failed) == 0 {
		return nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	for _, o := range failed {
		record := Record{Entry: o.Entry, Reason: o.Reason, FailedAt: now}
		line, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if _, err := file.WriteString(string(line) + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Read returns all journaled records. A missing file is an empty journal,
// and malformed lines become warnings rather than errors.
func Read(path string) (ReadResult, error) {
	result := ReadResult{
		Records:  []Record{},
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineContent := scanner.Text()

		var record Record
		if err := json.Unmarshal([]byte(lineContent), &record); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    lineContent,
				Error:      err.Error(),
			})
			continue
		}
		result.Records = append(result.Records, record)
	}

	if err := scanner.Err(); err != nil {
		return result, err
	}

	return result, nil
}

// Rewrite replaces the journal with the given records. An empty record
// list removes the file: no failures left means no journal.
func Rewrite(path string, records []Record) error {
	if len(records) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			_ = file.Close()
			return err
		}
		if _, err := file.WriteString(string(line) + "\n"); err != nil {
			_ = file.Close()
			return err
		}
	}
	if err := file.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace journal: %w", err)
	}
	return nil
}
