// Package jira talks to the JIRA REST API and its Tempo timesheet
// endpoints: querying assigned tasks and submitting work-log entries.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xolan/jt/internal/task"
	"github.com/xolan/jt/internal/worklog"
)

const (
	searchPath   = "/rest/api/2/search"
	worklogsPath = "/rest/tempo-timesheets/4/worklogs"

	// assignedJQL selects the caller's tasks that are either still open
	// or saw status changes in the last week, newest first.
	assignedJQL = "(statusCategory NOT IN (Done) OR status CHANGED AFTER -1w) AND assignee IN (currentUser()) ORDER BY created DESC"
)

// Client is an authenticated JIRA/Tempo API client. With dryRun set,
// Submit skips the request and reports success, leaving the query path
// untouched.
type Client struct {
	endpoint string
	token    string
	worker   string
	dryRun   bool
	http     *http.Client
}

// NewClient creates a client for the given JIRA base URL. The token is
// sent as a bearer token on every request.
func NewClient(endpoint, token, worker string, dryRun bool) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		worker:   worker,
		dryRun:   dryRun,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type searchRequest struct {
	JQL    string   `json:"jql"`
	Fields []string `json:"fields"`
}

type searchResponse struct {
	Issues []issue `json:"issues"`
}

type issue struct {
	Key    string         `json:"key"`
	Fields map[string]any `json:"fields"`
}

// AssignedTasks queries the tracker for the worker's open tasks. A
// failure here is fatal to a fill run; nothing is retried.
func (c *Client) AssignedTasks(ctx context.Context) ([]task.Task, error) {
	body := searchRequest{
		JQL:    assignedJQL,
		Fields: []string{"*navigable"},
	}

	var resp searchResponse
	if err := c.post(ctx, searchPath, body, &resp); err != nil {
		return nil, fmt.Errorf("task query failed: %w", err)
	}

	tasks := make([]task.Task, 0, len(resp.Issues))
	for _, iss := range resp.Issues {
		summary, _ := iss.Fields["summary"].(string)
		tasks = append(tasks, task.Task{
			Key:     iss.Key,
			Summary: summary,
			Fields:  iss.Fields,
			Source:  task.SourceRemote,
		})
	}
	return tasks, nil
}

type worklogRequest struct {
	Worker           string                      `json:"worker"`
	Started          string                      `json:"started"`
	TimeSpentSeconds int                         `json:"timeSpentSeconds"`
	OriginTaskID     string                      `json:"originTaskId"`
	Attributes       map[string]worklogAttribute `json:"attributes"`
}

type worklogAttribute struct {
	Name            string `json:"name"`
	WorkAttributeID int    `json:"workAttributeId"`
	Value           string `json:"value"`
}

// Submit posts one work-log entry to Tempo. Errors are classified for the
// coordinator: *worklog.RejectedError when the service refused the entry,
// *worklog.TransportError when it was never delivered.
func (c *Client) Submit(ctx context.Context, e worklog.Entry) error {
	if c.dryRun {
		return nil
	}

	attributes := make(map[string]worklogAttribute, len(e.Attributes))
	for _, a := range e.Attributes {
		attributes[a.Key] = worklogAttribute{
			Name:            a.Name,
			WorkAttributeID: a.WorkAttributeID,
			Value:           a.Value,
		}
	}
	payload := worklogRequest{
		Worker:           c.worker,
		Started:          e.Date.Format("2006-01-02"),
		TimeSpentSeconds: e.TimeSpentMinutes * 60,
		OriginTaskID:     e.TaskKey,
		Attributes:       attributes,
	}

	return c.post(ctx, worklogsPath, payload, nil)
}

// post sends a JSON request and decodes the response into out when out is
// non-nil. HTTP-level refusals become RejectedError for client errors and
// TransportError otherwise.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	encoded, err := json.Marshal(in)
	if err != nil {
		return &worklog.TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(encoded))
	if err != nil {
		return &worklog.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return &worklog.TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		reason := responseReason(resp)
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
			return &worklog.RejectedError{Reason: reason}
		}
		return &worklog.TransportError{Err: fmt.Errorf("%s", reason)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &worklog.TransportError{Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	return nil
}

// responseReason extracts a short reason from an error response. Bodies
// are truncated; Tempo error payloads can be large.
func responseReason(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return resp.Status
	}
	return fmt.Sprintf("%s: %s", resp.Status, trimmed)
}
