package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/therealutkarshpriyadarshi/vidtube/internal/config"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/metrics"
)

// AI generation workflows
const (
	WorkflowTitle       = "title"
	WorkflowDescription = "description"
	WorkflowThumbnail   = "thumbnail"
)

// Client triggers background generation workflows on an external
// runner over HTTP. Triggering is fire-and-forget from the API's view:
// the runner writes its result back through the regular endpoints.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(cfg config.WorkflowConfig) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether a runner is configured. Without one the
// generation endpoints answer 500, same as a runner outage.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

type triggerRequest struct {
	VideoID string `json:"videoId"`
	UserID  string `json:"userId"`
}

type triggerResponse struct {
	WorkflowRunID string `json:"workflowRunId"`
}

// Trigger starts the named workflow for a video and returns the run id.
func (c *Client) Trigger(ctx context.Context, workflow, videoID, userID string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("workflow runner is not configured")
	}

	body, err := json.Marshal(triggerRequest{VideoID: videoID, UserID: userID})
	if err != nil {
		return "", fmt.Errorf("failed to marshal trigger request: %w", err)
	}

	url := fmt.Sprintf("%s/api/videos/workflows/%s", c.baseURL, workflow)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create trigger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to trigger workflow %s: %w", workflow, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("workflow trigger returned status %d", resp.StatusCode)
	}

	var result triggerResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode trigger response: %w", err)
	}

	metrics.WorkflowTriggersTotal.WithLabelValues(workflow).Inc()
	return result.WorkflowRunID, nil
}
