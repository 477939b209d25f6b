package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/config"
)

func TestTrigger(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody triggerRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(triggerResponse{WorkflowRunID: "run_123"})
	}))
	defer server.Close()

	client := New(config.WorkflowConfig{BaseURL: server.URL, Token: "wf-token"})

	runID, err := client.Trigger(context.Background(), WorkflowTitle, "video-1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "run_123", runID)
	assert.Equal(t, "/api/videos/workflows/title", gotPath)
	assert.Equal(t, "Bearer wf-token", gotAuth)
	assert.Equal(t, "video-1", gotBody.VideoID)
	assert.Equal(t, "user-1", gotBody.UserID)
}

func TestTriggerServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(config.WorkflowConfig{BaseURL: server.URL})

	_, err := client.Trigger(context.Background(), WorkflowThumbnail, "video-1", "user-1")
	assert.Error(t, err)
}

func TestTriggerUnconfigured(t *testing.T) {
	client := New(config.WorkflowConfig{})

	assert.False(t, client.Enabled())
	_, err := client.Trigger(context.Background(), WorkflowDescription, "video-1", "user-1")
	assert.Error(t, err)
}
