package videoplatform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/therealutkarshpriyadarshi/vidtube/internal/config"
)

// Client talks to the video platform's REST API. The platform hosts
// the actual media: the API only opens direct upload sessions and
// mirrors asset state pushed back through webhooks.
type Client struct {
	baseURL     string
	tokenID     string
	tokenSecret string
	appBaseURL  string
	httpClient  *http.Client
}

func New(cfg config.MuxConfig, appBaseURL string) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		tokenID:     cfg.TokenID,
		tokenSecret: cfg.TokenSecret,
		appBaseURL:  appBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// DirectUpload is an upload session the browser posts the file to.
type DirectUpload struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

type newUploadRequest struct {
	CorsOrigin  string           `json:"cors_origin"`
	NewAssetSettings assetSettings `json:"new_asset_settings"`
}

type assetSettings struct {
	PlaybackPolicy []string      `json:"playback_policy"`
	InputInfo      []uploadInput `json:"input,omitempty"`
}

type uploadInput struct {
	GeneratedSubtitles []subtitleSettings `json:"generated_subtitles,omitempty"`
}

type subtitleSettings struct {
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
}

type uploadEnvelope struct {
	Data DirectUpload `json:"data"`
}

// CreateDirectUpload opens an upload session with public playback and
// auto-generated English subtitles.
func (c *Client) CreateDirectUpload(ctx context.Context) (*DirectUpload, error) {
	payload := newUploadRequest{
		CorsOrigin: c.appBaseURL,
		NewAssetSettings: assetSettings{
			PlaybackPolicy: []string{"public"},
			InputInfo: []uploadInput{
				{GeneratedSubtitles: []subtitleSettings{
					{LanguageCode: "en", Name: "English"},
				}},
			},
		},
	}

	var envelope uploadEnvelope
	if err := c.do(ctx, http.MethodPost, "/video/v1/uploads", payload, &envelope); err != nil {
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}

	return &envelope.Data, nil
}

// Asset is the platform's processed media record.
type Asset struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	Duration    float64 `json:"duration"`
	PlaybackIDs []struct {
		ID string `json:"id"`
	} `json:"playback_ids"`
}

type assetEnvelope struct {
	Data Asset `json:"data"`
}

// GetAsset fetches current asset state. The revalidate endpoint uses
// it to resync a video whose webhook deliveries were missed.
func (c *Client) GetAsset(ctx context.Context, assetID string) (*Asset, error) {
	var envelope assetEnvelope
	if err := c.do(ctx, http.MethodGet, "/video/v1/assets/"+assetID, nil, &envelope); err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return &envelope.Data, nil
}

// DeleteAsset removes the platform-side media for a deleted video.
func (c *Client) DeleteAsset(ctx context.Context, assetID string) error {
	if err := c.do(ctx, http.MethodDelete, "/video/v1/assets/"+assetID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.tokenID, c.tokenSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("platform returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
