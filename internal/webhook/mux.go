package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/logging"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/metrics"
)

// MuxSignatureHeader carries the video provider's signature.
const MuxSignatureHeader = "mux-signature"

// Video provider event types
const (
	EventAssetCreated = "video.asset.created"
	EventAssetReady   = "video.asset.ready"
	EventAssetErrored = "video.asset.errored"
	EventAssetDeleted = "video.asset.deleted"
	EventTrackReady   = "video.asset.track.ready"
)

// VideoStore defines the persistence the ingester needs. Every method
// keys on a provider correlation id and is safe to repeat, which is
// what makes event re-delivery harmless.
type VideoStore interface {
	SetAssetByUploadID(ctx context.Context, uploadID, assetID, status string) error
	MarkAssetReadyByUploadID(ctx context.Context, uploadID, assetID, playbackID, status, thumbnailURL, previewURL string, duration int64) error
	SetStatusByUploadID(ctx context.Context, uploadID, status string) error
	DeleteVideoByUploadID(ctx context.Context, uploadID string) error
	SetTrackByAssetID(ctx context.Context, assetID, trackID, trackStatus string) error
}

// MuxHandler ingests video lifecycle events from the provider.
type MuxHandler struct {
	store        VideoStore
	secret       string
	imageBaseURL string
	logger       *logging.Logger
}

// NewMuxHandler creates the ingester. secret must be non-empty; config
// validation enforces that before the server starts.
func NewMuxHandler(store VideoStore, secret, imageBaseURL string, logger *logging.Logger) *MuxHandler {
	return &MuxHandler{
		store:        store,
		secret:       secret,
		imageBaseURL: imageBaseURL,
		logger:       logger,
	}
}

type muxPlaybackID struct {
	ID string `json:"id"`
}

type muxEventData struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	UploadID    string          `json:"upload_id"`
	AssetID     string          `json:"asset_id"`
	Duration    float64         `json:"duration"`
	PlaybackIDs []muxPlaybackID `json:"playback_ids"`
}

type muxEvent struct {
	Type string       `json:"type"`
	Data muxEventData `json:"data"`
}

// Handle is POST /api/videos/webhook. 200 on any processed or unknown
// event, 400 when a required correlation id is missing, 401 when the
// signature is absent or fails verification.
func (h *MuxHandler) Handle(c *gin.Context) {
	signature := c.GetHeader(MuxSignatureHeader)
	if signature == "" {
		metrics.WebhookEventsTotal.WithLabelValues("mux", "unknown", "unsigned").Inc()
		c.String(http.StatusUnauthorized, "no signature found")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable body")
		return
	}

	if err := VerifyMuxSignature(body, signature, h.secret, DefaultTolerance); err != nil {
		h.logger.LogWebhookEvent("mux", "unknown", false, err)
		metrics.WebhookEventsTotal.WithLabelValues("mux", "unknown", "rejected").Inc()
		c.String(http.StatusUnauthorized, "invalid signature")
		return
	}

	var event muxEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.String(http.StatusBadRequest, "invalid payload")
		return
	}

	if err := h.apply(c.Request.Context(), event); err != nil {
		status, msg := http.StatusInternalServerError, "failed to process event"
		if me, ok := err.(*missingFieldError); ok {
			status, msg = http.StatusBadRequest, me.Error()
		}
		h.logger.LogWebhookEvent("mux", event.Type, false, err)
		metrics.WebhookEventsTotal.WithLabelValues("mux", event.Type, "error").Inc()
		c.String(status, msg)
		return
	}

	h.logger.LogWebhookEvent("mux", event.Type, true, nil)
	metrics.WebhookEventsTotal.WithLabelValues("mux", event.Type, "ok").Inc()
	c.String(http.StatusOK, "webhook received")
}

type missingFieldError struct {
	field string
}

func (e *missingFieldError) Error() string {
	return fmt.Sprintf("missing %s", e.field)
}

func (h *MuxHandler) apply(ctx context.Context, event muxEvent) error {
	data := event.Data

	switch event.Type {
	case EventAssetCreated:
		if data.UploadID == "" {
			return &missingFieldError{"upload ID"}
		}
		return h.store.SetAssetByUploadID(ctx, data.UploadID, data.ID, data.Status)

	case EventAssetReady:
		if data.UploadID == "" {
			return &missingFieldError{"upload ID"}
		}
		if len(data.PlaybackIDs) == 0 || data.PlaybackIDs[0].ID == "" {
			return &missingFieldError{"playback ID"}
		}
		playbackID := data.PlaybackIDs[0].ID
		thumbnailURL := fmt.Sprintf("%s/%s/thumbnail.jpg", h.imageBaseURL, playbackID)
		previewURL := fmt.Sprintf("%s/%s/animated.gif", h.imageBaseURL, playbackID)
		return h.store.MarkAssetReadyByUploadID(ctx, data.UploadID, data.ID, playbackID,
			data.Status, thumbnailURL, previewURL, DurationMillis(data.Duration))

	case EventAssetErrored:
		if data.UploadID == "" {
			return &missingFieldError{"upload ID"}
		}
		return h.store.SetStatusByUploadID(ctx, data.UploadID, data.Status)

	case EventAssetDeleted:
		if data.UploadID == "" {
			return &missingFieldError{"upload ID"}
		}
		return h.store.DeleteVideoByUploadID(ctx, data.UploadID)

	case EventTrackReady:
		if data.AssetID == "" {
			return &missingFieldError{"asset ID"}
		}
		return h.store.SetTrackByAssetID(ctx, data.AssetID, data.ID, data.Status)
	}

	// Unrecognized event types fall through as a no-op.
	return nil
}

// DurationMillis converts the provider's fractional seconds to whole
// milliseconds; absent durations stay 0.
func DurationMillis(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}
