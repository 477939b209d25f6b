package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/logging"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/metrics"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

// Auth provider event types
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// UserStore is the user provisioning surface the ingester writes to.
type UserStore interface {
	UpsertUserByExternalID(ctx context.Context, externalID, name string, imageURL *string) (*models.User, error)
	DeleteUserByExternalID(ctx context.Context, externalID string) error
}

// UserHandler mirrors auth provider account events into the users table.
type UserHandler struct {
	store  UserStore
	secret string
	logger *logging.Logger
}

func NewUserHandler(store UserStore, secret string, logger *logging.Logger) *UserHandler {
	return &UserHandler{store: store, secret: secret, logger: logger}
}

type userEventData struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	ImageURL  *string `json:"image_url"`
}

type userEvent struct {
	Type string        `json:"type"`
	Data userEventData `json:"data"`
}

// Handle is POST /api/users/webhook.
func (h *UserHandler) Handle(c *gin.Context) {
	// The auth provider sends both svix-* and webhook-* header names.
	msgID := headerAlias(c, "svix-id", "webhook-id")
	timestamp := headerAlias(c, "svix-timestamp", "webhook-timestamp")
	signature := headerAlias(c, "svix-signature", "webhook-signature")
	if msgID == "" || timestamp == "" || signature == "" {
		metrics.WebhookEventsTotal.WithLabelValues("clerk", "unknown", "unsigned").Inc()
		c.String(http.StatusUnauthorized, "missing svix headers")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable body")
		return
	}

	if err := VerifySvixSignature(msgID, timestamp, signature, body, h.secret); err != nil {
		h.logger.LogWebhookEvent("clerk", "unknown", false, err)
		metrics.WebhookEventsTotal.WithLabelValues("clerk", "unknown", "rejected").Inc()
		c.String(http.StatusUnauthorized, "invalid signature")
		return
	}

	var event userEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.String(http.StatusBadRequest, "invalid payload")
		return
	}

	if event.Data.ID == "" {
		c.String(http.StatusBadRequest, "missing user ID")
		return
	}

	switch event.Type {
	case EventUserCreated, EventUserUpdated:
		_, err = h.store.UpsertUserByExternalID(c.Request.Context(), event.Data.ID,
			displayName(event.Data.FirstName, event.Data.LastName), event.Data.ImageURL)
	case EventUserDeleted:
		err = h.store.DeleteUserByExternalID(c.Request.Context(), event.Data.ID)
	}

	if err != nil {
		h.logger.LogWebhookEvent("clerk", event.Type, false, err)
		metrics.WebhookEventsTotal.WithLabelValues("clerk", event.Type, "error").Inc()
		c.String(http.StatusInternalServerError, "failed to process event")
		return
	}

	h.logger.LogWebhookEvent("clerk", event.Type, true, nil)
	metrics.WebhookEventsTotal.WithLabelValues("clerk", event.Type, "ok").Inc()
	c.String(http.StatusOK, "webhook received")
}

func headerAlias(c *gin.Context, name, alias string) string {
	if value := c.GetHeader(name); value != "" {
		return value
	}
	return c.GetHeader(alias)
}

func displayName(first, last *string) string {
	var parts []string
	if first != nil && *first != "" {
		parts = append(parts, *first)
	}
	if last != nil && *last != "" {
		parts = append(parts, *last)
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, " ")
}
