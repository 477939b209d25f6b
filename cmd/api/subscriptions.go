package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
)

// createSubscription subscribes the viewer to a creator. Subscribing
// twice leaves exactly one row and still answers 200.
// POST /api/subscriptions
func (api *API) createSubscription(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		CreatorID uuid.UUID `json:"creator_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CreatorID == uuid.Nil {
		badRequest(c, "creator_id is required")
		return
	}
	if req.CreatorID == user.ID {
		badRequest(c, "cannot subscribe to yourself")
		return
	}

	subscription, err := api.subscriptions.CreateSubscription(c.Request.Context(), user.ID, req.CreatorID)
	if err != nil {
		api.logger.WithError(err).Error("failed to create subscription")
		internalError(c, "failed to create subscription")
		return
	}

	c.JSON(http.StatusOK, subscription)
}

// deleteSubscription unsubscribes the viewer from a creator.
// DELETE /api/subscriptions/:creatorId
func (api *API) deleteSubscription(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	creatorID, err := parseIDParam(c, "creatorId")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if creatorID == user.ID {
		badRequest(c, "cannot unsubscribe from yourself")
		return
	}

	subscription, err := api.subscriptions.DeleteSubscription(c.Request.Context(), user.ID, creatorID)
	if err != nil {
		respondStoreError(c, err, "subscription not found")
		return
	}

	c.JSON(http.StatusOK, subscription)
}

// listSubscriptions pages the creators the viewer subscribes to.
// GET /api/subscriptions
func (api *API) listSubscriptions(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	limit, err := parseLimit(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	cursor, err := parseTimeCursor(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	page, err := api.subscriptions.ListSubscriptions(c.Request.Context(), user.ID, cursor, limit)
	if err != nil {
		api.logger.WithError(err).Error("failed to list subscriptions")
		internalError(c, "failed to list subscriptions")
		return
	}

	c.JSON(http.StatusOK, page)
}
