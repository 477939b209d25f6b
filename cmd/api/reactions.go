package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
)

// Reaction toggles. Per (user, target) the state machine is
// {none, liked, disliked}: reacting with the current type removes the
// reaction, reacting with the opposite type flips the row in place via
// the upsert, and reacting from none inserts. The composite primary
// key keeps it at one row per pair under concurrent requests.

// toggleVideoReaction serves POST /api/videos/:id/like and /dislike.
func (api *API) toggleVideoReaction(reactionType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.GetUser(c)

		videoID, err := parseIDParam(c, "id")
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		existing, err := api.reactions.GetVideoReaction(c.Request.Context(), user.ID, videoID)
		if err != nil {
			api.logger.WithError(err).Error("failed to load reaction")
			internalError(c, "failed to toggle reaction")
			return
		}

		if existing != nil && existing.Type == reactionType {
			if _, err := api.reactions.DeleteVideoReaction(c.Request.Context(), user.ID, videoID); err != nil {
				api.logger.WithError(err).Error("failed to remove reaction")
				internalError(c, "failed to toggle reaction")
				return
			}
			c.JSON(http.StatusOK, gin.H{"reaction": nil})
			return
		}

		reaction, err := api.reactions.UpsertVideoReaction(c.Request.Context(), user.ID, videoID, reactionType)
		if err != nil {
			api.logger.WithError(err).Error("failed to upsert reaction")
			internalError(c, "failed to toggle reaction")
			return
		}

		c.JSON(http.StatusOK, gin.H{"reaction": reaction})
	}
}

// toggleCommentReaction serves POST /api/comments/:id/like and /dislike.
func (api *API) toggleCommentReaction(reactionType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.GetUser(c)

		commentID, err := parseIDParam(c, "id")
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		existing, err := api.reactions.GetCommentReaction(c.Request.Context(), user.ID, commentID)
		if err != nil {
			api.logger.WithError(err).Error("failed to load reaction")
			internalError(c, "failed to toggle reaction")
			return
		}

		if existing != nil && existing.Type == reactionType {
			if _, err := api.reactions.DeleteCommentReaction(c.Request.Context(), user.ID, commentID); err != nil {
				api.logger.WithError(err).Error("failed to remove reaction")
				internalError(c, "failed to toggle reaction")
				return
			}
			c.JSON(http.StatusOK, gin.H{"reaction": nil})
			return
		}

		reaction, err := api.reactions.UpsertCommentReaction(c.Request.Context(), user.ID, commentID, reactionType)
		if err != nil {
			api.logger.WithError(err).Error("failed to upsert reaction")
			internalError(c, "failed to toggle reaction")
			return
		}

		c.JSON(http.StatusOK, gin.H{"reaction": reaction})
	}
}
