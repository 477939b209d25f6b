package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
)

// createComment posts a comment or a reply. Replies must target a
// top-level comment on the same video; threading stays one level deep.
// POST /api/videos/:id/comments
func (api *API) createComment(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	videoID, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var req struct {
		Value    string     `json:"value"`
		ParentID *uuid.UUID `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Value) == "" {
		badRequest(c, "value is required")
		return
	}

	if req.ParentID != nil {
		parent, err := api.comments.GetComment(c.Request.Context(), *req.ParentID)
		if err != nil {
			respondStoreError(c, err, "parent comment not found")
			return
		}
		if parent.VideoID != videoID {
			badRequest(c, "parent comment belongs to another video")
			return
		}
		if parent.ParentID != nil {
			badRequest(c, "cannot reply to a reply")
			return
		}
	}

	comment, err := api.comments.CreateComment(c.Request.Context(), user.ID, videoID, req.ParentID, req.Value)
	if err != nil {
		api.logger.WithError(err).Error("failed to create comment")
		internalError(c, "failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// listComments returns top-level comments with reply counts, or the
// replies of parent_id.
// GET /api/videos/:id/comments
func (api *API) listComments(c *gin.Context) {
	videoID, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

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

	var parentID *uuid.UUID
	if raw := c.Query("parent_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "parent_id must be a valid uuid")
			return
		}
		parentID = &id
	}

	page, err := api.comments.ListComments(c.Request.Context(), videoID, parentID, middleware.GetUserID(c), cursor, limit)
	if err != nil {
		api.logger.WithError(err).Error("failed to list comments")
		internalError(c, "failed to list comments")
		return
	}

	c.JSON(http.StatusOK, page)
}

// deleteComment removes the viewer's own comment; anyone else's is a
// 404.
// DELETE /api/comments/:id
func (api *API) deleteComment(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	comment, err := api.comments.DeleteComment(c.Request.Context(), id, user.ID)
	if err != nil {
		respondStoreError(c, err, "comment not found")
		return
	}

	c.JSON(http.StatusOK, comment)
}
