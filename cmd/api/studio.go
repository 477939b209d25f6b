package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
)

// listStudioVideos pages the owner's videos regardless of visibility.
// GET /api/studio/videos
func (api *API) listStudioVideos(c *gin.Context) {
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

	page, err := api.videos.ListOwnedVideos(c.Request.Context(), user.ID, cursor, limit)
	if err != nil {
		api.logger.WithError(err).Error("failed to list studio videos")
		internalError(c, "failed to list studio videos")
		return
	}

	c.JSON(http.StatusOK, page)
}

// getStudioVideo returns one owned video; anyone else's video is a 404.
// GET /api/studio/videos/:id
func (api *API) getStudioVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	video, err := api.videos.GetOwnedVideo(c.Request.Context(), id, user.ID)
	if err != nil {
		respondStoreError(c, err, "video not found")
		return
	}

	c.JSON(http.StatusOK, video)
}
