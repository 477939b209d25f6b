package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/database"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/metrics"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/webhook"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

// createVideo opens a direct-upload session at the video provider and
// inserts the placeholder row the webhook events will fill in.
// POST /api/videos
func (api *API) createVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	upload, err := api.platform.CreateDirectUpload(c.Request.Context())
	if err != nil {
		api.logger.WithError(err).Error("failed to create upload session")
		internalError(c, "failed to create upload session")
		return
	}
	metrics.UploadSessionsTotal.Inc()

	video, err := api.videos.CreateVideo(c.Request.Context(), user.ID, "Untitled", upload.ID)
	if err != nil {
		api.logger.WithError(err).Error("failed to create video")
		internalError(c, "failed to create video")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"video": video, "upload_url": upload.URL})
}

// listVideos is the public feed with optional category, owner and
// search filters.
// GET /api/videos
func (api *API) listVideos(c *gin.Context) {
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

	var filter database.VideoFilter
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "category_id must be a valid uuid")
			return
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "user_id must be a valid uuid")
			return
		}
		filter.UserID = &id
	}
	filter.Query = c.Query("query")

	page, err := api.videos.ListPublicVideos(c.Request.Context(), filter, cursor, limit)
	if err != nil {
		api.logger.WithError(err).Error("failed to list videos")
		internalError(c, "failed to list videos")
		return
	}

	c.JSON(http.StatusOK, page)
}

// trendingVideos pages the public feed by view count.
// GET /api/videos/trending
func (api *API) trendingVideos(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	cursor, err := parseCountCursor(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	page, err := api.videos.ListTrendingVideos(c.Request.Context(), cursor, limit)
	if err != nil {
		api.logger.WithError(err).Error("failed to list trending videos")
		internalError(c, "failed to list trending videos")
		return
	}

	c.JSON(http.StatusOK, page)
}

// subscribedVideos is the feed restricted to creators the viewer
// subscribes to.
// GET /api/videos/subscribed
func (api *API) subscribedVideos(c *gin.Context) {
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

	page, err := api.videos.ListSubscribedVideos(c.Request.Context(), user.ID, cursor, limit)
	if err != nil {
		api.logger.WithError(err).Error("failed to list subscribed videos")
		internalError(c, "failed to list subscribed videos")
		return
	}

	c.JSON(http.StatusOK, page)
}

// getVideo returns one video with owner and viewer personalization.
// GET /api/videos/:id
func (api *API) getVideo(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	detail, err := api.videos.GetVideoDetail(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		respondStoreError(c, err, "video not found")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// updateVideo applies an owner edit. A video someone else owns is a 404.
// PATCH /api/videos/:id
func (api *API) updateVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var update models.VideoUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if update.Title == "" {
		badRequest(c, "title is required")
		return
	}
	if update.Visibility != models.VisibilityPublic && update.Visibility != models.VisibilityPrivate {
		badRequest(c, "visibility must be public or private")
		return
	}

	video, err := api.videos.UpdateVideo(c.Request.Context(), id, user.ID, update)
	if err != nil {
		respondStoreError(c, err, "video not found")
		return
	}

	c.JSON(http.StatusOK, video)
}

// deleteVideo removes an owned video and its provider-side asset.
// DELETE /api/videos/:id
func (api *API) deleteVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	video, err := api.videos.DeleteVideo(c.Request.Context(), id, user.ID)
	if err != nil {
		respondStoreError(c, err, "video not found")
		return
	}

	// Best effort: the provider also emits asset.deleted, and the row
	// is already gone.
	if video.MuxAssetID != nil {
		if err := api.platform.DeleteAsset(c.Request.Context(), *video.MuxAssetID); err != nil {
			api.logger.WithError(err).WithVideoID(id.String()).Warn("failed to delete provider asset")
		}
	}

	c.JSON(http.StatusOK, video)
}

// revalidateVideo re-reads asset state from the provider for a video
// whose webhook deliveries may have been missed.
// POST /api/videos/:id/revalidate
func (api *API) revalidateVideo(c *gin.Context) {
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
	if video.MuxAssetID == nil {
		badRequest(c, "video has no provider asset yet")
		return
	}

	asset, err := api.platform.GetAsset(c.Request.Context(), *video.MuxAssetID)
	if err != nil {
		api.logger.WithError(err).WithVideoID(id.String()).Error("failed to fetch provider asset")
		internalError(c, "failed to fetch provider asset")
		return
	}

	var playbackID *string
	if len(asset.PlaybackIDs) > 0 {
		playbackID = &asset.PlaybackIDs[0].ID
	}

	updated, err := api.videos.UpdateProviderSync(c.Request.Context(), id, user.ID,
		asset.Status, asset.ID, playbackID, webhook.DurationMillis(asset.Duration))
	if err != nil {
		respondStoreError(c, err, "video not found")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// restoreThumbnail drops a custom thumbnail and re-derives the default
// one from the playback id, storing a copy in object storage.
// POST /api/videos/:id/thumbnail/restore
func (api *API) restoreThumbnail(c *gin.Context) {
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
	if video.MuxPlaybackID == nil {
		badRequest(c, "video has no playback ID yet")
		return
	}

	if video.ThumbnailKey != nil {
		if err := api.storage.Delete(c.Request.Context(), *video.ThumbnailKey); err != nil {
			api.logger.WithError(err).WithVideoID(id.String()).Warn("failed to delete old thumbnail object")
		}
		if err := api.videos.ClearVideoThumbnail(c.Request.Context(), id, user.ID); err != nil {
			respondStoreError(c, err, "video not found")
			return
		}
	}

	thumbnailURL := api.providerThumbnailURL(*video.MuxPlaybackID)
	key := "thumbnails/" + id.String() + ".jpg"
	updated, err := api.videos.SetVideoThumbnail(c.Request.Context(), id, user.ID, thumbnailURL, key)
	if err != nil {
		respondStoreError(c, err, "video not found")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (api *API) providerThumbnailURL(playbackID string) string {
	return api.imageBaseURL + "/" + playbackID + "/thumbnail.jpg"
}

// recordView records that the viewer watched the video. Watching twice
// keeps one row but is still a 200.
// POST /api/videos/:id/views
func (api *API) recordView(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := api.views.CreateVideoView(c.Request.Context(), user.ID, id)
	if err != nil {
		api.logger.WithError(err).Error("failed to record view")
		internalError(c, "failed to record view")
		return
	}

	c.JSON(http.StatusOK, view)
}

// generateVideoField triggers a background workflow that writes a
// generated title, description or thumbnail back for the video.
// POST /api/videos/:id/generate/:field
func (api *API) generateVideoField(workflowName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.GetUser(c)

		id, err := parseIDParam(c, "id")
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		if _, err := api.videos.GetOwnedVideo(c.Request.Context(), id, user.ID); err != nil {
			respondStoreError(c, err, "video not found")
			return
		}

		if workflowName == "thumbnail" {
			var req struct {
				Prompt string `json:"prompt"`
			}
			if err := c.ShouldBindJSON(&req); err != nil || len(req.Prompt) < 10 {
				badRequest(c, "prompt must be at least 10 characters")
				return
			}
		}

		runID, err := api.workflows.Trigger(c.Request.Context(), workflowName, id.String(), user.ID.String())
		if err != nil {
			api.logger.WithError(err).WithVideoID(id.String()).Error("failed to trigger workflow")
			internalError(c, "failed to trigger workflow")
			return
		}

		c.JSON(http.StatusOK, gin.H{"workflow_run_id": runID})
	}
}
