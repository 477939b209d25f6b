package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
)

// createPlaylist makes an empty playlist for the viewer.
// POST /api/playlists
func (api *API) createPlaylist(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		badRequest(c, "name is required")
		return
	}

	playlist, err := api.playlists.CreatePlaylist(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		api.logger.WithError(err).Error("failed to create playlist")
		internalError(c, "failed to create playlist")
		return
	}

	c.JSON(http.StatusCreated, playlist)
}

// listPlaylists pages the viewer's playlists with video counts.
// GET /api/playlists
func (api *API) listPlaylists(c *gin.Context) {
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

	page, err := api.playlists.ListPlaylists(c.Request.Context(), user.ID, cursor, limit)
	if err != nil {
		api.logger.WithError(err).Error("failed to list playlists")
		internalError(c, "failed to list playlists")
		return
	}

	c.JSON(http.StatusOK, page)
}

// deletePlaylist removes an owned playlist.
// DELETE /api/playlists/:id
func (api *API) deletePlaylist(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	playlist, err := api.playlists.DeletePlaylist(c.Request.Context(), id, user.ID)
	if err != nil {
		respondStoreError(c, err, "playlist not found")
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// addPlaylistVideo puts a video into an owned playlist.
// POST /api/playlists/:id/videos/:videoId
func (api *API) addPlaylistVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := api.playlists.AddPlaylistVideo(c.Request.Context(), playlistID, user.ID, videoID); err != nil {
		respondStoreError(c, err, "playlist not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": true})
}

// removePlaylistVideo takes a video out of an owned playlist.
// DELETE /api/playlists/:id/videos/:videoId
func (api *API) removePlaylistVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := api.playlists.RemovePlaylistVideo(c.Request.Context(), playlistID, user.ID, videoID); err != nil {
		respondStoreError(c, err, "playlist video not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// listPlaylistVideos pages an owned playlist's videos.
// GET /api/playlists/:id/videos
func (api *API) listPlaylistVideos(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	playlistID, err := parseIDParam(c, "id")
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

	page, err := api.playlists.ListPlaylistVideos(c.Request.Context(), playlistID, user.ID, cursor, limit)
	if err != nil {
		respondStoreError(c, err, "playlist not found")
		return
	}

	c.JSON(http.StatusOK, page)
}

// watchHistory pages the viewer's watched videos by watch time.
// GET /api/playlists/history
func (api *API) watchHistory(c *gin.Context) {
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

	page, err := api.playlists.ListHistoryVideos(c.Request.Context(), user.ID, cursor, limit)
	if err != nil {
		api.logger.WithError(err).Error("failed to list watch history")
		internalError(c, "failed to list watch history")
		return
	}

	c.JSON(http.StatusOK, page)
}

// likedVideos pages the viewer's liked videos by like time.
// GET /api/playlists/liked
func (api *API) likedVideos(c *gin.Context) {
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

	page, err := api.playlists.ListLikedVideos(c.Request.Context(), user.ID, cursor, limit)
	if err != nil {
		api.logger.WithError(err).Error("failed to list liked videos")
		internalError(c, "failed to list liked videos")
		return
	}

	c.JSON(http.StatusOK, page)
}
