package main

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/metrics"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
)

const maxImageSize = 8 << 20 // 8 MiB

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// uploadThumbnail replaces a video's custom thumbnail. The previous
// object and its DB keys go first so a re-upload never strands objects.
// POST /api/uploads/thumbnail/:videoId
func (api *API) uploadThumbnail(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	video, err := api.videos.GetOwnedVideo(c.Request.Context(), videoID, user.ID)
	if err != nil {
		respondStoreError(c, err, "video not found")
		return
	}

	file, contentType, ok := api.imageFile(c)
	if !ok {
		return
	}

	if video.ThumbnailKey != nil {
		if err := api.storage.Delete(c.Request.Context(), *video.ThumbnailKey); err != nil {
			api.logger.WithError(err).WithVideoID(videoID.String()).Warn("failed to delete old thumbnail object")
		}
		if err := api.videos.ClearVideoThumbnail(c.Request.Context(), videoID, user.ID); err != nil {
			respondStoreError(c, err, "video not found")
			return
		}
	}

	src, err := file.Open()
	if err != nil {
		internalError(c, "failed to read upload")
		return
	}
	defer src.Close()

	key := "thumbnails/" + videoID.String() + "-" + uuid.NewString() + filepath.Ext(file.Filename)
	url, err := api.storage.Upload(c.Request.Context(), key, src, file.Size, contentType)
	if err != nil {
		api.logger.WithError(err).WithVideoID(videoID.String()).Error("failed to store thumbnail")
		internalError(c, "failed to store thumbnail")
		return
	}

	updated, err := api.videos.SetVideoThumbnail(c.Request.Context(), videoID, user.ID, url, key)
	if err != nil {
		respondStoreError(c, err, "video not found")
		return
	}

	metrics.ImageUploadsTotal.WithLabelValues("thumbnail").Inc()
	c.JSON(http.StatusOK, updated)
}

// uploadBanner replaces the viewer's channel banner.
// POST /api/uploads/banner
func (api *API) uploadBanner(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	file, contentType, ok := api.imageFile(c)
	if !ok {
		return
	}

	oldKey, err := api.users.GetUserBannerKey(c.Request.Context(), user.ID)
	if err != nil {
		respondStoreError(c, err, "user not found")
		return
	}
	if oldKey != nil {
		if err := api.storage.Delete(c.Request.Context(), *oldKey); err != nil {
			api.logger.WithError(err).WithUserID(user.ID.String()).Warn("failed to delete old banner object")
		}
	}

	src, err := file.Open()
	if err != nil {
		internalError(c, "failed to read upload")
		return
	}
	defer src.Close()

	key := "banners/" + user.ID.String() + "-" + uuid.NewString() + filepath.Ext(file.Filename)
	url, err := api.storage.Upload(c.Request.Context(), key, src, file.Size, contentType)
	if err != nil {
		api.logger.WithError(err).WithUserID(user.ID.String()).Error("failed to store banner")
		internalError(c, "failed to store banner")
		return
	}

	if err := api.users.SetUserBanner(c.Request.Context(), user.ID, url, key); err != nil {
		respondStoreError(c, err, "user not found")
		return
	}

	metrics.ImageUploadsTotal.WithLabelValues("banner").Inc()
	c.JSON(http.StatusOK, gin.H{"banner_url": url})
}

// deleteBanner removes the viewer's channel banner and its stored
// object.
// DELETE /api/uploads/banner
func (api *API) deleteBanner(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	oldKey, err := api.users.GetUserBannerKey(c.Request.Context(), user.ID)
	if err != nil {
		respondStoreError(c, err, "user not found")
		return
	}
	if oldKey != nil {
		if err := api.storage.Delete(c.Request.Context(), *oldKey); err != nil {
			api.logger.WithError(err).WithUserID(user.ID.String()).Warn("failed to delete banner object")
		}
	}

	if err := api.users.ClearUserBanner(c.Request.Context(), user.ID); err != nil {
		respondStoreError(c, err, "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"banner_url": nil})
}

// imageFile pulls the multipart "file" field and validates size and
// extension. Responds with a 400 itself when validation fails.
func (api *API) imageFile(c *gin.Context) (file *multipart.FileHeader, contentType string, ok bool) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return nil, "", false
	}
	if header.Size > maxImageSize {
		badRequest(c, "file exceeds the 8 MiB limit")
		return nil, "", false
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, known := imageContentTypes[ext]
	if !known {
		badRequest(c, "file must be a jpg, png, gif or webp image")
		return nil, "", false
	}

	return header, contentType, true
}
