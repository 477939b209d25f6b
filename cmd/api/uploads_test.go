package main

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

type fakeStorage struct {
	uploadedKey  string
	uploadedType string
	deletedKeys  []string
}

func (f *fakeStorage) Upload(_ context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	f.uploadedKey = objectKey
	f.uploadedType = contentType
	return "https://cdn.example.com/" + objectKey, nil
}

func (f *fakeStorage) Delete(_ context.Context, objectKey string) error {
	f.deletedKeys = append(f.deletedKeys, objectKey)
	return nil
}

type fakeUserStore struct {
	bannerKey *string
	bannerURL *string
	cleared   bool
}

func (f *fakeUserStore) GetUserProfile(_ context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.UserProfile, error) {
	return &models.UserProfile{User: models.User{ID: id}}, nil
}

func (f *fakeUserStore) GetUserBannerKey(_ context.Context, _ uuid.UUID) (*string, error) {
	return f.bannerKey, nil
}

func (f *fakeUserStore) SetUserBanner(_ context.Context, _ uuid.UUID, url, key string) error {
	f.bannerURL, f.bannerKey = &url, &key
	return nil
}

func (f *fakeUserStore) ClearUserBanner(_ context.Context, _ uuid.UUID) error {
	f.bannerKey, f.bannerURL = nil, nil
	f.cleared = true
	return nil
}

func uploadRouter(api *API, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api", authAs(user))
	group.POST("/uploads/thumbnail/:videoId", api.uploadThumbnail)
	group.POST("/uploads/banner", api.uploadBanner)
	group.DELETE("/uploads/banner", api.deleteBanner)
	return router
}

func imageRequest(t *testing.T, method, target, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("not really pixels"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadThumbnailReplacesOldObject(t *testing.T) {
	user := testUser()
	storage := &fakeStorage{}
	api := newTestAPI()
	api.storage = storage

	oldKey := "thumbnails/stale.jpg"
	cleared := false
	api.videos = &fakeVideoStore{
		getOwnedVideo: func(_ context.Context, id, ownerID uuid.UUID) (*models.Video, error) {
			return &models.Video{ID: id, UserID: ownerID, ThumbnailKey: &oldKey}, nil
		},
		clearVideoThumbnail: func(_ context.Context, id, ownerID uuid.UUID) error {
			cleared = true
			return nil
		},
		setVideoThumbnail: func(_ context.Context, id, ownerID uuid.UUID, url, key string) (*models.Video, error) {
			return &models.Video{ID: id, UserID: ownerID, ThumbnailURL: &url, ThumbnailKey: &key}, nil
		},
	}

	router := uploadRouter(api, user)
	videoID := uuid.New()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, imageRequest(t, http.MethodPost, "/api/uploads/thumbnail/"+videoID.String(), "cover.png"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, cleared)
	assert.Equal(t, []string{oldKey}, storage.deletedKeys)
	assert.Contains(t, storage.uploadedKey, "thumbnails/"+videoID.String())
	assert.Equal(t, "image/png", storage.uploadedType)
}

func TestUploadThumbnailRejectsUnknownExtension(t *testing.T) {
	user := testUser()
	storage := &fakeStorage{}
	api := newTestAPI()
	api.storage = storage
	api.videos = &fakeVideoStore{
		getOwnedVideo: func(_ context.Context, id, ownerID uuid.UUID) (*models.Video, error) {
			return &models.Video{ID: id, UserID: ownerID}, nil
		},
	}

	router := uploadRouter(api, user)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, imageRequest(t, http.MethodPost, "/api/uploads/thumbnail/"+uuid.NewString(), "payload.exe"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, storage.uploadedKey)
}

func TestUploadBanner(t *testing.T) {
	user := testUser()
	storage := &fakeStorage{}
	users := &fakeUserStore{}
	api := newTestAPI()
	api.storage = storage
	api.users = users

	router := uploadRouter(api, user)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, imageRequest(t, http.MethodPost, "/api/uploads/banner", "banner.webp"))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, users.bannerKey)
	assert.Contains(t, *users.bannerKey, "banners/"+user.ID.String())
	assert.Contains(t, w.Body.String(), "banner_url")
	assert.Empty(t, storage.deletedKeys)
}

func TestDeleteBanner(t *testing.T) {
	user := testUser()
	key := "banners/existing.webp"
	storage := &fakeStorage{}
	users := &fakeUserStore{bannerKey: &key}
	api := newTestAPI()
	api.storage = storage
	api.users = users

	router := uploadRouter(api, user)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/uploads/banner", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, users.cleared)
	assert.Equal(t, []string{key}, storage.deletedKeys)
}
