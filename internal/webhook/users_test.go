package webhook

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/logging"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

const userSecret = "whsec_dXNlci13ZWJob29rLXNlY3JldA=="

type fakeUserStore struct {
	upserted  []string
	deleted   []string
	lastName  string
	lastImage *string
}

func (f *fakeUserStore) UpsertUserByExternalID(_ context.Context, externalID, name string, imageURL *string) (*models.User, error) {
	f.upserted = append(f.upserted, externalID)
	f.lastName = name
	f.lastImage = imageURL
	return &models.User{ExternalID: externalID, Name: name, ImageURL: imageURL}, nil
}

func (f *fakeUserStore) DeleteUserByExternalID(_ context.Context, externalID string) error {
	f.deleted = append(f.deleted, externalID)
	return nil
}

func postUserEvent(t *testing.T, store UserStore, body string, sign bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewUserHandler(store, userSecret, logging.NewDefaultLogger())
	router := gin.New()
	router.POST("/api/users/webhook", handler.Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/users/webhook", bytes.NewReader([]byte(body)))
	if sign {
		ts := strconv.FormatInt(time.Now().Unix(), 10)
		req.Header.Set("svix-id", "msg_1")
		req.Header.Set("svix-timestamp", ts)
		req.Header.Set("svix-signature", SignSvix("msg_1", ts, []byte(body), userSecret))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUserHandlerRejectsMissingHeaders(t *testing.T) {
	store := &fakeUserStore{}
	w := postUserEvent(t, store, `{"type":"user.created","data":{"id":"user_1"}}`, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, store.upserted)
}

func TestUserHandlerCreated(t *testing.T) {
	store := &fakeUserStore{}
	body := `{"type":"user.created","data":{"id":"user_1","first_name":"Ada","last_name":"Lovelace","image_url":"https://img.example.com/ada.png"}}`
	w := postUserEvent(t, store, body, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"user_1"}, store.upserted)
	assert.Equal(t, "Ada Lovelace", store.lastName)
	require.NotNil(t, store.lastImage)
	assert.Equal(t, "https://img.example.com/ada.png", *store.lastImage)
}

func TestUserHandlerUpdatedPartialName(t *testing.T) {
	store := &fakeUserStore{}
	body := `{"type":"user.updated","data":{"id":"user_1","first_name":"Ada"}}`
	w := postUserEvent(t, store, body, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", store.lastName)
	assert.Nil(t, store.lastImage)
}

func TestUserHandlerNoName(t *testing.T) {
	store := &fakeUserStore{}
	body := `{"type":"user.created","data":{"id":"user_1"}}`
	w := postUserEvent(t, store, body, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Unknown", store.lastName)
}

func TestUserHandlerDeleted(t *testing.T) {
	store := &fakeUserStore{}
	body := `{"type":"user.deleted","data":{"id":"user_1"}}`
	w := postUserEvent(t, store, body, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"user_1"}, store.deleted)
	assert.Empty(t, store.upserted)
}

func TestUserHandlerMissingID(t *testing.T) {
	store := &fakeUserStore{}
	body := `{"type":"user.created","data":{}}`
	w := postUserEvent(t, store, body, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.upserted)
}

func TestUserHandlerUnknownType(t *testing.T) {
	store := &fakeUserStore{}
	body := `{"type":"session.created","data":{"id":"sess_1"}}`
	w := postUserEvent(t, store, body, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.upserted)
	assert.Empty(t, store.deleted)
}
