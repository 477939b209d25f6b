package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

func commentRouter(api *API, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api", authAs(user))
	group.POST("/videos/:id/comments", api.createComment)
	group.DELETE("/comments/:id", api.deleteComment)
	return router
}

func TestCreateComment(t *testing.T) {
	user := testUser()
	store := newFakeCommentStore()
	api := newTestAPI()
	api.comments = store

	router := commentRouter(api, user)
	videoID := uuid.New()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/videos/"+videoID.String()+"/comments",
		strings.NewReader(`{"value":"great video"}`)))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.created, 1)
	assert.Equal(t, videoID, store.created[0].VideoID)
	assert.Equal(t, user.ID, store.created[0].UserID)
	assert.Nil(t, store.created[0].ParentID)
}

func TestCreateCommentBlankValue(t *testing.T) {
	api := newTestAPI()
	api.comments = newFakeCommentStore()

	router := commentRouter(api, testUser())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/videos/"+uuid.NewString()+"/comments",
		strings.NewReader(`{"value":"   "}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReply(t *testing.T) {
	user := testUser()
	store := newFakeCommentStore()
	api := newTestAPI()
	api.comments = store

	videoID := uuid.New()
	parent := &models.Comment{ID: uuid.New(), VideoID: videoID, UserID: uuid.New(), Value: "top level"}
	store.comments[parent.ID] = parent

	router := commentRouter(api, user)
	body := `{"value":"agreed","parent_id":"` + parent.ID.String() + `"}`

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/videos/"+videoID.String()+"/comments",
		strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.created, 1)
	require.NotNil(t, store.created[0].ParentID)
	assert.Equal(t, parent.ID, *store.created[0].ParentID)
}

func TestCreateReplyValidation(t *testing.T) {
	user := testUser()
	store := newFakeCommentStore()
	api := newTestAPI()
	api.comments = store

	videoID := uuid.New()
	otherVideoParent := &models.Comment{ID: uuid.New(), VideoID: uuid.New(), UserID: uuid.New(), Value: "elsewhere"}
	store.comments[otherVideoParent.ID] = otherVideoParent

	topLevel := &models.Comment{ID: uuid.New(), VideoID: videoID, UserID: uuid.New(), Value: "top"}
	store.comments[topLevel.ID] = topLevel
	reply := &models.Comment{ID: uuid.New(), VideoID: videoID, UserID: uuid.New(), ParentID: &topLevel.ID, Value: "reply"}
	store.comments[reply.ID] = reply

	router := commentRouter(api, user)
	path := "/api/videos/" + videoID.String() + "/comments"

	tests := []struct {
		name           string
		parentID       uuid.UUID
		expectedStatus int
	}{
		{"parent on another video", otherVideoParent.ID, http.StatusBadRequest},
		{"reply to a reply", reply.ID, http.StatusBadRequest},
		{"missing parent", uuid.New(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"value":"nested","parent_id":"` + tt.parentID.String() + `"}`
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
	assert.Empty(t, store.created)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	user := testUser()
	store := newFakeCommentStore()
	api := newTestAPI()
	api.comments = store

	own := &models.Comment{ID: uuid.New(), VideoID: uuid.New(), UserID: user.ID, Value: "mine"}
	foreign := &models.Comment{ID: uuid.New(), VideoID: uuid.New(), UserID: uuid.New(), Value: "theirs"}
	store.comments[own.ID] = own
	store.comments[foreign.ID] = foreign

	router := commentRouter(api, user)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/comments/"+foreign.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/comments/"+own.ID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, store.comments, own.ID)
}
