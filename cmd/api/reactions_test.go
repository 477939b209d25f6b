package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

func reactionRouter(api *API, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api", authAs(user))
	group.POST("/videos/:id/like", api.toggleVideoReaction(models.ReactionLike))
	group.POST("/videos/:id/dislike", api.toggleVideoReaction(models.ReactionDislike))
	group.POST("/comments/:id/like", api.toggleCommentReaction(models.ReactionLike))
	group.POST("/comments/:id/dislike", api.toggleCommentReaction(models.ReactionDislike))
	return router
}

func postReaction(router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))

	var body map[string]json.RawMessage
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestVideoReactionToggleSequence(t *testing.T) {
	user := testUser()
	store := newFakeReactionStore()
	api := newTestAPI()
	api.reactions = store

	router := reactionRouter(api, user)
	videoID := uuid.New()
	likePath := "/api/videos/" + videoID.String() + "/like"
	dislikePath := "/api/videos/" + videoID.String() + "/dislike"

	// none -> liked
	w, _ := postReaction(router, likePath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ReactionLike, store.videoReactions[reactionKey(user.ID, videoID)])

	// liked -> none (toggle off)
	w, body := postReaction(router, likePath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(body["reaction"]))
	assert.Empty(t, store.videoReactions)

	// none -> disliked
	w, _ = postReaction(router, dislikePath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ReactionDislike, store.videoReactions[reactionKey(user.ID, videoID)])

	// disliked -> liked (flip in place, still one row)
	w, _ = postReaction(router, likePath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.videoReactions, 1)
	assert.Equal(t, models.ReactionLike, store.videoReactions[reactionKey(user.ID, videoID)])
}

func TestCommentReactionToggle(t *testing.T) {
	user := testUser()
	store := newFakeReactionStore()
	api := newTestAPI()
	api.reactions = store

	router := reactionRouter(api, user)
	commentID := uuid.New()
	likePath := "/api/comments/" + commentID.String() + "/like"

	w, _ := postReaction(router, likePath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ReactionLike, store.commentReactions[reactionKey(user.ID, commentID)])

	w, body := postReaction(router, likePath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(body["reaction"]))
	assert.Empty(t, store.commentReactions)
}

func TestVideoReactionBadID(t *testing.T) {
	api := newTestAPI()
	api.reactions = newFakeReactionStore()

	router := reactionRouter(api, testUser())
	w, _ := postReaction(router, "/api/videos/not-a-uuid/like")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
