package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
)

// getUser returns a channel profile with video and subscriber counts,
// plus whether the current viewer subscribes to it.
// GET /api/users/:id
func (api *API) getUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	profile, err := api.users.GetUserProfile(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		respondStoreError(c, err, "user not found")
		return
	}

	c.JSON(http.StatusOK, profile)
}
