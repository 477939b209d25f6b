package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listCategories serves the static category list through the cache.
// A cache outage degrades to a direct read, never an error.
// GET /api/categories
func (api *API) listCategories(c *gin.Context) {
	if api.cache != nil {
		cached, err := api.cache.GetCategories(c.Request.Context())
		if err != nil {
			api.logger.WithError(err).Warn("category cache read failed")
		} else if cached != nil {
			c.JSON(http.StatusOK, gin.H{"items": cached})
			return
		}
	}

	categories, err := api.categories.ListCategories(c.Request.Context())
	if err != nil {
		api.logger.WithError(err).Error("failed to list categories")
		internalError(c, "failed to list categories")
		return
	}

	if api.cache != nil {
		if err := api.cache.SetCategories(c.Request.Context(), categories); err != nil {
			api.logger.WithError(err).Warn("category cache write failed")
		}
	}

	c.JSON(http.StatusOK, gin.H{"items": categories})
}
