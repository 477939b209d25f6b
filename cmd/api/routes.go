package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/workflow"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

// routeDeps carries the cross-cutting pieces the route table wires in.
type routeDeps struct {
	auth        *middleware.Auth
	userLimit   gin.HandlerFunc
	ipLimit     gin.HandlerFunc
	muxWebhook  gin.HandlerFunc
	userWebhook gin.HandlerFunc
	tracing     gin.HandlerFunc
	logging     gin.HandlerFunc
}

func setupRouter(api *API, deps routeDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.logging != nil {
		router.Use(deps.logging)
	}
	if deps.tracing != nil {
		router.Use(deps.tracing)
	}
	router.Use(middleware.Metrics())

	router.GET("/health", api.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Webhooks sit outside auth: they carry their own signatures. The
	// IP limiter still fronts them.
	hooks := router.Group("/api")
	if deps.ipLimit != nil {
		hooks.Use(deps.ipLimit)
	}
	hooks.POST("/videos/webhook", deps.muxWebhook)
	hooks.POST("/users/webhook", deps.userWebhook)

	// Public routes: optional viewer personalization.
	public := router.Group("/api", deps.auth.OptionalAuth())
	if deps.ipLimit != nil {
		public.Use(deps.ipLimit)
	}
	{
		public.GET("/videos", api.listVideos)
		public.GET("/videos/trending", api.trendingVideos)
		public.GET("/videos/:id", api.getVideo)
		public.GET("/videos/:id/comments", api.listComments)
		public.GET("/users/:id", api.getUser)
		public.GET("/categories", api.listCategories)
	}

	// Protected routes: authenticated, provisioned, per-user limited.
	protected := router.Group("/api", deps.auth.RequireAuth())
	if deps.userLimit != nil {
		protected.Use(deps.userLimit)
	}
	{
		protected.POST("/videos", api.createVideo)
		protected.GET("/videos/subscribed", api.subscribedVideos)
		protected.PATCH("/videos/:id", api.updateVideo)
		protected.DELETE("/videos/:id", api.deleteVideo)
		protected.POST("/videos/:id/revalidate", api.revalidateVideo)
		protected.POST("/videos/:id/thumbnail/restore", api.restoreThumbnail)
		protected.POST("/videos/:id/views", api.recordView)
		protected.POST("/videos/:id/like", api.toggleVideoReaction(models.ReactionLike))
		protected.POST("/videos/:id/dislike", api.toggleVideoReaction(models.ReactionDislike))
		protected.POST("/videos/:id/generate/title", api.generateVideoField(workflow.WorkflowTitle))
		protected.POST("/videos/:id/generate/description", api.generateVideoField(workflow.WorkflowDescription))
		protected.POST("/videos/:id/generate/thumbnail", api.generateVideoField(workflow.WorkflowThumbnail))

		protected.POST("/videos/:id/comments", api.createComment)
		protected.DELETE("/comments/:id", api.deleteComment)
		protected.POST("/comments/:id/like", api.toggleCommentReaction(models.ReactionLike))
		protected.POST("/comments/:id/dislike", api.toggleCommentReaction(models.ReactionDislike))

		protected.POST("/subscriptions", api.createSubscription)
		protected.DELETE("/subscriptions/:creatorId", api.deleteSubscription)
		protected.GET("/subscriptions", api.listSubscriptions)

		protected.GET("/studio/videos", api.listStudioVideos)
		protected.GET("/studio/videos/:id", api.getStudioVideo)

		protected.POST("/playlists", api.createPlaylist)
		protected.GET("/playlists", api.listPlaylists)
		protected.GET("/playlists/history", api.watchHistory)
		protected.GET("/playlists/liked", api.likedVideos)
		protected.DELETE("/playlists/:id", api.deletePlaylist)
		protected.GET("/playlists/:id/videos", api.listPlaylistVideos)
		protected.POST("/playlists/:id/videos/:videoId", api.addPlaylistVideo)
		protected.DELETE("/playlists/:id/videos/:videoId", api.removePlaylistVideo)

		protected.POST("/uploads/thumbnail/:videoId", api.uploadThumbnail)
		protected.POST("/uploads/banner", api.uploadBanner)
		protected.DELETE("/uploads/banner", api.deleteBanner)
	}

	return router
}
