package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vocallq/vocallq/internal/api/handlers"
	"github.com/vocallq/vocallq/internal/api/middleware"
)

type Deps struct {
	User       *handlers.UserHandler
	Webinar    *handlers.WebinarHandler
	Transcript *handlers.TranscriptHandler
	Analytics  *handlers.AnalyticsHandler
	Agent      *handlers.AgentHandler
	LiveWS     *handlers.LiveWSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/users/sync", d.User.Sync)
	auth.GET("/users/me", d.User.Me)
	auth.GET("/payments/stripe/connect-link", d.User.StripeConnectLink)

	auth.POST("/webinars", d.Webinar.Create)
	auth.GET("/webinars", d.Webinar.List)
	auth.GET("/webinars/:webinar_id", d.Webinar.Get)
	auth.PUT("/webinars/:webinar_id/recording", d.Webinar.SetRecording)

	auth.POST("/webinars/:webinar_id/transcript/process", d.Transcript.ProcessRecording)
	auth.GET("/webinars/:webinar_id/transcript", d.Transcript.Get)
	auth.POST("/webinars/:webinar_id/live-transcription/start", d.Transcript.StartLive)
	auth.POST("/webinars/:webinar_id/live-transcription", d.Transcript.SaveLiveTurn)

	auth.GET("/webinars/:webinar_id/analytics", d.Analytics.GetWebinarAnalytics)
	auth.GET("/webinars/:webinar_id/analytics/speakers", d.Analytics.GetSpeakerAnalytics)
	auth.GET("/webinars/:webinar_id/analytics/timeline", d.Analytics.GetEngagementTimeline)
	auth.GET("/webinars/:webinar_id/transcript/download", d.Analytics.DownloadTranscript)

	auth.POST("/agents", d.Agent.Create)
	auth.GET("/agents", d.Agent.List)
	auth.GET("/agents/:agent_id", d.Agent.Get)
	auth.PUT("/agents/:agent_id", d.Agent.Update)

	// WebSocket
	auth.GET("/ws/webinars/:webinar_id/live", d.LiveWS.WebinarWS)
}
