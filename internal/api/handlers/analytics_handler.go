package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vocallq/vocallq/internal/services"
)

type AnalyticsHandler struct {
	svc services.AnalyticsService
}

func NewAnalyticsHandler(svc services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) GetWebinarAnalytics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	data, err := h.svc.WebinarAnalytics(c.Request.Context(), c.Param("webinar_id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *AnalyticsHandler) GetSpeakerAnalytics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	breakdown, err := h.svc.SpeakerAnalytics(c.Request.Context(), c.Param("webinar_id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *AnalyticsHandler) GetEngagementTimeline(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	points, err := h.svc.EngagementTimeline(c.Request.Context(), c.Param("webinar_id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeline": points})
}

// DownloadTranscript streams the rendered export as a plain-text attachment.
func (h *AnalyticsHandler) DownloadTranscript(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	download, err := h.svc.TranscriptForDownload(c.Request.Context(), c.Param("webinar_id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+download.Filename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(download.Content))
}
