package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vocallq/vocallq/internal/services"
	"github.com/vocallq/vocallq/internal/utils"
)

type WebinarHandler struct {
	svc services.WebinarService
}

func NewWebinarHandler(svc services.WebinarService) *WebinarHandler {
	return &WebinarHandler{svc: svc}
}

type CreateWebinarRequest struct {
	Title              string    `json:"title" binding:"required"`
	Description        string    `json:"description"`
	StartTime          time.Time `json:"start_time" binding:"required"`
	TranscriptLanguage string    `json:"transcript_language"`
}

func (h *WebinarHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateWebinarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WebinarHandler.Create", "invalid request body", err))
		return
	}

	webinar, err := h.svc.Create(c.Request.Context(), userID, services.CreateWebinarInput{
		Title:              req.Title,
		Description:        req.Description,
		StartTime:          req.StartTime,
		TranscriptLanguage: req.TranscriptLanguage,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, webinar)
}

func (h *WebinarHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	webinar, err := h.svc.Get(c.Request.Context(), c.Param("webinar_id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, webinar)
}

func (h *WebinarHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	webinars, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"webinars": webinars})
}

type SetRecordingRequest struct {
	RecordingURL string `json:"recording_url" binding:"required"`
}

func (h *WebinarHandler) SetRecording(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SetRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WebinarHandler.SetRecording", "invalid request body", err))
		return
	}

	webinarID := c.Param("webinar_id")
	if err := h.svc.SetRecording(c.Request.Context(), webinarID, userID, req.RecordingURL); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"webinar_id": webinarID, "recording_url": req.RecordingURL})
}
