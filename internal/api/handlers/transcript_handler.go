package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vocallq/vocallq/internal/services"
	"github.com/vocallq/vocallq/internal/utils"
)

type TranscriptHandler struct {
	svc services.TranscriptService
}

func NewTranscriptHandler(svc services.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{svc: svc}
}

type ProcessRecordingRequest struct {
	RecordingURL string `json:"recording_url" binding:"required"`
}

// ProcessRecording queues the recording and returns the PROCESSING transcript
// row immediately; the worker fills it in.
func (h *TranscriptHandler) ProcessRecording(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ProcessRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TranscriptHandler.ProcessRecording", "invalid request body", err))
		return
	}

	transcript, err := h.svc.ProcessRecording(c.Request.Context(), c.Param("webinar_id"), userID, req.RecordingURL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, transcript)
}

func (h *TranscriptHandler) Get(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	transcript, err := h.svc.GetTranscript(c.Request.Context(), c.Param("webinar_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	// nil is a valid answer: transcription has not been requested yet
	c.JSON(http.StatusOK, gin.H{"transcript": transcript})
}

func (h *TranscriptHandler) StartLive(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	webinarID := c.Param("webinar_id")
	if err := h.svc.StartLiveTranscription(c.Request.Context(), webinarID, userID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"webinar_id": webinarID, "live_transcription_enabled": true})
}

func (h *TranscriptHandler) SaveLiveTurn(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.LiveTurnInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TranscriptHandler.SaveLiveTurn", "invalid request body", err))
		return
	}

	turn, err := h.svc.SaveLiveTurn(c.Request.Context(), c.Param("webinar_id"), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, turn)
}
