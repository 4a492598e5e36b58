package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vocallq/vocallq/internal/services"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Sync upserts the caller's profile from the verified token claims. Called by
// the frontend right after sign-in so webinars can reference the presenter row.
func (h *UserHandler) Sync(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.svc.SyncUser(c.Request.Context(), userID, services.SyncUserInput{
		Email:        c.GetString("user_email"),
		Name:         c.GetString("user_name"),
		ProfileImage: c.GetString("user_avatar"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) StripeConnectLink(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	link, err := h.svc.StripeConnectLink(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}
