package handler

import (
	"net/http"

	"clientbook/internal/apperr"
	"clientbook/internal/model"
	"clientbook/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminCheck reports whether an e-mail belongs to an administrator.
type AdminCheck func(email string) bool

// FeedbackHandler handles feedback submission and the admin listing.
type FeedbackHandler struct {
	feedback *service.FeedbackService
	isAdmin  AdminCheck
}

func NewFeedbackHandler(feedback *service.FeedbackService, isAdmin AdminCheck) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, isAdmin: isAdmin}
}

// Submit handles POST /feedback. The caller's token e-mail is the sender;
// the body's userEmail is only used when the token carries none.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var in model.FeedbackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if id.Email != "" {
		in.UserEmail = id.Email
	}
	f, err := h.feedback.Submit(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Thank you for your feedback", f))
}

// List handles GET /feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	if h.isAdmin == nil || !h.isAdmin(id.Email) {
		respondError(c, apperr.ErrForbidden)
		return
	}
	all, err := h.feedback.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if all == nil {
		all = []*model.Feedback{}
	}
	c.JSON(http.StatusOK, all)
}
