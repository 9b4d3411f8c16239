package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feedbacklens/feedback-backend/types"
)

// FeedbackHandler handles the feedback HTTP endpoints.
type FeedbackHandler struct {
	service FeedbackServiceInterface
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(service FeedbackServiceInterface) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// SubmitFeedback handles POST /feedback. Validation failures come back as 400
// with the full field-error list; storage failures as a sanitized 500.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req types.FeedbackCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	fb, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, types.SubmitResponse{
		Success: true,
		Data:    fb,
		Message: "Thank you for your feedback!",
	})
}

// ListFeedback handles GET /feedback with pagination, free-text search and
// category filtering.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	var params types.FeedbackListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	page, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.ListResponse{
		Success:    true,
		Data:       page.Items,
		Pagination: page.Pagination,
	})
}

// GetFeedbackStats handles GET /feedback/stats.
func (h *FeedbackHandler) GetFeedbackStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.StatsResponse{
		Success: true,
		Stats:   stats,
	})
}
