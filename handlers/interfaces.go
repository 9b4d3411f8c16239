package handlers

import (
	"context"

	"github.com/feedbacklens/feedback-backend/types"
)

// FeedbackServiceInterface defines the service operations the feedback
// handler depends on. Kept as an interface so handler tests can mock it.
type FeedbackServiceInterface interface {
	Submit(ctx context.Context, req types.FeedbackCreate) (*types.Feedback, error)
	List(ctx context.Context, params types.FeedbackListParams) (*types.FeedbackPage, error)
	Stats(ctx context.Context) (*types.FeedbackStats, error)
}
