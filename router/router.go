package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feedbacklens/feedback-backend/config"
	"github.com/feedbacklens/feedback-backend/handlers"
	"github.com/feedbacklens/feedback-backend/middleware"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	FeedbackHandler *handlers.FeedbackHandler
	HealthHandler   *handlers.HealthHandler
	// RateLimiter guards the submission endpoint only; reads are unmetered.
	RateLimiter gin.HandlerFunc
	Logger      *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	if err := r.SetTrustedProxies(deps.Config.Server.TrustedProxies); err != nil {
		deps.Logger.Warnw("Failed to set trusted proxies", "error", err)
	}

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health Routes
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)

	// Feedback Routes
	feedback := r.Group("/feedback")
	{
		feedback.POST("", deps.RateLimiter, deps.FeedbackHandler.SubmitFeedback)
		feedback.GET("", deps.FeedbackHandler.ListFeedback)
		feedback.GET("/stats", deps.FeedbackHandler.GetFeedbackStats)
	}

	return r
}
