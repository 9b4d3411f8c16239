package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/feedbacklens/feedback-backend/logger"
	"github.com/feedbacklens/feedback-backend/types"
)

// DBPinger is the slice of the database pool the health check needs.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthService reports connectivity of the service's external collaborators.
type HealthService struct {
	db        DBPinger
	redis     *redis.Client // nil when the in-memory rate limiter is in use
	version   string
	startTime time.Time
	log       *zap.SugaredLogger
}

func NewHealthService(db DBPinger, redisClient *redis.Client, version string) *HealthService {
	return &HealthService{
		db:        db,
		redis:     redisClient,
		version:   version,
		startTime: time.Now(),
		log:       logger.GetLogger(),
	}
}

// CheckHealth pings each component and rolls the results up into an overall
// status. A dead database means DOWN; a dead Redis only degrades the service,
// since the rate limiter fails open.
func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	dbStatus := h.checkDatabase(ctx)
	components["database"] = dbStatus
	if dbStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	if h.redis != nil {
		redisStatus := h.checkRedis(ctx)
		components["redis"] = redisStatus
		if redisStatus.Status == types.HealthStatusDown && overallStatus == types.HealthStatusUp {
			overallStatus = types.HealthStatusDegraded
		}
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}
}

func (h *HealthService) checkDatabase(ctx context.Context) types.HealthComponent {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Database connection failed",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}
