package services

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbacklens/feedback-backend/types"
)

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return mockDB
}

func TestHealthService_CheckHealth(t *testing.T) {
	t.Run("all components up", func(t *testing.T) {
		mockDB := newMockDB(t)
		redisClient, redisMock := redismock.NewClientMock()

		mockDB.ExpectPing()
		redisMock.ExpectPing().SetVal("PONG")

		svc := NewHealthService(mockDB, redisClient, "1.0.0")
		health := svc.CheckHealth(context.Background())

		assert.Equal(t, types.HealthStatusUp, health.Status)
		assert.Equal(t, types.HealthStatusUp, health.Components["database"].Status)
		assert.Equal(t, types.HealthStatusUp, health.Components["redis"].Status)
		assert.Equal(t, "1.0.0", health.Version)
	})

	t.Run("database down means overall down", func(t *testing.T) {
		mockDB := newMockDB(t)

		mockDB.ExpectPing().WillReturnError(errors.New("connection refused"))

		svc := NewHealthService(mockDB, nil, "1.0.0")
		health := svc.CheckHealth(context.Background())

		assert.Equal(t, types.HealthStatusDown, health.Status)
		assert.Equal(t, types.HealthStatusDown, health.Components["database"].Status)
	})

	t.Run("redis down only degrades", func(t *testing.T) {
		mockDB := newMockDB(t)
		redisClient, redisMock := redismock.NewClientMock()

		mockDB.ExpectPing()
		redisMock.ExpectPing().SetErr(errors.New("connection refused"))

		svc := NewHealthService(mockDB, redisClient, "1.0.0")
		health := svc.CheckHealth(context.Background())

		assert.Equal(t, types.HealthStatusDegraded, health.Status)
		assert.Equal(t, types.HealthStatusDown, health.Components["redis"].Status)
	})

	t.Run("without redis only database is reported", func(t *testing.T) {
		mockDB := newMockDB(t)
		mockDB.ExpectPing()

		svc := NewHealthService(mockDB, nil, "1.0.0")
		health := svc.CheckHealth(context.Background())

		assert.Equal(t, types.HealthStatusUp, health.Status)
		_, hasRedis := health.Components["redis"]
		assert.False(t, hasRedis)
	})
}
