package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/feedbacklens/feedback-backend/errors"
	"github.com/feedbacklens/feedback-backend/logger"
	"github.com/feedbacklens/feedback-backend/middleware"
	"github.com/feedbacklens/feedback-backend/types"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	m.Run()
}

// MockFeedbackService implements FeedbackServiceInterface for handler tests.
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) Submit(ctx context.Context, req types.FeedbackCreate) (*types.Feedback, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Feedback), args.Error(1)
}

func (m *MockFeedbackService) List(ctx context.Context, params types.FeedbackListParams) (*types.FeedbackPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeedbackPage), args.Error(1)
}

func (m *MockFeedbackService) Stats(ctx context.Context) (*types.FeedbackStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeedbackStats), args.Error(1)
}

// compile-time check
var _ FeedbackServiceInterface = (*MockFeedbackService)(nil)

// buildFeedbackRouter wraps the handler in a gin router with the error
// handler middleware, matching the production setup so c.Error() calls
// produce the correct HTTP status.
func buildFeedbackRouter(svc FeedbackServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	h := NewFeedbackHandler(svc)
	r.POST("/feedback", h.SubmitFeedback)
	r.GET("/feedback", h.ListFeedback)
	r.GET("/feedback/stats", h.GetFeedbackStats)
	return r
}

func TestSubmitFeedback(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockFeedbackService)
		r := buildFeedbackRouter(svc)

		stored := &types.Feedback{
			ID:           "abc-123",
			UserName:     "Ann",
			Email:        "ann@x.com",
			FeedbackText: "Loved it",
			Category:     "ui",
			CreatedAt:    time.Now().UTC(),
		}
		svc.On("Submit", mock.Anything, types.FeedbackCreate{
			UserName:     "Ann",
			Email:        "ANN@X.com",
			FeedbackText: "Loved it",
			Category:     "ui",
		}).Return(stored, nil)

		body := `{"userName":"Ann","email":"ANN@X.com","feedbackText":"Loved it","category":"ui"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/feedback", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp types.SubmitResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "ann@x.com", resp.Data.Email)
		assert.Equal(t, "abc-123", resp.Data.ID)
		svc.AssertExpectations(t)
	})

	t.Run("validation failure returns field errors", func(t *testing.T) {
		svc := new(MockFeedbackService)
		r := buildFeedbackRouter(svc)

		svc.On("Submit", mock.Anything, mock.Anything).Return(nil, apperrors.ValidationFailed([]apperrors.FieldError{
			{Field: "userName", Message: "User name is required"},
			{Field: "email", Message: "Invalid email address"},
		}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/feedback", bytes.NewBufferString(`{"feedbackText":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Success bool                   `json:"success"`
			Errors  []apperrors.FieldError `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.Len(t, resp.Errors, 2)
		assert.Equal(t, "userName", resp.Errors[0].Field)
	})

	t.Run("malformed json is a 400", func(t *testing.T) {
		svc := new(MockFeedbackService)
		r := buildFeedbackRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/feedback", bytes.NewBufferString(`{not json`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("store failure is a sanitized 500", func(t *testing.T) {
		svc := new(MockFeedbackService)
		r := buildFeedbackRouter(svc)

		svc.On("Submit", mock.Anything, mock.Anything).
			Return(nil, apperrors.New(apperrors.DatabaseError, "Something went wrong. Please try again later.", ""))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/feedback", bytes.NewBufferString(`{"userName":"Ann","email":"ann@x.com","feedbackText":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pgx")
	})
}

func TestListFeedback(t *testing.T) {
	t.Run("returns items and pagination", func(t *testing.T) {
		svc := new(MockFeedbackService)
		r := buildFeedbackRouter(svc)

		svc.On("List", mock.Anything, types.FeedbackListParams{
			Page:     2,
			Limit:    10,
			Search:   "great",
			Category: "ui",
		}).Return(&types.FeedbackPage{
			Items: []types.Feedback{{ID: "abc", FeedbackText: "Great App"}},
			Pagination: types.Pagination{
				Total: 25, Page: 2, Limit: 10, TotalPages: 3,
			},
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/feedback?page=2&limit=10&search=great&category=ui", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp types.ListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Great App", resp.Data[0].FeedbackText)
		svc.AssertExpectations(t)
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		svc := new(MockFeedbackService)
		r := buildFeedbackRouter(svc)

		svc.On("List", mock.Anything, mock.Anything).
			Return(nil, apperrors.New(apperrors.DatabaseError, "Something went wrong. Please try again later.", ""))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/feedback", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetFeedbackStats(t *testing.T) {
	svc := new(MockFeedbackService)
	r := buildFeedbackRouter(svc)

	monthly := make([]types.MonthCount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		monthly = append(monthly, types.MonthCount{
			Year: 2026, Month: int(m), MonthName: m.String(),
		})
	}
	monthly[6].Count = 2

	svc.On("Stats", mock.Anything).Return(&types.FeedbackStats{
		TotalUsers:     1,
		TotalFeedbacks: 2,
		Categories:     []types.CategoryCount{{Category: "ui", Count: 2}},
		Monthly:        monthly,
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/feedback/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp types.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Stats.TotalUsers)
	require.Len(t, resp.Stats.Monthly, 12)
	assert.Equal(t, "July", resp.Stats.Monthly[6].MonthName)
	assert.Equal(t, 2, resp.Stats.Monthly[6].Count)
	svc.AssertExpectations(t)
}
