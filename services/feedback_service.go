package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/feedbacklens/feedback-backend/errors"
	"github.com/feedbacklens/feedback-backend/internal/store"
	"github.com/feedbacklens/feedback-backend/internal/validation"
	"github.com/feedbacklens/feedback-backend/logger"
	"github.com/feedbacklens/feedback-backend/types"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// FeedbackService implements submission, listing and statistics over the
// feedback store.
type FeedbackService struct {
	store store.FeedbackStore
	now   func() time.Time
	log   *zap.SugaredLogger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(st store.FeedbackStore) *FeedbackService {
	return &FeedbackService{
		store: st,
		now:   time.Now,
		log:   logger.GetLogger(),
	}
}

// Submit validates a raw submission and persists it. On validation failure it
// returns a ValidationFailed error carrying every field violation and touches
// the store not at all. Store failures come back sanitized; the raw cause is
// logged only.
func (s *FeedbackService) Submit(ctx context.Context, req types.FeedbackCreate) (*types.Feedback, error) {
	validation.Normalize(&req)
	if fields := validation.Validate(req); fields != nil {
		return nil, apperrors.ValidationFailed(fields)
	}

	category := req.Category
	if category == "" {
		category = types.CategoryOther
	}

	fb := &types.Feedback{
		UserName:     req.UserName,
		Email:        req.Email,
		FeedbackText: req.FeedbackText,
		Category:     category,
	}

	if err := s.store.Insert(ctx, fb); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	s.log.Infow("Feedback submitted", "id", fb.ID, "category", fb.Category)
	return fb, nil
}

// List returns one page of feedback records plus pagination metadata.
// Page and limit are clamped: page >= 1, 1 <= limit <= 100, limit defaulting
// to 10 when unset. This clamping is the documented contract; out-of-range
// values never reach the store.
func (s *FeedbackService) List(ctx context.Context, params types.FeedbackListParams) (*types.FeedbackPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageLimit
	} else if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := store.Filter{
		TextSearch: strings.TrimSpace(params.Search),
		Category:   strings.TrimSpace(params.Category),
	}

	items, total, err := s.store.FindPage(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return &types.FeedbackPage{
		Items: items,
		Pagination: types.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

// Stats computes dashboard statistics: distinct submitters, total records,
// per-category buckets, and a 12-entry monthly histogram for the current
// calendar year with zero counts synthesized for inactive months.
func (s *FeedbackService) Stats(ctx context.Context) (*types.FeedbackStats, error) {
	totalUsers, err := s.store.CountDistinctEmails(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	totalFeedbacks, err := s.store.CountAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	categories, err := s.store.CountByCategory(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if categories == nil {
		categories = []types.CategoryCount{}
	}

	year := s.now().UTC().Year()
	byMonth, err := s.store.CountByMonth(ctx, year)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	monthly := make([]types.MonthCount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		monthly = append(monthly, types.MonthCount{
			Year:      year,
			Month:     int(m),
			MonthName: m.String(),
			Count:     byMonth[int(m)],
		})
	}

	return &types.FeedbackStats{
		TotalUsers:     totalUsers,
		TotalFeedbacks: totalFeedbacks,
		Categories:     categories,
		Monthly:        monthly,
	}, nil
}
