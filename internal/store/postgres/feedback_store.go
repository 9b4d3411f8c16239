// Package postgres implements the feedback store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/feedbacklens/feedback-backend/internal/store"
	"github.com/feedbacklens/feedback-backend/types"
)

const defaultQueryTimeout = 5 * time.Second

// DBPool is the subset of pgxpool.Pool the store needs. pgxmock satisfies it
// in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Ensure FeedbackStore implements store.FeedbackStore
var _ store.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore implements store.FeedbackStore using PostgreSQL.
type FeedbackStore struct {
	pool         DBPool
	queryTimeout time.Duration
}

// NewFeedbackStore creates a new FeedbackStore. queryTimeout bounds every
// database call so a dead connection fails instead of hanging; zero selects
// the default of 5s.
func NewFeedbackStore(pool DBPool, queryTimeout time.Duration) *FeedbackStore {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &FeedbackStore{pool: pool, queryTimeout: queryTimeout}
}

func (s *FeedbackStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// Insert persists a normalized feedback record. The database assigns the ID
// and creation timestamp, which are filled in on the passed record.
func (s *FeedbackStore) Insert(ctx context.Context, fb *types.Feedback) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO feedback (user_name, email, feedback_text, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query,
		fb.UserName,
		fb.Email,
		fb.FeedbackText,
		fb.Category,
	).Scan(&fb.ID, &fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert feedback: %w", store.ErrUnavailable, err)
	}

	return nil
}

// whereClause translates a store.Filter into SQL. Placeholder numbering
// starts at 1; the returned args line up with the clause.
func whereClause(filter store.Filter) (string, []any) {
	var clauses []string
	var args []any

	if filter.TextSearch != "" {
		args = append(args, "%"+filter.TextSearch+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(user_name ILIKE $%d OR feedback_text ILIKE $%d)", n, n))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// FindPage returns one page of matching records, newest first, and the total
// match count under the same filter. Count and page are read back-to-back;
// minor skew under concurrent inserts is acceptable.
func (s *FeedbackStore) FindPage(ctx context.Context, filter store.Filter, offset, limit int) ([]types.Feedback, int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	where, args := whereClause(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM feedback" + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: count feedback: %w", store.ErrUnavailable, err)
	}

	pageArgs := append(args, offset, limit)
	pageQuery := fmt.Sprintf(`
		SELECT id, user_name, email, feedback_text, category, created_at
		FROM feedback%s
		ORDER BY created_at DESC
		OFFSET $%d LIMIT $%d`, where, len(args)+1, len(args)+2)

	rows, err := s.pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list feedback: %w", store.ErrUnavailable, err)
	}
	defer rows.Close()

	items := make([]types.Feedback, 0, limit)
	for rows.Next() {
		var fb types.Feedback
		if err := rows.Scan(&fb.ID, &fb.UserName, &fb.Email, &fb.FeedbackText, &fb.Category, &fb.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%w: scan feedback: %w", store.ErrUnavailable, err)
		}
		items = append(items, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: list feedback: %w", store.ErrUnavailable, err)
	}

	return items, total, nil
}

// CountDistinctEmails counts unique submitters by stored (lower-cased) email.
func (s *FeedbackStore) CountDistinctEmails(ctx context.Context) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var count int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(DISTINCT email) FROM feedback").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: count distinct emails: %w", store.ErrUnavailable, err)
	}
	return count, nil
}

// CountAll counts every stored record.
func (s *FeedbackStore) CountAll(ctx context.Context) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var count int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM feedback").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: count feedback: %w", store.ErrUnavailable, err)
	}
	return count, nil
}

// CountByCategory returns one bucket per category present in storage,
// largest first.
func (s *FeedbackStore) CountByCategory(ctx context.Context) ([]types.CategoryCount, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT category, COUNT(*)
		FROM feedback
		GROUP BY category
		ORDER BY COUNT(*) DESC, category`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: count by category: %w", store.ErrUnavailable, err)
	}
	defer rows.Close()

	var buckets []types.CategoryCount
	for rows.Next() {
		var b types.CategoryCount
		if err := rows.Scan(&b.Category, &b.Count); err != nil {
			return nil, fmt.Errorf("%w: scan category bucket: %w", store.ErrUnavailable, err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: count by category: %w", store.ErrUnavailable, err)
	}

	return buckets, nil
}

// CountByMonth counts records per calendar month within the given year,
// using the half-open range [year-01-01, year+1-01-01) in UTC.
func (s *FeedbackStore) CountByMonth(ctx context.Context, year int) (map[int]int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	query := `
		SELECT EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS month, COUNT(*)
		FROM feedback
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY month`

	rows, err := s.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: count by month: %w", store.ErrUnavailable, err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var month, count int
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("%w: scan month bucket: %w", store.ErrUnavailable, err)
		}
		counts[month] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: count by month: %w", store.ErrUnavailable, err)
	}

	return counts, nil
}
