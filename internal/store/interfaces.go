// Package store defines the persistence interfaces for feedback records.
package store

import (
	"context"

	"github.com/feedbacklens/feedback-backend/types"
)

// Filter is the explicit, tagged representation of a listing filter. Both
// constraints are optional; an empty value disables that constraint. The
// translation to the store's query language is deterministic: TextSearch is a
// case-insensitive substring match against userName OR feedbackText, Category
// is an exact match, and the two combine as a conjunction.
type Filter struct {
	TextSearch string
	Category   string
}

// FeedbackStore persists and aggregates feedback records. Records are
// insert-only: no update or delete operation exists.
type FeedbackStore interface {
	// Insert persists a normalized record. The store assigns ID and
	// CreatedAt and fills them in on the passed record.
	Insert(ctx context.Context, fb *types.Feedback) error

	// FindPage returns one page of matching records ordered newest-first,
	// plus the total number of matches ignoring offset/limit. Both values
	// are computed against the same filter.
	FindPage(ctx context.Context, filter Filter, offset, limit int) ([]types.Feedback, int, error)

	// CountDistinctEmails counts unique submitters. Emails are stored
	// lower-cased, so direct equality is case-insensitive.
	CountDistinctEmails(ctx context.Context) (int, error)

	// CountAll counts every stored record.
	CountAll(ctx context.Context) (int, error)

	// CountByCategory returns one bucket per category value present in
	// storage, largest first. No zero-count buckets are synthesized.
	CountByCategory(ctx context.Context) ([]types.CategoryCount, error)

	// CountByMonth counts records per calendar month (1-12) whose creation
	// time falls within [year-01-01, year+1-01-01) UTC. Months without
	// records are absent from the result.
	CountByMonth(ctx context.Context, year int) (map[int]int, error)
}
