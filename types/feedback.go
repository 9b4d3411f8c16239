package types

import "time"

// Feedback represents a feedback entry stored in the database.
type Feedback struct {
	ID           string    `json:"id"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	FeedbackText string    `json:"feedbackText"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"timestamp"`
}

// CategoryOther is the category recorded when a submission omits one.
// Defaulting happens at write time so aggregation queries never see NULL.
const CategoryOther = "other"

// FeedbackCreate represents the request body for submitting feedback.
// Fields are trimmed and the email lower-cased before validation.
type FeedbackCreate struct {
	UserName     string `json:"userName" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=254"`
	FeedbackText string `json:"feedbackText" validate:"required,max=2000"`
	Category     string `json:"category,omitempty" validate:"omitempty,max=50"`
}

// FeedbackListParams carries pagination and filter parameters for listing
// feedback. Page and Limit are clamped by the service: page >= 1,
// 1 <= limit <= 100 (limit defaults to 10 when unset).
type FeedbackListParams struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Search   string `form:"search"`
	Category string `form:"category"`
}

// Pagination describes the slice of results returned by a listing call.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// FeedbackPage is one page of feedback records plus pagination metadata.
type FeedbackPage struct {
	Items      []Feedback `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// CategoryCount is the number of feedback entries for one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// MonthCount is the number of feedback entries for one calendar month.
type MonthCount struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`
	Count     int    `json:"count"`
}

// FeedbackStats aggregates feedback statistics for the dashboard.
// Monthly always contains exactly 12 entries for the current calendar year,
// January through December, with zero counts for inactive months.
type FeedbackStats struct {
	TotalUsers     int             `json:"totalUsers"`
	TotalFeedbacks int             `json:"totalFeedbacks"`
	Categories     []CategoryCount `json:"categories"`
	Monthly        []MonthCount    `json:"monthly"`
}
