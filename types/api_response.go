package types

// SubmitResponse is the body returned for a successful feedback submission.
type SubmitResponse struct {
	Success bool      `json:"success"`
	Data    *Feedback `json:"data"`
	Message string    `json:"message"`
}

// ListResponse is the body returned for a feedback listing call.
type ListResponse struct {
	Success    bool       `json:"success"`
	Data       []Feedback `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// StatsResponse is the body returned for the statistics endpoint.
type StatsResponse struct {
	Success bool           `json:"success"`
	Stats   *FeedbackStats `json:"stats"`
}
