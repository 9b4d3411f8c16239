package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feedbacklens/feedback-backend/types"
)

func validCreate() types.FeedbackCreate {
	return types.FeedbackCreate{
		UserName:     "Ann",
		Email:        "ann@x.com",
		FeedbackText: "Loved it",
		Category:     "ui",
	}
}

func TestNormalize(t *testing.T) {
	req := types.FeedbackCreate{
		UserName:     "  Ann  ",
		Email:        " ANN@X.com ",
		FeedbackText: "\tLoved it\n",
		Category:     " ui ",
	}

	Normalize(&req)

	assert.Equal(t, "Ann", req.UserName)
	assert.Equal(t, "ann@x.com", req.Email)
	assert.Equal(t, "Loved it", req.FeedbackText)
	assert.Equal(t, "ui", req.Category)
}

func TestValidate_Valid(t *testing.T) {
	assert.Nil(t, Validate(validCreate()))

	// category is optional
	req := validCreate()
	req.Category = ""
	assert.Nil(t, Validate(req))
}

func TestValidate_FieldViolations(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*types.FeedbackCreate)
		wantField string
	}{
		{
			name:      "missing user name",
			mutate:    func(r *types.FeedbackCreate) { r.UserName = "" },
			wantField: "userName",
		},
		{
			name:      "user name too long",
			mutate:    func(r *types.FeedbackCreate) { r.UserName = strings.Repeat("a", 101) },
			wantField: "userName",
		},
		{
			name:      "missing email",
			mutate:    func(r *types.FeedbackCreate) { r.Email = "" },
			wantField: "email",
		},
		{
			name:      "invalid email",
			mutate:    func(r *types.FeedbackCreate) { r.Email = "not-an-email" },
			wantField: "email",
		},
		{
			name:      "email too long",
			mutate:    func(r *types.FeedbackCreate) { r.Email = strings.Repeat("a", 250) + "@x.com" },
			wantField: "email",
		},
		{
			name:      "missing feedback text",
			mutate:    func(r *types.FeedbackCreate) { r.FeedbackText = "" },
			wantField: "feedbackText",
		},
		{
			name:      "feedback text too long",
			mutate:    func(r *types.FeedbackCreate) { r.FeedbackText = strings.Repeat("a", 2001) },
			wantField: "feedbackText",
		},
		{
			name:      "category too long",
			mutate:    func(r *types.FeedbackCreate) { r.Category = strings.Repeat("a", 51) },
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)

			fields := Validate(req)
			assert.Len(t, fields, 1)
			assert.Equal(t, tt.wantField, fields[0].Field)
			assert.NotEmpty(t, fields[0].Message)
		})
	}
}

func TestValidate_WhitespaceOnlyRejectedAfterNormalize(t *testing.T) {
	req := types.FeedbackCreate{
		UserName:     "   ",
		Email:        "ann@x.com",
		FeedbackText: "fine",
	}
	Normalize(&req)

	fields := Validate(req)
	assert.Len(t, fields, 1)
	assert.Equal(t, "userName", fields[0].Field)
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	req := types.FeedbackCreate{
		UserName:     "",
		Email:        "broken",
		FeedbackText: "",
		Category:     strings.Repeat("c", 51),
	}

	fields := Validate(req)
	assert.Len(t, fields, 4)

	got := make(map[string]string, len(fields))
	for _, f := range fields {
		got[f.Field] = f.Message
	}
	assert.Equal(t, "User name is required", got["userName"])
	assert.Equal(t, "Invalid email address", got["email"])
	assert.Equal(t, "Feedback text is required", got["feedbackText"])
	assert.Equal(t, "Category must be 50 characters or less", got["category"])
}
