package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feedbacklens/feedback-backend/logger"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	m.Run()
}

func TestValidationFailed(t *testing.T) {
	fields := []FieldError{
		{Field: "userName", Message: "User name is required"},
		{Field: "email", Message: "Invalid email address"},
	}

	err := ValidationFailed(fields)
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, http.StatusBadRequest, err.GetHTTPStatus())
	assert.Equal(t, fields, err.Fields)
}

func TestRateLimitExceeded(t *testing.T) {
	err := RateLimitExceeded("Too many submissions. Please try again later.", 60)
	assert.Equal(t, http.StatusTooManyRequests, err.GetHTTPStatus())
	assert.Equal(t, 60, err.RetryAfter)
}

func TestNewDatabaseError_Sanitizes(t *testing.T) {
	raw := errors.New("pgx: connection refused on 10.0.0.5:5432")
	err := NewDatabaseError(raw)

	assert.Equal(t, http.StatusInternalServerError, err.GetHTTPStatus())
	assert.NotContains(t, err.Message, "10.0.0.5")
	assert.ErrorIs(t, err, raw)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, DatabaseError, "ignored"))

	raw := errors.New("boom")
	err := Wrap(raw, ServerError, "operation failed")
	assert.Equal(t, ServerError, err.Type)
	assert.Equal(t, "boom", err.Detail)
	assert.ErrorIs(t, err, raw)
}

func TestErrorString(t *testing.T) {
	err := New(ValidationError, "bad input", "userName blank")
	assert.Equal(t, "VALIDATION_ERROR: bad input (userName blank)", err.Error())

	err = New(ServerError, "boom", "")
	assert.Equal(t, "SERVER_ERROR: boom", err.Error())
}
