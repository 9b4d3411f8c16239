package store

import "errors"

// ErrUnavailable indicates the underlying database could not serve the
// operation (connection down, query failure, timeout). Callers surface it as
// a generic server error; the raw cause stays in the logs.
var ErrUnavailable = errors.New("feedback store unavailable")
