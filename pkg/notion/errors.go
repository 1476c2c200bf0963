package notion

import (
	"errors"
	"fmt"
)

var (
	// ErrGoalNotFound means no database row has the requested goal title.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrQueryFailed wraps failed reads: database queries and page retrievals.
	ErrQueryFailed = errors.New("remote query failed")
	// ErrUpdateFailed wraps failed page writes.
	ErrUpdateFailed = errors.New("remote update failed")
	// ErrStatsNotConfigured marks a skipped stats update. It is not a failure.
	ErrStatsNotConfigured = errors.New("stats page not configured")
)

// APIError is a failed Notion call. Code is Notion's machine-readable error code.
type APIError struct {
	Op      string
	Status  int
	Code    string
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.Op, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %d %s: %s", e.kind, e.Op, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %d %s", e.kind, e.Op, e.Status, e.Message)
}

// Unwrap returns the sentinel for the failed operation.
func (e *APIError) Unwrap() error {
	return e.kind
}
