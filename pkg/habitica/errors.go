package habitica

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by RemoteError, one per gateway operation.
var (
	ErrCreateFailed   = errors.New("remote create failed")
	ErrListFailed     = errors.New("remote list failed")
	ErrCompleteFailed = errors.New("remote complete failed")
	ErrDeleteFailed   = errors.New("remote delete failed")
)

// RemoteError describes a failed Habitica call. Status is 0 when no response arrived.
type RemoteError struct {
	Op      string
	Status  int
	Message string
	kind    error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s: %d %s", e.kind, e.Op, e.Status, e.Message)
}

// Unwrap returns the sentinel for the failed operation.
func (e *RemoteError) Unwrap() error {
	return e.kind
}
