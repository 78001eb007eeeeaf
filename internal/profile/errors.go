package profile

import "errors"

var (
	// ErrStorageUnavailable means the manager has no backing store.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrWriteFailed wraps a failure from the backing store while saving.
	ErrWriteFailed = errors.New("failed to save user data")
)

// CorruptRecordError describes why a stored record was rejected.
type CorruptRecordError struct {
	Err error
}

func (e *CorruptRecordError) Error() string {
	return "corrupt user data: " + e.Err.Error()
}

func (e *CorruptRecordError) Unwrap() error { return e.Err }
