package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrEmptyContent = errors.New("log content cannot be empty")
)

// CorruptDataError marks a persisted file that could not be decoded and was
// reinitialized to its empty form. It is a named recovery signal, not a
// failure: callers log it as a warning and continue with the fresh state.
// Genuine I/O errors (permission denied, disk full) are never wrapped in it.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data in %s (reinitialized): %v", e.Path, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// IsCorruptData reports whether err is (or wraps) a CorruptDataError.
func IsCorruptData(err error) bool {
	var ce *CorruptDataError
	return errors.As(err, &ce)
}
