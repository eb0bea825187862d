package bundle

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeLimitExceeded matches any *SizeLimitError.
	ErrSizeLimitExceeded = errors.New("deployment size limit exceeded")
	// ErrArchiveWrite matches any *ArchiveWriteError.
	ErrArchiveWrite = errors.New("archive write failed")
)

// SizeLimitError reports a selection larger than the allowed maximum.
type SizeLimitError struct {
	Bytes      int64
	LimitBytes int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("The project folder you're trying to deploy is too large (%d MB). Deployments must be less than %d MB.",
		e.Bytes/1_000_000, e.LimitBytes/1_000_000)
}

func (e *SizeLimitError) Is(target error) bool {
	return target == ErrSizeLimitExceeded
}

// ArchiveWriteError wraps a failure while writing the archive.
type ArchiveWriteError struct {
	Path string
	Err  error
}

func (e *ArchiveWriteError) Error() string {
	return fmt.Sprintf("writing archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveWriteError) Unwrap() error {
	return e.Err
}

func (e *ArchiveWriteError) Is(target error) bool {
	return target == ErrArchiveWrite
}
