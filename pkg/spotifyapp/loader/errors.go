package loader

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrResourceLoad matches every *ResourceLoadError via errors.Is.
	ErrResourceLoad = errors.New("resource load failed")

	// ErrClosed is reported by handles requested after Close.
	ErrClosed = errors.New("loader closed")

	// ErrTooLarge indicates the response body exceeded the configured limit.
	ErrTooLarge = errors.New("resource exceeds size limit")
)

// ResourceLoadError describes why a resource ended in StatusError.
type ResourceLoadError struct {
	URL string // Requested URL
	Op  string // Stage that failed: "parse", "fetch", "status", "read", "decode"
	Err error  // Underlying error
}

func (e *ResourceLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loader: %s %q: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("loader: %s %q", e.Op, e.URL)
}

func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}

// Is makes every ResourceLoadError match ErrResourceLoad.
func (e *ResourceLoadError) Is(target error) bool {
	return target == ErrResourceLoad
}

// NewResourceLoadError creates a new resource load error.
func NewResourceLoadError(url, op string, err error) *ResourceLoadError {
	return &ResourceLoadError{URL: url, Op: op, Err: err}
}

// IsResourceLoadError checks if an error is a resource load error.
func IsResourceLoadError(err error) bool {
	var loadErr *ResourceLoadError
	return errors.As(err, &loadErr)
}

// asLoadError wraps err unless it already is a ResourceLoadError.
func asLoadError(url, op string, err error) *ResourceLoadError {
	var loadErr *ResourceLoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	return NewResourceLoadError(url, op, err)
}
