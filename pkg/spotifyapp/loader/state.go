package loader

import "image"

// Status is the lifecycle position of a resource request.
type Status int

const (
	// StatusLoading means the fetch has not completed yet
	StatusLoading Status = iota

	// StatusSuccess means the resource was fetched and decoded
	StatusSuccess

	// StatusError means the fetch or decode failed; it is not retried automatically
	StatusError
)

// String returns the string representation of Status
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "Loading"
	case StatusSuccess:
		return "Success"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsTerminal returns true if the request has finished, successfully or not
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusError
}

// State is what a Handle currently exposes. Image is set only on success,
// Err only on error.
type State struct {
	Status Status
	Image  *Image
	Err    error
}

// Image is a fetched and decoded remote image.
type Image struct {
	URL     string
	Data    []byte
	Format  string
	Width   int
	Height  int
	Decoded image.Image
}
