package director

import "errors"

var (
	// ErrInvalidInput is returned when a required object is missing or a
	// range is inverted. Nothing has been mutated.
	ErrInvalidInput = errors.New("invalid input")
	// ErrHostAllocationFailed is returned when the host could not create a
	// track or section. No keys have been written.
	ErrHostAllocationFailed = errors.New("host allocation failed")
	// ErrChannelMissing marks a section channel that could not be keyed.
	// It never aborts synthesis.
	ErrChannelMissing = errors.New("channel missing")
)
