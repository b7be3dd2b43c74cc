package hansard

import (
	"errors"
	"fmt"
)

// every error returned by the parsers, the fetcher and the scrapers can be matched
// against exactly one of ErrMissingElement, ErrInvalidValue, ErrTransport and
// ErrPageOutOfRange with errors.Is. ErrEmptyBody is a sub-kind of
// ErrMissingElement and matches both.
var (
	// ErrMissingElement means a required markup pattern was not found at all.
	ErrMissingElement = errors.New("missing element")
	// ErrInvalidValue means a field was found but could not be interpreted.
	ErrInvalidValue = errors.New("invalid value")
	// ErrTransport wraps failures surfaced by the fetcher.
	ErrTransport = errors.New("transport failed")
	// ErrEmptyBody is returned when a page responds successfully with no content,
	// it is a parse error, not a transport error. It wraps ErrMissingElement.
	ErrEmptyBody = fmt.Errorf("%w: empty response body", ErrMissingElement)
	// ErrPageOutOfRange is matched by every *PageOutOfRangeError.
	ErrPageOutOfRange = errors.New("page out of range")
)

// PageOutOfRangeError is returned when the source serves a different page than requested.
type PageOutOfRangeError struct {
	Requested int
	Last      int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d is out of range (last page is %d)", e.Requested, e.Last)
}

func (e *PageOutOfRangeError) Is(target error) bool {
	return target == ErrPageOutOfRange
}

// Missing creates an error of kind ErrMissingElement.
func Missing(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMissingElement, fmt.Sprintf(format, args...))
}

// Invalid creates an error of kind ErrInvalidValue.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}
