package analytics

import "errors"

var (
	// ErrDataUnavailable wraps any store failure. A failed fetch is never
	// reported as an empty result.
	ErrDataUnavailable = errors.New("analytics: data store unavailable")

	// ErrInvalidCriteria is returned for malformed query parameters, before
	// any I/O is issued.
	ErrInvalidCriteria = errors.New("analytics: invalid criteria")
)
