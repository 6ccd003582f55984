package model

import "errors"

// Error taxonomy for the record pipeline. Handlers map these to HTTP
// statuses with errors.Is; services wrap them with fmt.Errorf("...: %w").
var (
	// ErrInvalidRange rejects malformed dates, inverted ranges and spans
	// longer than 31 days before any network or storage I/O happens.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrLocationNotFound means the geocoder returned no match.
	ErrLocationNotFound = errors.New("location not found")

	// ErrUpstreamFetch means an archive, forecast or geocoder call failed
	// or timed out. Never retried automatically.
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrNotFound means the referenced record id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnsupportedFormat rejects unknown export formats.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
