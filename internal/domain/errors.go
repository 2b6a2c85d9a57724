package domain

import "errors"

// Failure taxonomy shared across the pipeline. Errors local to one
// source (fetch, transcript, model output) are logged and isolated;
// ErrServiceUnavailable marks environment-level failures that should
// abort the whole batch.
var (
	ErrInvalidURL         = errors.New("invalid url")
	ErrNotAvailable       = errors.New("transcript not available")
	ErrTimeout            = errors.New("operation timed out")
	ErrFetch              = errors.New("fetch failed")
	ErrRender             = errors.New("render failed")
	ErrMalformedOutput    = errors.New("malformed model output")
	ErrUnsupportedFormat  = errors.New("unsupported source format")
	ErrServiceUnavailable = errors.New("service unavailable")
)
