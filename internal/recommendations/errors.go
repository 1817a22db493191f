package recommendations

import "errors"

var (
	ErrUnknownUser   = errors.New("unknown user")
	ErrNotConfigured = errors.New("recommendation service not configured")
	ErrInvalidTopN   = errors.New("top_n must be a positive integer")
)
