package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a required request field is missing or malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream indicates the reasoning service was unreachable or errored
	ErrUpstream = errors.New("upstream service error")

	// ErrStorage indicates the catalog query failed
	ErrStorage = errors.New("storage error")

	// ErrFetch indicates a linked document could not be retrieved
	ErrFetch = errors.New("fetch error")

	// ErrPolicyRejected indicates a link is restricted or outside the allowed domains
	ErrPolicyRejected = errors.New("rejected by link policy")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrMissingAPIKey indicates a hosted provider was configured without a key
	ErrMissingAPIKey = errors.New("api key is required")

	// ErrInvalidBackend indicates an unknown catalog backend was specified
	ErrInvalidBackend = errors.New("invalid catalog backend")
)
