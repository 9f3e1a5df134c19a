package scheduler

import "errors"

var (
	// ErrUpstream is returned when the scheduler cannot be reached or
	// answers with a non-2xx status.
	ErrUpstream = errors.New("scheduler: upstream request failed")

	// ErrNotConfigured is returned when no scheduler URL is set.
	ErrNotConfigured = errors.New("scheduler: url not configured")
)
