package domain

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrJobNotFound     = errors.New("job not found")

	// ErrCompanyNameUnknown is returned when a job names a company that
	// does not exist yet. It is a user error, not a missing row.
	ErrCompanyNameUnknown = errors.New("no company with that name")
)
