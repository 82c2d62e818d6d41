package jobs

import "errors"

var (
	// ErrInvalidPID is returned when an operation is given a zero or
	// negative process id.
	ErrInvalidPID = errors.New("invalid process id")

	// ErrTooManyJobs is returned by Add when every table slot is
	// occupied.
	ErrTooManyJobs = errors.New("tried to create too many jobs")
)
