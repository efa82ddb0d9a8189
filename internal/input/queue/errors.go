package queue

import "errors"

var (
	// ErrClosed is returned when a job is submitted to a closed queue.
	ErrClosed = errors.New("mutation queue is closed")

	// ErrNilJob is returned when Submit is called with a nil job.
	ErrNilJob = errors.New("nil job")
)
