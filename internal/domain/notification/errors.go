package notification

import "errors"

var (
	ErrRequestNotTerminal = errors.New("request has not been reviewed yet")
	ErrQueueFull          = errors.New("notification queue is full")
)
