package domain

import "errors"

var (
	ErrQueueFull      = errors.New("task queue is full")
	ErrQueueEmpty     = errors.New("task queue is empty")
	ErrNotTailTask    = errors.New("only the tail task can be cancelled")
	ErrTaskNotFound   = errors.New("task not found in queue")
	ErrUnknownBuilding = errors.New("unknown building id")
)
