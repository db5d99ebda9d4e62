package models

import "errors"

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrNoCurrentRun = errors.New("no published run for week")
	ErrRunInFlight  = errors.New("a run for this week is already in flight")
	ErrDuplicateKey = errors.New("duplicate key violation")
)
