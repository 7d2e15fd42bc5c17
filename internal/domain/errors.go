package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrRecordNotFound indicates the requested record does not exist
	ErrRecordNotFound = errors.New("record not found")

	// ErrServerOffline indicates the catalog service is unreachable
	ErrServerOffline = errors.New("catalog service is unreachable")

	// ErrAuthFailed indicates the API token was rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrSubmitInFlight indicates a submission is already running
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)
