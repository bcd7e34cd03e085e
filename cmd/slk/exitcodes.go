package main

// Exit codes, one stable code per failure kind so scripts can branch on
// the failure class without parsing message text.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Token missing or config unreadable
	ExitAuth         = 3 // Credential rejected by the service
	ExitPermission   = 4 // Credential lacks a required scope
	ExitNotFound     = 5 // Channel or user not found
	ExitRateLimited  = 6 // Throttling persisted past the retry budget
	ExitNetworkError = 7 // Connection-level failure
	ExitCancelled    = 8 // Aborted by the user
)
