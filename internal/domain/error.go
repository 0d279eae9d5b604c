package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrForbidden          = errors.New("operation not permitted for this user")
	ErrRateLimited        = errors.New("too many requests")
	ErrInvalidExecContext = errors.New("invalid executor context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")

	// Plan job lifecycle errors. Everything the planner service can throw at
	// us is folded into this taxonomy before it leaves the job client.
	ErrValidationFailed  = errors.New("plan request validation failed")
	ErrSubmissionFailed  = errors.New("plan submission failed")
	ErrPollFailed        = errors.New("status poll failed")
	ErrFetchFailed       = errors.New("itinerary fetch failed")
	ErrMalformedResponse = errors.New("malformed planner response")
	ErrJobTimeout        = errors.New("plan job exceeded deadline")
	ErrTerminalState     = errors.New("job already in terminal state")
)
