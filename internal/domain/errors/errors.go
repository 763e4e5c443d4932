package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidTaxID       = errors.New("invalid tax id")
	ErrInvalidAccount     = errors.New("invalid account data")

	// Workflow failures. Each one is detected before any store write.
	ErrClosedOrder            = errors.New("order already finalized")
	ErrUnknownStatus          = errors.New("unknown status")
	ErrUnauthorizedTransition = errors.New("role not allowed to perform this transition")
	ErrAnnotationRequired     = errors.New("annotation must have at least 10 characters")
	ErrSchedulingDataRequired = errors.New("date and shift are required for scheduling")

	ErrInvalidQueueRequest   = errors.New("invalid queue request")
	ErrUnsupportedQueryShape = errors.New("query must be a tax id or an order number")

	// ErrConflict is returned by the store when the order changed after it was read.
	ErrConflict = errors.New("order was updated by someone else")
)
